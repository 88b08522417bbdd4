package irctest

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/virc-go/virc"
)

// AssertMembers compares a channel's membership against `modes:nick`
// entries, order-independent (the membership map is unordered). A bare nick
// asserts a member without modes.
func AssertMembers(t *testing.T, channel *virc.Channel, asserted ...string) bool {
	t.Helper()

	members := channel.Members()
	got := make([]string, 0, len(members))
	for _, member := range members {
		entry := member.User().Nick()
		if member.Modes() != "" {
			entry = member.Modes() + ":" + entry
		}
		got = append(got, entry)
	}

	want := make([]string, len(asserted))
	copy(want, asserted)

	sort.Strings(got)
	sort.Strings(want)

	if strings.Join(got, ", ") != strings.Join(want, ", ") {
		t.Errorf("Members:  %s", strings.Join(got, ", "))
		t.Errorf("Asserted: %s", strings.Join(want, ", "))
		return false
	}

	return true
}

// Err converts an interaction failure into an error for callback steps.
func (interaction *Interaction) Err() error {
	if interaction.Failure == nil {
		return nil
	}

	f := interaction.Failure
	switch {
	case f.NetErr != nil:
		return fmt.Errorf("irctest: step %d: %w", f.Index, f.NetErr)
	case f.CBErr != nil:
		return fmt.Errorf("irctest: step %d: %w", f.Index, f.CBErr)
	default:
		return fmt.Errorf("irctest: step %d: unexpected %q", f.Index, f.Result)
	}
}
