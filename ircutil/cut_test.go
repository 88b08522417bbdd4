package ircutil_test

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/virc-go/virc/ircutil"
)

func TestCutMessage(t *testing.T) {
	table := []struct {
		Overhead int
		Space    bool
		Text     string
	}{
		{
			ircutil.MessageOverhead("Longer_Name", "~mircuser", "some-long-hostname-from-some-isp.example.com", "#Test", true), true,
			strings.TrimSpace(strings.Repeat("Lorem ipsum dolor sit amet, consectetur adipiscing elit. Sed maximus urna eu tincidunt lacinia. ", 16)),
		},
		{
			ircutil.MessageOverhead("Guest", "~guest", "host.example.com", "#LongerChannelName32", false), true,
			"A really short message that will not be cut.",
		},
		{
			ircutil.MessageOverhead("Guest", "~guest", "host.example.com", "#Test", false), false,
			strings.Repeat("0123456789", 96),
		},
		{
			// Multi-byte runes must never be split down the middle.
			ircutil.MessageOverhead("Guest", "~guest", "host.example.com", "#Test", false), false,
			strings.Repeat("五十音順カタカナ", 64),
		},
	}

	sep := map[bool]string{false: "", true: " "}

	for i, row := range table {
		t.Run(fmt.Sprintf("Row_%d", i), func(t *testing.T) {
			cuts := ircutil.CutMessage(row.Text, row.Overhead)

			for _, cut := range cuts {
				assert.LessOrEqual(t, len(cut), ircutil.MaxLineLength-row.Overhead)
				assert.True(t, utf8.ValidString(cut))
			}

			assert.Equal(t, row.Text, strings.Join(cuts, sep[row.Space]))
		})
	}
}
