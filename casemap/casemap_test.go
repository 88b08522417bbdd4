package casemap_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/virc-go/virc/casemap"
)

func TestFold(t *testing.T) {
	table := []struct {
		Mapping  casemap.Mapping
		Input    string
		Expected string
	}{
		{casemap.RFC1459, "guest", "GUEST"},
		{casemap.RFC1459, "Guest", "GUEST"},
		{casemap.RFC1459, "GUEST", "GUEST"},
		{casemap.RFC1459, "a{}|~", "A[]\\^"},
		{casemap.RFC1459, "#Channel|Name", "#CHANNEL\\NAME"},
		{casemap.RFC1459, "[]\\^", "[]\\^"},
		{casemap.RFC1459, "", ""},
		{casemap.ASCII, "guest", "GUEST"},
		{casemap.ASCII, "a{}|~", "A{}|~"},
		{casemap.ASCII, "[]\\^", "[]\\^"},
	}

	for i, row := range table {
		t.Run(fmt.Sprintf("Row_%d_%s", i, row.Mapping.Name()), func(t *testing.T) {
			folded := row.Mapping.Fold(row.Input)

			assert.Equal(t, row.Expected, folded)

			// Folding twice must land on the same string.
			assert.Equal(t, folded, row.Mapping.Fold(folded))
		})
	}
}

func TestEqual(t *testing.T) {
	table := []struct {
		Mapping  casemap.Mapping
		A, B     string
		Expected bool
	}{
		{casemap.RFC1459, "a{}|~", "A[]\\^", true},
		{casemap.RFC1459, "Guest", "gUEST", true},
		{casemap.RFC1459, "Guest", "Guest2", false},
		{casemap.RFC1459, "", "", true},
		{casemap.ASCII, "a{}|~", "A[]\\^", false},
		{casemap.ASCII, "Guest", "gUEST", true},
	}

	for i, row := range table {
		t.Run(fmt.Sprintf("Row_%d_%s", i, row.Mapping.Name()), func(t *testing.T) {
			assert.Equal(t, row.Expected, row.Mapping.Equal(row.A, row.B))
			assert.Equal(t, row.Expected, row.Mapping.Fold(row.A) == row.Mapping.Fold(row.B))
		})
	}
}

func TestByName(t *testing.T) {
	assert.Equal(t, "ascii", casemap.ByName("ascii").Name())
	assert.Equal(t, "rfc1459", casemap.ByName("rfc1459").Name())
	assert.Equal(t, "rfc1459", casemap.ByName("rfc7613").Name())
}
