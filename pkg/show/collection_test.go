package show

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "lowercases", title: "Foo", want: "foo"},
		{name: "collapses whitespace", title: "  The   Wire ", want: "the wire"},
		{name: "mixed case and tabs", title: "BREAKING\tBad", want: "breaking bad"},
		{name: "unicode fold", title: "LUPİN", want: "lupi̇n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTitle(tt.title))
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{title: "Foo Returns", want: "foo-returns"},
		{title: "The 100", want: "the-100"},
		{title: "What We Do in the Shadows!", want: "what-we-do-in-the-shadows"},
		{title: "---", want: "show"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestCollection(t *testing.T) {
	t.Run("duplicate id is a hard error", func(t *testing.T) {
		_, err := NewCollection(
			NewToExplore("foo", "Foo", ""),
			NewToExplore("foo", "Foo Again", ""),
		)
		require.Error(t, err)

		var dup DuplicateIDError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "foo", dup.ID)
	})

	t.Run("has title in any state", func(t *testing.T) {
		c, err := NewCollection(
			NewToExplore("foo", "Foo", ""),
			Show{
				ID:           "dark",
				Title:        "Dark",
				State:        StateFinished,
				Rating:       RatingExcellent,
				DateFinished: "2026-01-02",
			},
		)
		require.NoError(t, err)

		assert.True(t, c.HasTitle("foo"))
		assert.True(t, c.HasTitle("  FOO "))
		assert.True(t, c.HasTitle("dark"))
		assert.False(t, c.HasTitle("Foo Returns"))
	})

	t.Run("mint id suffixes on collision", func(t *testing.T) {
		c, err := NewCollection(NewToExplore("foo", "Foo", ""))
		require.NoError(t, err)

		assert.Equal(t, "foo-2", c.MintID("Foo"))

		require.NoError(t, c.Add(NewRecommended("foo-2", "Foo", "again")))
		assert.Equal(t, "foo-3", c.MintID("Foo"))
	})

	t.Run("clone is independent", func(t *testing.T) {
		c, err := NewCollection(NewToExplore("foo", "Foo", ""))
		require.NoError(t, err)

		clone := c.Clone()
		require.NoError(t, clone.Add(NewToExplore("bar", "Bar", "")))

		assert.Equal(t, 1, c.Len())
		assert.Equal(t, 2, clone.Len())
	})

	t.Run("update rejects unknown show", func(t *testing.T) {
		c, err := NewCollection()
		require.NoError(t, err)

		err = c.Update(NewToExplore("foo", "Foo", ""))
		assert.Error(t, err)
	})

	t.Run("encode is deterministic and ordered by id", func(t *testing.T) {
		c, err := NewCollection(
			NewToExplore("zeta", "Zeta", ""),
			NewToExplore("alpha", "Alpha", ""),
		)
		require.NoError(t, err)

		first, err := c.Encode()
		require.NoError(t, err)
		second, err := c.Encode()
		require.NoError(t, err)
		assert.Equal(t, first, second)

		decoded, err := DecodeCollection(first)
		require.NoError(t, err)

		all := decoded.All()
		require.Len(t, all, 2)
		assert.Equal(t, "alpha", all[0].ID)
		assert.Equal(t, "zeta", all[1].ID)
	})

	t.Run("decode rejects invalid records", func(t *testing.T) {
		_, err := DecodeCollection([]byte("shows:\n  - id: foo\n    title: Foo\n    state: binging\n"))
		assert.Error(t, err)
	})
}
