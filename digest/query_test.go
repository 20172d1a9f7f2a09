package digest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuery(t *testing.T) {
	niches := DefaultNiches()

	for _, tc := range []struct {
		name      string
		interests []string
		exp       string
	}{
		{
			name: "empty",
			exp:  "",
		},
		{
			name:      "known niche",
			interests: []string{"ai"},
			exp:       `(neural networks -"machine learning")`,
		},
		{
			name:      "unknown token verbatim",
			interests: []string{"woodworking"},
			exp:       "(woodworking)",
		},
		{
			name:      "mixed keeps order",
			interests: []string{"gardening", "chess", "retro_gaming"},
			exp:       `(heirloom -"home depot") OR (chess) OR ("CRT" -"nintendo")`,
		},
		{
			name:      "no escaping",
			interests: []string{`a) OR (b`},
			exp:       `(a) OR (b)`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.exp, niches.BuildQuery(tc.interests))
		})
	}
}

func TestNewNichesCopies(t *testing.T) {
	filters := map[string]string{"cats": "kittens -dogs"}
	niches := NewNiches(filters)
	filters["cats"] = "changed"

	assert.Equal(t, "(kittens -dogs)", niches.BuildQuery([]string{"cats"}))
}

func TestLoadNiches(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid", func(t *testing.T) {
		path := filepath.Join(dir, "niches.yaml")
		require.NoError(t, os.WriteFile(path, []byte("bonsai: 'juniper -\"fake\"'\nai: transformers\n"), 0o600))

		niches, err := LoadNiches(path)
		require.NoError(t, err)
		assert.Equal(t, 2, niches.Len())
		assert.Equal(t, `(juniper -"fake") OR (transformers)`, niches.BuildQuery([]string{"bonsai", "ai"}))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadNiches(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("not a mapping", func(t *testing.T) {
		path := filepath.Join(dir, "list.yaml")
		require.NoError(t, os.WriteFile(path, []byte("- one\n- two\n"), 0o600))

		_, err := LoadNiches(path)
		assert.Error(t, err)
	})
}

func TestParseInterests(t *testing.T) {
	assert.Equal(t, []string{"ai", "gardening"}, ParseInterests(" ai , gardening,"))
	assert.Equal(t, []string{}, ParseInterests(" , ,"))
	assert.Equal(t, []string{"retro_gaming"}, ParseInterests("retro_gaming"))
}
