package bundler

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMetafile(t *testing.T) {
	root := filepath.FromSlash("/proj")
	raw := `{"inputs":{
		"src/a.js":{"bytes":10,"imports":[{"path":"src/b.js","kind":"import-statement"}]},
		"src/b.js":{"bytes":5,"imports":[]},
		"src/c.js":{"bytes":"12","format":"esm","with":{"type":"json"}},
		"virtual:env":{"bytes":1,"imports":[]}
	},"outputs":{}}`

	files, err := parseMetafile(raw, root)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "src", "a.js"),
		filepath.Join(root, "src", "b.js"),
		filepath.Join(root, "src", "c.js"),
	}, files)
}

func TestParseMetafile_Empty(t *testing.T) {
	files, err := parseMetafile("", "/proj")
	require.NoError(t, err)
	assert.Empty(t, files)

	_, err = parseMetafile("{", "/proj")
	require.Error(t, err)
}
