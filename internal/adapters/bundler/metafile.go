package bundler

import (
	"encoding/json"
	"path/filepath"
	"strings"
)

// metafile is the subset of the esbuild metafile read by the esbuild strategy.
// Only the input keys matter; their bodies are left undecoded.
type metafile struct {
	Inputs map[string]json.RawMessage `json:"inputs"`
}

// parseMetafile decodes raw and returns the absolute paths of every file-backed input.
// Inputs are keyed relative to root; inputs living in a plugin namespace ("ns:path") are skipped.
func parseMetafile(raw, root string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}

	var meta metafile
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return nil, err
	}

	files := make([]string, 0, len(meta.Inputs))
	for key := range meta.Inputs {
		if isNamespaced(key) {
			continue
		}
		if filepath.IsAbs(key) {
			files = append(files, filepath.Clean(key))
			continue
		}
		files = append(files, filepath.Join(root, filepath.FromSlash(key)))
	}
	return files, nil
}

// isNamespaced reports whether a metafile key carries a non-file namespace prefix.
// Windows drive letters ("C:") are not namespaces.
func isNamespaced(key string) bool {
	idx := strings.Index(key, ":")
	return idx > 1
}
