package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"git.home.luguber.info/inful/siteroutes/internal/content"
	"gopkg.in/yaml.v3"
)

// readAuthors loads an authors file keyed by author id. A missing file
// yields an empty set.
func readAuthors(path string) (map[string]*content.Author, error) {
	out := make(map[string]*content.Author)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadFailed, path, err)
	}
	var raw map[string]content.Author
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParseFailed, path, err)
	}
	for id, a := range raw {
		a.ID = id
		if a.Name == "" {
			a.Name = id
		}
		out[id] = &a
	}
	return out, nil
}
