package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CategoryFile is the per-directory metadata file.
const CategoryFile = "_category_.yml"

// categoryMeta is the content of a _category_.yml file. Order lists child
// directory names (or their labels) and item slugs in display order.
type categoryMeta struct {
	Label string   `yaml:"label"`
	Order []string `yaml:"order"`
}

func readCategory(dir string) (categoryMeta, error) {
	var meta categoryMeta
	path := filepath.Join(dir, CategoryFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return meta, nil
	}
	if err != nil {
		return meta, fmt.Errorf("%w: %s: %w", ErrReadFailed, path, err)
	}
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return meta, fmt.Errorf("%w: %s: %w", ErrParseFailed, path, err)
	}
	return meta, nil
}
