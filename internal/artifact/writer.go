package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/siteroutes/internal/routes"
	"git.home.luguber.info/inful/siteroutes/internal/sidebar"
	"git.home.luguber.info/inful/siteroutes/internal/version"
)

// RoutesDoc is the on-disk shape of the routes file.
type RoutesDoc struct {
	Routes []*routes.Route `json:"routes" yaml:"routes"`
}

// SidebarsDoc is the on-disk shape of the sidebars file.
type SidebarsDoc struct {
	Sidebars []*sidebar.Sidebar `json:"sidebars" yaml:"sidebars"`
}

// Bundle is what one compile run publishes.
type Bundle struct {
	BuildID  string
	Table    *routes.Table
	Sidebars []*sidebar.Sidebar
}

// Write encodes b into dir. Each file is written to a temporary sibling and
// renamed into place; the manifest is renamed last, so a reader that finds a
// manifest finds complete artifacts.
func Write(dir string, format Format, b Bundle) (*Manifest, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create artifact directory: %w", err)
	}

	sidebars := b.Sidebars
	if sidebars == nil {
		sidebars = []*sidebar.Sidebar{}
	}
	docs := []struct {
		name string
		v    any
	}{
		{routesBase + format.Ext(), RoutesDoc{Routes: b.Table.Routes()}},
		{sidebarsBase + format.Ext(), SidebarsDoc{Sidebars: sidebars}},
	}

	m := &Manifest{
		BuildID:     b.BuildID,
		Version:     version.Version,
		GeneratedAt: time.Now().UTC(),
		Format:      format,
		Routes:      b.Table.Len(),
		Sidebars:    make([]string, 0, len(sidebars)),
		Files:       make(map[string]string, len(docs)),
	}
	for _, sb := range sidebars {
		m.Sidebars = append(m.Sidebars, sb.ID)
	}

	for _, d := range docs {
		data, err := format.marshal(d.v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", d.name, err)
		}
		if err := writeAtomic(filepath.Join(dir, d.name), data); err != nil {
			return nil, err
		}
		m.Files[d.name] = digest(data)
	}

	data, err := m.ToJSON()
	if err != nil {
		return nil, err
	}
	if err := writeAtomic(filepath.Join(dir, ManifestFile), data); err != nil {
		return nil, err
	}
	return m, nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	name := tmp.Name()
	defer func() { _ = os.Remove(name) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(name, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(name, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
