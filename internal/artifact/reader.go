package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/siteroutes/internal/routes"
)

// ErrNoArtifacts is returned when dir holds no manifest.
var ErrNoArtifacts = errors.New("no compiled artifacts found")

// ErrDigestMismatch is returned when an artifact does not match the digest
// recorded in the manifest.
var ErrDigestMismatch = errors.New("artifact digest mismatch")

// Loaded is a bundle read back from disk.
type Loaded struct {
	Manifest *Manifest
	Table    *routes.Table
	Sidebars SidebarsDoc
}

// Read loads the artifacts in dir, verifies them against the manifest and
// rebuilds the route table.
func Read(dir string) (*Loaded, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w in %s", ErrNoArtifacts, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := ManifestFromJSON(data)
	if err != nil {
		return nil, err
	}

	var rd RoutesDoc
	if err := readDoc(dir, routesBase+m.Format.Ext(), m, &rd); err != nil {
		return nil, err
	}
	var sd SidebarsDoc
	if err := readDoc(dir, sidebarsBase+m.Format.Ext(), m, &sd); err != nil {
		return nil, err
	}

	table, err := routes.NewTable(rd.Routes)
	if err != nil {
		return nil, fmt.Errorf("rebuild route table: %w", err)
	}
	return &Loaded{Manifest: m, Table: table, Sidebars: sd}, nil
}

func readDoc(dir, name string, m *Manifest, v any) error {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if want, ok := m.Files[name]; ok && want != digest(data) {
		return fmt.Errorf("%w: %s", ErrDigestMismatch, name)
	}
	if err := m.Format.unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
