package artifact

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Manifest records one compile run and the files it wrote.
type Manifest struct {
	BuildID     string    `json:"build_id"`
	Version     string    `json:"version"`
	GeneratedAt time.Time `json:"generated_at"`
	Format      Format    `json:"format"`
	Routes      int       `json:"routes"`
	Sidebars    []string  `json:"sidebars"`
	// Files maps each written artifact to the sha256 of its content.
	Files map[string]string `json:"files"`
}

// ToJSON serializes the manifest to JSON.
func (m *Manifest) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return append(data, '\n'), nil
}

// ManifestFromJSON deserializes a manifest from JSON.
func ManifestFromJSON(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}

func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
