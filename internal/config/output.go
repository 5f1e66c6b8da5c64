package config

// ArtifactFormat selects the encoding of written route artifacts.
type ArtifactFormat string

const (
	FormatJSON ArtifactFormat = "json"
	FormatYAML ArtifactFormat = "yaml"
)

var artifactFormatNormalizer = newEnumNormalizer(FormatJSON, FormatYAML)

// NormalizeArtifactFormat returns the canonical format, or "" when raw is unknown.
// "yml" is accepted as an alias for yaml.
func NormalizeArtifactFormat(raw string) ArtifactFormat {
	if normalizeKey(raw) == "yml" {
		return FormatYAML
	}
	v, _ := artifactFormatNormalizer.normalize(raw)
	return v
}

// OutputConfig represents output configuration.
type OutputConfig struct {
	Directory   string         `yaml:"directory"`
	Format      ArtifactFormat `yaml:"format"`
	SQLite      string         `yaml:"sqlite,omitempty"`       // route table export, disabled when empty
	MetricsFile string         `yaml:"metrics_file,omitempty"` // Prometheus textfile, disabled when empty
}
