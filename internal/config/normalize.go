package config

import (
	"fmt"
	"strings"
)

// NormalizationResult captures adjustments and warnings from the normalization pass.
type NormalizationResult struct{ Warnings []string }

// NormalizeConfig canonicalizes enumerations and trims paths in place before
// defaults are applied.
func NormalizeConfig(c *Config) *NormalizationResult {
	res := &NormalizationResult{}

	if raw := string(c.Logging.Level); raw != "" {
		if lvl := NormalizeLogLevel(raw); lvl == "" {
			res.warn(warnUnknown("logging.level", raw, string(LogLevelInfo)))
			c.Logging.Level = LogLevelInfo
		} else if lvl != c.Logging.Level {
			res.warn(warnChanged("logging.level", raw, lvl))
			c.Logging.Level = lvl
		}
	}
	if raw := string(c.Logging.Format); raw != "" {
		if f := NormalizeLogFormat(raw); f == "" {
			res.warn(warnUnknown("logging.format", raw, string(LogFormatText)))
			c.Logging.Format = LogFormatText
		} else if f != c.Logging.Format {
			res.warn(warnChanged("logging.format", raw, f))
			c.Logging.Format = f
		}
	}
	// An unknown artifact format is left in place for validation to reject.
	if raw := string(c.Output.Format); raw != "" {
		if f := NormalizeArtifactFormat(raw); f != "" && f != c.Output.Format {
			res.warn(warnChanged("output.format", raw, f))
			c.Output.Format = f
		}
	}

	c.Docs.BasePath = normalizeBasePath(c.Docs.BasePath)
	c.Blog.BasePath = normalizeBasePath(c.Blog.BasePath)
	for i := range c.Pages {
		c.Pages[i].Path = strings.TrimSpace(c.Pages[i].Path)
		c.Pages[i].Component = strings.TrimSpace(c.Pages[i].Component)
	}
	return res
}

func (r *NormalizationResult) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// normalizeBasePath gives a base path a leading slash and drops a trailing one.
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	p = "/" + strings.Trim(p, "/")
	return p
}

func warnChanged(field string, from, to any) string {
	return fmt.Sprintf("normalized %s from '%v' to '%v'", field, from, to)
}

func warnUnknown(field, value, def string) string {
	return fmt.Sprintf("unknown %s '%s', defaulting to %s", field, value, def)
}
