package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeEngine()
	c.normalizeRename()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeEngine() {
	c.Engine.SimilarityMetric = strings.ToLower(strings.TrimSpace(c.Engine.SimilarityMetric))
	if c.Engine.SimilarityMetric == "" {
		c.Engine.SimilarityMetric = defaultSimilarityMetric
	}
	c.Engine.Language = strings.TrimSpace(c.Engine.Language)
	if c.Engine.Language == "" {
		c.Engine.Language = defaultLanguage
	}
	c.Engine.Pronouns = normalizeList(c.Engine.Pronouns, "")
	if len(c.Engine.Pronouns) == 0 {
		c.Engine.Pronouns = append([]string(nil), defaultPronouns...)
	}
	for i := range c.Engine.Keywords {
		kw := &c.Engine.Keywords[i]
		kw.Text = strings.Join(strings.Fields(strings.ToLower(kw.Text)), " ")
		kw.Role = strings.ToLower(strings.TrimSpace(kw.Role))
		kw.Kind = strings.ToLower(strings.TrimSpace(kw.Kind))
	}
}

func (c *Config) normalizeRename() {
	if c.Rename.Workers <= 0 {
		c.Rename.Workers = defaultWorkers()
	}
	c.Rename.Extensions = normalizeList(c.Rename.Extensions, ".")
	c.Rename.Fallback = strings.ToLower(strings.TrimSpace(c.Rename.Fallback))
	if c.Rename.Fallback == "" {
		c.Rename.Fallback = defaultRenameFallback
	}
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("RETITLE_HISTORY_DB"); ok && strings.TrimSpace(value) != "" {
		c.Paths.HistoryDB = strings.TrimSpace(value)
	}
	var err error
	if c.Paths.HistoryDB, err = expandPath(strings.TrimSpace(c.Paths.HistoryDB)); err != nil {
		return fmt.Errorf("paths.history_db: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	if value, ok := os.LookupEnv("RETITLE_LOG_FORMAT"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Format = value
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	if value, ok := os.LookupEnv("RETITLE_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// normalizeList lowercases, trims the given prefix, and removes blanks and
// duplicates while keeping the first occurrence order.
func normalizeList(values []string, prefix string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		normalized := strings.ToLower(strings.TrimSpace(value))
		if prefix != "" {
			normalized = strings.TrimPrefix(normalized, prefix)
		}
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}
