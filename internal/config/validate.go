package config

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"retitle/internal/textutil"
)

var (
	keywordRoles = map[string]struct{}{"prefix": {}, "suffix": {}, "noise": {}}
	keywordKinds = map[string]struct{}{
		"": {}, "other": {}, "feature": {}, "remix": {}, "cover": {}, "production": {}, "version": {},
	}
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEngine(); err != nil {
		return err
	}
	if err := c.validateRename(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Paths.HistoryDB) == "" {
		return errors.New("paths.history_db must be set")
	}
	return nil
}

func (c *Config) validateEngine() error {
	if _, err := textutil.MetricByName(c.Engine.SimilarityMetric); err != nil {
		return fmt.Errorf("engine.similarity_metric must be one of %s", strings.Join(textutil.Metrics(), ", "))
	}
	if c.Engine.SimilarityThreshold <= 0 || c.Engine.SimilarityThreshold > 1 {
		return errors.New("engine.similarity_threshold must be in (0, 1]")
	}
	if _, err := language.Parse(c.Engine.Language); err != nil {
		return fmt.Errorf("engine.language %q is not a valid BCP 47 tag", c.Engine.Language)
	}
	for i, kw := range c.Engine.Keywords {
		if kw.Text == "" {
			return fmt.Errorf("engine.keywords[%d].text must be set", i)
		}
		if _, ok := keywordRoles[kw.Role]; !ok {
			return fmt.Errorf("engine.keywords[%d].role must be prefix, suffix, or noise", i)
		}
		if _, ok := keywordKinds[kw.Kind]; !ok {
			return fmt.Errorf("engine.keywords[%d].kind %q is not a known annotation kind", i, kw.Kind)
		}
		if kw.Priority < 0 {
			return fmt.Errorf("engine.keywords[%d].priority must be >= 0", i)
		}
	}
	return nil
}

func (c *Config) validateRename() error {
	if c.Rename.Workers <= 0 {
		return errors.New("rename.workers must be positive")
	}
	switch c.Rename.Fallback {
	case FallbackRaw, FallbackSkip:
	default:
		return fmt.Errorf("rename.fallback must be %q or %q", FallbackRaw, FallbackSkip)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q must be debug, info, warn, or error", c.Logging.Level)
	}
}
