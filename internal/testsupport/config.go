package testsupport

import (
	"path/filepath"
	"testing"

	"retitle/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose history database and log directory live
// in a per-test temp directory.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.HistoryDB = filepath.Join(base, "data", "history.db")
	cfgVal.Paths.LogDir = ""
	cfgVal.Rename.Workers = 2

	builder := &configBuilder{t: t, baseDir: base, cfg: &cfgVal}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithLogDir enables the JSON log file under the test directory.
func WithLogDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.LogDir = filepath.Join(b.baseDir, "logs")
	}
}

// WithFallback sets the rename fallback policy.
func WithFallback(policy string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Rename.Fallback = policy
	}
}

// WithKeyword appends an engine keyword.
func WithKeyword(text, role string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Engine.Keywords = append(b.cfg.Engine.Keywords, config.KeywordConfig{Text: text, Role: role})
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(filepath.Dir(cfg.Paths.HistoryDB))
}
