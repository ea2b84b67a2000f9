package config

import "path/filepath"

const (
	defaultSimilarityMetric    = "lcs"
	defaultSimilarityThreshold = 0.8
	defaultLanguage            = "en"
	defaultRenameFallback      = FallbackRaw
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	historyDBName              = "history.db"
)

// Rename fallback policies.
const (
	FallbackRaw  = "raw"
	FallbackSkip = "skip"
)

var (
	defaultPronouns   = []string{"you", "me", "him", "her", "us", "them", "u", "it"}
	defaultExtensions = []string{"mp3", "m4a", "flac", "opus", "ogg", "wav", "webm", "mp4", "mkv"}
)

func defaultWorkers() int {
	return 4
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Engine: Engine{
			SimilarityMetric:    defaultSimilarityMetric,
			SimilarityThreshold: defaultSimilarityThreshold,
			Language:            defaultLanguage,
			Pronouns:            append([]string(nil), defaultPronouns...),
		},
		Rename: Rename{
			Workers:    defaultWorkers(),
			Extensions: append([]string(nil), defaultExtensions...),
			Fallback:   defaultRenameFallback,
		},
		Paths: Paths{
			HistoryDB: filepath.Join(defaultDataDir(), historyDBName),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
