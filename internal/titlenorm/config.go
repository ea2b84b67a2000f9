package titlenorm

import (
	"fmt"
	"log/slog"

	"golang.org/x/text/language"

	"retitle/internal/config"
	"retitle/internal/textutil"
)

// NewFromConfig builds an engine from the [engine] configuration section:
// configured keywords extend the default table, and the metric, language,
// and pronoun list replace the defaults.
func NewFromConfig(cfg config.Engine, logger *slog.Logger) (*Engine, error) {
	extra, err := keywordsFromConfig(cfg.Keywords)
	if err != nil {
		return nil, err
	}
	rules, err := DefaultRules().Extend(extra)
	if err != nil {
		return nil, fmt.Errorf("engine.keywords: %w", err)
	}

	similarity, err := textutil.MetricByName(cfg.SimilarityMetric)
	if err != nil {
		return nil, fmt.Errorf("engine.similarity_metric: %w", err)
	}

	tag := language.English
	if cfg.Language != "" {
		if tag, err = language.Parse(cfg.Language); err != nil {
			return nil, fmt.Errorf("engine.language: %w", err)
		}
	}

	return New(
		WithRules(rules),
		WithSimilarity(similarity, cfg.SimilarityThreshold),
		WithLanguage(tag),
		WithPronouns(cfg.Pronouns),
		WithLogger(logger),
	), nil
}

func keywordsFromConfig(entries []config.KeywordConfig) ([]Keyword, error) {
	keywords := make([]Keyword, 0, len(entries))
	for i, entry := range entries {
		role, err := ParseRole(entry.Role)
		if err != nil {
			return nil, fmt.Errorf("engine.keywords[%d]: %w", i, err)
		}
		kind, err := ParseKind(entry.Kind)
		if err != nil {
			return nil, fmt.Errorf("engine.keywords[%d]: %w", i, err)
		}
		keywords = append(keywords, Keyword{
			Text:     entry.Text,
			Role:     role,
			Kind:     kind,
			Priority: entry.Priority,
			Relocate: entry.Relocate,
			Wrap:     entry.Wrap,
		})
	}
	return keywords, nil
}
