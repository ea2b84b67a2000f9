package textutil

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/hbollon/go-edlib"
)

// Metric names accepted by MetricByName.
const (
	MetricLCS          = "lcs"
	MetricRatio        = "ratio"
	MetricJaroWinkler  = "jaro-winkler"
	MetricLevenshtein  = "levenshtein"
	MetricSorensenDice = "sorensen-dice"
	MetricCosine       = "cosine"
)

var metricFuncs = map[string]func(a, b string) float64{
	MetricLCS:          LCSSimilarity,
	MetricRatio:        RatioSimilarity,
	MetricJaroWinkler:  JaroWinklerSimilarity,
	MetricLevenshtein:  LevenshteinSimilarity,
	MetricSorensenDice: SorensenDiceSimilarity,
	MetricCosine: func(a, b string) float64 {
		return CosineSimilarity(NewFingerprint(a), NewFingerprint(b))
	},
}

// Metrics lists the supported metric names.
func Metrics() []string {
	return []string{MetricLCS, MetricRatio, MetricJaroWinkler, MetricLevenshtein, MetricSorensenDice, MetricCosine}
}

// MetricByName resolves a metric name. Empty selects the LCS metric.
func MetricByName(name string) (func(a, b string) float64, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = MetricLCS
	}
	fn, ok := metricFuncs[key]
	if !ok {
		return nil, fmt.Errorf("unknown similarity metric %q (want one of %s)", name, strings.Join(Metrics(), ", "))
	}
	return fn, nil
}

// LCSSimilarity scores a and b by their longest common subsequence edit
// distance relative to the longer string.
func LCSSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	score, err := edlib.StringsSimilarity(a, b, edlib.Lcs)
	if err != nil {
		return 0
	}
	return float64(score)
}

// RatioSimilarity is twice the longest common subsequence length divided by
// the combined rune length.
func RatioSimilarity(a, b string) float64 {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 1
	}
	return 2 * float64(edlib.LCS(a, b)) / float64(total)
}

func JaroWinklerSimilarity(a, b string) float64 {
	return strutil.Similarity(a, b, metrics.NewJaroWinkler())
}

func LevenshteinSimilarity(a, b string) float64 {
	return strutil.Similarity(a, b, metrics.NewLevenshtein())
}

func SorensenDiceSimilarity(a, b string) float64 {
	return strutil.Similarity(a, b, metrics.NewSorensenDice())
}
