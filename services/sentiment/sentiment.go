// Package sentiment defines the polarity-scoring contract the crawl
// pipeline consumes, and maps raw polarity onto the three-way category
// stored with each review.
package sentiment

import "github.com/jonreiter/govader"

const (
	CategoryPositive = "positive"
	CategoryNegative = "negative"
	CategoryNeutral  = "neutral"
)

// Scorer maps review text to a polarity in [-1, 1]. An error drops the
// record from insertion entirely; no partial rows are stored.
type Scorer interface {
	Score(text string) (float64, error)
}

// Categorize buckets a polarity score. The band between -0.1 and 0.3 is
// deliberately wide: mildly mixed reviews read as neutral, not positive.
func Categorize(polarity float64) string {
	switch {
	case polarity > 0.3:
		return CategoryPositive
	case polarity <= -0.1:
		return CategoryNegative
	default:
		return CategoryNeutral
	}
}

type vaderScorer struct {
	score func(text string) float64
}

// NewVADER returns a Scorer backed by the VADER lexicon. VADER's compound
// score is already normalized to [-1, 1].
func NewVADER() Scorer {
	analyzer := govader.NewSentimentIntensityAnalyzer()
	return vaderScorer{
		score: func(text string) float64 {
			return analyzer.PolarityScores(text).Compound
		},
	}
}

func (s vaderScorer) Score(text string) (float64, error) {
	if text == "" {
		return 0, nil
	}
	return s.score(text), nil
}
