// Package keywords tags reviews with the categories whose configured
// keywords appear in the review text, and retroactively re-tags stored
// reviews when the keyword configuration grows.
package keywords

import (
	"sort"
	"strings"

	"reviewlens-backend/lib/textutil"
)

// Tagger matches normalized, lemmatized review text against keyword lists.
type Tagger struct {
	lemmatizer *textutil.Lemmatizer
}

func NewTagger() (*Tagger, error) {
	lemmatizer, err := textutil.NewLemmatizer()
	if err != nil {
		return nil, err
	}
	return &Tagger{lemmatizer: lemmatizer}, nil
}

// Tag returns the categories and literal keywords matched by the review
// text, each deduplicated and sorted. Brand-scoped keywords are applied
// before global ones; matches from both are merged.
func (t *Tagger) Tag(reviewText string, brandKeywords, globalKeywords map[string][]string) ([]string, []string) {
	normText := textutil.Normalize(reviewText)
	lemmas := t.lemmatizer.LemmaSet(reviewText)

	matchedCategories := map[string]struct{}{}
	matchedKeywords := map[string]struct{}{}

	for _, scope := range []map[string][]string{brandKeywords, globalKeywords} {
		for category, kws := range scope {
			for _, kw := range kws {
				if t.Matches(kw, normText, lemmas) {
					matchedCategories[category] = struct{}{}
					matchedKeywords[kw] = struct{}{}
				}
			}
		}
	}

	return sortedKeys(matchedCategories), sortedKeys(matchedKeywords)
}

// Matches reports whether one keyword appears in the review. Single words
// match on lemma membership alone. Phrases require every word's lemma to be
// present AND the literal phrase as a substring: lemma presence alone would
// match scattered words, substring presence alone would miss inflections.
func (t *Tagger) Matches(keyword, normText string, lemmas map[string]struct{}) bool {
	kw := textutil.Normalize(keyword)
	if kw == "" {
		return false
	}

	if !strings.Contains(kw, " ") {
		_, ok := lemmas[t.lemmatizer.Lemma(kw)]
		return ok
	}

	for _, token := range textutil.Tokenize(kw) {
		if _, ok := lemmas[t.lemmatizer.Lemma(token)]; !ok {
			return false
		}
	}
	return strings.Contains(normText, kw)
}

// MatchingKeywords returns the subset of keywords that match the review
// text, in input order.
func (t *Tagger) MatchingKeywords(reviewText string, kws []string) []string {
	normText := textutil.Normalize(reviewText)
	lemmas := t.lemmatizer.LemmaSet(reviewText)

	var matched []string
	for _, kw := range kws {
		if t.Matches(kw, normText, lemmas) {
			matched = append(matched, kw)
		}
	}
	return matched
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
