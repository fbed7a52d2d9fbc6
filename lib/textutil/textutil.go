package textutil

import (
	"regexp"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

var wordRegex = regexp.MustCompile(`[a-z0-9]+(?:'[a-z]+)?`)

// Normalize lowercases and trims text the same way the tagger and the
// keyword configuration are normalized, so comparisons stay consistent.
func Normalize(text string) string {
	return strings.TrimSpace(strings.ToLower(text))
}

// Tokenize splits normalized text into word tokens, dropping punctuation.
func Tokenize(text string) []string {
	return wordRegex.FindAllString(Normalize(text), -1)
}

// Lemmatizer reduces English words to their dictionary base form
// ("boxes" -> "box", "running" -> "run"). Unknown words pass through
// unchanged.
type Lemmatizer struct {
	inner *golem.Lemmatizer
}

func NewLemmatizer() (*Lemmatizer, error) {
	inner, err := golem.New(en.New())
	if err != nil {
		return nil, err
	}
	return &Lemmatizer{inner: inner}, nil
}

func (l *Lemmatizer) Lemma(word string) string {
	return l.inner.Lemma(word)
}

// LemmaSet tokenizes text and returns the set of lemmas it contains.
func (l *Lemmatizer) LemmaSet(text string) map[string]struct{} {
	tokens := Tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[l.Lemma(tok)] = struct{}{}
	}
	return set
}
