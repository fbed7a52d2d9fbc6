package analytics

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	markOpen  = "<mark>"
	markClose = "</mark>"
)

// Highlight wraps every case-insensitive occurrence of the keywords in
// <mark> tags. Longer keywords are applied first so a phrase is marked as
// a whole rather than being broken up by one of its words, and text
// already inside a mark is never marked again.
func Highlight(text string, kws []string) string {
	if text == "" || len(kws) == 0 {
		return text
	}

	ordered := make([]string, 0, len(kws))
	seen := make(map[string]struct{}, len(kws))
	for _, kw := range kws {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		lower := strings.ToLower(kw)
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		ordered = append(ordered, kw)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return utf8.RuneCountInString(ordered[i]) > utf8.RuneCountInString(ordered[j])
	})

	for _, kw := range ordered {
		text = markOccurrences(text, kw)
	}
	return text
}

var (
	markOpenRunes  = []rune(markOpen)
	markCloseRunes = []rune(markClose)
)

// markOccurrences walks the text rune by rune. Case folding can change a
// character's byte length, so byte offsets into the lowered text are not
// safe; ToLower maps runes one to one, which keeps the original and the
// lowered rune slices aligned.
func markOccurrences(text, keyword string) string {
	textRunes := []rune(text)
	lowerRunes := []rune(strings.ToLower(text))
	kwRunes := []rune(strings.ToLower(keyword))
	if len(kwRunes) == 0 {
		return text
	}

	var out strings.Builder
	depth := 0
	i := 0
	for i < len(textRunes) {
		if runesHavePrefix(textRunes[i:], markOpenRunes) {
			depth++
			out.WriteString(markOpen)
			i += len(markOpenRunes)
			continue
		}
		if runesHavePrefix(textRunes[i:], markCloseRunes) {
			depth--
			out.WriteString(markClose)
			i += len(markCloseRunes)
			continue
		}
		if depth == 0 && runesHavePrefix(lowerRunes[i:], kwRunes) {
			out.WriteString(markOpen)
			out.WriteString(string(textRunes[i : i+len(kwRunes)]))
			out.WriteString(markClose)
			i += len(kwRunes)
			continue
		}
		out.WriteRune(textRunes[i])
		i++
	}
	return out.String()
}

func runesHavePrefix(rs, prefix []rune) bool {
	if len(rs) < len(prefix) {
		return false
	}
	for i, r := range prefix {
		if rs[i] != r {
			return false
		}
	}
	return true
}
