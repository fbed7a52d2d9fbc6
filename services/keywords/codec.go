package keywords

import "encoding/json"

// Keyword lists and per-review tag sets are stored as JSON string arrays in
// TEXT columns. Encoding never fails for []string; decoding tolerates the
// empty string so old rows without tags read as no tags.

func EncodeList(items []string) string {
	if items == nil {
		items = []string{}
	}
	out, _ := json.Marshal(items)
	return string(out)
}

func DecodeList(raw string) []string {
	if raw == "" {
		return nil
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	return items
}
