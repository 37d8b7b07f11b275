package agent

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// textKeys are the keys the generic fallback search considers, most
// specific first.
var textKeys = []string{"response", "text", "message", "content", "answer", "output"}

// ExtractText pulls the reply text out of an arbitrarily shaped success
// payload. It tries the known result.response path first, then a generic
// depth-first search for the first non-empty string under a known text
// key, and returns "" when nothing usable is found.
func ExtractText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	doc := string(raw)
	if !gjson.Valid(doc) {
		return ""
	}
	if v := gjson.Get(doc, "result.response"); v.Type == gjson.String && v.Str != "" {
		return v.Str
	}
	parsed := gjson.Parse(doc)
	if parsed.Type == gjson.String {
		return parsed.Str
	}
	return deepText(parsed)
}

// deepText walks the payload in document order looking for the first
// non-empty string held by one of the known text keys. Values checked at
// each level before descending, so shallower matches win.
func deepText(v gjson.Result) string {
	if !v.IsObject() && !v.IsArray() {
		return ""
	}
	found := ""
	if v.IsObject() {
		for _, key := range textKeys {
			child := v.Get(key)
			if child.Type == gjson.String && child.Str != "" {
				return child.Str
			}
		}
	}
	v.ForEach(func(_, child gjson.Result) bool {
		if s := deepText(child); s != "" {
			found = s
			return false
		}
		return true
	})
	return found
}
