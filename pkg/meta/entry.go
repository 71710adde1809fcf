package meta

import (
	"strings"
	"unicode"
)

// NormalizeKey lower-cases key and drops all whitespace, so "Base Header
// Level" and "baseheaderlevel" name the same field.
func NormalizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, key)
}

// ParseEntry parses a "key: value" string. The key is normalized and
// the value trimmed. It reports false when there is no colon or the key
// is empty.
func ParseEntry(s string) (Entry, bool) {
	key, value, found := strings.Cut(s, ":")
	if !found {
		return Entry{}, false
	}
	key = NormalizeKey(key)
	if key == "" {
		return Entry{}, false
	}
	return Entry{Key: key, Value: strings.TrimSpace(value)}, true
}

// Merge combines default, document and override entries. A default is
// kept only when neither the document nor the overrides set its key;
// overrides replace document entries of the same key and come last.
// Keys are compared after normalization.
func Merge(defaults, doc, overrides []Entry) []Entry {
	overridden := keySet(overrides)
	present := keySet(doc)

	out := make([]Entry, 0, len(defaults)+len(doc)+len(overrides))
	for _, entry := range defaults {
		key := NormalizeKey(entry.Key)
		if !present[key] && !overridden[key] {
			out = append(out, entry)
		}
	}
	for _, entry := range doc {
		if !overridden[NormalizeKey(entry.Key)] {
			out = append(out, entry)
		}
	}
	return append(out, overrides...)
}

func keySet(entries []Entry) map[string]bool {
	set := make(map[string]bool, len(entries))
	for _, entry := range entries {
		set[NormalizeKey(entry.Key)] = true
	}
	return set
}
