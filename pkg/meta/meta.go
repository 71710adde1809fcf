// Package meta holds the ordered document metadata collected while rendering.
package meta

import (
	"strings"
	"unicode"
)

// Entry is a single metadata key and its rendered value.
type Entry struct {
	Key   string
	Value string
}

// Queue is an append-only list of entries in document order.
// The zero value is ready to use. A Queue must not be shared by
// concurrent renders.
type Queue struct {
	entries []Entry
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an entry.
func (q *Queue) Push(key, value string) {
	q.entries = append(q.entries, Entry{Key: key, Value: value})
}

// Len returns the number of entries.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.entries)
}

// Entries returns a copy of the entries in document order.
func (q *Queue) Entries() []Entry {
	if q == nil {
		return nil
	}
	out := make([]Entry, len(q.entries))
	copy(out, q.entries)
	return out
}

// Get returns the value of the last entry whose key matches key
// case-insensitively.
func (q *Queue) Get(key string) (string, bool) {
	if q == nil {
		return "", false
	}
	for i := len(q.entries) - 1; i >= 0; i-- {
		if strings.EqualFold(q.entries[i].Key, key) {
			return q.entries[i].Value, true
		}
	}
	return "", false
}

// Reset removes all entries.
func (q *Queue) Reset() {
	q.entries = q.entries[:0]
}

// Runs splits a multi-valued field into runs separated by two or more
// whitespace characters. Single spaces stay inside a run, so
// "Jane Doe  John Roe" yields two runs.
func Runs(value string) []string {
	var (
		runs  []string
		start = -1
	)

	isSpace := func(i int) bool {
		return i < len(value) && unicode.IsSpace(rune(value[i]))
	}

	for i := 0; i <= len(value); i++ {
		if i == len(value) || (isSpace(i) && isSpace(i+1)) {
			if start >= 0 {
				if run := strings.TrimSpace(value[start:i]); run != "" {
					runs = append(runs, run)
				}
				start = -1
			}
			continue
		}
		if start < 0 && !isSpace(i) {
			start = i
		}
	}

	return runs
}
