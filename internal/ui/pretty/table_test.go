package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdrender/internal/ui/pretty"
	"github.com/yaklabco/gomdrender/pkg/meta"
)

func TestFormatMetaTable(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), 80)

	tests := []struct {
		name     string
		entries  []meta.Entry
		header   meta.Header
		contains []string
		absent   []string
	}{
		{
			name:    "empty",
			entries: nil,
		},
		{
			name: "entries only",
			entries: []meta.Entry{
				{Key: "title", Value: "Hello"},
				{Key: "lang", Value: "en"},
			},
			contains: []string{"KEY", "VALUE", "title", "Hello", "lang"},
			absent:   []string{"=title"},
		},
		{
			name:     "resolved header",
			entries:  []meta.Entry{{Key: "title", Value: "Hello"}},
			header:   meta.Header{Title: "Hello", Author: "Ann"},
			contains: []string{"=title", "=author", "Ann"},
			absent:   []string{"=date"},
		},
		{
			name:     "multi-line value collapsed",
			entries:  []meta.Entry{{Key: "abstract", Value: "one\ntwo"}},
			contains: []string{"one two"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			out := formatter.FormatMetaTable(testCase.entries, testCase.header)
			if testCase.entries == nil {
				assert.Empty(t, out)
				return
			}
			for _, want := range testCase.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range testCase.absent {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}

func TestFormatMetaTable_Truncates(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), 40)
	out := formatter.FormatMetaTable([]meta.Entry{
		{Key: "abstract", Value: strings.Repeat("word ", 40)},
	}, meta.Header{})

	assert.Contains(t, out, "...")
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 40, line)
	}
}
