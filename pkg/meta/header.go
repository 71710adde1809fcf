package meta

import (
	"regexp"
	"strings"
)

// Header is the document header resolved from a queue.
// Empty fields were absent.
type Header struct {
	Title       string
	Author      string
	Affiliation string
	Copyright   string
	Date        string
	CSS         string
	JavaScript  string
}

// Header resolves the standard header keys. When a key occurs more than
// once the last occurrence wins. A parseable rcsauthor or rcsdate
// overrides author or date.
func (q *Queue) Header() Header {
	var (
		hdr                Header
		rcsAuthor, rcsDate string
	)

	if q == nil {
		return hdr
	}

	for _, entry := range q.entries {
		switch strings.ToLower(entry.Key) {
		case "title":
			hdr.Title = entry.Value
		case "author":
			hdr.Author = entry.Value
		case "affiliation":
			hdr.Affiliation = entry.Value
		case "copyright":
			hdr.Copyright = entry.Value
		case "date":
			hdr.Date = entry.Value
		case "css":
			hdr.CSS = entry.Value
		case "javascript":
			hdr.JavaScript = entry.Value
		case "rcsauthor":
			rcsAuthor, _ = RCSAuthor(entry.Value)
		case "rcsdate":
			rcsDate, _ = RCSDate(entry.Value)
		}
	}

	if rcsAuthor != "" {
		hdr.Author = rcsAuthor
	}
	if rcsDate != "" {
		hdr.Date = rcsDate
	}

	return hdr
}

//nolint:gochecknoglobals // Compiled once, read-only.
var (
	rcsAuthorPattern = regexp.MustCompile(`^\s*\$Author:\s*(.*?)\s*\$\s*$`)
	rcsDatePattern   = regexp.MustCompile(`^\s*\$Date:\s*(\d{4})[/-](\d{2})[/-](\d{2})(?:\s.*?)?\s*\$\s*$`)
)

// RCSAuthor extracts the name from an RCS "$Author: name $" keyword.
func RCSAuthor(value string) (string, bool) {
	match := rcsAuthorPattern.FindStringSubmatch(value)
	if match == nil || match[1] == "" {
		return "", false
	}
	return match[1], true
}

// RCSDate converts an RCS "$Date: 2020/01/02 10:00:00 $" keyword into
// "2020-01-02".
func RCSDate(value string) (string, bool) {
	match := rcsDatePattern.FindStringSubmatch(value)
	if match == nil {
		return "", false
	}
	return match[1] + "-" + match[2] + "-" + match[3], true
}
