package news

import (
	"strings"

	"newsticker/models"
)

// Label prefixes recognised inside a block. Matching is case-sensitive;
// anything else on a line (Description:, commentary, preambles) is dropped.
const (
	labelDate     = "Date:"
	labelSource   = "Source:"
	labelHeadline = "Headline:"
)

// Parse scans one raw agent reply and returns every complete record found
// in it. The reply is a convention, not a contract: blocks are separated
// by blank lines and a block only materialises a record once all three
// labels carry a non-empty value. Incomplete blocks are skipped silently,
// repeated labels within a block are resolved last-occurrence-wins, and
// an input with no parseable block yields an empty slice, not an error.
func Parse(text string) []models.NewsRecord {
	records := make([]models.NewsRecord, 0)

	var current models.NewsRecord
	flush := func() {
		if current.Date != "" && current.Source != "" && current.Headline != "" {
			records = append(records, current)
		}
		current = models.NewsRecord{}
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		switch {
		case strings.HasPrefix(line, labelDate):
			current.Date = strings.TrimSpace(strings.TrimPrefix(line, labelDate))
		case strings.HasPrefix(line, labelSource):
			current.Source = strings.TrimSpace(strings.TrimPrefix(line, labelSource))
		case strings.HasPrefix(line, labelHeadline):
			current.Headline = strings.TrimSpace(strings.TrimPrefix(line, labelHeadline))
		}
	}
	flush()

	return records
}
