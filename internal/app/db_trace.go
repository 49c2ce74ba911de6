package app

import (
	"regexp"
	"strconv"
	"strings"
)

const maxTracedQueryLength = 512

var (
	queryWhitespaceRegex = regexp.MustCompile(`\s+`)
	valuesKeywordRegex   = regexp.MustCompile(`(?i)\bVALUES\s*\(`)
)

// formatDBQueryForTrace flattens a statement for the db.statement attribute. Batched inserts
// keep their first VALUES tuple and report how many more rows were sent.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := collapseValueTuples(queryWhitespaceRegex.ReplaceAllString(query, " "))
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}

func collapseValueTuples(query string) string {
	loc := valuesKeywordRegex.FindStringIndex(query)
	if loc == nil {
		return query
	}

	start := loc[1] - 1
	firstEnd := -1
	lastEnd := -1
	rows := 0
	depth := 0
scan:
	for i := start; i < len(query); i++ {
		switch query[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				rows++
				lastEnd = i
				if firstEnd < 0 {
					firstEnd = i
				}
			}
		case ',', ' ':
		default:
			if depth == 0 {
				break scan
			}
		}
	}
	if rows < 2 || depth != 0 {
		return query
	}

	rest := strings.TrimSpace(query[lastEnd+1:])
	out := query[:firstEnd+1] + " /* +" + strconv.Itoa(rows-1) + " rows */"
	if rest != "" {
		out += " " + rest
	}
	return out
}
