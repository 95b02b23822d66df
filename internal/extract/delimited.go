package extract

import (
	"strings"
)

// quoteChar toggles the in-quotes state of the tokenizer
const quoteChar = '"'

// Lines splits decoded text into its non-empty lines. Both \n and \r\n
// line endings are accepted; whitespace-only lines count as empty.
func Lines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// TokenizeLine splits one delimited line into trimmed cells. Comma, semicolon
// and tab all separate cells unless they appear between quotes.
func TokenizeLine(line string) []string {
	var (
		cells    []string
		current  strings.Builder
		inQuotes bool
	)

	for _, r := range line {
		switch {
		case r == quoteChar:
			inQuotes = !inQuotes
		case isDelimiter(r) && !inQuotes:
			cells = append(cells, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	cells = append(cells, strings.TrimSpace(current.String()))

	return cells
}

// Rows tokenizes every non-empty line of text
func Rows(text string) [][]string {
	lines := Lines(text)
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, TokenizeLine(line))
	}
	return rows
}

func isDelimiter(r rune) bool {
	return r == ',' || r == ';' || r == '\t'
}
