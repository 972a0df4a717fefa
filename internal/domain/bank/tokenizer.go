// Package bank holds the per-bank CSV adapters that turn an exported statement into
// normalized transactions.
package bank

import (
	"strings"
)

const quote = '"'

// SplitRow splits one line into fields. Fields may be wrapped in double quotes and a
// doubled quote inside a quoted field is a literal quote. Empty fields are kept. An
// unterminated quote at end of line is tolerated and the buffer becomes the last field.
func SplitRow(line string, delim rune) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch {
		case r == quote:
			if inQuotes && i+1 < len(runes) && runes[i+1] == quote {
				current.WriteRune(quote)
				i++
				continue
			}
			inQuotes = !inQuotes
		case r == delim && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}

	return append(fields, current.String())
}

// splitPlain splits on delim without any quote handling.
func splitPlain(line string, delim string) []string {
	return strings.Split(line, delim)
}

// trimQuotes strips one pair of surrounding quotes left on a field.
func trimQuotes(s string) string {
	if len(s) >= 2 && s[0] == quote && s[len(s)-1] == quote {
		return s[1 : len(s)-1]
	}
	return s
}
