package climanager

import (
	"strings"

	"github.com/pkg/errors"
)

// splitLine breaks a command line into its words. Words are separated by whitespace, except
// within double quotes, which allow paths (or names) to contain spaces. A quote may only start at
// the beginning of a word and must be followed by whitespace or the end of the line when it
// closes. Inside quotes, \" gives a literal quote.
func splitLine(line string) ([]string, error) {
	var words []string
	var word strings.Builder

	inWord := false
	inQuote := false

	rs := []rune(line)
	for i := 0; i < len(rs); i++ {
		c := rs[i]

		switch {
		case inQuote:
			if c == '\\' && i+1 < len(rs) && rs[i+1] == '"' {
				word.WriteRune('"')
				i++
			} else if c == '"' {
				if i+1 < len(rs) && !isSpace(rs[i+1]) {
					return nil, errors.Errorf("Close quote at position %d is not followed by a space", i)
				}

				inQuote = false
				words = append(words, word.String())
				word.Reset()
			} else {
				word.WriteRune(c)
			}
		case isSpace(c):
			if inWord {
				words = append(words, word.String())
				word.Reset()
				inWord = false
			}
		case c == '"':
			if inWord {
				return nil, errors.Errorf("Quote at position %d is inside a word", i)
			}

			inQuote = true
		default:
			inWord = true
			word.WriteRune(c)
		}
	}

	if inQuote {
		return nil, errors.Errorf("Quote was not closed")
	} else if inWord {
		words = append(words, word.String())
	}

	return words, nil
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// quote gives a word in a form that splitLine will read back as a single word
func quote(word string) string {
	if word != "" && !strings.ContainsAny(word, " \t\"") {
		return word
	}

	return `"` + strings.Replace(word, `"`, `\"`, -1) + `"`
}
