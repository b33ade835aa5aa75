package lenientjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Warning records a recoverable deviation from strict JSON.
type Warning struct {
	Message string
}

// ErrNoValue is returned when no value can be recovered from the input.
var ErrNoValue = errors.New("no parsable JSON-like value found")

// Parse extracts and parses a JSON-like value from text. Recoverable
// malformations (unquoted keys, trailing commas, single quotes, comments,
// markdown fences) are repaired and reported as warnings; Parse fails only
// for fundamentally unparsable input.
func Parse(text string) (any, []Warning, error) {
	candidate, warnings := Extract(text)
	if candidate == "" {
		return nil, warnings, ErrNoValue
	}

	var value any
	if err := json.Unmarshal([]byte(candidate), &value); err == nil {
		return value, warnings, nil
	}

	repaired, repairWarnings := repair(candidate)
	warnings = append(warnings, repairWarnings...)
	if err := json.Unmarshal([]byte(repaired), &value); err != nil {
		return nil, warnings, fmt.Errorf("%w: %v", ErrNoValue, err)
	}
	// A repair that collapses free prose into one big string is not a
	// recovery; only structured values count on this path.
	switch value.(type) {
	case map[string]any, []any:
		return value, warnings, nil
	}
	return nil, warnings, ErrNoValue
}

var strictNumberRe = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// repair rewrites near-JSON into strict JSON, reporting each fix.
func repair(in string) (string, []Warning) {
	var out strings.Builder
	var warnings []Warning
	warnf := func(format string, args ...any) {
		warnings = append(warnings, Warning{Message: fmt.Sprintf(format, args...)})
	}

	var stack []byte
	expectKey := false
	top := func() byte {
		if len(stack) == 0 {
			return 0
		}
		return stack[len(stack)-1]
	}

	// nextSignificant returns the first byte at or after i that is not
	// whitespace or part of a comment, or 0 at end of input.
	nextSignificant := func(i int) byte {
		for i < len(in) {
			c := in[i]
			switch {
			case c == ' ' || c == '\t' || c == '\n' || c == '\r':
				i++
			case c == '/' && i+1 < len(in) && in[i+1] == '/':
				for i < len(in) && in[i] != '\n' {
					i++
				}
			case c == '/' && i+1 < len(in) && in[i+1] == '*':
				end := strings.Index(in[i+2:], "*/")
				if end < 0 {
					return 0
				}
				i += 2 + end + 2
			default:
				return c
			}
		}
		return 0
	}

	i := 0
	for i < len(in) {
		c := in[i]
		switch {
		case c == '"' || c == '\'':
			content, next := readString(in, i)
			if c == '\'' {
				warnf("converted single-quoted string to double-quoted")
			}
			quoted, _ := json.Marshal(content)
			out.Write(quoted)
			i = next

		case c == '/' && i+1 < len(in) && in[i+1] == '/':
			for i < len(in) && in[i] != '\n' {
				i++
			}
			warnf("stripped line comment")

		case c == '/' && i+1 < len(in) && in[i+1] == '*':
			end := strings.Index(in[i+2:], "*/")
			if end < 0 {
				i = len(in)
			} else {
				i += 2 + end + 2
			}
			warnf("stripped block comment")

		case c == '{':
			stack = append(stack, '{')
			expectKey = true
			out.WriteByte(c)
			i++

		case c == '[':
			stack = append(stack, '[')
			expectKey = false
			out.WriteByte(c)
			i++

		case c == '}' || c == ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			expectKey = false
			out.WriteByte(c)
			i++

		case c == ':':
			expectKey = false
			out.WriteByte(c)
			i++

		case c == ',':
			next := nextSignificant(i + 1)
			if next == '}' || next == ']' || next == 0 {
				warnf("dropped trailing comma")
				i++
				continue
			}
			if top() == '{' {
				expectKey = true
			}
			out.WriteByte(c)
			i++

		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			out.WriteByte(c)
			i++

		default:
			word, next := readWord(in, i)
			switch {
			case word == "true" || word == "false" || word == "null":
				out.WriteString(word)
			case strictNumberRe.MatchString(word):
				out.WriteString(word)
			case !expectKey && isLooseNumber(word):
				f, _ := strconv.ParseFloat(word, 64)
				out.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
				warnf("normalized non-standard number %q", word)
			default:
				quoted, _ := json.Marshal(word)
				out.Write(quoted)
				if expectKey {
					warnf("quoted bare object key %q", word)
				} else {
					warnf("quoted bare word value %q", word)
				}
			}
			i = next
		}
	}

	return out.String(), warnings
}

// readString consumes a quoted string starting at i (either quote style)
// and returns its unescaped content plus the index past the close quote.
func readString(in string, i int) (string, int) {
	quote := in[i]
	var content strings.Builder
	j := i + 1
	for j < len(in) {
		c := in[j]
		if c == '\\' && j+1 < len(in) {
			next := in[j+1]
			switch next {
			case 'n':
				content.WriteByte('\n')
			case 't':
				content.WriteByte('\t')
			case 'r':
				content.WriteByte('\r')
			case 'u':
				if j+6 <= len(in) {
					if r, err := strconv.ParseUint(in[j+2:j+6], 16, 32); err == nil {
						content.WriteRune(rune(r))
						j += 6
						continue
					}
				}
				content.WriteByte(next)
			default:
				content.WriteByte(next)
			}
			j += 2
			continue
		}
		if c == quote {
			return content.String(), j + 1
		}
		content.WriteByte(c)
		j++
	}
	return content.String(), j
}

// readWord consumes a run of bare-word characters starting at i.
func readWord(in string, i int) (string, int) {
	j := i
	for j < len(in) && !isDelimiter(in[j]) {
		j++
	}
	return strings.TrimSpace(in[i:j]), j
}

func isDelimiter(c byte) bool {
	switch c {
	case '{', '}', '[', ']', ':', ',', '"', '\'', '/', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

func isLooseNumber(word string) bool {
	_, err := strconv.ParseFloat(word, 64)
	return err == nil
}
