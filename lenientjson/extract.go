package lenientjson

import (
	"regexp"
	"strings"
)

// fencePattern matches markdown code blocks with an optional language tag.
var fencePattern = regexp.MustCompile("(?s)```(\\w*)\\s*\\n?(.*?)\\n?```")

// Extract pulls the JSON-like candidate out of a response that may wrap it
// in markdown fences or surrounding prose. When nothing better is found the
// trimmed input is returned unchanged.
func Extract(text string) (string, []Warning) {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return trimmed, nil
	}

	for _, match := range fencePattern.FindAllStringSubmatch(trimmed, -1) {
		lang := strings.ToLower(match[1])
		if lang != "" && lang != "json" {
			continue
		}
		content := strings.TrimSpace(match[2])
		if strings.HasPrefix(content, "{") || strings.HasPrefix(content, "[") {
			return content, []Warning{{Message: "extracted value from markdown code block"}}
		}
	}

	if candidate, ok := extractRaw(trimmed); ok {
		return candidate, []Warning{{Message: "extracted value from surrounding text"}}
	}

	return trimmed, nil
}

// extractRaw finds the first object or array in the text by bracket
// matching, string-aware so braces inside quoted values do not confuse it.
func extractRaw(text string) (string, bool) {
	startObj := strings.IndexByte(text, '{')
	startArr := strings.IndexByte(text, '[')

	start := -1
	var closeChar byte
	switch {
	case startObj >= 0 && (startArr < 0 || startObj < startArr):
		start = startObj
		closeChar = '}'
	case startArr >= 0:
		start = startArr
		closeChar = ']'
	}
	if start < 0 {
		return "", false
	}

	rest := text[start:]
	openChar := rest[0]
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == openChar:
			depth++
		case c == closeChar:
			depth--
			if depth == 0 {
				return rest[:i+1], true
			}
		}
	}
	return "", false
}
