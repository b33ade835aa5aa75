package decode

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/BaSui01/specform/spec"
)

// Serialize renders decoded data as JSON text: dates and datetimes become
// ISO strings, keywords become plain strings, recursively over structures
// and sequences.
func Serialize(data any) (string, error) {
	plain := toPlain(data)
	b, err := json.Marshal(plain)
	if err != nil {
		return "", fmt.Errorf("serialize: %w", err)
	}
	return string(b), nil
}

func toPlain(value any) any {
	switch v := value.(type) {
	case spec.Keyword:
		return string(v)
	case spec.Date:
		return v.String()
	case time.Time:
		return v.Format(time.RFC3339)
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, inner := range v {
			out[key] = toPlain(inner)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, inner := range v {
			out[i] = toPlain(inner)
		}
		return out
	default:
		return value
	}
}
