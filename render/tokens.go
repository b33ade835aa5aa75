package render

import (
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

var (
	encMu    sync.Mutex
	encCache = make(map[string]*tiktoken.Tiktoken)
)

// TokenEstimate reports how many prompt tokens text costs for the given
// model. Counts are exact when the model's tiktoken encoding is available
// and fall back to a character-ratio estimate otherwise, so callers can
// always budget a rendered schema block.
func TokenEstimate(text, model string) int {
	if text == "" {
		return 0
	}
	if enc := encodingFor(model); enc != nil {
		return len(enc.Encode(text, nil, nil))
	}
	return estimateTokens(text)
}

func encodingFor(model string) *tiktoken.Tiktoken {
	encMu.Lock()
	defer encMu.Unlock()

	if enc, ok := encCache[model]; ok {
		return enc
	}
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding("cl100k_base")
	}
	if err != nil {
		enc = nil
	}
	// Failures are cached too; encoding data is fetched lazily and a
	// broken fetch should not be retried on every call.
	encCache[model] = enc
	return enc
}

// estimateTokens approximates a token count from character classes:
// CJK runs about 1.5 characters per token, everything else about 4.
func estimateTokens(text string) int {
	total := utf8.RuneCountInString(text)
	cjk := 0
	for _, r := range text {
		if isCJK(r) {
			cjk++
		}
	}
	estimated := int(float64(cjk)/1.5 + float64(total-cjk)/4.0)
	if estimated == 0 {
		estimated = 1
	}
	return estimated
}

func isCJK(r rune) bool {
	switch {
	case r >= 0x4E00 && r <= 0x9FFF,
		r >= 0x3400 && r <= 0x4DBF,
		r >= 0x3040 && r <= 0x30FF,
		r >= 0xAC00 && r <= 0xD7AF:
		return true
	}
	return false
}
