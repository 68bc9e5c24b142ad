package types

import (
	"math"
	"strconv"
	"strings"
)

// Converter turns literal socket text into a typed value.
type Converter func(text string) any

var converters = map[Type]Converter{
	Boolean: convertBoolean,
	Number:  convertNumber,
}

// Convert applies the conversion registered for t.
// Types without a conversion pass the text through unchanged.
func Convert(t Type, text string) any {
	if c, ok := converters[t]; ok {
		return c(text)
	}
	return text
}

// Only the exact text "true" is true.
func convertBoolean(text string) any {
	return text == "true"
}

// Empty text is 0 and unparsable text is NaN.
func convertNumber(text string) any {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return float64(0)
	}
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
