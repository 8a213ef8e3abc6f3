package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

var numericNoise = strings.NewReplacer(
	",", "",
	"，", "",
	" ", "",
	"　", "",
	"円", "",
	"¥", "",
	"￥", "",
)

// toNumber coerces a raw extract value. ok is false for anything that is not a finite number.
func toNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, ok := parseAmount(n)
		if !ok {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// parseAmount parses a printed amount. △ and ▲ mark negatives in Japanese statements.
func parseAmount(s string) (float64, bool) {
	s = numericNoise.Replace(strings.TrimSpace(s))
	negative := false
	for _, marker := range []string{"△", "▲"} {
		if rest, found := strings.CutPrefix(s, marker); found {
			s = rest
			negative = true
			break
		}
	}
	if s == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		f = -f
	}
	return f, true
}
