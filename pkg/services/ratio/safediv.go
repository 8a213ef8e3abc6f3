package ratio

import "math"

const percent = 100.0

// safeDiv returns num/den*scale. Any nil operand or a denominator <= 0 yields (0, false).
func safeDiv(num, den *float64, scale float64) (float64, bool) {
	if num == nil || den == nil || *den <= 0 {
		return 0, false
	}
	v := *num / *den * scale
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func sum(a, b *float64) *float64 {
	if a == nil || b == nil {
		return nil
	}
	v := *a + *b
	return &v
}

func diff(a, b *float64) *float64 {
	if a == nil || b == nil {
		return nil
	}
	v := *a - *b
	return &v
}

// sumPartial adds the present terms; nil only when every term is nil.
func sumPartial(terms ...*float64) *float64 {
	var (
		total   float64
		present bool
	)
	for _, t := range terms {
		if t != nil {
			total += *t
			present = true
		}
	}
	if !present {
		return nil
	}
	return &total
}

// orZero is for secondary terms that statements routinely omit.
func orZero(v *float64) *float64 {
	if v == nil {
		zero := 0.0
		return &zero
	}
	return v
}
