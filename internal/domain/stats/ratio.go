package stats

import (
	"math"
	"strconv"
)

// Ratio is a derived percentage that may be not applicable (zero denominator).
type Ratio struct {
	Value      float64
	Applicable bool
}

func NotApplicable() Ratio {
	return Ratio{}
}

// Percent returns num/den as a percentage rounded to one decimal.
func Percent(num, den float64) Ratio {
	if den == 0 {
		return NotApplicable()
	}
	return Ratio{Value: Round(num/den*100, 1), Applicable: true}
}

func RatioFromPtr(v *float64) Ratio {
	if v == nil {
		return NotApplicable()
	}
	return Ratio{Value: *v, Applicable: true}
}

func (r Ratio) Ptr() *float64 {
	if !r.Applicable {
		return nil
	}
	v := r.Value
	return &v
}

func (r Ratio) String() string {
	if !r.Applicable {
		return "n/a"
	}
	return strconv.FormatFloat(r.Value, 'f', 1, 64)
}

// Round rounds half away from zero to the given decimal places.
func Round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
