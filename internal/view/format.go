// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package view

import (
	"fmt"
	"math"
	"strconv"
)

// fractionDenominators are tried in order when formatting a quantity.
var fractionDenominators = []int{2, 3, 4, 8}

const fractionTolerance = 0.01

// FormatQuantity renders an ingredient quantity the way recipes print
// them: "2", "1 1/2", "3/4". Values with no close common fraction keep two
// decimals at most. A nil quantity renders as "".
func FormatQuantity(q *float64) string {
	if q == nil {
		return ""
	}
	v := *q
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	whole := math.Floor(v)
	frac := v - whole
	if frac < fractionTolerance {
		return sign + strconv.FormatFloat(whole, 'f', 0, 64)
	}
	if 1-frac < fractionTolerance {
		return sign + strconv.FormatFloat(whole+1, 'f', 0, 64)
	}

	for _, d := range fractionDenominators {
		n := math.Round(frac * float64(d))
		if n == 0 || math.Abs(frac-n/float64(d)) >= fractionTolerance {
			continue
		}
		f := fmt.Sprintf("%d/%d", int(n), d)
		if whole == 0 {
			return sign + f
		}
		return fmt.Sprintf("%s%d %s", sign, int(whole), f)
	}
	return sign + strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
