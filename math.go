package lossrate

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Round scales v by 10^places in floating point, rounds half to even and
// scales back, the way a dataframe round does.
func Round(v float64, places int32) float64 {
	scaled := v * math.Pow10(int(places))
	if math.IsNaN(scaled) || math.IsInf(scaled, 0) {
		return v
	}
	r, _ := decimal.NewFromFloat(scaled).RoundBank(0).Shift(-places).Float64()
	return r
}

func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if math.IsInf(v, 0) || strings.ContainsAny(s, ".eE") {
		return s
	}
	return s + ".0"
}

func isInt(s string) bool {
	_, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return err == nil
}

func isFloat(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}
