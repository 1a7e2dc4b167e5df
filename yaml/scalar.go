package yaml

import (
	"math"
	"strconv"
)

func parseInt(s string) (int64, bool) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// inf resolves the YAML 1.1 special float literals; lower is already
// lowercased.
func inf(lower string) float64 {
	switch lower {
	case ".inf", "+.inf":
		return math.Inf(1)
	case "-.inf":
		return math.Inf(-1)
	default: // ".nan"
		return math.NaN()
	}
}
