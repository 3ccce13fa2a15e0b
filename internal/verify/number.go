package verify

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Unit classifies the scale suffix of a financial quantity
type Unit int

const (
	UnitNone       Unit = iota // Bare numeral
	UnitWan                    // 万, ten-thousand
	UnitYi                     // 亿, hundred-million
	UnitWanYi                  // 万亿, trillion
	UnitPercent                // %
	UnitBasisPoint             // BP / 基点
)

func (u Unit) String() string {
	switch u {
	case UnitWan:
		return "万"
	case UnitYi:
		return "亿"
	case UnitWanYi:
		return "万亿"
	case UnitPercent:
		return "%"
	case UnitBasisPoint:
		return "BP"
	default:
		return ""
	}
}

// multiplier returns the canonical scale factor for the unit
func (u Unit) multiplier() float64 {
	switch u {
	case UnitWan:
		return 1e4
	case UnitYi:
		return 1e8
	case UnitWanYi:
		return 1e12
	case UnitPercent:
		return 1e-2
	case UnitBasisPoint:
		return 1e-4
	default:
		return 1
	}
}

// Quantity is one financial quantity substring matched in text, together
// with its canonical parsed value. Ephemeral: built and discarded within
// a single extraction call.
type Quantity struct {
	Raw   string
	Value float64
	Unit  Unit
}

var (
	numeralRe = regexp.MustCompile(`[-+]?\d*\.?\d+`)

	// quantityRe matches a numeral with an optional financial unit suffix,
	// mirroring the expressions common in Chinese financial copy:
	// 3.5万亿, 3000亿, 50%, 100BP, 1个基点
	quantityRe = regexp.MustCompile(`\d+(?:\.\d+)?(?:万亿|亿|万|%|BP|bp|个基点|基点)?`)
)

// Normalize converts a financial quantity expression into its canonical
// numeric value, so that "3万亿" and "30000亿" compare equal. The unit is
// resolved from the whole input string, longest and most specific first.
// Absence of a numeral yields 0, not an error.
func Normalize(text string) float64 {
	text = strings.ReplaceAll(text, ",", "")

	m := numeralRe.FindString(text)
	if m == "" {
		return 0.0
	}
	value, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0.0
	}

	return value * classifyUnit(text).multiplier()
}

// classifyUnit resolves the trailing unit of a quantity expression.
// Order matters: 万亿 must win over both 万 and 亿.
func classifyUnit(text string) Unit {
	switch {
	case strings.Contains(text, "万亿"):
		return UnitWanYi
	case strings.Contains(text, "亿"):
		return UnitYi
	case strings.Contains(text, "万"):
		return UnitWan
	case strings.Contains(text, "%"):
		return UnitPercent
	case strings.Contains(strings.ToUpper(text), "BP") || strings.Contains(text, "基点"):
		return UnitBasisPoint
	default:
		return UnitNone
	}
}

// ExtractQuantities returns every financial quantity substring in text
// with its parsed canonical value, in order of appearance.
func ExtractQuantities(text string) []Quantity {
	text = strings.ReplaceAll(text, ",", "")

	matches := quantityRe.FindAllString(text, -1)
	quantities := make([]Quantity, 0, len(matches))
	for _, raw := range matches {
		quantities = append(quantities, Quantity{
			Raw:   raw,
			Value: Normalize(raw),
			Unit:  classifyUnit(raw),
		})
	}
	return quantities
}

// relTolerance is the relative tolerance under which two normalized
// quantities are treated as the same magnitude.
const relTolerance = 1e-6

// SameMagnitude reports whether a and b are equal within relative tolerance
func SameMagnitude(a, b float64) bool {
	if a == b {
		return true
	}
	largest := math.Max(math.Abs(a), math.Abs(b))
	return math.Abs(a-b) <= relTolerance*largest
}

// CompareQuantities returns the draft quantities whose canonical value
// matches no quantity in the evidence text. A scale-unit rewrite of the
// same magnitude ("3万亿" for "30000亿") is not a mismatch.
func CompareQuantities(draftText, evidenceText string) []Quantity {
	draftQuantities := ExtractQuantities(draftText)
	if len(draftQuantities) == 0 {
		return nil
	}
	evidenceQuantities := ExtractQuantities(evidenceText)

	var mismatches []Quantity
	for _, dq := range draftQuantities {
		supported := false
		for _, eq := range evidenceQuantities {
			if SameMagnitude(dq.Value, eq.Value) {
				supported = true
				break
			}
		}
		if !supported {
			mismatches = append(mismatches, dq)
		}
	}
	return mismatches
}
