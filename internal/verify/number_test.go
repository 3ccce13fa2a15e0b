package verify

import (
	"math"
	"testing"
)

func TestNormalize_ScaleUnits(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"3万亿", 3e12},
		{"30000亿", 3e12},
		{"3.5万亿", 3.5e12},
		{"3000亿", 3e11},
		{"5万", 5e4},
		{"0.5%", 0.005},
		{"100BP", 0.01},
		{"100bp", 0.01},
		{"1个基点", 0.0001},
		{"500", 500},
		{"1,000亿", 1e11},
		{"-2.5%", -0.025},
	}

	for _, tt := range tests {
		got := Normalize(tt.input)
		if !SameMagnitude(got, tt.want) {
			t.Errorf("Normalize(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNormalize_EquivalentRewrites(t *testing.T) {
	pairs := [][2]string{
		{"3万亿", "30000亿"},
		{"1万亿", "10000亿"},
		{"0.5万亿", "5000亿"},
		{"2亿", "20000万"},
	}

	for _, pair := range pairs {
		a, b := Normalize(pair[0]), Normalize(pair[1])
		if !SameMagnitude(a, b) {
			t.Errorf("expected %q (%v) and %q (%v) to normalize equally", pair[0], a, pair[1], b)
		}
		rel := math.Abs(a-b) / math.Max(math.Abs(a), math.Abs(b))
		if rel > 1e-6 {
			t.Errorf("relative difference %v exceeds tolerance for %q vs %q", rel, pair[0], pair[1])
		}
	}
}

func TestNormalize_NoNumeral(t *testing.T) {
	if got := Normalize("无数字内容"); got != 0.0 {
		t.Errorf("Normalize without numeral = %v, want 0.0", got)
	}
	if got := Normalize(""); got != 0.0 {
		t.Errorf("Normalize empty = %v, want 0.0", got)
	}
}

func TestExtractQuantities(t *testing.T) {
	text := "央行下调存款准备金率0.5个百分点，释放资金约1万亿元，涉及100BP调整。"
	quantities := ExtractQuantities(text)

	if len(quantities) != 3 {
		t.Fatalf("expected 3 quantities, got %d: %v", len(quantities), quantities)
	}

	if quantities[0].Raw != "0.5" || quantities[0].Unit != UnitNone {
		t.Errorf("first quantity = %+v, want 0.5 with no unit", quantities[0])
	}
	if quantities[1].Raw != "1万亿" || quantities[1].Unit != UnitWanYi {
		t.Errorf("second quantity = %+v, want 1万亿", quantities[1])
	}
	if !SameMagnitude(quantities[1].Value, 1e12) {
		t.Errorf("1万亿 normalized to %v, want 1e12", quantities[1].Value)
	}
	if quantities[2].Raw != "100BP" || quantities[2].Unit != UnitBasisPoint {
		t.Errorf("third quantity = %+v, want 100BP", quantities[2])
	}
}

func TestCompareQuantities_ScaleRewriteIsNotMismatch(t *testing.T) {
	evidence := "央行下调存款准备金率0.5个百分点，释放资金约1万亿元。"
	draft := "央行下调存准0.5个百分点，释放10000亿元流动性"

	mismatches := CompareQuantities(draft, evidence)
	if len(mismatches) != 0 {
		t.Errorf("expected no mismatches, got %v", mismatches)
	}
}

func TestCompareQuantities_WrongMagnitude(t *testing.T) {
	evidence := "财政赤字规模为30000亿元。"
	draft := "财政赤字规模为300亿元。"

	mismatches := CompareQuantities(draft, evidence)
	if len(mismatches) != 1 {
		t.Fatalf("expected 1 mismatch, got %d: %v", len(mismatches), mismatches)
	}
	if mismatches[0].Raw != "300亿" {
		t.Errorf("mismatch = %+v, want raw 300亿", mismatches[0])
	}
}

func TestCompareQuantities_NoDraftQuantities(t *testing.T) {
	if got := CompareQuantities("没有数字的摘要。", "原文有3000亿元。"); got != nil {
		t.Errorf("expected nil for draft without quantities, got %v", got)
	}
}
