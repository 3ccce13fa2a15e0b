package verify

import (
	"reflect"
	"testing"
)

func TestUnsupportedYears_FlagsExactDifference(t *testing.T) {
	draft := "2023年政策延续至2026年。"
	evidence := "2023年发布的政策文件。"

	got := UnsupportedYears(draft, evidence)
	want := []string{"2026"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UnsupportedYears = %v, want %v", got, want)
	}
}

func TestUnsupportedYears_AllSupported(t *testing.T) {
	draft := "2024年经济增长目标为5%。"
	evidence := "2024年政府工作报告提出增长目标。"

	if got := UnsupportedYears(draft, evidence); got != nil {
		t.Errorf("UnsupportedYears = %v, want nil", got)
	}
}

func TestUnsupportedYears_NoYearsInDraft(t *testing.T) {
	if got := UnsupportedYears("无年份内容。", "2023年文件。"); got != nil {
		t.Errorf("UnsupportedYears = %v, want nil", got)
	}
}

func TestUnsupportedYears_DeduplicatedAndSorted(t *testing.T) {
	draft := "2027年目标重申：2025年起步，2027年完成。"
	evidence := "相关规划未提及任何年份。"

	got := UnsupportedYears(draft, evidence)
	want := []string{"2025", "2027"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UnsupportedYears = %v, want %v", got, want)
	}
}
