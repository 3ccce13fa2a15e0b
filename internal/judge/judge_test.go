package judge

import (
	"errors"
	"strings"
	"testing"

	"github.com/wzhuo/factgate/internal/model"
)

func TestParseResponse_Pass(t *testing.T) {
	raw := `{"verdict": "PASS", "detail": "", "revised_summary": ""}`

	resp, err := parseResponse(raw)
	if err != nil {
		t.Fatalf("parseResponse failed: %v", err)
	}
	if resp.Verdict != VerdictPass {
		t.Errorf("verdict = %q, want PASS", resp.Verdict)
	}
}

func TestParseResponse_IssuesWithFences(t *testing.T) {
	raw := "```json\n{\"verdict\": \"ISSUES_FOUND\", \"detail\": \"原文是30000亿，简报误写为300亿\", \"revised_summary\": \"修正后的摘要\"}\n```"

	resp, err := parseResponse(raw)
	if err != nil {
		t.Fatalf("parseResponse failed: %v", err)
	}
	if resp.Verdict != VerdictIssuesFound {
		t.Errorf("verdict = %q, want ISSUES_FOUND", resp.Verdict)
	}
	if resp.RevisedText != "修正后的摘要" {
		t.Errorf("revised text = %q", resp.RevisedText)
	}
}

func TestParseResponse_UnknownVerdict(t *testing.T) {
	_, err := parseResponse(`{"verdict": "MAYBE"}`)
	if !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse, got %v", err)
	}
}

func TestParseResponse_Garbage(t *testing.T) {
	_, err := parseResponse("the draft looks fine to me")
	if !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse, got %v", err)
	}
}

func TestBuildUserPrompt_IncludesFindings(t *testing.T) {
	req := Request{
		EvidenceText: "原始事实文本",
		DraftTitle:   "标题",
		DraftText:    "摘要文本",
		PriorFindings: map[string]model.DimensionResult{
			model.DimEntity: model.DimensionFail,
			model.DimTime:   model.DimensionPass,
		},
	}

	prompt := buildUserPrompt(req)
	for _, want := range []string{"原始事实文本", "摘要文本", "entity=FAIL", "time=PASS"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildUserPrompt_NoFindings(t *testing.T) {
	prompt := buildUserPrompt(Request{DraftText: "摘要"})
	if !strings.Contains(prompt, "无预检结果") {
		t.Errorf("prompt should note missing pre-check results: %q", prompt)
	}
}
