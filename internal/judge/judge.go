// Package judge wraps the external judgment capability that adjudicates
// drafted reports against their evidence. The capability is modeled as an
// injected interface so engine logic stays reproducible under test stubs.
package judge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/wzhuo/factgate/internal/model"
)

// Verdict is the closed set of answers the capability may return
type Verdict string

const (
	VerdictPass        Verdict = "PASS"
	VerdictIssuesFound Verdict = "ISSUES_FOUND"
)

// Typed failures at the capability boundary. The orchestrator treats
// them as fatal for the final adjudication call and fail-open for
// advisory sub-checks; the adapter itself never defaults a verdict.
var (
	// ErrTransport marks a failed call to the remote capability
	ErrTransport = errors.New("judgment transport failure")

	// ErrParse marks a response that could not be interpreted
	ErrParse = errors.New("judgment response unparseable")
)

// Request carries everything the capability needs for one adjudication
type Request struct {
	EvidenceText  string
	DraftTitle    string
	DraftText     string
	PriorFindings map[string]model.DimensionResult
}

// Response is the capability's answer. RevisedText is populated only
// when issues were found.
type Response struct {
	Verdict     Verdict
	Detail      string
	RevisedText string
}

// Judge is the pluggable, possibly non-deterministic judgment capability.
// Implementations must return typed errors and never a fabricated verdict.
type Judge interface {
	// Name returns the provider name
	Name() string

	// Judge performs the final adjudication of a draft against evidence
	Judge(ctx context.Context, req Request) (*Response, error)

	// AssessTone is the advisory exaggeration sub-check. Callers fail
	// open on error; implementations still report errors honestly.
	AssessTone(ctx context.Context, req Request) (Verdict, error)
}

// Config holds judgment capability configuration
type Config struct {
	// Provider name: "deepseek", "openai", "anthropic"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the provider
	APIKey string

	// BaseURL for OpenAI-compatible endpoints
	BaseURL string

	// Timeout per call, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int
}

// ConfigFromModel converts model.LLMConfig to judge.Config
func ConfigFromModel(c model.LLMConfig) Config {
	return Config{
		Provider:  c.Provider,
		Model:     c.Model,
		APIKey:    c.APIKey,
		BaseURL:   c.BaseURL,
		Timeout:   c.Timeout,
		MaxTokens: c.MaxTokens,
	}
}

// auditSystemPrompt instructs the capability to act as a strict financial
// auditor and answer in the fixed JSON contract.
const auditSystemPrompt = `你是一名严苛的财经审计师。你的任务是逐字核对"简报"与"事实"的一致性。

请执行以下核对：
1. 数字归一化核对：原文若为"30000亿"，简报写"3万亿"是正确的；若写成"300亿"则是致命错误。
2. 实体一致性：绝不能把"财政部"写成"央行"。
3. 发现错误时必须引用原文证据，拒绝空泛结论。

输出格式(JSON)：
{
    "verdict": "PASS" (完全无误) 或 "ISSUES_FOUND" (发现错误),
    "detail": "若无误留空。若有误，请明确指出：'原文是X，简报误写为Y'。",
    "revised_summary": "修正后的摘要全文 (仅在发现错误时填写)"
}`

// toneSystemPrompt drives the advisory exaggeration assessment.
const toneSystemPrompt = `你是一名财经编辑。判断"简报"的语气是否夸大了"事实"所支持的结论（例如把温和数据写成"暴涨"、"崩盘"）。

输出格式(JSON)：
{
    "verdict": "PASS" (语气克制) 或 "ISSUES_FOUND" (语气夸大),
    "detail": "若夸大，指出具体措辞。"
}`

// buildUserPrompt assembles the evidence, the draft, and the deterministic
// pre-check findings into the user message.
func buildUserPrompt(req Request) string {
	var sb strings.Builder
	sb.WriteString("=== 原始事实 (Ground Truth) ===\n")
	sb.WriteString(req.EvidenceText)
	sb.WriteString("\n\n=== 待审计简报 (Draft) ===\n")
	if req.DraftTitle != "" {
		fmt.Fprintf(&sb, "标题：%s\n", req.DraftTitle)
	}
	fmt.Fprintf(&sb, "摘要：%s\n", req.DraftText)
	sb.WriteString("\n=== 系统预检结果 (Pre-check) ===\n")
	sb.WriteString(formatFindings(req.PriorFindings))
	sb.WriteString("\n\n请开始审计，如果有任何数字不匹配或实体错误，必须修正：")
	return sb.String()
}

func formatFindings(findings map[string]model.DimensionResult) string {
	if len(findings) == 0 {
		return "无预检结果。"
	}
	names := make([]string, 0, len(findings))
	for name := range findings {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%s", name, findings[name]))
	}
	return strings.Join(parts, "; ")
}

// wireResponse is the JSON contract both adapters request from the model
type wireResponse struct {
	Verdict        string `json:"verdict"`
	Detail         string `json:"detail"`
	RevisedSummary string `json:"revised_summary"`
}

// parseResponse interprets raw model output against the JSON contract.
// Markdown code fences are tolerated; anything else unparseable is ErrParse.
func parseResponse(raw string) (*Response, error) {
	clean := stripFences(raw)

	var wire wireResponse
	if err := json.Unmarshal([]byte(clean), &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	switch Verdict(wire.Verdict) {
	case VerdictPass, VerdictIssuesFound:
	default:
		return nil, fmt.Errorf("%w: unknown verdict %q", ErrParse, wire.Verdict)
	}

	return &Response{
		Verdict:     Verdict(wire.Verdict),
		Detail:      wire.Detail,
		RevisedText: wire.RevisedSummary,
	}, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
