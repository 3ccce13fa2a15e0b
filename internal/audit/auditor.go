// Package audit runs the fact-verification state machine over drafted
// reports: deterministic text checks first, then external adjudication,
// then a frozen outcome per draft.
package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/wzhuo/factgate/internal/judge"
	"github.com/wzhuo/factgate/internal/logger"
	"github.com/wzhuo/factgate/internal/model"
	"github.com/wzhuo/factgate/internal/verify"
	"github.com/wzhuo/factgate/internal/worker"
)

// Auditor decides whether a draft is safe to publish, needs correction,
// or must be rejected. One Auditor is safe for concurrent use: its only
// shared state is the immutable entity registry and the call throttle.
type Auditor struct {
	judge     judge.Judge
	entities  *verify.EntityGuard
	limiter   *worker.Limiter
	maxRunes  int
	toneCheck bool
}

// NewAuditor creates an auditor from configuration and a judgment
// capability. The capability must not be nil: adjudication is part of
// every audit.
func NewAuditor(cfg *model.Config, j judge.Judge) (*Auditor, error) {
	if j == nil {
		return nil, fmt.Errorf("judgment capability is required")
	}
	return &Auditor{
		judge:     j,
		entities:  verify.NewEntityGuard(cfg.Audit.CriticalEntities),
		limiter:   worker.NewLimiter(cfg.Concurrency.RPM, cfg.Concurrency.Burst),
		maxRunes:  cfg.Audit.MaxEvidenceRunes,
		toneCheck: cfg.Audit.ToneCheck,
	}, nil
}

// AuditDraft audits one draft against its paired event and returns the
// terminal outcome. Every failure mode resolves to an outcome; nothing
// escapes as an error.
func (a *Auditor) AuditDraft(ctx context.Context, draft model.DraftReport, event model.Event) model.AuditOutcome {
	annotated, plain := verify.AssembleEvidence(&event, a.maxRunes)
	if strings.TrimSpace(plain) == "" {
		// Nothing to verify against: the engine cannot adjudicate.
		return model.AuditOutcome{
			EventID:         event.ID,
			Status:          model.StatusFlagged,
			CorrectionNotes: "无可用事实来源，无法核验简报内容",
			Breakdown:       map[string]model.DimensionResult{},
		}
	}

	breakdown := map[string]model.DimensionResult{
		model.DimEntity: model.DimensionPass,
		model.DimNumber: model.DimensionPass,
		model.DimTime:   model.DimensionPass,
		model.DimTone:   model.DimensionPass,
	}
	var findings []string

	if unsupported := a.entities.Unsupported(draft.Summary, plain); len(unsupported) > 0 {
		breakdown[model.DimEntity] = model.DimensionFail
		for _, entity := range unsupported {
			findings = append(findings, fmt.Sprintf("简报提及'%s'，但原始来源中未发现该实体，疑似幻觉", entity))
		}
	}

	if mismatches := verify.CompareQuantities(draft.Summary, plain); len(mismatches) > 0 {
		breakdown[model.DimNumber] = model.DimensionFail
		raws := make([]string, 0, len(mismatches))
		for _, q := range mismatches {
			raws = append(raws, q.Raw)
		}
		findings = append(findings, fmt.Sprintf("简报中的数字 %s 在原始来源中找不到等值表述", strings.Join(raws, "、")))
	}

	if years := verify.UnsupportedYears(draft.Summary, plain); len(years) > 0 {
		breakdown[model.DimTime] = model.DimensionFail
		findings = append(findings, fmt.Sprintf("简报提及年份 %s，原始来源中未出现", strings.Join(years, "、")))
	}

	req := judge.Request{
		EvidenceText:  annotated,
		DraftTitle:    draft.Title,
		DraftText:     draft.Summary,
		PriorFindings: breakdown,
	}

	if a.toneCheck {
		if verdict, err := a.assessTone(ctx, req); err != nil {
			// Advisory check: availability beats strictness here.
			logger.Log.Debugf("语气核查失败，按通过处理: %v", err)
		} else if verdict == judge.VerdictIssuesFound {
			breakdown[model.DimTone] = model.DimensionFail
			findings = append(findings, "简报语气夸大了原始来源所支持的结论")
		}
	}

	deterministicFailed := false
	for _, result := range breakdown {
		if result == model.DimensionFail {
			deterministicFailed = true
			break
		}
	}

	req.PriorFindings = breakdown
	resp, err := a.adjudicate(ctx, req)

	outcome := model.AuditOutcome{
		EventID:   event.ID,
		Status:    model.StatusPass,
		Breakdown: breakdown,
	}

	switch {
	case err != nil:
		// Final adjudication is fatal for this draft; the error detail
		// is preserved verbatim for human follow-up.
		outcome.Status = outcome.Status.Escalate(model.StatusFlagged)
		outcome.CorrectionNotes = fmt.Sprintf("审计调用失败: %v", err)

	case resp.Verdict == judge.VerdictIssuesFound:
		outcome.Status = outcome.Status.Escalate(model.StatusFixed)
		outcome.CorrectionNotes = resp.Detail
		outcome.RevisedSummary = resp.RevisedText
		if outcome.CorrectionNotes == "" {
			outcome.CorrectionNotes = synthesizeNotes(findings)
		}

	case deterministicFailed:
		// A positively identified deterministic failure can never be
		// talked back down to PASS by the external layer.
		outcome.Status = outcome.Status.Escalate(model.StatusFixed)
		outcome.CorrectionNotes = synthesizeNotes(findings)
		outcome.RevisedSummary = resp.RevisedText

	default:
		outcome.CorrectionNotes = "数据与事实核对一致"
	}

	return outcome
}

func (a *Auditor) adjudicate(ctx context.Context, req judge.Request) (*judge.Response, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", judge.ErrTransport, err)
	}
	return a.judge.Judge(ctx, req)
}

func (a *Auditor) assessTone(ctx context.Context, req judge.Request) (judge.Verdict, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return judge.VerdictPass, err
	}
	return a.judge.AssessTone(ctx, req)
}

func synthesizeNotes(findings []string) string {
	if len(findings) == 0 {
		return "审计层确认存在问题，但未提供详细说明"
	}
	return strings.Join(findings, "；")
}
