package judge

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
)

func chatServer(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error": {"message": "boom"}}`))
			return
		}
		resp := openai.ChatCompletionResponse{
			ID:     "chatcmpl-1",
			Object: "chat.completion",
			Model:  "deepseek-chat",
			Choices: []openai.ChatCompletionChoice{
				{
					Message:      openai.ChatCompletionMessage{Role: "assistant", Content: content},
					FinishReason: "stop",
				},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestOpenAIJudge_Judge_Success(t *testing.T) {
	server := chatServer(t, `{"verdict": "ISSUES_FOUND", "detail": "原文是30000亿，简报误写为300亿", "revised_summary": "修正后的摘要"}`, http.StatusOK)
	defer server.Close()

	j, err := NewOpenAIJudge(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("NewOpenAIJudge failed: %v", err)
	}

	resp, err := j.Judge(context.Background(), Request{
		EvidenceText: "财政赤字规模为30000亿元。",
		DraftText:    "财政赤字规模为300亿元。",
	})
	if err != nil {
		t.Fatalf("Judge failed: %v", err)
	}
	if resp.Verdict != VerdictIssuesFound {
		t.Errorf("verdict = %q, want ISSUES_FOUND", resp.Verdict)
	}
	if resp.RevisedText != "修正后的摘要" {
		t.Errorf("revised text = %q", resp.RevisedText)
	}
}

func TestOpenAIJudge_Judge_TransportFailure(t *testing.T) {
	server := chatServer(t, "", http.StatusInternalServerError)
	defer server.Close()

	j, err := NewOpenAIJudge(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("NewOpenAIJudge failed: %v", err)
	}

	_, err = j.Judge(context.Background(), Request{DraftText: "摘要"})
	if !errors.Is(err, ErrTransport) {
		t.Errorf("expected ErrTransport, got %v", err)
	}
}

func TestOpenAIJudge_Judge_ParseFailure(t *testing.T) {
	server := chatServer(t, "not json at all", http.StatusOK)
	defer server.Close()

	j, err := NewOpenAIJudge(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("NewOpenAIJudge failed: %v", err)
	}

	_, err = j.Judge(context.Background(), Request{DraftText: "摘要"})
	if !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse, got %v", err)
	}
}

func TestOpenAIJudge_AssessTone(t *testing.T) {
	server := chatServer(t, `{"verdict": "ISSUES_FOUND", "detail": "暴涨措辞夸大"}`, http.StatusOK)
	defer server.Close()

	j, err := NewOpenAIJudge(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("NewOpenAIJudge failed: %v", err)
	}

	verdict, err := j.AssessTone(context.Background(), Request{DraftText: "市场暴涨"})
	if err != nil {
		t.Fatalf("AssessTone failed: %v", err)
	}
	if verdict != VerdictIssuesFound {
		t.Errorf("verdict = %q, want ISSUES_FOUND", verdict)
	}
}

func TestNewOpenAIJudge_RequiresKey(t *testing.T) {
	if _, err := NewOpenAIJudge(Config{}); err == nil {
		t.Error("expected error for missing API key")
	}
}
