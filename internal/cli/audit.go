package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wzhuo/factgate/internal/audit"
	"github.com/wzhuo/factgate/internal/judge"
	"github.com/wzhuo/factgate/internal/model"
)

var (
	eventsFile   string
	draftsFile   string
	outFile      string
	workers      int
	batchTimeout time.Duration
	noCache      bool
	llmProvider  string
	llmModel     string
	entityList   []string
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit drafted summaries against their source events",
	Long: `Audit a batch of drafted summaries against the evidence events they
were generated from.

Both inputs are JSON arrays: --events holds the evidence events with
their source articles, --drafts holds the generated summaries keyed by
event_id. Outcomes are written as a JSON array, in input draft order.

Example:
  factgate audit --events events.json --drafts drafts.json
  factgate audit --events events.json --drafts drafts.json --out outcomes.json
  factgate audit --events events.json --drafts drafts.json --workers 8 --timeout 10m`,
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().StringVar(&eventsFile, "events", "", "JSON file with evidence events (required)")
	auditCmd.Flags().StringVar(&draftsFile, "drafts", "", "JSON file with drafted summaries (required)")
	auditCmd.Flags().StringVar(&outFile, "out", "", "write outcomes to file instead of stdout")
	auditCmd.Flags().IntVar(&workers, "workers", 0, "number of concurrent audits (default from config)")
	auditCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for the batch")
	auditCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable adjudication caching")
	auditCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "judgment provider (deepseek, openai, anthropic)")
	auditCmd.Flags().StringVar(&llmModel, "llm-model", "", "judgment model name")
	auditCmd.Flags().StringSliceVar(&entityList, "critical-entities", nil, "override the sensitive institution registry")

	_ = auditCmd.MarkFlagRequired("events")
	_ = auditCmd.MarkFlagRequired("drafts")
}

func runAudit(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := loadConfig()
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.APIKey = "" // re-resolve for the overridden provider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if workers > 0 {
		cfg.Concurrency.Workers = workers
	}
	if len(entityList) > 0 {
		cfg.Audit.CriticalEntities = entityList
	}
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = resolveAPIKey(cfg.LLM.Provider)
	}
	if cfg.LLM.APIKey == "" {
		return fmt.Errorf("no API key for provider %q: set %s", cfg.LLM.Provider, apiKeyEnvVar(cfg.LLM.Provider))
	}

	var events []model.Event
	if err := readJSONFile(eventsFile, &events); err != nil {
		return fmt.Errorf("read events: %w", err)
	}
	var drafts []model.DraftReport
	if err := readJSONFile(draftsFile, &drafts); err != nil {
		return fmt.Errorf("read drafts: %w", err)
	}

	fmt.Fprintf(os.Stderr, "审计批次: %d 篇简报, %d 个事件, %d 个工作协程\n",
		len(drafts), len(events), cfg.Concurrency.Workers)

	j, err := judge.New(judge.ConfigFromModel(cfg.LLM))
	if err != nil {
		return fmt.Errorf("create judge: %w", err)
	}
	if cfg.Cache.Enabled {
		j = judge.NewCachedJudge(j, cfg.Cache.TTL)
	}

	auditor, err := audit.NewAuditor(cfg, j)
	if err != nil {
		return fmt.Errorf("create auditor: %w", err)
	}

	batch := auditor.AuditBatch(ctx, drafts, events, cfg.Concurrency.Workers)

	if err := writeOutcomes(batch.Outcomes); err != nil {
		return err
	}

	counts := map[model.Status]int{}
	for _, o := range batch.Outcomes {
		counts[o.Status]++
	}
	fmt.Fprintf(os.Stderr, "\n审计完成: PASS %d, FIXED %d, FLAGGED %d",
		counts[model.StatusPass], counts[model.StatusFixed], counts[model.StatusFlagged])
	if len(batch.Unmatched) > 0 {
		fmt.Fprintf(os.Stderr, ", 未匹配 %d", len(batch.Unmatched))
	}
	if batch.Skipped > 0 {
		fmt.Fprintf(os.Stderr, ", 因取消跳过 %d", batch.Skipped)
	}
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

func readJSONFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func writeOutcomes(outcomes []model.AuditOutcome) error {
	data, err := json.MarshalIndent(outcomes, "", "  ")
	if err != nil {
		return fmt.Errorf("encode outcomes: %w", err)
	}
	data = append(data, '\n')

	if outFile == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outFile, data, 0644); err != nil {
		return fmt.Errorf("write outcomes: %w", err)
	}
	fmt.Fprintf(os.Stderr, "结果已写入 %s\n", outFile)
	return nil
}

func resolveAPIKey(provider string) string {
	return os.Getenv(apiKeyEnvVar(provider))
}

func apiKeyEnvVar(provider string) string {
	switch provider {
	case "anthropic", "claude":
		return "ANTHROPIC_API_KEY"
	case "openai":
		return "OPENAI_API_KEY"
	default:
		return "DEEPSEEK_API_KEY"
	}
}
