package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jmorascalyr/jarvis-coding/internal/client"
	"github.com/jmorascalyr/jarvis-coding/internal/generator"
	"github.com/jmorascalyr/jarvis-coding/internal/logging"
	"github.com/jmorascalyr/jarvis-coding/internal/taxonomy"
	"github.com/jmorascalyr/jarvis-coding/internal/validation"
	"github.com/jmorascalyr/jarvis-coding/pkg/output"
)

var (
	validateProducts    string
	validateIngestURL   string
	validateHECToken    string
	validateQueryURL    string
	validateQueryToken  string
	validateOutput      string
	validateResultsFile string
	validateSettle      time.Duration
	validateDeadline    time.Duration
	validateMaxInFlight int
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run the validation pipeline",
	Long: `Submit one tagged synthetic event per product, wait for each to
surface at the query API, and grade the parser's field extraction.

Examples:
  # Validate every built-in product
  jarvis validate --hec-token YOUR_TOKEN

  # Validate a subset
  jarvis validate --products okta_authentication,cisco_asa

  # Machine-readable output
  jarvis validate --output json`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateProducts, "products", "", "comma-separated product names (default: all)")
	validateCmd.Flags().StringVar(&validateIngestURL, "ingest-url", "", "HEC ingestion endpoint")
	validateCmd.Flags().StringVar(&validateHECToken, "hec-token", "", "HEC authentication token")
	validateCmd.Flags().StringVar(&validateQueryURL, "query-url", "", "query API endpoint")
	validateCmd.Flags().StringVar(&validateQueryToken, "query-token", "", "query API token")
	validateCmd.Flags().StringVar(&validateOutput, "output", "table", "output format: table, json")
	validateCmd.Flags().StringVar(&validateResultsFile, "results-file", "", "path for the JSON results file (empty disables)")
	validateCmd.Flags().DurationVar(&validateSettle, "settle", 0, "pause between submission and first poll")
	validateCmd.Flags().DurationVar(&validateDeadline, "deadline", 0, "overall run deadline (0 = unbounded)")
	validateCmd.Flags().IntVar(&validateMaxInFlight, "max-in-flight", 0, "concurrent product limit")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if validateIngestURL != "" {
		cfg.Ingest.URL = validateIngestURL
	}
	if validateHECToken != "" {
		cfg.Ingest.HECToken = validateHECToken
	}
	if validateQueryURL != "" {
		cfg.Query.URL = validateQueryURL
	}
	if validateQueryToken != "" {
		cfg.Query.APIToken = validateQueryToken
	}
	if cmd.Flags().Changed("results-file") {
		cfg.Run.ResultsFile = validateResultsFile
	}
	if cmd.Flags().Changed("settle") {
		cfg.Run.Settle = validateSettle
	}
	if cmd.Flags().Changed("deadline") {
		cfg.Run.Deadline = validateDeadline
	}
	if validateMaxInFlight > 0 {
		cfg.Run.MaxInFlight = validateMaxInFlight
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	registry, err := taxonomy.Load(cfg.Products.File)
	if err != nil {
		return fmt.Errorf("failed to load product taxonomies: %w", err)
	}
	products, err := selectProducts(registry, validateProducts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runID := strings.SplitN(uuid.NewString(), "-", 2)[0]
	correlator := validation.NewCorrelator(runID)
	submitter := validation.NewSubmitter(
		client.NewIngestClient(cfg.Ingest.URL, cfg.Ingest.HECToken),
		correlator, generator.Generate, log)
	poller := validation.NewPoller(
		client.NewQueryClient(cfg.Query.URL, cfg.Query.APIToken),
		cfg.PollPolicy(), log)
	orch := validation.NewOrchestrator(correlator, submitter, poller,
		validation.NewScorer(cfg.Score), cfg.OrchestratorConfig(), log)

	log.Info("starting validation run",
		logging.RunID(runID), slog.Int("products", len(products)))

	report, runErr := orch.Run(ctx, products)

	if cfg.Run.ResultsFile != "" {
		if err := writeResults(cfg.Run.ResultsFile, report); err != nil {
			output.Warn("could not write results file: %v", err)
		}
	}

	switch validateOutput {
	case "json":
		if err := output.JSON(struct {
			*validation.ValidationReport
			Summary validation.Summary `json:"summary"`
		}{report, report.Summarize()}); err != nil {
			return err
		}
	default:
		output.RenderReport(report)
	}

	if runErr != nil {
		if errors.Is(runErr, validation.ErrBoundariesUnreachable) {
			return runErr
		}
		return fmt.Errorf("validation run failed: %w", runErr)
	}
	return nil
}

func selectProducts(registry *taxonomy.Registry, names string) ([]*taxonomy.Product, error) {
	if names == "" {
		return registry.List(), nil
	}
	var list []string
	for _, n := range strings.Split(names, ",") {
		if n = strings.TrimSpace(n); n != "" {
			list = append(list, n)
		}
	}
	return registry.Select(list)
}

func writeResults(path string, report *validation.ValidationReport) error {
	data, err := json.MarshalIndent(struct {
		*validation.ValidationReport
		Summary validation.Summary `json:"summary"`
	}{report, report.Summarize()}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
