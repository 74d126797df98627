package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/agentready"
	"github.com/fwojciec/agentready/gemini"
	"github.com/fwojciec/agentready/goquery"
	"github.com/fwojciec/agentready/htmltomarkdown"
	agentreadyhttp "github.com/fwojciec/agentready/http"
	"github.com/fwojciec/agentready/readability"
	"github.com/fwojciec/agentready/rod"
	agentreadyslog "github.com/fwojciec/agentready/slog"
	"github.com/fwojciec/agentready/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the scan history service.
	DB *sqlite.DB

	// History service, exposed for end-to-end testing.
	History agentready.ScanHistoryService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("agentready"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'agentready --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set AGENTREADY_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.History = sqlite.NewScanHistoryService(m.DB)
	deps.DB = m.DB
	deps.History = m.History
	deps.Rules = goquery.Rules()

	if cmd == "scan" {
		scanner, err := m.buildScanner(ctx, &cli.Scan, stderr)
		if err != nil {
			return err
		}
		defer scanner.Close()
		deps.Scanner = scanner
	}

	return kongCtx.Run(deps)
}

// buildScanner wires the audit pipeline from the scan flags.
func (m *Main) buildScanner(ctx context.Context, cmd *ScanCmd, stderr io.Writer) (*agentready.Scanner, error) {
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	registry, err := goquery.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to build rule registry: %w", err)
	}
	runner := agentreadyslog.NewLoggingRunner(agentready.NewRunner(registry, logger), logger)

	var fetcher agentready.Fetcher
	if cmd.Render {
		rodFetcher, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = rodFetcher
	} else {
		fetcher = agentreadyhttp.NewFetcher(agentreadyhttp.WithRateLimit(cmd.RateLimit))
	}
	fetcher = agentreadyslog.NewLoggingFetcher(fetcher, logger)

	scanner := agentready.NewScanner(fetcher, runner, logger)
	scanner.History = m.History

	converter := htmltomarkdown.NewConverter()
	var tokens agentready.TokenCounter
	if cmd.LLM {
		// Real token counts when the Gemini stack is in play anyway.
		if tc, err := gemini.NewTokenCounter(cmd.Model); err == nil {
			tokens = tc
		}
	}
	scanner.Chunker = goquery.NewChunker(readability.NewExtractor(), converter, tokens)
	scanner.Mapper = goquery.NewMapper(goquery.NewDefaultHeuristics(), 0)

	scanner.Config = agentready.Config{
		MaxChunkTokens:       cmd.MaxTokens,
		EnableChunking:       !cmd.NoChunking,
		EnableExtractability: !cmd.NoExtractability,
		MinImpactScore:       cmd.MinImpact,
		MinConfidence:        cmd.MinConfidence,
		MaxIssues:            cmd.MaxIssues,
	}

	if cmd.LLM {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		scanner.Analyzer = gemini.NewAnalyzer(client, converter, cmd.Model)
		scanner.Config.LLM = &agentready.LLMConfig{
			Provider: "gemini",
			Model:    cmd.Model,
			APIKey:   apiKey,
		}
	}

	return scanner, nil
}

func defaultDBPath() string {
	if path := os.Getenv("AGENTREADY_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "agentready.db"
	}
	dir := filepath.Join(home, ".agentready")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "agentready.db")
}
