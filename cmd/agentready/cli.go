package main

import (
	"context"
	"io"

	"github.com/fwojciec/agentready"
	"github.com/fwojciec/agentready/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	DB      *sqlite.DB
	Scanner *agentready.Scanner
	History agentready.ScanHistoryService
	Rules   []agentready.Rule
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scan    ScanCmd    `cmd:"" help:"Audit a page for agent readiness"`
	History HistoryCmd `cmd:"" help:"Show past scan results"`
	Rules   RulesCmd   `cmd:"" help:"List the registered audit rules"`
}

// ScanCmd is the "scan" subcommand.
type ScanCmd struct {
	URL string `arg:"" help:"Page URL to audit"`

	JSON   bool `help:"Emit the full scan result as JSON"`
	Render bool `short:"r" help:"Render JavaScript with a headless browser before auditing"`

	NoChunking       bool `help:"Skip the chunking analysis"`
	NoExtractability bool `help:"Skip the extractability mapping"`

	LLM   bool   `help:"Enable the Gemini-backed summary section (requires GEMINI_API_KEY)"`
	Model string `default:"gemini-2.5-flash" help:"Gemini model for the LLM section"`

	MinImpact     int     `help:"Drop findings below this impact score"`
	MinConfidence float64 `help:"Drop findings below this confidence (0.0-1.0)"`
	MaxIssues     int     `help:"Cap the number of reported findings"`
	MaxTokens     int     `default:"1200" help:"Token budget per chunk"`
	RateLimit     float64 `default:"2" help:"Fetch requests per second"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	URL   string `help:"Only show scans of this URL"`
	Limit int    `default:"20" help:"Maximum number of scans to show"`
}

// RulesCmd is the "rules" subcommand.
type RulesCmd struct{}
