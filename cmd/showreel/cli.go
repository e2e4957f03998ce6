package main

import (
	"context"
	"io"

	"github.com/fwojciec/showreel"
	"github.com/fwojciec/showreel/fs"
	"github.com/fwojciec/showreel/mission"
	"github.com/fwojciec/showreel/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	DB     *sqlite.DB

	Ledger   showreel.Ledger
	Patterns *fs.PatternStore
	Runner   *mission.Runner
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Extract  ExtractCmd  `cmd:"" help:"Extract structured records from saved catalog pages"`
	Sessions SessionsCmd `cmd:"" help:"Inspect recorded extraction sessions"`
	Patterns PatternsCmd `cmd:"" help:"Inspect and adjust the pattern knowledge base"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Files []string `arg:"" help:"HTML files to extract"`

	URL           []string `short:"u" help:"Page URL per file, by position (repeatable)"`
	Repair        bool     `short:"r" help:"Enable inference-assisted repair for rejected records"`
	Model         string   `help:"Inference model for repair"`
	MaxIterations int      `short:"n" help:"Iteration bound per page (default 10)"`
	Concurrency   int      `short:"c" default:"4" help:"Concurrent extraction limit"`
}

// SessionsCmd is the "sessions" subcommand.
type SessionsCmd struct {
	ID string `arg:"" optional:"" help:"Show one session with its iterations"`

	Domain string `short:"d" help:"Filter by domain"`
	Failed bool   `help:"Only failed sessions"`
	Won    bool   `help:"Only successful sessions"`
	Limit  int    `short:"l" default:"20" help:"Maximum sessions to list"`
	Offset int    `help:"Sessions to skip"`
}

// PatternsCmd is the "patterns" subcommand.
type PatternsCmd struct {
	Domain  string `arg:"" optional:"" help:"Show one domain's configuration"`
	Promote string `short:"p" help:"Move a strategy to the front of the domain's order"`
}
