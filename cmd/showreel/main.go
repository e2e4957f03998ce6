package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/showreel"
	"github.com/fwojciec/showreel/fs"
	"github.com/fwojciec/showreel/gemini"
	"github.com/fwojciec/showreel/goquery"
	"github.com/fwojciec/showreel/mission"
	showslog "github.com/fwojciec/showreel/slog"
	"github.com/fwojciec/showreel/sqlite"
	"github.com/fwojciec/showreel/strategy"
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

	// Knowledge-base path. Set before calling Run().
	PatternsPath string

	// Artifact directory for per-iteration snapshots.
	ArtifactsDir string

	// SQLite database used by the ledger.
	DB *sqlite.DB

	// Services for end-to-end testing.
	Ledger   showreel.Ledger
	Patterns *fs.PatternStore
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:       defaultDBPath(),
		PatternsPath: defaultPatternsPath(),
		ArtifactsDir: defaultArtifactsDir(),
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
		kong.Name("showreel"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'showreel --help' to see available commands")
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
		fmt.Fprintf(stderr, "Hint: Set SHOWREEL_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.Ledger = sqlite.NewLedgerService(m.DB)
	m.Patterns, err = fs.NewPatternStore(m.PatternsPath)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Set SHOWREEL_PATTERNS to use a different knowledge base\n")
		return fmt.Errorf("failed to load knowledge base at %q: %w", m.PatternsPath, err)
	}

	deps.DB = m.DB
	deps.Ledger = m.Ledger
	deps.Patterns = m.Patterns

	if cmd == "extract" {
		logger := slog.New(slog.NewTextHandler(stderr, nil))
		eval := goquery.NewEvaluator()

		domainJSON := strategy.NewDomainJSONDecoder(eval)
		domainJSON.RoleMappings = m.Patterns.RoleMappings()
		domainJSON.CompanyTypes = m.Patterns.CompanyTypes()

		runner := &mission.Runner{
			Classifier: showslog.NewLoggingClassifier(goquery.NewClassifier(), logger),
			Cascade: mission.NewCascade(
				domainJSON,
				strategy.NewLegacyFieldDecoder(eval),
				strategy.NewDOMDecoder(),
				strategy.NewGenericDecoder(eval),
			),
			Patterns:      m.Patterns,
			Ledger:        m.Ledger,
			Artifacts:     fs.NewArtifactStore(m.ArtifactsDir),
			MaxIterations: cli.Extract.MaxIterations,
		}

		if cli.Extract.Repair {
			apiKey := os.Getenv("GEMINI_API_KEY")
			if apiKey == "" {
				fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
				return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
			}

			client, err := genai.NewClient(ctx, &genai.ClientConfig{
				APIKey:  apiKey,
				Backend: genai.BackendGeminiAPI,
			})
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
				return fmt.Errorf("failed to connect to Gemini API: %w", err)
			}

			suggester := mission.NewRateLimitedSuggester(
				showslog.NewLoggingSuggester(gemini.NewSuggester(client), logger),
				suggesterRPS,
			)
			runner.Repairer = mission.NewRepairer(suggester, eval)
		}

		deps.Runner = runner
	}

	return kongCtx.Run(deps)
}

// suggesterRPS caps repair consultations per second.
const suggesterRPS = 1.0

func defaultDBPath() string {
	if path := os.Getenv("SHOWREEL_DB"); path != "" {
		return path
	}
	return filepath.Join(configDir(), "showreel.db")
}

func defaultPatternsPath() string {
	if path := os.Getenv("SHOWREEL_PATTERNS"); path != "" {
		return path
	}
	return filepath.Join(configDir(), "knowledge.json")
}

func defaultArtifactsDir() string {
	if path := os.Getenv("SHOWREEL_ARTIFACTS"); path != "" {
		return path
	}
	return filepath.Join(configDir(), "artifacts")
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	dir := filepath.Join(home, ".showreel")
	_ = os.MkdirAll(dir, 0755)
	return dir
}
