package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/citycopy"
	"github.com/fwojciec/citycopy/gemini"
	cchttp "github.com/fwojciec/citycopy/http"
	"github.com/fwojciec/citycopy/pipeline"
	ccredis "github.com/fwojciec/citycopy/redis"
	ccslog "github.com/fwojciec/citycopy/slog"
	"github.com/fwojciec/citycopy/sqlite"
	goredis "github.com/redis/go-redis/v9"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Configuration read from the environment. Set before calling Run().
	DBPath       string
	RedisAddr    string
	Model        string
	GeminiAPIKey string
	BraveAPIKey  string

	// SQLite database, when the SQLite store is in use.
	DB *sqlite.DB

	// Redis client, when CITYCOPY_REDIS_ADDR selects the Redis store.
	Redis *goredis.Client

	// Overrides for end-to-end testing. Nil fields are built from the
	// configuration above.
	Searcher  citycopy.Searcher
	Generator citycopy.Generator
}

// NewMain returns a new instance of Main configured from the environment.
func NewMain() *Main {
	model := os.Getenv("CITYCOPY_MODEL")
	if model == "" {
		model = gemini.DefaultModel
	}
	return &Main{
		DBPath:       defaultDBPath(),
		RedisAddr:    os.Getenv("CITYCOPY_REDIS_ADDR"),
		Model:        model,
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		BraveAPIKey:  os.Getenv("BRAVE_API_KEY"),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Redis != nil {
		if err := m.Redis.Close(); err != nil {
			return err
		}
	}
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
		kong.Name("citycopy"),
		kong.Description("Locality marketing copy, cached or generated on demand."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'citycopy --help' to see available commands")
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
	cmd = strings.Fields(kongCtx.Command())[0]

	var level slog.Level
	if err := level.UnmarshalText([]byte(cli.LogLevel)); err != nil {
		return citycopy.Errorf(citycopy.EINVALID, "invalid log level %q", cli.LogLevel)
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	store, err := m.openStore()
	if err != nil {
		return err
	}
	defer m.Close()
	deps.Store = ccslog.NewLoggingContentStore(store, deps.Logger)

	switch cmd {
	case "generate", "warm", "serve":
		p, err := m.newPipeline(ctx, deps)
		if err != nil {
			return err
		}
		p.Dedupe = cli.Serve.Dedupe
		deps.Contents = p
	}

	return kongCtx.Run(deps)
}

// openStore connects the configured content store.
func (m *Main) openStore() (citycopy.ContentStore, error) {
	if m.RedisAddr != "" {
		client, err := ccredis.NewClient(ccredis.Config{Address: m.RedisAddr})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis at %q: %w", m.RedisAddr, err)
		}
		m.Redis = client
		return ccredis.NewContentStore(client, ccredis.DefaultPrefix), nil
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		return nil, fmt.Errorf("failed to open database at %q (set CITYCOPY_DB to use a different path): %w", m.DBPath, err)
	}
	return sqlite.NewContentStore(m.DB), nil
}

// newPipeline wires the providers. A provider without an API key stays
// unset so that requests fail with ECONFIG instead of at startup.
func (m *Main) newPipeline(ctx context.Context, deps *Dependencies) (*pipeline.Pipeline, error) {
	p := &pipeline.Pipeline{
		Store:  deps.Store,
		Logger: deps.Logger,
	}

	searcher := m.Searcher
	if searcher == nil && m.BraveAPIKey != "" {
		s, err := cchttp.NewSearcher(m.BraveAPIKey)
		if err != nil {
			return nil, err
		}
		searcher = s
	}
	if searcher != nil {
		p.Searcher = ccslog.NewLoggingSearcher(searcher, deps.Logger)
	} else {
		deps.Logger.Warn("search provider not configured", "env", "BRAVE_API_KEY")
	}

	generator := m.Generator
	if generator == nil && m.GeminiAPIKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  m.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		generator = gemini.NewGenerator(client, m.Model)
	}
	if generator != nil {
		p.Generator = ccslog.NewLoggingGenerator(generator, deps.Logger)
	} else {
		deps.Logger.Warn("generation provider not configured", "env", "GEMINI_API_KEY")
	}

	return p, nil
}

func defaultDBPath() string {
	if path := os.Getenv("CITYCOPY_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "citycopy.db"
	}
	dir := filepath.Join(home, ".citycopy")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "citycopy.db")
}
