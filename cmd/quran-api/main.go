// Command quran-api serves and inspects a Quran corpus.
// It provides commands for serving the REST API, validating corpus
// sources, and exporting snapshots.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/whoisashraf/quran-api/core/corpus"
	"github.com/whoisashraf/quran-api/core/sqlite"
	"github.com/whoisashraf/quran-api/internal/api"
	"github.com/whoisashraf/quran-api/internal/loader"
	"github.com/whoisashraf/quran-api/internal/logging"
)

// CLI defines the command-line interface for quran-api.
var CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level"`
	LogFormat string `name:"log-format" default:"json" enum:"json,text" help:"Log output format"`

	Serve    ServeCmd    `cmd:"" help:"Start the REST API server"`
	Validate ValidateCmd `cmd:"" help:"Validate a corpus source and report violations"`
	Export   ExportCmd   `cmd:"" help:"Export a corpus snapshot"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// corpusFlags selects a corpus source: either the native JSON file or the
// Tanzil XML document pair.
type corpusFlags struct {
	Corpus     string `help:"Path to JSON corpus file (.json or .json.xz)" type:"path"`
	TanzilText string `name:"tanzil-text" help:"Path to Tanzil XML text document" type:"path"`
	TanzilMeta string `name:"tanzil-meta" help:"Path to Tanzil XML metadata document" type:"path"`
}

// chapters decodes the selected corpus source without validating it, so
// every command diagnoses flag misuse identically and ValidateCmd can
// report all violations rather than just the first.
func (f *corpusFlags) chapters() (string, []*corpus.Chapter, error) {
	switch {
	case f.Corpus != "" && (f.TanzilText != "" || f.TanzilMeta != ""):
		return "", nil, fmt.Errorf("specify either --corpus or the --tanzil-* pair, not both")
	case f.Corpus != "":
		chapters, err := loader.Load(f.Corpus)
		return f.Corpus, chapters, err
	case f.TanzilText != "" && f.TanzilMeta != "":
		chapters, err := loader.LoadTanzil(f.TanzilText, f.TanzilMeta)
		return f.TanzilText, chapters, err
	case f.TanzilText != "" || f.TanzilMeta != "":
		return "", nil, fmt.Errorf("--tanzil-text and --tanzil-meta must be given together")
	default:
		return "", nil, fmt.Errorf("no corpus source: use --corpus or --tanzil-text/--tanzil-meta")
	}
}

// load reads and validates the selected corpus source.
func (f *corpusFlags) load() (*corpus.Store, error) {
	start := time.Now()

	source, chapters, err := f.chapters()
	if err != nil {
		return nil, err
	}
	store, err := corpus.NewStore(chapters)
	if err != nil {
		return nil, err
	}

	logging.CorpusLoaded(source, store.ChapterCount(), store.VerseCount(),
		store.Checksum(), time.Since(start))
	return store, nil
}

// ServeCmd starts the REST API server.
type ServeCmd struct {
	corpusFlags
	Port              int           `help:"HTTP server port" default:"8080"`
	RateLimit         int           `name:"rate-limit" help:"Requests per minute per IP (0 = disabled)" default:"0"`
	RateLimitBurst    int           `name:"rate-limit-burst" help:"Rate limit burst size" default:"10"`
	CacheTTL          time.Duration `name:"cache-ttl" help:"Response cache TTL (0 = disabled)" default:"0"`
	AllowedOrigins    []string      `name:"allowed-origins" help:"CORS allowed origins (empty = allow all)"`
}

func (c *ServeCmd) Run() error {
	store, err := c.load()
	if err != nil {
		return err
	}

	srv := api.NewServer(api.Config{
		Port:              c.Port,
		RateLimitRequests: c.RateLimit,
		RateLimitBurst:    c.RateLimitBurst,
		CacheTTL:          c.CacheTTL,
		AllowedOrigins:    c.AllowedOrigins,
	}, store)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Start(ctx)
}

// ValidateCmd validates a corpus source without serving it.
type ValidateCmd struct {
	corpusFlags
}

func (c *ValidateCmd) Run() error {
	_, chapters, err := c.chapters()
	if err != nil {
		return err
	}

	violations := corpus.Validate(chapters)
	if len(violations) > 0 {
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "violation: %v\n", v)
		}
		return fmt.Errorf("corpus has %d violations", len(violations))
	}

	verses := 0
	for _, ch := range chapters {
		verses += ch.VerseCount()
	}
	fmt.Printf("corpus is valid: %d surahs, %d ayahs\n", len(chapters), verses)
	return nil
}

// ExportCmd exports a corpus snapshot to SQLite or JSON.
type ExportCmd struct {
	corpusFlags
	Format string `help:"Output format" default:"sqlite" enum:"sqlite,json"`
	Output string `arg:"" help:"Output path" type:"path"`
}

func (c *ExportCmd) Run() error {
	store, err := c.load()
	if err != nil {
		return err
	}

	switch c.Format {
	case "sqlite":
		if err := sqlite.Export(context.Background(), store, c.Output); err != nil {
			return fmt.Errorf("exporting sqlite snapshot: %w", err)
		}
	case "json":
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		if err := loader.EncodeJSON(f, store.Chapters()); err != nil {
			return fmt.Errorf("exporting json snapshot: %w", err)
		}
	}

	fmt.Printf("exported %d surahs, %d ayahs to %s (%s)\n",
		store.ChapterCount(), store.VerseCount(), c.Output, c.Format)
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("quran-api version %s (sqlite driver: %s)\n", api.Version, sqlite.DriverType())
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("quran-api"),
		kong.Description("Quran corpus query service"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	logging.InitLogger(logging.ParseLevel(CLI.LogLevel), logging.ParseFormat(CLI.LogFormat))
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
