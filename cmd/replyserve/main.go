/*
Package main implements the replyserve model builder and completion server.

ReplyServe suggests likely sentence completions for customer-service agents
as they type, learned from a historical conversation corpus. The engine is a
character trie built offline: full normalized sentences plus every
sufficiently long word-prefix of them are indexed with occurrence counts,
and queries return the most frequently observed completions for a typed
prefix.

# Usage

Build a model from a conversations JSON export:

	replyserve -build -corpus data/conversations.json -model data/model.rstm

Serve completions over HTTP from a built model:

	replyserve -model data/model.rstm -addr :13000

Query it:

	curl 'localhost:13000/autocomplete?q=what+is+y'
	{"completions":["what is your account number", ...],"count":3,"prefix":"what is y","time_ms":0}

Run the interactive CLI against a model for testing and debugging:

	replyserve -c -model data/model.rstm

Replay a synthetic keystroke stream and print latency percentiles:

	replyserve -bench -model data/model.rstm -iters 20

# Configuration

Runtime configuration is a TOML file, created with defaults when missing:

	[model]
	max_suggestions = 3
	min_words_partial = 4

	[server]
	addr = ":13000"
	max_prefix = 200
	default_limit = 3

	[build]
	corpus_path = "data/conversations.json"
	model_path = "data/model.rstm"

The model scalars only matter at build time; a loaded model keeps the values
it was built with. Flags override the file.

# Model files

A model file is a single self-describing blob (magic + version header,
msgpack node table). Writes are staged and renamed into place, so a crashed
build never leaves a half-written model behind.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bastiangx/replyserve/internal/bench"
	"github.com/bastiangx/replyserve/internal/cli"
	"github.com/bastiangx/replyserve/pkg/config"
	"github.com/bastiangx/replyserve/pkg/model"
	"github.com/bastiangx/replyserve/pkg/normalize"
	"github.com/bastiangx/replyserve/pkg/server"
	"github.com/bastiangx/replyserve/pkg/suggest"
	"github.com/bastiangx/replyserve/pkg/trie"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0"
	AppName = "replyserve"
)

func main() {
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	configPath := flag.String("config", "replyserve.toml", "Path to the TOML config file")
	buildMode := flag.Bool("build", false, "Build a model from a conversations corpus and exit")
	corpusPath := flag.String("corpus", "", "Conversations JSON file to build from (overrides config)")
	modelPath := flag.String("model", "", "Model file to build into / serve from (overrides config)")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	cliMode := flag.Bool("c", false, "Run interactive CLI -- useful for testing and debugging")
	benchMode := flag.Bool("bench", false, "Run a latency benchmark against the model and exit")
	iters := flag.Int("iters", 10, "Benchmark rounds over the generated prefix stream")
	maxSuggestions := flag.Int("max", defaults.Model.MaxSuggestions, "Max completions per query (build time only)")
	minWordsPartial := flag.Int("minwords", defaults.Model.MinWordsPartial, "Min words for indexed partial phrases (build time only)")

	flag.Parse()

	if *showVersion {
		printVersion()
		return
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.InfoLevel)
	}

	cfg, err := config.InitConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	applyFlagOverrides(cfg, corpusPath, modelPath, addr, maxSuggestions, minWordsPartial)

	if *buildMode {
		if err := runBuild(cfg); err != nil {
			log.Fatalf("Build failed: %v", err)
		}
		return
	}

	t, err := trie.Load(cfg.Build.ModelPath)
	if err != nil {
		log.Fatalf("Failed to load model %s: %v", cfg.Build.ModelPath, err)
	}
	completer := suggest.NewCompleter(t)

	switch {
	case *cliMode:
		log.SetReportTimestamp(false)
		handler := cli.NewInputHandler(completer, cfg.Server.MaxPrefix, t.MaxSuggestions())
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
	case *benchMode:
		prefixes := bench.Prefixes(t.Completions(""), 24)
		if len(prefixes) == 0 {
			log.Fatal("Model has no completions to benchmark against")
		}
		bench.Run(completer, prefixes, *iters).Report()
	default:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		srv := server.NewServer(completer, cfg.Server)
		if err := srv.Start(ctx); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}
}

// runBuild is the offline pipeline: corpus -> normalize -> trie -> model
// file, with per-phase timings like any long build should log.
func runBuild(cfg *config.Config) error {
	start := time.Now()
	responses, err := model.LoadCorpus(cfg.Build.CorpusPath)
	if err != nil {
		return err
	}
	log.Infof("Read %d agent responses in %v", len(responses), time.Since(start).Round(time.Millisecond))

	start = time.Now()
	sentences := normalize.Responses(responses)
	log.Infof("Normalized into %d sentences in %v", len(sentences), time.Since(start).Round(time.Millisecond))

	start = time.Now()
	t, err := model.Build(sentences, cfg.Model.MaxSuggestions, cfg.Model.MinWordsPartial)
	if err != nil {
		return err
	}
	log.Infof("Built trie with %d nodes in %v", t.NodeCount(), time.Since(start).Round(time.Millisecond))

	start = time.Now()
	if err := trie.Save(t, cfg.Build.ModelPath); err != nil {
		return err
	}
	log.Infof("Saved model to %s in %v", cfg.Build.ModelPath, time.Since(start).Round(time.Millisecond))
	return nil
}

// applyFlagOverrides lets explicitly set flags win over the config file.
// The model scalars only override when passed, so a config file with tuned
// values is not clobbered by flag defaults.
func applyFlagOverrides(cfg *config.Config, corpusPath, modelPath, addr *string, maxSuggestions, minWordsPartial *int) {
	if *corpusPath != "" {
		cfg.Build.CorpusPath = *corpusPath
	}
	if *modelPath != "" {
		cfg.Build.ModelPath = *modelPath
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "max":
			cfg.Model.MaxSuggestions = *maxSuggestions
		case "minwords":
			cfg.Model.MinWordsPartial = *minWordsPartial
		}
	})
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print(fmt.Sprintf("[ %s ] Sentence completions for support agents", AppName))
	logger.Print("", "version", Version)
	logger.Print("use -h or --help to see available options")
}
