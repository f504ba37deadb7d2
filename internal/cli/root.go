package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"lexis/config"
	"lexis/internal/adapter/cache"
	"lexis/internal/adapter/fs"
	"lexis/internal/adapter/nlp"
	"lexis/internal/logging"
	"lexis/internal/port"
	"lexis/internal/tracing"
	"lexis/internal/usecase"
)

var (
	cfgFile   string
	cfg       *config.Config
	rootDir   string
	backend   string
	format    string
	traceOut  string
	logger    *slog.Logger
	logOutput io.Writer = os.Stderr

	tracer    *tracing.Service
	traceFile *os.File
)

// Version is set at build time.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:     "lexis",
	Version: Version,
	Short: "Word frequency, Zipf and word-context analysis",
	Long: `Lexis analyzes English text: it ranks words by frequency, measures how
closely the distribution follows Zipf's law, and describes how a word is used
from the sentences it appears in.

Example usage:
  lexis analyze essay.txt              # Combined report
  lexis analyze essay.txt --word bank  # Report on one word
  lexis rank essay.txt bank            # Rank and percentile of a word
  lexis batch ./corpus                 # Analyze every document in a directory
  lexis library add essay.txt          # Keep a document for later analysis`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.ApplyEnv(rootDir); err != nil {
			return fmt.Errorf("failed to load .env: %w", err)
		}

		if backend != "" {
			cfg.NLP.Backend = backend
		}
		if format != "" {
			cfg.Output.Format = format
		}

		logger, err = logging.New(logOutput, cfg.Logging.Level, cfg.Logging.Format)
		if err != nil {
			return fmt.Errorf("invalid logging config: %w", err)
		}
		slog.SetDefault(logger)

		if traceOut != "" {
			cfg.Tracing.Output = traceOut
		}
		return startTracing(cfg.Tracing.Output)
	},
}

func Execute() {
	err := rootCmd.Execute()
	stopTracing()
	if err != nil {
		os.Exit(1)
	}
}

// startTracing exports spans to path, or to stderr when path is "-".
func startTracing(path string) error {
	if path == "" {
		return nil
	}

	w := io.Writer(os.Stderr)
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to open trace output: %w", err)
		}
		traceFile = f
		w = f
	}

	svc, err := tracing.Setup(w, Version)
	if err != nil {
		return err
	}
	tracer = svc
	logger.Debug("tracing enabled", "output", path)
	return nil
}

func stopTracing() {
	if err := tracer.Stop(context.Background()); err != nil {
		logger.Warn("failed to flush spans", "error", err)
	}
	tracer = nil
	if traceFile != nil {
		traceFile.Close()
		traceFile = nil
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./lexis.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "project directory (default is current directory)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "nlp backend: prose or basic (default from config)")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "", "output format: text, json or yaml (default from config)")
	rootCmd.PersistentFlags().StringVar(&traceOut, "trace", "", "write trace spans as JSON to this file (- for stderr)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}

func GetLogger() *slog.Logger {
	return logger
}

// newAnalyzer builds the analyze use case for the configured backend.
func newAnalyzer() (*usecase.AnalyzeUseCase, error) {
	backendNLP, err := nlp.New(cfg.NLP.Backend)
	if err != nil {
		return nil, err
	}
	logger.Debug("nlp backend ready", "backend", backendNLP.Name())
	return usecase.NewAnalyzeUseCase(backendNLP), nil
}

// newCachedAnalyzer wraps the configured analyzer in the report cache.
func newCachedAnalyzer() (port.Analyzer, *usecase.AnalyzeUseCase, error) {
	uc, err := newAnalyzer()
	if err != nil {
		return nil, nil, err
	}
	return cache.NewCachedAnalyzer(uc, cache.NewReportCache(cfg.Cache.Size, cfg.Cache.TTL)), uc, nil
}

// readInput reads the text to analyze from a file, or from stdin when the
// argument is "-" or missing.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return fs.Decode(data)
	}

	text, err := fs.NewTextReader().ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return text, nil
}
