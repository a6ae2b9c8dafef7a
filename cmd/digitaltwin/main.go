package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"digitaltwin/internal/chunker"
	"digitaltwin/internal/config"
	"digitaltwin/internal/generator/groq"
	"digitaltwin/internal/service"
	"digitaltwin/internal/summarizer"
	"digitaltwin/internal/tui"
	"digitaltwin/internal/vectorstore/upstash"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/digitaltwin/config.yaml if not provided)")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	profilePath := cfg.Profile.Path
	if args := flag.Args(); len(args) > 0 {
		profilePath = args[0]
	}

	logger, err := newLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	// Required credentials; missing ones are fatal before any service call.
	groqKey, err := config.RequireEnv(cfg.Generator.APIKeyEnv)
	if err != nil {
		logger.Fatal("generator credentials", zap.Error(err))
	}
	indexURL, err := config.RequireEnv(cfg.VectorIndex.URLEnv)
	if err != nil {
		logger.Fatal("vector index credentials", zap.Error(err))
	}
	indexToken, err := config.RequireEnv(cfg.VectorIndex.TokenEnv)
	if err != nil {
		logger.Fatal("vector index credentials", zap.Error(err))
	}

	index := upstash.NewClient(upstash.Config{
		URL:     indexURL,
		Token:   indexToken,
		Timeout: time.Duration(cfg.VectorIndex.TimeoutSecs) * time.Second,
		Logger:  logger,
	})
	gen := groq.NewClient(groq.Config{
		APIKey:  groqKey,
		BaseURL: cfg.Generator.BaseURL,
		Model:   cfg.Generator.Model,
		Logger:  logger,
	})

	assistant := service.New(service.Config{
		Chunker:         chunker.New(),
		Index:           index,
		Generator:       gen,
		Digester:        summarizer.NewFrequencySummarizer(),
		TopK:            cfg.Retrieval.TopK,
		Temperature:     cfg.Generator.Temperature,
		MaxTokens:       cfg.Generator.MaxTokens,
		DigestSentences: cfg.Digest.MaxSentences,
		Logger:          logger,
	})

	report, err := assistant.EnsureIndexed(context.Background(), profilePath)
	if err != nil {
		logger.Fatal("bulk load failed", zap.Error(err))
	}

	greeting := fmt.Sprintf("Indexed %d profile facts. Type a question, or exit/quit to leave.", report.ChunkCount)
	if report.AlreadyIndexed {
		greeting = fmt.Sprintf("Profile already indexed (%d facts). Type a question, or exit/quit to leave.", report.VectorCount)
	}
	if report.Digest != "" {
		greeting = report.Digest + "\n" + greeting
	}

	m := tui.New(assistant, greeting)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		logger.Fatal("tui terminated", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
