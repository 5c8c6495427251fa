package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"forumbot/assemble"
	"forumbot/batch"
	"forumbot/config"
	"forumbot/llm"
	"forumbot/logger"
	"forumbot/persona"
	"forumbot/scrape"
	"forumbot/sources"
	"forumbot/store"
	"forumbot/topics"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Load .env if present; real env vars still win
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	subcommand := os.Args[1]
	args := os.Args[2:]

	switch subcommand {
	case "process":
		handleProcess(cfg, args)
	case "batch":
		handleBatch(cfg, args)
	case "discover":
		handleDiscover(cfg, args)
	case "publish":
		handlePublish(cfg, args)
	case "stats":
		handleStats(cfg, args)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command: %s\n\n", subcommand)
		printUsage()
		os.Exit(1)
	}
}

// app holds the wired-up pipeline shared by the process and batch commands.
type app struct {
	store     *store.Store
	personas  *persona.Store
	vocab     *topics.Vocabulary
	assembler *assemble.Assembler
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache store: %w", err)
	}

	personas, err := persona.Load(cfg.Personas.Path)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to load personas: %w", err)
	}

	vocab, err := topics.Load(cfg.Topics.Path)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to load topics: %w", err)
	}

	cohere := llm.NewCohereClient(llm.CohereConfig{
		Endpoint:    cfg.Cohere.Endpoint,
		Model:       cfg.Cohere.Model,
		APIKey:      cfg.Cohere.APIKey,
		Temperature: cfg.Cohere.Temp,
	})
	cohere.SetLimiter(rate.NewLimiter(rate.Every(2*time.Second), 1))

	gemini, err := llm.NewGeminiClient(ctx, llm.GeminiConfig{
		APIKey: cfg.Gemini.APIKey,
		Model:  cfg.Gemini.Model,
	})
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to create reply client: %w", err)
	}
	gemini.SetLimiter(rate.NewLimiter(rate.Every(time.Second), 1))

	assembler, err := assemble.New(assemble.Options{
		Extractor: scrape.NewExtractor(sources.NewRegistry()),
		Posts:     cohere,
		Replies:   gemini,
		Personas:  personas,
		Topics:    vocab,
		Cache:     st,
	})
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to create assembler: %w", err)
	}

	return &app{
		store:     st,
		personas:  personas,
		vocab:     vocab,
		assembler: assembler,
	}, nil
}

func (a *app) Close() {
	a.store.Close()
}

// batcher adapts the app for the batch processor.
func (a *app) batcher() *batch.Processor {
	return batch.NewProcessor(a.assembler, a.vocab)
}

func printUsage() {
	fmt.Println("forumbot - Article-to-forum-post generation CLI")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  forumbot <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  process    Generate a post document from one article URL")
	fmt.Println("  batch      Generate post documents for a CSV of topic,url rows")
	fmt.Println("  discover   Search for recent article URLs to process")
	fmt.Println("  publish    Upload a generated document to the forum")
	fmt.Println("  stats      Show cache statistics")
	fmt.Println("  help       Show this help message")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  FORUMBOT_CONFIG      Path to YAML config file (default: forumbot.yaml)")
	fmt.Println("  FORUMBOT_DB          Path to cache database (default: forumbot.db)")
	fmt.Println("  COHERE_API_KEY       API key for post generation")
	fmt.Println("  GOOGLE_API_KEY       API key for reply generation")
	fmt.Println("  EXTERNAL_API_KEY     API key for forum upload")
	fmt.Println("  EXTERNAL_API_URL     Forum base URL")
	fmt.Println("  MARKETAUX_API_TOKEN  API token for article discovery")
}
