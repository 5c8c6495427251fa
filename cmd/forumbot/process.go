package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"forumbot/config"
)

func handleProcess(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("process", flag.ExitOnError)
	topic := fs.String("topic", "", "Force a topic instead of classifying the generated content")
	out := fs.String("out", "", "Output file path (default: <output-dir>/output_<timestamp>.json)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: article URL is required\n")
		fmt.Fprintf(os.Stderr, "Usage: forumbot process [-topic TOPIC] [-out FILE] <url>\n")
		os.Exit(1)
	}
	url := fs.Arg(0)

	ctx := context.Background()
	a, err := newApp(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	if *topic != "" && !a.vocab.Contains(*topic) {
		fmt.Fprintf(os.Stderr, "Error: unknown topic %q (see topics file)\n", *topic)
		os.Exit(1)
	}

	doc, err := a.assembler.Process(ctx, url, *topic)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to process %s: %v\n", url, err)
		os.Exit(1)
	}

	path, err := writeJSON(cfg, *out, doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	post := doc.Posts[0]
	fmt.Printf("✓ Generated post: %s\n", post.Title)
	fmt.Printf("  Topic: %s\n", post.Topic)
	fmt.Printf("  Author: %s\n", post.Username)
	fmt.Printf("  Comments: %d\n", len(post.Comments))
	fmt.Printf("  Output: %s\n", path)
}

func handleBatch(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	out := fs.String("out", "", "Output file path (default: <output-dir>/output_<timestamp>.json)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: CSV file is required\n")
		fmt.Fprintf(os.Stderr, "Usage: forumbot batch [-out FILE] <file.csv>\n")
		os.Exit(1)
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	ctx := context.Background()
	a, err := newApp(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	result, err := a.batcher().ProcessCSV(ctx, f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	path, err := writeJSON(cfg, *out, result.Document)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Batch run %s complete\n", result.RunID)
	fmt.Printf("  Succeeded: %d\n", result.SuccessCount)
	fmt.Printf("  Failed: %d\n", len(result.Errors))
	for _, msg := range result.Errors {
		fmt.Printf("    - %s\n", msg)
	}
	fmt.Printf("  Output: %s\n", path)
}

// writeJSON writes v as indented JSON to path, or to a timestamped file in
// the configured output directory when path is empty. Returns the path
// written.
func writeJSON(cfg *config.Config, path string, v any) (string, error) {
	if path == "" {
		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
		name := fmt.Sprintf("output_%s.json", time.Now().Format("20060102_150405"))
		path = filepath.Join(cfg.OutputDir, name)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode output: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write output: %w", err)
	}
	return path, nil
}
