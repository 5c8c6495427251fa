package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"forumbot"
	"forumbot/config"
	"forumbot/publish"
	"forumbot/store"
)

func handlePublish(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("publish", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: document file is required\n")
		fmt.Fprintf(os.Stderr, "Usage: forumbot publish <output.json>\n")
		os.Exit(1)
	}

	raw, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to read document: %v\n", err)
		os.Exit(1)
	}

	var doc forumbot.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to parse document: %v\n", err)
		os.Exit(1)
	}
	if len(doc.Posts) == 0 {
		fmt.Fprintf(os.Stderr, "Error: document contains no posts\n")
		os.Exit(1)
	}

	client := publish.NewClient(cfg.Publish.BaseURL, cfg.Publish.APIKey)
	result, err := client.BulkUpload(context.Background(), &doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: upload failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Uploaded %d posts (%d created, %d failed)\n",
		result.Total, result.Successful, result.Failed)
	for i, item := range result.Results {
		if item.Error != "" {
			fmt.Printf("  post %d: %s (%s)\n", i+1, item.Status, item.Error)
			continue
		}
		fmt.Printf("  post %d: %s, id %s, %d comments\n",
			i+1, item.Status, item.PostID, item.CommentsCreated)
	}
}

func handleStats(cfg *config.Config, args []string) {
	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open cache store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	stats, err := st.GetStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to read stats: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Cached articles: %d\n", stats.ArticleCount)
	fmt.Printf("Cached posts:    %d\n", stats.PostCount)

	posts, err := st.ListPosts()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to list posts: %v\n", err)
		os.Exit(1)
	}
	if len(posts) == 0 {
		return
	}

	fmt.Println()
	fmt.Printf("%-12s %-20s %s\n", "TOPIC", "CREATED", "URL")
	for _, p := range posts {
		fmt.Printf("%-12s %-20s %s\n", p.Topic, p.CreatedAt.Format("2006-01-02 15:04"), p.URL)
	}
}
