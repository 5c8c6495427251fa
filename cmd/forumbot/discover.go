package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"forumbot/config"
	"forumbot/discover"
)

func handleDiscover(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("discover", flag.ExitOnError)
	feeds := fs.Bool("feeds", false, "Read configured RSS feeds instead of searching Marketaux")
	fs.Parse(args)

	ctx := context.Background()

	var candidates []discover.Candidate
	if *feeds {
		if len(cfg.Discovery.FeedURLs) == 0 {
			fmt.Fprintf(os.Stderr, "Error: no feed URLs configured\n")
			os.Exit(1)
		}
		reader := discover.NewFeedReader()
		for _, feedURL := range cfg.Discovery.FeedURLs {
			found, err := reader.Fetch(ctx, feedURL)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to read %s: %v\n", feedURL, err)
				continue
			}
			candidates = append(candidates, found...)
		}
	} else {
		if fs.NArg() < 1 {
			fmt.Fprintf(os.Stderr, "Error: search query is required\n")
			fmt.Fprintf(os.Stderr, "Usage: forumbot discover [-feeds] <query>\n")
			os.Exit(1)
		}
		client := discover.NewMarketauxClient(cfg.Discovery.MarketauxToken, cfg.Discovery.Limit)
		found, err := client.Search(ctx, fs.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: search failed: %v\n", err)
			os.Exit(1)
		}
		candidates = found
	}

	if len(candidates) == 0 {
		fmt.Println("No articles found.")
		return
	}

	fmt.Printf("%-25s %-60s %s\n", "SOURCE", "TITLE", "URL")
	for _, c := range candidates {
		title := c.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		fmt.Printf("%-25s %-60s %s\n", c.Source, title, c.URL)
	}
}
