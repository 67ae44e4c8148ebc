package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/clearuse/clearuse/internal/alternatives"
	"github.com/clearuse/clearuse/internal/model"
)

var (
	sourcesTopic string
	sourcesKind  string
)

// sourcesCmd represents the sources command
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List open-content sources for course materials",
	Long: `Sources lists cataloged open-content repositories for images and
documents, and can search Wikimedia Commons for a specific topic.

Example:
  clearuse sources
  clearuse sources --topic "solar system" --type image`,
	RunE: runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)

	sourcesCmd.Flags().StringVar(&sourcesTopic, "topic", "", "search Wikimedia Commons for this topic")
	sourcesCmd.Flags().StringVar(&sourcesKind, "type", "image", "content type for topic search (image, document)")
}

func runSources(cmd *cobra.Command, args []string) error {
	if sourcesTopic == "" {
		printCatalog()
		return nil
	}

	kind := model.ContentImage
	if sourcesKind == "document" {
		kind = model.ContentDocument
	}

	cfg := loadConfig()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := alternatives.NewWikimediaClient(alternatives.WikimediaOptions{
		Timeout:    cfg.Lookup.Timeout,
		UserAgent:  cfg.HTTP.UserAgent,
		MaxResults: cfg.Lookup.MaxResults,
		RPS:        cfg.Lookup.RequestsPerSecond,
		Burst:      cfg.Lookup.BurstSize,
	})
	finder := alternatives.NewFinder(client, nil)

	result := finder.FindByTopic(ctx, sourcesTopic, kind)
	if result.Failed {
		fmt.Fprintf(os.Stderr, "Warning: remote search incomplete: %s\n", result.Reason)
	}

	fmt.Printf("Sources for %q:\n\n", sourcesTopic)
	for _, item := range result.Items {
		printSource(item)
	}
	return nil
}

func printCatalog() {
	catalog := alternatives.AllSources()

	fmt.Println("Open-content image sources:")
	fmt.Println()
	for _, s := range catalog["images"] {
		printSource(s)
	}

	fmt.Println("Open-content document sources:")
	fmt.Println()
	for _, s := range catalog["documents"] {
		printSource(s)
	}
}

func printSource(s model.AlternativeSource) {
	name := s.Title
	if name == "" {
		name = s.Source
	}
	fmt.Printf("  %s\n", name)
	if s.URL != "" {
		fmt.Printf("    %s\n", s.URL)
	}
	if s.License != "" {
		fmt.Printf("    License: %s\n", s.License)
	}
	if s.Description != "" {
		fmt.Printf("    %s\n", s.Description)
	}
	fmt.Println()
}
