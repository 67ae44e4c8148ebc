package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/clearuse/clearuse/internal/pipeline"
	"github.com/clearuse/clearuse/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	// courseType, institutionType, noCache, noLookup are shared with check.go
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir|list-file>",
	Short: "Check multiple files in parallel",
	Long: `Batch checks many files concurrently:
- Point it at a directory to check every supported file in it
- Or at a text file listing one path per line
- Files are processed in parallel with a configurable worker count
- Each file gets its own JSON and Markdown report

Example:
  clearuse batch ./course-materials
  clearuse batch files.txt --concurrency 10 --output-dir ./reports
  clearuse batch ./slides --course in-person --institution k-12`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./clearuse-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Context flags shared with the check command
	batchCmd.Flags().StringVar(&courseType, "course", "", "course type (online, hybrid, in-person)")
	batchCmd.Flags().StringVar(&institutionType, "institution", "", "institution type (public university, private university, community college, k-12)")

	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the report cache")
	batchCmd.Flags().BoolVar(&noLookup, "no-lookup", false, "disable the remote alternative-source search")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runBatch(cmd *cobra.Command, args []string) error {
	target := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := loadConfig()
	cfg.Cache.Enabled = cfg.Cache.Enabled && !noCache
	cfg.Lookup.Enabled = cfg.Lookup.Enabled && !noLookup
	cfg.Concurrency.Workers = concurrency
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	usage, err := usageFromFlags(cfg, courseType, institutionType)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Clearuse Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input:        %s\n", target)
	fmt.Fprintf(os.Stderr, "  Context:      %s / %s\n", usage.Course, usage.Institution)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	// Create output directory
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p := pipeline.NewPipeline(cfg)
	processor := worker.NewBatchProcessor(p, concurrency)

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat input: %w", err)
	}

	var results []*worker.CheckResult
	if info.IsDir() {
		results, err = processor.ProcessDir(ctx, target, usage)
	} else {
		results, err = processor.ProcessListFile(ctx, target, usage)
	}
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	fmt.Fprintf(os.Stderr, "⚙️  Checking %d files with %d workers...\n", len(results), concurrency)
	fmt.Fprintf(os.Stderr, "\n")

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)

	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		successCount++

		slug := reportSlug(result.Path)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderJSON(result.Report, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Path, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Report, mdPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.Path, err)
			continue
		}

		verdict := "no"
		if result.Report.Verdict.CanUse {
			verdict = "yes"
		}
		fmt.Fprintf(os.Stderr, "✓ %s (can use: %s, %s)\n", result.Report.FileName, verdict, result.Report.Copyright.LicenseName)
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d files\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// reportSlug turns a checked path into a safe report file name.
func reportSlug(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", " ", "-",
	)
	base = replacer.Replace(base)

	if base == "" {
		base = "report"
	}
	if len(base) > 100 {
		base = base[:100]
	}
	return base
}
