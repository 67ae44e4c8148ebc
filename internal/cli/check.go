package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/clearuse/clearuse/internal/pipeline"
)

var (
	courseType      string
	institutionType string
	outJSON         string
	outMD           string
	checkTimeout    time.Duration
	noCache         bool
	noFooter        bool
	noLookup        bool
	verifyLinks     bool
	llmEnabled      bool
	llmModel        string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Check a single file and generate a copyright report",
	Long: `Check analyzes a single image or document to:
- Extract copyright metadata, notices and citations
- Resolve the likely license (Creative Commons, public domain, all rights reserved)
- Run the four-factor fair-use assessment for your course context
- Suggest open-content alternatives when the material looks restricted

Example:
  clearuse check lecture-slides.pdf
  clearuse check photo.jpg --course online --institution "public university"
  clearuse check photo.jpg --json report.json --md report.md
  clearuse check reading.docx --llm --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Context flags
	checkCmd.Flags().StringVar(&courseType, "course", "", "course type (online, hybrid, in-person)")
	checkCmd.Flags().StringVar(&institutionType, "institution", "", "institution type (public university, private university, community college, k-12)")

	// Output flags
	checkCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	checkCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Behavior flags
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall check timeout")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the report cache (force a fresh check)")
	checkCmd.Flags().BoolVar(&noLookup, "no-lookup", false, "disable the remote alternative-source search")
	checkCmd.Flags().BoolVar(&verifyLinks, "verify-links", false, "verify that suggested alternative links resolve")

	// LLM flags
	checkCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable the plain-language explanation")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	cfg := loadConfig()
	cfg.Cache.Enabled = cfg.Cache.Enabled && !noCache
	cfg.Lookup.Enabled = cfg.Lookup.Enabled && !noLookup
	cfg.Lookup.VerifyLinks = cfg.Lookup.VerifyLinks || verifyLinks
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if llmEnabled {
		cfg.LLM.Provider = "openai"
		cfg.LLM.Model = llmModel
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	usage, err := usageFromFlags(cfg, courseType, institutionType)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Checking: %s\n", path)
		fmt.Fprintf(os.Stderr, "Course context: %s / %s\n", usage.Course, usage.Institution)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg)

	report, err := p.CheckFile(ctx, path, usage)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	renderer := p.Renderer()
	renderer.RenderSummary(report)

	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("write JSON report: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return fmt.Errorf("write Markdown report: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", outMD)
		}
	}

	return nil
}
