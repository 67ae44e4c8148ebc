package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/clearuse/clearuse/internal/model"
)

// Renderer writes reports as JSON or Markdown and prints terminal summaries.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes the report as a Markdown document.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Copyright Check: %s\n\n", report.FileName)
	fmt.Fprintf(&b, "Checked: %s\n\n", report.CheckedAt.Format("2006-01-02 15:04 UTC"))
	fmt.Fprintf(&b, "Course: %s at %s\n\n", report.Context.Course, report.Context.Institution)

	b.WriteString("## Copyright Status\n\n")
	fmt.Fprintf(&b, "- License: %s\n", report.Copyright.LicenseName)
	if report.Copyright.Holder != "" {
		fmt.Fprintf(&b, "- Holder: %s\n", report.Copyright.Holder)
	}
	if report.Copyright.Year != nil {
		fmt.Fprintf(&b, "- Year: %d\n", *report.Copyright.Year)
	}
	fmt.Fprintf(&b, "- Confidence: %s\n", report.Copyright.Confidence)
	for _, restriction := range report.Copyright.Restrictions {
		fmt.Fprintf(&b, "- Restriction: %s\n", restriction)
	}
	b.WriteString("\n")

	b.WriteString("## Fair Use Assessment\n\n")
	if report.Verdict.CanUse {
		fmt.Fprintf(&b, "**Can use: YES** (confidence: %s)\n\n", report.Verdict.Confidence)
	} else {
		fmt.Fprintf(&b, "**Can use: NO** (confidence: %s)\n\n", report.Verdict.Confidence)
	}

	if !report.Verdict.OpenContent && len(report.Verdict.Factors) > 0 {
		b.WriteString("| Factor | Score | Assessment |\n")
		b.WriteString("|--------|-------|------------|\n")
		for _, name := range []string{model.FactorPurpose, model.FactorNature, model.FactorAmount, model.FactorMarketEffect} {
			if f, ok := report.Verdict.Factors[name]; ok {
				fmt.Fprintf(&b, "| %s | %.2f | %s |\n", name, f.Score, f.Label)
			}
		}
		fmt.Fprintf(&b, "\nAggregate score: %.2f\n\n", report.Verdict.AggregateScore)
	}

	fmt.Fprintf(&b, "%s\n\n", report.Verdict.Recommendation)

	for _, w := range report.Verdict.Warnings {
		fmt.Fprintf(&b, "> ⚠ %s\n", w)
	}
	if len(report.Verdict.Warnings) > 0 {
		b.WriteString("\n")
	}

	if len(report.Verdict.BestPractices) > 0 {
		b.WriteString("## Best Practices\n\n")
		for _, p := range report.Verdict.BestPractices {
			fmt.Fprintf(&b, "- %s\n", p)
		}
		b.WriteString("\n")
	}

	if report.Copyright.AttributionText != "" {
		b.WriteString("## Attribution\n\n")
		fmt.Fprintf(&b, "%s\n\n", report.Copyright.AttributionText)
	}

	if report.Alternatives != nil && len(report.Alternatives.Items) > 0 {
		b.WriteString("## Alternative Sources\n\n")
		for _, alt := range report.Alternatives.Items {
			line := fmt.Sprintf("- [%s](%s) (%s)", displayName(alt), alt.URL, alt.License)
			if alt.Description != "" {
				line += ": " + alt.Description
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	if report.LLM != nil && report.LLM.Text != "" {
		b.WriteString("## Explanation\n\n")
		fmt.Fprintf(&b, "%s\n\n", report.LLM.Text)
		fmt.Fprintf(&b, "_Generated by %s (%s); does not affect the assessment._\n\n", report.LLM.Provider, report.LLM.Model)
	}

	if len(report.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range report.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\n")
		b.WriteString("This assessment is advisory and is not legal advice.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderSummary prints a short terminal summary.
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Println()
	fmt.Printf("File:       %s\n", report.FileName)
	fmt.Printf("License:    %s (%s confidence)\n", report.Copyright.LicenseName, report.Copyright.Confidence)

	if report.Verdict.CanUse {
		fmt.Printf("Verdict:    ✓ can use (%s confidence)\n", strings.ToLower(string(report.Verdict.Confidence)))
	} else {
		fmt.Printf("Verdict:    ✗ do not use (%s confidence)\n", strings.ToLower(string(report.Verdict.Confidence)))
	}
	if !report.Verdict.OpenContent {
		fmt.Printf("Score:      %.2f\n", report.Verdict.AggregateScore)
	}
	fmt.Printf("Advice:     %s\n", report.Verdict.Recommendation)

	for _, w := range report.Verdict.Warnings {
		fmt.Printf("Warning:    %s\n", w)
	}
	if report.Alternatives != nil {
		fmt.Printf("Suggested:  %d alternative sources\n", len(report.Alternatives.Items))
	}
	if report.FromCache {
		fmt.Println("(cached result)")
	}
	fmt.Println()
}

func displayName(alt model.AlternativeSource) string {
	if alt.Title != "" {
		return alt.Source + " - " + alt.Title
	}
	return alt.Source
}
