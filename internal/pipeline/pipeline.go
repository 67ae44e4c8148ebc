package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/clearuse/clearuse/internal/alternatives"
	"github.com/clearuse/clearuse/internal/cache"
	"github.com/clearuse/clearuse/internal/extract"
	"github.com/clearuse/clearuse/internal/fairuse"
	"github.com/clearuse/clearuse/internal/license"
	"github.com/clearuse/clearuse/internal/llm"
	"github.com/clearuse/clearuse/internal/model"
	"github.com/clearuse/clearuse/internal/util"
)

// Pipeline orchestrates a complete check: extract, resolve the copyright
// status, assess fair use, then optionally suggest alternatives and generate
// an explanation. Only extraction and assessment can fail a check; every
// other collaborator degrades to a report warning.
type Pipeline struct {
	extractor *extract.Extractor
	resolver  *license.Resolver
	assessor  *fairuse.Assessor
	finder    *alternatives.Finder
	explainer *llm.Explainer // nil when disabled
	cache     cache.Cache    // nil when disabled
	renderer  *Renderer
	config    *model.Config
}

// NewPipeline creates a pipeline from configuration.
func NewPipeline(cfg *model.Config) *Pipeline {
	var explainer *llm.Explainer
	if cfg.LLM.Provider != "" {
		e, err := llm.NewExplainer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to initialize LLM provider: %v\n", err)
		} else {
			explainer = e
		}
	}

	var reportCache cache.Cache
	if cfg.Cache.Enabled {
		reportCache = cache.NewLayeredCache(cfg.Cache.TTL, resolveCacheDir(cfg.Cache.Dir), cfg.Cache.TTL)
	}

	var wikimedia *alternatives.WikimediaClient
	if cfg.Lookup.Enabled {
		wikimedia = alternatives.NewWikimediaClient(alternatives.WikimediaOptions{
			Timeout:    cfg.Lookup.Timeout,
			UserAgent:  cfg.HTTP.UserAgent,
			MaxResults: cfg.Lookup.MaxResults,
			RPS:        cfg.Lookup.RequestsPerSecond,
			Burst:      cfg.Lookup.BurstSize,
		})
	}
	var verifier *alternatives.Verifier
	if cfg.Lookup.VerifyLinks {
		verifier = alternatives.NewVerifier(
			cfg.HTTP.Timeout,
			cfg.Concurrency.VerifyWorkers,
			cfg.HTTP.UserAgent,
			cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy,
		)
	}

	return &Pipeline{
		extractor: extract.NewExtractor(),
		resolver:  license.NewResolver(),
		assessor:  fairuse.NewAssessor(),
		finder:    alternatives.NewFinder(wikimedia, verifier),
		explainer: explainer,
		cache:     reportCache,
		renderer:  NewRenderer(cfg.Output.IncludeFooter),
		config:    cfg,
	}
}

// CheckFile runs the full check for one local file.
func (p *Pipeline) CheckFile(ctx context.Context, path string, usage model.UsageContext) (*model.Report, error) {
	var cacheKey string
	if p.cache != nil {
		key, err := cache.ReportKey(path, usage)
		if err == nil {
			cacheKey = key
			if data, found := p.cache.Get(key); found {
				var cached model.Report
				if err := json.Unmarshal(data, &cached); err == nil {
					cached.FromCache = true
					return &cached, nil
				}
			}
		}
	}

	// 1. Extract source info
	src, err := p.extractor.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	usage.Content = src.ContentType

	// 2. Resolve copyright status
	status := p.resolver.Resolve(src)

	// 3. Assess fair use
	verdict, err := p.assessor.Assess(status, usage)
	if err != nil {
		return nil, fmt.Errorf("assess: %w", err)
	}

	report := &model.Report{
		FileName:  src.FileName,
		Path:      path,
		CheckedAt: time.Now().UTC(),
		Context:   usage,
		Source:    src,
		Copyright: status,
		Verdict:   verdict,
		Warnings:  src.Warnings,
	}

	// 4. Suggest alternatives for anything restricted or unusable
	if !verdict.CanUse || len(status.Restrictions) > 0 {
		result := p.finder.Find(ctx, src)
		report.Alternatives = &result
		if result.Failed {
			report.Warnings = append(report.Warnings, "alternative search incomplete: "+result.Reason)
		}
	}

	// 5. Generate explanation if enabled (AFTER assessment, never affects the verdict)
	if p.explainer.IsEnabled() {
		explanation, err := p.explainer.Explain(ctx, *report)
		if err != nil {
			report.Warnings = append(report.Warnings, "explanation unavailable: "+err.Error())
		} else if explanation != nil {
			report.LLM = explanation
		}
	}

	if p.cache != nil && cacheKey != "" {
		if data, err := json.Marshal(report); err == nil {
			_ = p.cache.Set(cacheKey, data, p.config.Cache.TTL)
		}
	}

	return report, nil
}

// Renderer returns the pipeline's renderer for output writing.
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

// resolveCacheDir expands an empty dir to ~/.clearuse/cache.
func resolveCacheDir(dir string) string {
	if dir != "" {
		return dir
	}
	return util.DefaultDataPath("cache")
}
