package worker

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/clearuse/clearuse/internal/extract"
	"github.com/clearuse/clearuse/internal/model"
)

// Checker runs a full check for one file.
type Checker interface {
	CheckFile(ctx context.Context, path string, usage model.UsageContext) (*model.Report, error)
}

// CheckJob checks a single file.
type CheckJob struct {
	Index   int
	Path    string
	Usage   model.UsageContext
	Checker Checker
}

// Execute executes the check job
func (j *CheckJob) Execute(ctx context.Context) Result {
	report, err := j.Checker.CheckFile(ctx, j.Path, j.Usage)
	return &CheckResult{
		Index:  j.Index,
		Path:   j.Path,
		Report: report,
		Error:  err,
	}
}

// CheckResult is the outcome of one file check. Index is the file's
// position in the input, so batch output can be ordered the way the files
// were given regardless of completion order.
type CheckResult struct {
	Index  int
	Path   string
	Report *model.Report
	Error  error
}

// GetError returns the error from the check result
func (r *CheckResult) GetError() error {
	return r.Error
}

// BatchProcessor checks multiple files concurrently
type BatchProcessor struct {
	checker     Checker
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(checker Checker, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		checker:     checker,
		concurrency: concurrency,
	}
}

// ProcessPaths checks the given files concurrently.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string, usage model.UsageContext) []*CheckResult {
	if len(paths) == 0 {
		return []*CheckResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for i, path := range paths {
		pool.Submit(&CheckJob{
			Index:   i,
			Path:    path,
			Usage:   usage,
			Checker: b.checker,
		})
	}

	results := pool.Wait()

	// Completion order is nondeterministic; restore input order.
	checkResults := make([]*CheckResult, len(results))
	for i, result := range results {
		checkResults[i] = result.(*CheckResult)
	}
	sort.Slice(checkResults, func(i, j int) bool {
		return checkResults[i].Index < checkResults[j].Index
	})

	return checkResults
}

// ProcessDir walks a directory and checks every supported file in it.
func (b *BatchProcessor) ProcessDir(ctx context.Context, dir string, usage model.UsageContext) ([]*CheckResult, error) {
	paths, err := ListSupportedFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return b.ProcessPaths(ctx, paths, usage), nil
}

// ProcessListFile reads file paths from a list file and checks them.
func (b *BatchProcessor) ProcessListFile(ctx context.Context, listPath string, usage model.UsageContext) ([]*CheckResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read paths: %w", err)
	}
	return b.ProcessPaths(ctx, paths, usage), nil
}

// ListSupportedFiles walks dir and returns every checkable file, sorted.
func ListSupportedFiles(dir string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Skip hidden directories.
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := extract.DetectKind(path); ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}

// ReadPathsFromFile reads file paths from a file (one per line)
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
