package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/policylens/internal/model"
)

// Digester builds a digest report for one document on disk
type Digester interface {
	DigestFile(ctx context.Context, path string) (*model.DigestReport, error)
}

// DigestJob represents a single document digest
type DigestJob struct {
	Path     string
	Digester Digester
}

// Execute executes the digest job
func (j *DigestJob) Execute(ctx context.Context) Result {
	report, err := j.Digester.DigestFile(ctx, j.Path)
	if err != nil {
		return &DigestResult{Path: j.Path, Error: err}
	}
	return &DigestResult{Path: j.Path, Report: report}
}

// DigestResult represents the result of a digest job
type DigestResult struct {
	Path   string
	Report *model.DigestReport
	Error  error
}

// GetError returns the error from the digest result
func (r *DigestResult) GetError() error {
	return r.Error
}

// BatchProcessor digests multiple documents concurrently
type BatchProcessor struct {
	digester    Digester
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(digester Digester, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		digester:    digester,
		concurrency: concurrency,
	}
}

// ProcessPaths digests documents concurrently. Results follow the order of paths.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*DigestResult {
	if len(paths) == 0 {
		return []*DigestResult{}
	}

	jobs := make([]Job, len(paths))
	for i, path := range paths {
		jobs[i] = &DigestJob{Path: path, Digester: b.digester}
	}

	results := Run(ctx, b.concurrency, jobs)

	out := make([]*DigestResult, len(results))
	for i, result := range results {
		if result == nil {
			out[i] = &DigestResult{Path: paths[i], Error: ctx.Err()}
			continue
		}
		out[i] = result.(*DigestResult)
	}

	return out
}

// ProcessFile reads document paths from a list file and digests them concurrently.
// Relative entries are resolved against the list file's directory.
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*DigestResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read paths: %w", err)
	}

	base := filepath.Dir(listPath)
	for i, p := range paths {
		if !filepath.IsAbs(p) {
			paths[i] = filepath.Join(base, p)
		}
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads document paths from a file (one per line)
func ReadPathsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
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
