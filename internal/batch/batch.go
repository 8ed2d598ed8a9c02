// Package batch runs the cleaning pipeline over files, directories,
// and zip archives.
package batch

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/indusnlp/shuddhi/internal/logger"
	"github.com/indusnlp/shuddhi/pkg/cleaner"
)

// cleanedSuffix marks output files so re-runs over the same directory
// do not pick them up as input.
const cleanedSuffix = "_cleaned"

// Job is one document to clean.
type Job struct {
	// Input is the source file path.
	Input string
	// Output is the destination file path.
	Output string
}

// Result is the outcome of one job.
type Result struct {
	Job   Job
	Error error
}

// Summary aggregates a batch run.
type Summary struct {
	Processed int
	Failed    int
}

// Config controls a batch run.
type Config struct {
	// Workers is the number of concurrent documents.
	Workers int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{Workers: 4}
}

// Runner cleans documents concurrently.
type Runner struct {
	cleaner cleaner.Cleaner
	cfg     Config
}

// contextCleaner is implemented by cleaners whose work can be bounded
// by a context, such as pipelines that call remote services.
type contextCleaner interface {
	CleanContext(ctx context.Context, text string) (string, error)
}

// NewRunner creates a Runner around the given cleaner.
func NewRunner(c cleaner.Cleaner, cfg Config) (*Runner, error) {
	if c == nil {
		return nil, fmt.Errorf("batch: cleaner required")
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Runner{cleaner: c, cfg: cfg}, nil
}

// Run gathers jobs under input, cleans them with the configured worker
// count, and writes each result next to outputDir. A failed document
// is counted and logged, never aborts the batch.
func (r *Runner) Run(ctx context.Context, input, outputDir string) (Summary, error) {
	jobs, cleanup, err := GatherJobs(input, outputDir)
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		return Summary{}, err
	}
	if len(jobs) == 0 {
		return Summary{}, fmt.Errorf("batch: no input files under %s", input)
	}

	logger.Debug("batch starting",
		"jobs", len(jobs),
		"workers", r.cfg.Workers)

	sem := make(chan struct{}, r.cfg.Workers)
	var wg sync.WaitGroup
	results := make(chan Result, len(jobs))

	for _, job := range jobs {
		select {
		case <-ctx.Done():
			wg.Wait()
			close(results)
			return summarize(results), ctx.Err()
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(job Job) {
			defer wg.Done()
			defer func() { <-sem }()
			results <- Result{Job: job, Error: r.processJob(ctx, job)}
		}(job)
	}

	wg.Wait()
	close(results)
	return summarize(results), nil
}

func summarize(results <-chan Result) Summary {
	var s Summary
	for res := range results {
		if res.Error != nil {
			logger.Error("document failed",
				"input", res.Job.Input,
				"error", res.Error)
			s.Failed++
			continue
		}
		s.Processed++
	}
	return s
}

func (r *Runner) processJob(ctx context.Context, job Job) error {
	raw, err := os.ReadFile(job.Input)
	if err != nil {
		return fmt.Errorf("reading %s: %w", job.Input, err)
	}

	// In-flight documents share the run context so cancellation reaches
	// remote calls made mid-clean, not just job dispatch.
	var cleaned string
	if cc, ok := r.cleaner.(contextCleaner); ok {
		cleaned, err = cc.CleanContext(ctx, string(raw))
	} else {
		cleaned, err = r.cleaner.Clean(string(raw))
	}
	if err != nil {
		return fmt.Errorf("cleaning %s: %w", job.Input, err)
	}

	if err := os.MkdirAll(filepath.Dir(job.Output), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	if err := os.WriteFile(job.Output, []byte(cleaned), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", job.Output, err)
	}

	logger.Info("document cleaned",
		"input", job.Input,
		"output", job.Output)
	return nil
}

// GatherJobs expands input into jobs. A .txt file yields one job, a
// directory is walked recursively for *.txt excluding already-cleaned
// output, and a .zip is extracted to a temp dir first. The returned
// cleanup removes any temp dir and is non-nil even on error.
func GatherJobs(input, outputDir string) ([]Job, func(), error) {
	cleanup := func() {}

	info, err := os.Stat(input)
	if err != nil {
		return nil, cleanup, fmt.Errorf("stat %s: %w", input, err)
	}

	if info.IsDir() {
		jobs, err := gatherDir(input, outputDir)
		return jobs, cleanup, err
	}

	switch strings.ToLower(filepath.Ext(input)) {
	case ".txt":
		return []Job{{
			Input:  input,
			Output: outputPath(outputDir, input),
		}}, cleanup, nil
	case ".zip":
		tempDir, err := os.MkdirTemp("", "shuddhi-zip-")
		if err != nil {
			return nil, cleanup, fmt.Errorf("creating temp dir: %w", err)
		}
		cleanup = func() { os.RemoveAll(tempDir) }

		if err := extractZip(input, tempDir); err != nil {
			return nil, cleanup, err
		}

		stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		jobs, err := gatherDir(tempDir, filepath.Join(outputDir, stem))
		return jobs, cleanup, err
	default:
		return nil, cleanup, fmt.Errorf("unsupported input type: %s", input)
	}
}

func gatherDir(dir, outputDir string) ([]Job, error) {
	var jobs []Job
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".txt") {
			return nil
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if strings.HasSuffix(stem, cleanedSuffix) {
			return nil
		}
		jobs = append(jobs, Job{
			Input:  path,
			Output: outputPath(outputDir, path),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	return jobs, nil
}

// outputPath derives <stem>_cleaned.txt under outputDir.
func outputPath(outputDir, input string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+cleanedSuffix+".txt")
}

// extractZip unpacks archive into dir, rejecting entries that would
// escape it.
func extractZip(archive, dir string) error {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("opening %s: %w", archive, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		dest := filepath.Join(dir, f.Name)
		if !strings.HasPrefix(dest, filepath.Clean(dir)+string(os.PathSeparator)) {
			return fmt.Errorf("zip entry escapes extraction dir: %s", f.Name)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		if err := extractFile(f, dest); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, dest string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, rc)
	return err
}
