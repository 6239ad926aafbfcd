package lint

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/gnolang/depwarn/internal"
	tt "github.com/gnolang/depwarn/internal/types"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type LintEngine interface {
	Run(filePath string) ([]tt.DeprecationEvent, error)
	RunSource(source []byte) ([]tt.DeprecationEvent, error)
	IgnorePath(pattern string)
	IgnoreFunc(name string) bool
}

// New loads the configuration at configurationPath and builds an engine from it.
// The configured ignore lists are applied to the engine.
func New(configurationPath string) (*internal.Engine, Config, error) {
	config, err := LoadConfig(configurationPath)
	if err != nil {
		return nil, config, err
	}

	engine, err := internal.NewEngine(config.Rules)
	if err != nil {
		return nil, config, fmt.Errorf("%s: %w", configurationPath, err)
	}
	for _, p := range config.Ignore.Paths {
		engine.IgnorePath(p)
	}
	for _, fn := range config.Ignore.Funcs {
		engine.IgnoreFunc(fn)
	}
	return engine, config, nil
}

type processOptions struct {
	progress io.Writer
	jobs     int
}

// ProcessOption tunes directory processing.
type ProcessOption func(*processOptions)

// WithProgress draws a progress bar on w while a directory is processed.
func WithProgress(w io.Writer) ProcessOption {
	return func(o *processOptions) { o.progress = w }
}

// WithJobs limits the number of files processed at once. Defaults to the number of CPUs.
func WithJobs(n int) ProcessOption {
	return func(o *processOptions) { o.jobs = n }
}

func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	sources [][]byte,
	processor func(LintEngine, []byte) ([]tt.DeprecationEvent, error),
) ([]tt.DeprecationEvent, error) {
	var all []tt.DeprecationEvent
	for i, source := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		events, err := processor(engine, source)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing source", zap.Int("source", i), zap.Error(err))
			}
			return nil, err
		}
		all = append(all, events...)
	}
	return all, nil
}

func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	processor func(LintEngine, string) ([]tt.DeprecationEvent, error),
	opts ...ProcessOption,
) ([]tt.DeprecationEvent, error) {
	var all []tt.DeprecationEvent
	for _, path := range paths {
		events, err := ProcessPath(ctx, logger, engine, path, processor, opts...)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		all = append(all, events...)
	}
	return all, nil
}

// ProcessPath runs processor over path. Directories are walked and their
// files processed in parallel; events come back in walk order. A file that
// fails to process is logged and skipped.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	path string,
	processor func(LintEngine, string) ([]tt.DeprecationEvent, error),
	opts ...ProcessOption,
) ([]tt.DeprecationEvent, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := processOptions{jobs: runtime.NumCPU()}
	for _, opt := range opts {
		opt(&o)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !hasDesiredExtension(path) {
			logger.Debug("Skipping file", zap.String("file", path))
			return nil, nil
		}
		return processor(engine, path)
	}

	files, err := collectFiles(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	var bar *progressbar.ProgressBar
	if o.progress != nil {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(o.progress),
			progressbar.OptionSetDescription(path),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
	}

	// each goroutine owns one slot
	results := make([][]tt.DeprecationEvent, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(o.jobs, len(files))))
	for i, fp := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			events, err := processor(engine, fp)
			if err != nil {
				logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
			} else {
				results[i] = events
			}
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if bar != nil {
		_ = bar.Finish()
	}

	var all []tt.DeprecationEvent
	for _, events := range results {
		all = append(all, events...)
	}
	return all, nil
}

func collectFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && hasDesiredExtension(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", root, err)
	}
	return files, nil
}

func ProcessFile(engine LintEngine, filePath string) ([]tt.DeprecationEvent, error) {
	return engine.Run(filePath)
}

func ProcessSource(engine LintEngine, source []byte) ([]tt.DeprecationEvent, error) {
	return engine.RunSource(source)
}

var desiredExtensions = map[string]bool{
	".go":  true,
	".gno": true,
}

func hasDesiredExtension(path string) bool {
	return desiredExtensions[filepath.Ext(path)]
}
