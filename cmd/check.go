package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/depwarn/formatter"
	tt "github.com/gnolang/depwarn/internal/types"
	"github.com/gnolang/depwarn/lint"
)

var (
	deprecationOut string
	ignorePaths    string
	ignoreFuncs    string
	strict         bool
	showProgress   bool
)

var warningStyle = color.New(color.FgHiYellow, color.Bold)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Report deprecated calls in the given files and directories",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, config, err := lint.New(cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize engine", zap.Error(err))
		}

		for _, p := range splitList(ignorePaths) {
			engine.IgnorePath(p)
		}
		for _, fn := range splitList(ignoreFuncs) {
			if !engine.IgnoreFunc(fn) {
				logger.Warn("Unknown deprecation in --ignore-funcs", zap.String("name", fn))
			}
		}

		out := config.Output.Deprecations
		if cmd.Flags().Changed("deprecation-out") {
			out = deprecationOut
		}

		var progress io.Writer
		if showProgress {
			progress = os.Stderr
		}

		count, err := runCheck(ctx, logger, engine, args, deprecationDestination(out), os.Stdout, progress)
		if err != nil {
			logger.Error("Error reporting deprecations", zap.Error(err))
			os.Exit(1)
		}

		if strict && count > 0 {
			warningStyle.Fprintf(os.Stderr, "warning: ")
			fmt.Fprintf(os.Stderr, "%d deprecated call(s) found\n", count)
			os.Exit(1)
		}
	},
}

func init() {
	checkCmd.Flags().StringVarP(&deprecationOut, "deprecation-out", "o", "", "Append deprecation lines to this file instead of standard error")
	checkCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of path patterns to skip")
	checkCmd.Flags().StringVar(&ignoreFuncs, "ignore-funcs", "", "Comma-separated list of deprecations to stop reporting (e.g. std.GetHeight)")
	checkCmd.Flags().BoolVar(&strict, "strict", false, "Exit with status 1 when any deprecation is reported")
	checkCmd.Flags().BoolVar(&showProgress, "progress", false, "Show a progress bar while scanning directories")
}

// deprecationDestination maps an output path to a formatter destination;
// an empty path means standard error.
func deprecationDestination(path string) formatter.Destination {
	if path == "" {
		return formatter.OpenStream(os.Stderr)
	}
	return formatter.FilePath(path)
}

// runCheck scans paths and feeds every deprecation to a formatter writing to
// dest. The summary, if any, goes to summary. It returns the number of
// deprecations reported.
func runCheck(
	ctx context.Context,
	logger *zap.Logger,
	engine lint.LintEngine,
	paths []string,
	dest formatter.Destination,
	summary io.Writer,
	progress io.Writer,
) (int, error) {
	var opts []lint.ProcessOption
	if progress != nil {
		opts = append(opts, lint.WithProgress(progress))
	}

	events, err := lint.ProcessFiles(ctx, logger, engine, paths, lint.ProcessFile, opts...)
	if err != nil {
		return 0, err
	}
	logger.Debug("Scan finished", zap.Int("deprecations", len(events)), zap.Stringer("destination", dest))

	var count int
	err = formatter.Run(dest, summary, func(f *formatter.DeprecationFormatter) error {
		defer func() { count = f.Count() }()
		return report(f, events)
	}, formatter.WithLogger(logger))
	return count, err
}

func report(f *formatter.DeprecationFormatter, events []tt.DeprecationEvent) error {
	for _, ev := range events {
		if err := f.Deprecation(ev); err != nil {
			return err
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
