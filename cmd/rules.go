package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	tt "github.com/gnolang/depwarn/internal/types"
	"github.com/gnolang/depwarn/lint"
)

var (
	nameStyle        = color.New(color.FgYellow, color.Bold)
	alternativeStyle = color.New(color.FgGreen)
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the deprecations that are checked",
	Run: func(cmd *cobra.Command, args []string) {
		engine, _, err := lint.New(cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize engine", zap.Error(err))
		}
		printRules(os.Stdout, engine.Rules())
	},
}

func printRules(w io.Writer, rules []tt.DeprecationRule) {
	for _, r := range rules {
		nameStyle.Fprint(w, r.Name())
		if r.Alternative != "" {
			fmt.Fprint(w, " -> ")
			alternativeStyle.Fprint(w, r.Alternative)
		}
		fmt.Fprintln(w)
	}
}
