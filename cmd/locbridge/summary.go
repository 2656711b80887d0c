package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.Bold, color.FgYellow).SprintFunc()
	red    = color.New(color.Bold, color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// outcome is what every engine command reports back
type outcome struct {
	what     string
	errors   int
	messages []string
	errorLog string
	details  []string
}

// report prints the summary and turns recoverable errors into exit status 2
func report(cmd *cobra.Command, o outcome) error {
	w := cmd.OutOrStdout()
	for _, d := range o.details {
		fmt.Fprintf(w, "  %s %s\n", cyan("→"), d)
	}
	if o.errors == 0 {
		fmt.Fprintf(w, "%s %s succeeded\n", green("✓"), o.what)
		return nil
	}
	for _, m := range o.messages {
		fmt.Fprintf(w, "  %s %s\n", dim("-"), m)
	}
	where := ""
	if o.errorLog != "" {
		where = fmt.Sprintf(" (see %s)", o.errorLog)
	}
	fmt.Fprintf(w, "%s %s succeeded with %d error(s)%s\n", yellow("!"), o.what, o.errors, where)
	return exitError{code: 2}
}

func success(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", green("✓"), fmt.Sprintf(format, args...))
}

func failure(w io.Writer, err error) {
	fmt.Fprintf(w, "%s failed: %v\n", red("✗"), err)
}
