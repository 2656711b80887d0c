// Command locbridge round-trips XLIFF 1.2 course files through per-language Excel workbooks
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"locbridge/internal/core/settings"
	"locbridge/internal/core/version"
	"locbridge/internal/platform/config"
	"locbridge/internal/platform/logger"

	"github.com/spf13/cobra"
)

// global flags
type globals struct {
	root     string
	config   string
	glossary string
}

func main() {
	logger.Init(logger.FromEnv())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err))
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:           "locbridge",
		Short:         "Move XLIFF course translations in and out of Excel",
		Version:       version.Info("locbridge").String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&g.root, "root", "r", ".", "project root holding the .xliff files")
	pf.StringVarP(&g.config, "config", "c", "", "settings file (default $LOCBRIDGE_CONFIG or <root>/config.json)")
	pf.StringVar(&g.glossary, "glossary", "", "glossary workbook, overrides settings")

	root.AddCommand(
		newExportCmd(g),
		newReconstructCmd(g),
		newAnalyzeCmd(g),
		newApplyMTCmd(g),
		newGlossaryCmd(g),
		newEditCmd(g),
		newInitConfigCmd(g),
	)
	return root
}

// settings resolves config file, LOCBRIDGE_* env and flags, in that order
func (g *globals) settings(cmd *cobra.Command) (settings.Settings, error) {
	env := config.New().Prefix("LOCBRIDGE_")
	path := g.config
	if path == "" {
		path = env.MayString("CONFIG", filepath.Join(g.root, "config.json"))
	}
	s, err := settings.Load(path)
	if err != nil {
		return s, err
	}
	s.ApplyEnv(env)
	if cmd.Flags().Changed("glossary") {
		s.Glossary = g.glossary
	}
	return s, nil
}

func (g *globals) absRoot() (string, error) {
	abs, err := filepath.Abs(g.root)
	if err != nil {
		return "", fmt.Errorf("resolve root %s: %w", g.root, err)
	}
	return abs, nil
}

func newInitConfigCmd(g *globals) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write the default settings file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(g.root, "config.json")
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force)", path)
			}
			if err := settings.Defaults().Write(path); err != nil {
				return err
			}
			success(cmd, "wrote %s", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

// exitError carries a process exit code through cobra
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	failure(os.Stderr, err)
	return 1
}
