package main

import (
	"fmt"
	"path/filepath"

	analysisdom "locbridge/internal/services/analysis/domain"
	analysissvc "locbridge/internal/services/analysis/service"
	exportdom "locbridge/internal/services/export/domain"
	exportsvc "locbridge/internal/services/export/service"
	mtdom "locbridge/internal/services/mtapply/domain"
	mtsvc "locbridge/internal/services/mtapply/service"
	reconstructdom "locbridge/internal/services/reconstruct/domain"
	reconstructsvc "locbridge/internal/services/reconstruct/service"

	"github.com/spf13/cobra"
)

func newExportCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Build one deduplicated master workbook per language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := g.settings(cmd)
			if err != nil {
				return err
			}
			root, err := g.absRoot()
			if err != nil {
				return err
			}
			res, err := exportsvc.New(s).Run(cmd.Context(), exportdom.RunInput{Root: root})
			if err != nil {
				return err
			}
			o := outcome{what: "export", errors: res.Errors, messages: res.Messages, errorLog: res.ErrorLog}
			o.details = append(o.details, fmt.Sprintf("%d file(s) read, %d workbook(s) written", res.FilesProcessed, res.LanguagesWritten))
			o.details = append(o.details, res.Workbooks...)
			return report(cmd, o)
		},
	}
}

func newReconstructCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "reconstruct",
		Short: "Write translated XLIFF files from the master workbooks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := g.settings(cmd)
			if err != nil {
				return err
			}
			root, err := g.absRoot()
			if err != nil {
				return err
			}
			res, err := reconstructsvc.New(s).Run(cmd.Context(), reconstructdom.RunInput{Root: root})
			if err != nil {
				return err
			}
			o := outcome{what: "reconstruct", errors: res.Errors, messages: res.Messages, errorLog: res.ErrorLog}
			o.details = append(o.details, fmt.Sprintf("%d file(s) reconstructed", res.FilesReconstructed))
			if res.GlossaryPromoted > 0 {
				o.details = append(o.details, fmt.Sprintf("%d term(s) added to the glossary", res.GlossaryPromoted))
			}
			if res.StandardFilesReplaced > 0 {
				o.details = append(o.details, fmt.Sprintf("%d standard file(s) replaced from the master repository", res.StandardFilesReplaced))
			}
			return report(cmd, o)
		},
	}
}

func newAnalyzeCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Count words, repetitions and glossary matches per language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := g.settings(cmd)
			if err != nil {
				return err
			}
			root, err := g.absRoot()
			if err != nil {
				return err
			}
			res, err := analysissvc.New(s).Run(cmd.Context(), analysisdom.RunInput{Root: root})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-12s %10s %12s %10s %10s\n", "language", "total", "repetitions", "glossary", "new")
			for _, l := range res.Languages {
				fmt.Fprintf(w, "%-12s %10d %12d %10d %10d\n", l.Language, l.TotalWords, l.Repetitions, l.GlossaryMatches, l.NewWords)
			}
			return report(cmd, outcome{
				what:     fmt.Sprintf("analysis of %d file(s)", res.FilesAnalysed),
				errors:   res.Errors,
				messages: res.Messages,
			})
		},
	}
}

func newApplyMTCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "apply-mt <dir>",
		Short: "Copy machine translations into the target column of the master workbooks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.settings(cmd)
			if err != nil {
				return err
			}
			root, err := g.absRoot()
			if err != nil {
				return err
			}
			dir, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			res, err := mtsvc.New(s).Apply(cmd.Context(), mtdom.ApplyInput{Root: root, MTDir: dir})
			if err != nil {
				return err
			}
			return report(cmd, outcome{
				what:     "MT apply",
				errors:   res.Errors,
				messages: res.Messages,
				errorLog: res.ErrorLog,
				details:  []string{fmt.Sprintf("%d of %d workbook(s) updated", res.Updated, res.Total)},
			})
		},
	}
}
