package main

import (
	"fmt"
	"strings"

	editordom "locbridge/internal/services/editor/domain"
	editorsvc "locbridge/internal/services/editor/service"

	"github.com/spf13/cobra"
)

func (g *globals) editor(cmd *cobra.Command) (*editorsvc.Service, error) {
	port, err := g.glossaryPort(cmd)
	if err != nil {
		return nil, err
	}
	return editorsvc.New(port), nil
}

func newEditCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Inspect and edit translation units in place",
	}
	cmd.AddCommand(
		newEditListCmd(g),
		newEditSetCmd(g),
		newEditFindCmd(g),
		newEditReplaceCmd(g),
		newEditTagsCmd(),
		newEditHintsCmd(g),
	)
	return cmd
}

func newEditListCmd(g *globals) *cobra.Command {
	var in editordom.ListInput
	cmd := &cobra.Command{
		Use:   "list <file.xliff>",
		Short: "List the units of one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.editor(cmd)
			if err != nil {
				return err
			}
			in.Path = args[0]
			segs, err := svc.List(cmd.Context(), in)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, s := range segs {
				fmt.Fprintf(w, "%s %s\n  %s\n  %s %s\n", cyan(s.ID), dim("["+s.State+"]"), s.Source, cyan("→"), s.Target)
			}
			fmt.Fprintln(w, dim(fmt.Sprintf("%d unit(s)", len(segs))))
			return nil
		},
	}
	cmd.Flags().StringVar(&in.State, "state", "", "only units in this state (new, translated, needs-review, ...)")
	cmd.Flags().StringVarP(&in.Search, "search", "s", "", "only units whose id, source or target contain this text")
	return cmd
}

func newEditSetCmd(g *globals) *cobra.Command {
	var in editordom.SaveInput
	cmd := &cobra.Command{
		Use:   "set <file.xliff> <id> <target>",
		Short: "Set the target of one unit",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.editor(cmd)
			if err != nil {
				return err
			}
			in.Path, in.ID, in.Target = args[0], args[1], args[2]
			seg, err := svc.Save(cmd.Context(), in)
			if err != nil {
				return err
			}
			success(cmd, "%s is now %q (%s)", seg.ID, seg.Target, seg.State)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.State, "state", "", "state to record; empty leaves the current state")
	return cmd
}

func findFlags(cmd *cobra.Command, in *editordom.FindInput) {
	f := cmd.Flags()
	f.StringVar(&in.Scope, "scope", editordom.ScopeAll, "file, language or all")
	f.StringVar(&in.File, "file", "", "file for scope file, or any file of the language for scope language")
	f.BoolVarP(&in.Regex, "regex", "e", false, "treat the pattern as a regular expression")
	f.BoolVar(&in.CaseSensitive, "case-sensitive", false, "match case")
}

func newEditFindCmd(g *globals) *cobra.Command {
	var in editordom.FindInput
	cmd := &cobra.Command{
		Use:   "find <pattern>",
		Short: "Search target texts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.editor(cmd)
			if err != nil {
				return err
			}
			if in.Root, err = g.absRoot(); err != nil {
				return err
			}
			in.Find = args[0]
			res, err := svc.Find(cmd.Context(), in)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, h := range res.Hits {
				fmt.Fprintf(w, "%s:%s %s\n", h.File, cyan(h.ID), h.Target)
			}
			return report(cmd, outcome{
				what:     fmt.Sprintf("find (%d hit(s))", len(res.Hits)),
				errors:   res.Errors,
				messages: res.Messages,
			})
		},
	}
	findFlags(cmd, &in)
	return cmd
}

func newEditReplaceCmd(g *globals) *cobra.Command {
	var in editordom.ReplaceInput
	cmd := &cobra.Command{
		Use:   "replace <pattern> <replacement>",
		Short: "Replace inside target texts and mark changed units translated",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.editor(cmd)
			if err != nil {
				return err
			}
			if in.Root, err = g.absRoot(); err != nil {
				return err
			}
			in.Find, in.Replace = args[0], args[1]
			res, err := svc.Replace(cmd.Context(), in)
			if err != nil {
				return err
			}
			return report(cmd, outcome{
				what:     "replace",
				errors:   res.Errors,
				messages: res.Messages,
				details:  []string{fmt.Sprintf("%d unit(s) changed in %d file(s)", res.Replaced, res.FilesChanged)},
			})
		},
	}
	findFlags(cmd, &in.FindInput)
	cmd.Flags().BoolVar(&in.Backup, "backup", false, "keep a .bak copy of every changed file")
	return cmd
}

func newEditTagsCmd() *cobra.Command {
	var style string
	cmd := &cobra.Command{
		Use:   "tags <text>",
		Short: "List the placeholders and inline tags of a text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := editorsvc.New(nil).Tags(cmd.Context(), editordom.TagsInput{Text: args[0], Style: style})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(tags, " "))
			return nil
		},
	}
	cmd.Flags().StringVar(&style, "style", editordom.TagsXML, "xml or bracket")
	return cmd
}

func newEditHintsCmd(g *globals) *cobra.Command {
	var in editordom.HintsInput
	cmd := &cobra.Command{
		Use:   "hints <text>",
		Short: "Glossary suggestions for a source text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.editor(cmd)
			if err != nil {
				return err
			}
			if in.Root, err = g.absRoot(); err != nil {
				return err
			}
			in.Text = args[0]
			hits, err := svc.Hints(cmd.Context(), in)
			if err != nil {
				return err
			}
			printMatches(cmd, hits)
			return nil
		},
	}
	cmd.Flags().StringVarP(&in.Language, "lang", "l", "", "target language")
	cmd.Flags().StringVar(&in.File, "file", "", "take the language from this .xliff file")
	return cmd
}
