package main

import (
	"fmt"

	"locbridge/internal/modkit"
	"locbridge/internal/modkit/module"
	"locbridge/internal/platform/config"
	"locbridge/internal/platform/logger"
	glossarydom "locbridge/internal/services/glossary/domain"
	glossarymod "locbridge/internal/services/glossary/module"

	"github.com/spf13/cobra"
)

// glossaryPort wires the glossary module the same way the API does
func (g *globals) glossaryPort(cmd *cobra.Command) (glossarydom.ServicePort, error) {
	s, err := g.settings(cmd)
	if err != nil {
		return nil, err
	}
	deps := modkit.Deps{Log: *logger.Get(), Cfg: config.New().Prefix("LOCBRIDGE_"), Settings: s}
	return module.MustPortsOf[glossarymod.Ports](glossarymod.New(deps)).Glossary, nil
}

func newGlossaryCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "glossary",
		Short: "Manage the project glossary",
	}
	cmd.AddCommand(newGlossaryAddCmd(g), newGlossaryMatchCmd(g))
	return cmd
}

func newGlossaryAddCmd(g *globals) *cobra.Command {
	var e glossarydom.Entry
	cmd := &cobra.Command{
		Use:   "add <source> <target>",
		Short: "Append one term",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := g.absRoot()
			if err != nil {
				return err
			}
			port, err := g.glossaryPort(cmd)
			if err != nil {
				return err
			}
			e.Source, e.Target = args[0], args[1]
			added, err := port.AddTerm(cmd.Context(), glossarydom.AddTermInput{Root: root, Entry: e})
			if err != nil {
				return err
			}
			lang := added.Language
			if lang == "" {
				lang = "all languages"
			}
			success(cmd, "added %q -> %q (%s, %s)", added.Source, added.Target, lang, added.MatchType)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&e.Language, "lang", "l", "", "language code; empty applies to every language")
	f.StringVar(&e.MatchType, "match", glossarydom.MatchPartial, "exact or partial")
	f.BoolVar(&e.CaseSensitive, "case-sensitive", false, "match case")
	f.StringVar(&e.Context, "context", "", "free-form note for translators")
	f.BoolVar(&e.Forbidden, "forbidden", false, "mark the term as forbidden")
	return cmd
}

func newGlossaryMatchCmd(g *globals) *cobra.Command {
	var in glossarydom.MatchInput
	cmd := &cobra.Command{
		Use:   "match <text>",
		Short: "List glossary terms found in text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := g.absRoot()
			if err != nil {
				return err
			}
			port, err := g.glossaryPort(cmd)
			if err != nil {
				return err
			}
			in.Root, in.Text = root, args[0]
			hits, err := port.Matches(cmd.Context(), in)
			if err != nil {
				return err
			}
			printMatches(cmd, hits)
			return nil
		},
	}
	cmd.Flags().StringVarP(&in.Language, "lang", "l", "", "target language filter")
	cmd.Flags().StringVar(&in.File, "file", "", "take the language from this .xliff file")
	return cmd
}

func printMatches(cmd *cobra.Command, hits []glossarydom.Match) {
	w := cmd.OutOrStdout()
	if len(hits) == 0 {
		fmt.Fprintln(w, dim("no glossary terms found"))
		return
	}
	for _, h := range hits {
		fmt.Fprintf(w, "%s %s %s\n", h.Term, cyan("→"), h.Target)
	}
}
