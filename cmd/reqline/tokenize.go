// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reqline/reqline/internal/issue"
	"github.com/reqline/reqline/pkg/cmdline"
)

func newTokenizeCommand(app *App) *cobra.Command {
	var (
		trim   bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "tokenize LINE",
		Short: "Split a line into tokens without classifying them",
		Long: `Split a line into tokens, one per output line.

Quotes are kept in the tokens unless --trim is given, which strips matching
outer quotes the way argument values are trimmed.`,
		Example: `  reqline tokenize 'say "hello world" --to=Ada'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := cmdline.Tokenize(args[0])
			if err != nil {
				return app.fail(cmd, nil, issue.ParseError(args[0], err))
			}
			if trim {
				for i, tok := range tokens {
					tokens[i] = cmdline.TrimQuotes(tok)
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if tokens == nil {
					tokens = []string{}
				}
				enc := json.NewEncoder(out)
				return enc.Encode(tokens)
			}
			for _, tok := range tokens {
				if _, err := fmt.Fprintln(out, tok); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&trim, "trim", false, "strip matching outer quotes from each token")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the tokens as a JSON array")

	return cmd
}
