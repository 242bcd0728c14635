// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	qd "github.com/qdlang/quarkdown"
	"github.com/spf13/cobra"
)

var inlineTokens bool

var tokensCmd = &cobra.Command{
	Use:   "tokens [files...]",
	Short: "Print the tokens of the block or inline lexer",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			return printTokens(out, data)
		}
		for _, file := range args {
			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			if err := printTokens(out, data); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	tokensCmd.Flags().BoolVar(&inlineTokens, "inline", false, "use the inline lexer")
}

var kindColor = color.New(color.FgCyan)

func printTokens(w io.Writer, data []byte) error {
	f := qd.FlavorByName(cfg.Flavor)
	src := string(replaceTabs(data))
	lex := qd.NewBlockLexer(src, f)
	if inlineTokens {
		lex = qd.NewInlineLexer(src, f)
	}
	toks, err := qd.Tokenize(lex)
	for _, t := range toks {
		fmt.Fprintf(w, "%s %d-%d %q\n", kindColor.Sprint(t.Kind), t.Span.Start, t.Span.End, t.Text)
	}
	return err
}
