// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	qd "github.com/qdlang/quarkdown"
	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dumpGo  bool
	showTOC bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [files...]",
	Short: "Compile documents and print their trees",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			return compile(out, "stdin"+qd.SubdocumentExt, ".", data)
		}
		for _, file := range args {
			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			if err := compile(out, filepath.Base(file), filepath.Dir(file), data); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	compileCmd.Flags().BoolVar(&dumpGo, "dump", false, "print trees as Go values")
	compileCmd.Flags().BoolVar(&showTOC, "toc", false, "print each document's table of contents")
}

func compile(w io.Writer, name, dir string, data []byte) error {
	opts, err := cfg.options(dir)
	if err != nil {
		return err
	}
	res, err := qd.NewPipeline(opts...).Run(name, string(replaceTabs(data)))
	if err != nil {
		return err
	}
	logger.Debug("compiled",
		zap.String("name", name),
		zap.Int("subdocuments", len(res.Subdocuments)),
		zap.Int("media", res.Context.Media().Len()))
	for _, r := range append([]*qd.Result{res}, res.Subdocuments...) {
		if len(res.Subdocuments) > 0 {
			fmt.Fprintf(w, "-- %s --\n", r.Name)
		}
		printResult(w, r)
	}
	for _, m := range res.Context.Media().All() {
		fmt.Fprintf(w, "media %q %q\n", m.Path, m.Name)
	}
	return nil
}

// treeDump hides the back references and contexts held by nodes.
var treeDump = litter.Options{
	HidePrivateFields: true,
	HideZeroValues:    true,
	StripPackageNames: true,
	FieldExclusions:   regexp.MustCompile(`^(Context|Owner)$`),
}

func printResult(w io.Writer, r *qd.Result) {
	if dumpGo {
		fmt.Fprintln(w, treeDump.Sdump(r.Document))
	} else {
		io.WriteString(w, qd.Dump(r.Document))
	}
	if showTOC {
		for _, h := range r.Context.TableOfContents() {
			fmt.Fprintf(w, "toc %d %s %q\n", h.Level, h.ID, qd.PlainText(h.Text))
		}
	}
}
