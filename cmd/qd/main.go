// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Qd compiles Quarkdown documents.
//
// Usage:
//
//	qd compile [-dump] [-toc] [file...]
//	qd tokens [-inline] [file...]
//	qd init
//
// Compile reads the named files, or else standard input, as Quarkdown
// documents, expands their function calls, and prints the resulting
// trees to standard output, followed by the trees of any subdocuments
// they link to. Tokens prints the tokens of the block (or inline) lexer.
// Init writes a default .qd.yaml configuration file.
package main

import (
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := Execute(); err != nil {
		color.New(color.FgHiRed).Fprintf(os.Stderr, "qd: %v\n", err)
		os.Exit(1)
	}
}
