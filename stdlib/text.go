// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stdlib

import (
	qd "github.com/qdlang/quarkdown"
)

func textFunctions() []*qd.Function {
	return []*qd.Function{
		{
			Name:   "concatenate",
			Params: []qd.Parameter{param("a", qd.TypeString), param("b", qd.TypeString)},
			Invoke: func(x *qd.Invocation) (qd.Value, error) {
				return qd.StringValue(x.String("a") + x.String("b")), nil
			},
		},
		{
			Name:   "bold",
			Params: []qd.Parameter{body("text", qd.TypeInlineMarkdown)},
			Invoke: func(x *qd.Invocation) (qd.Value, error) {
				var inner []qd.Inline
				for _, n := range x.Arg("text").(*qd.MarkdownContent).Children {
					if in, ok := n.(qd.Inline); ok {
						inner = append(inner, in)
					}
				}
				return qd.NodeValue{Node: &qd.Strong{Inner: inner}}, nil
			},
		},
		{
			// .code {lang}
			//     source
			Name:   "code",
			Params: []qd.Parameter{optional("lang", qd.TypeString), body("code", qd.TypeString)},
			Invoke: func(x *qd.Invocation) (qd.Value, error) {
				return qd.NodeValue{Node: &qd.CodeBlock{Lang: x.String("lang"), Text: x.String("code") + "\n"}}, nil
			},
		},
		{
			Name: "pagebreak",
			Invoke: func(*qd.Invocation) (qd.Value, error) {
				return qd.NodeValue{Node: &qd.PageBreak{}}, nil
			},
		},
		{
			// .text {content}, content parsed as block Markdown.
			Name:   "text",
			Params: []qd.Parameter{body("content", qd.TypeString)},
			Invoke: func(x *qd.Invocation) (qd.Value, error) {
				return markdown(x, x.String("content"))
			},
		},
	}
}
