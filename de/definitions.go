/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package de

import (
	"github.com/botobag/atlas/graphql/ast"
	"github.com/botobag/atlas/link"
)

// Def is a located definition.
type Def struct {
	Definition ast.Definition
	Ref        link.Ref
	Located    *Located
}

// Definitions groups the definitions of one or more located documents by reference.
type Definitions struct {
	byRef map[link.Ref][]Def
	refs  []link.Ref
}

// NewDefinitions collects the definitions and extensions of the documents in document order.
func NewDefinitions(documents ...*Located) *Definitions {
	defs := &Definitions{
		byRef: map[link.Ref][]Def{},
	}

	for _, located := range documents {
		for _, def := range located.Document().Definitions {
			ref, exists := located.RefOf(def)
			if !exists {
				continue
			}

			if _, seen := defs.byRef[ref]; !seen {
				defs.refs = append(defs.refs, ref)
			}
			defs.byRef[ref] = append(defs.byRef[ref], Def{
				Definition: def,
				Ref:        ref,
				Located:    located,
			})
		}
	}

	return defs
}

// ByRef returns the definitions of ref. It returns nil if ref is not defined.
func (defs *Definitions) ByRef(ref link.Ref) []Def {
	if defs == nil {
		return nil
	}
	return defs.byRef[ref]
}

// Has returns true if ref is defined.
func (defs *Definitions) Has(ref link.Ref) bool {
	return len(defs.ByRef(ref)) > 0
}

// Refs returns the defined references in the order they were first defined.
func (defs *Definitions) Refs() []link.Ref {
	if defs == nil {
		return nil
	}
	return defs.refs
}

// Len returns the number of defined references.
func (defs *Definitions) Len() int {
	return len(defs.Refs())
}
