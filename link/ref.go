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

package link

import (
	"strings"
	"unique"

	jsoniter "github.com/json-iterator/go"
)

// TermKind specifies the kind of element that a Term names.
type TermKind uint8

// Enumeration of TermKind
const (
	// TermSchema refers to a whole graph (the schema root).
	TermSchema TermKind = iota

	// TermName refers to a type (or any other element identified by a plain name).
	TermName

	// TermDirective refers to a directive. A directive with an empty name is the root directive of
	// a graph, that is, the directive implied by linking the graph (e.g., @federation for a linked
	// federation spec).
	TermDirective
)

// String implements fmt.Stringer.
func (kind TermKind) String() string {
	switch kind {
	case TermSchema:
		return "schema"
	case TermName:
		return "name"
	case TermDirective:
		return "directive"
	}
	return "unknown"
}

// Term is the element part of a Ref.
type Term struct {
	Kind TermKind

	// Name of the element; Always empty for TermSchema.
	Name string
}

// refValue is the canonical content of a Ref.
type refValue struct {
	term  Term
	graph URL
}

// Ref is a graph-qualified reference to an element: a type, a directive or a schema root. Like
// URL, it is a canonical handle: refs built from equal terms and graphs are ==, so Ref is used
// directly as map key throughout the code base.
//
// A Ref whose graph is the zero URL refers to an element of a document without identity. The zero
// Ref refers to nothing.
type Ref struct {
	handle unique.Handle[refValue]
}

// Canon returns the canonical Ref for term in graph.
func Canon(term Term, graph URL) Ref {
	if term.Kind == TermSchema {
		term.Name = ""
	}
	return Ref{unique.Make(refValue{term, graph})}
}

// Named returns the reference to the element called name in graph.
func Named(name string, graph URL) Ref {
	return Canon(Term{Kind: TermName, Name: name}, graph)
}

// Directive returns the reference to the directive called name in graph.
func Directive(name string, graph URL) Ref {
	return Canon(Term{Kind: TermDirective, Name: name}, graph)
}

// RootDirective returns the reference to the root directive of graph.
func RootDirective(graph URL) Ref {
	return Directive("", graph)
}

// Schema returns the reference to the schema root of graph.
func Schema(graph URL) Ref {
	return Canon(Term{Kind: TermSchema}, graph)
}

// ParseRef parses the string form of a Ref (as returned by Ref.String). "<url>#Foo" is a name,
// "<url>#@foo" is a directive, "<url>#@" is a root directive and "<url>" alone is the schema root.
// The URL part may be empty (e.g., "#Foo") for a document without identity.
func ParseRef(input string) (Ref, error) {
	graphPart, element, hasElement := strings.Cut(input, "#")

	var graph URL
	if len(graphPart) > 0 {
		var err error
		if graph, err = ParseURL(graphPart); err != nil {
			return Ref{}, err
		}
	}

	if !hasElement {
		return Schema(graph), nil
	}

	if strings.HasPrefix(element, "@") {
		return Directive(element[1:], graph), nil
	}
	return Named(element, graph), nil
}

// IsZero returns true for the zero Ref.
func (ref Ref) IsZero() bool {
	return ref == Ref{}
}

func (ref Ref) value() refValue {
	if ref.IsZero() {
		return refValue{}
	}
	return ref.handle.Value()
}

// Term returns the element part of the reference.
func (ref Ref) Term() Term {
	return ref.value().term
}

// Graph returns the graph that owns the element.
func (ref Ref) Graph() URL {
	return ref.value().graph
}

// IsRootDirective returns true if ref refers to the root directive of a graph.
func (ref Ref) IsRootDirective() bool {
	term := ref.Term()
	return term.Kind == TermDirective && len(term.Name) == 0
}

// String implements fmt.Stringer. The result is "<url>#name" for a name, "<url>#@name" for a
// directive, "<url>#@" for a root directive and "<url>" for a schema root.
func (ref Ref) String() string {
	if ref.IsZero() {
		return ""
	}

	value := ref.value()
	href := value.graph.Href()
	switch value.term.Kind {
	case TermName:
		return href + "#" + value.term.Name
	case TermDirective:
		return href + "#@" + value.term.Name
	}
	return href
}

// MarshalJSON implements json.Marshaler. A Ref is written as its string form.
func (ref Ref) MarshalJSON() ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(ref.String())
}
