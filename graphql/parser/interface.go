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

package parser

import (
	"github.com/botobag/atlas/graphql/ast"
	"github.com/botobag/atlas/graphql/token"
)

// Parse parses the given GraphQL schema source into a Document. Only type system definitions and
// extensions are accepted.
func Parse(source *token.Source) (ast.Document, error) {
	parser, err := newParser(source)
	if err != nil {
		return ast.Document{}, err
	}
	return parser.parseDocument()
}

// ParseString is a shorthand for parsing a schema from string. name is used to identify the source
// in error messages.
func ParseString(name string, body string) (ast.Document, error) {
	return Parse(token.NewSourceFromString(name, body))
}

// ParseValue parses the AST for string containing a GraphQL constant value (e.g., `[42]`).
func ParseValue(source *token.Source) (ast.Value, error) {
	parser, err := newParser(source)
	if err != nil {
		return nil, err
	}

	if _, err := parser.expect(token.KindSOF); err != nil {
		return nil, err
	}

	value, err := parser.parseValue()
	if err != nil {
		return nil, err
	}

	if _, err := parser.expect(token.KindEOF); err != nil {
		return nil, err
	}

	return value, nil
}

// ParseType parses the AST for string containing a GraphQL Type (e.g., `[Int!]`).
func ParseType(source *token.Source) (ast.Type, error) {
	parser, err := newParser(source)
	if err != nil {
		return nil, err
	}

	if _, err := parser.expect(token.KindSOF); err != nil {
		return nil, err
	}

	t, err := parser.parseType()
	if err != nil {
		return nil, err
	}

	if _, err := parser.expect(token.KindEOF); err != nil {
		return nil, err
	}

	return t, nil
}
