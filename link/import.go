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
	"fmt"
	"strings"

	"github.com/botobag/atlas/graphql"
)

// Import is an element imported from a linked graph into the scope of a document. Directive
// elements and aliases keep their "@" prefix.
type Import struct {
	// Element is the name of the imported element in the linked graph (e.g., "Foo" or "@key").
	Element string

	// Alias is the name under which the element is visible in the importing document. It equals
	// Element when the element is imported without alias.
	Alias string
}

// IsDirective returns true if the import brings in a directive.
func (imp Import) IsDirective() bool {
	return strings.HasPrefix(imp.Element, "@")
}

// String implements fmt.Stringer. It returns the import in the form accepted by ParseImports.
func (imp Import) String() string {
	if imp.Alias == imp.Element {
		return imp.Element
	}
	return imp.Alias + ": " + imp.Element
}

// NewImport builds an Import from an element and an optional alias. It fails with BadImport if the
// alias and the element are not of the same kind.
func NewImport(element string, alias string) (Import, error) {
	if len(alias) == 0 {
		alias = element
	}

	if !isImportName(element) || !isImportName(alias) {
		return Import{}, graphql.NewError(fmt.Sprintf("invalid import %q", alias+": "+element),
			graphql.ErrCodeBadImport, graphql.ErrKindParse)
	}

	if strings.HasPrefix(alias, "@") != strings.HasPrefix(element, "@") {
		return Import{}, graphql.NewError(
			fmt.Sprintf(`cannot import %q as %q: an alias must be of the same kind as the imported element`,
				element, alias),
			graphql.ErrCodeBadImport, graphql.ErrKindParse)
	}

	return Import{
		Element: element,
		Alias:   alias,
	}, nil
}

// ParseImports parses an import list. The list is a sequence of space-separated entries, each of
// which is either an element ("Foo" or "@key") or an aliased element ("Bar: Foo", "@k: @key"; the
// space after the colon is optional).
func ParseImports(input string) ([]Import, error) {
	const op graphql.Op = "link.ParseImports"

	var (
		imports []Import
		alias   string
	)

	for _, field := range strings.Fields(input) {
		// Split "alias:element" and "alias:".
		for len(field) > 0 {
			name := field
			field = ""
			isAlias := false
			if i := strings.IndexByte(name, ':'); i >= 0 {
				name, field = name[:i], name[i+1:]
				isAlias = true
			}

			if isAlias {
				if len(alias) > 0 || len(name) == 0 {
					return nil, graphql.NewError(fmt.Sprintf("unexpected ':' in import list %q", input),
						graphql.ErrCodeBadImport, graphql.ErrKindParse, op)
				}
				alias = name
				continue
			}

			imp, err := NewImport(name, alias)
			if err != nil {
				return nil, graphql.WrapErrorf(err, "bad import list %q", input)
			}
			imports = append(imports, imp)
			alias = ""
		}
	}

	if len(alias) > 0 {
		return nil, graphql.NewError(fmt.Sprintf("alias %q in import list %q has no element", alias, input),
			graphql.ErrCodeBadImport, graphql.ErrKindParse, op)
	}

	return imports, nil
}

// isImportName returns true if s is a GraphQL name optionally prefixed with "@".
func isImportName(s string) bool {
	s = strings.TrimPrefix(s, "@")
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (i > 0 && c >= '0' && c <= '9') {
			continue
		}
		return false
	}
	return true
}
