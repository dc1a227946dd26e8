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

package scope

import (
	"fmt"

	"github.com/botobag/atlas/graphql"
	"github.com/botobag/atlas/graphql/ast"
	"github.com/botobag/atlas/link"
)

// linkRequest is the decoded form of a link directive.
type linkRequest struct {
	// href is the URL as written in the directive.
	href    string
	url     link.URL
	alias   string
	imports []link.Import
}

// name returns the name under which the linked graph is visible.
func (req *linkRequest) name() string {
	if len(req.alias) > 0 {
		return req.alias
	}
	return req.url.Name()
}

func badArgument(node ast.Node, format string, args ...interface{}) error {
	return graphql.NewError(fmt.Sprintf(format, args...),
		graphql.ErrCodeBadArgument, graphql.ErrKindParse, node)
}

// findArgument returns the first argument of directive whose name is one of names.
func findArgument(directive *ast.Directive, names ...string) *ast.Argument {
	for _, arg := range directive.Arguments {
		for _, name := range names {
			if arg.Name.Value() == name {
				return arg
			}
		}
	}
	return nil
}

// stringArgument decodes an optional string argument. Absent and null arguments yield an empty
// string.
func stringArgument(directive *ast.Directive, names ...string) (string, error) {
	arg := findArgument(directive, names...)
	if arg == nil {
		return "", nil
	}

	switch value := arg.Value.(type) {
	case ast.StringValue:
		return value.Value(), nil
	case ast.NullValue:
		return "", nil
	}
	return "", badArgument(arg, "argument %q of @%s must be a string", arg.Name.Value(),
		directive.Name.Value())
}

// urlArgument decodes the required URL argument given by the first of names.
func urlArgument(directive *ast.Directive, names ...string) (string, link.URL, error) {
	href, err := stringArgument(directive, names...)
	if err != nil {
		return "", link.URL{}, err
	}
	if len(href) == 0 {
		return "", link.URL{}, badArgument(directive, "@%s requires argument %q",
			directive.Name.Value(), names[0])
	}

	u, err := link.ParseURL(href)
	if err != nil {
		return "", link.URL{}, graphql.NewError(
			fmt.Sprintf("bad URL in @%s", directive.Name.Value()), directive, err)
	}
	return href, u, nil
}

// importsArgument decodes the "import" argument. It accepts an import string, or a list whose
// items are import strings or {name:, as:} objects.
func importsArgument(directive *ast.Directive) ([]link.Import, error) {
	arg := findArgument(directive, "import")
	if arg == nil {
		return nil, nil
	}

	switch value := arg.Value.(type) {
	case ast.NullValue:
		return nil, nil

	case ast.StringValue:
		return parseImports(value)

	case ast.ListValue:
		var imports []link.Import
		for _, item := range value.Values() {
			switch item := item.(type) {
			case ast.StringValue:
				parsed, err := parseImports(item)
				if err != nil {
					return nil, err
				}
				imports = append(imports, parsed...)

			case ast.ObjectValue:
				imp, err := importObject(item)
				if err != nil {
					return nil, err
				}
				imports = append(imports, imp)

			default:
				return nil, badArgument(item, "import list items must be strings or {name:, as:} objects")
			}
		}
		return imports, nil
	}

	return nil, badArgument(arg, "argument %q of @%s must be a string or a list",
		arg.Name.Value(), directive.Name.Value())
}

func parseImports(value ast.StringValue) ([]link.Import, error) {
	imports, err := link.ParseImports(value.Value())
	if err != nil {
		return nil, graphql.NewError("bad import", value, err)
	}
	return imports, nil
}

func importObject(object ast.ObjectValue) (link.Import, error) {
	var name, alias string
	for _, field := range object.Fields() {
		value, ok := field.Value.(ast.StringValue)
		if !ok {
			return link.Import{}, badArgument(field, "field %q of an import must be a string",
				field.Name.Value())
		}

		switch field.Name.Value() {
		case "name":
			name = value.Value()
		case "as":
			alias = value.Value()
		default:
			return link.Import{}, badArgument(field, "unknown field %q in import", field.Name.Value())
		}
	}

	if len(name) == 0 {
		return link.Import{}, badArgument(object, `import requires field "name"`)
	}

	imp, err := link.NewImport(name, alias)
	if err != nil {
		return link.Import{}, graphql.NewError("bad import", object, err)
	}
	return imp, nil
}

// decodeLink decodes a link directive: @link(url:, as:, import:) or the legacy
// @core(feature:, as:).
func decodeLink(directive *ast.Directive) (*linkRequest, error) {
	href, u, err := urlArgument(directive, "url", "feature")
	if err != nil {
		return nil, err
	}

	alias, err := stringArgument(directive, "as")
	if err != nil {
		return nil, err
	}

	imports, err := importsArgument(directive)
	if err != nil {
		return nil, err
	}

	return &linkRequest{
		href:    href,
		url:     u,
		alias:   alias,
		imports: imports,
	}, nil
}
