/**
 * Copyright (c) 2018, The Artemis Authors.
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

package visitor

import (
	"fmt"

	"github.com/botobag/atlas/graphql/ast"
)

// Result contains the return value for visitor function. The behavior of the visitor can be altered
// based on the value, including skipping over a sub-tree of AST (by returning SkipSubTree) or to
// stop the whole traversal (by returning Break).
type Result interface {
	// result puts a special mark for a Result type. The unexpored field forbids external package to
	// use our defined result constants.
	result()
}

// resultConstant is a constant to tell visitor of the next action to take
type resultConstant int

// result implements Result.
func (resultConstant) result() {}

// Enumeration of resultConstant.
const (
	// No action, continue the traversal.
	Continue resultConstant = iota

	// Skip over the sub-tree of AST
	SkipSubTree

	// Stop the traversal on return
	Break
)

// Info is passed to the visit functions. It provides the path from the root to the node being
// visited.
type Info struct {
	ancestors []ast.Node
}

// Ancestors returns the nodes from the root down to (but excluding) the node being visited. The
// returned slice is only valid during the visit function call.
func (info *Info) Ancestors() []ast.Node {
	return info.ancestors
}

// Parent returns the parent of the node being visited or nil if it is the root.
func (info *Info) Parent() ast.Node {
	if len(info.ancestors) == 0 {
		return nil
	}
	return info.ancestors[len(info.ancestors)-1]
}

// NodeVisitorFuncs specifies the functions to be called on entering and on leaving a node. Either
// may be nil. Leave is not called for a node whose Enter returned SkipSubTree.
type NodeVisitorFuncs struct {
	Enter func(node ast.Node, info *Info) Result
	Leave func(node ast.Node, info *Info) Result
}

// Walk traverses the AST rooted at node in depth-first order. Children are visited in the order
// they appear in the source. Descriptions are not visited. It returns Break if the traversal was
// stopped by a visit function and Continue otherwise.
func Walk(node ast.Node, funcs *NodeVisitorFuncs) Result {
	w := &walker{
		funcs: funcs,
	}
	if w.walk(node) {
		return Break
	}
	return Continue
}

type walker struct {
	funcs *NodeVisitorFuncs
	info  Info
}

// walk visits node and its children. It returns true if the traversal should be stopped.
func (w *walker) walk(node ast.Node) bool {
	if w.funcs.Enter != nil {
		switch w.funcs.Enter(node, &w.info) {
		case Break:
			return true
		case SkipSubTree:
			return false
		}
	}

	w.info.ancestors = append(w.info.ancestors, node)
	stop := w.walkChildren(node)
	w.info.ancestors = w.info.ancestors[:len(w.info.ancestors)-1]
	if stop {
		return true
	}

	if w.funcs.Leave != nil {
		return w.funcs.Leave(node, &w.info) == Break
	}
	return false
}

func (w *walker) walkChildren(node ast.Node) bool {
	switch node := node.(type) {
	case ast.Document:
		for _, def := range node.Definitions {
			if w.walk(def) {
				return true
			}
		}

	case *ast.SchemaDefinition:
		return w.walkDirectives(node.Directives) ||
			w.walkOperationTypes(node.OperationTypes)
	case *ast.SchemaExtension:
		return w.walkDirectives(node.Directives) ||
			w.walkOperationTypes(node.OperationTypes)
	case *ast.OperationTypeDefinition:
		return w.walk(node.Type)

	case *ast.ScalarTypeDefinition:
		return w.walk(node.Name) || w.walkDirectives(node.Directives)
	case *ast.ScalarTypeExtension:
		return w.walk(node.Name) || w.walkDirectives(node.Directives)

	case *ast.ObjectTypeDefinition:
		return w.walk(node.Name) ||
			w.walkNamedTypes(node.Interfaces) ||
			w.walkDirectives(node.Directives) ||
			w.walkFields(node.Fields)
	case *ast.ObjectTypeExtension:
		return w.walk(node.Name) ||
			w.walkNamedTypes(node.Interfaces) ||
			w.walkDirectives(node.Directives) ||
			w.walkFields(node.Fields)

	case *ast.InterfaceTypeDefinition:
		return w.walk(node.Name) ||
			w.walkNamedTypes(node.Interfaces) ||
			w.walkDirectives(node.Directives) ||
			w.walkFields(node.Fields)
	case *ast.InterfaceTypeExtension:
		return w.walk(node.Name) ||
			w.walkNamedTypes(node.Interfaces) ||
			w.walkDirectives(node.Directives) ||
			w.walkFields(node.Fields)

	case *ast.UnionTypeDefinition:
		return w.walk(node.Name) ||
			w.walkDirectives(node.Directives) ||
			w.walkNamedTypes(node.Types)
	case *ast.UnionTypeExtension:
		return w.walk(node.Name) ||
			w.walkDirectives(node.Directives) ||
			w.walkNamedTypes(node.Types)

	case *ast.EnumTypeDefinition:
		return w.walk(node.Name) ||
			w.walkDirectives(node.Directives) ||
			w.walkEnumValues(node.Values)
	case *ast.EnumTypeExtension:
		return w.walk(node.Name) ||
			w.walkDirectives(node.Directives) ||
			w.walkEnumValues(node.Values)
	case *ast.EnumValueDefinition:
		return w.walk(node.Value) || w.walkDirectives(node.Directives)

	case *ast.InputObjectTypeDefinition:
		return w.walk(node.Name) ||
			w.walkDirectives(node.Directives) ||
			w.walkInputValues(node.Fields)
	case *ast.InputObjectTypeExtension:
		return w.walk(node.Name) ||
			w.walkDirectives(node.Directives) ||
			w.walkInputValues(node.Fields)

	case *ast.DirectiveDefinition:
		if w.walk(node.Name) || w.walkInputValues(node.Arguments) {
			return true
		}
		for _, location := range node.Locations {
			if w.walk(location) {
				return true
			}
		}

	case *ast.FieldDefinition:
		return w.walk(node.Name) ||
			w.walkInputValues(node.Arguments) ||
			w.walk(node.Type) ||
			w.walkDirectives(node.Directives)

	case *ast.InputValueDefinition:
		if w.walk(node.Name) || w.walk(node.Type) {
			return true
		}
		if node.DefaultValue != nil && w.walk(node.DefaultValue) {
			return true
		}
		return w.walkDirectives(node.Directives)

	case *ast.Directive:
		if w.walk(node.Name) {
			return true
		}
		for _, arg := range node.Arguments {
			if w.walk(arg) {
				return true
			}
		}

	case *ast.Argument:
		return w.walk(node.Name) || w.walk(node.Value)

	case ast.ListValue:
		for _, value := range node.Values() {
			if w.walk(value) {
				return true
			}
		}
	case ast.ObjectValue:
		for _, field := range node.Fields() {
			if w.walk(field) {
				return true
			}
		}
	case *ast.ObjectField:
		return w.walk(node.Name) || w.walk(node.Value)

	case ast.NamedType:
		return w.walk(node.Name)
	case ast.ListType:
		return w.walk(node.ItemType)
	case ast.NonNullType:
		return w.walk(node.Type)

	case ast.Name,
		ast.IntValue,
		ast.FloatValue,
		ast.StringValue,
		ast.BooleanValue,
		ast.NullValue,
		ast.EnumValue:
		// Leaves

	default:
		panic(fmt.Sprintf("unsupported node type %T to walk", node))
	}

	return false
}

func (w *walker) walkDirectives(directives ast.Directives) bool {
	for _, directive := range directives {
		if w.walk(directive) {
			return true
		}
	}
	return false
}

func (w *walker) walkOperationTypes(operationTypes []*ast.OperationTypeDefinition) bool {
	for _, operationType := range operationTypes {
		if w.walk(operationType) {
			return true
		}
	}
	return false
}

func (w *walker) walkNamedTypes(types []ast.NamedType) bool {
	for _, t := range types {
		if w.walk(t) {
			return true
		}
	}
	return false
}

func (w *walker) walkFields(fields []*ast.FieldDefinition) bool {
	for _, field := range fields {
		if w.walk(field) {
			return true
		}
	}
	return false
}

func (w *walker) walkInputValues(values []*ast.InputValueDefinition) bool {
	for _, value := range values {
		if w.walk(value) {
			return true
		}
	}
	return false
}

func (w *walker) walkEnumValues(values []*ast.EnumValueDefinition) bool {
	for _, value := range values {
		if w.walk(value) {
			return true
		}
	}
	return false
}
