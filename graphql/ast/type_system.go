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

package ast

import (
	"github.com/botobag/atlas/graphql/token"
)

//===----------------------------------------------------------------------------------------====//
// 3 Type System
//===----------------------------------------------------------------------------------------====//
// The GraphQL Type system describes the capabilities of a GraphQL server and is used to determine
// if a query is valid.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Type-System

// Span records the first and the last token of a node. The parser fills it for the type system
// nodes whose extent cannot be derived from their children.
type Span token.Range

// TokenRange implements Node.
func (span Span) TokenRange() token.Range {
	return token.Range(span)
}

// Description is the documentation attached to a definition. It is absent when Token is nil.
//
// Reference: https://facebook.github.io/graphql/June2018/#Description
type Description struct {
	StringValue
}

// IsNil returns true if no description was given.
func (description Description) IsNil() bool {
	return description.Token == nil
}

// NamedDefinition is a Definition or an extension that declares (or extends) a named element, that
// is, a type or a directive.
type NamedDefinition interface {
	Definition

	// GetName returns the name being declared or extended. (Prepend "Get" to avoid name collision
	// with the fields in derived class.)
	GetName() Name
}

// TypeDefinition represents a definition of a named type.
//
// Reference: https://facebook.github.io/graphql/June2018/#TypeDefinition
type TypeDefinition interface {
	NamedDefinition
	typeDefinitionNode()
}

// TypeExtension represents an extension to a named type.
//
// Reference: https://facebook.github.io/graphql/June2018/#TypeExtension
type TypeExtension interface {
	NamedDefinition
	typeExtensionNode()
}

var (
	_ TypeDefinition = (*ScalarTypeDefinition)(nil)
	_ TypeDefinition = (*ObjectTypeDefinition)(nil)
	_ TypeDefinition = (*InterfaceTypeDefinition)(nil)
	_ TypeDefinition = (*UnionTypeDefinition)(nil)
	_ TypeDefinition = (*EnumTypeDefinition)(nil)
	_ TypeDefinition = (*InputObjectTypeDefinition)(nil)

	_ TypeExtension = (*ScalarTypeExtension)(nil)
	_ TypeExtension = (*ObjectTypeExtension)(nil)
	_ TypeExtension = (*InterfaceTypeExtension)(nil)
	_ TypeExtension = (*UnionTypeExtension)(nil)
	_ TypeExtension = (*EnumTypeExtension)(nil)
	_ TypeExtension = (*InputObjectTypeExtension)(nil)

	_ NamedDefinition = (*DirectiveDefinition)(nil)

	_ Definition = (*SchemaDefinition)(nil)
	_ Definition = (*SchemaExtension)(nil)
)

// NamedDefinitionBase is a common base that is embedded in the definitions that carry a name.
type NamedDefinitionBase struct {
	// Name of the type or directive
	Name Name
}

// GetName implements NamedDefinition.
func (base NamedDefinitionBase) GetName() Name {
	return base.Name
}

//===----------------------------------------------------------------------------------------====//
// 3.2 Schema
//===----------------------------------------------------------------------------------------====//

// OperationTypeDefinition binds an operation type to the object type that serves as its root.
//
// Reference: https://facebook.github.io/graphql/June2018/#RootOperationTypeDefinition
type OperationTypeDefinition struct {
	// Operation is a Name token that contains "query", "mutation" or "subscription".
	Operation *token.Token

	// Type is the root type of the operation.
	Type NamedType
}

var _ Node = (*OperationTypeDefinition)(nil)

// TokenRange implements Node.
func (node *OperationTypeDefinition) TokenRange() token.Range {
	return token.Range{
		First: node.Operation,
		Last:  node.Type.Name.Token,
	}
}

// SchemaDefinition represents a "schema" definition.
//
// Reference: https://facebook.github.io/graphql/June2018/#SchemaDefinition
type SchemaDefinition struct {
	Span
	DefinitionBase

	Description Description

	// OperationTypes may be empty; A schema definition that only carries directives is accepted.
	OperationTypes []*OperationTypeDefinition
}

// SchemaExtension represents an "extend schema".
//
// Reference: https://facebook.github.io/graphql/June2018/#SchemaExtension
type SchemaExtension struct {
	Span
	DefinitionBase

	OperationTypes []*OperationTypeDefinition
}

//===----------------------------------------------------------------------------------------====//
// 3.4 Types
//===----------------------------------------------------------------------------------------====//

// ScalarTypeDefinition represents a "scalar" definition.
//
// Reference: https://facebook.github.io/graphql/June2018/#ScalarTypeDefinition
type ScalarTypeDefinition struct {
	Span
	DefinitionBase
	NamedDefinitionBase

	Description Description
}

func (*ScalarTypeDefinition) typeDefinitionNode() {}

// ScalarTypeExtension represents an "extend scalar".
type ScalarTypeExtension struct {
	Span
	DefinitionBase
	NamedDefinitionBase
}

func (*ScalarTypeExtension) typeExtensionNode() {}

// FieldDefinition defines a field in an object or an interface.
//
// Reference: https://facebook.github.io/graphql/June2018/#FieldDefinition
type FieldDefinition struct {
	Span

	Description Description
	Name        Name
	Arguments   []*InputValueDefinition
	Type        Type
	Directives  Directives
}

// InputValueDefinition defines an argument or an input object field.
//
// Reference: https://facebook.github.io/graphql/June2018/#InputValueDefinition
type InputValueDefinition struct {
	Span

	Description  Description
	Name         Name
	Type         Type
	DefaultValue Value
	Directives   Directives
}

// ObjectTypeDefinition represents a "type" definition.
//
// Reference: https://facebook.github.io/graphql/June2018/#ObjectTypeDefinition
type ObjectTypeDefinition struct {
	Span
	DefinitionBase
	NamedDefinitionBase

	Description Description
	Interfaces  []NamedType
	Fields      []*FieldDefinition
}

func (*ObjectTypeDefinition) typeDefinitionNode() {}

// ObjectTypeExtension represents an "extend type".
type ObjectTypeExtension struct {
	Span
	DefinitionBase
	NamedDefinitionBase

	Interfaces []NamedType
	Fields     []*FieldDefinition
}

func (*ObjectTypeExtension) typeExtensionNode() {}

// InterfaceTypeDefinition represents an "interface" definition. Interfaces may implement other
// interfaces.
//
// Reference: https://facebook.github.io/graphql/June2018/#InterfaceTypeDefinition
type InterfaceTypeDefinition struct {
	Span
	DefinitionBase
	NamedDefinitionBase

	Description Description
	Interfaces  []NamedType
	Fields      []*FieldDefinition
}

func (*InterfaceTypeDefinition) typeDefinitionNode() {}

// InterfaceTypeExtension represents an "extend interface".
type InterfaceTypeExtension struct {
	Span
	DefinitionBase
	NamedDefinitionBase

	Interfaces []NamedType
	Fields     []*FieldDefinition
}

func (*InterfaceTypeExtension) typeExtensionNode() {}

// UnionTypeDefinition represents a "union" definition.
//
// Reference: https://facebook.github.io/graphql/June2018/#UnionTypeDefinition
type UnionTypeDefinition struct {
	Span
	DefinitionBase
	NamedDefinitionBase

	Description Description
	Types       []NamedType
}

func (*UnionTypeDefinition) typeDefinitionNode() {}

// UnionTypeExtension represents an "extend union".
type UnionTypeExtension struct {
	Span
	DefinitionBase
	NamedDefinitionBase

	Types []NamedType
}

func (*UnionTypeExtension) typeExtensionNode() {}

// EnumValueDefinition defines a value of an enum type.
//
// Reference: https://facebook.github.io/graphql/June2018/#EnumValueDefinition
type EnumValueDefinition struct {
	Span

	Description Description
	Value       EnumValue
	Directives  Directives
}

// EnumTypeDefinition represents an "enum" definition.
//
// Reference: https://facebook.github.io/graphql/June2018/#EnumTypeDefinition
type EnumTypeDefinition struct {
	Span
	DefinitionBase
	NamedDefinitionBase

	Description Description
	Values      []*EnumValueDefinition
}

func (*EnumTypeDefinition) typeDefinitionNode() {}

// EnumTypeExtension represents an "extend enum".
type EnumTypeExtension struct {
	Span
	DefinitionBase
	NamedDefinitionBase

	Values []*EnumValueDefinition
}

func (*EnumTypeExtension) typeExtensionNode() {}

// InputObjectTypeDefinition represents an "input" definition.
//
// Reference: https://facebook.github.io/graphql/June2018/#InputObjectTypeDefinition
type InputObjectTypeDefinition struct {
	Span
	DefinitionBase
	NamedDefinitionBase

	Description Description
	Fields      []*InputValueDefinition
}

func (*InputObjectTypeDefinition) typeDefinitionNode() {}

// InputObjectTypeExtension represents an "extend input".
type InputObjectTypeExtension struct {
	Span
	DefinitionBase
	NamedDefinitionBase

	Fields []*InputValueDefinition
}

func (*InputObjectTypeExtension) typeExtensionNode() {}

//===----------------------------------------------------------------------------------------====//
// 3.13 Directives
//===----------------------------------------------------------------------------------------====//

// DirectiveDefinition represents a "directive" definition. Directive definitions take no
// directives themselves so GetDirectives always returns nil.
//
// Reference: https://facebook.github.io/graphql/June2018/#DirectiveDefinition
type DirectiveDefinition struct {
	Span
	DefinitionBase
	NamedDefinitionBase

	Description Description
	Arguments   []*InputValueDefinition
	Repeatable  bool

	// Locations lists the names of the locations where the directive may be applied.
	Locations []Name
}

// IsExtension returns true if def extends an element instead of defining it.
func IsExtension(def Definition) bool {
	switch def.(type) {
	case TypeExtension, *SchemaExtension:
		return true
	}
	return false
}
