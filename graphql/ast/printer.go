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
	"fmt"
	"strings"

	"github.com/botobag/atlas/internal/util"
	"github.com/botobag/atlas/jsonwriter"
)

// Print uses a set of formatting rules (compatible with graphql-js) to convert an AST into a
// string.
func Print(node Node) string {
	var buf util.StringBuilder
	FPrint(&buf, node)
	return buf.String()
}

// FPrint "pretty-prints" an AST node to out.
func FPrint(out util.StringWriter, node Node) {
	(&printer{
		StringWriter: out,
	}).printNode(node)
}

type printer struct {
	util.StringWriter
	indentLevel int
}

func (p *printer) beginBlock() {
	p.WriteString("{\n")
	p.indentLevel++
}

func (p *printer) endBlock() {
	p.indentLevel--
	p.writeNewLineWithIndent()
	p.WriteString("}")
}

func (p *printer) writeNewLineWithIndent() {
	p.WriteString("\n")
	p.writeIndent()
}

func (p *printer) writeIndent() {
	p.WriteString(p.indentation())
}

func (p *printer) indentation() string {
	return strings.Repeat(" ", 2*p.indentLevel)
}

// Write implements io.Writer to allow p using jsonwriter.Stream to encode string values.
func (p *printer) Write(b []byte) (n int, err error) {
	return p.WriteString(string(b))
}

func (p *printer) printNode(node Node) {
	switch node := node.(type) {
	case *Argument:
		p.printArgument(node)
	case Arguments:
		p.printArguments("(", node, ", ", ")")
	case Definitions:
		p.printDefinitions(node)
	case *Directive:
		p.printDirective(node)
	case Directives:
		p.printDirectives(node)
	case Document:
		p.printDocument(node)
	case Name:
		p.printName(node)
	case *ObjectField:
		p.printObjectField(node)
	case *OperationTypeDefinition:
		p.printOperationTypeDefinition(node)
	case *FieldDefinition:
		p.printFieldDefinition(node)
	case *InputValueDefinition:
		p.printInputValueDefinition(node)
	case *EnumValueDefinition:
		p.printEnumValueDefinition(node)
	case Type:
		p.printType(node)
	case Value:
		p.printValue(node)
	case Definition:
		p.printDefinition(node)
	default:
		panic(fmt.Sprintf("unsupported node type %T to print", node))
	}
}

func (p *printer) printName(name Name) {
	p.WriteString(name.Value())
}

//===----------------------------------------------------------------------------------------====//
// Document
//===----------------------------------------------------------------------------------------====//

func (p *printer) printDocument(doc Document) {
	p.printDefinitions(doc.Definitions)
	p.WriteString("\n")
}

func (p *printer) printDefinitions(definitions Definitions) {
	if len(definitions) > 0 {
		p.printDefinition(definitions[0])
		for _, definition := range definitions[1:] {
			p.WriteString("\n\n")
			p.printDefinition(definition)
		}
	}
}

func (p *printer) printDefinition(node Definition) {
	switch node := node.(type) {
	case *SchemaDefinition:
		p.printDescription(node.Description)
		p.WriteString("schema")
		p.printSchemaBody(node.Directives, node.OperationTypes)
	case *SchemaExtension:
		p.WriteString("extend schema")
		p.printSchemaBody(node.Directives, node.OperationTypes)

	case *ScalarTypeDefinition:
		p.printDescription(node.Description)
		p.printTypeHead("scalar ", node.Name, nil, node.Directives)
	case *ScalarTypeExtension:
		p.printTypeHead("extend scalar ", node.Name, nil, node.Directives)

	case *ObjectTypeDefinition:
		p.printDescription(node.Description)
		p.printTypeHead("type ", node.Name, node.Interfaces, node.Directives)
		p.printFieldDefinitions(node.Fields)
	case *ObjectTypeExtension:
		p.printTypeHead("extend type ", node.Name, node.Interfaces, node.Directives)
		p.printFieldDefinitions(node.Fields)

	case *InterfaceTypeDefinition:
		p.printDescription(node.Description)
		p.printTypeHead("interface ", node.Name, node.Interfaces, node.Directives)
		p.printFieldDefinitions(node.Fields)
	case *InterfaceTypeExtension:
		p.printTypeHead("extend interface ", node.Name, node.Interfaces, node.Directives)
		p.printFieldDefinitions(node.Fields)

	case *UnionTypeDefinition:
		p.printDescription(node.Description)
		p.printTypeHead("union ", node.Name, nil, node.Directives)
		p.printUnionMembers(node.Types)
	case *UnionTypeExtension:
		p.printTypeHead("extend union ", node.Name, nil, node.Directives)
		p.printUnionMembers(node.Types)

	case *EnumTypeDefinition:
		p.printDescription(node.Description)
		p.printTypeHead("enum ", node.Name, nil, node.Directives)
		p.printEnumValueDefinitions(node.Values)
	case *EnumTypeExtension:
		p.printTypeHead("extend enum ", node.Name, nil, node.Directives)
		p.printEnumValueDefinitions(node.Values)

	case *InputObjectTypeDefinition:
		p.printDescription(node.Description)
		p.printTypeHead("input ", node.Name, nil, node.Directives)
		p.printInputValueDefinitions(node.Fields)
	case *InputObjectTypeExtension:
		p.printTypeHead("extend input ", node.Name, nil, node.Directives)
		p.printInputValueDefinitions(node.Fields)

	case *DirectiveDefinition:
		p.printDirectiveDefinition(node)

	default:
		panic(fmt.Sprintf("unexpected node type %T when printing Definition", node))
	}
}

// printDescription prints a description followed by a new line. Nothing is printed if the
// description is absent.
func (p *printer) printDescription(description Description) {
	if description.IsNil() {
		return
	}
	p.printBlockString(description.Value(), "")
	p.writeNewLineWithIndent()
}

func (p *printer) printTypeHead(keyword string, name Name, interfaces []NamedType, directives Directives) {
	p.WriteString(keyword)
	p.printName(name)

	if len(interfaces) > 0 {
		p.WriteString(" implements ")
		p.printNamedType(interfaces[0])
		for _, iface := range interfaces[1:] {
			p.WriteString(" & ")
			p.printNamedType(iface)
		}
	}

	if len(directives) > 0 {
		p.WriteString(" ")
		p.printDirectives(directives)
	}
}

//===----------------------------------------------------------------------------------------====//
// Schema
//===----------------------------------------------------------------------------------------====//

func (p *printer) printSchemaBody(directives Directives, operationTypes []*OperationTypeDefinition) {
	if len(directives) > 0 {
		p.WriteString(" ")
		p.printDirectives(directives)
	}

	if len(operationTypes) > 0 {
		p.WriteString(" ")
		p.beginBlock()
		p.writeIndent()
		p.printOperationTypeDefinition(operationTypes[0])
		for _, operationType := range operationTypes[1:] {
			p.writeNewLineWithIndent()
			p.printOperationTypeDefinition(operationType)
		}
		p.endBlock()
	}
}

func (p *printer) printOperationTypeDefinition(operationType *OperationTypeDefinition) {
	p.WriteString(operationType.Operation.Value)
	p.WriteString(": ")
	p.printNamedType(operationType.Type)
}

//===----------------------------------------------------------------------------------------====//
// Fields and Arguments
//===----------------------------------------------------------------------------------------====//

func (p *printer) printFieldDefinitions(fields []*FieldDefinition) {
	if len(fields) > 0 {
		p.WriteString(" ")
		p.beginBlock()
		p.writeIndent()
		p.printFieldDefinition(fields[0])
		for _, field := range fields[1:] {
			p.writeNewLineWithIndent()
			p.printFieldDefinition(field)
		}
		p.endBlock()
	}
}

func (p *printer) printFieldDefinition(field *FieldDefinition) {
	p.printDescription(field.Description)
	p.printName(field.Name)
	p.printArgumentDefinitions(field.Arguments)
	p.WriteString(": ")
	p.printType(field.Type)

	if len(field.Directives) > 0 {
		p.WriteString(" ")
		p.printDirectives(field.Directives)
	}
}

// printArgumentDefinitions prints arguments on one line unless one of them has a description.
func (p *printer) printArgumentDefinitions(args []*InputValueDefinition) {
	if len(args) == 0 {
		return
	}

	multiline := false
	for _, arg := range args {
		if !arg.Description.IsNil() {
			multiline = true
			break
		}
	}

	if !multiline {
		p.WriteString("(")
		p.printInputValueDefinition(args[0])
		for _, arg := range args[1:] {
			p.WriteString(", ")
			p.printInputValueDefinition(arg)
		}
		p.WriteString(")")
		return
	}

	p.WriteString("(")
	p.indentLevel++
	for _, arg := range args {
		p.writeNewLineWithIndent()
		p.printInputValueDefinition(arg)
	}
	p.indentLevel--
	p.writeNewLineWithIndent()
	p.WriteString(")")
}

func (p *printer) printInputValueDefinitions(fields []*InputValueDefinition) {
	if len(fields) > 0 {
		p.WriteString(" ")
		p.beginBlock()
		p.writeIndent()
		p.printInputValueDefinition(fields[0])
		for _, field := range fields[1:] {
			p.writeNewLineWithIndent()
			p.printInputValueDefinition(field)
		}
		p.endBlock()
	}
}

func (p *printer) printInputValueDefinition(value *InputValueDefinition) {
	p.printDescription(value.Description)
	p.printName(value.Name)
	p.WriteString(": ")
	p.printType(value.Type)

	if value.DefaultValue != nil {
		p.WriteString(" = ")
		p.printValue(value.DefaultValue)
	}

	if len(value.Directives) > 0 {
		p.WriteString(" ")
		p.printDirectives(value.Directives)
	}
}

//===----------------------------------------------------------------------------------------====//
// Union and Enum
//===----------------------------------------------------------------------------------------====//

func (p *printer) printUnionMembers(types []NamedType) {
	if len(types) > 0 {
		p.WriteString(" = ")
		p.printNamedType(types[0])
		for _, t := range types[1:] {
			p.WriteString(" | ")
			p.printNamedType(t)
		}
	}
}

func (p *printer) printEnumValueDefinitions(values []*EnumValueDefinition) {
	if len(values) > 0 {
		p.WriteString(" ")
		p.beginBlock()
		p.writeIndent()
		p.printEnumValueDefinition(values[0])
		for _, value := range values[1:] {
			p.writeNewLineWithIndent()
			p.printEnumValueDefinition(value)
		}
		p.endBlock()
	}
}

func (p *printer) printEnumValueDefinition(value *EnumValueDefinition) {
	p.printDescription(value.Description)
	p.printEnumValue(value.Value)

	if len(value.Directives) > 0 {
		p.WriteString(" ")
		p.printDirectives(value.Directives)
	}
}

//===----------------------------------------------------------------------------------------====//
// Directive Definition
//===----------------------------------------------------------------------------------------====//

func (p *printer) printDirectiveDefinition(def *DirectiveDefinition) {
	p.printDescription(def.Description)
	p.WriteString("directive @")
	p.printName(def.Name)
	p.printArgumentDefinitions(def.Arguments)

	if def.Repeatable {
		p.WriteString(" repeatable")
	}

	p.WriteString(" on ")
	for i, location := range def.Locations {
		if i > 0 {
			p.WriteString(" | ")
		}
		p.printName(location)
	}
}

func (p *printer) printArguments(start string, args Arguments, sep string, end string) {
	if len(args) > 0 {
		p.WriteString(start)
		p.printArgument(args[0])
		for _, arg := range args[1:] {
			p.WriteString(sep)
			p.printArgument(arg)
		}
		p.WriteString(end)
	}
}

func (p *printer) printArgument(arg *Argument) {
	p.printName(arg.Name)
	p.WriteString(": ")
	p.printValue(arg.Value)
}

//===----------------------------------------------------------------------------------------====//
// Value
//===----------------------------------------------------------------------------------------====//

func (p *printer) printValue(node Value) {
	switch node := node.(type) {
	case BooleanValue:
		p.printBooleanValue(node)
	case EnumValue:
		p.printEnumValue(node)
	case FloatValue:
		p.printFloatValue(node)
	case IntValue:
		p.printIntValue(node)
	case ListValue:
		p.printListValue(node)
	case NullValue:
		p.printNullValue(node)
	case ObjectValue:
		p.printObjectValue(node)
	case StringValue:
		p.printStringValue(node, "")
	default:
		panic(fmt.Sprintf("unexpected node type %T when printing Value", node))
	}
}

func (p *printer) printBooleanValue(value BooleanValue) {
	if value.Value() {
		p.WriteString("true")
	} else {
		p.WriteString("false")
	}
}

func (p *printer) printEnumValue(value EnumValue) {
	p.WriteString(value.Value())
}

func (p *printer) printFloatValue(value FloatValue) {
	p.WriteString(value.String())
}

func (p *printer) printIntValue(value IntValue) {
	p.WriteString(value.String())
}

func (p *printer) printListValue(value ListValue) {
	values := value.Values()
	p.WriteString("[")
	if len(values) > 0 {
		p.printValue(values[0])
		for _, value := range values[1:] {
			p.WriteString(", ")
			p.printValue(value)
		}
	}
	p.WriteString("]")
}

func (p *printer) printNullValue(value NullValue) {
	p.WriteString("null")
}

func (p *printer) printObjectValue(value ObjectValue) {
	p.WriteString("{")
	fields := value.Fields()
	if len(fields) > 0 {
		p.printObjectField(fields[0])
		for _, field := range fields[1:] {
			p.WriteString(", ")
			p.printObjectField(field)
		}
	}
	p.WriteString("}")
}

func (p *printer) printObjectField(field *ObjectField) {
	p.printName(field.Name)
	p.WriteString(": ")
	p.printValue(field.Value)
}

func (p *printer) printStringValue(value StringValue, blockStringIndent string) {
	if value.IsBlockString() {
		p.printBlockString(value.Value(), blockStringIndent)
	} else {
		// graphql-js: JSON.stringify(value)
		stream := jsonwriter.NewStream(p)
		stream.WriteString(value.Value())
		stream.Flush()
	}
}

// Print a block string in the indented block form by adding a leading and trailing blank line.
// However, if a block string starts with whitespace and is a single-line, adding a leading blank
// line would strip that whitespace.
func (p *printer) printBlockString(value string, indentation string) {
	var (
		isSingleLine         = !strings.ContainsRune(value, '\n')
		hasLeadingSpace      = len(value) > 0 && (value[0] == ' ' || value[0] == '\t')
		hasTrailingQuote     = len(value) > 0 && value[len(value)-1] == '"'
		printAsMultipleLines = !isSingleLine || hasTrailingQuote
	)

	p.WriteString(`"""`)

	// Format a multi-line block quote to account for leading space.
	if printAsMultipleLines && !(isSingleLine && hasLeadingSpace) {
		p.writeNewLineWithIndent()
		p.WriteString(indentation)
	}

	// Replace """ with \""".
	value = strings.Replace(value, `"""`, `\"""`, -1)
	value = strings.Replace(value, "\n", "\n"+p.indentation()+indentation, -1)
	p.WriteString(value)

	if printAsMultipleLines {
		p.writeNewLineWithIndent()
	}

	p.WriteString(`"""`)
}

//===----------------------------------------------------------------------------------------====//
// Type
//===----------------------------------------------------------------------------------------====//

func (p *printer) printType(node Type) {
	switch node := node.(type) {
	case ListType:
		p.printListType(node)
	case NamedType:
		p.printNamedType(node)
	case NonNullType:
		p.printNonNullType(node)
	default:
		panic(fmt.Sprintf("unexpected node type %T when printing Type", node))
	}
}

func (p *printer) printListType(list ListType) {
	p.WriteString("[")
	p.printType(list.ItemType)
	p.WriteString("]")
}

func (p *printer) printNamedType(named NamedType) {
	p.printName(named.Name)
}

func (p *printer) printNonNullType(nonNull NonNullType) {
	p.printType(nonNull.Type)
	p.WriteString("!")
}

//===----------------------------------------------------------------------------------------====//
// Directive
//===----------------------------------------------------------------------------------------====//

func (p *printer) printDirectives(directives Directives) {
	if len(directives) > 0 {
		p.printDirective(directives[0])
		for _, directive := range directives[1:] {
			p.WriteString(" ")
			p.printDirective(directive)
		}
	}
}

func (p *printer) printDirective(directive *Directive) {
	p.WriteString("@")
	p.printName(directive.Name)
	p.printArguments("(", directive.Arguments, ", ", ")")
}
