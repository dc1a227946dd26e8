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

package parser

import (
	"fmt"

	"github.com/botobag/atlas/graphql"
	"github.com/botobag/atlas/graphql/ast"
	"github.com/botobag/atlas/graphql/lexer"
	"github.com/botobag/atlas/graphql/token"
)

// parser holds internal state during parsing.
type parser struct {
	// The lexer for tokenization
	lexer *lexer.Lexer

	// The last token consumed by the parser; Comments are never recorded.
	lastToken *token.Token
}

func newParser(source *token.Source) (*parser, error) {
	if source == nil {
		return nil, graphql.NewError("Must provide Source. Received: nil", graphql.ErrCodeSyntax)
	}
	return &parser{
		lexer: lexer.New(source),
	}, nil
}

// advance consumes the current token.
func (p *parser) advance() error {
	tok := p.lexer.Token()
	if _, err := p.lexer.Advance(); err != nil {
		return err
	}
	p.lastToken = tok
	return nil
}

// If the next token is of the given kind, return true after advancing the lexer. Otherwise, do not
// change the parser state and return false.
func (p *parser) skip(tokenKind token.Kind) (bool, error) {
	if p.lexer.Token().Kind == tokenKind {
		if err := p.advance(); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// If the next token is of the given kind, return that token after advancing the lexer. Otherwise,
// do not change the parser state and throw an error.
func (p *parser) expect(tokenKind token.Kind) (*token.Token, error) {
	token := p.lexer.Token()
	if token.Kind == tokenKind {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return token, nil
	}
	return nil, graphql.NewSyntaxError(
		p.lexer.Source(),
		token.Location,
		fmt.Sprintf("Expected %v, found %s", tokenKind, token.Description()))
}

// If the next token is a keyword with the given value, return true after advancing
// the lexer. Otherwise, do not change the parser state and return false.
func (p *parser) skipKeyword(keyword string) (bool, error) {
	if tok := p.peek(); tok.Kind == token.KindName && tok.Value == keyword {
		if err := p.advance(); err != nil {
			return true, err
		}
		return true, nil
	}
	return false, nil
}

// If the next token is a keyword with the given value, return that token after
// advancing the lexer. Otherwise, do not change the parser state and throw
// an error.
func (p *parser) expectKeyword(keyword string) error {
	hasKeyword, err := p.skipKeyword(keyword)

	if err != nil {
		return err
	} else if !hasKeyword {
		tok := p.peek()
		return graphql.NewSyntaxError(p.lexer.Source(), tok.Location,
			fmt.Sprintf(`Expected "%s", found %s`, keyword, tok.Description()))
	}
	return nil
}

// Peek return current token without consume it.
func (p *parser) peek() *token.Token {
	return p.lexer.Token()
}

// Helper function for creating an error when an unexpected lexed token is encountered.
func (p *parser) unexpected() error {
	token := p.lexer.Token()
	return graphql.NewSyntaxError(
		p.lexer.Source(), token.Location, fmt.Sprintf("Unexpected %s", token.Description()))
}

// Converts a name lex token into a name parse node.
func (p *parser) parseName() (ast.Name, error) {
	token, err := p.expect(token.KindName)
	if err != nil {
		return ast.Name{}, err
	}
	return ast.Name{
		Token: token,
	}, nil
}

// Implements the parsing rules in the Document section.

//	Document ::
//		Definition+
func (p *parser) parseDocument() (ast.Document, error) {
	// Expect SOF.
	if _, err := p.expect(token.KindSOF); err != nil {
		return ast.Document{}, err
	}

	definitions := make(ast.Definitions, 0, 1)
	for {
		definition, err := p.parseDefinition()
		if err != nil {
			return ast.Document{}, err
		}

		definitions = append(definitions, definition)

		// Stop on encountering an EOF token.
		stop, err := p.skip(token.KindEOF)
		if err != nil {
			return ast.Document{}, err
		}

		if stop {
			break
		}
	}

	return ast.Document{
		Definitions: definitions,
	}, nil
}

//	Definition ::
//		TypeSystemDefinition
//		TypeSystemExtension
//
// Executable definitions are not accepted in schema documents.
func (p *parser) parseDefinition() (ast.Definition, error) {
	// Many definitions begin with a description and require a lookahead.
	keywordToken := p.peek()
	if p.peekDescription() {
		var err error
		if keywordToken, err = p.lexer.Lookahead(); err != nil {
			return nil, err
		}
	}

	if keywordToken.Kind == token.KindName {
		switch keywordToken.Value {
		case "schema":
			return p.parseSchemaDefinition()
		case "scalar":
			return p.parseScalarTypeDefinition()
		case "type":
			return p.parseObjectTypeDefinition()
		case "interface":
			return p.parseInterfaceTypeDefinition()
		case "union":
			return p.parseUnionTypeDefinition()
		case "enum":
			return p.parseEnumTypeDefinition()
		case "input":
			return p.parseInputObjectTypeDefinition()
		case "directive":
			return p.parseDirectiveDefinition()
		case "extend":
			if keywordToken == p.peek() {
				return p.parseTypeSystemExtension()
			}
		}
	}

	if keywordToken != p.peek() {
		// A description must be followed by a definition.
		return nil, graphql.NewSyntaxError(
			p.lexer.Source(),
			keywordToken.Location,
			fmt.Sprintf("Unexpected %s", keywordToken.Description()))
	}
	return nil, p.unexpected()
}

//===----------------------------------------------------------------------------------------====//
// Implements the parsing rules in the Type Definition section.
//===----------------------------------------------------------------------------------------====//

// peekDescription returns true if the current token starts a description.
func (p *parser) peekDescription() bool {
	kind := p.peek().Kind
	return kind == token.KindString || kind == token.KindBlockString
}

//	Description ::
//		StringValue
func (p *parser) parseDescription() (ast.Description, error) {
	if !p.peekDescription() {
		return ast.Description{}, nil
	}

	tok := p.peek()
	if err := p.advance(); err != nil {
		return ast.Description{}, err
	}
	return ast.Description{
		StringValue: ast.StringValue{
			Token: tok,
		},
	}, nil
}

// parseOptionalDirectives parses directives if the current token is a "@".
func (p *parser) parseOptionalDirectives() (ast.Directives, error) {
	if p.peek().Kind != token.KindAt {
		return nil, nil
	}
	return p.parseDirectives()
}

//	SchemaDefinition ::
//		Description? schema Directives? { OperationTypeDefinition+ }
//
// The operation types are optional so a schema definition may only carry directives (e.g., links).
func (p *parser) parseSchemaDefinition() (*ast.SchemaDefinition, error) {
	first := p.peek()

	description, err := p.parseDescription()
	if err != nil {
		return nil, err
	}

	if err := p.expectKeyword("schema"); err != nil {
		return nil, err
	}

	directives, err := p.parseOptionalDirectives()
	if err != nil {
		return nil, err
	}

	operationTypes, err := p.parseOptionalOperationTypeDefinitions()
	if err != nil {
		return nil, err
	}

	return &ast.SchemaDefinition{
		Span: ast.Span{
			First: first,
			Last:  p.lastToken,
		},
		DefinitionBase: ast.DefinitionBase{
			Directives: directives,
		},
		Description:    description,
		OperationTypes: operationTypes,
	}, nil
}

func (p *parser) parseOptionalOperationTypeDefinitions() ([]*ast.OperationTypeDefinition, error) {
	if p.peek().Kind != token.KindLeftBrace {
		return nil, nil
	}

	if _, err := p.expect(token.KindLeftBrace); err != nil {
		return nil, err
	}

	var operationTypes []*ast.OperationTypeDefinition
	for {
		operationType, err := p.parseOperationTypeDefinition()
		if err != nil {
			return nil, err
		}
		operationTypes = append(operationTypes, operationType)

		stop, err := p.skip(token.KindRightBrace)
		if err != nil {
			return nil, err
		} else if stop {
			break
		}
	}

	return operationTypes, nil
}

//	OperationTypeDefinition ::
//		OperationType : NamedType
func (p *parser) parseOperationTypeDefinition() (*ast.OperationTypeDefinition, error) {
	operation := p.peek()
	if operation.Kind != token.KindName ||
		(operation.Value != "query" && operation.Value != "mutation" && operation.Value != "subscription") {
		return nil, p.unexpected()
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if _, err := p.expect(token.KindColon); err != nil {
		return nil, err
	}

	namedType, err := p.parseNamedType()
	if err != nil {
		return nil, err
	}

	return &ast.OperationTypeDefinition{
		Operation: operation,
		Type:      namedType,
	}, nil
}

// typeHead contains the parts that begin every type definition.
type typeHead struct {
	first       *token.Token
	description ast.Description
	name        ast.Name
	interfaces  []ast.NamedType
	directives  ast.Directives
}

func (head *typeHead) span(last *token.Token) ast.Span {
	return ast.Span{
		First: head.first,
		Last:  last,
	}
}

func (head *typeHead) definitionBase() ast.DefinitionBase {
	return ast.DefinitionBase{
		Directives: head.directives,
	}
}

func (head *typeHead) namedDefinitionBase() ast.NamedDefinitionBase {
	return ast.NamedDefinitionBase{
		Name: head.name,
	}
}

// parseTypeHead parses the description, keyword, name, implemented interfaces (if allowed) and
// directives of a type definition.
func (p *parser) parseTypeHead(keyword string, allowInterfaces bool) (*typeHead, error) {
	head := &typeHead{
		first: p.peek(),
	}

	var err error
	if head.description, err = p.parseDescription(); err != nil {
		return nil, err
	}

	if err := p.expectKeyword(keyword); err != nil {
		return nil, err
	}

	if head.name, err = p.parseName(); err != nil {
		return nil, err
	}

	if allowInterfaces {
		if head.interfaces, err = p.parseImplementsInterfaces(); err != nil {
			return nil, err
		}
	}

	if head.directives, err = p.parseOptionalDirectives(); err != nil {
		return nil, err
	}

	return head, nil
}

//	ScalarTypeDefinition ::
//		Description? scalar Name Directives?
func (p *parser) parseScalarTypeDefinition() (*ast.ScalarTypeDefinition, error) {
	head, err := p.parseTypeHead("scalar", false)
	if err != nil {
		return nil, err
	}

	return &ast.ScalarTypeDefinition{
		Span:                head.span(p.lastToken),
		DefinitionBase:      head.definitionBase(),
		NamedDefinitionBase: head.namedDefinitionBase(),
		Description:         head.description,
	}, nil
}

//	ObjectTypeDefinition ::
//		Description? type Name ImplementsInterfaces? Directives? FieldsDefinition?
func (p *parser) parseObjectTypeDefinition() (*ast.ObjectTypeDefinition, error) {
	head, err := p.parseTypeHead("type", true)
	if err != nil {
		return nil, err
	}

	fields, err := p.parseFieldsDefinition()
	if err != nil {
		return nil, err
	}

	return &ast.ObjectTypeDefinition{
		Span:                head.span(p.lastToken),
		DefinitionBase:      head.definitionBase(),
		NamedDefinitionBase: head.namedDefinitionBase(),
		Description:         head.description,
		Interfaces:          head.interfaces,
		Fields:              fields,
	}, nil
}

//	ImplementsInterfaces ::
//		implements &? NamedType
//		ImplementsInterfaces & NamedType
func (p *parser) parseImplementsInterfaces() ([]ast.NamedType, error) {
	hasImplements, err := p.skipKeyword("implements")
	if err != nil {
		return nil, err
	} else if !hasImplements {
		return nil, nil
	}

	// Optional leading ampersand
	if _, err := p.skip(token.KindAmp); err != nil {
		return nil, err
	}

	var types []ast.NamedType
	for {
		namedType, err := p.parseNamedType()
		if err != nil {
			return nil, err
		}
		types = append(types, namedType)

		more, err := p.skip(token.KindAmp)
		if err != nil {
			return nil, err
		} else if !more {
			break
		}
	}

	return types, nil
}

//	FieldsDefinition ::
//		{ FieldDefinition+ }
func (p *parser) parseFieldsDefinition() ([]*ast.FieldDefinition, error) {
	if p.peek().Kind != token.KindLeftBrace {
		return nil, nil
	}

	if _, err := p.expect(token.KindLeftBrace); err != nil {
		return nil, err
	}

	var fields []*ast.FieldDefinition
	for {
		field, err := p.parseFieldDefinition()
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)

		stop, err := p.skip(token.KindRightBrace)
		if err != nil {
			return nil, err
		} else if stop {
			break
		}
	}

	return fields, nil
}

//	FieldDefinition ::
//		Description? Name ArgumentsDefinition? : Type Directives?
func (p *parser) parseFieldDefinition() (*ast.FieldDefinition, error) {
	first := p.peek()

	description, err := p.parseDescription()
	if err != nil {
		return nil, err
	}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	arguments, err := p.parseArgumentDefs()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.KindColon); err != nil {
		return nil, err
	}

	fieldType, err := p.parseType()
	if err != nil {
		return nil, err
	}

	directives, err := p.parseOptionalDirectives()
	if err != nil {
		return nil, err
	}

	return &ast.FieldDefinition{
		Span: ast.Span{
			First: first,
			Last:  p.lastToken,
		},
		Description: description,
		Name:        name,
		Arguments:   arguments,
		Type:        fieldType,
		Directives:  directives,
	}, nil
}

//	ArgumentsDefinition ::
//		( InputValueDefinition+ )
func (p *parser) parseArgumentDefs() ([]*ast.InputValueDefinition, error) {
	if p.peek().Kind != token.KindLeftParen {
		return nil, nil
	}
	return p.parseInputValueDefs(token.KindLeftParen, token.KindRightParen)
}

func (p *parser) parseInputValueDefs(openKind token.Kind, closeKind token.Kind) ([]*ast.InputValueDefinition, error) {
	if _, err := p.expect(openKind); err != nil {
		return nil, err
	}

	var values []*ast.InputValueDefinition
	for {
		value, err := p.parseInputValueDef()
		if err != nil {
			return nil, err
		}
		values = append(values, value)

		stop, err := p.skip(closeKind)
		if err != nil {
			return nil, err
		} else if stop {
			break
		}
	}

	return values, nil
}

//	InputValueDefinition ::
//		Description? Name : Type DefaultValue? Directives?
func (p *parser) parseInputValueDef() (*ast.InputValueDefinition, error) {
	var defaultValue ast.Value

	first := p.peek()

	description, err := p.parseDescription()
	if err != nil {
		return nil, err
	}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.KindColon); err != nil {
		return nil, err
	}

	valueType, err := p.parseType()
	if err != nil {
		return nil, err
	}

	if p.peek().Kind == token.KindEquals {
		if defaultValue, err = p.parseDefaultValue(); err != nil {
			return nil, err
		}
	}

	directives, err := p.parseOptionalDirectives()
	if err != nil {
		return nil, err
	}

	return &ast.InputValueDefinition{
		Span: ast.Span{
			First: first,
			Last:  p.lastToken,
		},
		Description:  description,
		Name:         name,
		Type:         valueType,
		DefaultValue: defaultValue,
		Directives:   directives,
	}, nil
}

//	InterfaceTypeDefinition ::
//		Description? interface Name ImplementsInterfaces? Directives? FieldsDefinition?
func (p *parser) parseInterfaceTypeDefinition() (*ast.InterfaceTypeDefinition, error) {
	head, err := p.parseTypeHead("interface", true)
	if err != nil {
		return nil, err
	}

	fields, err := p.parseFieldsDefinition()
	if err != nil {
		return nil, err
	}

	return &ast.InterfaceTypeDefinition{
		Span:                head.span(p.lastToken),
		DefinitionBase:      head.definitionBase(),
		NamedDefinitionBase: head.namedDefinitionBase(),
		Description:         head.description,
		Interfaces:          head.interfaces,
		Fields:              fields,
	}, nil
}

//	UnionTypeDefinition ::
//		Description? union Name Directives? UnionMemberTypes?
func (p *parser) parseUnionTypeDefinition() (*ast.UnionTypeDefinition, error) {
	head, err := p.parseTypeHead("union", false)
	if err != nil {
		return nil, err
	}

	types, err := p.parseUnionMemberTypes()
	if err != nil {
		return nil, err
	}

	return &ast.UnionTypeDefinition{
		Span:                head.span(p.lastToken),
		DefinitionBase:      head.definitionBase(),
		NamedDefinitionBase: head.namedDefinitionBase(),
		Description:         head.description,
		Types:               types,
	}, nil
}

//	UnionMemberTypes ::
//		= |? NamedType
//		UnionMemberTypes | NamedType
func (p *parser) parseUnionMemberTypes() ([]ast.NamedType, error) {
	hasEquals, err := p.skip(token.KindEquals)
	if err != nil {
		return nil, err
	} else if !hasEquals {
		return nil, nil
	}

	// Optional leading pipe
	if _, err := p.skip(token.KindPipe); err != nil {
		return nil, err
	}

	var types []ast.NamedType
	for {
		namedType, err := p.parseNamedType()
		if err != nil {
			return nil, err
		}
		types = append(types, namedType)

		more, err := p.skip(token.KindPipe)
		if err != nil {
			return nil, err
		} else if !more {
			break
		}
	}

	return types, nil
}

//	EnumTypeDefinition ::
//		Description? enum Name Directives? EnumValuesDefinition?
func (p *parser) parseEnumTypeDefinition() (*ast.EnumTypeDefinition, error) {
	head, err := p.parseTypeHead("enum", false)
	if err != nil {
		return nil, err
	}

	values, err := p.parseEnumValuesDefinition()
	if err != nil {
		return nil, err
	}

	return &ast.EnumTypeDefinition{
		Span:                head.span(p.lastToken),
		DefinitionBase:      head.definitionBase(),
		NamedDefinitionBase: head.namedDefinitionBase(),
		Description:         head.description,
		Values:              values,
	}, nil
}

//	EnumValuesDefinition ::
//		{ EnumValueDefinition+ }
func (p *parser) parseEnumValuesDefinition() ([]*ast.EnumValueDefinition, error) {
	if p.peek().Kind != token.KindLeftBrace {
		return nil, nil
	}

	if _, err := p.expect(token.KindLeftBrace); err != nil {
		return nil, err
	}

	var values []*ast.EnumValueDefinition
	for {
		value, err := p.parseEnumValueDefinition()
		if err != nil {
			return nil, err
		}
		values = append(values, value)

		stop, err := p.skip(token.KindRightBrace)
		if err != nil {
			return nil, err
		} else if stop {
			break
		}
	}

	return values, nil
}

//	EnumValueDefinition ::
//		Description? EnumValue Directives?
//
//	EnumValue ::
//		Name but not true, false or null
func (p *parser) parseEnumValueDefinition() (*ast.EnumValueDefinition, error) {
	first := p.peek()

	description, err := p.parseDescription()
	if err != nil {
		return nil, err
	}

	tok := p.peek()
	if tok.Kind == token.KindName && (tok.Value == "true" || tok.Value == "false" || tok.Value == "null") {
		return nil, graphql.NewSyntaxError(p.lexer.Source(), tok.Location,
			fmt.Sprintf("%s is reserved and cannot be used for an enum value.", tok.Value))
	}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	directives, err := p.parseOptionalDirectives()
	if err != nil {
		return nil, err
	}

	return &ast.EnumValueDefinition{
		Span: ast.Span{
			First: first,
			Last:  p.lastToken,
		},
		Description: description,
		Value: ast.EnumValue{
			Token: name.Token,
		},
		Directives: directives,
	}, nil
}

//	InputObjectTypeDefinition ::
//		Description? input Name Directives? InputFieldsDefinition?
func (p *parser) parseInputObjectTypeDefinition() (*ast.InputObjectTypeDefinition, error) {
	head, err := p.parseTypeHead("input", false)
	if err != nil {
		return nil, err
	}

	fields, err := p.parseInputFieldsDefinition()
	if err != nil {
		return nil, err
	}

	return &ast.InputObjectTypeDefinition{
		Span:                head.span(p.lastToken),
		DefinitionBase:      head.definitionBase(),
		NamedDefinitionBase: head.namedDefinitionBase(),
		Description:         head.description,
		Fields:              fields,
	}, nil
}

//	InputFieldsDefinition ::
//		{ InputValueDefinition+ }
func (p *parser) parseInputFieldsDefinition() ([]*ast.InputValueDefinition, error) {
	if p.peek().Kind != token.KindLeftBrace {
		return nil, nil
	}
	return p.parseInputValueDefs(token.KindLeftBrace, token.KindRightBrace)
}

//===----------------------------------------------------------------------------------------====//
// Implements the parsing rules in the Type Extension section.
//===----------------------------------------------------------------------------------------====//

//	TypeSystemExtension ::
//		SchemaExtension
//		TypeExtension
func (p *parser) parseTypeSystemExtension() (ast.Definition, error) {
	keywordToken, err := p.lexer.Lookahead()
	if err != nil {
		return nil, err
	}

	if keywordToken.Kind == token.KindName {
		switch keywordToken.Value {
		case "schema":
			return p.parseSchemaExtension()
		case "scalar":
			return p.parseScalarTypeExtension()
		case "type":
			return p.parseObjectTypeExtension()
		case "interface":
			return p.parseInterfaceTypeExtension()
		case "union":
			return p.parseUnionTypeExtension()
		case "enum":
			return p.parseEnumTypeExtension()
		case "input":
			return p.parseInputObjectTypeExtension()
		}
	}

	return nil, graphql.NewSyntaxError(
		p.lexer.Source(),
		keywordToken.Location,
		fmt.Sprintf("Unexpected %s", keywordToken.Description()))
}

// parseExtensionHead parses "extend" followed by the given keyword, a name, the implemented
// interfaces (if allowed) and directives.
func (p *parser) parseExtensionHead(keyword string, allowInterfaces bool) (*typeHead, error) {
	head := &typeHead{
		first: p.peek(),
	}

	if err := p.expectKeyword("extend"); err != nil {
		return nil, err
	}

	if err := p.expectKeyword(keyword); err != nil {
		return nil, err
	}

	var err error
	if head.name, err = p.parseName(); err != nil {
		return nil, err
	}

	if allowInterfaces {
		if head.interfaces, err = p.parseImplementsInterfaces(); err != nil {
			return nil, err
		}
	}

	if head.directives, err = p.parseOptionalDirectives(); err != nil {
		return nil, err
	}

	return head, nil
}

//	SchemaExtension ::
//		extend schema Directives? { OperationTypeDefinition+ }
//		extend schema Directives
func (p *parser) parseSchemaExtension() (*ast.SchemaExtension, error) {
	first := p.peek()

	if err := p.expectKeyword("extend"); err != nil {
		return nil, err
	}

	if err := p.expectKeyword("schema"); err != nil {
		return nil, err
	}

	directives, err := p.parseOptionalDirectives()
	if err != nil {
		return nil, err
	}

	operationTypes, err := p.parseOptionalOperationTypeDefinitions()
	if err != nil {
		return nil, err
	}

	if len(directives) == 0 && len(operationTypes) == 0 {
		return nil, p.unexpected()
	}

	return &ast.SchemaExtension{
		Span: ast.Span{
			First: first,
			Last:  p.lastToken,
		},
		DefinitionBase: ast.DefinitionBase{
			Directives: directives,
		},
		OperationTypes: operationTypes,
	}, nil
}

//	ScalarTypeExtension ::
//		extend scalar Name Directives
func (p *parser) parseScalarTypeExtension() (*ast.ScalarTypeExtension, error) {
	head, err := p.parseExtensionHead("scalar", false)
	if err != nil {
		return nil, err
	}

	if len(head.directives) == 0 {
		return nil, p.unexpected()
	}

	return &ast.ScalarTypeExtension{
		Span:                head.span(p.lastToken),
		DefinitionBase:      head.definitionBase(),
		NamedDefinitionBase: head.namedDefinitionBase(),
	}, nil
}

//	ObjectTypeExtension ::
//		extend type Name ImplementsInterfaces? Directives? FieldsDefinition
//		extend type Name ImplementsInterfaces? Directives
//		extend type Name ImplementsInterfaces
func (p *parser) parseObjectTypeExtension() (*ast.ObjectTypeExtension, error) {
	head, err := p.parseExtensionHead("type", true)
	if err != nil {
		return nil, err
	}

	fields, err := p.parseFieldsDefinition()
	if err != nil {
		return nil, err
	}

	if len(head.interfaces) == 0 && len(head.directives) == 0 && len(fields) == 0 {
		return nil, p.unexpected()
	}

	return &ast.ObjectTypeExtension{
		Span:                head.span(p.lastToken),
		DefinitionBase:      head.definitionBase(),
		NamedDefinitionBase: head.namedDefinitionBase(),
		Interfaces:          head.interfaces,
		Fields:              fields,
	}, nil
}

//	InterfaceTypeExtension ::
//		extend interface Name ImplementsInterfaces? Directives? FieldsDefinition
//		extend interface Name ImplementsInterfaces? Directives
//		extend interface Name ImplementsInterfaces
func (p *parser) parseInterfaceTypeExtension() (*ast.InterfaceTypeExtension, error) {
	head, err := p.parseExtensionHead("interface", true)
	if err != nil {
		return nil, err
	}

	fields, err := p.parseFieldsDefinition()
	if err != nil {
		return nil, err
	}

	if len(head.interfaces) == 0 && len(head.directives) == 0 && len(fields) == 0 {
		return nil, p.unexpected()
	}

	return &ast.InterfaceTypeExtension{
		Span:                head.span(p.lastToken),
		DefinitionBase:      head.definitionBase(),
		NamedDefinitionBase: head.namedDefinitionBase(),
		Interfaces:          head.interfaces,
		Fields:              fields,
	}, nil
}

//	UnionTypeExtension ::
//		extend union Name Directives? UnionMemberTypes
//		extend union Name Directives
func (p *parser) parseUnionTypeExtension() (*ast.UnionTypeExtension, error) {
	head, err := p.parseExtensionHead("union", false)
	if err != nil {
		return nil, err
	}

	types, err := p.parseUnionMemberTypes()
	if err != nil {
		return nil, err
	}

	if len(head.directives) == 0 && len(types) == 0 {
		return nil, p.unexpected()
	}

	return &ast.UnionTypeExtension{
		Span:                head.span(p.lastToken),
		DefinitionBase:      head.definitionBase(),
		NamedDefinitionBase: head.namedDefinitionBase(),
		Types:               types,
	}, nil
}

//	EnumTypeExtension ::
//		extend enum Name Directives? EnumValuesDefinition
//		extend enum Name Directives
func (p *parser) parseEnumTypeExtension() (*ast.EnumTypeExtension, error) {
	head, err := p.parseExtensionHead("enum", false)
	if err != nil {
		return nil, err
	}

	values, err := p.parseEnumValuesDefinition()
	if err != nil {
		return nil, err
	}

	if len(head.directives) == 0 && len(values) == 0 {
		return nil, p.unexpected()
	}

	return &ast.EnumTypeExtension{
		Span:                head.span(p.lastToken),
		DefinitionBase:      head.definitionBase(),
		NamedDefinitionBase: head.namedDefinitionBase(),
		Values:              values,
	}, nil
}

//	InputObjectTypeExtension ::
//		extend input Name Directives? InputFieldsDefinition
//		extend input Name Directives
func (p *parser) parseInputObjectTypeExtension() (*ast.InputObjectTypeExtension, error) {
	head, err := p.parseExtensionHead("input", false)
	if err != nil {
		return nil, err
	}

	fields, err := p.parseInputFieldsDefinition()
	if err != nil {
		return nil, err
	}

	if len(head.directives) == 0 && len(fields) == 0 {
		return nil, p.unexpected()
	}

	return &ast.InputObjectTypeExtension{
		Span:                head.span(p.lastToken),
		DefinitionBase:      head.definitionBase(),
		NamedDefinitionBase: head.namedDefinitionBase(),
		Fields:              fields,
	}, nil
}

//===----------------------------------------------------------------------------------------====//
// Implements the parsing rules in the Directive Definition section.
//===----------------------------------------------------------------------------------------====//

// directiveLocations contains the valid names in DirectiveLocations.
var directiveLocations = map[string]bool{
	// ExecutableDirectiveLocation
	"QUERY":               true,
	"MUTATION":            true,
	"SUBSCRIPTION":        true,
	"FIELD":               true,
	"FRAGMENT_DEFINITION": true,
	"FRAGMENT_SPREAD":     true,
	"INLINE_FRAGMENT":     true,
	"VARIABLE_DEFINITION": true,

	// TypeSystemDirectiveLocation
	"SCHEMA":                 true,
	"SCALAR":                 true,
	"OBJECT":                 true,
	"FIELD_DEFINITION":       true,
	"ARGUMENT_DEFINITION":    true,
	"INTERFACE":              true,
	"UNION":                  true,
	"ENUM":                   true,
	"ENUM_VALUE":             true,
	"INPUT_OBJECT":           true,
	"INPUT_FIELD_DEFINITION": true,
}

//	DirectiveDefinition ::
//		Description? directive @ Name ArgumentsDefinition? repeatable? on DirectiveLocations
func (p *parser) parseDirectiveDefinition() (*ast.DirectiveDefinition, error) {
	first := p.peek()

	description, err := p.parseDescription()
	if err != nil {
		return nil, err
	}

	if err := p.expectKeyword("directive"); err != nil {
		return nil, err
	}

	if _, err := p.expect(token.KindAt); err != nil {
		return nil, err
	}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	arguments, err := p.parseArgumentDefs()
	if err != nil {
		return nil, err
	}

	repeatable, err := p.skipKeyword("repeatable")
	if err != nil {
		return nil, err
	}

	if err := p.expectKeyword("on"); err != nil {
		return nil, err
	}

	locations, err := p.parseDirectiveLocations()
	if err != nil {
		return nil, err
	}

	return &ast.DirectiveDefinition{
		Span: ast.Span{
			First: first,
			Last:  p.lastToken,
		},
		NamedDefinitionBase: ast.NamedDefinitionBase{
			Name: name,
		},
		Description: description,
		Arguments:   arguments,
		Repeatable:  repeatable,
		Locations:   locations,
	}, nil
}

//	DirectiveLocations ::
//		|? DirectiveLocation
//		DirectiveLocations | DirectiveLocation
func (p *parser) parseDirectiveLocations() ([]ast.Name, error) {
	// Optional leading pipe
	if _, err := p.skip(token.KindPipe); err != nil {
		return nil, err
	}

	var locations []ast.Name
	for {
		tok := p.peek()
		if tok.Kind != token.KindName || !directiveLocations[tok.Value] {
			return nil, p.unexpected()
		}

		location, err := p.parseName()
		if err != nil {
			return nil, err
		}
		locations = append(locations, location)

		more, err := p.skip(token.KindPipe)
		if err != nil {
			return nil, err
		} else if !more {
			break
		}
	}

	return locations, nil
}

//	Arguments ::
//		( Argument+ )
func (p *parser) parseArguments() (ast.Arguments, error) {
	if _, err := p.expect(token.KindLeftParen); err != nil {
		return nil, err
	}

	arguments := make([]*ast.Argument, 0, 1)
	for {
		argument, err := p.parseArgument()
		if err != nil {
			return nil, err
		}

		arguments = append(arguments, argument)

		// Stop on } token.
		stop, err := p.skip(token.KindRightParen)
		if err != nil {
			return nil, err
		}

		if stop {
			break
		}
	}

	return ast.Arguments(arguments), nil
}

//	Argument ::
//		Name : Value
func (p *parser) parseArgument() (*ast.Argument, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.KindColon); err != nil {
		return nil, err
	}

	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	return &ast.Argument{
		Name:  name,
		Value: value,
	}, nil
}

//	Value ::
//		IntValue
//		FloatValue
//		StringValue
//		BooleanValue
//		NullValue
//		EnumValue
//		ListValueConst
//		ObjectValueConst
//
//	BooleanValue::
//		true or false
//
//	NullValue::
//		null
//
//	EnumValue ::
//		Name but not true or false or null
func (p *parser) parseValue() (ast.Value, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.KindInt:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.IntValue{
			Token: tok,
		}, nil

	case token.KindFloat:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.FloatValue{
			Token: tok,
		}, nil

	case token.KindString, token.KindBlockString:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.StringValue{
			Token: tok,
		}, nil

	case token.KindName:
		if err := p.advance(); err != nil {
			return nil, err
		}

		switch tok.Value {
		case "true", "false":
			return ast.BooleanValue{
				Token: tok,
			}, nil

		case "null":
			return ast.NullValue{
				Token: tok,
			}, nil

		default:
			return ast.EnumValue{
				Token: tok,
			}, nil
		}

	case token.KindLeftBracket:
		return p.parseListValue()

	case token.KindLeftBrace:
		return p.parseObjectValue()
	}

	return nil, p.unexpected()
}

//	ListValue ::
//		[ ]
//		[ Value+ ]
func (p *parser) parseListValue() (ast.ListValue, error) {
	startToken, err := p.expect(token.KindLeftBracket)
	if err != nil {
		return ast.ListValue{}, err
	}

	var values []ast.Value
	for {
		// Stop on ] token.
		stop, err := p.skip(token.KindRightBracket)
		if err != nil {
			return ast.ListValue{}, err
		}
		if stop {
			break
		}

		value, err := p.parseValue()
		if err != nil {
			return ast.ListValue{}, err
		}

		values = append(values, value)
	}

	if len(values) == 0 {
		// Store the start token for empty list value.
		return ast.ListValue{
			ValuesOrStartToken: startToken,
		}, nil
	}
	return ast.ListValue{
		ValuesOrStartToken: values,
	}, nil
}

//	ObjectValue ::
//		{ }
//		{ ObjectField+ }
func (p *parser) parseObjectValue() (ast.ObjectValue, error) {
	startToken, err := p.expect(token.KindLeftBrace)
	if err != nil {
		return ast.ObjectValue{}, err
	}

	var fields []*ast.ObjectField
	for {
		// Stop on } token.
		stop, err := p.skip(token.KindRightBrace)
		if err != nil {
			return ast.ObjectValue{}, err
		}
		if stop {
			break
		}

		// Parse a ObjectField.
		field, err := p.parseObjectField()
		if err != nil {
			return ast.ObjectValue{}, err
		}

		fields = append(fields, field)
	}

	if len(fields) == 0 {
		// Store the start token for empty list value.
		return ast.ObjectValue{
			FieldsOrStartToken: startToken,
		}, nil
	}
	return ast.ObjectValue{
		FieldsOrStartToken: fields,
	}, nil
}

//	ObjectField ::
//		Name : Value
func (p *parser) parseObjectField() (*ast.ObjectField, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.KindColon); err != nil {
		return nil, err
	}

	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	return &ast.ObjectField{
		Name:  name,
		Value: value,
	}, nil
}

//	Type ::
//		NamedType
//		ListType
//		NonNullType
//
//	NamedType ::
//		Name
//
//	ListType ::
//		[ Type ]
//
//	NonNullType ::
//		NamedType !
//		ListType !
func (p *parser) parseType() (ast.Type, error) {
	var t ast.Type

	// See how many level are the innermost named type nested in the list.
	listLevel := 0
	for {
		isOpeningList, err := p.skip(token.KindLeftBracket)
		if err != nil {
			return nil, err
		} else if isOpeningList {
			listLevel++
		} else {
			// Must be a Name.
			name, err := p.parseName()
			if err != nil {
				return nil, err
			}

			t = ast.NamedType{
				Name: name,
			}

			// Stop when innermost named type is reached. No opening list is allowed.
			break
		}
	}

	for listLevel > 0 {
		isNonNull, err := p.skip(token.KindBang)
		if err != nil {
			return nil, err
		} else if isNonNull {
			t = ast.NonNullType{
				// Must be a nullable type because we only allow at most one "!" when closing the list.
				Type: t.(ast.NullableType),
			}
		}

		if _, err := p.expect(token.KindRightBracket); err != nil {
			return nil, err
		}

		t = ast.ListType{
			ItemType: t,
		}
		listLevel--
	}

	// The result type could be further wrapped into a non-null type.
	isNonNull, err := p.skip(token.KindBang)
	if err != nil {
		return nil, err
	} else if isNonNull {
		t = ast.NonNullType{
			Type: t.(ast.NullableType),
		}
	}

	return t, nil
}

//	NamedType ::
//		Name
func (p *parser) parseNamedType() (ast.NamedType, error) {
	name, err := p.parseName()
	if err != nil {
		return ast.NamedType{}, err
	}

	return ast.NamedType{
		Name: name,
	}, nil
}

//	DefaultValue ::
//		= Value
func (p *parser) parseDefaultValue() (ast.Value, error) {
	if _, err := p.expect(token.KindEquals); err != nil {
		return nil, err
	}

	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	return value, nil
}

//	Directives ::
//		Directive+
func (p *parser) parseDirectives() (ast.Directives, error) {
	var directives ast.Directives

	for {
		directive, err := p.parseDirective()
		if err != nil {
			return nil, err
		}
		directives = append(directives, directive)

		if p.peek().Kind != token.KindAt {
			break
		}

		// Continue parsing a Directive node.
	}

	return directives, nil
}

//	Directive ::
//		@ Name Arguments?
func (p *parser) parseDirective() (*ast.Directive, error) {
	if _, err := p.expect(token.KindAt); err != nil {
		return nil, err
	}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	var arguments ast.Arguments
	if p.peek().Kind == token.KindLeftParen {
		arguments, err = p.parseArguments()
		if err != nil {
			return nil, err
		}
	}

	return &ast.Directive{
		Name:      name,
		Arguments: arguments,
	}, nil
}
