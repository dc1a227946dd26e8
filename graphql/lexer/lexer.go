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

package lexer

import (
	"fmt"
	"strings"

	"github.com/botobag/atlas/graphql"
	lexerinternal "github.com/botobag/atlas/graphql/internal/lexer"
	"github.com/botobag/atlas/graphql/token"
)

// Lexer produces the tokens of a Source on demand. Tokens are linked in both directions, comments
// included, while Advance and Lookahead skip over comments. Once the EOF token is reached the lexer
// keeps returning it.
type Lexer struct {
	source *token.Source
	body   token.SourceBody

	// The previously focused non-ignored token
	lastToken *token.Token

	// The currently focused non-ignored token
	token *token.Token

	// Offset of the next unread byte in body
	bytePos uint
}

// New creates a Lexer positioned at the SOF token of source.
func New(source *token.Source) *Lexer {
	sof := token.NewSOFToken(source)
	return &Lexer{
		source:    source,
		body:      source.Body(),
		lastToken: sof,
		token:     sof,
	}
}

// Source returns the source being lexed.
func (lexer *Lexer) Source() *token.Source {
	return lexer.source
}

// Token returns the current token.
func (lexer *Lexer) Token() *token.Token {
	return lexer.token
}

// Advance moves to the next non-ignored token and returns it.
func (lexer *Lexer) Advance() (*token.Token, error) {
	next, err := lexer.Lookahead()
	if err != nil {
		return nil, err
	}
	lexer.lastToken, lexer.token = lexer.token, next
	return next, nil
}

// Lookahead returns the next non-ignored token without moving to it.
func (lexer *Lexer) Lookahead() (*token.Token, error) {
	tok := lexer.token
	if tok.Kind == token.KindEOF {
		return tok, nil
	}

	// New tokens take lexer.token as their Prev. Walk it over the comments so that they stay in the
	// chain, and restore it on return.
	current := lexer.token
	defer func() {
		lexer.token = current
	}()

	for {
		if tok.Next == nil {
			next, err := lexer.lexToken()
			if err != nil {
				return nil, err
			}
			tok.Next = next
		}
		tok = tok.Next

		if tok.Kind != token.KindComment {
			return tok, nil
		}
		lexer.token = tok
	}
}

func (lexer *Lexer) locationAt(bytePos uint) token.SourceLocation {
	return lexer.source.LocationFromPos(bytePos)
}

func (lexer *Lexer) atEOF() bool {
	return lexer.bytePos >= lexer.body.Size()
}

// peek returns the next byte without consuming it, or 0 at the end of the body.
func (lexer *Lexer) peek() byte {
	return lexer.body.At(lexer.bytePos)
}

// consume returns the next byte and moves past it.
func (lexer *Lexer) consume() byte {
	b := lexer.body.At(lexer.bytePos)
	if !lexer.atEOF() {
		lexer.bytePos++
	}
	return b
}

// lookingAt returns true if the unread part of the body starts with s.
func (lexer *Lexer) lookingAt(s string) bool {
	rest := lexer.body[lexer.bytePos:]
	return len(rest) >= len(s) && string(rest[:len(s)]) == s
}

// skip consumes n bytes that the caller has already checked.
func (lexer *Lexer) skip(n int) {
	lexer.bytePos += uint(n)
}

const byteOrderMark = "\xEF\xBB\xBF"

// skipIgnored moves over white space, line terminators, commas and a leading byte order mark.
func (lexer *Lexer) skipIgnored() {
	if lexer.bytePos == 0 && lexer.lookingAt(byteOrderMark) {
		lexer.skip(len(byteOrderMark))
	}

	for !lexer.atEOF() {
		switch lexer.peek() {
		case '\t', ' ', ',', '\n', '\r':
			lexer.bytePos++
		default:
			return
		}
	}
}

func isDigit(char byte) bool {
	return char >= '0' && char <= '9'
}

func isNameStart(char byte) bool {
	return char == '_' || (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z')
}

func isNameContinue(char byte) bool {
	return isNameStart(char) || isDigit(char)
}

// consumeDigits consumes digits and returns the first byte that is not one.
func (lexer *Lexer) consumeDigits() byte {
	for isDigit(lexer.peek()) {
		lexer.consume()
	}
	return lexer.peek()
}

// describeCharAt renders the character at bytePos for error messages.
func (lexer *Lexer) describeCharAt(bytePos uint) string {
	if bytePos >= lexer.body.Size() {
		return "<EOF>"
	}

	r, _ := lexer.body.RuneAt(bytePos)
	if r >= 0x20 && r < 0x7F {
		return fmt.Sprintf(`"%c"`, r)
	}
	return fmt.Sprintf(`"\u%04X"`, r)
}

func (lexer *Lexer) syntaxError(bytePos uint, format string, args ...interface{}) error {
	return graphql.NewSyntaxError(lexer.source, lexer.locationAt(bytePos), fmt.Sprintf(format, args...))
}

func (lexer *Lexer) unexpectedCharacterError(bytePos uint) error {
	char := lexer.body.At(bytePos)
	switch {
	case char < 0x20 && char != '\t' && char != '\n' && char != '\r':
		return lexer.syntaxError(bytePos, "Cannot contain the invalid character %s.", lexer.describeCharAt(bytePos))
	case char == '\'':
		return lexer.syntaxError(bytePos,
			"Unexpected single quote character ('), did you mean to use a double quote (\")?")
	}
	return lexer.syntaxError(bytePos, "Cannot parse the unexpected character %s.", lexer.describeCharAt(bytePos))
}

// makeToken creates a token of the given kind that ends at the current position.
func (lexer *Lexer) makeToken(kind token.Kind, startPos uint, value string) *token.Token {
	return &token.Token{
		Kind:     kind,
		Location: lexer.locationAt(startPos),
		Length:   lexer.bytePos - startPos,
		Value:    value,
		Prev:     lexer.token,
	}
}

// punctuators maps the single-byte punctuators to their kinds. The spread "..." is lexed apart.
var punctuators = map[byte]token.Kind{
	'!': token.KindBang,
	'$': token.KindDollar,
	'&': token.KindAmp,
	'(': token.KindLeftParen,
	')': token.KindRightParen,
	':': token.KindColon,
	'=': token.KindEquals,
	'@': token.KindAt,
	'[': token.KindLeftBracket,
	']': token.KindRightBracket,
	'{': token.KindLeftBrace,
	'|': token.KindPipe,
	'}': token.KindRightBrace,
}

// lexToken lexes the token that follows the ignored characters at the current position.
func (lexer *Lexer) lexToken() (*token.Token, error) {
	lexer.skipIgnored()

	startPos := lexer.bytePos
	if lexer.atEOF() {
		return lexer.makeToken(token.KindEOF, startPos, ""), nil
	}

	char := lexer.peek()
	if kind, ok := punctuators[char]; ok {
		lexer.consume()
		return lexer.makeToken(kind, startPos, ""), nil
	}

	switch {
	case char == '.':
		if !lexer.lookingAt("...") {
			return nil, lexer.unexpectedCharacterError(startPos)
		}
		lexer.skip(3)
		return lexer.makeToken(token.KindSpread, startPos, ""), nil

	case char == '#':
		return lexer.lexComment(), nil

	case isNameStart(char):
		return lexer.lexName(), nil

	case char == '-' || isDigit(char):
		return lexer.lexNumber()

	case lexer.lookingAt(`"""`):
		lexer.skip(3)
		return lexer.lexBlockString(startPos)

	case lexer.lookingAt(`""`):
		lexer.skip(2)
		return lexer.makeToken(token.KindString, startPos, ""), nil

	case char == '"':
		lexer.consume()
		return lexer.lexString(startPos)
	}

	return nil, lexer.unexpectedCharacterError(startPos)
}

// lexComment reads a comment: "#" followed by any source characters up to the end of the line.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Comments
func (lexer *Lexer) lexComment() *token.Token {
	startPos := lexer.bytePos
	lexer.consume()
	for char := lexer.peek(); char > 0x1F || char == '\t'; char = lexer.peek() {
		lexer.consume()
	}
	return lexer.makeToken(token.KindComment, startPos, "")
}

// lexName reads a name matching /[_A-Za-z][_0-9A-Za-z]*/.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Names
func (lexer *Lexer) lexName() *token.Token {
	startPos := lexer.bytePos
	lexer.consume()
	for isNameContinue(lexer.peek()) {
		lexer.consume()
	}
	return lexer.makeToken(token.KindName, startPos, string(lexer.body[startPos:lexer.bytePos]))
}

// readDigits consumes one or more digits and returns the byte that follows them. after describes
// what precedes the digits in the error message.
func (lexer *Lexer) readDigits(after string) (byte, error) {
	if !isDigit(lexer.peek()) {
		return 0, lexer.syntaxError(lexer.bytePos, "Invalid number, expected digit %sbut got: %s.",
			after, lexer.describeCharAt(lexer.bytePos))
	}
	lexer.consume()
	return lexer.consumeDigits(), nil
}

// lexNumber reads an int or, when a fraction or an exponent follows, a float.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-Int-Value
func (lexer *Lexer) lexNumber() (*token.Token, error) {
	startPos := lexer.bytePos
	kind := token.KindInt

	char := lexer.consume()
	if char == '-' {
		char = lexer.peek()
		if !isDigit(char) {
			return nil, lexer.syntaxError(lexer.bytePos, "Invalid number, expected digit after '-' but got: %s.",
				lexer.describeCharAt(lexer.bytePos))
		}
		lexer.consume()
	}

	if char == '0' {
		if isDigit(lexer.peek()) {
			return nil, lexer.syntaxError(lexer.bytePos, "Invalid number, unexpected digit after 0: %s.",
				lexer.describeCharAt(lexer.bytePos))
		}
		char = lexer.peek()
	} else {
		char = lexer.consumeDigits()
	}

	var err error
	if char == '.' {
		kind = token.KindFloat
		lexer.consume()
		if char, err = lexer.readDigits("after decimal point ('.') "); err != nil {
			return nil, err
		}
	}

	if char == 'e' || char == 'E' {
		kind = token.KindFloat
		lexer.consume()
		if sign := lexer.peek(); sign == '+' || sign == '-' {
			lexer.consume()
		}
		if _, err = lexer.readDigits(""); err != nil {
			return nil, err
		}
	}

	return lexer.makeToken(kind, startPos, string(lexer.body[startPos:lexer.bytePos])), nil
}

// escapes maps the single-character escapes of a string to their values.
var escapes = map[byte]byte{
	'"':  '"',
	'\\': '\\',
	'/':  '/',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

// hexValue returns the value of a hexadecimal digit, or -1.
func hexValue(char byte) rune {
	switch {
	case isDigit(char):
		return rune(char - '0')
	case char >= 'a' && char <= 'f':
		return rune(char-'a') + 10
	case char >= 'A' && char <= 'F':
		return rune(char-'A') + 10
	}
	return -1
}

// lexString reads the rest of a single-line string whose opening quote at startPos was consumed.
//
// Reference: https://facebook.github.io/graphql/June2018/#sec-String-Value
func (lexer *Lexer) lexString(startPos uint) (*token.Token, error) {
	var value strings.Builder
	for !lexer.atEOF() {
		char := lexer.peek()
		switch {
		case char == '\n' || char == '\r':
			return nil, lexer.syntaxError(lexer.bytePos, "Unterminated string.")

		case char == '"':
			lexer.consume()
			return lexer.makeToken(token.KindString, startPos, value.String()), nil

		case char < 0x20 && char != '\t':
			return nil, lexer.syntaxError(lexer.bytePos, "Invalid character within String: %s.",
				lexer.describeCharAt(lexer.bytePos))

		case char != '\\':
			lexer.consume()
			value.WriteByte(char)
			continue
		}

		// Escape sequence
		lexer.consume()
		char = lexer.consume()
		if escaped, ok := escapes[char]; ok {
			value.WriteByte(escaped)
			continue
		}
		if char != 'u' {
			return nil, lexer.syntaxError(lexer.bytePos-1, "Invalid character escape sequence: \\%c.", char)
		}

		r, err := lexer.readEscapedUnicode()
		if err != nil {
			return nil, err
		}
		value.WriteRune(r)
	}

	return nil, lexer.syntaxError(lexer.bytePos, "Unterminated string.")
}

// readEscapedUnicode reads the four hexadecimal digits that follow "\u".
func (lexer *Lexer) readEscapedUnicode() (rune, error) {
	seqPos := lexer.bytePos
	if lexer.body.Size()-seqPos >= 4 {
		var r rune
		for i := 0; i < 4; i++ {
			r = r<<4 | hexValue(lexer.consume())
		}
		if r >= 0 {
			return r, nil
		}
	}

	seqEnd := seqPos + 4
	if seqEnd > lexer.body.Size() {
		seqEnd = lexer.body.Size()
	}
	return 0, lexer.syntaxError(seqPos-1, "Invalid character escape sequence: \\u%s.",
		string(lexer.body[seqPos:seqEnd]))
}

// lexBlockString reads the rest of a block string whose opening quotes at startPos were consumed.
// Only \""" is an escape; the value is post-processed by BlockStringValue.
func (lexer *Lexer) lexBlockString(startPos uint) (*token.Token, error) {
	var raw strings.Builder
	for !lexer.atEOF() {
		switch char := lexer.peek(); {
		case lexer.lookingAt(`"""`):
			lexer.skip(3)
			return lexer.makeToken(token.KindBlockString, startPos,
				lexerinternal.BlockStringValue(raw.String())), nil

		case lexer.lookingAt(`\"""`):
			lexer.skip(4)
			raw.WriteString(`"""`)

		case char < 0x20 && char != '\t' && char != '\r' && char != '\n':
			return nil, lexer.syntaxError(lexer.bytePos, "Invalid character within String: %s.",
				lexer.describeCharAt(lexer.bytePos))

		default:
			lexer.consume()
			raw.WriteByte(char)
		}
	}

	return nil, lexer.syntaxError(lexer.bytePos, "Unterminated string.")
}
