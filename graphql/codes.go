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

package graphql

// ErrCode is a machine-readable code that classifies an Error. It is written to the "code" entry of
// the error extensions when an Error is serialized.
type ErrCode string

// Enumeration of ErrCode
const (
	// ErrCodeSyntax is reported by the lexer and parser for malformed schema source.
	ErrCodeSyntax ErrCode = "Syntax"

	// ErrCodeVersionParse is reported when a version string is not in the form of "v<major>.<minor>".
	ErrCodeVersionParse ErrCode = "VersionParse"

	// ErrCodeBadURL is reported when a link URL cannot be parsed.
	ErrCodeBadURL ErrCode = "BadURL"

	// ErrCodeNoPath is reported when a link URL has no path.
	ErrCodeNoPath ErrCode = "NoPath"

	// ErrCodeNoName is reported when a feature URL is required but carries no name.
	ErrCodeNoName ErrCode = "NoName"

	// ErrCodeNoVersion is reported when a feature URL is required but carries no version.
	ErrCodeNoVersion ErrCode = "NoVersion"

	// ErrCodeBadImport is reported for a malformed import list.
	ErrCodeBadImport ErrCode = "BadImport"

	// ErrCodeBadArgument is reported when a directive argument does not have the expected shape.
	ErrCodeBadArgument ErrCode = "BadArgument"

	// ErrCodeNoDefinition is reported when a reference has no definition in the source or the atlas.
	ErrCodeNoDefinition ErrCode = "NoDefinition"

	// ErrCodeNoLayerData is reported when a computation produced no data.
	ErrCodeNoLayerData ErrCode = "NoLayerData"

	// ErrCodeEvalStackEmpty is raised when an evaluation-only operation is used outside an
	// evaluation.
	ErrCodeEvalStackEmpty ErrCode = "EvalStackEmpty"

	// ErrCodeCheckFailed is reported when one or more checked computations reported errors.
	ErrCodeCheckFailed ErrCode = "CheckFailed"
)

// ErrorCodeOf returns the code of err if it is an *Error or implements ErrorWithCode. Otherwise it
// returns an empty code.
func ErrorCodeOf(err error) ErrCode {
	switch err := err.(type) {
	case *Error:
		return err.Code
	case ErrorWithCode:
		return err.Code()
	}
	return ""
}
