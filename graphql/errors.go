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

import (
	"fmt"

	"github.com/botobag/atlas/graphql/token"

	"github.com/hashicorp/go-multierror"
)

//===----------------------------------------------------------------------------------------====//
// Syntax Error
//===----------------------------------------------------------------------------------------====//

type syntaxError struct {
	source      *token.Source
	location    token.SourceLocation
	description string
}

var (
	_ error              = (*syntaxError)(nil)
	_ ErrorWithLocations = (*syntaxError)(nil)
	_ ErrorWithCode      = (*syntaxError)(nil)
)

// Error implements Go's error interface.
func (e *syntaxError) Error() string {
	return fmt.Sprintf("Syntax Error: %s", e.description)
}

// Code implements ErrorWithCode.
func (e *syntaxError) Code() ErrCode {
	return ErrCodeSyntax
}

// Locations implements ErrorWithLocations.
func (e *syntaxError) Locations() []ErrorLocation {
	locInfo := e.source.LocationInfoOf(e.location)
	return []ErrorLocation{
		{
			Line:   locInfo.Line,
			Column: locInfo.Column,
		},
	}
}

// NewSyntaxError produces an error representing a syntax error, containing useful descriptive
// information about the syntax error's position in the source.
func NewSyntaxError(source *token.Source, location token.SourceLocation, description string) error {
	e := &syntaxError{
		source:      source,
		location:    location,
		description: description,
	}
	return NewError(e.Error(), e, ErrKindSyntax)
}

//===----------------------------------------------------------------------------------------====//
// Aggregate Error
//===----------------------------------------------------------------------------------------====//

// NewAggregateError builds an Error whose causes are the given errors. The causes are kept in a
// *multierror.Error in the Err field. Additional args are handled as in NewError.
func NewAggregateError(message string, code ErrCode, causes []error, args ...interface{}) error {
	var merr *multierror.Error
	if len(causes) > 0 {
		merr = multierror.Append(merr, causes...)
		merr.ErrorFormat = formatCauses
	}

	args = append(args, code)
	if merr != nil {
		args = append(args, merr)
	}
	return NewError(message, args...)
}

func formatCauses(errs []error) string {
	if len(errs) == 1 {
		return errs[0].Error()
	}
	return fmt.Sprintf("%d errors occurred", len(errs))
}
