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
	"reflect"
	"strings"
	"unsafe"

	"github.com/botobag/atlas/graphql/ast"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/json-iterator/go"
)

// Op describes an operation, usually as the package and method, such as "link.ParseURL".
type Op string

// ErrKind defines the kind of error this is.
type ErrKind uint8

// Enumeration of Kind
const (
	ErrKindOther      ErrKind = iota // Unclassified error. This value is not printed in the error message.
	ErrKindSyntax                    // Represent a syntax error in the schema source.
	ErrKindParse                     // Malformed version, URL or import string.
	ErrKindResolution                // A reference could not be resolved to a definition.
	ErrKindEvaluation                // Raised by the evaluation core.
	ErrKindInternal                  // Internal error
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindOther:
		return "other error"
	case ErrKindSyntax:
		return "syntax error"
	case ErrKindParse:
		return "parse error"
	case ErrKindResolution:
		return "resolution error"
	case ErrKindEvaluation:
		return "evaluation error"
	case ErrKindInternal:
		return "internal error"
	}
	return "unknown error kind"
}

// ErrorExtensions provides an additional entry to an error with key "extensions". It is useful for
// attaching vendor-specific error data. The error code is always written to "extensions.code".
type ErrorExtensions map[string]interface{}

// ErrorLocation contains a line number and a column number to point out the beginning of an
// associated syntax element.
type ErrorLocation struct {
	// Both line and column are positive numbers starting from 1
	Line   uint
	Column uint
}

// ErrorWithLocations indicates an error that contains locations. If "locations" is not given in the
// arguments to NewError, NewError will retrieve one from the underlying error (if provided) that
// implements this interface.
type ErrorWithLocations interface {
	Locations() []ErrorLocation
}

// ErrorWithASTNodes is a utility base which implements ErrorWithLocations by querying location
// information from ast.Node's.
type ErrorWithASTNodes struct {
	Nodes []ast.Node
}

var _ ErrorWithLocations = ErrorWithASTNodes{}

// ErrorLocationOfASTNode formats location of an AST node into an ErrorLocation. The second return
// value is false if the node is not backed by a source (e.g., it was built by hand).
func ErrorLocationOfASTNode(node ast.Node) (ErrorLocation, bool) {
	tok := node.TokenRange().First
	if tok == nil || tok.Source() == nil {
		return ErrorLocation{}, false
	}
	locationInfo := tok.LocationInfo()
	return ErrorLocation{
		Line:   locationInfo.Line,
		Column: locationInfo.Column,
	}, true
}

// Locations implements ErrorWithLocations.
func (err ErrorWithASTNodes) Locations() []ErrorLocation {
	var locations []ErrorLocation
	for _, node := range err.Nodes {
		if location, ok := ErrorLocationOfASTNode(node); ok {
			locations = append(locations, location)
		}
	}
	return locations
}

// ErrorWithCode indicates an error that carries an ErrCode. If a code is not given in the arguments
// to NewError, NewError will retrieve the one from the underlying error (if provided) that
// implements this interface.
type ErrorWithCode interface {
	Code() ErrCode
}

// ErrorWithExtensions indicates an error that contains extensions data. If "extensions" is not
// given in the arguments to NewError, NewError will retrieve the one from the underlying error (if
// provided) that implements this interface.
type ErrorWithExtensions interface {
	Extensions() ErrorExtensions
}

// An Error describes an error found while parsing schemas, linking names or evaluating computations
// over them. It can be serialized to JSON.
//
// The Error is designed to contain the fields of a GraphQL error [0] plus a machine-readable code.
// Furthermore, you can build an Error by wrapping an error value. Information (if unspecified in the
// arguments to NewError) in the error value will be propagated to the newly created Error.
//
// It also includes Op and ErrKind which will show when printing the error value. This makes it
// helpful for programmers.
//
// [0] https://facebook.github.io/graphql/June2018/#sec-Errors
type Error struct {
	// Message describes the error for debugging purposes.
	Message string

	// Code is the machine-readable code that classifies the error (e.g., NoDefinition).
	Code ErrCode

	// Locations is an array of { line, column } locations within the source documents which
	// correspond to this error.
	Locations []ErrorLocation

	// Nodes are the AST nodes implicated by the error. For a NoDefinition error, they are all the
	// nodes that reference the missing definition.
	Nodes []ast.Node

	// Extensions contains data to be added to in the error response
	Extensions ErrorExtensions

	// The underlying error that triggered this one. An aggregate error keeps a *multierror.Error
	// here; use Causes to list them.
	Err error

	// Op is the operation being performed, usually the name of the method being invoked.
	Op Op

	// Kind is the class of error
	Kind ErrKind
}

// Error implements Go error interface.
var _ error = (*Error)(nil)

// NewError builds an error value from arguments. Inspired by the design of upspin.io/errors [0].
//
// [0]: https://commandcenter.blogspot.com/2017/12/error-handling-in-upspin.html.
func NewError(message string, args ...interface{}) error {
	e := &Error{
		Message: message,
	}

	for _, arg := range args {
		switch arg := arg.(type) {
		case ErrorLocation:
			e.Locations = []ErrorLocation{arg}
		case []ErrorLocation:
			e.Locations = arg

		case ErrCode:
			e.Code = arg

		case []ast.Node:
			e.Nodes = arg
		case ast.Node:
			e.Nodes = []ast.Node{arg}

		case ErrorExtensions:
			e.Extensions = arg

		case error:
			e.Err = arg

		case Op:
			e.Op = arg

		case ErrKind:
			e.Kind = arg

		default:
			hclog.Default().Error("NewError: bad call", "args", fmt.Sprintf("%v", args))
			return fmt.Errorf("unknown type %T, value %v in error call", arg, arg)
		}
	}

	if len(e.Locations) == 0 && len(e.Nodes) > 0 {
		e.Locations = ErrorWithASTNodes{e.Nodes}.Locations()
	}

	// Propagate locations, code or extensions from underlying error when one is not provided in
	// argument.
	prev := e.Err
	if prev != nil {
		if len(e.Locations) == 0 {
			switch errWithLocations := prev.(type) {
			case ErrorWithLocations:
				e.Locations = errWithLocations.Locations()
			case *Error:
				if len(errWithLocations.Locations) > 0 {
					e.Locations = make([]ErrorLocation, len(errWithLocations.Locations))
					copy(e.Locations, errWithLocations.Locations)
				}
			}
		}

		if len(e.Code) == 0 {
			switch errWithCode := prev.(type) {
			case ErrorWithCode:
				e.Code = errWithCode.Code()
			case *Error:
				e.Code = errWithCode.Code
			}
		}

		if e.Extensions == nil {
			switch errWithExtensions := prev.(type) {
			case ErrorWithExtensions:
				e.Extensions = errWithExtensions.Extensions()
			case *Error:
				e.Extensions = errWithExtensions.Extensions
			}
		}

		// Pull kind from underlying error.
		if e.Kind == ErrKindOther {
			if prev, ok := prev.(*Error); ok {
				e.Kind = prev.Kind
			}
		}
	}

	return e
}

// WrapError is a convenient wrapper to build an Error value from an underlying error with a
// message.
func WrapError(err error, message string) error {
	return NewError(message, err)
}

// WrapErrorf is similar to WrapError but with the format specifier.
func WrapErrorf(err error, format string, args ...interface{}) error {
	return NewError(fmt.Sprintf(format, args...), err)
}

// Unwrap returns the underlying error so errors.Is and errors.As can inspect the cause chain. For an
// aggregate error the returned *multierror.Error unwraps to each of its causes in turn.
func (e *Error) Unwrap() error {
	return e.Err
}

// Causes returns the errors that directly caused this one.
func (e *Error) Causes() []error {
	switch err := e.Err.(type) {
	case nil:
		return nil
	case *multierror.Error:
		return err.WrappedErrors()
	default:
		return []error{err}
	}
}

// Error implements Go's error interface.
func (e *Error) Error() string {
	var b strings.Builder
	e.printError(&b, nil)
	return b.String()
}

func (e *Error) printError(b *strings.Builder, nextErr *Error) {
	// If the previous error was also one of ours. Suppress duplications so the message won't contain
	// the same kind, code or locations twice.
	initialLen := b.Len()

	// pad appends str to the buffer if the buffer already has some data.
	pad := func(str string) {
		if b.Len() == initialLen {
			return
		}
		b.WriteString(str)
	}

	if len(e.Op) > 0 {
		b.WriteString(string(e.Op))
	}

	// A code is followed by the message on the same line: "op: [Code] message".
	codePrinted := false
	if len(e.Code) > 0 {
		if nextErr == nil || nextErr.Code != e.Code {
			pad(": ")
			b.WriteString("[")
			b.WriteString(string(e.Code))
			b.WriteString("]")
			codePrinted = true
		}
	}

	if len(e.Message) > 0 {
		if codePrinted {
			b.WriteString(" ")
		} else {
			pad(": ")
		}
		b.WriteString(e.Message)
	}

	if e.Locations != nil {
		// Don't print location if the next error already did.
		if nextErr == nil || !reflect.DeepEqual(nextErr.Locations, e.Locations) {
			if b.Len() == initialLen {
				b.WriteString("At ")
			} else {
				b.WriteString(" at ")
			}
			b.WriteString(fmt.Sprintf("%+v", e.Locations))
		}
	}

	if e.Kind != ErrKindOther {
		// Don't print kind if the next error has the same kind as ours.
		if nextErr == nil || nextErr.Kind != e.Kind {
			pad(": ")
			b.WriteString(e.Kind.String())
		}
	}

	if len(e.Extensions) > 0 {
		// Don't print extensions if the next error already did.
		if nextErr == nil || !reflect.DeepEqual(nextErr.Extensions, e.Extensions) {
			pad(" (additional info: ")
			b.WriteString(fmt.Sprintf("%v)", e.Extensions))
		}
	}

	switch err := e.Err.(type) {
	case nil:

	case *Error:
		// Indent on new line if we are cascading non-empty Error.
		pad(":\n  ")
		err.printError(b, e)

	case *multierror.Error:
		for _, cause := range err.WrappedErrors() {
			pad("\n  * ")
			b.WriteString(strings.Replace(cause.Error(), "\n", "\n    ", -1))
		}

	default:
		pad(": ")
		b.WriteString(err.Error())
	}
}

// MarshalJSON implements json.Marshaler.
func (e *Error) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(e)
}

// errorMarshaller implements jsoniter.ValEncoder to encode Error to JSON.
type errorMarshaller struct{}

var _ jsoniter.ValEncoder = errorMarshaller{}

// IsEmpty implements jsoniter.ValEncoder.
func (errorMarshaller) IsEmpty(ptr unsafe.Pointer) bool {
	return (*Error)(ptr) == nil
}

// Encode implements jsoniter.ValEncoder.
func (errorMarshaller) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	err := (*Error)(ptr)
	stream.WriteObjectStart()

	stream.WriteObjectField("message")
	stream.WriteString(err.Message)

	numLocations := len(err.Locations)
	if numLocations > 0 {
		stream.WriteMore()
		stream.WriteObjectField("locations")
		stream.WriteArrayStart()
		for i := range err.Locations {
			location := &err.Locations[i]
			stream.WriteObjectStart()
			stream.WriteObjectField("line")
			stream.WriteUint(location.Line)
			stream.WriteMore()
			stream.WriteObjectField("column")
			stream.WriteUint(location.Column)
			stream.WriteObjectEnd()
			if i != numLocations-1 {
				stream.WriteMore()
			}
		}
		stream.WriteArrayEnd()
	}

	numExtensions := len(err.Extensions)
	if numExtensions > 0 || len(err.Code) > 0 {
		stream.WriteMore()
		stream.WriteObjectField("extensions")
		stream.WriteObjectStart()
		first := true
		if len(err.Code) > 0 {
			stream.WriteObjectField("code")
			stream.WriteString(string(err.Code))
			first = false
		}
		for k, v := range err.Extensions {
			if k == "code" && len(err.Code) > 0 {
				continue
			}
			if !first {
				stream.WriteMore()
			}
			stream.WriteObjectField(k)
			stream.WriteVal(v)
			first = false
		}
		stream.WriteObjectEnd()
	}

	stream.WriteObjectEnd()
}

// Errors wraps a list of Error. Intentionally wrapped in a struct instead of a simple alias to
// []*Error (i.e., "type Errors []*Error") to enforce error checks to use errs.HaveOccurred()
// instead of (errs != nil) (errs may be an empty array which should be treat as no error).
type Errors struct {
	Errors []*Error
}

// ErrorsOf is an utility function to constructs an Errors value. It takes arguments in one of the
// form otherwise it panics:
//
// 1. An array of *graphql.Error's; or
// 2. Arguments that can be taken by NewError to construct an Error value; That is, a string
//    specified the error message followed by other error context (e.g., locations).
// 3. An array of *graphql.Error's followed by arguments that can be taken by NewError.
func ErrorsOf(args ...interface{}) Errors {
	var errs Errors
	for i, arg := range args {
		switch arg := arg.(type) {
		case error:
			errs.Append(arg)

		case string:
			errs.Emplace(arg, args[(i+1):]...)
			return errs

		default:
			panic("Errors.Emplace: bad call")
		}
	}
	return errs
}

// NoErrors constructs an empty Errors.
func NoErrors() Errors {
	return Errors{}
}

// Emplace constructs an Error from arguments and append to the errs. (We borrowed the name from
// C++'s std::list::emaplce.) It updates the list in the receiving Errors object (note about the
// pointer receiver). Note that it would panic if unsupported argument is supplied in args.
func (errs *Errors) Emplace(message string, args ...interface{}) {
	// Construct an Error value from arguments and append to the list.
	errs.Append(NewError(message, args...))
}

// Append appends list of Error's to the end of the Errors. Note that the given error must be an
// graphql.Error otherwise it panics. The update is occurred in-place to the given Errors.
func (errs *Errors) Append(e ...error) {
	for _, err := range e {
		// The type assertion may fail resulting a panic if args contains unsupported type of value
		// (in which NewError will return an error built from fmt.Errorf).
		errs.Errors = append(errs.Errors, err.(*Error))
	}
}

// AppendErrors takes a list of Errors's and pulls every Error in each Errors to append to "errs".
// The update is occurred in-place to the given Errors.
func (errs *Errors) AppendErrors(e ...Errors) {
	for _, err := range e {
		errs.Errors = append(errs.Errors, err.Errors...)
	}
}

// HaveOccurred returns true if some errors exist. Use this instead of relying on "errs != nil" for
// checking existence of error because errs may be an empty array.
func (errs Errors) HaveOccurred() bool {
	return len(errs.Errors) > 0
}

// List returns the errors as a slice of Go error values.
func (errs Errors) List() []error {
	if len(errs.Errors) == 0 {
		return nil
	}
	list := make([]error, len(errs.Errors))
	for i, err := range errs.Errors {
		list[i] = err
	}
	return list
}

func init() {
	jsoniter.RegisterTypeEncoder("graphql.Error", errorMarshaller{})
}
