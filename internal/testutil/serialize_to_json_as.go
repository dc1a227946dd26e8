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

package testutil

import (
	"fmt"
	"reflect"

	jsoniter "github.com/json-iterator/go"
	"github.com/onsi/gomega/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type serializeToJSONAsMatcher struct {
	expected interface{}
}

// SerializeToJSONAs returns a matcher that encodes actual and expected into JSON, decodes both back
// into values of the expected type and compares the results. Values like link.Ref that encode as a
// plain JSON string can be matched against a string.
func SerializeToJSONAs(expected interface{}) types.GomegaMatcher {
	return serializeToJSONAsMatcher{
		expected: expected,
	}
}

func (matcher serializeToJSONAsMatcher) roundTrip(v interface{}) (interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	decoded := reflect.New(reflect.TypeOf(matcher.expected))
	if err := json.Unmarshal(data, decoded.Interface()); err != nil {
		return nil, err
	}
	return decoded.Elem().Interface(), nil
}

// Match implements types.GomegaMatcher.
func (matcher serializeToJSONAsMatcher) Match(actual interface{}) (success bool, err error) {
	decodedActual, err := matcher.roundTrip(actual)
	if err != nil {
		return false, fmt.Errorf("SerializeToJSONAs cannot encode %#v as %T: %s", actual, matcher.expected, err)
	}

	decodedExpected, err := matcher.roundTrip(matcher.expected)
	if err != nil {
		return false, fmt.Errorf("SerializeToJSONAs cannot encode expected value %#v: %s", matcher.expected, err)
	}

	return reflect.DeepEqual(decodedActual, decodedExpected), nil
}

// FailureMessage implements types.GomegaMatcher.
func (matcher serializeToJSONAsMatcher) FailureMessage(actual interface{}) (message string) {
	return fmt.Sprintf("Expected\n\t%#v\nto serialize to JSON value as\n\t%#v", actual, matcher.expected)
}

// NegatedFailureMessage implements types.GomegaMatcher.
func (matcher serializeToJSONAsMatcher) NegatedFailureMessage(actual interface{}) (message string) {
	return fmt.Sprintf("Expected\n\t%#v\nnot to serialize to JSON value as\n\t%#v", actual, matcher.expected)
}
