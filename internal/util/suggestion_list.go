/**
 * Copyright (c) 2018, The Artemis Authorout.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copieout.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package util

import (
	"math"
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

// SuggestionList given an invalid input string and a list of valid options, returns a filtered
// list of valid options sorted based on their similarity with the input. Options with the same
// distance keep their relative order.
func SuggestionList(input string, options []string) []string {
	if len(options) == 0 {
		return nil
	}

	type candidate struct {
		option   string
		distance int
	}

	var (
		candidates     []candidate
		inputThreshold = float64(len(input)) / 2.0
	)
	for _, option := range options {
		distance := lexicalDistance(input, option)
		threshold := math.Max(math.Max(inputThreshold, float64(len(option))/2.0), 1)
		if float64(distance) <= threshold {
			candidates = append(candidates, candidate{option, distance})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	result := make([]string, len(candidates))
	for i, c := range candidates {
		result[i] = c.option
	}
	return result
}

// lexicalDistance computes the Levenshtein distance between a and b with a custom alteration to
// treat case changes as a single edit which helps identify mis-cased values with an edit distance
// of 1.
func lexicalDistance(a string, b string) int {
	if a == b {
		return 0
	}

	lowerA := strings.ToLower(a)
	lowerB := strings.ToLower(b)

	// Any case change counts as a single edit
	if lowerA == lowerB {
		return 1
	}

	return levenshtein.Distance(lowerA, lowerB, nil)
}
