// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package board

import (
	"context"
	"fmt"
	"strings"

	"sketchkit.sh/log"
)

// Selection maps menu categories to the user's chosen option for each,
// preserving the order in which categories were first given.
type Selection struct {
	categories []string
	choices    map[string]string
}

func NewSelection() *Selection {
	return &Selection{
		choices: map[string]string{},
	}
}

// ParseSelection parses a raw comma-separated listing of category:choice
// pairs, e.g. "cpu:atmega328,speed:16MHz".  Pairs lacking a ':' separator
// are dropped silently and a later pair overrides an earlier one for the
// same category.
func ParseSelection(raw string) *Selection {
	sel := NewSelection()
	sel.Parse(raw)
	return sel
}

// Parse adds the pairs of a raw comma-separated listing to the selection,
// with the same leniency as ParseSelection.
func (sel *Selection) Parse(raw string) *Selection {
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		category, choice, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}

		sel.Set(strings.TrimSpace(category), strings.TrimSpace(choice))
	}

	return sel
}

// Set records the choice for a category, overriding any previous choice.
func (sel *Selection) Set(category, choice string) *Selection {
	if _, ok := sel.choices[category]; !ok {
		sel.categories = append(sel.categories, category)
	}
	sel.choices[category] = choice

	return sel
}

// Get returns the recorded choice for a category.
func (sel *Selection) Get(category string) (string, bool) {
	if sel == nil {
		return "", false
	}

	choice, ok := sel.choices[category]
	return choice, ok
}

func (sel *Selection) Len() int {
	if sel == nil {
		return 0
	}
	return len(sel.categories)
}

func (sel *Selection) String() string {
	if sel == nil {
		return ""
	}

	pairs := make([]string, 0, len(sel.categories))
	for _, category := range sel.categories {
		pairs = append(pairs, category+":"+sel.choices[category])
	}

	return strings.Join(pairs, ",")
}

// InvalidChoice records one rejected menu selection.
type InvalidChoice struct {
	Category string
	Choice   string
	Valid    []string
}

// InvalidChoiceError reports every invalid selection found while resolving a
// profile's menu.  All categories are validated before resolution fails so
// the user sees the complete list of mistakes at once.
type InvalidChoiceError struct {
	Invalid []InvalidChoice
}

func (e *InvalidChoiceError) Error() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%d invalid menu choice(s):", len(e.Invalid))
	for _, ic := range e.Invalid {
		fmt.Fprintf(&sb, "\n  %q is not a valid choice for menu %q (valid choices: %s)",
			ic.Choice, ic.Category, strings.Join(ic.Valid, ", "))
	}

	return sb.String()
}

// Resolve applies a user's menu selection to the board profile and returns a
// new board whose profile carries every selected choice's overrides.  The
// receiver is not mutated.
//
// Categories the user did not select fall back to their first declared
// choice with a logged notice.  Selection pairs naming unknown categories
// are ignored.  Invalid choices are collected across all categories and
// reported together as an *InvalidChoiceError, in which case no overrides
// are applied at all.
func (b *Board) Resolve(ctx context.Context, sel *Selection) (*Board, error) {
	menu := b.Menu()
	if menu == nil {
		return b, nil
	}

	overlay := NewTree()
	var invalid []InvalidChoice

	for _, category := range menu.Keys() {
		choices := menu.Sub(category)
		if choices.Len() == 0 {
			continue
		}

		chosen, selected := sel.Get(category)
		if selected && !choices.Has(chosen) {
			invalid = append(invalid, InvalidChoice{
				Category: category,
				Choice:   chosen,
				Valid:    choices.Keys(),
			})
			continue
		}

		if !selected {
			chosen = choices.Keys()[0]
			log.G(ctx).Warnf("no choice selected for menu %q, defaulting to %q", category, chosen)
		}

		// A choice declared as a bare scalar carries a display name but no
		// overrides.
		if fragment := choices.Sub(chosen); fragment != nil {
			overlay = overlay.Merge(fragment)
		}
	}

	if len(invalid) > 0 {
		return nil, &InvalidChoiceError{Invalid: invalid}
	}

	// The name key of a choice fragment is administrative and must not leak
	// into the resolved profile, where it would clobber the board name.
	overlay.Delete("name")

	return New(b.ID, b.Tree.Merge(overlay)), nil
}
