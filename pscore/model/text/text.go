/*
   Copyright 2025 The PatternSaver Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package text provides the free-form text fields of a pattern: its title,
// its author and its effect notes.
//
// Length limits are counted in extended grapheme clusters (what a reader
// perceives as one character), so "🎛️" and "é" written with a combining
// accent count as one each. A value must contain at least one non-space
// character. Values are stored exactly as given, without trimming.
package text

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
	"patternsaver.dev/patterns/pscore/errors"
)

const (
	// TitleMaxLen is the maximum length of a Title, in grapheme clusters.
	TitleMaxLen = 100

	// AuthorMaxLen is the maximum length of an Author, in grapheme clusters.
	AuthorMaxLen = 50

	// EFXNotesMaxLen is the maximum length of EFXNotes, in grapheme clusters.
	EFXNotesMaxLen = 500

	previewLen = 32
)

// Length returns the number of grapheme clusters in s.
func Length(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// bounded validates s against the rules shared by every text field.
func bounded(typeName, noun, s string, maxLen int) error {
	n := Length(s)
	if strings.TrimSpace(s) != "" && n <= maxLen {
		return nil
	}
	return &errors.ValidationError{
		Type: typeName,
		Reason: fmt.Sprintf("%q is not a valid %s; expected 1 to %d characters, not all whitespace (got %d)",
			preview(s), noun, maxLen, n),
		Value: s,
	}
}

// preview shortens s for use inside error messages.
func preview(s string) string {
	if Length(s) <= previewLen {
		return s
	}
	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for i := 0; i < previewLen && g.Next(); i++ {
		b.WriteString(g.Str())
	}
	b.WriteString("...")
	return b.String()
}
