// SPDX-License-Identifier: MIT

package sparseio

import (
	"errors"
	"fmt"
)

// ErrFormat is matched (errors.Is) by every grammar violation Parse reports.
var ErrFormat = errors.New("sparseio: wrong input format")

// FormatError describes a rejected input line.
//   - Line is the 1-based physical line number (past the last line for a
//     missing header).
//   - Text is the trimmed offending line, empty when the input ended early.
//   - Err is the underlying cause (strconv error, sparse sentinel), if any.
type FormatError struct {
	Line   int
	Text   string
	Reason string
	Err    error
}

func newFormatError(line int, text, reason string, cause error) *FormatError {
	return &FormatError{Line: line, Text: text, Reason: reason, Err: cause}
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("%s: line %d: %s", ErrFormat.Error(), e.Line, e.Reason)
	if e.Text != "" {
		msg += fmt.Sprintf(" (%q)", e.Text)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Unwrap exposes both ErrFormat and the cause to errors.Is / errors.As.
func (e *FormatError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFormat}
	}

	return []error{ErrFormat, e.Err}
}
