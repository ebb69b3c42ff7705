// SPDX-License-Identifier: MIT

// Package sparseio - text format parser.
//
// Grammar (one item per line, surrounding whitespace trimmed, blank lines ignored):
//
//	rows=<integer>
//	cols=<integer>
//	(<integer>, <integer>, <float>)
//	...
//
// Behavior highlights:
//   - The two headers are the first two non-blank lines, in that order.
//   - Entries with value 0 are skipped: they neither store nor delete anything.
//   - Duplicate coordinates: the last nonzero occurrence wins.
//   - Coordinates are not bounds-checked unless WithStrictBounds is given.
package sparseio

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/sparsecalc/sparse"
)

const (
	rowsPrefix = "rows="
	colsPrefix = "cols="

	// maxLineBytes bounds a single input line for the scanner.
	maxLineBytes = 1 << 20
)

// ParseOption configures Parse.
type ParseOption func(*parseOptions)

type parseOptions struct {
	strictBounds bool
}

// WithStrictBounds rejects entries whose coordinates fall outside the
// declared rows×cols shape. The FormatError wraps sparse.ErrOutOfRange.
func WithStrictBounds() ParseOption {
	return func(o *parseOptions) { o.strictBounds = true }
}

// lineReader yields trimmed non-blank lines together with their 1-based
// physical line numbers.
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func newLineReader(r io.Reader) *lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	return &lineReader{sc: sc}
}

// next returns the next non-blank trimmed line. ok is false at EOF.
func (lr *lineReader) next() (text string, ok bool, err error) {
	for lr.sc.Scan() {
		lr.line++
		text = strings.TrimSpace(lr.sc.Text())
		if text != "" {
			return text, true, nil
		}
	}
	if err = lr.sc.Err(); err != nil {
		return "", false, fmt.Errorf("sparseio: read line %d: %w", lr.line+1, err)
	}

	return "", false, nil
}

// Parse reads a matrix in the text format from r.
//
// Errors:
//   - *FormatError (errors.Is(err, ErrFormat)) for any grammar violation.
//   - I/O errors from r, wrapped.
//
// Complexity: O(lines) plus map inserts.
func Parse(r io.Reader, opts ...ParseOption) (*sparse.Sparse, error) {
	var o parseOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	lr := newLineReader(r)
	rows, err := parseHeader(lr, rowsPrefix)
	if err != nil {
		return nil, err
	}
	cols, err := parseHeader(lr, colsPrefix)
	if err != nil {
		return nil, err
	}

	m, err := sparse.New(rows, cols)
	if err != nil {
		// Unreachable: parseHeader rejects negatives.
		return nil, err
	}

	for {
		text, ok, err := lr.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		ent, err := parseEntry(text, lr.line)
		if err != nil {
			return nil, err
		}
		if o.strictBounds && !m.InBounds(ent.Row, ent.Col) {
			return nil, newFormatError(lr.line, text,
				fmt.Sprintf("coordinate outside %dx%d", rows, cols), sparse.ErrOutOfRange)
		}
		if ent.Value == 0 {
			continue
		}
		m.Set(ent.Row, ent.Col, ent.Value)
	}

	return m, nil
}

// ParseString is Parse over an in-memory string.
func ParseString(s string, opts ...ParseOption) (*sparse.Sparse, error) {
	return Parse(strings.NewReader(s), opts...)
}

// ParseFile opens path, parses it and closes it.
func ParseFile(path string, opts ...ParseOption) (*sparse.Sparse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sparseio: open %s: %w", path, err)
	}
	defer f.Close()

	m, err := Parse(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("sparseio: %s: %w", path, err)
	}

	return m, nil
}

// parseHeader consumes the next non-blank line and expects "<prefix><int>".
func parseHeader(lr *lineReader, prefix string) (int, error) {
	key := strings.TrimSuffix(prefix, "=")
	text, ok, err := lr.next()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, newFormatError(lr.line+1, "", "missing "+key+" header", nil)
	}
	if !strings.HasPrefix(text, prefix) {
		return 0, newFormatError(lr.line, text, "expected "+prefix+"<integer>", nil)
	}
	n, err := strconv.Atoi(strings.TrimSpace(text[len(prefix):]))
	if err != nil {
		return 0, newFormatError(lr.line, text, "invalid "+key+" value", err)
	}
	if n < 0 {
		return 0, newFormatError(lr.line, text, "negative "+key+" value", sparse.ErrBadShape)
	}

	return n, nil
}

// parseEntry parses "(<int>, <int>, <float>)".
func parseEntry(text string, line int) (sparse.Entry, error) {
	if len(text) < 2 || text[0] != '(' || text[len(text)-1] != ')' {
		return sparse.Entry{}, newFormatError(line, text, "entry must be wrapped in parentheses", nil)
	}
	fields := strings.Split(text[1:len(text)-1], ",")
	if len(fields) != 3 {
		return sparse.Entry{}, newFormatError(line, text,
			fmt.Sprintf("entry must have 3 fields, got %d", len(fields)), nil)
	}

	row, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return sparse.Entry{}, newFormatError(line, text, "invalid row index", err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return sparse.Entry{}, newFormatError(line, text, "invalid column index", err)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
	if err != nil {
		return sparse.Entry{}, newFormatError(line, text, "invalid value", err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sparse.Entry{}, newFormatError(line, text, "value must be finite", sparse.ErrNaNInf)
	}

	return sparse.Entry{Row: row, Col: col, Value: v}, nil
}
