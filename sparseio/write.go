// SPDX-License-Identifier: MIT

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

// Write emits m in the text format: the rows= and cols= headers followed by
// one "(<row>, <col>, <value>)" line per stored entry in row-major order.
func Write(w io.Writer, m *sparse.Sparse) error {
	if err := sparse.ValidateNotNil(m); err != nil {
		return fmt.Errorf("sparseio: write: %w", err)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s%d\n%s%d\n", rowsPrefix, m.Rows(), colsPrefix, m.Cols())
	for _, e := range m.Entries() {
		fmt.Fprintf(bw, "(%d, %d, %s)\n", e.Row, e.Col, FormatValue(e.Value))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("sparseio: write: %w", err)
	}

	return nil
}

// Format returns the text form of m.
func Format(m *sparse.Sparse) (string, error) {
	var sb strings.Builder
	if err := Write(&sb, m); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// WriteFile creates (or truncates) path and writes m into it.
func WriteFile(path string, m *sparse.Sparse) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sparseio: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("sparseio: close %s: %w", path, cerr)
		}
	}()

	return Write(f, m)
}

// FormatValue renders v with the shortest digits that parse back to v.
// Magnitudes in [1e-6, 1e21) print as plain decimals ("4", "0.25"),
// anything else uses exponent form ("1e-07", "1e+21").
func FormatValue(v float64) string {
	if a := math.Abs(v); a != 0 && (a < 1e-6 || a >= 1e21) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}
