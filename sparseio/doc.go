// SPDX-License-Identifier: MIT

// Package sparseio reads and writes sparse matrices in the calculator's text
// format (rows=/cols= headers followed by "(row, col, value)" lines).
package sparseio
