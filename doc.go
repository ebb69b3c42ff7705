// Package sparsecalc is a small calculator for sparse matrices stored in a
// plain-text coordinate format.
//
// What is in the box:
//
//	• sparse/    - dictionary-of-keys Sparse matrix, Add / Sub / Mul kernels
//	• sparseio/  - parser and serializer for the rows= / cols= / (r, c, v) format
//	• calc/      - operator selection (+, -, *) and the read → compute → write runner
//	• config/    - YAML configuration with environment overrides
//	• spy/       - sparsity pattern plots (png, svg, pdf) via gonum/plot
//	• cmd/sparsecalc - the command-line front end
//
// Input format:
//
//	rows=2
//	cols=2
//	(0, 0, 1)
//	(1, 1, 2)
//
// Only nonzero entries are stored; an entry with value 0 is treated as absent.
//
//	go install github.com/katalvlaran/sparsecalc/cmd/sparsecalc@latest
package sparsecalc
