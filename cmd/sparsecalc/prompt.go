// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/katalvlaran/sparsecalc/calc"
)

const (
	promptText  = "Enter an operation (+, -, *): "
	invalidText = "Invalid operation. Please enter +, - or *"
)

// errNoOperation is returned when input ends before a valid operator is read.
var errNoOperation = errors.New("no operation entered")

// promptOperation asks for an operator on out until a valid one is read from in.
func promptOperation(in io.Reader, out io.Writer) (calc.Op, error) {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, promptText)
		if !sc.Scan() {
			fmt.Fprintln(out)
			if err := sc.Err(); err != nil {
				return "", fmt.Errorf("read operation: %w", err)
			}
			return "", errNoOperation
		}
		op, err := calc.ParseOp(sc.Text())
		if err == nil {
			return op, nil
		}
		fmt.Fprintln(out, invalidText)
	}
}
