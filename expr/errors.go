// Copyright 2024 The Gcs2d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import "github.com/cpmech/gosl/io"

// NumericError reports a domain violation encountered while evaluating an
// expression: sqrt of a negative number, division by zero, acos outside
// [-1,1], or a derivative singularity arising from one of those. Evaluation
// never silently produces NaN; it returns one of these instead.
type NumericError struct {
	Op  string
	Msg string
}

func (e *NumericError) Error() string {
	return io.Sf("expr: numeric error in %s: %s", e.Op, e.Msg)
}

func newNumericError(op, format string, args ...interface{}) *NumericError {
	return &NumericError{Op: op, Msg: io.Sf(format, args...)}
}
