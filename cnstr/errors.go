// Copyright 2024 The Gcs2d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cnstr

import "github.com/cpmech/gosl/io"

// DegenerateError reports that a constraint's geometry cannot be evaluated
// as given, e.g. an Angle constraint on a zero-length line segment.
type DegenerateError struct {
	Kind string
	Msg  string
}

func (e *DegenerateError) Error() string {
	return io.Sf("cnstr: degenerate %s constraint: %s", e.Kind, e.Msg)
}

func newDegenerateError(kind, format string, args ...interface{}) *DegenerateError {
	return &DegenerateError{Kind: kind, Msg: io.Sf(format, args...)}
}
