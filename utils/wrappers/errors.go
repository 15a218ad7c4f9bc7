// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

// Package wrappers provides small helpers shared across packages.
package wrappers

// Errs collects errors from a sequence of fallible setup steps, reporting
// only the first one encountered. Used during codec registration and
// component wiring, where a dozen near-identical calls would otherwise
// each need their own error check.
type Errs struct {
	Err error
}

// Add records err if this is the first error seen.
func (errs *Errs) Add(errors ...error) {
	if errs.Err != nil {
		return
	}
	for _, err := range errors {
		if err != nil {
			errs.Err = err
			return
		}
	}
}

func (errs *Errs) Errored() bool {
	return errs.Err != nil
}
