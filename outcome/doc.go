// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package outcome defines Outcome, the two-variant result of one logical
// HTTP call after all retries.
//
// A caller either reads the result directly:
//
//	body, err := o.Body()
//
// or first recovers from expected failures, chaining as many recovery
// steps as needed:
//
//	o = o.RecoverKind(failure.NotFound, func(*failure.Error) (string, error) {
//		return "default", nil
//	}).RecoverIf(isMaintenance, fallback)
package outcome
