// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies errors raised while performing an HTTP
// request attempt as I/O failures or not. Package retry builds its
// IOFailure condition on top of it, and it is equally handy for
// bucketing error metrics.
//
// Package transient depends only on the standard library, so it can be
// imported on its own without dragging in the rest of the module.
package transient
