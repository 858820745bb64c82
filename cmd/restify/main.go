// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command restify issues resilient HTTP requests.
//
//	restify get https://example.com/widgets --attempts 3 --timeout 10s
package main

import "github.com/ljtfreitas/java-restify-sub003/internal/cli"

func main() {
	cli.Execute()
}
