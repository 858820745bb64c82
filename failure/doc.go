// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package failure maps HTTP error responses to a typed failure taxonomy.

Every error response is represented by an *Error whose Kind names one
member of the taxonomy: one Kind per recognised status code (400
BadRequest, 404 NotFound, 503 ServiceUnavailable, and so on) plus
Unhandled for every other error status.

Construct failures with New:

	err := failure.New(failure.Request{Method: "GET", URL: u}, 404, header, body)

Inspect them with the errors package:

	var fe *failure.Error
	if errors.As(err, &fe) {
		log.Printf("status %d, body %q", fe.Status, fe.Body)
	}
	if errors.Is(err, failure.NotFound) {
		...
	}
*/
package failure
