// Copyright 2021 The restify Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package failure

import (
	"strconv"

	"github.com/ljtfreitas/java-restify-sub003/status"
)

// A Kind identifies one member of the failure taxonomy.
//
// Every Kind except Unhandled corresponds to exactly one HTTP status
// code. Unhandled is the catch-all for every other error status,
// including non-standard codes.
//
// Kind implements error so that it can be used as an errors.Is target:
//
//	if errors.Is(err, failure.NotFound) {
//		...
//	}
type Kind int

const (
	// Unhandled is the generic failure for error statuses that have no
	// dedicated Kind.
	Unhandled Kind = iota
	BadRequest
	Unauthorized
	Forbidden
	NotFound
	MethodNotAllowed
	NotAcceptable
	ProxyAuthenticationRequired
	RequestTimeout
	Conflict
	Gone
	LengthRequired
	PreconditionFailed
	PayloadTooLarge
	URITooLong
	UnsupportedMediaType
	RangeNotSatisfiable
	ExpectationFailed
	InternalServerError
	NotImplemented
	BadGateway
	ServiceUnavailable
	GatewayTimeout
	HTTPVersionNotSupported
	// kindSentinel provides the total number of kinds.
	kindSentinel
)

var kindNames = [...]string{
	"Unhandled",
	"BadRequest",
	"Unauthorized",
	"Forbidden",
	"NotFound",
	"MethodNotAllowed",
	"NotAcceptable",
	"ProxyAuthenticationRequired",
	"RequestTimeout",
	"Conflict",
	"Gone",
	"LengthRequired",
	"PreconditionFailed",
	"PayloadTooLarge",
	"URITooLong",
	"UnsupportedMediaType",
	"RangeNotSatisfiable",
	"ExpectationFailed",
	"InternalServerError",
	"NotImplemented",
	"BadGateway",
	"ServiceUnavailable",
	"GatewayTimeout",
	"HTTPVersionNotSupported",
}

// kindCodes is the status code to Kind lookup table. Codes absent from
// the table map to Unhandled.
var kindCodes = map[status.Code]Kind{
	400: BadRequest,
	401: Unauthorized,
	403: Forbidden,
	404: NotFound,
	405: MethodNotAllowed,
	406: NotAcceptable,
	407: ProxyAuthenticationRequired,
	408: RequestTimeout,
	409: Conflict,
	410: Gone,
	411: LengthRequired,
	412: PreconditionFailed,
	413: PayloadTooLarge,
	414: URITooLong,
	415: UnsupportedMediaType,
	416: RangeNotSatisfiable,
	417: ExpectationFailed,
	500: InternalServerError,
	501: NotImplemented,
	502: BadGateway,
	503: ServiceUnavailable,
	504: GatewayTimeout,
	505: HTTPVersionNotSupported,
}

var kindStatus = func() [kindSentinel]status.Code {
	var a [kindSentinel]status.Code
	for code, k := range kindCodes {
		a[k] = code
	}
	return a
}()

// KindOf returns the Kind for a status code. Any code without a
// dedicated Kind, including success codes, yields Unhandled.
func KindOf(code status.Code) Kind {
	if k, ok := kindCodes[code]; ok {
		return k
	}
	return Unhandled
}

// Kinds returns every Kind, Unhandled first.
func Kinds() []Kind {
	kinds := make([]Kind, kindSentinel)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// Status returns the status code the Kind stands for, or zero for
// Unhandled.
func (k Kind) Status() status.Code {
	if k < 0 || k >= kindSentinel {
		return 0
	}
	return kindStatus[k]
}

// String returns the name of the Kind.
func (k Kind) String() string {
	if k < 0 || k >= kindSentinel {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Error makes Kind usable as an errors.Is target.
func (k Kind) Error() string {
	return "restify/failure: " + k.String()
}
