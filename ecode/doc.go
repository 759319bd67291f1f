// Package ecode defines the business error codes returned by the API and a
// typed error carrying one of them.
//
// Codes follow the numbering scheme:
//   - 0: Success (OK)
//   - -100 to -199: Authentication errors
//   - -400 to -499: Request and resource errors
//   - -500+: Server errors
//
// Services return *Error values built with the constructors:
//
//	return nil, ecode.NotFoundError("Post not found")
//
// and the response layer maps them to HTTP statuses with ToHTTPStatus:
//
//	status := ecode.ToHTTPStatus(ecode.NotFound) // 404
//
// Anything that is not an *Error is treated as ServerErr by the response
// layer, so callers only construct codes they want the client to see.
package ecode
