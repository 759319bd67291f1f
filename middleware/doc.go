// Package middleware provides the gin middleware shared by every route:
// trace ids, request logging, panic recovery and CORS.
package middleware
