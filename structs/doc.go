// Package structs holds the stored documents of the forum, the request
// bodies of every action and the populated views returned to clients.
//
// Documents are persisted with camelCase BSON names and encoded to JSON
// with the same names, ids rendered as hex strings.
package structs
