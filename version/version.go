// Package version carries the release string stamped into the relay
// information document and startup log line.
package version

// V is the current version of okra.
var V = "v0.3.1"
