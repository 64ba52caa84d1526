// Package rules holds the analysis rules and the model they share.
//
// A rule belongs to one of three variants: it scans the token stream, visits
// the parse tree, or matches node patterns (see Kind). Rules are built from
// Params by a Factory, are immutable afterwards and may check any number of
// documents concurrently. Check creates its own diag.Storage per call.
package rules
