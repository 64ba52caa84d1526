// Package diag defines the diagnostic model shared by the rules, the engine
// and every output surface.
//
// A Diagnostic carries the rule Code, a Severity, a message, the editor Range
// (0-based lines, UTF-16 columns) and the byte Span of the same location.
// Related notes add context; Hint tells quick fixes what is missing without
// parsing message text.
//
// Rules emit through a Storage bound to one rule; the engine gathers the
// results of all rules of a document into a Bag. Rendering lives in
// internal/diagfmt, quick fixes in internal/fix.
//
// Messages are looked up in a small ru/en catalog (see Messages).
package diag
