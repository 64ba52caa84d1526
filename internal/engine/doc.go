// Package engine runs the configured rules over document snapshots.
//
// An Engine owns the rule set built from Config, isolates rule failures,
// caches results per (document, content, configuration) and collects
// quick fixes. It is safe for concurrent use.
package engine
