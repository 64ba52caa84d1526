// Package recognizer estimates how much a line of text looks like program
// code. A Footprint lists scored detectors; CodeRecognizer combines their
// verdicts and compares the result with a threshold.
package recognizer
