package diag

import (
	"bslint/internal/source"
)

// FixHint tells a quick fix what is wrong without parsing the message.
type FixHint uint8

const (
	HintNone FixHint = iota
	HintMissingLeft
	HintMissingRight
	HintMissingBoth
)

func (h FixHint) String() string {
	switch h {
	case HintMissingLeft:
		return "missing-left"
	case HintMissingRight:
		return "missing-right"
	case HintMissingBoth:
		return "missing-both"
	}
	return "none"
}

// Note is related information attached to a diagnostic.
type Note struct {
	Range source.Range `msgpack:"r"`
	Span  source.Span  `msgpack:"-"`
	Msg   string       `msgpack:"m"`
}

type Diagnostic struct {
	Severity Severity     `msgpack:"sev"`
	Code     Code         `msgpack:"code"`
	Message  string       `msgpack:"msg"`
	Range    source.Range `msgpack:"rng"`
	Span     source.Span  `msgpack:"span"`
	Related  []Note       `msgpack:"rel,omitempty"`
	Hint     FixHint      `msgpack:"hint,omitempty"`
}
