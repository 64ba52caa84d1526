package diag

// Code identifies the rule that produced a diagnostic.
type Code uint16

const (
	UnknownCode Code = iota
	CodeParseError
	CodeCommentedCode
	CodeMissingSpace
	CodeUsingHardcodePath
	CodeUsingThisForm
	CodeUsingServiceTag
)

var codeIDs = [...]string{
	UnknownCode:           "Unknown",
	CodeParseError:        "ParseError",
	CodeCommentedCode:     "CommentedCode",
	CodeMissingSpace:      "MissingSpace",
	CodeUsingHardcodePath: "UsingHardcodePath",
	CodeUsingThisForm:     "UsingThisForm",
	CodeUsingServiceTag:   "UsingServiceTag",
}

// ID is the stable rule identifier used in configuration and reports.
func (c Code) ID() string {
	if int(c) < len(codeIDs) {
		return codeIDs[c]
	}
	return codeIDs[UnknownCode]
}

func (c Code) String() string {
	return c.ID()
}

// LookupCode resolves a rule identifier.
func LookupCode(id string) (Code, bool) {
	for c, name := range codeIDs {
		if c != int(UnknownCode) && name == id {
			return Code(c), true
		}
	}
	return UnknownCode, false
}

// Codes returns every known rule code in declaration order.
func Codes() []Code {
	out := make([]Code, 0, len(codeIDs)-1)
	for c := range codeIDs {
		if c != int(UnknownCode) {
			out = append(out, Code(c))
		}
	}
	return out
}
