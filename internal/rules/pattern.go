package rules

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// compile builds a case-insensitive pattern with Java-like syntax.
func compile(pattern string) (*regexp2.Regexp, error) {
	return regexp2.Compile(pattern, regexp2.IgnoreCase)
}

// mustCompile is for program constants only.
func mustCompile(pattern string) *regexp2.Regexp {
	return regexp2.MustCompile(pattern, regexp2.IgnoreCase)
}

// find reports whether re matches somewhere in s.
func find(re *regexp2.Regexp, s string) bool {
	if re == nil {
		return false
	}
	ok, err := re.MatchString(s)
	return err == nil && ok
}

// lexemeSet compiles a space-separated list of lexemes into a whole-token
// matcher: single characters go to a character class, longer lexemes to an
// alternation. An empty list yields nil.
func lexemeSet(list string) (*regexp2.Regexp, error) {
	fields := strings.Fields(list)
	if len(fields) == 0 {
		return nil, nil
	}
	var single strings.Builder
	var alts []string
	for _, f := range fields {
		if len([]rune(f)) == 1 {
			single.WriteString(escapeClass(f))
			continue
		}
		alts = append(alts, "(?:"+regexp2.Escape(f)+")")
	}
	if single.Len() > 0 {
		alts = append([]string{"[" + single.String() + "]"}, alts...)
	}
	return compile("^(?:" + strings.Join(alts, "|") + ")$")
}

func escapeClass(s string) string {
	switch s {
	case `\`, `]`, `[`, `^`, `-`:
		return `\` + s
	}
	return s
}
