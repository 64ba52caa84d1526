package recognizer

import (
	"math"
	"strings"
	"unicode"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/cases"
)

// Detector finds one kind of code evidence in a line. Scan returns the number
// of matches; each match independently raises the line's score by Probability.
type Detector interface {
	Scan(line string) int
	Probability() float64
}

// Recognition turns a detector's matches in line into a probability.
func Recognition(d Detector, line string) float64 {
	matches := d.Scan(line)
	if matches <= 0 {
		return 0
	}
	return 1 - math.Pow(1-d.Probability(), float64(matches))
}

// EndWithDetector matches lines whose last non-space character is one of endings.
type EndWithDetector struct {
	prob    float64
	endings string
}

func NewEndWithDetector(prob float64, endings ...rune) *EndWithDetector {
	return &EndWithDetector{prob: prob, endings: string(endings)}
}

func (d *EndWithDetector) Probability() float64 { return d.prob }

func (d *EndWithDetector) Scan(line string) int {
	trimmed := strings.TrimRightFunc(line, unicode.IsSpace)
	if trimmed == "" {
		return 0
	}
	last := []rune(trimmed)
	if strings.ContainsRune(d.endings, last[len(last)-1]) {
		return 1
	}
	return 0
}

// KeywordsDetector counts words equal to one of the keywords, ignoring case.
type KeywordsDetector struct {
	prob     float64
	keywords map[string]struct{}
}

func NewKeywordsDetector(prob float64, keywords ...string) *KeywordsDetector {
	fold := cases.Fold()
	set := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		set[fold.String(kw)] = struct{}{}
	}
	return &KeywordsDetector{prob: prob, keywords: set}
}

func (d *KeywordsDetector) Probability() float64 { return d.prob }

func (d *KeywordsDetector) Scan(line string) int {
	// Caser хранит состояние, поэтому свой на каждый вызов
	fold := cases.Fold()
	n := 0
	for _, w := range words(line) {
		if _, ok := d.keywords[fold.String(w)]; ok {
			n++
		}
	}
	return n
}

// ContainsDetector counts occurrences of fragments in the line with all
// whitespace removed.
type ContainsDetector struct {
	prob      float64
	fragments []string
}

func NewContainsDetector(prob float64, fragments ...string) *ContainsDetector {
	return &ContainsDetector{prob: prob, fragments: fragments}
}

func (d *ContainsDetector) Probability() float64 { return d.prob }

func (d *ContainsDetector) Scan(line string) int {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, line)
	n := 0
	for _, f := range d.fragments {
		n += strings.Count(compact, f)
	}
	return n
}

// CamelCaseDetector matches a line containing a lower-case letter directly
// followed by an upper-case one: ИмяПеременной, someValue.
type CamelCaseDetector struct {
	prob float64
}

func NewCamelCaseDetector(prob float64) *CamelCaseDetector {
	return &CamelCaseDetector{prob: prob}
}

func (d *CamelCaseDetector) Probability() float64 { return d.prob }

func (d *CamelCaseDetector) Scan(line string) int {
	prevLower := false
	for _, r := range line {
		if prevLower && unicode.IsUpper(r) {
			return 1
		}
		prevLower = unicode.IsLower(r)
	}
	return 0
}

// PatternDetector matches a regular expression at most once per line.
type PatternDetector struct {
	prob float64
	re   *regexp2.Regexp
}

// NewPatternDetector panics on an invalid pattern; patterns are program constants.
func NewPatternDetector(prob float64, pattern string) *PatternDetector {
	return &PatternDetector{prob: prob, re: regexp2.MustCompile(pattern, regexp2.IgnoreCase)}
}

func (d *PatternDetector) Probability() float64 { return d.prob }

func (d *PatternDetector) Scan(line string) int {
	ok, err := d.re.MatchString(line)
	if err != nil || !ok {
		return 0
	}
	return 1
}

func words(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}
