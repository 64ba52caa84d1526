package rules

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"

	"bslint/internal/diag"
)

const defaultServiceTags = `todo|fixme|!!|mrg|@|отладка|debug|для\s*отладки|(\{\{|\}\})КОНСТРУКТОР_|(\{\{|\}\})MRG`

// UsingServiceTag reports comments carrying service tags such as TODO.
type UsingServiceTag struct {
	tokenScan
	pattern *regexp2.Regexp
}

func NewUsingServiceTag(params Params) (Rule, error) {
	tags, err := params.String("serviceTags", defaultServiceTags)
	if strings.TrimSpace(tags) == "" {
		tags = defaultServiceTags
	}
	re, cerr := tagPattern(tags)
	if cerr != nil {
		err = fmt.Errorf("parameter serviceTags: %w", cerr)
		re, _ = tagPattern(defaultServiceTags)
	}
	return &UsingServiceTag{pattern: re}, err
}

// tagPattern: "//", пробелы (possessive), затем один из тегов.
func tagPattern(tags string) (*regexp2.Regexp, error) {
	return compile(`//(?>\s*)(` + tags + `)`)
}

func (r *UsingServiceTag) Info() Info {
	return Info{
		Code:     diag.CodeUsingServiceTag,
		Kind:     r.Kind(),
		Type:     TypeCodeSmell,
		Severity: SeverityInfo,
		Minutes:  0,
		Tags:     []Tag{TagBadPractice},
		Params: []ParamInfo{
			{Name: "serviceTags", Default: defaultServiceTags, Description: "Служебные теги"},
		},
	}
}

func (r *UsingServiceTag) Check(ctx *Context) []diag.Diagnostic {
	info := r.Info()
	store := diag.NewStorage(info.Code, info.DiagSeverity(), "")
	for _, c := range ctx.Snapshot.Comments {
		m, err := r.pattern.FindStringMatch(c.Text)
		if err != nil || m == nil {
			continue
		}
		tag := m.GroupByNumber(1).String()
		store.AddToken(c, diag.WithMessage(ctx.Messages.Get(info.Code, "message", tag)))
	}
	return store.Diagnostics()
}
