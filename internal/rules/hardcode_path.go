package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"

	"bslint/internal/ast"
	"bslint/internal/diag"
	"bslint/internal/source"
)

// Шаблоны совместимы с Java-регулярками (look-ahead), поэтому regexp2.
const (
	patternPath = `^(?=\/).*|^(%.*%)(?=\\|\/|\/\/)|^(~)(?=\\|\/|\/\/)|(^([a-z]):(?=\\|\/\/(?![\x00-\x1F<>:"\/\\|?*])|\/(?![\x00-\x1F<>:"\/\\|?*])|$)|^\\(?=[\\\/][^\x00-\x1F<>:"\/\\|?*]+)|^(?=(\\|\/|\/\/)$)^\.(?=(\\|\/|\/\/)[^\x00-\x1F<>:"\/\\|?*]+))((\\|\/|\/\/)[^\x00-\x1F<>:"\/\\|?*]+|(\\|\/|\/\/)$)*()$`

	patternNetworkAddress = `(([0-9a-fA-F]{1,4}:){7,7}[0-9a-fA-F]{1,4}|([0-9a-fA-F]{1,4}:){1,7}:` +
		`|([0-9a-fA-F]{1,4}:){1,6}:[0-9a-fA-F]{1,4}|([0-9a-fA-F]{1,4}:){1,5}(:[0-9a-fA-F]{1,4}){1,2}|([0-9a-fA-F]{1,4}:)` +
		`{1,4}(:[0-9a-fA-F]{1,4}){1,3}|([0-9a-fA-F]{1,4}:){1,3}(:[0-9a-fA-F]{1,4}){1,4}|([0-9a-fA-F]{1,4}:){1,2}` +
		`(:[0-9a-fA-F]{1,4}){1,5}|[0-9a-fA-F]{1,4}:((:[0-9a-fA-F]{1,4}){1,6})|:((:[0-9a-fA-F]{1,4}){1,7}|:)` +
		`|fe80:(:[0-9a-fA-F]{0,4}){0,4}%[0-9a-zA-Z]{1,}|::(ffff(:0{1,4}){0,1}:){0,1}((25[0-5]|(2[0-4]|1{0,1}` +
		`[0-9]){0,1}[0-9])\.){3,3}(25[0-5]|(2[0-4]|1{0,1}[0-9]){0,1}[0-9])|([0-9a-fA-F]{1,4}:){1,4}:` +
		`((25[0-5]|(2[0-4]|1{0,1}[0-9]){0,1}[0-9])\.){3,3}(25[0-5]|(2[0-4]|1{0,1}[0-9]){0,1}[0-9]))` +
		`|((25[0-5]|(2[0-4]|1{0,1}[0-9]){0,1}[0-9])\.){3,3}(25[0-5]|(2[0-4]|1{0,1}[0-9]){0,1}[0-9])`

	patternURL      = `^(ftp|http|https):\/\/[^ "].*`
	patternAlphabet = `[A-zА-я]`

	defaultStdPathsUnix = `bin|boot|dev|etc|home|lib|lost\+found|misc|mnt|media|opt|proc|root|run|sbin|tmp|usr|var`
	defaultExclusion    = `Верси|Version|ЗапуститьПриложение|RunApp|Пространств|Namespace|Драйвер|Driver`

	// в классификаторах точек больше, чем в IPv4
	dotsInIPv4 = 3
)

var (
	rePath           = mustCompile(patternPath)
	reNetworkAddress = mustCompile(patternNetworkAddress)
	reURL            = mustCompile(patternURL)
	reAlphabet       = mustCompile(patternAlphabet)
)

// UsingHardcodePath reports string literals holding file paths or network addresses.
type UsingHardcodePath struct {
	treeVisit
	exclusion       *regexp2.Regexp
	stdPathsUnix    *regexp2.Regexp
	searchAddresses bool
}

func NewUsingHardcodePath(params Params) (Rule, error) {
	r := &UsingHardcodePath{}
	var errs []error

	var err error
	r.searchAddresses, err = params.Bool("enableSearchNetworkAddresses", true)
	errs = append(errs, err)

	exclusion, err := params.String("searchWordsExclusion", defaultExclusion)
	errs = append(errs, err)
	if r.exclusion, err = compile(exclusion); err != nil {
		errs = append(errs, fmt.Errorf("parameter searchWordsExclusion: %w", err))
		r.exclusion = mustCompile(defaultExclusion)
	}

	stdPaths, err := params.String("searchWordsStdPathsUnix", defaultStdPathsUnix)
	errs = append(errs, err)
	if r.stdPathsUnix, err = compile(`^\/(` + stdPaths + `)`); err != nil {
		errs = append(errs, fmt.Errorf("parameter searchWordsStdPathsUnix: %w", err))
		r.stdPathsUnix = mustCompile(`^\/(` + defaultStdPathsUnix + `)`)
	}
	return r, errors.Join(errs...)
}

func (r *UsingHardcodePath) Info() Info {
	return Info{
		Code:     diag.CodeUsingHardcodePath,
		Kind:     r.Kind(),
		Type:     TypeError,
		Severity: SeverityCritical,
		Scope:    ScopeBSL,
		Minutes:  15,
		Tags:     []Tag{TagStandard},
		Params: []ParamInfo{
			{Name: "searchWordsExclusion", Default: defaultExclusion, Description: "Слова-исключения для поиска сетевых адресов"},
			{Name: "searchWordsStdPathsUnix", Default: defaultStdPathsUnix, Description: "Стандартные корневые каталоги Unix"},
			{Name: "enableSearchNetworkAddresses", Default: true, Description: "Искать сетевые адреса"},
		},
	}
}

func (r *UsingHardcodePath) Check(ctx *Context) []diag.Diagnostic {
	info := r.Info()
	store := diag.NewStorage(info.Code, info.DiagSeverity(), ctx.Messages.Get(info.Code, "message"))
	tree := ctx.Snapshot.Tree

	ast.Walk(tree.Root, func(n *ast.Node) bool {
		if n.Kind != ast.KindString {
			return true
		}
		content := strings.ReplaceAll(tree.Text(n), `"`, "")
		if source.UTF16Len(content) <= 2 {
			return false
		}
		switch {
		case find(rePath, content) && !find(reURL, content):
			if r.isPath(content) {
				store.AddNode(tree, n)
			}
		case r.searchAddresses:
			if r.isNetworkAddress(tree, n, content) {
				store.AddNode(tree, n, diag.WithMessage(ctx.Messages.Get(info.Code, "messageAddress")))
			}
		}
		return false
	})
	return store.Diagnostics()
}

// isPath: пути от корня признаются только для стандартных каталогов Unix.
func (r *UsingHardcodePath) isPath(content string) bool {
	if strings.HasPrefix(content, "/") {
		return find(r.stdPathsUnix, content)
	}
	return true
}

func (r *UsingHardcodePath) isNetworkAddress(tree *ast.Tree, n *ast.Node, content string) bool {
	if !find(reNetworkAddress, content) {
		return false
	}
	if !find(reAlphabet, content) && strings.Count(content, ".") > dotsInIPv4 {
		return false
	}
	if stmt := n.Ancestor(func(p *ast.Node) bool { return p.Kind.IsStatement() }); stmt != nil {
		if find(r.exclusion, tree.Text(stmt)) {
			return false
		}
	}
	return true
}
