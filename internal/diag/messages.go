package diag

import (
	"fmt"
	"strings"
)

// Language selects the message catalog.
type Language string

const (
	LangRU Language = "ru"
	LangEN Language = "en"
)

// ParseLanguage maps "ru"/"en" (any case) to a Language, defaulting to Russian.
func ParseLanguage(s string) Language {
	if strings.EqualFold(strings.TrimSpace(s), string(LangEN)) {
		return LangEN
	}
	return LangRU
}

type msgKey struct {
	code Code
	key  string
}

// ключи: name - название правила, message - текст диагностики,
// quickfix - заголовок быстрого исправления, остальные - части сообщений
var catalog = map[Language]map[msgKey]string{
	LangRU: {
		{CodeParseError, "name"}:    "Ошибка разбора исходного текста",
		{CodeParseError, "message"}: "Ошибка разбора исходного текста. Ожидается: %s",

		{CodeCommentedCode, "name"}:    "Закомментированный программный код",
		{CodeCommentedCode, "message"}: "Удалите закомментированный код",

		{CodeMissingSpace, "name"}:             "Пропущены пробелы слева или справа от операторов",
		{CodeMissingSpace, "message"}:          "%s от \"%s\" отсутствует пробел",
		{CodeMissingSpace, "wordLeft"}:         "Слева",
		{CodeMissingSpace, "wordRight"}:        "Справа",
		{CodeMissingSpace, "wordLeftAndRight"}: "Слева и справа",
		{CodeMissingSpace, "quickfix"}:         "Добавить пропущенные пробелы",

		{CodeUsingHardcodePath, "name"}:           "Хранение путей к файлам и ip-адресов в коде",
		{CodeUsingHardcodePath, "message"}:        "Путь к файлу или каталогу следует хранить в настройках",
		{CodeUsingHardcodePath, "messageAddress"}: "Сетевой адрес следует хранить в настройках",

		{CodeUsingThisForm, "name"}:     "Использование устаревшего свойства \"ЭтаФорма\"",
		{CodeUsingThisForm, "message"}:  "Замените \"ЭтаФорма\" на \"ЭтотОбъект\"",
		{CodeUsingThisForm, "quickfix"}: "Заменить на \"ЭтотОбъект\"",

		{CodeUsingServiceTag, "name"}:    "Использование служебных тегов",
		{CodeUsingServiceTag, "message"}: "Устраните причину появления служебного тега \"%s\"",
	},
	LangEN: {
		{CodeParseError, "name"}:    "Source code parse error",
		{CodeParseError, "message"}: "Source code parse error. Expected: %s",

		{CodeCommentedCode, "name"}:    "Commented out code",
		{CodeCommentedCode, "message"}: "Remove commented-out code",

		{CodeMissingSpace, "name"}:             "Missing spaces to the left or right of operators",
		{CodeMissingSpace, "message"}:          "%s of \"%s\" there is no space",
		{CodeMissingSpace, "wordLeft"}:         "To the left",
		{CodeMissingSpace, "wordRight"}:        "To the right",
		{CodeMissingSpace, "wordLeftAndRight"}: "To the left and right",
		{CodeMissingSpace, "quickfix"}:         "Add missing spaces",

		{CodeUsingHardcodePath, "name"}:           "Storing file paths and ip addresses in code",
		{CodeUsingHardcodePath, "message"}:        "Store the file or directory path in settings",
		{CodeUsingHardcodePath, "messageAddress"}: "Store the network address in settings",

		{CodeUsingThisForm, "name"}:     "Using deprecated property \"ThisForm\"",
		{CodeUsingThisForm, "message"}:  "Replace \"ThisForm\" with \"ThisObject\"",
		{CodeUsingThisForm, "quickfix"}: "Replace with \"ThisObject\"",

		{CodeUsingServiceTag, "name"}:    "Using service tags",
		{CodeUsingServiceTag, "message"}: "Eliminate the reason for the service tag \"%s\"",
	},
}

// Messages looks up localized rule texts.
type Messages struct {
	Lang Language
}

// Get returns the text for code/key formatted with args. Missing entries fall
// back to Russian, then to the key itself.
func (m Messages) Get(code Code, key string, args ...any) string {
	text, ok := catalog[m.Lang][msgKey{code, key}]
	if !ok {
		text, ok = catalog[LangRU][msgKey{code, key}]
	}
	if !ok {
		return code.ID() + "." + key
	}
	if len(args) == 0 {
		return text
	}
	return fmt.Sprintf(text, args...)
}
