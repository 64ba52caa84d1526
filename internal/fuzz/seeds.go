package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"bslint/internal/project"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 1 << 16  // 64 KiB
)

// builtinSeeds покрывают конструкции, на которых чаще всего ломалось
// восстановление после ошибок.
var builtinSeeds = []string{
	"",
	"А = 1;",
	"Процедура А()\n\tБ = 1;\nКонецПроцедуры\n",
	"&НаСервере\nФункция Ф(Знач П = 1) Экспорт\n\tВозврат П;\nКонецФункции\n",
	"Если А Тогда\n\tБ();\nИначеЕсли В Тогда\nИначе\nКонецЕсли;\n",
	"Для Каждого Эл Из Список Цикл\n\tПродолжить;\nКонецЦикла;\n",
	"Попытка\n\tВызватьИсключение \"x\";\nИсключение\nКонецПопытки;\n",
	"#Область Имя\n#Если Сервер Тогда\n#КонецЕсли\n#КонецОбласти\n",
	"Путь = \"C:\\temp\"; // TODO: убрать\n",
	"// А = 1;\n// Б = 2;\n",
	"Текст = \"строка\n|продолжение\";\n",
	"Дата = '20240101';",
	"ЭтаФорма.Элементы.Поле.Видимость = Ложь;",
	"А = ?(Б, В, Г);",
	"А = Новый Структура(\"К\", 1);",
	"Процедура П(\nКонецПроцедуры",
	"Если Тогда Иначе",
	"\"незакрытая строка",
	"&",
	"'",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds добавляет модули из testdata в корне репозитория, если он есть.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || !project.IsSourceFile(path) {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
