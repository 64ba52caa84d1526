package recognizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectors(t *testing.T) {
	assert.Equal(t, 1, NewEndWithDetector(1, ';').Scan("А = 1;  "))
	assert.Equal(t, 0, NewEndWithDetector(1, ';').Scan(""))
	assert.Equal(t, 2, NewKeywordsDetector(1, "Если", "Тогда").Scan("если А тогда"))
	assert.Equal(t, 3, NewContainsDetector(1, "()").Scan("А() Б ( ) В()"))
	assert.Equal(t, 1, NewCamelCaseDetector(1).Scan("ИмяПеременной"))
	assert.Equal(t, 0, NewCamelCaseDetector(1).Scan("просто текст"))
	assert.Equal(t, 1, NewPatternDetector(1, `^\d+$`).Scan("123"))
}

func TestRecognitionCombinesMatches(t *testing.T) {
	d := NewKeywordsDetector(0.5, "А")
	assert.InDelta(t, 0.75, Recognition(d, "А А"), 1e-9)
	assert.Zero(t, Recognition(d, "Б"))
}

func TestBSLFootprint(t *testing.T) {
	r := New(DefaultThreshold, BSLFootprint{})
	code := []string{
		`// КаталогПрограмм = "C:\Program Files";`,
		"// х = 1;",
		"//Сообщить(Текст);",
		"// КонецЕсли",
		"// Объект.Реквизит = ТекущаяДата()",
		"// &НаСервере",
		"////  Массив.Добавить(НовыйЭлемент)",
	}
	for _, line := range code {
		assert.True(t, r.MeetsCondition(line), "%q scored %.3f", line, r.Recognition(line))
	}
	prose := []string{
		"// Параметры:",
		"//   Сумма - Число - итоговая сумма",
		"// Возвращаемое значение:",
		"// ---------------------------",
		"// См. ОбщийМодуль.Функция()",
		"",
	}
	for _, line := range prose {
		assert.False(t, r.MeetsCondition(line), "%q scored %.3f", line, r.Recognition(line))
	}
}

func TestThresholdChangesVerdict(t *testing.T) {
	line := "// Возврат результата"
	assert.False(t, New(0.9, BSLFootprint{}).MeetsCondition(line))
	assert.True(t, New(0.5, BSLFootprint{}).MeetsCondition(line))
	// вердикт детерминирован
	r := New(0.9, BSLFootprint{})
	assert.Equal(t, r.Recognition(line), r.Recognition(line))
}
