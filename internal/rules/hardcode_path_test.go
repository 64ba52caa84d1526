package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bslint/internal/diag"
)

func TestUsingHardcodePathLiterals(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string // "" - нет замечаний
	}{
		{"windows drive", `Путь = "C:\Program Files";`, "Путь к файлу или каталогу следует хранить в настройках"},
		{"unc share", `Путь = "\\server\share";`, "Путь к файлу или каталогу следует хранить в настройках"},
		{"unix std dir", `Путь = "/home/user/files";`, "Путь к файлу или каталогу следует хранить в настройках"},
		{"env var", `Путь = "%APPDATA%\1C";`, "Путь к файлу или каталогу следует хранить в настройках"},
		{"unix non std dir", `Ресурс = "/api/v1/items";`, ""},
		{"url", `Адрес = "http://example.com/path";`, ""},
		{"ipv4", `Сервер = "192.168.0.1";`, "Сетевой адрес следует хранить в настройках"},
		{"ipv6", `Сервер = "fe80::1ff:fe23:4567:890a";`, "Сетевой адрес следует хранить в настройках"},
		{"classifier code", `Код = "1.2.3.4.5";`, ""},
		{"short literal", `Разделитель = "\";`, ""},
		{"plain text", `Текст = "Привет, мир";`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ds := run(t, diag.CodeUsingHardcodePath, nil, tc.src)
			if tc.want == "" {
				assert.Empty(t, ds)
				return
			}
			require.Len(t, ds, 1)
			assert.Equal(t, tc.want, ds[0].Message)
			assert.Equal(t, diag.SevError, ds[0].Severity)
		})
	}
}

func TestUsingHardcodePathRangeCoversLiteral(t *testing.T) {
	_, ds := run(t, diag.CodeUsingHardcodePath, nil, `Путь = "C:\temp";`)
	require.Len(t, ds, 1)
	assert.Equal(t, rng(0, 7, 0, 16), ds[0].Range)
}

func TestUsingHardcodePathExclusionWords(t *testing.T) {
	src := "Если Версия = \"1.2.3.4\" Тогда\n\tА = 1;\nКонецЕсли;"
	_, ds := run(t, diag.CodeUsingHardcodePath, nil, src)
	assert.Empty(t, ds)

	// исключения касаются только сетевых адресов
	_, ds = run(t, diag.CodeUsingHardcodePath, nil, `Версия = "C:\temp";`)
	assert.Len(t, ds, 1)

	_, ds = run(t, diag.CodeUsingHardcodePath, map[string]any{"searchWordsExclusion": "Хост"},
		`Хост = "10.0.0.1"; Сервер = "10.0.0.2";`)
	require.Len(t, ds, 1)
	assert.Equal(t, uint32(28), ds[0].Range.Start.Character)
}

func TestUsingHardcodePathParams(t *testing.T) {
	_, ds := run(t, diag.CodeUsingHardcodePath, map[string]any{"enableSearchNetworkAddresses": false}, `Сервер = "192.168.0.1";`)
	assert.Empty(t, ds)

	_, ds = run(t, diag.CodeUsingHardcodePath, map[string]any{"searchWordsStdPathsUnix": "srv"}, `Путь = "/srv/data"; Дом = "/home/user";`)
	require.Len(t, ds, 1)
	assert.Equal(t, uint32(7), ds[0].Range.Start.Character)

	r, err := New(diag.CodeUsingHardcodePath, map[string]any{"searchWordsExclusion": "("})
	assert.Error(t, err)
	require.NotNil(t, r)
	assert.Empty(t, r.Check(newContext(`Версия = "10.0.0.1";`)))
}
