package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const sampleTOML = `
[configuration]
name = "Бухгалтерия"
language = "ru"
compatibility_mode = "8.3.14"
sources = ["src/**/*.bsl"]
exclude = ["src/vendor/**"]

[diagnostics]
language = "en"
disabled = ["CommentedCode"]

[diagnostics.parameters.MissingSpace]
listForCheckLeft = "("
checkSpaceToRightOfUnary = true

[diagnostics.parameters.CommentedCode]
threshold = 0.8
`

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bslint.toml"), sampleTOML)
	nested := filepath.Join(root, "src", "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, ok, err := FindConfig(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "bslint.toml"), path)

	dir, ok, err := FindProjectRoot(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, root, dir)
}

func TestLoadConfigTOML(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "bslint.toml")
	writeFile(t, path, sampleTOML)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Бухгалтерия", cfg.Configuration.Name)
	assert.Equal(t, "en", cfg.Diagnostics.Language)
	assert.Equal(t, []string{"CommentedCode"}, cfg.Diagnostics.Disabled)
	assert.Equal(t, "(", cfg.Diagnostics.Parameters["MissingSpace"]["listForCheckLeft"])
	assert.Equal(t, true, cfg.Diagnostics.Parameters["MissingSpace"]["checkSpaceToRightOfUnary"])
	assert.InDelta(t, 0.8, cfg.Diagnostics.Parameters["CommentedCode"]["threshold"], 1e-9)
	assert.Equal(t, root, cfg.Root)
}

func TestLoadConfigYAML(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ".bslint.yaml")
	writeFile(t, path, `
configuration:
  name: demo
diagnostics:
  enabled: [UsingServiceTag]
  parameters:
    UsingHardcodePath:
      enableSearchNetworkAddresses: false
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Configuration.Name)
	assert.Equal(t, "ru", cfg.Diagnostics.Language)
	assert.Equal(t, defaultSources, cfg.Configuration.Sources)
	assert.Equal(t, false, cfg.Diagnostics.Parameters["UsingHardcodePath"]["enableSearchNetworkAddresses"])
}

func TestLoadConfigRejectsBadInput(t *testing.T) {
	root := t.TempDir()
	cases := map[string]string{
		"unknown.toml":  "[configuration]\nnmae = \"x\"\n",
		"lang.toml":     "[diagnostics]\nlanguage = \"de\"\n",
		"compat.toml":   "[configuration]\ncompatibility_mode = \"8.x\"\n",
		"conflict.toml": "[diagnostics]\nenabled = [\"A\"]\ndisabled = [\"A\"]\n",
		"bad.yaml":      "configuration:\n  unknown: 1\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(root, name)
			writeFile(t, path, content)
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigFromWithoutConfig(t *testing.T) {
	_, err := LoadConfigFrom(t.TempDir())
	assert.True(t, errors.Is(err, ErrNoConfig))
}

func TestWriteConfigRoundTrip(t *testing.T) {
	root := t.TempDir()
	path, err := WriteConfig(root, DefaultConfig("demo"))
	require.NoError(t, err)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Configuration.Name)

	_, err = WriteConfig(root, DefaultConfig("again"))
	assert.Error(t, err, "existing config must not be overwritten")
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{
		"src/Module.bsl",
		"src/sub/Form.bsl",
		"src/vendor/Lib.bsl",
		"src/readme.md",
		"scripts/build.os",
	} {
		writeFile(t, filepath.Join(root, filepath.FromSlash(rel)), "")
	}

	files, err := Discover(root, []string{"src/**/*.bsl"}, []string{"src/vendor/**"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "src", "Module.bsl"),
		filepath.Join(root, "src", "sub", "Form.bsl"),
	}, files)

	all, err := Discover(root, nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	_, err = Discover(root, []string{"[unclosed"}, nil)
	assert.Error(t, err)
}

func TestCompatibilityMode(t *testing.T) {
	m, err := ParseCompatibilityMode("Version8_3_14")
	require.NoError(t, err)
	assert.Equal(t, CompatibilityMode{8, 3, 14}, m)
	assert.Equal(t, "8.3.14", m.String())

	old, _ := ParseCompatibilityMode("8.3.2")
	req, _ := ParseCompatibilityMode("8.3.3")
	assert.Equal(t, -1, old.Compare(req))
	assert.True(t, Metadata{CompatibilityMode: m}.Supports(req))
	assert.False(t, Metadata{CompatibilityMode: old}.Supports(req))
	assert.True(t, EmptyMetadata().Supports(req))

	dont, err := ParseCompatibilityMode("DontUse")
	require.NoError(t, err)
	assert.True(t, dont.IsZero())
}

func TestLoadMetadata(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bslint.toml"), sampleTOML)
	writeFile(t, filepath.Join(root, "src", "Module.bsl"), "")
	writeFile(t, filepath.Join(root, "src", "vendor", "Skip.bsl"), "")

	md, err := LoadMetadata(root)
	require.NoError(t, err)
	assert.Equal(t, "Бухгалтерия", md.Name)
	assert.Equal(t, CompatibilityMode{8, 3, 14}, md.CompatibilityMode)
	assert.Len(t, md.Modules, 1)
	assert.False(t, md.Fingerprint.IsZero())

	again, err := LoadMetadata(root)
	require.NoError(t, err)
	assert.Equal(t, md.Fingerprint, again.Fingerprint)

	empty, err := LoadMetadata("")
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())

	_, err = LoadMetadata(filepath.Join(root, "missing"))
	assert.Error(t, err)
}
