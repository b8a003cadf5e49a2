package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name  string `json:"name"`
	Port  int    `json:"port"`
	Debug bool   `json:"debug"`
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
}

func TestReadConfigMergesLocal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json5"), `{
		// comments are allowed
		name: "base",
		port: 80,
	}`)
	writeFile(t, filepath.Join(dir, "app.local.json5"), `{ port: 8080, debug: true }`)

	config, err := ReadConfig[testConfig](filepath.Join(dir, "app.json5"))
	require.NoError(t, err)
	require.Equal(t, testConfig{Name: "base", Port: 8080, Debug: true}, config)
}

func TestReadConfigLocalCannotClear(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json5"), `{ name: "base", port: 80 }`)
	writeFile(t, filepath.Join(dir, "app.local.json5"), `{ name: "", port: 0 }`)

	config, err := ReadConfig[testConfig](filepath.Join(dir, "app.json5"))
	require.NoError(t, err)
	require.Equal(t, testConfig{Name: "base", Port: 80}, config)
}

func TestReadConfigLocalOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.local.json5"), `{ name: "local" }`)

	config, err := ReadConfig[testConfig](filepath.Join(dir, "app.json5"))
	require.NoError(t, err)
	require.Equal(t, "local", config.Name)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "app.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json5"), `{ name: `)

	_, err := ReadConfig[testConfig](filepath.Join(dir, "app.json5"))
	require.Error(t, err)
	require.NotErrorIs(t, err, os.ErrNotExist)
}

func TestReadRecursively(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	writeFile(t, filepath.Join(root, "app.json5"), `{ name: "found" }`)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { os.Chdir(wd) })

	config, err := ReadRecursively[testConfig]("app.json5")
	require.NoError(t, err)
	require.Equal(t, "found", config.Name)
}

func TestWithDefaults(t *testing.T) {
	config, err := WithDefaults(
		testConfig{Port: 9000},
		testConfig{Name: "default", Port: 80},
	)
	require.NoError(t, err)
	require.Equal(t, testConfig{Name: "default", Port: 9000}, config)
}
