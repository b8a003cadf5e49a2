package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestSetupWithoutEndpoints(t *testing.T) {
	tel, err := Setup(context.Background(), "test:empty", Config{})
	require.NoError(t, err)
	require.Nil(t, tel.TracerProvider)
	require.Nil(t, tel.MeterProvider)
	require.NoError(t, tel.Shutdown(context.Background()))
}

func TestSetupFromEnvWithoutConfig(t *testing.T) {
	chdir(t, t.TempDir())

	tel, err := SetupFromEnv(context.Background(), "test:missing")
	require.NoError(t, err)
	require.Equal(t, Telemetry{}, tel)
	require.NoError(t, tel.Shutdown(context.Background()))
}

func TestSetupFromEnvReadsConfig(t *testing.T) {
	root := t.TempDir()
	err := os.WriteFile(filepath.Join(root, "telemetry.json5"), []byte(`{
		otlp: {
			traces: { http_endpoint: "http://localhost:4318" },
		},
	}`), 0600)
	require.NoError(t, err)
	nested := filepath.Join(root, "nested")
	require.NoError(t, os.Mkdir(nested, 0755))
	chdir(t, nested)

	tel, err := SetupFromEnv(context.Background(), "test:configured")
	require.NoError(t, err)
	require.NotNil(t, tel.TracerProvider)
	require.Nil(t, tel.MeterProvider)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, tel.Shutdown(ctx))
}

type fataler struct {
	calls int
}

func (f *fataler) Fatal(...any) {
	f.calls++
}

func TestSetupForTestingOnce(t *testing.T) {
	chdir(t, t.TempDir())
	f := &fataler{}

	cleanup := SetupForTesting(f, "test:once")
	again := SetupForTesting(f, "test:once")
	again()
	cleanup()

	require.Zero(t, f.calls)
	require.True(t, setupTestEnvironments["test:once"])
}
