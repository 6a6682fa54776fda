package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {

	t.Run("Register first registry activates it", func(t *testing.T) {
		config := New(NewInMemoryConfigIO(&Config{}))

		err := config.RegisterRegistry(RegistryConfig{Name: "dev", Url: "http://localhost:9081"})

		require.NoError(t, err)
		assert.Equal(t, "dev", config.ActiveRegistry().Name)
		assert.True(t, config.ActiveRegistry().Active)
	})

	t.Run("Register existing registry updates it in place", func(t *testing.T) {
		config := New(NewInMemoryConfigIO(&Config{}))
		require.NoError(t, config.RegisterRegistry(RegistryConfig{Name: "dev", Url: "http://a"}))
		require.NoError(t, config.RegisterRegistry(RegistryConfig{Name: "prd", Url: "http://b"}))

		require.NoError(t, config.RegisterRegistry(RegistryConfig{Name: "dev", Url: "http://c"}))

		assert.Len(t, config.Registries, 2)
		assert.Equal(t, "http://c", config.ActiveRegistry().Url)
		assert.False(t, config.FindRegistryByName("prd").Active)
	})

	t.Run("Registry without name or url is refused", func(t *testing.T) {
		config := New(NewInMemoryConfigIO(&Config{}))

		assert.Error(t, config.RegisterRegistry(RegistryConfig{Url: "http://a"}))
		assert.Error(t, config.RegisterRegistry(RegistryConfig{Name: "dev"}))
		assert.False(t, config.HasRegistries())
	})

	t.Run("Switch registry", func(t *testing.T) {
		config := New(NewInMemoryConfigIO(&Config{}))
		require.NoError(t, config.RegisterRegistry(RegistryConfig{Name: "dev", Url: "http://a"}))
		require.NoError(t, config.RegisterRegistry(RegistryConfig{Name: "prd", Url: "http://b"}))

		active, err := config.SwitchRegistry("dev")

		require.NoError(t, err)
		assert.Equal(t, "http://a", active.Url)
		assert.Equal(t, "dev", config.ActiveRegistry().Name)

		_, err = config.SwitchRegistry("unknown")
		assert.Error(t, err)
	})

	t.Run("Override wins over configured registries", func(t *testing.T) {
		config := New(NewInMemoryConfigIO(&Config{}))
		require.NoError(t, config.RegisterRegistry(RegistryConfig{Name: "dev", Url: "http://a"}))

		config.Override("http://localhost:9990")

		assert.Equal(t, "http://localhost:9990", config.ActiveRegistry().Url)
		assert.Len(t, config.Registries, 1)
	})

	t.Run("Without registries there is no active one", func(t *testing.T) {
		config := New(NewInMemoryConfigIO(nil))

		assert.Nil(t, config.ActiveRegistry())
	})
}

func TestFileIO(t *testing.T) {

	t.Run("Missing file yields empty config", func(t *testing.T) {
		io, err := NewFileIO(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)

		config := New(io)

		assert.Empty(t, config.Registries)
	})

	t.Run("Round trips through yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "config.yaml")
		io, err := NewFileIO(path)
		require.NoError(t, err)
		config := New(io)

		require.NoError(t, config.RegisterRegistry(RegistryConfig{
			Name:      "dev",
			Url:       "https://registry:9081",
			Username:  "jane",
			TLSConfig: TLSConfig{SkipVerify: true},
		}))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(raw), "skip-verify: true")

		reloaded := New(io)
		assert.Equal(t, "https://registry:9081", reloaded.ActiveRegistry().Url)
		assert.Equal(t, "jane", reloaded.ActiveRegistry().Username)
	})

	t.Run("Invalid yaml is reported by Load", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("registries: [oops"), 0o600))
		io, err := NewFileIO(path)
		require.NoError(t, err)

		msg := Load(io)()

		assert.IsType(t, LoadingErrMsg{}, msg)
	})
}
