package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRepositoryCatalog(t *testing.T) {
	b, err := Load("../../locales", "en", []string{"en"})
	require.NoError(t, err)
	assert.Equal(t, "See pricing", b.T("en", "cta.see_pricing"))
	assert.Equal(t, "Feature Comparison", b.T("en", "pricing.comparison"))
	assert.Equal(t, "missing.key", b.T("en", "missing.key"))
}

func TestResolveHonorsQValues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte(`{"hello":"Hello"}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sv.json"), []byte(`{"hello":"Hej"}`), 0o600))

	b, err := Load(dir, "en", []string{"en", "sv", "de"})
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "sv"}, b.Supported())

	assert.Equal(t, "sv", b.Resolve("en;q=0.8, sv-SE;q=0.9"))
	assert.Equal(t, "en", b.Resolve("ja"))
	assert.Equal(t, "en", b.Resolve(""))
	assert.Equal(t, "Hej", b.T("sv", "hello"))
	assert.Equal(t, "Hello", b.T("de", "hello"))
}

func TestLoadRequiresFallback(t *testing.T) {
	_, err := Load(t.TempDir(), "en", nil)
	require.Error(t, err)
}
