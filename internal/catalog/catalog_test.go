package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cct.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAndValidate(t *testing.T) {
	path := writeCatalog(t, `{
		"claves_validas": [
			{"cct": "14DPR2576Y", "nombre": "Primaria Benito Juárez"},
			{"cct": " 14des0045m "}
		]
	}`)

	cat, err := Load(path, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, 2, cat.Len())

	// Matching is case-insensitive and trims whitespace.
	require.True(t, cat.Valid("14DPR2576Y"))
	require.True(t, cat.Valid("14dpr2576y"))
	require.True(t, cat.Valid("  14DES0045M "))

	require.False(t, cat.Valid("14XXX0000A"))
	require.False(t, cat.Valid(""))
}

func TestLoadMissingFileAllowsAll(t *testing.T) {
	cat, err := Load(filepath.Join(t.TempDir(), "missing.json"), zap.NewNop())
	require.NoError(t, err)
	require.True(t, cat.Valid("ANYTHING"))
	require.Equal(t, 0, cat.Len())
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := writeCatalog(t, `{"claves_validas": [`)
	_, err := Load(path, zap.NewNop())
	require.Error(t, err)
}

func TestNormalize(t *testing.T) {
	require.Equal(t, "14DPR2576Y", Normalize(" 14dpr2576y "))
	require.Equal(t, "", Normalize("   "))
}
