package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"pollos-backend/internal/export"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestExportCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dia.xlsx")
	out := run(t, "export", "--date", "01-01-2024", "--out", path)
	assert.Equal(t, "01-01-2024 - Lunes: 0 orders written to "+path+"\n", out)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{export.OrdersSheet, export.TotalsSheet}, f.GetSheetList())
}

func TestKeysListCommand(t *testing.T) {
	out := run(t, "keys", "list")
	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "VALID")
}
