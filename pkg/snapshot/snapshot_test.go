package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExportImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "pool.pagefile")
	archive := filepath.Join(dir, "pool.snapshot.zst")
	restored := filepath.Join(dir, "restored.pagefile")

	payload := make([]byte, 4096*3)
	for i := range payload {
		payload[i] = byte(i % 97)
	}
	require.NoError(t, os.WriteFile(src, payload, 0644))

	require.NoError(t, Export(src, archive))
	require.NoError(t, Import(archive, restored))

	got, err := os.ReadFile(restored)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestExportMissingSourceErrors(t *testing.T) {
	dir := t.TempDir()
	err := Export(filepath.Join(dir, "missing"), filepath.Join(dir, "out.zst"))
	require.Error(t, err)
}
