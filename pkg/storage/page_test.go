package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPageDataAliasesFrameBuffer(t *testing.T) {
	name := filepath.Join(t.TempDir(), "alias.pagefile")
	require.NoError(t, CreatePageFile(name))
	pf, err := OpenPageFile(name)
	require.NoError(t, err)
	bp, err := Init(pf, 1, FIFO, nil)
	require.NoError(t, err)

	page, err := bp.PinPage(0)
	require.NoError(t, err)
	page.Data[0] = 0x7F

	page2, err := bp.PinPage(0)
	require.NoError(t, err)
	require.Equal(t, byte(0x7F), page2.Data[0])
}
