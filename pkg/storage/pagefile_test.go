package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func tempPageFileName(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.pagefile")
}

func TestCreatePageFile_SingleZeroPage(t *testing.T) {
	name := tempPageFileName(t)
	require.NoError(t, CreatePageFile(name))

	f, err := OpenPageFile(name)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, 1, f.TotalPages())

	buf := make([]byte, PageSize)
	require.NoError(t, f.ReadBlock(0, buf))
	for _, b := range buf {
		require.Equal(t, byte(0), b)
	}
}

func TestWriteBlock_OnePastEndExtends(t *testing.T) {
	name := tempPageFileName(t)
	require.NoError(t, CreatePageFile(name))
	f, err := OpenPageFile(name)
	require.NoError(t, err)
	defer f.Close()

	page := make([]byte, PageSize)
	page[0] = 0xAB

	require.NoError(t, f.WriteBlock(1, page))
	require.Equal(t, 2, f.TotalPages())

	out := make([]byte, PageSize)
	require.NoError(t, f.ReadBlock(1, out))
	require.Equal(t, byte(0xAB), out[0])
}

func TestWriteBlock_RejectsMoreThanOnePastEnd(t *testing.T) {
	name := tempPageFileName(t)
	require.NoError(t, CreatePageFile(name))
	f, err := OpenPageFile(name)
	require.NoError(t, err)
	defer f.Close()

	page := make([]byte, PageSize)
	err = f.WriteBlock(5, page)
	require.Error(t, err)

	var e *Error
	require.True(t, errors.As(err, &e))
	require.Equal(t, KindWriteFailed, e.Kind)
}

func TestReadBlock_RejectsOutOfRange(t *testing.T) {
	name := tempPageFileName(t)
	require.NoError(t, CreatePageFile(name))
	f, err := OpenPageFile(name)
	require.NoError(t, err)
	defer f.Close()

	buf := make([]byte, PageSize)
	err = f.ReadBlock(1, buf)
	require.ErrorIs(t, err, ErrReadNonExistingPage)
}

func TestEnsureCapacity_AppendsZeroPages(t *testing.T) {
	name := tempPageFileName(t)
	require.NoError(t, CreatePageFile(name))
	f, err := OpenPageFile(name)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, f.EnsureCapacity(5))
	require.Equal(t, 5, f.TotalPages())

	buf := make([]byte, PageSize)
	require.NoError(t, f.ReadBlock(4, buf))
	for _, b := range buf {
		require.Equal(t, byte(0), b)
	}
}

func TestRelativeReads(t *testing.T) {
	name := tempPageFileName(t)
	require.NoError(t, CreatePageFile(name))
	f, err := OpenPageFile(name)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, f.EnsureCapacity(3))

	buf := make([]byte, PageSize)
	require.NoError(t, f.ReadFirstBlock(buf))
	pos, err := f.GetBlockPos()
	require.NoError(t, err)
	require.Equal(t, 0, pos)

	require.NoError(t, f.ReadNextBlock(buf))
	pos, _ = f.GetBlockPos()
	require.Equal(t, 1, pos)

	require.NoError(t, f.ReadLastBlock(buf))
	pos, _ = f.GetBlockPos()
	require.Equal(t, 2, pos)

	require.NoError(t, f.ReadPreviousBlock(buf))
	pos, _ = f.GetBlockPos()
	require.Equal(t, 1, pos)
}

func TestDestroyPageFile(t *testing.T) {
	name := tempPageFileName(t)
	require.NoError(t, CreatePageFile(name))
	f, err := OpenPageFile(name)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, DestroyPageFile(name))

	_, err = OpenPageFile(name)
	require.Error(t, err)
}
