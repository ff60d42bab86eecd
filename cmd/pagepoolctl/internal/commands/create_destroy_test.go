package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateThenDestroy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctl.pagefile")

	root := Root()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetArgs([]string{"create", path})
	require.NoError(t, root.Execute())

	_, err := os.Stat(path)
	require.NoError(t, err)

	root = Root()
	root.SetOut(out)
	root.SetArgs([]string{"destroy", path})
	require.NoError(t, root.Execute())

	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestCreateRequiresArg(t *testing.T) {
	root := Root()
	root.SetArgs([]string{"create"})
	err := root.Execute()
	require.Error(t, err)
}
