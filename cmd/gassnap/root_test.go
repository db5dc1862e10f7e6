package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"gassnap/internal/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeRoot(t *testing.T) (string, string, error) {
	t.Helper()

	outBuf := new(bytes.Buffer)
	errBuf := new(bytes.Buffer)
	rootCmd.SetOut(outBuf)
	rootCmd.SetErr(errBuf)
	rootCmd.SetArgs([]string{})

	err := rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

// chdir replicates testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(wd)) })
}

func writeSnapshot(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, snapshotFile), []byte(content), 0644))
	chdir(t, dir)
}

func TestRootCmd(t *testing.T) {
	writeSnapshot(t, `Ran 4 tests for test/GasBench.t.sol
GasBench:test__solmateErc721__ownerOf() (gas: 8036)
GasBench:test__solmateErc721__mint2() (gas: 50000)
GasBench:test__edition__mint3() (gas: 60000)
GasBench:test__otherCollection__transfer() (gas: 12000)
`)

	out, errOut, err := executeRoot(t)
	require.NoError(t, err)

	want := "collection\tmint2\tmint3\townerOf\ttransfer\n" +
		"edition\t-\t102000\t-\t-\n" +
		"otherCollection\t-\t-\t-\t12000\n" +
		"solmateErc721\t71000\t-\t8036\t-\n"
	assert.Equal(t, want, out)

	// Adjustment notes go to the diagnostic stream, not the table.
	assert.Contains(t, errOut, "adjusted gas for solmateErc721 mint2 to 71000")
	assert.Contains(t, errOut, "adjusted gas for edition mint3 to 102000")
	assert.NotContains(t, out, "adjusted")
}

func TestRootCmd_MissingSnapshot(t *testing.T) {
	chdir(t, t.TempDir())

	_, _, err := executeRoot(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not open gas snapshot")
}

func TestRootCmd_MalformedLine(t *testing.T) {
	writeSnapshot(t, "GasBench:test__solmateErc721__ownerOf()\n")

	_, _, err := executeRoot(t)
	require.Error(t, err)

	var parseErr *snapshot.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "GasBench:test__solmateErc721__ownerOf()", parseErr.Line)
}

func TestExecute_ExitCodeOnError(t *testing.T) {
	chdir(t, t.TempDir())

	code := 0
	exit = func(c int) { code = c }
	defer func() { exit = os.Exit }()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{})

	Execute()
	assert.Equal(t, 1, code)
}
