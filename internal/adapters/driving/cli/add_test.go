package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-labs/aide-cli/internal/core/domain"
)

func TestAddCmd_Use(t *testing.T) {
	assert.Equal(t, "add [file...]", addCmd.Use)
}

func TestAddCmd_IngestsFile(t *testing.T) {
	retrieval := &fakeRetrieval{chunks: 3}
	cleanup := setupServicesWith(retrieval, &fakeAssistant{})
	defer cleanup()

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "holiday-policy.txt")
	require.NoError(t, os.WriteFile(path, []byte("Employees accrue holiday monthly."), 0644))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"add", path})
	defer func() {
		rootCmd.SetArgs(nil)
		addTitle = ""
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, []string{"holiday-policy"}, retrieval.ingested)
	assert.Contains(t, buf.String(), `Added "holiday-policy" (3 chunks`)
}

func TestAddCmd_TitleFlagOverridesFileName(t *testing.T) {
	retrieval := &fakeRetrieval{chunks: 1}
	cleanup := setupServicesWith(retrieval, &fakeAssistant{})
	defer cleanup()

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0644))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"add", "--title", "Holiday Policy", path})
	defer func() {
		rootCmd.SetArgs(nil)
		addTitle = ""
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, []string{"Holiday Policy"}, retrieval.ingested)
}

func TestAddCmd_MissingFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"add", filepath.Join(t.TempDir(), "missing.txt")})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
}

func TestParseMetaFlags(t *testing.T) {
	metadata, err := parseMetaFlags([]string{"department=finance", "year=2026"})
	require.NoError(t, err)
	assert.Equal(t, domain.Metadata{"department": "finance", "year": "2026"}, metadata)

	metadata, err = parseMetaFlags(nil)
	require.NoError(t, err)
	assert.Nil(t, metadata)

	_, err = parseMetaFlags([]string{"missing-separator"})
	assert.Error(t, err)

	_, err = parseMetaFlags([]string{"=value"})
	assert.Error(t, err)
}
