package hooks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/mlcat/pkg/errors"
)

func TestManagerExecute(t *testing.T) {
	m := NewManager()

	require.NoError(t, m.AddHook(Hook{
		Event:   PostDownload,
		Content: `ok := collectionID + ":" + archivePath`,
	}))

	err := m.Execute(PostDownload, Context{
		CollectionID: "ref_dataset_labels",
		ArchivePath:  "/data/ref_dataset_labels.tar.gz",
	})
	assert.NoError(t, err)
}

func TestManagerExecute_NoHookRegistered(t *testing.T) {
	m := NewManager()
	assert.NoError(t, m.Execute(PreDownload, Context{CollectionID: "c1"}))
}

func TestManagerExecute_ScriptReportsError(t *testing.T) {
	m := NewManager()

	require.NoError(t, m.AddHook(Hook{
		Event:   PreDownload,
		Content: `err := "destination not writable"`,
	}))

	err := m.Execute(PreDownload, Context{CollectionID: "c1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrHookScript)
	assert.Contains(t, err.Error(), "destination not writable")
}

func TestManagerExecute_CompileFailure(t *testing.T) {
	m := NewManager()

	require.NoError(t, m.AddHook(Hook{
		Event:   PostExtract,
		Content: `if {`,
	}))

	err := m.Execute(PostExtract, Context{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrHookExecution)
}

func TestManagerAddRemove(t *testing.T) {
	m := NewManager()

	require.ErrorIs(t, m.AddHook(Hook{Content: "x := 1"}), ErrEventEmpty)
	require.ErrorIs(t, m.RemoveHook(""), ErrEventEmpty)

	require.NoError(t, m.AddHook(Hook{Event: PostDownload, Content: "x := 1"}))
	assert.True(t, m.HasHook(PostDownload))

	require.NoError(t, m.RemoveHook(PostDownload))
	assert.False(t, m.HasHook(PostDownload))
}

func TestExecutorCustomVars(t *testing.T) {
	e := NewTengoExecutor()
	e.AddScript(PostDownload, `
err := ""
if threshold < 10 {
    err = "threshold too low"
}`)

	err := e.Execute(PostDownload, Context{Vars: map[string]interface{}{"threshold": 5}})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrHookScript)

	err = e.Execute(PostDownload, Context{Vars: map[string]interface{}{"threshold": 50}})
	assert.NoError(t, err)
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "post-download.tengo"), []byte(`x := datasetID`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pre-download.tengo"), []byte(`y := 1`), 0o644))
	// Unknown event names and foreign extensions are skipped.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "on-boot.tengo"), []byte(`z := 1`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("n/a"), 0o644))

	m := NewManager()
	require.NoError(t, LoadFromDir(m, dir))

	assert.True(t, m.HasHook(PostDownload))
	assert.True(t, m.HasHook(PreDownload))
	assert.False(t, m.HasHook(PostExtract))
	assert.False(t, m.HasHook(Event("on-boot")))
}

func TestLoadFromDir_MissingDirIsFine(t *testing.T) {
	m := NewManager()
	require.NoError(t, LoadFromDir(m, filepath.Join(t.TempDir(), "nope")))
}
