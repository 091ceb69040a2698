package loader_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formschema/pkg/loader"
	"github.com/goliatone/go-formschema/pkg/parser"
	"github.com/goliatone/go-formschema/pkg/schema"
)

func TestLoadFS_ParsesEveryYAMLFile(t *testing.T) {
	store, err := loader.LoadFS(subDirFS(t, "forms"))
	require.NoError(t, err)

	assert.Equal(t, []string{"admin/broken.yaml", "admin/users.yml", "login.yaml"}, store.Paths())

	login, ok := store.Schema("login")
	require.True(t, ok, "login schema missing")
	assert.Equal(t, []string{"login"}, schema.ScreenNames(login))

	users, ok := store.Schema("users")
	require.True(t, ok, "users schema missing")
	screen, ok := users.Screen("users")
	require.True(t, ok)
	require.Len(t, screen.Fields, 1)
	assert.NotNil(t, screen.Fields[0].Table, "expected synthesised data table")
}

func TestLoadFS_RecordsFailures(t *testing.T) {
	store, err := loader.LoadFS(subDirFS(t, "forms"))
	require.NoError(t, err)

	failed := store.Failed()
	require.Len(t, failed, 1)

	entry := failed[0]
	assert.Equal(t, "admin/broken.yaml", entry.Document.Location())
	assert.Nil(t, entry.Schema)
	assert.True(t, entry.Errors.Has(schema.ErrMissingRequiredField))
	assert.True(t, entry.Errors.Has(schema.ErrInvalidOptionList))

	_, ok := store.Schema("broken")
	assert.False(t, ok, "invalid documents should not resolve to a schema")

	raw, ok := store.Entry("admin/broken.yaml")
	require.True(t, ok)
	assert.False(t, raw.Valid())
}

func TestLoadFS_OptionsReachParser(t *testing.T) {
	store, err := loader.LoadFS(subDirFS(t, "forms"), parser.WithPageSize(50))
	require.NoError(t, err)

	users, ok := store.Schema("users")
	require.True(t, ok)
	screen, _ := users.Screen("users")
	assert.Equal(t, 50, screen.Fields[0].Table.Pagination.PageSize)
}

func TestLoadFS_EmptyFile(t *testing.T) {
	_, err := loader.LoadFS(subDirFS(t, "empty"))
	assert.Error(t, err)
}

func TestLoadFS_NilFS(t *testing.T) {
	store, err := loader.LoadFS(nil)
	require.NoError(t, err)
	assert.True(t, store.Empty())
	assert.Empty(t, store.Paths())
}

func TestStore_NilReceiver(t *testing.T) {
	var store *loader.Store
	assert.True(t, store.Empty())
	assert.Nil(t, store.Paths())
	assert.Nil(t, store.Failed())
	_, ok := store.Schema("login")
	assert.False(t, ok)
}

func TestLoadFile(t *testing.T) {
	entry, err := loader.LoadFile(filepath.Join(testdataRoot(), "forms", "login.yaml"))
	require.NoError(t, err)
	assert.True(t, entry.Valid(), "unexpected errors: %v", entry.Errors)
	assert.Equal(t, "login", entry.Document.Name())
	assert.Equal(t, schema.SourceKindFile, entry.Document.Source().Kind())

	_, err = loader.LoadFile(filepath.Join(testdataRoot(), "missing.yaml"))
	assert.Error(t, err)
}

func subDirFS(t *testing.T, subdir string) fs.FS {
	t.Helper()
	fsys, err := fs.Sub(os.DirFS(testdataRoot()), subdir)
	require.NoError(t, err)
	return fsys
}

func testdataRoot() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "testdata"
	}
	return filepath.Join(filepath.Dir(filename), "testdata")
}
