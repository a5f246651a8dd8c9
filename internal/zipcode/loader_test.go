package zipcode

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tinyTable = `"zip","city","state_id","state_name"
"62704","Springfield","IL","Illinois"
"60601","Chicago","IL","Illinois"
`

func TestEmbeddedLoader_Load(t *testing.T) {
	loader := NewEmbeddedLoader(zerolog.Nop())

	d, err := loader.Load(context.Background(), DefaultResourceName)

	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Greater(t, d.Size(), 0)

	rec, ok := d.Lookup("62704")
	require.True(t, ok)
	assert.Equal(t, "Springfield", rec.City)
	assert.Equal(t, "IL", rec.StateAbbreviation)
	assert.Equal(t, "Illinois", rec.StateName)
	assert.False(t, d.IsComplete(), "bundled table is a sample")
}

func TestEmbeddedLoader_MissingResource(t *testing.T) {
	loader := NewEmbeddedLoader(zerolog.Nop())

	d, err := loader.Load(context.Background(), "canadian_postcodes.csv")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResourceNotFound)
	assert.Nil(t, d)
}

func TestFSLoader_ResolvesBySuffix(t *testing.T) {
	fsys := fstest.MapFS{
		"readme.txt":                       {Data: []byte("not a table")},
		"resources/nested/Data.USZIPS.CSV": {Data: []byte(tinyTable)},
	}
	loader := NewFSLoader(fsys, "test", zerolog.Nop())

	d, err := loader.Load(context.Background(), "uszips.csv")

	require.NoError(t, err)
	assert.Equal(t, 2, d.Size())
}

func TestFSLoader_FirstMatchWins(t *testing.T) {
	fsys := fstest.MapFS{
		"a/uszips.csv": {Data: []byte(tinyTable)},
		"b/uszips.csv": {Data: []byte(`"zip","city","state_id","state_name"` + "\n")},
	}
	loader := NewFSLoader(fsys, "test", zerolog.Nop())

	d, err := loader.Load(context.Background(), "uszips.csv")

	require.NoError(t, err)
	assert.Equal(t, 2, d.Size())
}

func TestFSLoader_MissingColumns(t *testing.T) {
	fsys := fstest.MapFS{
		"uszips.csv": {Data: []byte(`"zip","city"` + "\n" + `"62704","Springfield"` + "\n")},
	}
	loader := NewFSLoader(fsys, "test", zerolog.Nop())

	d, err := loader.Load(context.Background(), "uszips.csv")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumns)
	assert.Nil(t, d)
}

func TestFSLoader_ByteOrderMarkedTable(t *testing.T) {
	fsys := fstest.MapFS{
		"data/uszips.csv": {Data: []byte("\ufeff" + strings.ReplaceAll(tinyTable, "\n", "\r\n"))},
	}
	loader := NewFSLoader(fsys, "test", zerolog.Nop())

	d, err := loader.Load(context.Background(), "uszips.csv")

	require.NoError(t, err)
	assert.Equal(t, 2, d.Size())
	rec, ok := d.Lookup("60601")
	require.True(t, ok)
	assert.Equal(t, "Chicago", rec.City)
}

func TestFileLoader_Load(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "simplemaps_uszips.csv"), []byte(tinyTable), 0644))

	loader := NewFileLoader(dir, zerolog.Nop())

	d, err := loader.Load(context.Background(), DefaultResourceName)

	require.NoError(t, err)
	assert.Equal(t, 2, d.Size())
}

func TestFileLoader_DirectoryNotFound(t *testing.T) {
	loader := NewFileLoader("/nonexistent/zip/data", zerolog.Nop())

	d, err := loader.Load(context.Background(), DefaultResourceName)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResourceNotFound)
	assert.Nil(t, d)
}

// mockLoader is a mock implementation of the Loader interface for testing.
type mockLoader struct {
	loadFunc func(ctx context.Context, name string) (*Dataset, error)
}

func (m *mockLoader) Load(ctx context.Context, name string) (*Dataset, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, name)
	}
	return nil, errors.New("not implemented")
}

func TestFallbackLoader_RemoteSuccess(t *testing.T) {
	remoteSet := NewDataset([]Record{{Code: "11111", City: "Remote", StateAbbreviation: "RM", StateName: "Remote"}})
	remote := &mockLoader{
		loadFunc: func(ctx context.Context, name string) (*Dataset, error) {
			assert.Equal(t, DefaultResourceName, name)
			return remoteSet, nil
		},
	}
	local := &mockLoader{
		loadFunc: func(ctx context.Context, name string) (*Dataset, error) {
			t.Error("local loader should not be called when remote succeeds")
			return nil, errors.New("should not be called")
		},
	}

	d, err := NewFallbackLoader(remote, local, zerolog.Nop()).Load(context.Background(), DefaultResourceName)

	require.NoError(t, err)
	assert.Same(t, remoteSet, d)
}

func TestFallbackLoader_RemoteFailsFallsBackToLocal(t *testing.T) {
	localSet := NewDataset(nil)
	remote := &mockLoader{
		loadFunc: func(ctx context.Context, name string) (*Dataset, error) {
			return nil, errors.New("S3 connection failed")
		},
	}
	local := &mockLoader{
		loadFunc: func(ctx context.Context, name string) (*Dataset, error) {
			return localSet, nil
		},
	}

	d, err := NewFallbackLoader(remote, local, zerolog.Nop()).Load(context.Background(), DefaultResourceName)

	require.NoError(t, err)
	assert.Same(t, localSet, d)
}

func TestFallbackLoader_NilRemote(t *testing.T) {
	localSet := NewDataset(nil)
	local := &mockLoader{
		loadFunc: func(ctx context.Context, name string) (*Dataset, error) {
			return localSet, nil
		},
	}

	d, err := NewFallbackLoader(nil, local, zerolog.Nop()).Load(context.Background(), DefaultResourceName)

	require.NoError(t, err)
	assert.Same(t, localSet, d)
}

func TestFallbackLoader_BothFail(t *testing.T) {
	remote := &mockLoader{
		loadFunc: func(ctx context.Context, name string) (*Dataset, error) {
			return nil, errors.New("S3 connection failed")
		},
	}
	local := &mockLoader{
		loadFunc: func(ctx context.Context, name string) (*Dataset, error) {
			return nil, ErrResourceNotFound
		},
	}

	d, err := NewFallbackLoader(remote, local, zerolog.Nop()).Load(context.Background(), DefaultResourceName)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResourceNotFound)
	assert.Nil(t, d)
}
