package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ctmdp/pkg/adapters/file"
	"github.com/aretw0/ctmdp/pkg/dsl"
	contract "github.com/aretw0/ctmdp/pkg/ports/tests"
	"github.com/aretw0/ctmdp/pkg/schema"
)

func TestFileStore_Contract(t *testing.T) {
	contract.RunModelStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_WritesReadableYAML(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "path3", schema.FromModel("path3", dsl.Path(3))))

	data, err := os.ReadFile(filepath.Join(dir, "path3.yaml"))
	require.NoError(t, err)

	m, _, err := schema.Load(data)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Len())

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_ListMissingDirectory(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "nope"))
	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestFileStore_DefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join(".ctmdp", "models"), file.New("").BasePath)
}
