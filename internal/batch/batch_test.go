package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/stefanos/scour/internal/sanitize"
	"github.com/stefanos/scour/internal/walk"
)

func newTestDriver() *Driver {
	san := sanitize.New(sanitize.NewBuffers(16), zap.NewNop())
	return New(walk.New(san, zap.NewNop()), zap.NewNop())
}

func seedRoot(t *testing.T, files map[string][]byte) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "root")
	for name, data := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, data, 0o600))
	}
	return root
}

func TestRunAggregatesAcrossRoots(t *testing.T) {
	r1 := seedRoot(t, map[string][]byte{"a.txt": []byte("one")})
	r2 := seedRoot(t, map[string][]byte{
		"b.txt":       []byte("two"),
		"sub/c.txt":   []byte("three"),
		"sub/d.empty": nil,
	})

	totals, err := newTestDriver().Run([]string{r1, r2})
	require.NoError(t, err)
	assert.Equal(t, 4, totals.FilesDeleted)
	// r1 itself, plus r2, r2/sub.
	assert.Equal(t, 3, totals.DirsDeleted)
	assert.Equal(t, 0, totals.FilesRetained)
}

func TestRunContinuesPastFailingRoot(t *testing.T) {
	bad := seedRoot(t, map[string][]byte{"locked.txt": []byte("held")})
	good := seedRoot(t, map[string][]byte{"free.txt": []byte("bye")})

	holder, err := os.Open(filepath.Join(bad, "locked.txt"))
	require.NoError(t, err)
	defer holder.Close()
	require.NoError(t, unix.Flock(int(holder.Fd()), unix.LOCK_EX))

	totals, err := newTestDriver().Run([]string{bad, good})
	require.Error(t, err)
	assert.Equal(t, 1, totals.FilesDeleted)
	assert.Equal(t, 1, totals.FilesRetained)
	assert.NoDirExists(t, good)
	assert.DirExists(t, bad)
}

func TestRunMissingRootsAreSkipped(t *testing.T) {
	totals, err := newTestDriver().Run([]string{
		filepath.Join(t.TempDir(), "ghost1"),
		filepath.Join(t.TempDir(), "ghost2"),
	})
	require.NoError(t, err)
	assert.Zero(t, totals)
}
