package store

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/khx0/statistics/internal/qq"
	"github.com/khx0/statistics/internal/shared/hash"
)

const testSeed = 123456789

func TestFileName(t *testing.T) {
	assert.Equal(t, "qqplot_data_normal_dist_n_100.npy", FileName(100))

	s := New("raw")
	assert.Equal(t, filepath.Join("raw", "qqplot_data_normal_dist_n_10.npy"), s.Path(10))
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "raw")
	s := New(dir)

	set, err := qq.NewGenerator(testSeed).Generate(20)
	require.NoError(t, err)

	path, err := s.Save(set)
	require.NoError(t, err)
	assert.Equal(t, s.Path(20), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x93NUMPY")), "missing npy magic")
}

func TestSaveLoad(t *testing.T) {
	s := New(t.TempDir())
	gen := qq.NewGenerator(testSeed)

	for _, n := range []int{10, 100, 1000} {
		set, err := gen.Generate(n)
		require.NoError(t, err)

		_, err = s.Save(set)
		require.NoError(t, err)

		loaded, err := s.Load(n)
		require.NoError(t, err)

		assert.Equal(t, n, loaded.N)
		assert.True(t, mat.Equal(set.Pairs, loaded.Pairs), "n=%d", n)
	}
}

func TestSaveIsByteIdentical(t *testing.T) {
	h := hash.DefaultHasher()

	digest := func(dir string) string {
		set, err := qq.NewGenerator(testSeed).Generate(100)
		require.NoError(t, err)

		path, err := New(dir).Save(set)
		require.NoError(t, err)

		sum, err := h.HashFile(path)
		require.NoError(t, err)
		return sum
	}

	assert.Equal(t, digest(t.TempDir()), digest(t.TempDir()))
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := New(t.TempDir()).Load(10)
		assert.Error(t, err)
	})

	t.Run("row count differs from name", func(t *testing.T) {
		s := New(t.TempDir())
		set, err := qq.NewGenerator(testSeed).Generate(5)
		require.NoError(t, err)
		_, err = s.Save(set)
		require.NoError(t, err)

		// Store the 5-row array under the n=10 name.
		require.NoError(t, os.Rename(s.Path(5), s.Path(10)))

		_, err = s.Load(10)
		assert.ErrorIs(t, err, qq.ErrShapeMismatch)
	})

	t.Run("not an npy file", func(t *testing.T) {
		s := New(t.TempDir())
		require.NoError(t, os.WriteFile(s.Path(10), []byte("not numpy"), 0o644))

		_, err := s.Load(10)
		assert.Error(t, err)
	})
}
