// Package store persists sample sets as NumPy .npy files, one file per
// sample count.
//
// Each file holds a float64 N×2 array in C order: column 0 is the theoretical
// quantile and column 1 the sorted sample. The format keeps raw files
// readable with numpy.load.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"

	"github.com/khx0/statistics/internal/qq"
)

// FilePattern names the raw file of a sample set; %d is the sample count.
const FilePattern = "qqplot_data_normal_dist_n_%d.npy"

// Store reads and writes sample sets below a single directory.
type Store struct {
	dir string
}

// New returns a store rooted at dir. The directory is created on first save.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// FileName returns the raw file name for sample count n.
func FileName(n int) string {
	return fmt.Sprintf(FilePattern, n)
}

// Path returns the raw file path for sample count n.
func (s *Store) Path(n int) string {
	return filepath.Join(s.dir, FileName(n))
}

// Save writes the sample set to its raw file, replacing any previous one,
// and returns the file path.
func (s *Store) Save(set *qq.SampleSet) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create raw directory %s: %w", s.dir, err)
	}

	path := s.Path(set.N)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := npyio.Write(f, set.Pairs); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to encode sample set n=%d: %w", set.N, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	return path, nil
}

// Load reads the sample set for count n and checks that the stored array is
// n×2.
func (s *Store) Load(n int) (*qq.SampleSet, error) {
	path := s.Path(n)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var pairs mat.Dense
	if err := npyio.Read(f, &pairs); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	set, err := qq.NewSampleSet(&pairs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if set.N != n {
		return nil, fmt.Errorf("%s: %w: holds %d rows, want %d", path, qq.ErrShapeMismatch, set.N, n)
	}
	return set, nil
}
