package manifest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2020, time.August, 24, 9, 30, 0, 0, time.UTC)

func readManifest(t *testing.T, path string) *Manifest {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var m Manifest
	require.NoError(t, yaml.Unmarshal(data, &m))
	return &m
}

func TestPutKeepsOrder(t *testing.T) {
	m := New("run_x", 1, created)

	m.Put(SampleSet{N: 100})
	m.Put(SampleSet{N: 10})
	m.Put(SampleSet{N: 50})
	m.Put(SampleSet{N: 50, Mean: 0.5})

	var ns []int
	for _, s := range m.SampleSets {
		ns = append(ns, s.N)
	}
	assert.Equal(t, []int{10, 50, 100}, ns)

	s, ok := m.Lookup(50)
	require.True(t, ok)
	assert.Equal(t, 0.5, s.Mean)
}

func TestAddArtifacts(t *testing.T) {
	m := New("run_x", 1, created)
	m.Put(SampleSet{N: 10})

	require.NoError(t, m.AddArtifacts(10, Artifact{Format: "pdf", Path: "out/a.pdf"}))
	require.NoError(t, m.AddArtifacts(10, Artifact{Format: "png", Path: "out/a.png"}))
	assert.Error(t, m.AddArtifacts(20, Artifact{Format: "pdf"}))

	s, _ := m.Lookup(10)
	assert.Len(t, s.Artifacts, 2)
}

func TestWriteRead(t *testing.T) {
	m := New("run_01H0000000000000000000000", 123456789, created)
	m.Environment = "Go_1.24.4_plot_v0.15.2"
	m.Digest = "sha256"
	m.RawDir = "raw"
	m.OutDir = "out"
	m.Put(SampleSet{
		N:            10,
		RawFile:      "raw/qqplot_data_normal_dist_n_10.npy",
		RawSHA256:    "abc123",
		Mean:         0.125,
		StdDev:       0.875,
		Correlation:  0.97,
		MaxDeviation: 0.5,
		Artifacts:    []Artifact{{Format: "pdf", Path: "out/x.pdf", Bytes: 4096, SHA256: "def456"}},
	})

	path := filepath.Join(t.TempDir(), "out", FileName)
	require.NoError(t, m.Write(path))

	got := readManifest(t, path)
	assert.Equal(t, m.RunID, got.RunID)
	assert.Equal(t, "sha256", got.Digest)
	assert.Equal(t, m.Seed, got.Seed)
	assert.True(t, m.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, m.SampleSets, got.SampleSets)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "run_id: run_01H0000000000000000000000")
	assert.Contains(t, string(data), "raw_sha256: abc123")
}

func TestWriteCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", FileName)
	require.NoError(t, New("run_x", 1, created).Write(path))
	assert.FileExists(t, path)
}
