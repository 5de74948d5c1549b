// Package manifest records what a pipeline run produced: the run ID, the
// seed, and per sample count the raw file, its checksum, summary statistics
// and the plot files rendered from it. Manifests are written as YAML.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/goccy/go-yaml"
)

// FileName is the manifest's name inside the output directory.
const FileName = "manifest.yaml"

// Manifest describes one pipeline run.
type Manifest struct {
	RunID       string    `yaml:"run_id"`
	CreatedAt   time.Time `yaml:"created_at"`
	Seed        uint64    `yaml:"seed"`
	Environment string    `yaml:"environment"`
	// Digest names the checksum algorithm of every sha256 field.
	Digest     string      `yaml:"digest"`
	RawDir     string      `yaml:"raw_dir"`
	OutDir     string      `yaml:"out_dir"`
	SampleSets []SampleSet `yaml:"sample_sets"`
}

// SampleSet describes the raw file and plots of one sample count.
type SampleSet struct {
	N            int        `yaml:"n"`
	RawFile      string     `yaml:"raw_file"`
	RawSHA256    string     `yaml:"raw_sha256"`
	Mean         float64    `yaml:"mean"`
	StdDev       float64    `yaml:"stddev"`
	Correlation  float64    `yaml:"correlation"`
	MaxDeviation float64    `yaml:"max_deviation"`
	Artifacts    []Artifact `yaml:"artifacts,omitempty"`
}

// Artifact is one rendered plot file.
type Artifact struct {
	Format string `yaml:"format"`
	Path   string `yaml:"path"`
	Bytes  int64  `yaml:"bytes"`
	SHA256 string `yaml:"sha256"`
}

// New starts a manifest for a run.
func New(runID string, seed uint64, createdAt time.Time) *Manifest {
	return &Manifest{
		RunID:     runID,
		CreatedAt: createdAt.UTC(),
		Seed:      seed,
	}
}

// Put adds the entry for a sample count, replacing any earlier entry with
// the same N. Entries stay ordered by N.
func (m *Manifest) Put(s SampleSet) {
	i, found := slices.BinarySearchFunc(m.SampleSets, s.N, func(e SampleSet, n int) int {
		return e.N - n
	})
	if found {
		m.SampleSets[i] = s
		return
	}
	m.SampleSets = slices.Insert(m.SampleSets, i, s)
}

// Lookup returns the entry for sample count n.
func (m *Manifest) Lookup(n int) (*SampleSet, bool) {
	for i := range m.SampleSets {
		if m.SampleSets[i].N == n {
			return &m.SampleSets[i], true
		}
	}
	return nil, false
}

// AddArtifacts appends plot files to the entry for n.
func (m *Manifest) AddArtifacts(n int, artifacts ...Artifact) error {
	s, ok := m.Lookup(n)
	if !ok {
		return fmt.Errorf("no sample set with n=%d in manifest", n)
	}
	s.Artifacts = append(s.Artifacts, artifacts...)
	return nil
}

// Write saves the manifest to path as YAML.
func (m *Manifest) Write(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}
	return nil
}
