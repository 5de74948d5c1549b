package pipeline

import (
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/khx0/statistics/internal/config"
	"github.com/khx0/statistics/internal/logging"
	"github.com/khx0/statistics/internal/manifest"
	"github.com/khx0/statistics/internal/monitoring"
	"github.com/khx0/statistics/internal/qq"
	"github.com/khx0/statistics/internal/render"
	"github.com/khx0/statistics/internal/report"
	"github.com/khx0/statistics/internal/shared/hash"
	"github.com/khx0/statistics/internal/shared/id"
	"github.com/khx0/statistics/internal/store"
)

// MetricsFile is the metrics textfile's name inside the output directory.
const MetricsFile = "qqplot.prom"

// Stage names used in logs and metrics.
const (
	StageGenerate = "generate"
	StageRender   = "render"
)

// Pipeline wires the generator, the raw-data store and the renderer.
type Pipeline struct {
	cfg      *config.Config
	log      *logging.Logger
	gen      *qq.Generator
	store    *store.Store
	renderer *render.Renderer
	options  render.Options
	metrics  *monitoring.Metrics
	hasher   *hash.Hasher
	ids      *id.Generator
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock sets the clock used for run IDs, and through them the manifest
// timestamp, and for date stamps.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.ids = id.NewGeneratorWithEntropy(rand.Reader, now)
		p.renderer = render.NewRendererWithClock(now)
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *monitoring.Metrics) Option {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// New creates a pipeline for cfg. The render options are checked here so
// that a bad palette or axis layout fails before any file is written.
func New(cfg *config.Config, log *logging.Logger, opts ...Option) (*Pipeline, error) {
	if len(cfg.Pipeline.SampleSizes) == 0 {
		return nil, fmt.Errorf("no sample sizes configured")
	}
	options, err := RenderOptions(cfg.Render, cfg.Paths.OutDir)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.NewNop()
	}

	p := &Pipeline{
		cfg:      cfg,
		log:      log,
		gen:      qq.NewGenerator(cfg.Pipeline.Seed),
		store:    store.New(cfg.Paths.RawDir),
		renderer: render.NewRenderer(),
		options:  options,
		metrics:  monitoring.NewMetrics(),
		hasher:   hash.DefaultHasher(),
		ids:      id.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Result is what a run produced.
type Result struct {
	RunID        id.RunID
	Manifest     *manifest.Manifest
	Table        *report.Table
	ManifestPath string
	MetricsPath  string
}

// Run generates every sample set, then renders every sample set.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	return p.execute(ctx, true, true)
}

// Generate runs stage a only.
func (p *Pipeline) Generate(ctx context.Context) (*Result, error) {
	return p.execute(ctx, true, false)
}

// Render runs stage b only, on sample sets already in the raw-data store.
func (p *Pipeline) Render(ctx context.Context) (*Result, error) {
	return p.execute(ctx, false, true)
}

func (p *Pipeline) execute(ctx context.Context, doGenerate, doRender bool) (*Result, error) {
	runID := p.ids.NewRunID()
	log := &logging.Logger{Logger: p.log.With(zap.String("run_id", runID.String()))}

	createdAt, err := runID.Timestamp()
	if err != nil {
		return nil, err
	}
	m := manifest.New(runID.String(), p.gen.Seed(), createdAt)
	m.Environment = render.EnvironmentTag()
	m.Digest = string(p.hasher.Algorithm())
	m.RawDir = p.store.Dir()
	m.OutDir = p.cfg.Paths.OutDir

	sizes := p.cfg.Pipeline.SampleSizes
	log.Info("Run started",
		zap.Ints("sample_sizes", sizes),
		zap.Uint64("seed", p.gen.Seed()),
		zap.Bool("generate", doGenerate),
		zap.Bool("render", doRender))

	if doGenerate {
		stageLog := log.Stage(StageGenerate)
		for _, n := range sizes {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := p.generateOne(n, m, stageLog.ForSampleSet(n)); err != nil {
				return nil, err
			}
		}
	}

	if doRender {
		stageLog := log.Stage(StageRender)
		for _, n := range sizes {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := p.renderOne(n, m, stageLog.ForSampleSet(n)); err != nil {
				return nil, err
			}
		}
	}

	// A generate-only run leaves the output directory alone.
	reportDir := p.cfg.Paths.OutDir
	if !doRender {
		reportDir = p.store.Dir()
	}
	result, err := p.finish(m, runID, reportDir)
	if err != nil {
		return nil, err
	}

	snap := p.metrics.Snapshot()
	log.Info("Run finished",
		zap.Duration("elapsed", p.metrics.Elapsed()),
		zap.Int64("samples", snap.Samples),
		zap.Int64("sample_sets_saved", snap.SampleSets),
		zap.Int64("artifacts", snap.Artifacts),
		zap.Int64("artifact_bytes", snap.Bytes),
		zap.String("manifest", result.ManifestPath),
		zap.String("metrics", result.MetricsPath))
	return result, nil
}

// generateOne draws the sample set for n and stores it.
func (p *Pipeline) generateOne(n int, m *manifest.Manifest, log *logging.Logger) (err error) {
	timer := monitoring.NewTimer(p.metrics, StageGenerate)
	defer func() { timer.StopWith(err) }()

	set, err := p.gen.Generate(n)
	if err != nil {
		log.Error("Failed to generate sample set", zap.Error(err))
		return err
	}
	p.metrics.RecordSamples(n)

	path, err := p.store.Save(set)
	if err != nil {
		log.Error("Failed to store sample set", zap.Error(err))
		return err
	}
	p.metrics.IncSampleSetsSaved()

	entry, err := p.describe(set, path)
	if err != nil {
		return err
	}
	m.Put(entry)

	log.Info("Sample set stored",
		zap.String("path", path),
		zap.Float64("correlation", entry.Correlation),
		zap.Float64("max_deviation", entry.MaxDeviation))
	return nil
}

// renderOne loads the sample set for n from the store and plots it.
func (p *Pipeline) renderOne(n int, m *manifest.Manifest, log *logging.Logger) (err error) {
	timer := monitoring.NewTimer(p.metrics, StageRender)
	defer func() { timer.StopWith(err) }()

	set, err := p.store.Load(n)
	if err != nil {
		log.Error("Failed to load sample set", zap.Error(err))
		return err
	}
	rows, cols := set.Pairs.Dims()
	log.Info("Sample set loaded", zap.Int("rows", rows), zap.Int("cols", cols))

	if _, ok := m.Lookup(n); !ok {
		entry, err := p.describe(set, p.store.Path(n))
		if err != nil {
			return err
		}
		m.Put(entry)
	}

	artifacts, err := p.renderer.Render(set, optionsFor(p.options, n))
	if err != nil {
		log.Error("Failed to render plot", zap.Error(err))
		return fmt.Errorf("failed to render n=%d: %w", n, err)
	}
	if len(artifacts) == 0 {
		log.Warn("No output format enabled")
	}

	for _, a := range artifacts {
		entry, err := p.describeArtifact(a)
		if err != nil {
			return err
		}
		p.metrics.RecordArtifact(entry.Format, entry.Bytes)
		if err := m.AddArtifacts(n, entry); err != nil {
			return err
		}
		log.Info("Plot written",
			zap.String("format", entry.Format),
			zap.String("path", entry.Path),
			zap.Int64("bytes", entry.Bytes))
	}
	return nil
}

// describe summarises a stored sample set for the manifest.
func (p *Pipeline) describe(set *qq.SampleSet, path string) (manifest.SampleSet, error) {
	digest, err := p.hasher.HashFile(path)
	if err != nil {
		return manifest.SampleSet{}, err
	}
	s := qq.Summarize(set)
	p.metrics.ObserveSampleSet(s.N, s.Correlation, s.MaxDeviation)

	return manifest.SampleSet{
		N:            s.N,
		RawFile:      path,
		RawSHA256:    digest,
		Mean:         s.Mean,
		StdDev:       s.StdDev,
		Correlation:  s.Correlation,
		MaxDeviation: s.MaxDeviation,
	}, nil
}

func (p *Pipeline) describeArtifact(a render.Artifact) (manifest.Artifact, error) {
	info, err := os.Stat(a.Path)
	if err != nil {
		return manifest.Artifact{}, fmt.Errorf("failed to stat %s: %w", a.Path, err)
	}
	digest, err := p.hasher.HashFile(a.Path)
	if err != nil {
		return manifest.Artifact{}, err
	}
	return manifest.Artifact{
		Format: string(a.Format),
		Path:   a.Path,
		Bytes:  info.Size(),
		SHA256: digest,
	}, nil
}

// finish writes the manifest and the metrics textfile into dir and builds
// the summary table.
func (p *Pipeline) finish(m *manifest.Manifest, runID id.RunID, dir string) (*Result, error) {
	result := &Result{
		RunID:        runID,
		Manifest:     m,
		Table:        report.NewTable(),
		ManifestPath: filepath.Join(dir, manifest.FileName),
		MetricsPath:  filepath.Join(dir, MetricsFile),
	}

	for _, s := range m.SampleSets {
		result.Table.Add(report.Row{
			Summary: qq.Summary{
				N:            s.N,
				Mean:         s.Mean,
				StdDev:       s.StdDev,
				Correlation:  s.Correlation,
				MaxDeviation: s.MaxDeviation,
			},
			RawFile: s.RawFile,
			Digest:  hash.Short(s.RawSHA256),
			Plots:   len(s.Artifacts),
		})
	}

	if err := m.Write(result.ManifestPath); err != nil {
		return nil, err
	}
	if err := p.metrics.WriteTextfile(result.MetricsPath); err != nil {
		return nil, err
	}
	return result, nil
}
