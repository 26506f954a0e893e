package commands

import (
	"log/slog"
	"path/filepath"
	"strings"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/site"
	"git.home.luguber.info/inful/sitebuilder/internal/sitefs"
	"git.home.luguber.info/inful/sitebuilder/internal/version"
)

// runBuild generates the site from SOURCE into TARGET.
func (c *CLI) runBuild(g *Global) error {
	cfg, err := config.Load(c.Source, c.Target)
	if err != nil {
		return err
	}
	c.applyLogConfig(g, cfg)

	if err := checkManifestPath(c.Manifest, cfg); err != nil {
		return err
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var promRecorder *metrics.PrometheusRecorder
	if c.MetricsFile != "" {
		promRecorder = metrics.NewPrometheusRecorder(prom.NewRegistry())
		recorder = promRecorder
	}

	builder, err := site.NewBuilder(cfg, site.WithRecorder(recorder))
	if err != nil {
		return err
	}

	report, buildErr := builder.Build()

	// Metrics are exported for failed builds too.
	if promRecorder != nil {
		if err := promRecorder.WriteTextfile(c.MetricsFile); err != nil {
			slog.Warn("Failed to write metrics file", logfields.Path(c.MetricsFile), logfields.Error(err))
		}
	}
	if buildErr != nil {
		return buildErr
	}

	if c.Manifest != "" {
		if err := writeManifest(c.Manifest, report, cfg); err != nil {
			return err
		}
	}

	slog.Info("Site written", logfields.Output(cfg.OutputDir), logfields.Count(report.PagesWritten))
	return nil
}

// checkManifestPath refuses manifest locations inside the output tree, which
// is wiped at the start of every build.
func checkManifestPath(path string, cfg config.Site) error {
	if path == "" {
		return nil
	}
	rel, err := filepath.Rel(cfg.OutputDir, filepath.Clean(path))
	if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ferrors.UsageError("manifest must be written outside the output directory").
			WithContext("path", path).
			WithContext("output", cfg.OutputDir).
			Build()
	}
	return nil
}

func writeManifest(path string, report *site.BuildReport, cfg config.Site) error {
	m := report.Manifest(version.Version, cfg.SourceDir, cfg.OutputDir)
	data, err := m.ToYAML()
	if err != nil {
		return ferrors.InternalError("failed to encode manifest").WithCause(err).Build()
	}
	if err := (sitefs.OS{}).WriteFile(path, data); err != nil {
		return ferrors.FileSystemError("failed to write manifest").
			WithContext("path", path).
			WithCause(err).
			Build()
	}
	slog.Info("Manifest written", logfields.Path(path), slog.String("hash", m.Hash()))
	return nil
}
