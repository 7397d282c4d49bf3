// Package build orchestrates a full site build: load template, discover the
// tree, write the site. One linear pass; a run either completes or aborts.
package build

import (
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/bookpages/internal/assemble"
	"git.home.luguber.info/inful/bookpages/internal/config"
	"git.home.luguber.info/inful/bookpages/internal/logfields"
	"git.home.luguber.info/inful/bookpages/internal/manifest"
	"git.home.luguber.info/inful/bookpages/internal/site"
)

// Service runs builds for one configuration.
type Service struct {
	cfg *config.Config
}

// NewService creates a build service.
func NewService(cfg *config.Config) *Service {
	return &Service{cfg: cfg}
}

// Run performs one full build and returns its metadata record.
func (s *Service) Run() (*manifest.BuildInfo, error) {
	start := time.Now()
	slog.Info("Starting site build",
		logfields.Source(s.cfg.Book),
		logfields.Output(s.cfg.PagesDir()))

	// Template and source problems are configuration errors: fail before any
	// output is touched.
	tpl, err := assemble.LoadTemplate(s.cfg.Template)
	if err != nil {
		return nil, fmt.Errorf("load template %s: %w", s.cfg.Template, err)
	}

	tree, err := site.Build(s.cfg.Book)
	if err != nil {
		return nil, err
	}

	info, err := assemble.NewWriter(s.cfg, tpl).WriteSite(tree)
	if err != nil {
		return nil, err
	}

	slog.Info("Build completed",
		slog.Int("sections", info.Counts.Sections),
		slog.Int("pages", info.Counts.Pages),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return info, nil
}
