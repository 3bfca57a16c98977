package docprettify

import (
	"context"
	"fmt"
)

// Service runs the full pipeline: provision the assets, then rewrite every
// matching page under the docroot.
type Service struct {
	cfg         settings
	provisioner *Provisioner
}

// New creates a Service. Options are shared by the provisioner, walker and
// rewriter it drives.
func New(opts ...Option) *Service {
	cfg := newSettings(opts)
	return &Service{
		cfg:         cfg,
		provisioner: NewProvisioner(opts...),
	}
}

// Run provisions the assets and rewrites matching pages. No page is touched
// when provisioning fails.
func (s *Service) Run(ctx context.Context, job Job) (Stats, error) {
	job = job.withDefaults()
	if err := job.Validate(); err != nil {
		return Stats{}, err
	}

	if err := s.provisioner.Ensure(ctx, job.Assets); err != nil {
		return Stats{}, err
	}
	if err := ctx.Err(); err != nil {
		return Stats{Installed: s.provisioner.Installed()}, err
	}

	rw := &Rewriter{cfg: s.cfg, assets: job.Assets}
	walkErr := WalkContext(ctx, job.Assets.DocRoot, job.Marker, job.Suffix, rw.Rewrite, s.withSettings()...)

	stats := rw.Stats()
	stats.Installed = s.provisioner.Installed()
	if walkErr != nil {
		return stats, fmt.Errorf("prettifying %s: %w", job.Assets.DocRoot, walkErr)
	}
	return stats, nil
}

// withSettings turns the service settings back into options for the walker.
func (s *Service) withSettings() []Option {
	return []Option{WithOutput(s.cfg.out), WithVerbose(s.cfg.verbose)}
}
