package main

import (
	"time"

	"github.com/alnah/go-docprettify"
	"github.com/alnah/go-docprettify/internal/codec"
	"github.com/alnah/go-docprettify/internal/config"
)

// runParams is the fully resolved input of one run.
type runParams struct {
	cfg        *config.Config
	configName string       // config name or path that was loaded, if any
	format     codec.Format // format used by --print-config
	job        docprettify.Job
	timeout    time.Duration
}

// resolveParams merges defaults, config file, environment and flags, in
// increasing order of precedence, and validates the result.
func resolveParams(flags *cliFlags, env *envConfig) (*runParams, error) {
	p := &runParams{cfg: config.DefaultConfig(), format: codec.FormatYAML}

	p.configName = env.ConfigPath
	if flags.set("config") {
		p.configName = flags.config
	}
	if p.configName != "" {
		cfg, err := config.LoadConfig(p.configName)
		if err != nil {
			return p, err
		}
		p.cfg = cfg
		if format, err := codec.FormatFor(p.configName); err == nil {
			p.format = format
		}
	}

	applyEnvConfig(env, p.cfg)
	mergeFlags(flags, p.cfg)

	if err := p.cfg.Validate(); err != nil {
		return p, err
	}

	timeout, err := p.cfg.Timeout()
	if err != nil {
		return p, err
	}
	p.timeout = timeout
	p.job = jobFromConfig(p.cfg)
	return p, nil
}

// mergeFlags applies explicitly set flags over cfg.
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	if flags.set("docroot") {
		cfg.DocRoot = flags.docRoot
	}
	if flags.set("source-url") {
		cfg.Assets.SourceURL = flags.sourceURL
	}
	if flags.set("theme") {
		cfg.Assets.Theme = flags.theme
	}
	if flags.set("timeout") {
		cfg.Download.Timeout = flags.timeout
	}
}

// jobFromConfig maps a validated config onto the library job.
func jobFromConfig(cfg *config.Config) docprettify.Job {
	return docprettify.Job{
		Assets: docprettify.AssetConfig{
			DocRoot:   cfg.DocRoot,
			CSSDir:    cfg.Assets.CSSDir,
			JSDir:     cfg.Assets.JSDir,
			CSSName:   cfg.Assets.CSSName,
			JSName:    cfg.Assets.JSName,
			SourceURL: cfg.Assets.SourceURL,
			Theme:     cfg.Assets.Theme,
		},
		Marker: cfg.Marker,
		Suffix: cfg.Suffix,
	}
}
