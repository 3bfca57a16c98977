package main

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// TestParseFlags - Command-line parsing
// ---------------------------------------------------------------------------

func TestParseFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		check   func(t *testing.T, f *cliFlags)
		wantErr error
	}{
		{
			name: "no flags",
			args: nil,
			check: func(t *testing.T, f *cliFlags) {
				if f.docRoot != "" || f.verbose || f.set("docroot") {
					t.Errorf("unexpected values: %+v", f)
				}
			},
		},
		{
			name: "short flags",
			args: []string{"-d", "api/", "-v"},
			check: func(t *testing.T, f *cliFlags) {
				if f.docRoot != "api/" || !f.verbose || !f.set("docroot") {
					t.Errorf("unexpected values: %+v", f)
				}
			},
		},
		{
			name: "long flags",
			args: []string{"--docroot=build/docs", "--source-url", "https://mirror/p.tgz", "--theme", "monokai", "--timeout", "30s", "-q"},
			check: func(t *testing.T, f *cliFlags) {
				if f.docRoot != "build/docs" || f.sourceURL != "https://mirror/p.tgz" ||
					f.theme != "monokai" || f.timeout != "30s" || !f.quiet {
					t.Errorf("unexpected values: %+v", f)
				}
				for _, name := range []string{"docroot", "source-url", "theme", "timeout", "quiet"} {
					if !f.set(name) {
						t.Errorf("set(%q) = false", name)
					}
				}
			},
		},
		{
			name: "help",
			args: []string{"-h"},
			check: func(t *testing.T, f *cliFlags) {
				if !f.help {
					t.Error("help = false")
				}
			},
		},
		{
			name: "config and print-config",
			args: []string{"-c", "javadoc", "--print-config"},
			check: func(t *testing.T, f *cliFlags) {
				if f.config != "javadoc" || !f.printConfig {
					t.Errorf("unexpected values: %+v", f)
				}
			},
		},
		{name: "unknown flag", args: []string{"--colour"}, wantErr: ErrUsage},
		{name: "unknown shorthand", args: []string{"-x"}, wantErr: ErrUsage},
		{name: "missing value", args: []string{"--docroot"}, wantErr: ErrUsage},
		{name: "positional argument", args: []string{"docs"}, wantErr: ErrUsage},
		{name: "verbose and quiet", args: []string{"-v", "-q"}, wantErr: ErrUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := parseFlags(tt.args)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("parseFlags(%v) error = %v, want %v", tt.args, err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, f)
			}
		})
	}
}
