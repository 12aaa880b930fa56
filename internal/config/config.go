// Package config assembles gitchangelog options from layered sources using
// koanf. Precedence is data: Load merges an ordered []Source left to right,
// so later sources override earlier ones. The default order is
// defaults < project manifest < .changelogrc < .env < environment < flags.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/v2"
)

// Options is the resolved configuration of one changelog run.
type Options struct {
	// File is the Markdown output path; "", "stdout" or "false" means no file.
	File string `koanf:"file"`
	// Page is the optional HTML output path; "" or "false" means no page.
	Page string `koanf:"page"`
	// Link is the base URL for commit links.
	Link string `koanf:"link" validate:"omitempty,url"`
	// Jira is the base URL for issue links.
	Jira string `koanf:"jira" validate:"omitempty,url"`
	// Verbose renders the commits nested under merges.
	Verbose bool `koanf:"verbose"`
	// LatestOnly renders only the newest section.
	LatestOnly bool `koanf:"latestonly"`
	// Output forces the changelog to be echoed on stdout.
	Output bool `koanf:"output"`
	// JSON echoes the structured sections instead of Markdown.
	JSON bool `koanf:"json"`

	// Dir is the directory whose repository is read.
	Dir string `koanf:"dir" validate:"required"`
	// ShortHash uses abbreviated commit hashes.
	ShortHash bool `koanf:"shorthash"`
	// Version is the declared project version, normally from the manifest.
	Version string `koanf:"version"`
	// Debug enables debug logging.
	Debug bool `koanf:"debug"`
}

// Source is one configuration layer.
type Source struct {
	// Name identifies the layer in error messages.
	Name string
	// Load merges the layer into k. Missing optional files are not errors.
	Load func(k *koanf.Koanf) error
}

// Merge applies sources left to right and returns the validated options.
func Merge(sources ...Source) (*Options, error) {
	k := koanf.New(".")

	for _, src := range sources {
		if err := src.Load(k); err != nil {
			return nil, fmt.Errorf("loading %s config: %w", src.Name, err)
		}
	}

	return finalize(k)
}

// Load resolves options for dir with the standard source order. flags holds
// only the command-line values the user set explicitly.
func Load(dir string, flags map[string]any) (*Options, error) {
	return Merge(StandardSources(dir, flags)...)
}

// StandardSources returns the default precedence order for dir.
func StandardSources(dir string, flags map[string]any) []Source {
	return []Source{
		Defaults(dir),
		Manifest(dir),
		RCFile(dir),
		DotEnv(dir),
		Environment(),
		Values("flags", flags),
	}
}

// finalize unmarshals and validates the merged configuration.
func finalize(k *koanf.Koanf) (*Options, error) {
	normalizeSentinels(k)

	var opts Options
	if err := k.Unmarshal("", &opts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	opts.Link = strings.TrimSuffix(opts.Link, "/")
	opts.Jira = strings.TrimSuffix(opts.Jira, "/")

	if err := ValidateOptions(&opts, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &opts, nil
}

// normalizeSentinels turns boolean file/page values (e.g. "file": false in
// package.json) into their string sentinels before weak decoding.
func normalizeSentinels(k *koanf.Koanf) {
	for _, key := range []string{"file", "page"} {
		if b, ok := k.Get(key).(bool); ok && !b {
			k.Set(key, sentinelFalse)
		}
	}
}

const (
	sentinelStdout = "stdout"
	sentinelFalse  = "false"
)

func isDisabledPath(p string) bool {
	switch strings.TrimSpace(p) {
	case "", sentinelStdout, sentinelFalse:
		return true
	}
	return false
}

// WritesFile reports whether the Markdown changelog goes to a file.
func (o *Options) WritesFile() bool {
	return !isDisabledPath(o.File)
}

// WritesPage reports whether an HTML page is written. Pages are only
// produced alongside a Markdown file.
func (o *Options) WritesPage() bool {
	return o.WritesFile() && !isDisabledPath(o.Page)
}

// EchoesConsole reports whether the changelog is printed to stdout.
func (o *Options) EchoesConsole() bool {
	return o.Output || !o.WritesFile()
}
