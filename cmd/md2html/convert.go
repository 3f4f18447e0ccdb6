package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/assets"
	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/hints"
	"github.com/alnah/go-md2html/internal/pipeline"
	"github.com/alnah/go-md2html/internal/yamlutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrReadCSS          = errors.New("failed to read CSS file")
	ErrReadMarkdown     = errors.New("failed to read markdown file")
	ErrWriteHTML        = errors.New("failed to write HTML file")
	ErrInvalidTimeout   = errors.New("invalid timeout")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrConversionFailed = errors.New("conversion failed")
)

// defaultTimeout bounds each document when no timeout is configured.
const defaultTimeout = 30 * time.Second

// stdinArg selects stdin as input.
const stdinArg = "-"

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	css        string
	standalone bool
	title      string
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}

	// Overlay environment, then CLI flags (CLI wins)
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w%s", ErrInvalidConfig, err, configHint(cfg))
	}

	if flags.printConfig {
		out, err := yamlutil.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("printing config: %w", err)
		}
		_, err = env.Stdout.Write(out)
		return err
	}

	timeout, err := resolveTimeoutWithEnv(flags.timeout, envCfg.Timeout, cfg.Timeout)
	if err != nil {
		return err
	}

	css, err := resolveCSS(cfg)
	if err != nil {
		return err
	}

	params := &conversionParams{
		css:        css,
		standalone: cfg.Document.Standalone,
		title:      cfg.Document.Title,
	}
	opts := converterOptions(cfg, timeout)

	inputPath := resolveInputPath(positionalArgs, cfg)
	if inputPath == "" || inputPath == stdinArg {
		if inputPath == "" && env.StdinIsTerminal() {
			return fmt.Errorf("%w%s", ErrNoInput, hints.ForNoInput())
		}
		conv, err := md2html.NewConverter(opts...)
		if err != nil {
			return converterError(err)
		}
		return convertStdin(ctx, conv, params, flags.output, env)
	}

	// Resolve output directory
	outputDir := resolveOutputDir(flags.output, cfg)

	// Discover files to convert
	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, inputPath)
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	poolSize := min(md2html.ResolvePoolSize(workers), len(files))
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}

	pool, err := md2html.NewConverterPool(poolSize, opts...)
	if err != nil {
		return converterError(err)
	}
	defer pool.Close()

	results := convertBatch(ctx, &poolAdapter{pool: pool}, files, params)

	failed := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failed > 0 {
		errs := make([]error, 0, failed)
		for _, r := range results {
			if r.Err != nil {
				errs = append(errs, r.Err)
			}
		}
		return fmt.Errorf("%w: %d of %d file(s): %w", ErrConversionFailed, failed, len(results), errors.Join(errs...))
	}

	return nil
}

// loadConfig loads the named config file, or returns defaults when no
// config is named by flag or environment.
func loadConfig(flagConfig string, envCfg *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags overlays explicitly set CLI flags on the configuration.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.markdown.engine != "" {
		cfg.Markdown.Engine = flags.markdown.engine
	}
	if flags.markdown.tabWidth != 0 {
		cfg.Markdown.TabWidth = flags.markdown.tabWidth
	}
	if flags.markdown.html4 {
		cfg.Markdown.HTML4 = true
	}
	if flags.markdown.noMarkup {
		cfg.Markdown.NoMarkup = true
	}
	if flags.markdown.noEntities {
		cfg.Markdown.NoEntities = true
	}

	if flags.document.standalone {
		cfg.Document.Standalone = true
	}
	if flags.document.title != "" {
		cfg.Document.Title = flags.document.title
	}
	if flags.document.css != "" {
		cfg.Document.CSS = flags.document.css
	}
	if flags.document.style != "" {
		cfg.Document.Style = flags.document.style
	}
	if flags.document.assetPath != "" {
		cfg.Assets.BasePath = flags.document.assetPath
	}

	if flags.highlight.enabled {
		cfg.Highlight.Enabled = true
	}
	if flags.highlight.style != "" {
		cfg.Highlight.Style = flags.highlight.style
		cfg.Highlight.Enabled = true
	}
	if flags.highlight.disabled {
		cfg.Highlight.Enabled = false
	}

	if flags.timeout != "" {
		cfg.Timeout = flags.timeout
	}
}

// configHint returns a hint for the engine and tab width values Validate
// rejects, or "" for other errors.
func configHint(cfg *config.Config) string {
	engine := strings.ToLower(cfg.Markdown.Engine)
	if engine != "" && !slices.Contains(md2html.Engines(), engine) {
		return hints.ForEngine(md2html.Engines())
	}
	if w := cfg.Markdown.TabWidth; w != 0 && (w < config.MinTabWidth || w > config.MaxTabWidth) {
		return hints.ForTabWidth(config.MinTabWidth, config.MaxTabWidth)
	}
	return ""
}

// converterOptions translates a validated configuration into converter options.
func converterOptions(cfg *config.Config, timeout time.Duration) []md2html.Option {
	opts := []md2html.Option{
		md2html.WithXHTML(!cfg.Markdown.HTML4),
		md2html.WithTimeout(timeout),
	}
	if cfg.Markdown.Engine != "" {
		opts = append(opts, md2html.WithEngine(cfg.Markdown.Engine))
	}
	if cfg.Markdown.TabWidth != 0 {
		opts = append(opts, md2html.WithTabWidth(cfg.Markdown.TabWidth))
	}
	if cfg.Markdown.NoMarkup {
		opts = append(opts, md2html.WithoutMarkup())
	}
	if cfg.Markdown.NoEntities {
		opts = append(opts, md2html.WithoutEntities())
	}
	if urls, titles := cfg.LinkMaps(); len(urls) > 0 {
		opts = append(opts, md2html.WithPredefinedLinks(urls, titles))
	}
	if cfg.Highlight.Enabled {
		opts = append(opts, md2html.WithHighlighting(cfg.Highlight.Style))
	}
	return opts
}

// converterError adds hints to converter construction errors.
func converterError(err error) error {
	if errors.Is(err, md2html.ErrInvalidHighlightStyle) {
		return fmt.Errorf("%w%s", err, hints.ForStyleNotFound(pipeline.HighlightStyles()))
	}
	if errors.Is(err, md2html.ErrInvalidEngine) {
		return fmt.Errorf("%w%s", err, hints.ForEngine(md2html.Engines()))
	}
	return err
}

// resolveTimeoutWithEnv resolves the per-document timeout.
// Priority: flag > environment > config > default.
func resolveTimeoutWithEnv(flagValue string, envValue time.Duration, configValue string) (time.Duration, error) {
	value := configValue
	switch {
	case flagValue != "":
		value = flagValue
	case envValue > 0:
		return envValue, nil
	}
	if value == "" {
		return defaultTimeout, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v%s", ErrInvalidTimeout, value, err, hints.ForTimeout())
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w %q: must be positive", ErrInvalidTimeout, value)
	}
	return d, nil
}

// resolveInputPath returns the input argument, the configured default
// directory, or "" for stdin.
func resolveInputPath(args []string, cfg *config.Config) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Input.DefaultDir
}

// resolveOutputDir returns the output flag or the configured default.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// resolveCSS returns the stylesheet for standalone documents.
// Priority: CSS file > named style > none.
func resolveCSS(cfg *config.Config) (string, error) {
	if cfg.Document.CSS != "" {
		return readCSS(cfg.Document.CSS)
	}
	if cfg.Document.Style == "" {
		return "", nil
	}

	resolver, err := assets.NewStyleResolver(cfg.Assets.BasePath)
	if err != nil {
		return "", fmt.Errorf("loading styles: %w", err)
	}
	css, err := resolver.LoadStyle(cfg.Document.Style)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) || errors.Is(err, assets.ErrInvalidAssetName) {
			return "", fmt.Errorf("%w%s", err, hints.ForStyleNotFound(resolver.Names()))
		}
		return "", err
	}
	return css, nil
}

// readCSS reads the stylesheet at path.
func readCSS(path string) (string, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadCSS, err)
	}
	return string(content), nil
}

// convertStdin converts Markdown read from stdin. The result goes to
// outputPath when set, stdout otherwise.
func convertStdin(ctx context.Context, conv CLIConverter, params *conversionParams, outputPath string, env *Environment) error {
	content, err := io.ReadAll(env.Stdin)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}

	input := md2html.Input{
		Markdown:   string(content),
		Standalone: params.standalone,
		Title:      params.title,
		CSS:        params.css,
	}
	if outputPath != "" {
		input.SourceDir = "."
		input.OutputDir = filepath.Dir(outputPath)
	}

	result, err := conv.Convert(ctx, input)
	if err != nil {
		return err
	}

	if outputPath == "" {
		_, err = env.Stdout.Write(result.HTML)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), dirPermissions); err != nil {
		return fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory())
	}
	if err := fileutil.WriteFileAtomic(outputPath, result.HTML, filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteHTML, err)
	}
	return nil
}
