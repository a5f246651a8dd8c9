package zipcode

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

//go:embed data
var bundled embed.FS

// fsLoader implements Loader for reference tables stored in a file system.
type fsLoader struct {
	fsys   fs.FS
	source string
	logger zerolog.Logger
}

// NewEmbeddedLoader creates a loader over the reference table bundled into the binary.
func NewEmbeddedLoader(logger zerolog.Logger) Loader {
	return NewFSLoader(bundled, "embedded", logger)
}

// NewFileLoader creates a loader that searches dir on the local file system.
func NewFileLoader(dir string, logger zerolog.Logger) Loader {
	return NewFSLoader(os.DirFS(dir), dir, logger)
}

// NewFSLoader creates a loader over fsys. source is only used in log output.
func NewFSLoader(fsys fs.FS, source string, logger zerolog.Logger) Loader {
	return &fsLoader{
		fsys:   fsys,
		source: source,
		logger: logger.With().Str("component", "zipcode-loader").Logger(),
	}
}

// Load finds the first file whose name ends with name (case-insensitive) and
// parses it.
func (l *fsLoader) Load(ctx context.Context, name string) (*Dataset, error) {
	path, err := resolveBySuffix(l.fsys, name)
	if err != nil {
		l.logger.Error().Err(err).Str("source", l.source).Str("resource", name).Msg("failed to resolve zip code resource")
		return nil, err
	}

	l.logger.Info().Str("source", l.source).Str("file", path).Msg("loading zip code dataset")

	file, err := l.fsys.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open zip code resource")
		return nil, fmt.Errorf("failed to open zip code resource %s: %w", path, err)
	}
	defer file.Close()

	dataset, err := ParseDataset(ctx, file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to parse zip code resource")
		return nil, fmt.Errorf("failed to parse zip code resource %s: %w", path, err)
	}

	l.logger.Info().
		Str("source", l.source).
		Str("file", path).
		Int("zip_codes_loaded", dataset.Size()).
		Msg("zip code dataset loaded successfully")

	return dataset, nil
}

// resolveBySuffix walks fsys in lexical order and returns the first regular
// file whose path ends with suffix, ignoring case.
func resolveBySuffix(fsys fs.FS, suffix string) (string, error) {
	want := strings.ToLower(suffix)
	var found string

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(path), want) {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil && !errors.Is(err, fs.SkipAll) {
		return "", fmt.Errorf("%w: %s: %w", ErrResourceNotFound, suffix, err)
	}

	if found == "" {
		return "", fmt.Errorf("%w: no resource ending in %s", ErrResourceNotFound, suffix)
	}
	return found, nil
}
