// Package artifact reads the value that gets uploaded as a revision.
//
// A source is a plain file, a build directory or an archive of one
// (tar, tar.gz, zip and anything else mholt/archives identifies).
package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"unicode/utf8"

	"github.com/mholt/archives"

	"github.com/glorpus-work/revctl/internal/logger"
)

// Defaults for Source.
const (
	DefaultPath    = "dist"
	DefaultEntry   = "index.html"
	DefaultMaxSize = 10 << 20
)

var (
	// ErrSourceNotFound is returned when the source or the entry inside it does not exist.
	ErrSourceNotFound = errors.New("artifact source not found")
	// ErrSourceInvalid is returned when the source cannot be read as a UTF-8 value.
	ErrSourceInvalid = errors.New("invalid artifact source")
)

// Source locates the artifact value.
type Source struct {
	// Path is a file, a directory or an archive.
	Path string
	// Entry is the slash-separated file to read inside Path. When empty a
	// directory or archive yields DefaultEntry and a plain file is read as is.
	Entry string
	// MaxSize caps the value length in bytes. Zero means DefaultMaxSize.
	MaxSize int64
}

// WithDefaults fills empty fields.
func (s Source) WithDefaults() Source {
	if s.Path == "" {
		s.Path = DefaultPath
	}
	if s.MaxSize <= 0 {
		s.MaxSize = DefaultMaxSize
	}
	return s
}

// String describes the source for log and error messages.
func (s Source) String() string {
	if s.Entry == "" {
		return s.Path
	}
	return s.Path + "!" + s.Entry
}

// Load reads the artifact value described by src.
func Load(ctx context.Context, src Source) (string, error) {
	src = src.WithDefaults()

	info, err := os.Stat(src.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrSourceNotFound, src.Path)
		}
		return "", fmt.Errorf("%w: %s: %w", ErrSourceInvalid, src.Path, err)
	}

	if src.Entry == "" {
		if src.Entry, err = defaultEntry(ctx, src.Path, info); err != nil {
			return "", err
		}
	}

	var data []byte
	if src.Entry == "" {
		data, err = readFile(src.Path, src.MaxSize)
	} else {
		data, err = readEntry(ctx, src)
	}
	if err != nil {
		return "", err
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8", ErrSourceInvalid, src)
	}

	logger.Debugf("loaded artifact %s (%d bytes)", src, len(data))
	return string(data), nil
}

// defaultEntry returns DefaultEntry for directories and archives and "" for
// any other file.
func defaultEntry(ctx context.Context, name string, info fs.FileInfo) (string, error) {
	if info.IsDir() {
		return DefaultEntry, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrSourceInvalid, name, err)
	}
	defer func() { _ = f.Close() }()

	format, _, err := archives.Identify(ctx, name, f)
	if errors.Is(err, archives.NoMatch) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrSourceInvalid, name, err)
	}
	if _, ok := format.(archives.Extractor); ok {
		return DefaultEntry, nil
	}
	return "", nil
}

func readFile(name string, limit int64) ([]byte, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceInvalid, name, err)
	}
	defer func() { _ = f.Close() }()
	return readLimited(f, name, limit)
}

func readEntry(ctx context.Context, src Source) ([]byte, error) {
	fsys, err := archives.FileSystem(ctx, src.Path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %w", ErrSourceInvalid, src.Path, err)
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	name := path.Clean(src.Entry)
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: invalid entry %q", ErrSourceInvalid, src.Entry)
	}

	f, err := fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, src)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceInvalid, src, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceInvalid, src, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrSourceInvalid, src)
	}

	return readLimited(f, src.String(), src.MaxSize)
}

func readLimited(r io.Reader, name string, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", ErrSourceInvalid, name, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrSourceInvalid, name, limit)
	}
	return data, nil
}
