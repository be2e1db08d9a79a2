package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"syscall"

	"github.com/alecthomas/kong"
)

type contextKey struct{}

// WithContext returns a new context.Context containing the given
// [kong.Context].
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	sourceFilesKey struct{}

	sourceFiles struct {
		read     []io.Reader
		combined io.Reader
		hasStdin bool
	}

	// SourceFiles is the concatenation of the program source inputs
	// named on the command line, with stdin ordered last.
	SourceFiles interface {
		IsZero() bool
		io.Reader
	}
)

// IsZero reports whether there are no source inputs.
func (s *sourceFiles) IsZero() bool {
	return len(s.read) == 0 && !s.hasStdin
}

// Read reads from every source in order, including stdin if present.
func (s *sourceFiles) Read(p []byte) (int, error) {
	return s.combined.Read(p)
}

// fileKey identifies a file by device and inode so duplicates are
// detected across symlinks and equivalent paths.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the source name that selects stdin.
const stdinSource = "-"

// WithSourceFiles returns a new context.Context carrying a reader over
// the given source files.
//
// Duplicate files are opened once: paths are resolved through symlinks
// and compared by device/inode. Every occurrence of "-" collapses to a
// single stdin reader placed after the regular files.
func WithSourceFiles(ctx context.Context, sources []string) context.Context {
	return context.WithValue(ctx, sourceFilesKey{}, buildSourceFiles(sources))
}

func buildSourceFiles(sources []string) SourceFiles {
	if len(sources) == 0 {
		return nil
	}

	var srcs sourceFiles

	srcs.read = make([]io.Reader, 0, len(sources))
	seen := make(map[fileKey]struct{})

	stdinInfo, _ := os.Stdin.Stat()
	stdinKey, _ := makeFileKey(stdinInfo)

	for _, src := range sources {
		if src == stdinSource {
			seen[stdinKey] = struct{}{}

			continue
		}

		reader, ok := openUniqueFile(src, seen)
		if !ok {
			continue
		}

		srcs.read = append(srcs.read, reader)
	}

	// Stdin may have been named as "-" or as a device file. Either way
	// it is keyed by stdinKey.
	_, srcs.hasStdin = seen[stdinKey]
	delete(seen, stdinKey)

	if len(srcs.read) == 0 && !srcs.hasStdin {
		return nil
	}

	readers := slices.Clone(srcs.read)
	if srcs.hasStdin {
		readers = append(readers, os.Stdin)
	}

	srcs.combined = io.MultiReader(readers...)

	return &srcs
}

// openUniqueFile opens the file at path unless an equivalent file was
// already opened.
func openUniqueFile(path string, seen map[fileKey]struct{}) (io.Reader, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, false
	}

	key, ok := makeFileKey(info)
	if !ok {
		return nil, false
	}

	if _, exists := seen[key]; exists {
		return nil, false
	}

	seen[key] = struct{}{}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, false
	}

	return file, true
}

func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: stat.Dev, ino: stat.Ino}, true
}

// sourceFilesFrom retrieves the reader stored by [WithSourceFiles], or
// nil if none was stored.
func sourceFilesFrom(ctx context.Context) SourceFiles {
	r, _ := ctx.Value(sourceFilesKey{}).(SourceFiles)

	return r
}

// openSource resolves the input for a command: the top-level --source
// files if any were given, otherwise the command's own source argument
// ("-" for stdin). The returned closer is non-nil only for opened files.
func openSource(ctx context.Context, source string) (io.Reader, func() error, error) {
	if files := sourceFilesFrom(ctx); files != nil && !files.IsZero() {
		return files, nil, nil
	}

	if source == "" || source == stdinSource {
		return os.Stdin, nil, nil
	}

	file, err := os.Open(source)
	if err != nil {
		return nil, nil, ErrOpenSource.Wrap(err)
	}

	return file, file.Close, nil
}
