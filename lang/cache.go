package lang

import (
	"bytes"
	"context"
	"encoding/gob"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// globalCache stores parsed programs keyed by (source_hash:options_hash).
// Stored programs are never handed out directly; callers receive deep
// copies so cached trees stay immutable.
var globalCache sync.Map

// hashOptions encodes options using gob and hashes with xxh3.
// Returns a hash that uniquely identifies the options configuration.
func hashOptions(opts optionsKey) uint64 {
	var buf bytes.Buffer

	enc := gob.NewEncoder(&buf)

	_ = enc.Encode(opts.maxDepth)

	return xxh3.Hash(buf.Bytes())
}

// cacheKey builds the cache key for a source text under the given options.
func cacheKey(source string, opts optionsKey) string {
	return strconv.FormatUint(xxh3.HashString(source), 16) +
		":" + strconv.FormatUint(hashOptions(opts), 16)
}

// ParseReader parses a program from an io.Reader. The parsed program is
// cached by content hash, so repeated parsing of identical sources reuses
// the earlier parse.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Program, error) {
	// Wrap reader with async read-ahead for concurrent I/O.
	// This allows data to be pre-fetched while we process previous chunks.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	cfg := makeOptions(opts...)

	cfg.logger.TraceContext(ctx, "read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true),
	)

	return parseProgramCached(ctx, string(data), cfg, opts...)
}

// parseProgramCached returns the cached parse of source under the given
// options, parsing and populating the cache on first sight.
func parseProgramCached(
	ctx context.Context,
	source string,
	cfg options,
	opts ...Option,
) (*Program, error) {
	key := cacheKey(source, cfg.opts)

	if value, ok := globalCache.Load(key); ok {
		cfg.logger.TraceContext(ctx, "parse cache hit",
			slog.String("key", key))

		return value.(*Program).Clone(), nil
	}

	prog, err := ParseProgram(ctx, source, opts...)
	if err != nil {
		return nil, err
	}

	globalCache.Store(key, prog.Clone())

	cfg.logger.TraceContext(ctx, "parse cache store",
		slog.String("key", key),
		slog.Int("stmt_count", len(prog.Stmts)),
	)

	return prog, nil
}

// ClearCache removes all cached programs. This is primarily useful for
// testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache = sync.Map{}
}
