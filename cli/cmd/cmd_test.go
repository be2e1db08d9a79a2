package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// TestWithSourceFilesEmpty tests that an empty source list stores no reader.
func TestWithSourceFilesEmpty(t *testing.T) {
	ctx := WithSourceFiles(context.Background(), nil)

	if reader := sourceFilesFrom(ctx); reader != nil {
		t.Error("WithSourceFiles(nil) should store nil reader")
	}

	ctx = WithSourceFiles(context.Background(), []string{})

	if reader := sourceFilesFrom(ctx); reader != nil {
		t.Error("WithSourceFiles([]) should store nil reader")
	}
}

// TestWithSourceFilesSingleFile tests reading from a single file.
func TestWithSourceFilesSingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "single.cliq")
	content := "{A, B}"

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	reader := sourceFilesFrom(WithSourceFiles(context.Background(), []string{path}))
	if reader == nil {
		t.Fatal("expected non-nil reader for valid file")
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("reading from source files: %v", err)
	}

	if string(data) != content {
		t.Errorf("got %q, want %q", string(data), content)
	}
}

// TestWithSourceFilesShortReads tests that reading in chunks smaller than
// each file advances through the concatenation instead of restarting it.
func TestWithSourceFilesShortReads(t *testing.T) {
	tmpdir := t.TempDir()

	file1 := filepath.Join(tmpdir, "file1.cliq")
	file2 := filepath.Join(tmpdir, "file2.cliq")

	if err := os.WriteFile(file1, []byte("{A, B}"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(file2, []byte("[C, D]"), 0o644); err != nil {
		t.Fatal(err)
	}

	reader := sourceFilesFrom(WithSourceFiles(context.Background(), []string{file1, file2}))
	if reader == nil {
		t.Fatal("expected non-nil reader")
	}

	var data []byte

	buf := make([]byte, 2)

	for {
		n, err := reader.Read(buf)
		data = append(data, buf[:n]...)

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			t.Fatalf("reading from source files: %v", err)
		}
	}

	if want := "{A, B}[C, D]"; string(data) != want {
		t.Errorf("got %q, want %q", string(data), want)
	}
}

// TestWithSourceFilesMultipleFiles tests concatenation of multiple files.
func TestWithSourceFilesMultipleFiles(t *testing.T) {
	tmpdir := t.TempDir()

	file1 := filepath.Join(tmpdir, "file1.cliq")
	file2 := filepath.Join(tmpdir, "file2.cliq")

	if err := os.WriteFile(file1, []byte("G = {A, B}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(file2, []byte("G\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	reader := sourceFilesFrom(WithSourceFiles(context.Background(), []string{file1, file2}))
	if reader == nil {
		t.Fatal("expected non-nil reader")
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("reading from source files: %v", err)
	}

	if string(data) != "G = {A, B}\nG\n" {
		t.Errorf("got %q, want concatenation in order", string(data))
	}
}

// TestWithSourceFilesDuplicatePaths tests that identical paths are read once.
func TestWithSourceFilesDuplicatePaths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dup.cliq")
	content := "{A}"

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	reader := sourceFilesFrom(WithSourceFiles(context.Background(), []string{
		path,
		path,
		path,
	}))
	if reader == nil {
		t.Fatal("expected non-nil reader")
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("reading from source files: %v", err)
	}

	if string(data) != content {
		t.Errorf("got %q, want %q (file should only be read once)", string(data), content)
	}
}

// TestWithSourceFilesSymlinkDuplicate tests dedup through symlinks.
func TestWithSourceFilesSymlinkDuplicate(t *testing.T) {
	tmpdir := t.TempDir()

	target := filepath.Join(tmpdir, "target.cliq")
	link := filepath.Join(tmpdir, "link.cliq")
	content := "[A, B]"

	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	reader := sourceFilesFrom(WithSourceFiles(context.Background(), []string{target, link}))
	if reader == nil {
		t.Fatal("expected non-nil reader")
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("reading from source files: %v", err)
	}

	if string(data) != content {
		t.Errorf("got %q, want %q (symlink should dedup)", string(data), content)
	}
}

// TestWithSourceFilesMissingFile tests that unreadable paths are skipped.
func TestWithSourceFilesMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist.cliq")

	if reader := sourceFilesFrom(WithSourceFiles(context.Background(), []string{missing})); reader != nil {
		t.Error("expected nil reader when no source can be opened")
	}
}

// TestOpenSourceFile tests opening a command's own source argument.
func TestOpenSourceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "source.cliq")
	content := "{A, B}"

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	r, closer, err := openSource(context.Background(), path)
	if err != nil {
		t.Fatalf("openSource: %v", err)
	}

	if closer == nil {
		t.Fatal("expected closer for opened file")
	}
	defer closer()

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != content {
		t.Errorf("got %q, want %q", string(data), content)
	}
}

// TestOpenSourceMissing tests the error for an unreadable source argument.
func TestOpenSourceMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist.cliq")

	_, _, err := openSource(context.Background(), missing)
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	if !errors.Is(err, ErrOpenSource) {
		t.Errorf("expected ErrOpenSource, got %v", err)
	}
}

// TestOpenSourcePrefersContextFiles tests that top-level --source inputs win
// over the command argument.
func TestOpenSourcePrefersContextFiles(t *testing.T) {
	tmpdir := t.TempDir()

	ctxFile := filepath.Join(tmpdir, "ctx.cliq")
	argFile := filepath.Join(tmpdir, "arg.cliq")

	if err := os.WriteFile(ctxFile, []byte("from-context"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(argFile, []byte("from-arg"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := WithSourceFiles(context.Background(), []string{ctxFile})

	r, closer, err := openSource(ctx, argFile)
	if err != nil {
		t.Fatalf("openSource: %v", err)
	}

	if closer != nil {
		defer closer()
	}

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != "from-context" {
		t.Errorf("got %q, want context sources to take precedence", string(data))
	}
}
