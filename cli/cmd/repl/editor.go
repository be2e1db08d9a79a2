package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/cliqlang/cliq/lang"
	"github.com/cliqlang/cliq/log"
)

const defaultEditor = "vi"

// editSessionCommand implements [tea.ExecCommand] for the session
// edit-parse-retry loop. It writes the current bindings as assignment
// statements to a temp file, opens the user's editor, and rebuilds the
// environment from the result. On parse or resolution error the user is
// prompted to re-edit; declining exits the program.
type editSessionCommand struct {
	env     *lang.Env
	ctxFunc func() context.Context
	newEnv  *lang.Env
	logger  log.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editSessionCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editSessionCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editSessionCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-parse-retry loop. If the user declines to
// re-edit after an error, it returns [ErrEditDeclined].
func (c *editSessionCommand) Run() error {
	ctx := c.ctxFunc()

	var buf strings.Builder

	for name, expr := range c.env.Bindings() {
		stmt := lang.Stmt{Name: name, Expr: expr}
		buf.WriteString(stmt.String())
		buf.WriteByte('\n')
	}

	content := buf.String()

	f, err := os.CreateTemp(os.TempDir(), "cliq-repl-*.cliq")
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	if err := f.Chmod(0o600); err != nil {
		f.Close()

		return err
	}

	f.Close()

	for {
		if err := os.WriteFile(tmpPath, []byte(content), 0o600); err != nil {
			return err
		}

		r, err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath)
		if err != nil {
			return err
		}

		// An emptied file cancels the edit.
		br := bufio.NewReader(r)
		if _, err := br.Peek(1); err != nil {
			return nil
		}

		data, err := io.ReadAll(br)
		if err != nil {
			return err
		}

		newEnv, rebuildErr := c.rebuild(ctx, string(data))

		c.logger.TraceContext(ctx, "editor parse attempt",
			slog.Int("content_length", len(data)),
			slog.Bool("success", rebuildErr == nil),
		)

		if rebuildErr == nil {
			c.newEnv = newEnv

			return nil
		}

		fmt.Fprintf(c.stderr, "\nError: %s\n", rebuildErr)
		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		response := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if response == "n" || response == "no" {
			return ErrEditDeclined
		}

		data, readErr := os.ReadFile(tmpPath)
		if readErr != nil {
			return readErr
		}

		content = string(data)
	}
}

// rebuild parses the edited statements and resolves them into a fresh
// environment under the session's binding policy.
func (c *editSessionCommand) rebuild(
	ctx context.Context,
	source string,
) (*lang.Env, error) {
	stmts, err := lang.ParseStmts(ctx, source, lang.WithLogger(c.logger))
	if err != nil {
		return nil, err
	}

	env := lang.NewEnv(c.env.Config(), lang.WithEnvLogger(c.logger))

	if _, err := lang.ResolveStmts(stmts, env); err != nil {
		return nil, err
	}

	return env, nil
}

// runEditor launches the user's editor on the given file path and
// returns a reader over the edited content.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) (io.Reader, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return nil, err
	}

	return os.Open(path)
}
