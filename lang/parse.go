package lang

import (
	"context"
	"log/slog"
)

// ParseExpr parses a single expression from a string.
func ParseExpr(ctx context.Context, s string, opts ...Option) (*Expr, error) {
	p := newParser(s, opts...)

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if err := p.expectEOF(); err != nil {
		return nil, err
	}

	p.config.logger.TraceContext(ctx, "expression parsed",
		slog.Int("source_length", len(s)))

	return expr, nil
}

// ParseStmt parses a single assignment statement from a string.
func ParseStmt(ctx context.Context, s string, opts ...Option) (*Stmt, error) {
	p := newParser(s, opts...)

	stmt, err := p.parseStmt()
	if err != nil {
		return nil, err
	}

	if err := p.expectEOF(); err != nil {
		return nil, err
	}

	p.config.logger.TraceContext(ctx, "statement parsed",
		slog.String("name", string(stmt.Name)))

	return stmt, nil
}

// ParseStmts parses zero or more assignment statements from a string,
// with no trailing expression.
func ParseStmts(ctx context.Context, s string, opts ...Option) ([]*Stmt, error) {
	p := newParser(s, opts...)

	var stmts []*Stmt

	for {
		p.skipSpace()

		if p.eof() {
			break
		}

		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}

	p.config.logger.TraceContext(ctx, "statements parsed",
		slog.Int("stmt_count", len(stmts)))

	return stmts, nil
}

// ParseProgram parses a full program: zero or more assignments followed by
// a trailing expression.
func ParseProgram(ctx context.Context, s string, opts ...Option) (*Program, error) {
	p := newParser(s, opts...)
	prog := &Program{}

	for {
		p.skipSpace()

		if p.eof() {
			return nil, p.errorf("expression")
		}

		// An identifier followed by '=' starts an assignment; anything
		// else must be the trailing expression.
		if !p.atStmt() {
			break
		}

		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}

		prog.Stmts = append(prog.Stmts, stmt)
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if err := p.expectEOF(); err != nil {
		return nil, err
	}

	prog.Expr = expr

	p.config.logger.TraceContext(ctx, "program parsed",
		slog.Int("stmt_count", len(prog.Stmts)))

	return prog, nil
}

// ParseLine parses one line of interactive input as either an assignment
// statement or a bare expression. Exactly one of the returned values is
// non-nil on success.
func ParseLine(ctx context.Context, s string, opts ...Option) (*Stmt, *Expr, error) {
	p := newParser(s, opts...)

	p.skipSpace()

	if p.atStmt() {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, nil, err
		}

		if err := p.expectEOF(); err != nil {
			return nil, nil, err
		}

		p.config.logger.TraceContext(ctx, "line parsed",
			slog.String("kind", "assignment"))

		return stmt, nil, nil
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, nil, err
	}

	if err := p.expectEOF(); err != nil {
		return nil, nil, err
	}

	p.config.logger.TraceContext(ctx, "line parsed",
		slog.String("kind", "expression"))

	return nil, expr, nil
}

// parser holds recursive-descent parser state over an input string.
// All tokens of the grammar are single ASCII bytes or ASCII identifiers,
// so the parser scans bytes rather than runes.
type parser struct {
	config options
	input  string
	pos    int
	line   int
	col    int
	depth  int
}

func newParser(s string, opts ...Option) *parser {
	return &parser{
		config: makeOptions(opts...),
		input:  s,
		line:   1,
		col:    1,
	}
}

// parseExpr parses: Identifier | '{' Sequence '}' | '[' Sequence ']'.
func (p *parser) parseExpr() (*Expr, error) {
	p.skipSpace()

	switch {
	case p.peek() == '{':
		members, err := p.parseSequence('{', '}')
		if err != nil {
			return nil, err
		}

		return NewConnected(members...), nil

	case p.peek() == '[':
		members, err := p.parseSequence('[', ']')
		if err != nil {
			return nil, err
		}

		return NewDisconnected(members...), nil

	case isNameStart(p.peek()):
		name := p.parseName()

		return NewNode(name), nil

	default:
		return nil, p.errorf("identifier", "'{'", "'['")
	}
}

// parseSequence parses: open (Expression (',' Expression)* ','?)? term.
func (p *parser) parseSequence(open, term byte) ([]*Expr, error) {
	if p.depth >= p.config.opts.maxDepth {
		return nil, ErrMaxDepthExceeded.
			With(slog.Int("depth", p.depth)).
			With(slog.Int("max_depth", p.config.opts.maxDepth))
	}

	p.depth++
	defer func() { p.depth-- }()

	p.advance() // consume open delimiter
	p.skipSpace()

	var members []*Expr

	for {
		if p.eof() {
			return nil, p.errorf(quoteByte(term))
		}

		if p.peek() == term {
			p.advance()

			return members, nil
		}

		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		members = append(members, expr)

		p.skipSpace()

		switch {
		case p.peek() == ',':
			p.advance()
			p.skipSpace()

		case p.peek() == term:
			// terminator handled at top of loop

		default:
			return nil, p.errorf("','", quoteByte(term))
		}
	}
}

// parseStmt parses: Identifier '=' Expression.
func (p *parser) parseStmt() (*Stmt, error) {
	p.skipSpace()

	if !isNameStart(p.peek()) {
		return nil, p.errorf("identifier")
	}

	name := p.parseName()

	p.skipSpace()

	if p.peek() != '=' {
		return nil, p.errorf("'='")
	}

	p.advance()

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &Stmt{Name: name, Expr: expr}, nil
}

// atStmt reports whether the input at the current position begins an
// assignment statement (identifier followed by '='). The scan does not
// consume input.
func (p *parser) atStmt() bool {
	if !isNameStart(p.peek()) {
		return false
	}

	i := p.pos
	for i < len(p.input) && isNameByte(p.input[i]) {
		i++
	}

	for i < len(p.input) && isSpace(p.input[i]) {
		i++
	}

	return i < len(p.input) && p.input[i] == '='
}

// parseName consumes an identifier. The caller must have verified that the
// current byte starts a name.
func (p *parser) parseName() Node {
	start := p.pos

	for !p.eof() && isNameByte(p.input[p.pos]) {
		p.advance()
	}

	return Node(p.input[start:p.pos])
}

// expectEOF fails unless only whitespace remains.
func (p *parser) expectEOF() error {
	p.skipSpace()

	if !p.eof() {
		return p.errorf("end of input")
	}

	return nil
}

// errorf builds a ParseError at the current position listing the expected
// tokens.
func (p *parser) errorf(expected ...string) error {
	return &ParseError{
		Source:   p.input,
		Expected: expected,
		Offset:   p.pos,
		Line:     p.line,
		Column:   p.col,
	}
}

// Helper methods

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}

	return p.input[p.pos]
}

func (p *parser) advance() {
	if p.eof() {
		return
	}

	if p.input[p.pos] == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}

	p.pos++
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.input[p.pos]) {
		p.advance()
	}
}

// Character classification

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isNameStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isNameByte(b byte) bool {
	return isNameStart(b) || (b >= '0' && b <= '9')
}

func quoteByte(b byte) string {
	return "'" + string(b) + "'"
}
