package lang

import (
	"strings"

	"github.com/cliqlang/cliq/log"
)

// Node is the name of a single graph node. It is also used as the target
// name of an assignment. Equality and ordering are by underlying text.
type Node string

// ValidNodeName reports whether s is a legal node name: an ASCII letter
// followed by ASCII letters or digits.
func ValidNodeName(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}

		default:
			return false
		}
	}

	return true
}

// Kind indicates the variant of an expression.
type Kind int

const (
	// KindNode is a single named node.
	KindNode Kind = iota

	// KindConnected is a group whose members are pairwise adjacent.
	KindConnected

	// KindDisconnected is a group whose members are mutually non-adjacent
	// as whole components.
	KindDisconnected
)

// String returns a string representation of the expression kind.
func (k Kind) String() string {
	switch k {
	case KindNode:
		return "Node"

	case KindConnected:
		return "Connected"

	case KindDisconnected:
		return "Disconnected"

	default:
		return "Unknown"
	}
}

// Expr is a cliq expression: a node leaf or a grouping of sub-expressions.
//
// Expressions are value-owned trees. Resolution and normalization always
// rebuild rather than alias, so no two expressions share structure and no
// cycles can form.
type Expr struct {
	Kind    Kind
	Node    Node    // set for KindNode only
	Members []*Expr // set for grouping kinds only
}

// NewNode returns a leaf expression naming a single node.
func NewNode(name Node) *Expr {
	return &Expr{Kind: KindNode, Node: name}
}

// NewConnected returns a connected group of the given members.
func NewConnected(members ...*Expr) *Expr {
	return &Expr{Kind: KindConnected, Members: members}
}

// NewDisconnected returns a disconnected group of the given members.
func NewDisconnected(members ...*Expr) *Expr {
	return &Expr{Kind: KindDisconnected, Members: members}
}

// Clone returns a deep copy of the expression.
func (e *Expr) Clone() *Expr {
	if e == nil {
		return nil
	}

	if e.Kind == KindNode {
		return NewNode(e.Node)
	}

	members := make([]*Expr, len(e.Members))
	for i, m := range e.Members {
		members[i] = m.Clone()
	}

	return &Expr{Kind: e.Kind, Members: members}
}

// Equal reports whether two expressions are structurally identical,
// including member order. Use [Expr.Normalize] first to compare graphs
// up to canonical form.
func (e *Expr) Equal(other *Expr) bool {
	if e == nil || other == nil {
		return e == other
	}

	if e.Kind != other.Kind {
		return false
	}

	if e.Kind == KindNode {
		return e.Node == other.Node
	}

	if len(e.Members) != len(other.Members) {
		return false
	}

	for i, m := range e.Members {
		if !m.Equal(other.Members[i]) {
			return false
		}
	}

	return true
}

// String renders the expression in canonical cliq syntax.
func (e *Expr) String() string {
	var b strings.Builder

	e.render(&b)

	return b.String()
}

func (e *Expr) render(b *strings.Builder) {
	switch e.Kind {
	case KindNode:
		b.WriteString(string(e.Node))

	case KindConnected:
		b.WriteByte('{')
		e.renderMembers(b)
		b.WriteByte('}')

	case KindDisconnected:
		b.WriteByte('[')
		e.renderMembers(b)
		b.WriteByte(']')
	}
}

func (e *Expr) renderMembers(b *strings.Builder) {
	for i, m := range e.Members {
		if i > 0 {
			b.WriteString(", ")
		}

		m.render(b)
	}
}

// Stmt is an assignment statement binding a name to an expression value.
type Stmt struct {
	Name Node
	Expr *Expr
}

// Clone returns a deep copy of the statement.
func (s *Stmt) Clone() *Stmt {
	if s == nil {
		return nil
	}

	return &Stmt{Name: s.Name, Expr: s.Expr.Clone()}
}

// Equal reports whether two statements are structurally identical.
func (s *Stmt) Equal(other *Stmt) bool {
	if s == nil || other == nil {
		return s == other
	}

	return s.Name == other.Name && s.Expr.Equal(other.Expr)
}

// String renders the statement as "name = expression".
func (s *Stmt) String() string {
	return string(s.Name) + " = " + s.Expr.String()
}

// Program is an ordered sequence of assignments followed by one trailing
// expression, the program's return value.
type Program struct {
	Stmts []*Stmt
	Expr  *Expr
}

// Clone returns a deep copy of the program.
func (p *Program) Clone() *Program {
	if p == nil {
		return nil
	}

	stmts := make([]*Stmt, len(p.Stmts))
	for i, s := range p.Stmts {
		stmts[i] = s.Clone()
	}

	return &Program{Stmts: stmts, Expr: p.Expr.Clone()}
}

// String renders each assignment on its own line followed by the trailing
// expression.
func (p *Program) String() string {
	var b strings.Builder

	for _, s := range p.Stmts {
		b.WriteString(s.String())
		b.WriteByte('\n')
	}

	b.WriteString(p.Expr.String())

	return b.String()
}

// DefaultMaxDepth is the default maximum nesting depth accepted by the
// parser. Users may modify this before parsing to change the default.
var DefaultMaxDepth = 1000

// optionsKey holds parser configuration options.
// This type is gob-encodable for cache key hashing.
type optionsKey struct {
	maxDepth int
}

// Option configures parsing behavior.
type Option func(*options)

// options collects applied parse options.
type options struct {
	opts   optionsKey
	logger log.Logger // structured logger (outside optionsKey, doesn't affect cache)
}

// WithMaxDepth sets the maximum grouping nesting depth accepted by the
// parser.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.opts.maxDepth = depth
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// makeOptions builds an options struct from defaults plus opts.
func makeOptions(opts ...Option) options {
	o := options{opts: optionsKey{maxDepth: DefaultMaxDepth}}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
