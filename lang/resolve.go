package lang

// Resolution substitutes identifier references with previously bound
// expressions. There are some subtleties with respect to name shadowing
// and recursion; see [Config] and [Env] for how each is handled.

import (
	"iter"
	"log/slog"
	"slices"

	"github.com/cliqlang/cliq/log"
)

// Config is the immutable resolution policy shared by one or more
// sessions. The zero value disallows both shadowing and recursion.
type Config struct {
	shadowing bool
	recursion bool
}

// ConfigOption configures a resolution policy at construction.
type ConfigOption func(*Config)

// NewConfig creates a resolution policy from the given options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := &Config{}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// WithShadowing allows redefinition of bound names:
//
//	G = A
//	G = B
//	G ⇒ B
func WithShadowing(allow bool) ConfigOption {
	return func(cfg *Config) {
		cfg.shadowing = allow
	}
}

// WithRecursion allows a binding to reference its own name.
//
// Recursive bindings are reserved behavior: the policy flag only disables
// the violation check, and no unrolling semantics are defined for the
// stored self-reference.
func WithRecursion(allow bool) ConfigOption {
	return func(cfg *Config) {
		cfg.recursion = allow
	}
}

// Shadowing reports whether the policy allows rebinding bound names.
func (cfg *Config) Shadowing() bool { return cfg.shadowing }

// Recursion reports whether the policy allows self-referential bindings.
func (cfg *Config) Recursion() bool { return cfg.recursion }

// Env is the running resolution environment of one session. It owns its
// binding map exclusively; the referenced Config is shared and never
// mutated.
type Env struct {
	bindings map[Node]*Expr
	config   *Config
	logger   log.Logger // zero value is a no-op
}

// NewEnv creates a new empty resolution environment governed by the given
// policy. A nil config behaves as the zero-value Config.
func NewEnv(config *Config, opts ...EnvOption) *Env {
	if config == nil {
		config = &Config{}
	}

	env := &Env{
		bindings: make(map[Node]*Expr),
		config:   config,
	}

	for _, opt := range opts {
		opt(env)
	}

	return env
}

// EnvOption configures an environment at construction.
type EnvOption func(*Env)

// WithEnvLogger sets the structured logger for trace-level debugging of
// binding operations.
func WithEnvLogger(logger log.Logger) EnvOption {
	return func(env *Env) {
		env.logger = logger
	}
}

// Config returns the policy governing this environment.
func (env *Env) Config() *Config { return env.config }

// Lookup returns the expression bound to the given name, or the name
// itself as a leaf when unbound. Unbound identifiers are valid and denote
// atomic nodes. The returned expression is a deep copy, preserving value
// ownership of stored bindings.
func (env *Env) Lookup(name Node) *Expr {
	if expr, ok := env.bindings[name]; ok {
		return expr.Clone()
	}

	return NewNode(name)
}

// Bound reports whether the given name has a binding.
func (env *Env) Bound(name Node) bool {
	_, ok := env.bindings[name]

	return ok
}

// Insert binds the given name to an expression value.
//
// It fails with [ErrShadowing] when the name is already bound and the
// policy disallows rebinding, and with [ErrRecursion] when the expression
// references the name inside a grouping and the policy disallows
// recursion. A value that is exactly the bare leaf of the name is not a
// recursion violation: it denotes the atomic node of that name.
func (env *Env) Insert(name Node, expr *Expr) error {
	if !env.config.shadowing && env.Bound(name) {
		return ErrShadowing.With(slog.String("name", string(name)))
	}

	if !env.config.recursion &&
		expr.Kind != KindNode && expr.ContainsNode(name) {
		return ErrRecursion.With(slog.String("name", string(name)))
	}

	env.logger.Trace("bind",
		slog.String("name", string(name)),
		slog.Bool("rebound", env.Bound(name)),
	)

	env.bindings[name] = expr

	return nil
}

// Len returns the number of bindings in the environment.
func (env *Env) Len() int { return len(env.bindings) }

// Reset removes all bindings, leaving the policy in place.
func (env *Env) Reset() {
	env.bindings = make(map[Node]*Expr)
}

// Names returns all bound names in sorted order.
func (env *Env) Names() []Node {
	names := make([]Node, 0, len(env.bindings))
	for name := range env.bindings {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Bindings returns an iterator over all (name, expression) pairs in
// sorted name order. The yielded expressions are the stored values; do
// not mutate them.
func (env *Env) Bindings() iter.Seq2[Node, *Expr] {
	return func(yield func(Node, *Expr) bool) {
		for _, name := range env.Names() {
			if !yield(name, env.bindings[name]) {
				return
			}
		}
	}
}

// Resolve replaces every bound identifier in the expression with its
// bound value and rebuilds the same grouping structure. Resolution is a
// single substitution level: the value substituted is whatever was stored
// at bind time, and is not re-resolved. Resolution never normalizes.
func (e *Expr) Resolve(env *Env) (*Expr, error) {
	switch e.Kind {
	case KindNode:
		return env.Lookup(e.Node), nil

	case KindConnected, KindDisconnected:
		members := make([]*Expr, len(e.Members))

		for i, m := range e.Members {
			resolved, err := m.Resolve(env)
			if err != nil {
				return nil, err
			}

			members[i] = resolved
		}

		return &Expr{Kind: e.Kind, Members: members}, nil

	default:
		return e.Clone(), nil
	}
}

// Resolve resolves the right-hand side against the current environment
// and binds the statement's name to the result, returning the substituted
// statement. The name itself is not resolved, so already-bound names are
// substituted forward while the target binding is created fresh.
func (s *Stmt) Resolve(env *Env) (*Stmt, error) {
	resolved, err := s.Expr.Resolve(env)
	if err != nil {
		return nil, err
	}

	if err := env.Insert(s.Name, resolved.Clone()); err != nil {
		return nil, err
	}

	return &Stmt{Name: s.Name, Expr: resolved}, nil
}

// ResolveStmts resolves each statement in order against the same
// environment, propagating the first error without resolving the
// remainder.
func ResolveStmts(stmts []*Stmt, env *Env) ([]*Stmt, error) {
	resolved := make([]*Stmt, 0, len(stmts))

	for _, s := range stmts {
		rs, err := s.Resolve(env)
		if err != nil {
			return nil, err
		}

		resolved = append(resolved, rs)
	}

	return resolved, nil
}

// Resolve resolves every assignment in order, threading the same
// environment, then resolves the trailing expression against the final
// environment and returns it as the program's value. Any error aborts the
// remainder of the program.
func (p *Program) Resolve(env *Env) (*Expr, error) {
	if _, err := ResolveStmts(p.Stmts, env); err != nil {
		return nil, err
	}

	return p.Expr.Resolve(env)
}
