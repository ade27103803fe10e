package config

import (
	"github.com/nomis52/chainkit/chain"
)

// BuildChain turns a ChainConfig into an executable chain, resolving
// handler keys through resolver at run time. Builder options (logger,
// callbacks registered via a returned builder) can be layered by using
// NewBuilder directly; for the common case this helper wires the declared
// steps in order and builds.
func BuildChain(cc ChainConfig, resolver chain.Resolver, opts ...chain.BuilderOption) (*chain.Chain, error) {
	return NewBuilder(cc, resolver, opts...).Build()
}

// NewBuilder returns a chain.Builder pre-populated with the declared steps,
// so callers can still attach guard conditions, an error handler, or
// diagnostics sinks before calling Build.
func NewBuilder(cc ChainConfig, resolver chain.Resolver, opts ...chain.BuilderOption) *chain.Builder {
	b := chain.NewBuilder(resolver, opts...)
	for _, step := range cc.Steps {
		if step.Result {
			b.AddResultHandler(step.Handler)
		} else {
			b.AddHandler(step.Handler)
		}
	}
	return b
}
