package main

import (
	"fmt"

	md2html "github.com/alnah/go-md2html"
)

// poolAdapter exposes an md2html.ConverterPool through the Pool interface.
type poolAdapter struct {
	pool *md2html.ConverterPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

// Acquire returns a converter, or nil once the pool is closed.
func (a *poolAdapter) Acquire() CLIConverter {
	conv := a.pool.Acquire()
	if conv == nil {
		return nil
	}
	return conv
}

// Release returns a converter to the pool.
// Panics if conv was not acquired from this adapter (programmer error).
func (a *poolAdapter) Release(conv CLIConverter) {
	c, ok := conv.(*md2html.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", conv))
	}
	a.pool.Release(c)
}

// Size returns the pool capacity.
func (a *poolAdapter) Size() int {
	return a.pool.Size()
}
