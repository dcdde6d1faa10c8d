// Package filter implements the file tests of a find-style utility: each
// predicate is built from command-line tokens and evaluated per file
// against lazily fetched stat metadata.
package filter

import (
	"fmt"
)

// Filter is the evaluation contract. Filter reports whether file passes
// the test; any OS failure aborts that single evaluation and is returned
// to the caller.
type Filter interface {
	Filter(file *File) (bool, error)
}

// EffectFilter is implemented by filters that steer the traversal or
// produce output, and by the operators that combine them.
type EffectFilter interface {
	Filter
	FilterWithSideEffects(file *File, effects *SideEffects) (bool, error)
}

// Apply evaluates f against file, collecting traversal instructions into
// effects when f emits any. Plain predicates are evaluated directly.
func Apply(f Filter, file *File, effects *SideEffects) (bool, error) {
	if ef, ok := f.(EffectFilter); ok {
		return ef.FilterWithSideEffects(file, effects)
	}
	return f.Filter(file)
}

// Instruction tells the traversal how to treat the current search path.
type Instruction int

const (
	// InstructionPrune stops descending into the current directory.
	InstructionPrune Instruction = iota

	// InstructionQuit stops the whole traversal.
	InstructionQuit
)

// SideEffects collects the instructions emitted while a filter tree is
// evaluated on one file. A nil receiver discards them.
type SideEffects struct {
	instructions []Instruction
}

func (s *SideEffects) Push(instruction Instruction) {
	if s == nil {
		return
	}
	s.instructions = append(s.instructions, instruction)
}

func (s *SideEffects) Instructions() []Instruction {
	if s == nil {
		return nil
	}
	return s.instructions
}

// Args is the token stream a filter consumes its arguments from.
type Args struct {
	tokens []string
	pos    int
}

func NewArgs(tokens []string) *Args {
	return &Args{tokens: tokens}
}

// Next consumes and returns the next token.
func (a *Args) Next() (string, bool) {
	if a.pos >= len(a.tokens) {
		return "", false
	}
	tok := a.tokens[a.pos]
	a.pos++
	return tok, true
}

// Peek returns the next token without consuming it.
func (a *Args) Peek() (string, bool) {
	if a.pos >= len(a.tokens) {
		return "", false
	}
	return a.tokens[a.pos], true
}

// demand consumes the next token or fails with an error naming the
// predicate that needed it.
func (a *Args) demand(name string) (string, error) {
	tok, ok := a.Next()
	if !ok {
		return "", fmt.Errorf("%s: missing argument", name)
	}
	return tok, nil
}

// True always matches.
type True struct{}

func NewTrue() *True {
	return &True{}
}

func (*True) Filter(_ *File) (bool, error) {
	return true, nil
}

// False never matches.
type False struct{}

func NewFalse() *False {
	return &False{}
}

func (*False) Filter(_ *File) (bool, error) {
	return false, nil
}
