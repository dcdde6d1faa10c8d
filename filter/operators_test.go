package filter

import (
	"errors"
	"testing"
)

// probe counts evaluations and can emit an instruction, so short-circuit
// and side-effect propagation are observable.
type probe struct {
	result      bool
	err         error
	instruction *Instruction
	calls       int
}

func (p *probe) Filter(file *File) (bool, error) {
	return p.FilterWithSideEffects(file, nil)
}

func (p *probe) FilterWithSideEffects(_ *File, effects *SideEffects) (bool, error) {
	p.calls++
	if p.instruction != nil {
		effects.Push(*p.instruction)
	}
	return p.result, p.err
}

func TestOperatorTruthTables(t *testing.T) {
	file := NewFile("/a", "/", 0, false)
	for _, test := range []struct {
		Name    string
		Tree    Filter
		Matches bool
	}{
		{"and true true", And(NewTrue(), NewTrue()), true},
		{"and true false", And(NewTrue(), NewFalse()), false},
		{"and false true", And(NewFalse(), NewTrue()), false},
		{"or false true", Or(NewFalse(), NewTrue()), true},
		{"or false false", Or(NewFalse(), NewFalse()), false},
		{"or true false", Or(NewTrue(), NewFalse()), true},
		{"not true", Not(NewTrue()), false},
		{"not false", Not(NewFalse()), true},
		{"comma true false", Comma(NewTrue(), NewFalse()), false},
		{"comma false true", Comma(NewFalse(), NewTrue()), true},
	} {
		t.Run(test.Name, func(t *testing.T) {
			got, err := test.Tree.Filter(file)
			if err != nil {
				t.Fatalf("Expected no error but got %v", err)
			}
			if got != test.Matches {
				t.Fatalf("Expected %v but got %v", test.Matches, got)
			}
		})
	}
}

func TestOperatorsShortCircuit(t *testing.T) {
	file := NewFile("/a", "/", 0, false)

	rhs := &probe{result: true}
	if got, err := And(NewFalse(), rhs).Filter(file); err != nil || got {
		t.Fatalf("Expected false without error but got %v, %v", got, err)
	}
	if rhs.calls != 0 {
		t.Fatalf("Expected the right operand to be skipped but it ran %d times", rhs.calls)
	}

	rhs = &probe{result: false}
	if got, err := Or(NewTrue(), rhs).Filter(file); err != nil || !got {
		t.Fatalf("Expected true without error but got %v, %v", got, err)
	}
	if rhs.calls != 0 {
		t.Fatalf("Expected the right operand to be skipped but it ran %d times", rhs.calls)
	}

	// Comma always evaluates both sides.
	lhs, rhs := &probe{result: false}, &probe{result: true}
	if got, err := Comma(lhs, rhs).Filter(file); err != nil || !got {
		t.Fatalf("Expected true without error but got %v, %v", got, err)
	}
	if lhs.calls != 1 || rhs.calls != 1 {
		t.Fatalf("Expected both operands to run but got %d and %d", lhs.calls, rhs.calls)
	}
}

func TestOperatorsPropagateErrors(t *testing.T) {
	file := NewFile("/a", "/", 0, false)
	boom := errors.New("boom")

	if _, err := And(&probe{err: boom}, NewTrue()).Filter(file); !errors.Is(err, boom) {
		t.Fatalf("Expected the error to propagate but got %v", err)
	}
	if _, err := Not(&probe{err: boom}).Filter(file); !errors.Is(err, boom) {
		t.Fatalf("Expected the error to propagate but got %v", err)
	}
}

func TestOperatorsForwardSideEffects(t *testing.T) {
	file := NewFile("/a", "/", 0, false)
	prune := InstructionPrune

	effects := &SideEffects{}
	tree := And(&probe{result: true, instruction: &prune}, NewFalse())
	got, err := Apply(tree, file, effects)
	if err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}
	if got {
		t.Fatalf("Expected the conjunction to be false")
	}
	instructions := effects.Instructions()
	if len(instructions) != 1 || instructions[0] != InstructionPrune {
		t.Fatalf("Expected a prune instruction but got %v", instructions)
	}
}

func TestNilSideEffectsAreDiscarded(t *testing.T) {
	var effects *SideEffects
	effects.Push(InstructionQuit)
	if effects.Instructions() != nil {
		t.Fatalf("Expected a nil collector to stay empty")
	}
}
