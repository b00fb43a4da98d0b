// Package circuit records gate sequences over fixed qubit and classical registers.
package circuit

import (
	"errors"
	"fmt"
)

var (
	ErrQubitOutOfRange = errors.New("qubit index out of range")
	ErrClbitOutOfRange = errors.New("classical bit index out of range")
	ErrWidthMismatch   = errors.New("circuit width mismatch")
	ErrArity           = errors.New("wrong number of operands")
)

// Kind identifies the operation an instruction performs.
type Kind int

const (
	X Kind = iota
	H
	CCZ
	Measure
)

func (k Kind) String() string {
	switch k {
	case X:
		return "x"
	case H:
		return "h"
	case CCZ:
		return "ccz"
	case Measure:
		return "measure"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// arity is the number of qubits a kind acts on.
func (k Kind) arity() int {
	if k == CCZ {
		return 3
	}
	return 1
}

// Instruction is one gate application.
type Instruction struct {
	Kind   Kind
	Qubits []int
	Clbits []int // only set for Measure
}

func (in Instruction) String() string {
	if in.Kind == Measure {
		return fmt.Sprintf("%s %v -> %v", in.Kind, in.Qubits, in.Clbits)
	}
	return fmt.Sprintf("%s %v", in.Kind, in.Qubits)
}

/*
Circuit is an ordered list of instructions over a fixed qubit register and a
parallel classical register.

Builder methods append in place and return the receiver so calls can be chained.
The first failure is kept and every later call becomes a no-op; check Err once the
circuit is assembled.
*/
type Circuit struct {
	qubits       int
	clbits       int
	instructions []Instruction
	err          error
}

// New allocates a circuit with the given register sizes.
func New(qubits, clbits int) *Circuit {
	c := &Circuit{qubits: qubits, clbits: clbits}
	if qubits < 0 || clbits < 0 {
		c.err = fmt.Errorf("%w: negative register size (%d, %d)", ErrWidthMismatch, qubits, clbits)
	}
	return c
}

func (c *Circuit) NumQubits() int { return c.qubits }
func (c *Circuit) NumClbits() int { return c.clbits }
func (c *Circuit) Err() error { return c.err }

// Len is the number of recorded instructions.
func (c *Circuit) Len() int { return len(c.instructions) }

// Instructions returns a copy of the instruction sequence.
func (c *Circuit) Instructions() []Instruction {
	out := make([]Instruction, len(c.instructions))
	for i, in := range c.instructions {
		out[i] = in.clone()
	}
	return out
}

// Clone returns an independent copy, sticky error included.
func (c *Circuit) Clone() *Circuit {
	return &Circuit{
		qubits:       c.qubits,
		clbits:       c.clbits,
		instructions: c.Instructions(),
		err:          c.err,
	}
}

// Append records a single instruction after validating its operands.
func (c *Circuit) Append(kind Kind, qubits ...int) *Circuit {
	if c.err != nil {
		return c
	}
	if kind == Measure {
		c.err = fmt.Errorf("%w: use MeasureAll or MeasureInto for measurements", ErrArity)
		return c
	}
	if len(qubits) != kind.arity() {
		c.err = fmt.Errorf("%w: %s takes %d qubits, got %d", ErrArity, kind, kind.arity(), len(qubits))
		return c
	}
	if err := c.checkQubits(qubits); err != nil {
		c.err = fmt.Errorf("%s %v: %w", kind, qubits, err)
		return c
	}

	c.instructions = append(c.instructions, Instruction{
		Kind:   kind,
		Qubits: append([]int(nil), qubits...),
	})
	return c
}

// X applies a bit flip to each listed qubit, in order.
func (c *Circuit) X(qubits ...int) *Circuit {
	for _, q := range qubits {
		c.Append(X, q)
	}
	return c
}

// H applies a Hadamard to each listed qubit, in order.
func (c *Circuit) H(qubits ...int) *Circuit {
	for _, q := range qubits {
		c.Append(H, q)
	}
	return c
}

// CCZ flips the phase when all three qubits are 1. The gate is symmetric, so which
// operand is called the target does not matter.
func (c *Circuit) CCZ(control0, control1, target int) *Circuit {
	return c.Append(CCZ, control0, control1, target)
}

// MeasureInto measures qubits[i] into clbits[i].
func (c *Circuit) MeasureInto(qubits, clbits []int) *Circuit {
	if c.err != nil {
		return c
	}
	if len(qubits) != len(clbits) {
		c.err = fmt.Errorf("%w: %d qubits measured into %d clbits", ErrArity, len(qubits), len(clbits))
		return c
	}
	if err := c.checkQubits(qubits); err != nil {
		c.err = fmt.Errorf("measure %v: %w", qubits, err)
		return c
	}
	for _, b := range clbits {
		if b < 0 || b >= c.clbits {
			c.err = fmt.Errorf("measure -> %d: %w (register size %d)", b, ErrClbitOutOfRange, c.clbits)
			return c
		}
	}

	for i := range qubits {
		c.instructions = append(c.instructions, Instruction{
			Kind:   Measure,
			Qubits: []int{qubits[i]},
			Clbits: []int{clbits[i]},
		})
	}
	return c
}

// MeasureAll measures qubit i into clbit i for every qubit in the register.
func (c *Circuit) MeasureAll() *Circuit {
	return c.MeasureInto(Range(c.qubits), Range(c.qubits))
}

/*
Compose appends the instruction sequence of other onto c, mapping qubit i to
qubit i and clbit i to clbit i. other is left untouched. A wider operand, or one
that carries its own sticky error, fails the receiver.
*/
func (c *Circuit) Compose(other *Circuit) *Circuit {
	if c.err != nil {
		return c
	}
	if other == nil {
		c.err = fmt.Errorf("%w: compose with nil circuit", ErrWidthMismatch)
		return c
	}
	if other.err != nil {
		c.err = fmt.Errorf("compose: %w", other.err)
		return c
	}
	if other.qubits > c.qubits || other.clbits > c.clbits {
		c.err = fmt.Errorf(
			"%w: cannot compose %d qubits/%d clbits onto %d qubits/%d clbits",
			ErrWidthMismatch, other.qubits, other.clbits, c.qubits, c.clbits,
		)
		return c
	}

	c.instructions = append(c.instructions, other.Instructions()...)
	return c
}

func (c *Circuit) checkQubits(qubits []int) error {
	seen := make(map[int]bool, len(qubits))
	for _, q := range qubits {
		if q < 0 || q >= c.qubits {
			return fmt.Errorf("%w: %d (register size %d)", ErrQubitOutOfRange, q, c.qubits)
		}
		if seen[q] {
			return fmt.Errorf("%w: qubit %d repeated", ErrArity, q)
		}
		seen[q] = true
	}
	return nil
}

func (in Instruction) clone() Instruction {
	out := Instruction{Kind: in.Kind, Qubits: append([]int(nil), in.Qubits...)}
	if in.Clbits != nil {
		out.Clbits = append([]int(nil), in.Clbits...)
	}
	return out
}

// Range returns the indices 0..n-1, for register-wide layers.
func Range(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
