// Package simulator executes circuits on an in-memory state vector.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/theapemachine/errnie"
	"github.com/theapemachine/qgrover/circuit"
)

var (
	ErrInvalidShots    = errors.New("shots must be positive")
	ErrNilCircuit      = errors.New("nil circuit")
	ErrMeasurement     = errors.New("circuit contains measurements")
	ErrUnsupportedGate = errors.New("unsupported gate")
)

// Result carries the outcome of a Run.
type Result struct {
	Shots  int
	Memory []string       // one bitstring per shot, in execution order
	Counts map[string]int // bitstring -> occurrences
}

// Simulator is a noiseless state-vector backend.
type Simulator struct {
	rng *rand.Rand
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithSeed makes sampling reproducible.
func WithSeed(seed uint64) Option {
	return func(s *Simulator) {
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

func New(opts ...Option) *Simulator {
	s := &Simulator{}
	for _, opt := range opts {
		opt(s)
	}

	if s.rng == nil {
		seed := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	return s
}

/*
Run executes qc for the given number of shots and records every shot's
classical register as a bitstring, clbit 0 rightmost.

When no gate follows a measurement on the same qubit the state is evolved once
and all shots are sampled from it. Otherwise each shot is simulated on its own,
collapsing at every measurement. ctx is checked between shots.
*/
func (s *Simulator) Run(ctx context.Context, qc *circuit.Circuit, shots int) (*Result, error) {
	if qc == nil {
		return nil, ErrNilCircuit
	}
	if err := qc.Err(); err != nil {
		return nil, fmt.Errorf("invalid circuit: %w", err)
	}
	if shots <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidShots, shots)
	}

	errnie.Info(
		"simulator run - qubits %d, clbits %d, instructions %d, shots %d",
		qc.NumQubits(), qc.NumClbits(), qc.Len(), shots,
	)

	instructions := qc.Instructions()
	result := &Result{
		Shots:  shots,
		Memory: make([]string, 0, shots),
		Counts: make(map[string]int),
	}

	var sample func() (string, error)
	if terminalMeasurements(instructions) {
		sv, measures, err := evolve(qc.NumQubits(), instructions)
		if err != nil {
			return nil, err
		}
		probs := sv.Probabilities()
		sample = func() (string, error) {
			index := sampleIndex(probs, s.rng.Float64())
			clbits := make([]byte, qc.NumClbits())
			for _, m := range measures {
				clbits[m.Clbits[0]] = byte(index >> m.Qubits[0] & 1)
			}
			return bitstring(clbits), nil
		}
	} else {
		sample = func() (string, error) {
			return s.shot(qc.NumQubits(), qc.NumClbits(), instructions)
		}
	}

	for i := 0; i < shots; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run interrupted after %d shots: %w", i, err)
		}

		outcome, err := sample()
		if err != nil {
			return nil, err
		}
		result.Memory = append(result.Memory, outcome)
		result.Counts[outcome]++
	}

	return result, nil
}

// Statevector evolves a measurement-free circuit from |0...0⟩.
func Statevector(qc *circuit.Circuit) (*StateVector, error) {
	if qc == nil {
		return nil, ErrNilCircuit
	}
	if err := qc.Err(); err != nil {
		return nil, fmt.Errorf("invalid circuit: %w", err)
	}

	sv, measures, err := evolve(qc.NumQubits(), qc.Instructions())
	if err != nil {
		return nil, err
	}
	if len(measures) > 0 {
		return nil, ErrMeasurement
	}
	return sv, nil
}

// evolve applies every unitary and sets the measurements aside. Only valid when
// the measurements are terminal.
func evolve(qubits int, instructions []circuit.Instruction) (*StateVector, []circuit.Instruction, error) {
	sv := NewStateVector(qubits)
	var measures []circuit.Instruction

	for _, in := range instructions {
		if in.Kind == circuit.Measure {
			measures = append(measures, in)
			continue
		}
		if err := sv.Apply(in); err != nil {
			return nil, nil, err
		}
	}
	return sv, measures, nil
}

func (s *Simulator) shot(qubits, clbits int, instructions []circuit.Instruction) (string, error) {
	sv := NewStateVector(qubits)
	register := make([]byte, clbits)

	for _, in := range instructions {
		if in.Kind == circuit.Measure {
			register[in.Clbits[0]] = byte(sv.Collapse(in.Qubits[0], s.rng.Float64()))
			continue
		}
		if err := sv.Apply(in); err != nil {
			return "", err
		}
	}
	return bitstring(register), nil
}

// terminalMeasurements reports whether no instruction touches a qubit after that
// qubit has been measured.
func terminalMeasurements(instructions []circuit.Instruction) bool {
	measured := make(map[int]bool)
	for _, in := range instructions {
		if in.Kind == circuit.Measure {
			if measured[in.Qubits[0]] {
				return false
			}
			measured[in.Qubits[0]] = true
			continue
		}
		for _, q := range in.Qubits {
			if measured[q] {
				return false
			}
		}
	}
	return true
}

// bitstring prints register[0] as the rightmost character.
func bitstring(register []byte) string {
	var sb strings.Builder
	sb.Grow(len(register))
	for i := len(register) - 1; i >= 0; i-- {
		sb.WriteByte('0' + register[i])
	}
	return sb.String()
}
