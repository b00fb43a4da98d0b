package qgrover

import (
	"context"
	"errors"
	"fmt"

	"github.com/theapemachine/errnie"
	"github.com/theapemachine/qgrover/circuit"
	"github.com/theapemachine/qgrover/simulator"
)

const (
	// Iterations is ⌊π/4·√8⌋ for one marked item among eight.
	Iterations = 2

	DefaultShots = 100
)

// ErrNoResult is returned when a backend reports neither a result nor an error.
var ErrNoResult = errors.New("backend returned no result")

// Backend runs a measured circuit and reports every shot.
type Backend interface {
	Run(ctx context.Context, qc *circuit.Circuit, shots int) (*simulator.Result, error)
}

/*
Algorithm assembles the full search circuit: a uniform superposition, two
freshly built Grover iterations composed in place, and a measurement of qubit i
into clbit i.
*/
func Algorithm() (*circuit.Circuit, error) {
	qc := circuit.New(Qubits, Qubits)
	qc.H(circuit.Range(Qubits)...)

	for i := 0; i < Iterations; i++ {
		oracle, err := Oracle()
		if err != nil {
			return nil, err
		}

		op, err := Operator(oracle)
		if err != nil {
			return nil, err
		}

		qc.Compose(op)
	}

	qc.MeasureAll()

	if err := qc.Err(); err != nil {
		return nil, fmt.Errorf("grover algorithm: %w", err)
	}

	errnie.Info(
		"Algorithm - qubits %d, iterations %d, instructions %d",
		qc.NumQubits(), Iterations, qc.Len(),
	)
	return qc, nil
}

/*
Run builds the search circuit, executes it once on backend and returns the
per-shot bitstrings exactly as the backend reported them. Backend failures are
passed through wrapped, with no retry.
*/
func Run(ctx context.Context, backend Backend, shots int) ([]string, error) {
	qc, err := Algorithm()
	if err != nil {
		return nil, err
	}

	result, err := backend.Run(ctx, qc, shots)
	if err != nil {
		return nil, fmt.Errorf("backend run: %w", err)
	}

	if result == nil {
		return nil, ErrNoResult
	}

	return result.Memory, nil
}
