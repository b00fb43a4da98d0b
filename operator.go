package qgrover

import (
	"fmt"

	"github.com/theapemachine/qgrover/circuit"
)

/*
Operator builds one Grover iteration around the given oracle: the oracle's
phase flip followed by inversion about the mean.

The diffusion is H, then X on every qubit, CCZ, X on every qubit, H. The X/CCZ/X
sandwich flips the phase of |000⟩ only, which is the reflection about the
uniform superposition up to a global phase.
*/
func Operator(oracle *circuit.Circuit) (*circuit.Circuit, error) {
	all := circuit.Range(Qubits)
	qc := circuit.New(Qubits, 0)

	qc.Compose(oracle)
	qc.H(all...)

	qc.X(all...)
	qc.CCZ(0, 1, 2)
	qc.X(all...)

	qc.H(all...)

	if err := qc.Err(); err != nil {
		return nil, fmt.Errorf("grover operator: %w", err)
	}
	return qc, nil
}
