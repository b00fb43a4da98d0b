package qgrover

import (
	"fmt"

	"github.com/theapemachine/qgrover/circuit"
)

const (
	// Qubits is the fixed register width of the search.
	Qubits = 3

	// Target is the bitstring the oracle marks, clbit 0 rightmost: q0=1, q1=1, q2=0.
	Target = "011"
)

/*
Oracle returns a 3-qubit fragment that flips the phase of the Target basis
state and leaves every other basis state alone.

The CCZ only fires when all three qubits are 1, so wrapping it in X on qubit 2
moves the marked state from |111⟩ to the one where qubit 2 is 0.
*/
func Oracle() (*circuit.Circuit, error) {
	qc := circuit.New(Qubits, 0)

	qc.X(2)
	qc.CCZ(0, 1, 2)
	qc.X(2)

	if err := qc.Err(); err != nil {
		return nil, fmt.Errorf("oracle: %w", err)
	}
	return qc, nil
}
