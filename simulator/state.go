package simulator

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/theapemachine/qgrover/circuit"
)

/*
StateVector holds the 2^n complex amplitudes of an n-qubit register.
Basis index bit k is the value of qubit k, so index 3 on three qubits is
q0=1, q1=1, q2=0 and prints as "011".
*/
type StateVector struct {
	Amplitudes []complex128
	NumQubits  int
}

// NewStateVector returns |0...0⟩ on n qubits.
func NewStateVector(n int) *StateVector {
	amps := make([]complex128, 1<<n)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: n}
}

func (sv *StateVector) Clone() *StateVector {
	amps := make([]complex128, len(sv.Amplitudes))
	copy(amps, sv.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: sv.NumQubits}
}

// Apply evolves the state by a unitary instruction. Measurements are handled by
// the caller through Collapse or Sample.
func (sv *StateVector) Apply(in circuit.Instruction) error {
	for _, q := range in.Qubits {
		if q < 0 || q >= sv.NumQubits {
			return fmt.Errorf("%s: %w: %d", in.Kind, circuit.ErrQubitOutOfRange, q)
		}
	}

	switch in.Kind {
	case circuit.X:
		sv.applyX(in.Qubits[0])
	case circuit.H:
		sv.applyH(in.Qubits[0])
	case circuit.CCZ:
		sv.applyCCZ(in.Qubits[0], in.Qubits[1], in.Qubits[2])
	case circuit.Measure:
		return fmt.Errorf("%w: measurement is not a unitary", ErrMeasurement)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedGate, in.Kind)
	}
	return nil
}

func (sv *StateVector) applyH(q int) {
	// H = 1/√2 * [1  1]
	//           [1 -1]
	h := complex(1/math.Sqrt2, 0)
	bit := 1 << q
	for i := range sv.Amplitudes {
		if i&bit != 0 {
			continue
		}
		j := i | bit
		alpha, beta := sv.Amplitudes[i], sv.Amplitudes[j]
		sv.Amplitudes[i] = h * (alpha + beta)
		sv.Amplitudes[j] = h * (alpha - beta)
	}
}

func (sv *StateVector) applyX(q int) {
	bit := 1 << q
	for i := range sv.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			sv.Amplitudes[i], sv.Amplitudes[j] = sv.Amplitudes[j], sv.Amplitudes[i]
		}
	}
}

func (sv *StateVector) applyCCZ(a, b, c int) {
	mask := 1<<a | 1<<b | 1<<c
	for i := range sv.Amplitudes {
		if i&mask == mask {
			sv.Amplitudes[i] = -sv.Amplitudes[i]
		}
	}
}

// Probabilities returns |amplitude|² per basis index, normalised to sum to 1.
func (sv *StateVector) Probabilities() []float64 {
	probs := make([]float64, len(sv.Amplitudes))
	total := 0.0
	for i, amplitude := range sv.Amplitudes {
		p := cmplx.Abs(amplitude)
		p *= p
		probs[i] = p
		total += p
	}

	if total > 0 {
		for i := range probs {
			probs[i] /= total
		}
	}
	return probs
}

// Sample picks a basis index using r in [0,1) against the cumulative
// distribution, without disturbing the state.
func (sv *StateVector) Sample(r float64) int {
	return sampleIndex(sv.Probabilities(), r)
}

// minBranch is the smallest branch weight Collapse will renormalise onto.
const minBranch = 1e-12

/*
Collapse measures a single qubit using r in [0,1), projects the state onto the
observed value and renormalises. It returns the observed bit.

The branch weights are taken relative to the total norm, as in Probabilities. A
branch lighter than minBranch is round-off, so the other branch is kept instead.
*/
func (sv *StateVector) Collapse(q int, r float64) int {
	bit := 1 << q

	total, w1 := 0.0, 0.0
	for i, amplitude := range sv.Amplitudes {
		m := cmplx.Abs(amplitude)
		total += m * m
		if i&bit != 0 {
			w1 += m * m
		}
	}
	if total == 0 {
		return 0
	}

	p1 := w1 / total
	outcome := 0
	if r < p1 {
		outcome = 1
	}

	switch {
	case outcome == 1 && p1 < minBranch:
		outcome = 0
	case outcome == 0 && 1-p1 < minBranch:
		outcome = 1
	}

	kept := w1
	if outcome == 0 {
		kept = total - w1
	}
	scale := complex(1/math.Sqrt(kept), 0)

	for i := range sv.Amplitudes {
		if (i&bit != 0) == (outcome == 1) {
			sv.Amplitudes[i] *= scale
		} else {
			sv.Amplitudes[i] = 0
		}
	}
	return outcome
}

func sampleIndex(probs []float64, r float64) int {
	cumulative := 0.0
	for i, p := range probs {
		cumulative += p
		if r < cumulative {
			return i
		}
	}

	// Rounding can leave the cumulative sum a hair under 1.
	for i := len(probs) - 1; i >= 0; i-- {
		if probs[i] > 0 {
			return i
		}
	}
	return 0
}
