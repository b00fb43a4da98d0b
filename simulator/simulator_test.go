package simulator

import (
	"context"
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/theapemachine/qgrover/circuit"
)

const epsilon = 1e-9

func TestStateVector(t *testing.T) {
	Convey("Given a 3-qubit register in |000⟩", t, func() {
		sv := NewStateVector(3)

		Convey("X on qubit 1 moves all weight to index 2", func() {
			So(sv.Apply(circuit.Instruction{Kind: circuit.X, Qubits: []int{1}}), ShouldBeNil)
			So(real(sv.Amplitudes[2]), ShouldAlmostEqual, 1, epsilon)
			So(sv.Sample(0.5), ShouldEqual, 2)
		})

		Convey("A Hadamard layer gives a uniform distribution", func() {
			for q := 0; q < 3; q++ {
				So(sv.Apply(circuit.Instruction{Kind: circuit.H, Qubits: []int{q}}), ShouldBeNil)
			}
			for _, p := range sv.Probabilities() {
				So(p, ShouldAlmostEqual, 0.125, epsilon)
			}
		})

		Convey("CCZ only flips |111⟩", func() {
			for q := 0; q < 3; q++ {
				So(sv.Apply(circuit.Instruction{Kind: circuit.H, Qubits: []int{q}}), ShouldBeNil)
			}
			So(sv.Apply(circuit.Instruction{Kind: circuit.CCZ, Qubits: []int{0, 1, 2}}), ShouldBeNil)

			amp := 1 / math.Sqrt(8)
			for i, a := range sv.Amplitudes {
				want := amp
				if i == 7 {
					want = -amp
				}
				So(real(a), ShouldAlmostEqual, want, epsilon)
			}
		})

		Convey("Collapse projects onto the observed bit", func() {
			So(sv.Apply(circuit.Instruction{Kind: circuit.H, Qubits: []int{0}}), ShouldBeNil)

			So(sv.Collapse(0, 0.1), ShouldEqual, 1)
			So(real(sv.Amplitudes[1]), ShouldAlmostEqual, 1, epsilon)
			So(real(sv.Amplitudes[0]), ShouldAlmostEqual, 0, epsilon)
		})

		Convey("Sample does not disturb the state", func() {
			So(sv.Apply(circuit.Instruction{Kind: circuit.H, Qubits: []int{0}}), ShouldBeNil)
			before := sv.Clone()

			So(sv.Sample(0.9), ShouldEqual, 1)
			So(sv.Amplitudes, ShouldResemble, before.Amplitudes)
		})

		Convey("Collapse never lands on a round-off branch", func() {
			noisy := &StateVector{Amplitudes: []complex128{1, 1e-10}, NumQubits: 1}

			So(noisy.Collapse(0, 0), ShouldEqual, 0)
			So(real(noisy.Amplitudes[0]), ShouldAlmostEqual, 1, epsilon)
			So(noisy.Amplitudes[1], ShouldEqual, complex128(0))
		})

		Convey("Collapse renormalises against the total weight", func() {
			loose := &StateVector{Amplitudes: []complex128{2, 2}, NumQubits: 1}

			So(loose.Collapse(0, 0.75), ShouldEqual, 0)
			So(real(loose.Amplitudes[0]), ShouldAlmostEqual, 1, epsilon)
		})

		Convey("Out of range qubits are rejected", func() {
			err := sv.Apply(circuit.Instruction{Kind: circuit.X, Qubits: []int{3}})
			So(errors.Is(err, circuit.ErrQubitOutOfRange), ShouldBeTrue)
		})

		Convey("Measurements are not unitaries", func() {
			err := sv.Apply(circuit.Instruction{Kind: circuit.Measure, Qubits: []int{0}, Clbits: []int{0}})
			So(errors.Is(err, ErrMeasurement), ShouldBeTrue)
		})
	})
}

func TestSimulator(t *testing.T) {
	Convey("Given a seeded simulator", t, func() {
		ctx := context.Background()
		sim := New(WithSeed(7))

		Convey("A deterministic circuit always reads the same bitstring", func() {
			qc := circuit.New(3, 3).X(0).MeasureAll()

			result, err := sim.Run(ctx, qc, 20)
			So(err, ShouldBeNil)
			So(result.Shots, ShouldEqual, 20)
			So(result.Memory, ShouldHaveLength, 20)
			So(result.Counts, ShouldResemble, map[string]int{"001": 20})
		})

		Convey("Unmeasured clbits read as zero", func() {
			qc := circuit.New(2, 3).X(0, 1).MeasureInto([]int{1}, []int{2})

			result, err := sim.Run(ctx, qc, 5)
			So(err, ShouldBeNil)
			So(result.Counts["100"], ShouldEqual, 5)
		})

		Convey("The same seed reproduces the same memory", func() {
			qc := circuit.New(3, 3).H(0, 1, 2).MeasureAll()

			a, err := New(WithSeed(42)).Run(ctx, qc, 50)
			So(err, ShouldBeNil)
			b, err := New(WithSeed(42)).Run(ctx, qc, 50)
			So(err, ShouldBeNil)

			So(a.Memory, ShouldResemble, b.Memory)
		})

		Convey("Gates after a measurement take the per-shot path", func() {
			// Measure, flip, measure again into another clbit.
			qc := circuit.New(1, 2).
				MeasureInto([]int{0}, []int{0}).
				X(0).
				MeasureInto([]int{0}, []int{1})

			result, err := sim.Run(ctx, qc, 10)
			So(err, ShouldBeNil)
			So(result.Counts, ShouldResemble, map[string]int{"10": 10})
		})

		Convey("Non-positive shots are rejected", func() {
			_, err := sim.Run(ctx, circuit.New(1, 1).MeasureAll(), 0)
			So(errors.Is(err, ErrInvalidShots), ShouldBeTrue)
		})

		Convey("A broken circuit is rejected", func() {
			_, err := sim.Run(ctx, circuit.New(2, 2).CCZ(0, 1, 2), 1)
			So(errors.Is(err, circuit.ErrQubitOutOfRange), ShouldBeTrue)

			_, err = sim.Run(ctx, nil, 1)
			So(errors.Is(err, ErrNilCircuit), ShouldBeTrue)
		})

		Convey("A cancelled context stops the run", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			_, err := sim.Run(cctx, circuit.New(1, 1).MeasureAll(), 10)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestStatevector(t *testing.T) {
	Convey("Given a measurement-free circuit", t, func() {
		Convey("It returns the evolved state", func() {
			sv, err := Statevector(circuit.New(2, 0).X(1))
			So(err, ShouldBeNil)
			So(real(sv.Amplitudes[2]), ShouldAlmostEqual, 1, epsilon)
		})

		Convey("A measured circuit is refused", func() {
			_, err := Statevector(circuit.New(1, 1).MeasureAll())
			So(errors.Is(err, ErrMeasurement), ShouldBeTrue)
		})
	})
}
