package circuit

import (
	"fmt"
	"strings"
)

// QASM renders the circuit as OpenQASM 2.0. qelib1.inc has no ccz, so it is
// written as h/ccx/h on the last operand.
func (c *Circuit) QASM() string {
	var sb strings.Builder

	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", c.qubits)
	if c.clbits > 0 {
		fmt.Fprintf(&sb, "creg c[%d];\n", c.clbits)
	}
	sb.WriteString("\n")

	for _, in := range c.instructions {
		switch in.Kind {
		case X, H:
			fmt.Fprintf(&sb, "%s q[%d];\n", in.Kind, in.Qubits[0])
		case CCZ:
			a, b, t := in.Qubits[0], in.Qubits[1], in.Qubits[2]
			fmt.Fprintf(&sb, "h q[%d];\n", t)
			fmt.Fprintf(&sb, "ccx q[%d], q[%d], q[%d];\n", a, b, t)
			fmt.Fprintf(&sb, "h q[%d];\n", t)
		case Measure:
			fmt.Fprintf(&sb, "measure q[%d] -> c[%d];\n", in.Qubits[0], in.Clbits[0])
		}
	}

	return sb.String()
}
