// Package circuit implements the wire bookkeeping and composition algebra
// for quantum circuit components. A component couples a representation
// (Bargmann triple or Fock tensor) to a Wires descriptor of four sorted
// mode sets: bra-out, bra-in, ket-out, ket-in. Contract joins two
// components by pairing the first one's output wires with the second one's
// input wires on shared modes; Compose additionally inserts adjoints so
// kets meet density matrices and channels the way they would in a circuit
// diagram.
package circuit
