// Package isa describes the fixed instruction set: the command catalog,
// operand addressing modes, and the bit layout of 24-bit and 32-bit words.
package isa
