// Package assembler implements the two pass SNASM assembler.
//
// Pass 1 sizes every statement of every source file, defining labels
// against a run-wide label table and advancing the instruction and data
// counters. Once every file is scanned the counters are fixed and the
// data segment is placed after the text segment.
//
// Pass 2 encodes each file into 24 or 32 bit words, resolving label
// operands and recording references to external labels. The resulting
// Object can be written as the object, entries and externals listings.
package assembler
