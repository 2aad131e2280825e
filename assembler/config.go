package assembler

import (
	"github.com/ezrec/snasm/isa"
)

// Config is the run-wide option set.
type Config struct {
	Legacy24Bit  bool   // Encode 24-bit words instead of 32-bit words.
	ShowSymbols  bool   // Display the label table after pass 1.
	GenEntries   bool   // Produce the entries listing.
	GenExternals bool   // Produce the externals listing.
	OutputFile   string // Base name of the output files.
}

// DEFAULT_OUTPUT is the output base name when none is configured.
const DEFAULT_OUTPUT = "out"

// Width returns the configured word width.
func (cfg Config) Width() isa.Width {
	if cfg.Legacy24Bit {
		return isa.WIDTH_24
	}
	return isa.WIDTH_32
}

// Output returns the output base name.
func (cfg Config) Output() string {
	if len(cfg.OutputFile) == 0 {
		return DEFAULT_OUTPUT
	}
	return cfg.OutputFile
}
