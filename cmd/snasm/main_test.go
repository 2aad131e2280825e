package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/snasm/assembler"
)

func TestCommand(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	src := filepath.Join(dir, "prog.as")
	assert.NoError(os.WriteFile(src, []byte(strings.Join([]string{
		"mcro done",
		"  stop",
		"mcroend",
		".entry MAIN",
		".extern EXT",
		"MAIN: prn #$(VALUE)",
		"      jsr EXT",
		"done",
	}, "\n")), 0o644))

	var out strings.Builder
	cmd := newCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"-q", "-e", "-x", "-s", "-D", "VALUE=7", "-o", filepath.Join(dir, "build"), src})
	assert.NoError(cmd.Execute())
	assert.Contains(out.String(), "MAIN")

	read := func(name string) string {
		data, err := os.ReadFile(filepath.Join(dir, name))
		assert.NoError(err, name)
		return string(data)
	}

	assert.Equal(".entry MAIN\n.extern EXT\nMAIN: prn #7\n      jsr EXT\n  stop\n", read("prog.am"))
	assert.True(strings.HasPrefix(read("build.ob"), "5 | 0\n0000100 : "))
	assert.Equal("MAIN: 0000100\n", read("build.ent"))
	assert.Equal("EXT: 0000103\n", read("build.ext"))
}

func TestCommandErrors(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	src := filepath.Join(dir, "prog.asm")
	assert.NoError(os.WriteFile(src, []byte("stop\n"), 0o644))

	cmd := newCommand()
	cmd.SetArgs([]string{"-q", "-o", filepath.Join(dir, "out"), src})
	assert.ErrorIs(cmd.Execute(), assembler.ErrSourceExtension)

	cmd = newCommand()
	cmd.SetArgs([]string{"-q", "-D", "NOVALUE", filepath.Join(dir, "x.as")})
	assert.ErrorIs(cmd.Execute(), ErrDefine)

	cmd = newCommand()
	cmd.SetArgs([]string{"-q", "-o", filepath.Join(dir, "out"), filepath.Join(dir, "missing.as")})
	assert.ErrorIs(cmd.Execute(), assembler.ErrSourceRead)

	cmd = newCommand()
	cmd.SetArgs([]string{})
	assert.Error(cmd.Execute())
}
