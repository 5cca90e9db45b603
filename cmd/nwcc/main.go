// Command nwcc is the driver for the nwcc compiler: it reads a source
// file, runs it through internal/compiler's pipeline, writes the
// resulting NASM, and — unless -asm-only is given — invokes nasm and
// gcc to produce a Windows x86-64 executable. Phase-by-phase banners
// and the nasm/gcc hand-off are grounded on original_source/main.py's
// compile_file; flag handling follows conneroisu-gix's main.go (plain
// stdlib flag, no subcommand framework).
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/wincc-lang/nwcc/internal/compiler"
	"github.com/wincc-lang/nwcc/internal/repldbg"
)

var (
	okColor  = color.New(color.FgGreen)
	errColor = color.New(color.FgRed)
	hdrColor = color.New(color.FgCyan, color.Bold)
)

func main() {
	var (
		output  = flag.String("o", "", "output executable name, without extension")
		showIR  = flag.Bool("show-ir", false, "print the generated three-address IR")
		showASM = flag.Bool("show-asm", false, "print the generated NASM source")
		asmOnly = flag.Bool("asm-only", false, "stop after writing the .asm file")
		repl    = flag.Bool("repl", false, "start the interactive trace REPL")
	)
	flag.Parse()
	args := flag.Args()

	if *repl {
		repldbg.Run(os.Stdin, os.Stdout)
		return
	}

	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: nwcc [-o name] [--show-ir] [--show-asm] [--asm-only] <source.c>")
		fmt.Fprintln(os.Stderr, "       nwcc --repl")
		os.Exit(2)
	}

	if !run(args[0], *output, *showIR, *showASM, *asmOnly) {
		os.Exit(1)
	}
}

func run(inputFile, output string, showIR, showASM, asmOnly bool) bool {
	source, err := os.ReadFile(inputFile)
	if err != nil {
		errColor.Fprintf(os.Stderr, "error: cannot read '%s': %v\n", inputFile, err)
		return false
	}

	hdrColor.Println("=== Phase 1-4: lex, adapt, parse, generate IR ===")
	result, cerr := compiler.Compile(string(source))
	if cerr != nil {
		errColor.Fprintf(os.Stderr, "✗ %v\n", cerr)
		return false
	}
	okColor.Printf("✓ tokens: %d   IR instructions: %d\n", len(result.Tokens), len(result.IR.Instrs))

	if showIR {
		fmt.Println("\n--- IR ---")
		for _, instr := range result.IR.Instrs {
			fmt.Printf("  %s\n", instr)
		}
		fmt.Println("--- end IR ---")
	}

	hdrColor.Println("\n=== Phase 5: ASM generation ===")
	okColor.Println("✓ NASM source generated")
	if showASM {
		fmt.Println("\n--- ASM ---")
		fmt.Println(result.ASM)
		fmt.Println("--- end ASM ---")
	}

	stem := output
	if stem == "" {
		base := filepath.Base(inputFile)
		stem = strings.TrimSuffix(base, filepath.Ext(base))
	}
	asmFile := stem + ".asm"

	if err := os.WriteFile(asmFile, []byte(result.ASM), 0o644); err != nil {
		errColor.Fprintf(os.Stderr, "✗ could not write '%s': %v\n", asmFile, err)
		return false
	}
	okColor.Printf("✓ wrote %s\n", asmFile)

	if asmOnly {
		okColor.Println("\n✓ compilation complete (asm-only)")
		return true
	}

	hdrColor.Println("\n=== Phase 6: assemble and link ===")
	objFile := stem + ".obj"
	exeFile := stem + ".exe"

	if !runTool("nasm", []string{"-f", "win64", asmFile, "-o", objFile}, "NASM",
		"install NASM from https://www.nasm.us/") {
		return false
	}
	okColor.Printf("✓ object generated: %s\n", objFile)

	if !runTool("gcc", []string{objFile, "-o", exeFile}, "GCC",
		"install MinGW-w64 from https://winlibs.com/") {
		return false
	}
	okColor.Printf("✓ executable generated: %s\n", exeFile)

	hdrColor.Println("\n====================================")
	okColor.Println("✓ COMPILATION SUCCEEDED")
	hdrColor.Println("====================================")
	fmt.Printf("\nexecutable: %s\n", exeFile)
	return true
}

func runTool(name string, args []string, label, installHint string) bool {
	cmd := exec.Command(name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if _, notFound := err.(*exec.Error); notFound {
			errColor.Fprintf(os.Stderr, "✗ %s not found. %s\n", name, installHint)
			return false
		}
		errColor.Fprintf(os.Stderr, "✗ %s error: %s\n", label, strings.TrimSpace(string(out)))
		return false
	}
	return true
}
