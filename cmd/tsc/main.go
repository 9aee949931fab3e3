/* Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com) - Affero GPL v3 */

// Command tsc is the single-pass compiler's CLI entry point (spec.md
// §6): `tsc compile <source-path>` reads one source file and writes one
// assembly file.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/gmofishsauce/tsc/internal/ast"
	"github.com/gmofishsauce/tsc/internal/config"
	"github.com/gmofishsauce/tsc/internal/diag"
	"github.com/gmofishsauce/tsc/internal/lexer"
	"github.com/gmofishsauce/tsc/internal/parser"
	"github.com/gmofishsauce/tsc/internal/token"
	"github.com/gmofishsauce/tsc/internal/translate"
	"github.com/gmofishsauce/tsc/internal/typetab"
)

// version is set at build time via -ldflags; "dev" is the fallback for
// a plain `go build`.
var version = "dev"

var (
	configPath string
	outPath    string
	dumpAST    bool
	dumpTokens bool
	verbose    bool
)

func main() {
	root := &cobra.Command{
		Use:           "tsc",
		Short:         "Single-pass compiler targeting wut4 assembly",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "tsc.toml", "path to an optional TOML configuration overlay")

	compileCmd := &cobra.Command{
		Use:   "compile <source-path>",
		Short: "Compile one source file to assembly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(args[0])
		},
	}
	compileCmd.Flags().StringVar(&outPath, "out", "", "override the default output.a name")
	compileCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed AST before translating")
	compileCmd.Flags().BoolVar(&dumpTokens, "dump-tokens", false, "print the token stream before parsing")
	compileCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "timestamp standard log output (no component writes trace lines)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the compiler version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("tsc version " + version)
		},
	}

	root.AddCommand(compileCmd, versionCmd)
	if err := root.Execute(); err != nil {
		if err != errSilent {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func runCompile(sourcePath string) error {
	if !verbose {
		log.SetOutput(os.Stderr)
	} else {
		log.SetFlags(log.Ltime | log.Lmicroseconds)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if outPath != "" {
		cfg.OutputName = outPath
	}

	src, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("tsc: %w", err)
	}
	defer src.Close()

	sink := diag.NewSink(os.Stdout)
	types := typetab.New()
	lex := lexer.New(src, cfg)

	if dumpTokens {
		dumpTokenStream(sourcePath, cfg)
	}

	prog, tokens, err := parser.Parse(lex, types)
	if err != nil {
		sink.ReportError(err)
		return errSilent
	}

	if dumpAST {
		fmt.Println(ast.GetString(prog))
	}

	asm, err := translate.Translate(prog, cfg, tokens, sink)
	if err != nil {
		sink.ReportError(err)
		return errSilent
	}

	if err := writeAtomic(cfg.OutputName, asm); err != nil {
		return fmt.Errorf("tsc: %w", err)
	}

	sink.Success(sink.WarningCount())
	return nil
}

// errSilent signals a diagnostic already printed via sink.ReportError;
// cobra's own error printing would otherwise duplicate it.
var errSilent = &silentError{}

type silentError struct{}

func (*silentError) Error() string { return "" }

// dumpTokenStream re-lexes the source independently of the parser's own
// on-demand fetch loop, purely for the --dump-tokens debug flag.
func dumpTokenStream(sourcePath string, cfg config.Config) {
	f, err := os.Open(sourcePath)
	if err != nil {
		return
	}
	defer f.Close()
	lex := lexer.New(f, cfg)
	for {
		tok := lex.Next()
		fmt.Printf("%d:%d\t%v\n", tok.Line, tok.Col, tok)
		if tok.Tag == token.EOF {
			break
		}
	}
}

// writeAtomic writes content to a temp file in path's directory and
// renames it into place, so a failed compile (caught above, before this
// is ever called) never leaves a partial output.a (spec.md §6's
// "hardening opportunity", resolved per SPEC_FULL.md §7).
func writeAtomic(path, content string) error {
	tmp, err := os.CreateTemp(dirOf(path), ".tsc-out-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}
