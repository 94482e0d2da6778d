package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dmitriyevstifeev/MythonInterpreter/mython"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "repl":
		return runREPL()
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	stepQuota := fs.Int("step-quota", 0, "maximum evaluation steps before aborting (0 = default)")
	recursionLimit := fs.Int("recursion-limit", 0, "maximum call depth before aborting (0 = default)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var input []byte
	var err error
	remaining := fs.Args()
	if len(remaining) == 0 {
		input, err = io.ReadAll(os.Stdin)
	} else {
		input, err = os.ReadFile(remaining[0])
	}
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	engine := mython.NewEngine(mython.Config{StepQuota: *stepQuota, RecursionLimit: *recursionLimit})
	if _, err := engine.Run(string(input), os.Stdout); err != nil {
		return fmt.Errorf("mython: %w", err)
	}
	return nil
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: mython run [flags] [file]")
	fmt.Fprintln(os.Stderr, "       mython repl")
	fmt.Fprintln(os.Stderr, "Flags:")
	fmt.Fprintln(os.Stderr, "  -step-quota int")
	fmt.Fprintln(os.Stderr, "    maximum evaluation steps before aborting (0 = default)")
	fmt.Fprintln(os.Stderr, "  -recursion-limit int")
	fmt.Fprintln(os.Stderr, "    maximum call depth before aborting (0 = default)")
}
