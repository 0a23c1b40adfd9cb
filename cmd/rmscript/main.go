// Command rmscript is the rmscript compiler CLI.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"nickandperla.net/rmscript/pkg/rmscript"
)

func main() {
	var (
		evalStr = flag.String("e", "", "Compile rmscript source string")
		file    = flag.String("f", "", "Compile rmscript file")
		name    = flag.String("name", "", "Override the script name")
		check   = flag.Bool("check", false, "Verify only; print diagnostics and exit")
		dump    = flag.Bool("dump", false, "Print the compiled IR")
		dbPath  = flag.String("db", "", "SQLite script library path")
		save    = flag.Bool("save", false, "Persist the compiled script to the library")
		list    = flag.Bool("list", false, "List scripts in the library")
		show    = flag.String("show", "", "Print a stored script's source")
	)

	flag.Parse()

	opts := []rmscript.Option{}
	if *name != "" {
		opts = append(opts, rmscript.WithName(*name))
	}
	if *dbPath != "" {
		opts = append(opts, rmscript.WithSQLiteStore(*dbPath))
	}

	compiler := rmscript.New(opts...)
	defer compiler.Close()

	switch {
	case *list:
		names, err := compiler.Scripts()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return

	case *show != "":
		script, err := compiler.Load(*show)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if script == nil {
			fmt.Fprintf(os.Stderr, "Script not found: %s\n", *show)
			os.Exit(1)
		}
		if script.Description != "" {
			fmt.Printf("# %s\n", script.Description)
		}
		fmt.Print(script.Source)
		if !strings.HasSuffix(script.Source, "\n") {
			fmt.Println()
		}
		return
	}

	var result rmscript.CompilationResult
	switch {
	case *evalStr != "":
		result = compiler.Compile(*evalStr)
	case *file != "":
		result = compiler.CompileFile(*file)
	case !term.IsTerminal(int(os.Stdin.Fd())):
		input, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(1)
		}
		result = compiler.Compile(string(input))
	default:
		runREPL(compiler)
		return
	}

	for _, msg := range result.Messages() {
		fmt.Fprintln(os.Stderr, msg)
	}

	if result.Success && !*check {
		fmt.Printf("Compiled '%s': %d actions\n", result.Name, len(result.IR))
		if *dump {
			dumpIR(result.IR)
		}
		if *save {
			if err := compiler.Save(&result); err != nil {
				fmt.Fprintf(os.Stderr, "Error saving script: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Saved '%s'\n", result.Name)
		}
	}

	if !result.Success {
		os.Exit(1)
	}
}

// dumpIR prints a one-line summary per IR entry.
func dumpIR(actions []rmscript.Action) {
	for i, a := range actions {
		fmt.Printf("%3d  %s\n", i, summarize(a))
	}
}

func summarize(a rmscript.Action) string {
	switch v := a.(type) {
	case *rmscript.Movement:
		var channels []string
		if v.HeadPose != nil {
			channels = append(channels, "head_pose")
		}
		if v.Antennas != nil {
			channels = append(channels, fmt.Sprintf("antennas=[%.3f %.3f]", v.Antennas[0], v.Antennas[1]))
		}
		if v.BodyYaw != nil {
			channels = append(channels, fmt.Sprintf("body_yaw=%.3f", *v.BodyYaw))
		}
		return fmt.Sprintf("movement L%d %.2fs %s (%s)", v.Line, v.Duration, strings.Join(channels, " "), v.Text)
	case *rmscript.Wait:
		return fmt.Sprintf("wait L%d %.2fs", v.Line, v.Duration)
	case *rmscript.Picture:
		return fmt.Sprintf("picture L%d", v.Line)
	case *rmscript.PlaySound:
		return fmt.Sprintf("play L%d %s mode=%s", v.Line, v.Name, v.Mode)
	case *rmscript.LoopSound:
		return fmt.Sprintf("loop L%d %s %.2fs", v.Line, v.Name, v.Duration)
	}
	return "unknown"
}
