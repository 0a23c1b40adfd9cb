package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"nickandperla.net/rmscript/pkg/rmscript"
)

const historyFile = ".rmscript_history"

func printBanner() {
	fmt.Println("rmscript REPL (Ctrl+D to exit)")
	fmt.Println()
	fmt.Println("Statements are verified as you enter them. Indented blocks")
	fmt.Println("(after 'repeat N') end with a blank line.")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  :check        verify the whole session script")
	fmt.Println("  :dump         print the session script's IR")
	fmt.Println("  :save NAME    save the session script to the library")
	fmt.Println("  :reset        discard the session script")
	fmt.Println("  :quit         exit")
	fmt.Println()
}

func runREPL(compiler *rmscript.Compiler) {
	printBanner()

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	var session []string

	for {
		line, err := ln.Prompt(">>> ")
		if err != nil {
			fmt.Println()
			return
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(line)

		if strings.HasPrefix(trimmed, ":") {
			if !runCommand(compiler, trimmed, &session) {
				return
			}
			continue
		}

		block := []string{line}
		if strings.HasPrefix(strings.ToLower(trimmed), "repeat") {
			block = append(block, readBlock(ln)...)
		}

		source := strings.Join(block, "\n")
		ok, messages := compiler.Verify(source)
		for _, msg := range messages {
			fmt.Println(msg)
		}
		if ok {
			session = append(session, block...)
		}
	}
}

// readBlock collects indented continuation lines until a blank line.
func readBlock(ln *liner.State) []string {
	var lines []string
	for {
		line, err := ln.Prompt("... ")
		if err != nil || strings.TrimSpace(line) == "" {
			return lines
		}
		ln.AppendHistory(line)
		lines = append(lines, line)
	}
}

// runCommand handles a :command, returning false when the REPL should exit.
func runCommand(compiler *rmscript.Compiler, cmd string, session *[]string) bool {
	fields := strings.Fields(cmd)

	switch fields[0] {
	case ":quit", ":q", ":exit":
		return false

	case ":reset":
		*session = nil
		fmt.Println("Session cleared")

	case ":check":
		ok, messages := compiler.Verify(strings.Join(*session, "\n"))
		for _, msg := range messages {
			fmt.Println(msg)
		}
		if ok {
			fmt.Println("OK")
		}

	case ":dump":
		result := compiler.Compile(strings.Join(*session, "\n"))
		for _, msg := range result.Messages() {
			fmt.Println(msg)
		}
		if result.Success {
			dumpIR(result.IR)
		}

	case ":save":
		if len(fields) < 2 {
			fmt.Println("Usage: :save NAME")
			break
		}
		result := rmscript.Compile(strings.Join(*session, "\n"), rmscript.WithName(fields[1]))
		if !result.Success {
			for _, msg := range result.Messages() {
				fmt.Println(msg)
			}
			break
		}
		if err := compiler.Save(&result); err != nil {
			fmt.Printf("Error: %v\n", err)
			break
		}
		fmt.Printf("Saved '%s'\n", fields[1])

	default:
		fmt.Printf("Unknown command: %s\n", fields[0])
	}
	return true
}
