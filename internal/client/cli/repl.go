package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to. *App
// satisfies it; tests provide a stub.
type execIface interface {
	List(ctx context.Context) error
	Select(ctx context.Context, login string) error
	Show(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context) error
	Passwd(ctx context.Context) error
	Generate(ctx context.Context) error
	Delete(ctx context.Context) error
	Refresh(ctx context.Context) error
	State(ctx context.Context) error
}

const helpText = "Available commands: list, select <login>, show, add, edit, passwd, generate, delete, refresh, state, exit"

// runREPL reads one command per line from reader and dispatches it to a.
// The loop exits on EOF or when the user types "exit" or "quit".
//
// Command errors are reported by the handlers themselves; the loop keeps
// going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("lumext %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "l", "list":
			_ = a.List(ctx)

		case "select":
			if len(args) != 1 {
				printlnFn("Usage: select <login>")
				continue
			}
			_ = a.Select(ctx, args[0])

		case "show":
			_ = a.Show(ctx)

		case "add":
			_ = a.Add(ctx)

		case "edit":
			_ = a.Edit(ctx)

		case "passwd":
			_ = a.Passwd(ctx)

		case "generate":
			_ = a.Generate(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "state":
			_ = a.State(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
