// Command cellsh is an interactive shell for inspecting cell identifiers.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/jayloop/cellid"
)

func main() {
	// Non-interactive mode: run a single command and exit.
	if len(os.Args) > 1 {
		cellid.Admin(os.Stdout, os.Args[1:])
		return
	}

	completer := readline.NewPrefixCompleter(
		readline.PcItem("info"),
		readline.PcItem("children"),
		readline.PcItem("neighbors"),
		readline.PcItem("parent"),
		readline.PcItem("compact"),
		readline.PcItem("begin"),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	)
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "cellid> ",
		HistoryFile:     os.TempDir() + "/cellsh_history",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return
		}
		argv := strings.Fields(line)
		if len(argv) == 0 {
			continue
		}
		switch argv[0] {
		case "exit", "quit":
			return
		case "help":
			cellid.Admin(os.Stdout, nil)
		default:
			cellid.Admin(os.Stdout, argv)
		}
	}
}
