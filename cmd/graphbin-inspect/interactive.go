package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
)

// runInteractive starts the readline loop. Decode errors are printed and
// the loop continues; only readline setup errors abort.
func (t *tool) runInteractive() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "graphbin> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	fmt.Fprint(rl.Stdout(), helpText)

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			// EOF
			return nil
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		if cmd == "exit" || cmd == "quit" || cmd == "q" {
			return nil
		}

		out, err := t.run(cmd, parts[1:])
		if err != nil {
			fmt.Fprintf(rl.Stderr(), "error: %v\n", err)
			continue
		}
		fmt.Fprint(rl.Stdout(), out)
	}
}
