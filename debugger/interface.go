package debugger

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// RunCLI runs the line-oriented command-line debugger interface.
// Grounded on the teacher's RunCLI: a bufio.Scanner prompt loop that
// dispatches each line to ExecuteCommand and prints whatever it
// buffered. Simpler than the teacher's loop in one respect: the
// teacher's RunCLI itself drives VM.Step after a "run"/"continue"
// command because its VM has no internal run-to-breakpoint method;
// this debugger's "continue" command already runs to completion or
// breakpoint inside service.Runner.Continue, so there is nothing left
// for the CLI loop to drive once ExecuteCommand returns.
func RunCLI(d *Debugger) error {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("(scriptcore) ")

		if !scanner.Scan() {
			break
		}

		cmdLine := strings.TrimSpace(scanner.Text())
		if cmdLine == "quit" || cmdLine == "q" || cmdLine == "exit" {
			fmt.Println("Exiting debugger...")
			break
		}

		if err := d.ExecuteCommand(cmdLine); err != nil {
			fmt.Printf("Error: %v\n", err)
		}

		if output := d.GetOutput(); output != "" {
			fmt.Print(output)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("input error: %w", err)
	}
	return nil
}

// RunTUI runs the full-screen terminal debugger.
func RunTUI(d *Debugger) error {
	tui := NewTUI(d)
	return tui.Run()
}
