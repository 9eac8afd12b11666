// Package debugger provides an interactive REPL and TUI over a
// service.Runner: step/continue/breakpoint commands against the slot
// table and label table, in place of the teacher's register/memory
// debugger. Grounded on the teacher's debugger.Debugger dispatch
// shape, retargeted from address-based breakpoints to instruction
// indices and from registers/memory to slots/labels.
package debugger

import (
	"fmt"
	"strings"

	"github.com/lookbusy1344/scriptcore/service"
)

// Debugger wraps a service.Runner with a command REPL: history,
// last-command repeat on blank input, and an output buffer a TUI or
// CLI front-end can drain after each command.
type Debugger struct {
	Runner      *service.Runner
	History     *CommandHistory
	LastCommand string
	Output      strings.Builder
}

// NewDebugger creates a debugger wrapping runner.
func NewDebugger(runner *service.Runner) *Debugger {
	return &Debugger{
		Runner:  runner,
		History: NewCommandHistory(),
	}
}

func (d *Debugger) Printf(format string, args ...any) { fmt.Fprintf(&d.Output, format, args...) }
func (d *Debugger) Println(args ...any)               { fmt.Fprintln(&d.Output, args...) }

// GetOutput returns and clears the accumulated output.
func (d *Debugger) GetOutput() string {
	out := d.Output.String()
	d.Output.Reset()
	return out
}

// ExecuteCommand parses and runs one command line. An empty line
// repeats the last non-empty command, matching a plain debugger's
// "press enter to step again" convention.
func (d *Debugger) ExecuteCommand(cmdLine string) error {
	cmdLine = strings.TrimSpace(cmdLine)
	if cmdLine == "" {
		cmdLine = d.LastCommand
	}
	if cmdLine != "" {
		d.History.Add(cmdLine)
		d.LastCommand = cmdLine
	}

	parts := strings.Fields(cmdLine)
	if len(parts) == 0 {
		return nil
	}
	return d.handleCommand(strings.ToLower(parts[0]), parts[1:])
}

func (d *Debugger) handleCommand(cmd string, args []string) error {
	switch cmd {
	case "step", "s":
		return d.cmdStep()
	case "continue", "c":
		return d.cmdContinue()
	case "pause", "p":
		d.Runner.Pause()
		d.Println("Paused.")
		return nil
	case "reset":
		return d.cmdReset()
	case "break", "b":
		return d.cmdBreak(args)
	case "delete", "d":
		return d.cmdDelete(args)
	case "breakpoints", "bl":
		return d.cmdListBreakpoints()
	case "slots", "sl":
		return d.cmdSlots()
	case "labels", "ll":
		return d.cmdLabels()
	case "output", "o":
		d.Println(d.Runner.GetOutput())
		return nil
	case "state":
		d.Printf("cursor=%d state=%s\n", d.Runner.GetCursor(), d.Runner.GetState())
		return nil
	case "help", "h", "?":
		d.cmdHelp()
		return nil
	default:
		return fmt.Errorf("unknown command: %s (try 'help')", cmd)
	}
}

func (d *Debugger) cmdStep() error {
	if err := d.Runner.Step(); err != nil {
		return err
	}
	d.Printf("stepped to instruction %d\n", d.Runner.GetCursor())
	return nil
}

func (d *Debugger) cmdContinue() error {
	d.Println("Continuing...")
	return d.Runner.Continue()
}

func (d *Debugger) cmdReset() error {
	if err := d.Runner.Reset(); err != nil {
		return err
	}
	d.Println("Reset to instruction 0.")
	return nil
}

// resolveLabel looks up name in the loaded program's label table.
// Breakpoints are keyed by label name rather than raw instruction
// index, since labels are this language's only addressable control
// points.
func (d *Debugger) resolveLabel(name string) (int, error) {
	idx, ok := d.Runner.GetLabels()[name]
	if !ok {
		return 0, fmt.Errorf("undefined label: %s", name)
	}
	return idx, nil
}

// labelAt returns the label name targeting instruction idx, or idx
// itself formatted as a fallback if no label defines it.
func (d *Debugger) labelAt(idx int) string {
	for name, i := range d.Runner.GetLabels() {
		if i == idx {
			return name
		}
	}
	return fmt.Sprintf("<instr %d>", idx)
}

func (d *Debugger) cmdBreak(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: break <label>")
	}
	idx, err := d.resolveLabel(args[0])
	if err != nil {
		return err
	}
	if err := d.Runner.AddBreakpoint(idx); err != nil {
		return err
	}
	d.Printf("Breakpoint set at %s\n", args[0])
	return nil
}

func (d *Debugger) cmdDelete(args []string) error {
	if len(args) == 0 {
		for _, bp := range d.Runner.GetBreakpoints() {
			d.Runner.RemoveBreakpoint(bp.Line)
		}
		d.Println("All breakpoints deleted")
		return nil
	}
	idx, err := d.resolveLabel(args[0])
	if err != nil {
		return err
	}
	d.Runner.RemoveBreakpoint(idx)
	d.Printf("Breakpoint at %s deleted\n", args[0])
	return nil
}

func (d *Debugger) cmdListBreakpoints() error {
	bps := d.Runner.GetBreakpoints()
	if len(bps) == 0 {
		d.Println("No breakpoints set.")
		return nil
	}
	for _, bp := range bps {
		d.Printf("%s (enabled=%v)\n", d.labelAt(bp.Line), bp.Enabled)
	}
	return nil
}

func (d *Debugger) cmdSlots() error {
	slots := d.Runner.GetSlots()
	if len(slots) == 0 {
		d.Println("No slots set.")
		return nil
	}
	for _, s := range slots {
		d.Printf("%d: %s\n", s.Slot, s.Value)
	}
	return nil
}

func (d *Debugger) cmdLabels() error {
	labels := d.Runner.GetLabels()
	if len(labels) == 0 {
		d.Println("No labels defined.")
		return nil
	}
	for name, idx := range labels {
		d.Printf("%s -> instruction %d\n", name, idx)
	}
	return nil
}

func (d *Debugger) cmdHelp() {
	d.Println("commands: step(s) continue(c) pause(p) reset break(b) <label> delete(d) [label] breakpoints(bl) slots(sl) labels(ll) output(o) state help(h)")
}
