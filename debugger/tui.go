package debugger

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// TUI is the text user interface for the debugger, grounded on the
// teacher's debugger.TUI layout (source/registers/memory/stack/
// breakpoints/output/command panels), retargeted from the CPU view to
// a slot-machine view: source spans, slots, labels and breakpoints,
// above the output and command panels.
type TUI struct {
	Debugger *Debugger
	App      *tview.Application

	MainLayout    *tview.Flex
	SourceView    *tview.TextView
	SlotsView     *tview.TextView
	LabelsView    *tview.TextView
	BreakpointsView *tview.TextView
	OutputView    *tview.TextView
	CommandInput  *tview.InputField
}

// NewTUI builds a TUI wired to d.
func NewTUI(d *Debugger) *TUI {
	t := &TUI{
		Debugger: d,
		App:      tview.NewApplication(),
	}
	t.initializeViews()
	t.buildLayout()
	t.setupKeyBindings()
	return t
}

func (t *TUI) initializeViews() {
	t.SourceView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.SourceView.SetBorder(true).SetTitle(" Source ")

	t.SlotsView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.SlotsView.SetBorder(true).SetTitle(" Slots ")

	t.LabelsView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.LabelsView.SetBorder(true).SetTitle(" Labels ")

	t.BreakpointsView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.BreakpointsView.SetBorder(true).SetTitle(" Breakpoints ")

	t.OutputView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(true)
	t.OutputView.SetBorder(true).SetTitle(" Output ")

	t.CommandInput = tview.NewInputField().SetLabel("> ").SetFieldWidth(0)
	t.CommandInput.SetBorder(true).SetTitle(" Command ")
	t.CommandInput.SetDoneFunc(t.handleCommand)
}

func (t *TUI) buildLayout() {
	rightPanel := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.SlotsView, 0, 1, false).
		AddItem(t.LabelsView, 0, 1, false).
		AddItem(t.BreakpointsView, 8, 0, false)

	mainContent := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(t.SourceView, 0, 2, false).
		AddItem(rightPanel, 0, 1, false)

	t.MainLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(mainContent, 0, 4, false).
		AddItem(t.OutputView, 8, 0, false).
		AddItem(t.CommandInput, 3, 0, true)
}

func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF5:
			t.executeCommand("continue")
			return nil
		case tcell.KeyF10:
			t.executeCommand("step")
			return nil
		case tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		case tcell.KeyCtrlL:
			t.RefreshAll()
			return nil
		}
		return event
	})
}

func (t *TUI) handleCommand(key tcell.Key) {
	if key == tcell.KeyEnter {
		cmd := t.CommandInput.GetText()
		t.CommandInput.SetText("")
		t.executeCommand(cmd)
	}
}

func (t *TUI) executeCommand(cmd string) {
	if strings.TrimSpace(cmd) == "continue" || strings.TrimSpace(cmd) == "c" {
		// Continue may run for a while: launch it off the UI goroutine
		// so the command line (e.g. "pause") and screen refresh stay
		// responsive.
		go func() {
			err := t.Debugger.ExecuteCommand(cmd)
			t.App.QueueUpdateDraw(func() { t.finishCommand(err) })
		}()
		return
	}
	err := t.Debugger.ExecuteCommand(cmd)
	t.finishCommand(err)
}

func (t *TUI) finishCommand(err error) {
	if err != nil {
		t.WriteOutput(fmt.Sprintf("[red]Error:[white] %v\n", err))
	}
	if out := t.Debugger.GetOutput(); out != "" {
		t.WriteOutput(out)
	}
	t.RefreshAll()
}

func (t *TUI) WriteOutput(text string) {
	_, _ = t.OutputView.Write([]byte(text))
	t.OutputView.ScrollToEnd()
}

// RefreshAll redraws every panel from the current Runner state.
func (t *TUI) RefreshAll() {
	t.updateSourceView()
	t.updateSlotsView()
	t.updateLabelsView()
	t.updateBreakpointsView()
	t.App.Draw()
}

func (t *TUI) updateSourceView() {
	cursor := t.Debugger.Runner.GetCursor()
	sourceMap := t.Debugger.Runner.GetSourceMap()
	breakpoints := map[int]bool{}
	for _, bp := range t.Debugger.Runner.GetBreakpoints() {
		breakpoints[bp.Line] = bp.Enabled
	}

	var lines []string
	for _, entry := range sourceMap {
		marker := "  "
		color := "white"
		if entry.Index == cursor {
			marker, color = "->", "yellow"
		} else if breakpoints[entry.Index] {
			marker = "* "
		}
		lines = append(lines, fmt.Sprintf("[%s]%s %3d: [%d,%d)[white]", color, marker, entry.Index, entry.Start, entry.End))
	}
	t.SourceView.SetText(strings.Join(lines, "\n"))
}

func (t *TUI) updateSlotsView() {
	var b strings.Builder
	for _, s := range t.Debugger.Runner.GetSlots() {
		fmt.Fprintf(&b, "%d: %s\n", s.Slot, s.Value)
	}
	t.SlotsView.SetText(b.String())
}

func (t *TUI) updateLabelsView() {
	var b strings.Builder
	for name, idx := range t.Debugger.Runner.GetLabels() {
		fmt.Fprintf(&b, "%s -> %d\n", name, idx)
	}
	t.LabelsView.SetText(b.String())
}

func (t *TUI) updateBreakpointsView() {
	var b strings.Builder
	for _, bp := range t.Debugger.Runner.GetBreakpoints() {
		fmt.Fprintf(&b, "%d (enabled=%v)\n", bp.Line, bp.Enabled)
	}
	t.BreakpointsView.SetText(b.String())
}

// Run starts the TUI's event loop, rooted at t.MainLayout.
func (t *TUI) Run() error {
	t.RefreshAll()
	return t.App.SetRoot(t.MainLayout, true).SetFocus(t.CommandInput).Run()
}
