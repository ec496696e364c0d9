package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	m "dupes.dev/pkg/dupes/internal/model"
)

const (
	progressBarWidth = 40
	headerWidth      = 64
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.DoubleBorder()).
			Width(headerWidth).
			Align(lipgloss.Center)
	groupStyle   = lipgloss.NewStyle().Bold(true)
	memberStyle  = lipgloss.NewStyle().PaddingLeft(4)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI using Bubble Tea for interactive display. Groups are
// collected while the run goes on and shown in a pager on Wait.
type TUI struct {
	output    io.Writer
	operation m.OperationKind
	bar       progress.Model
	groups    []m.DuplicateGroup
	summary   *m.Summary
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{
		output: output,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(progressBarWidth), progress.WithoutPercentage()),
	}
}

// Start prints the banner for the operation.
func (p *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := buildStartConfig(options)
	p.operation = cfg.operation
	p.groups = nil
	p.summary = nil

	_, err := fmt.Fprintln(p.output, renderTitle(p.operation))

	return err
}

// Close finalizes the UI.
func (p *TUI) Close(_ context.Context) {}

// Progress draws the progress bar for a milestone.
func (p *TUI) Progress(_ context.Context, prog m.Progress) {
	if prog.Total == 0 {
		p.println(faintStyle.Render(formatProgress(prog)))
		return
	}

	p.println(p.bar.ViewAs(float64(prog.Percent)/100) + "  " + formatProgress(prog))
}

// Failure prints a per-file error.
func (p *TUI) Failure(_ context.Context, failure m.Failure) {
	p.println(warningStyle.Render(formatFailure(failure)))
}

// Group queues a duplicate group for the pager.
func (p *TUI) Group(_ context.Context, group m.DuplicateGroup) {
	p.groups = append(p.groups, group)
}

// Removal prints one deleted (or selected) file.
func (p *TUI) Removal(_ context.Context, removal m.Removal) {
	p.println(removedStyle.Render(formatRemoval(removal)))
}

// Summary records the totals shown below the groups.
func (p *TUI) Summary(_ context.Context, summary m.Summary) {
	p.summary = &summary
}

// Wait shows the collected groups and summary. Long lists open a pager that
// stays until the user quits it.
func (p *TUI) Wait(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	var lines []string
	if p.summary != nil {
		lines = summaryLines(*p.summary)
	}

	model := newGroupListModel(p.groups, lines)

	if f, ok := p.output.(*os.File); ok {
		width, height, err := term.GetSize(f.Fd())
		if err == nil {
			model.height = height
			model.width = width
		}
	}

	if !model.needsPagination() {
		_, _ = fmt.Fprint(p.output, model.View())
		return
	}

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		_, _ = fmt.Fprint(p.output, model.View())
		return
	}

	for _, line := range lines {
		p.println("  " + line)
	}
}

func (p *TUI) println(line string) {
	_, _ = fmt.Fprintln(p.output, line)
}

func renderTitle(operation m.OperationKind) string {
	return titleStyle.Render("Dupes - Duplicate Finder (" + operation.String() + ")")
}

// groupListModel is the Bubble Tea pager over the rendered group lines.
type groupListModel struct {
	lines    []string
	groups   int
	summary  []string
	height   int
	width    int
	offset   int // Current scroll offset
	quitting bool
}

func newGroupListModel(groups []m.DuplicateGroup, summary []string) groupListModel {
	var lines []string

	for i, group := range groups {
		lines = append(lines, groupStyle.Render(formatGroupHeader(i+1, group)))
		for _, member := range group.Members {
			lines = append(lines, memberStyle.Render(string(member)))
		}

		lines = append(lines, "")
	}

	return groupListModel{
		lines:   lines,
		groups:  len(groups),
		summary: summary,
	}
}

func (g groupListModel) Init() tea.Cmd {
	return nil
}

func (g groupListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		g.height = msg.Height
		g.width = msg.Width
		g.offset = min(g.offset, g.maxOffset())

		return g, nil

	case tea.KeyMsg:
		return g.handleKeyPress(msg)
	}

	return g, nil
}

//nolint:cyclop,exhaustive // Key handling requires multiple cases for UI navigation
func (g groupListModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		g.quitting = true
		return g, tea.Quit
	default:
		// Handle other key types in the string switch below
	}

	switch msg.String() {
	case "q":
		g.quitting = true
		return g, tea.Quit

	case "down", "j":
		g.offset = min(g.offset+1, g.maxOffset())

	case "up", "k":
		g.offset = max(g.offset-1, 0)

	case "g", "home":
		g.offset = 0

	case "G", "end":
		g.offset = g.maxOffset()

	case "d", "pgdown":
		g.offset = min(g.offset+g.itemsPerPage(), g.maxOffset())

	case "u", "pgup":
		g.offset = max(g.offset-g.itemsPerPage(), 0)
	}

	return g, nil
}

// itemsPerPage calculates how many lines fit on screen.
func (g groupListModel) itemsPerPage() int {
	if g.height == 0 {
		return 10 // Default
	}
	// Reserve the title box, the summary block and the footer.
	reserved := 8 + len(g.summary)

	available := g.height - reserved
	if available < 1 {
		return 1
	}

	return available
}

// maxOffset returns the maximum scroll offset.
func (g groupListModel) maxOffset() int {
	return max(len(g.lines)-g.itemsPerPage(), 0)
}

// needsPagination returns true if the list is too large to fit on screen.
func (g groupListModel) needsPagination() bool {
	if len(g.lines) == 0 {
		return false
	}

	return len(g.lines) > g.itemsPerPage() && g.height > 0
}

func (g groupListModel) View() string {
	if g.quitting {
		return ""
	}

	var b strings.Builder

	paged := g.needsPagination()

	lines := g.lines
	start, end := 0, len(g.lines)

	if paged {
		start = min(g.offset, g.maxOffset())
		end = min(start+g.itemsPerPage(), len(g.lines))
		lines = g.lines[start:end]

		b.WriteString(renderTitle(m.OperationScanAndDisplay))
		b.WriteString("\n")
	}

	b.WriteString("\n")

	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	for _, line := range g.summary {
		fmt.Fprintf(&b, "  %s\n", line)
	}

	if paged {
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s\n", faintStyle.Render(fmt.Sprintf("Lines %d-%d of %d (%d groups)", start+1, end, len(g.lines), g.groups)))
		b.WriteString("  ↑/k: up | ↓/j: down | d/u: page | g: top | G: bottom | q: quit\n")
	}

	return b.String()
}
