package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/funcstructs/pkg/core/partition"
	"github.com/matzehuels/funcstructs/pkg/core/rootedtree"
	"github.com/matzehuels/funcstructs/pkg/core/seq"
	"github.com/matzehuels/funcstructs/pkg/pipeline"
)

// Browser styles
var (
	browseCurrentStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	browseNormalStyle  = lipgloss.NewStyle().Foreground(colorWhite)
	browseDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	browseBoxStyle     = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// browseCommand creates the interactive browser.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse trees N | browse partitions N L",
		Short: "Step through trees or partitions interactively",
		Example: `  funcstructs browse trees 7
  funcstructs browse partitions 12 4`,
		Args:      cobra.RangeArgs(2, 3),
		ValidArgs: pipeline.ValidKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := countOptions(args)
			if err != nil {
				return err
			}
			model, err := NewBrowseModel(opts.Kind, opts.N, opts.L)
			if err != nil {
				return err
			}
			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(BrowseModel); ok {
				printInfo("Stopped at %s #%d %s", opts.Kind, m.Index, m.Current())
			}
			return nil
		},
	}
}

// =============================================================================
// stepper - one successor walk behind the browser
// =============================================================================

// stepper advances one object at a time. current returns a fresh copy.
type stepper interface {
	current() []int
	next() (bool, error)
}

type treeStepper struct{ t *rootedtree.Tree }

func (s *treeStepper) current() []int { return s.t.Levels().Clone() }

func (s *treeStepper) next() (bool, error) {
	if s.t.IsTerminal() {
		return false, nil
	}
	return true, s.t.Next()
}

type partitionStepper struct{ p *partition.Partition }

func (s *partitionStepper) current() []int { return s.p.Components().Clone() }

func (s *partitionStepper) next() (bool, error) { return s.p.Next() }

// =============================================================================
// BrowseModel - Interactive successor stepping
// =============================================================================

// BrowseModel is the bubbletea model for the browser. Moving forward calls
// the successor; moving back replays objects already seen.
type BrowseModel struct {
	Kind  string
	N, L  int
	Total int
	Index int // 1-based position of the displayed object
	Done  bool

	step    stepper
	history [][]int
	err     error
}

// NewBrowseModel creates a browser positioned on the first object.
func NewBrowseModel(kind string, n, l int) (BrowseModel, error) {
	m := BrowseModel{Kind: kind, N: n, L: l, Index: 1}
	total, err := pipeline.Formula(kind, n, l)
	if err != nil {
		return m, err
	}
	m.Total = total
	if err := m.reset(); err != nil {
		return m, err
	}
	return m, nil
}

func (m *BrowseModel) reset() error {
	m.Index = 1
	m.Done = m.Total == 0
	m.history = nil
	if m.Done {
		m.step = nil
		return nil
	}
	switch m.Kind {
	case pipeline.KindTrees:
		t, err := rootedtree.New(m.N)
		if err != nil {
			return err
		}
		m.step = &treeStepper{t: t}
	default:
		p, err := partition.Minimal(m.N, m.L)
		if err != nil {
			return err
		}
		m.step = &partitionStepper{p: p}
	}
	m.history = [][]int{m.step.current()}
	return nil
}

// Current returns the displayed object, an empty view when there is none.
func (m BrowseModel) Current() seq.View {
	if len(m.history) == 0 {
		return seq.View{}
	}
	return seq.NewView(m.history[m.Index-1])
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", "down", "j", " ", "n":
			m.forward()
		case "left", "h", "up", "k", "p":
			if m.Index > 1 {
				m.Index--
			}
		case "home", "g":
			m.Index = 1
		case "r":
			if err := m.reset(); err != nil {
				m.err = err
			}
		}
	}
	return m, nil
}

// forward shows the next object, calling the successor only past the end of
// the history.
func (m *BrowseModel) forward() {
	if m.Index < len(m.history) {
		m.Index++
		return
	}
	if m.Done || m.step == nil {
		return
	}
	ok, err := m.step.next()
	if err != nil {
		m.err = err
		return
	}
	if !ok {
		m.Done = true
		return
	}
	m.history = append(m.history, m.step.current())
	m.Index++
}

func (m BrowseModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Rooted trees on %d nodes", m.N)
	if m.Kind == pipeline.KindPartitions {
		title = fmt.Sprintf("Partitions of %d into %d parts", m.N, m.L)
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(browseDimStyle.Render("→/space: next  ←: back  g: first  r: restart  q: quit"))
	b.WriteString("\n\n")

	if len(m.history) == 0 {
		b.WriteString(browseDimStyle.Render("  no objects"))
		b.WriteString("\n")
		return b.String()
	}

	cur := m.Current()

	// Previous two objects for context.
	for i := max(1, m.Index-2); i < m.Index; i++ {
		b.WriteString(browseNormalStyle.Render(fmt.Sprintf("  %6d  %s", i, seq.NewView(m.history[i-1]))))
		b.WriteString("\n")
	}
	b.WriteString(browseCurrentStyle.Render(fmt.Sprintf("> %6d  %s", m.Index, cur)))
	b.WriteString("\n\n")

	b.WriteString(browseBoxStyle.Render(m.details(cur)))
	b.WriteString("\n\n")

	status := fmt.Sprintf("  [%d/%d]", m.Index, m.Total)
	if m.Done && m.Index == len(m.history) {
		status += "  last object"
	}
	b.WriteString(browseDimStyle.Render(status))
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render("  " + m.err.Error()))
	}
	b.WriteString("\n")
	return b.String()
}

// details describes the current object in the forms the CLI can output.
func (m BrowseModel) details(cur seq.View) string {
	if m.Kind == pipeline.KindPartitions {
		return fmt.Sprintf("parts      %s\nconjugate  %s", cur, seq.NewView(partition.Conjugate(cur.Clone())))
	}
	t, err := rootedtree.FromLevels(cur.Clone())
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("brackets   %s\nparents    %s\nheight     %d\nsymmetry   %d",
		t.Brackets(), seq.NewView(t.Parents()), t.Height(), t.Degeneracy())
}
