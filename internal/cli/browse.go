package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/coachtree/coachtree/pkg/graph"
	"github.com/coachtree/coachtree/pkg/lineage"
	"github.com/coachtree/coachtree/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command for the interactive coach browser.
func (c *CLI) browseCommand() *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:   "browse [dataset.json]",
		Short: "Browse the kept lineage interactively",
		Long: `Browse the pruned coaching lineage in an interactive list.

Selecting a coach shows their generation, mentor chain, protégés, and
career-overlap connections.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.datasetArg(args)
			if path == "" {
				return fmt.Errorf("dataset required: pass a path or set dataset in the config file")
			}
			p, err := c.loadPruned(path, depth)
			if err != nil {
				return err
			}
			model := newBrowseModel(p)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().IntVar(&depth, "depth", pipeline.DefaultMaxDepth, "generation depth cap")

	return cmd
}

// =============================================================================
// browseModel - Interactive coach browser
// =============================================================================

// browseModel is the bubbletea model for the coach browser. It has two
// states: the coach list and a per-coach detail view.
type browseModel struct {
	pruned  *lineage.Pruned
	coaches []graph.Coach

	cursor int
	offset int
	height int

	// detail is the coach shown in the detail view; nil means the list.
	detail *graph.Coach
}

func newBrowseModel(p *lineage.Pruned) browseModel {
	return browseModel{
		pruned:  p,
		coaches: p.Coaches(),
		height:  15,
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.detail != nil {
				m.detail = nil
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.detail == nil && m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.detail == nil && m.cursor < len(m.coaches)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			if m.detail == nil && len(m.coaches) > 0 {
				coach := m.coaches[m.cursor]
				m.detail = &coach
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m browseModel) View() string {
	if m.detail != nil {
		return m.detailView(*m.detail)
	}
	return m.listView()
}

func (m browseModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Coaching Lineage"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.coaches) {
		end = len(m.coaches)
	}

	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		coach := m.coaches[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		team := coach.CurrentTeam
		if team == "" {
			team = "—"
		}

		role := ""
		if coach.IsCurrentHC {
			role = "HC"
		}

		depth, _ := m.pruned.Depth(coach.ID)
		rows = append(rows, []string{cursor, coach.Name, team, role, fmt.Sprintf("%d", depth)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Coach", "Team", "Role", "Gen").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.offset + row
			if actualIdx >= len(m.coaches) {
				return lipgloss.NewStyle()
			}
			coach := m.coaches[actualIdx]

			base := lipgloss.NewStyle()
			if actualIdx == m.cursor {
				return base.Foreground(colorCyan).Bold(true)
			}
			if coach.IsCurrentHC {
				return base.Foreground(colorGreen)
			}
			return base.Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.coaches))))

	return b.String()
}

func (m browseModel) detailView(coach graph.Coach) string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(coach.Name))
	if coach.CurrentTeam != "" {
		b.WriteString("  " + listDimStyle.Render(coach.CurrentTeam))
	}
	if coach.IsCurrentHC {
		b.WriteString("  " + StyleSuccess.Render("current HC"))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	depth, _ := m.pruned.Depth(coach.ID)
	b.WriteString(fmt.Sprintf("  Generation: %s\n", StyleNumber.Render(fmt.Sprintf("%d", depth))))

	chain := m.pruned.DeepestAncestorChain(coach.ID)
	if len(chain) > 1 {
		names := make([]string, len(chain))
		for i, id := range chain {
			names[i] = m.coachName(id)
		}
		b.WriteString("  Mentor chain: " + strings.Join(names, " "+iconArrow+" ") + "\n")
	}

	if proteges := m.pruned.ProtegesOf(coach.ID); len(proteges) > 0 {
		names := make([]string, len(proteges))
		for i, id := range proteges {
			names[i] = m.coachName(id)
		}
		b.WriteString("  Protégés: " + strings.Join(names, ", ") + "\n")
	}

	conns := m.pruned.ConnectionsFor(coach.ID)
	if len(conns) > 0 {
		b.WriteString("\n  " + StyleDim.Render("Connections") + "\n")
		for _, conn := range conns {
			line := fmt.Sprintf("    %s %s", conn.Direction, m.coachName(conn.Other))
			if conn.Type == graph.ConnectionOverlap {
				line = fmt.Sprintf("    overlapped with %s", m.coachName(conn.Other))
			}
			if conn.Years != "" {
				line += "  " + listDimStyle.Render(conn.Years)
			}
			b.WriteString(line + "\n")
		}
	}

	return b.String()
}

func (m browseModel) coachName(id string) string {
	if coach, ok := m.pruned.Dataset().CoachByID(id); ok {
		return coach.Name
	}
	return id
}
