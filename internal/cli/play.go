package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/render/term"
	"github.com/matzehuels/stepviz/pkg/trace"
)

var (
	playStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	playEventStyle  = lipgloss.NewStyle().Foreground(colorWhite)
	playHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PlayerModel - Interactive step-through of a recorded trace
// =============================================================================

// tickMsg advances auto-play. gen discards ticks from an earlier play run.
type tickMsg struct{ gen int }

// PlayerModel is the bubbletea model that steps through a trace.
type PlayerModel struct {
	Desc     *catalog.Descriptor
	Player   *trace.Player
	Interval time.Duration
	Playing  bool

	gen int
}

// NewPlayerModel creates a paused player positioned before the first event.
func NewPlayerModel(d *catalog.Descriptor, t *trace.Trace, interval time.Duration) PlayerModel {
	return PlayerModel{Desc: d, Player: trace.NewPlayer(t), Interval: interval}
}

func (m PlayerModel) Init() tea.Cmd {
	return nil
}

func (m PlayerModel) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.Interval, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func (m PlayerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "n", "right", "l":
			m.pause()
			m.Player.Next()
		case "p", "left", "h":
			m.pause()
			m.Player.Prev()
		case "r", "home":
			m.pause()
			m.Player.Reset()
		case "end":
			m.pause()
			m.Player.Seek(m.Player.Len())
		case " ":
			if m.Playing {
				m.pause()
				return m, nil
			}
			if m.Player.Done() {
				m.Player.Reset()
			}
			m.Playing = true
			m.gen++
			return m, m.tick()
		}
	case tickMsg:
		if !m.Playing || msg.gen != m.gen {
			return m, nil
		}
		if !m.Player.Next() || m.Player.Done() {
			m.pause()
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *PlayerModel) pause() {
	if m.Playing {
		m.Playing = false
		m.gen++
	}
}

func (m PlayerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Desc.Name))
	b.WriteString("  ")
	b.WriteString(playStatusStyle.Render(fmt.Sprintf("step %d/%d", m.Player.Position(), m.Player.Len())))
	if m.Playing {
		b.WriteString(playStatusStyle.Render("  ▶"))
	}
	b.WriteString("\n")
	if ev, ok := m.Player.Current(); ok {
		b.WriteString(playEventStyle.Render(ev.String()))
	}
	b.WriteString("\n\n")
	b.WriteString(term.Frame(m.Desc, m.Player.State()))
	b.WriteString("\n\n")
	b.WriteString(playHelpStyle.Render("←/→ step  space play/pause  r reset  q quit"))
	b.WriteString("\n")
	return b.String()
}

// =============================================================================
// play command
// =============================================================================

// playCommand creates the "play" command.
func (c *CLI) playCommand() *cobra.Command {
	var (
		flags    inputFlags
		interval time.Duration
		at       int
	)

	cmd := &cobra.Command{
		Use:   "play <algorithm>",
		Short: "Step through an algorithm interactively",
		Long: `Record an algorithm run and step through it in the terminal.

Use the arrow keys to move one step, space to auto-play and q to quit.
With --step the frame at that step is printed once and the command exits.`,
		Example: `  stepviz play quickSort --values 29,10,14,37,13
  stepviz play inorderTraversal --values 5,3,7,2,4 --step 6`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeAlgorithms,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner := c.newRunner(ctx, flags.noCache)
			defer runner.Cache.Close()

			d, t, _, err := c.record(ctx, runner, args[0], &flags)
			if err != nil {
				return userError(err)
			}

			if cmd.Flags().Changed("step") {
				fmt.Fprintln(cmd.OutOrStdout(), term.Frame(d, trace.StateAt(t, at)))
				return nil
			}

			if interval <= 0 {
				interval = c.Config.Player.Interval
			}
			p := tea.NewProgram(NewPlayerModel(d, t, interval),
				tea.WithContext(ctx),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen(),
			)
			_, err = p.Run()
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().DurationVar(&interval, "interval", 0, "auto-play delay between steps (default from config)")
	cmd.Flags().IntVar(&at, "step", 0, "print the frame after this many events and exit")
	return cmd
}
