package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/moodcanvas/moodcanvas/pkg/emotion"
	"github.com/moodcanvas/moodcanvas/pkg/palette"
	"github.com/moodcanvas/moodcanvas/pkg/pipeline"
	"github.com/moodcanvas/moodcanvas/pkg/text"
)

// tuiCommand creates the interactive prompt explorer.
func (c *CLI) tuiCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Interactive prompt explorer",
		Long: `Explore prompts interactively: the palette and detected emotions
update as you type. Press enter to render the current prompt to a file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(false)
			if err != nil {
				return err
			}
			defer runner.Close()

			m := newExplorerModel(runner, output)
			final, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}

			if fm, ok := final.(explorerModel); ok {
				switch {
				case fm.savedPath != "":
					printSuccess("Rendered %q", fm.prompt)
					printFile(fm.savedPath)
				case fm.err != nil:
					printError("Render failed: %v", fm.err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "moodcanvas.png", "output file for rendered prompts")

	return cmd
}

// explorer styles
var (
	explorerPromptStyle = lipgloss.NewStyle().Foreground(colorWhite)
	explorerCursorStyle = lipgloss.NewStyle().Foreground(colorCyan)
	explorerLabelStyle  = lipgloss.NewStyle().Foreground(colorGray).Width(10)
)

// renderDoneMsg reports the outcome of a background render.
type renderDoneMsg struct {
	path string
	err  error
}

// explorerModel is the bubbletea model for the prompt explorer.
// The palette preview derives synchronously on every keystroke; only the
// full render runs as a background command.
type explorerModel struct {
	runner *pipeline.Runner
	output string

	prompt    string
	mode      string
	pal       palette.Palette
	dominant  emotion.Emotion
	rendering bool
	savedPath string
	err       error
}

func newExplorerModel(runner *pipeline.Runner, output string) explorerModel {
	m := explorerModel{
		runner: runner,
		output: output,
		mode:   pipeline.ModeFlow,
	}
	m.refresh()
	return m
}

// refresh recomputes the palette preview from the current prompt.
func (m *explorerModel) refresh() {
	canonical := text.Canonicalize(m.prompt)
	m.pal = palette.Derive(canonical, pipeline.DefaultPaletteSize, palette.SchemeSlice)

	scores := emotion.Scan(text.Tokenize(canonical), emotion.DefaultLexicon())
	m.dominant, _ = scores.Dominant()
}

func (m explorerModel) Init() tea.Cmd {
	return nil
}

func (m explorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.rendering {
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			if m.mode == pipeline.ModeFlow {
				m.mode = pipeline.ModeEmotion
			} else {
				m.mode = pipeline.ModeFlow
			}
		case "enter":
			m.rendering = true
			m.err = nil
			return m, m.renderCmd()
		case "backspace":
			if len(m.prompt) > 0 {
				runes := []rune(m.prompt)
				m.prompt = string(runes[:len(runes)-1])
				m.refresh()
			}
		default:
			switch msg.Type {
			case tea.KeyRunes:
				m.prompt += string(msg.Runes)
				m.refresh()
			case tea.KeySpace:
				m.prompt += " "
				m.refresh()
			}
		}

	case renderDoneMsg:
		m.rendering = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.savedPath = msg.path
			return m, tea.Quit
		}
	}
	return m, nil
}

// renderCmd runs the pipeline in the background and writes the output.
func (m explorerModel) renderCmd() tea.Cmd {
	prompt := m.prompt
	mode := m.mode
	output := m.output
	runner := m.runner

	return func() tea.Msg {
		result, err := runner.Execute(context.Background(), pipeline.Options{
			Prompt: prompt,
			Mode:   mode,
		})
		if err != nil {
			return renderDoneMsg{err: err}
		}
		if err := os.WriteFile(output, result.PNG, 0o644); err != nil {
			return renderDoneMsg{err: err}
		}
		return renderDoneMsg{path: output}
	}
}

func (m explorerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("MoodCanvas"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("type a prompt  ⇥ mode  ⏎ render  esc quit"))
	b.WriteString("\n\n")

	b.WriteString(explorerLabelStyle.Render("prompt"))
	b.WriteString(explorerPromptStyle.Render(m.prompt))
	b.WriteString(explorerCursorStyle.Render("▏"))
	b.WriteString("\n")

	b.WriteString(explorerLabelStyle.Render("mode"))
	b.WriteString(StyleHighlight.Render(m.mode))
	b.WriteString("\n")

	b.WriteString(explorerLabelStyle.Render("palette"))
	b.WriteString(renderSwatches(m.pal))
	b.WriteString("\n")

	b.WriteString(explorerLabelStyle.Render("mood"))
	if m.dominant != "" {
		b.WriteString(StyleValue.Render(string(m.dominant)))
	} else {
		b.WriteString(StyleDim.Render("neutral"))
	}
	b.WriteString("\n\n")

	switch {
	case m.rendering:
		b.WriteString(StyleDim.Render("rendering..."))
	case m.err != nil:
		b.WriteString(StyleWarning.Render(fmt.Sprintf("render failed: %v", m.err)))
	default:
		b.WriteString(StyleDim.Render(fmt.Sprintf("output: %s", m.output)))
	}
	b.WriteString("\n")

	return b.String()
}
