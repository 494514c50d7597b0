// Package tui provides the terminal surfaces used during playback dispatch:
// the Resume/Restart prompt and one-line notices.
package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/VuDung/serenity/internal/domain"
	"github.com/VuDung/serenity/internal/tui/styles"
)

// ErrNoTerminal is returned when a prompt is needed but stdin is not a terminal
var ErrNoTerminal = errors.New("resume prompt needs an interactive terminal")

// promptModel is the bubbletea model of a two-choice prompt.
// Resume is focused first.
type promptModel struct {
	prompt  domain.Prompt
	keys    KeyMap
	focused domain.Choice
	choice  domain.Choice
	done    bool
}

func newPromptModel(p domain.Prompt) promptModel {
	if p.Confirm == "" {
		p.Confirm = "Resume"
	}
	if p.Deny == "" {
		p.Deny = "Restart"
	}
	return promptModel{
		prompt:  p,
		keys:    DefaultKeyMap(),
		focused: domain.ChoiceResume,
		choice:  domain.ChoiceDismissed,
	}
}

func (m promptModel) Init() tea.Cmd {
	return nil
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.done {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Dismiss):
		return m.finish(domain.ChoiceDismissed)
	case key.Matches(keyMsg, m.keys.Resume):
		return m.finish(domain.ChoiceResume)
	case key.Matches(keyMsg, m.keys.Restart):
		return m.finish(domain.ChoiceRestart)
	case key.Matches(keyMsg, m.keys.Select):
		return m.finish(m.focused)
	case key.Matches(keyMsg, m.keys.Left):
		m.focused = domain.ChoiceResume
	case key.Matches(keyMsg, m.keys.Right):
		m.focused = domain.ChoiceRestart
	case key.Matches(keyMsg, m.keys.Toggle):
		if m.focused == domain.ChoiceResume {
			m.focused = domain.ChoiceRestart
		} else {
			m.focused = domain.ChoiceResume
		}
	}
	return m, nil
}

func (m promptModel) finish(c domain.Choice) (tea.Model, tea.Cmd) {
	m.choice = c
	m.done = true
	return m, tea.Quit
}

func (m promptModel) View() string {
	if m.done {
		return ""
	}

	resume := styles.ButtonStyle
	restart := styles.ButtonStyle
	if m.focused == domain.ChoiceResume {
		resume = styles.FocusedButtonStyle
	} else {
		restart = styles.FocusedButtonStyle
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		resume.Render(m.prompt.Confirm),
		"  ",
		restart.Render(m.prompt.Deny),
	)

	var help []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		help = append(help, styles.HelpKeyStyle.Render(h.Key)+" "+styles.HelpDescStyle.Render(h.Desc))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render(m.prompt.Title),
		styles.SubtitleStyle.Render(m.prompt.Message),
		"",
		buttons,
		"",
		strings.Join(help, "  "),
	)
	return styles.ModalStyle.Render(body) + "\n"
}

// Prompter asks Resume/Restart questions in the terminal
type Prompter struct {
	in         io.Reader
	out        io.Writer
	isTerminal func() bool
	logger     *slog.Logger
}

// NewPrompter creates a prompter reading stdin and drawing on stderr
func NewPrompter(logger *slog.Logger) *Prompter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Prompter{
		in:  os.Stdin,
		out: os.Stderr,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
		logger: logger,
	}
}

// Ask shows the prompt and blocks until the user picks a choice or
// dismisses it. Cancelling ctx dismisses the prompt.
func (p *Prompter) Ask(ctx context.Context, prompt domain.Prompt) (domain.Choice, error) {
	if err := ctx.Err(); err != nil {
		return domain.ChoiceDismissed, err
	}
	if !p.isTerminal() {
		return domain.ChoiceDismissed, ErrNoTerminal
	}

	prog := tea.NewProgram(
		newPromptModel(prompt),
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := prog.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return domain.ChoiceDismissed, ctxErr
	}
	if err != nil {
		p.logger.Error("resume prompt failed", "error", err)
		return domain.ChoiceDismissed, err
	}

	m, ok := final.(promptModel)
	if !ok {
		return domain.ChoiceDismissed, nil
	}
	p.logger.Debug("resume prompt answered", "choice", m.choice)
	return m.choice, nil
}

var _ domain.Prompter = (*Prompter)(nil)
