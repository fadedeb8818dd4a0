package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Chooser presents a menu and returns the zero-based index of the picked option.
//
// Quitting a menu picks the last option, which every menu uses for Back or Exit.
type Chooser interface {
	Choose(ctx context.Context, title string, options []string) (int, error)
}

// LineChooser prints a numbered list and reads the number of the choice.
type LineChooser struct {
	prompter *Prompter
	printer  *Printer
}

func NewLineChooser(prompter *Prompter, printer *Printer) *LineChooser {
	return &LineChooser{prompter: prompter, printer: printer}
}

func (c *LineChooser) Choose(ctx context.Context, title string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, errors.New("console: menu has no options")
	}
	for {
		c.printer.Println()
		c.printer.Title(title)
		for i, opt := range options {
			c.printer.Println(fmt.Sprintf("  %d) %s", i+1, opt))
		}
		answer, err := c.prompter.Ask(ctx, "", "Select an option", ToneNeutral)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(answer)
		if err != nil || n < 1 || n > len(options) {
			c.printer.Error("Please enter a number from 1 to %d", len(options))
			continue
		}
		return n - 1, nil
	}
}

type menuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Quit   key.Binding
}

func defaultMenuKeys() menuKeyMap {
	return menuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Choose: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "choose"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "back"),
		),
	}
}

// menuModel is the bubbletea model behind TeaChooser.
type menuModel struct {
	title   string
	options []string
	cursor  int
	chosen  int
	keys    menuKeyMap
	styles  styles
}

func newMenuModel(title string, options []string, st styles) menuModel {
	return menuModel{
		title:   title,
		options: options,
		chosen:  -1,
		keys:    defaultMenuKeys(),
		styles:  st,
	}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		} else {
			m.cursor = len(m.options) - 1
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.options)-1 {
			m.cursor++
		} else {
			m.cursor = 0
		}
	case key.Matches(keyMsg, m.keys.Choose):
		m.chosen = m.cursor
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Quit):
		m.chosen = len(m.options) - 1
		return m, tea.Quit
	default:
		// Digits jump straight to an option.
		if n, err := strconv.Atoi(keyMsg.String()); err == nil && n >= 1 && n <= len(m.options) {
			m.cursor = n - 1
			m.chosen = m.cursor
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m menuModel) View() string {
	if m.chosen >= 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.title.Render(m.title))
	b.WriteString("\n\n")
	for i, opt := range m.options {
		line := fmt.Sprintf("%d) %s", i+1, opt)
		if i == m.cursor {
			b.WriteString(m.styles.title.Render("▸ " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	help := []string{}
	for _, k := range []key.Binding{m.keys.Up, m.keys.Down, m.keys.Choose, m.keys.Quit} {
		h := k.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	b.WriteString("\n")
	b.WriteString(m.styles.muted.Render(strings.Join(help, " • ")))
	b.WriteString("\n")
	return b.String()
}

// TeaChooser renders an interactive menu navigated with the arrow keys.
type TeaChooser struct {
	in     io.Reader
	out    io.Writer
	styles styles
}

func NewTeaChooser(in io.Reader, out io.Writer) *TeaChooser {
	return &TeaChooser{in: in, out: out, styles: newStyles(lipgloss.NewRenderer(out))}
}

func (c *TeaChooser) Choose(ctx context.Context, title string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, errors.New("console: menu has no options")
	}
	p := tea.NewProgram(newMenuModel(title, options, c.styles),
		tea.WithContext(ctx), tea.WithInput(c.in), tea.WithOutput(c.out))
	final, err := p.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return 0, ctxErr
	}
	if err != nil {
		return 0, fmt.Errorf("run menu: %w", err)
	}
	m, ok := final.(menuModel)
	if !ok || m.chosen < 0 {
		// Input closed before a choice was made.
		return 0, io.EOF
	}
	return m.chosen, nil
}
