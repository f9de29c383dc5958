// tinig is the command-line Baybayin transliterator. With arguments or
// piped stdin it converts once and exits; with a terminal and no arguments
// it opens an interactive live view.
//
//	tinig mahal kita
//	echo "kamusta" | tinig
//	tinig -latin bahay
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/tinig-app/tinig/internal/baybayin"
)

// newFlags builds the flag set. Bool flags default to false.
func newFlags() (*ff.FlagSet, *bool) {
	fs := ff.NewFlagSet("tinig")
	showLatin := fs.BoolLong("latin", "also print the normalized Latin form")
	return fs, showLatin
}

func main() {
	fs, showLatin := newFlags()

	if err := ff.Parse(fs, os.Args[1:]); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs))
		os.Exit(2)
	}

	if args := fs.GetArgs(); len(args) > 0 {
		emit(strings.Join(args, " "), *showLatin)
		return
	}

	if !isatty.IsTerminal(os.Stdin.Fd()) {
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
		for scanner.Scan() {
			emit(scanner.Text(), *showLatin)
		}
		if err := scanner.Err(); err != nil {
			fmt.Fprintln(os.Stderr, "reading stdin:", err)
			os.Exit(1)
		}
		return
	}

	if _, err := tea.NewProgram(initialModel()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func emit(line string, showLatin bool) {
	result := baybayin.TransliterateDetail(line)
	if showLatin {
		fmt.Println(result.Latin)
	}
	fmt.Println(result.Baybayin)
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	latinStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Italic(true)

	glyphStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true)

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)

type model struct {
	input textinput.Model
}

func initialModel() model {
	ti := textinput.New()
	ti.Placeholder = "kamusta ka"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 48
	return model{input: ti}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	result := baybayin.TransliterateDetail(m.input.Value())

	var b strings.Builder
	b.WriteString(titleStyle.Render("ᜆᜒᜈᜒᜄ᜔ Tinig"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(latinStyle.Render(result.Latin))
	b.WriteString("\n")
	b.WriteString(glyphStyle.Render(result.Baybayin))
	b.WriteString("\n\n")
	b.WriteString(subtleStyle.Render("esc to quit"))

	return boxStyle.Render(b.String())
}
