package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

const PlaceHolderText = "What do you do? (try: go forward, talk to barry, help)"

// ConsoleUI is the BubbleTea model that runs the terminal player.
type ConsoleUI struct {
	game         *game
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int

	history []turnResult
	notice  string
	ended   bool
}

type turnMsg struct {
	result turnResult
}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	repromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")). // yellow
			Italic(true)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

func NewConsoleUI(g *game) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	return ConsoleUI{
		game:         g,
		textarea:     ta,
		chatViewport: viewport.New(50, 20),
		metaViewport: viewport.New(20, 20),
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.playTurn(""))
}

// playTurn runs a turn off the UI goroutine. An empty line launches.
func (m ConsoleUI) playTurn(line string) tea.Cmd {
	g := m.game
	return func() tea.Msg {
		if line == "" {
			return turnMsg{g.launch()}
		}
		return turnMsg{g.say(line)}
	}
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		chatWidth := int(float64(m.width)*0.7) - 2
		metaWidth := m.width - chatWidth - 4

		m.chatViewport.Width = chatWidth - 2
		m.chatViewport.Height = m.height - 5
		m.metaViewport.Width = metaWidth
		m.metaViewport.Height = m.height - 2
		m.textarea.SetWidth(chatWidth - 4)

		m.ready = true
		m.writeChatContent()
		m.metaViewport.SetContent(m.writeMetadata())

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			m.textarea.Reset()
			if input == "" {
				return m, nil
			}
			if strings.HasPrefix(input, "/") {
				return m.handleCommand(input)
			}
			if m.ended {
				m.ended = false
				m.history = nil
				m.notice = ""
				return m, m.playTurn("")
			}
			return m, m.playTurn(input)
		}

	case turnMsg:
		m.history = append(m.history, msg.result)
		m.ended = msg.result.end
		m.notice = ""
		if m.ended {
			m.notice = "The session has ended. Press Enter to play again or Esc to quit."
		}
		m.writeChatContent()
		m.metaViewport.SetContent(m.writeMetadata())
		return m, nil
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd)
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	switch strings.ToLower(input) {
	case "/copy":
		if len(m.history) == 0 {
			m.notice = "Nothing to copy yet."
			break
		}
		last := m.history[len(m.history)-1].out
		if err := clipboard.WriteAll(last.CardContent); err != nil {
			m.notice = "Copy failed: " + err.Error()
		} else {
			m.notice = "Copied the last reply to the clipboard."
		}
	case "/ssml":
		if len(m.history) > 0 {
			m.notice = m.history[len(m.history)-1].out.SSML
		}
	case "/help":
		m.notice = "Type what you want to do, in English or German. " +
			"Commands: /copy copies the last reply, /ssml shows its speech markup, Esc quits."
	default:
		m.notice = "Unknown command " + input
	}
	m.writeChatContent()
	return m, nil
}

// writeChatContent rebuilds the transcript for the current width.
func (m *ConsoleUI) writeChatContent() {
	width := m.chatViewport.Width - 2
	if width < 20 {
		width = 20
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("MYSTERIOUS HOUSE") + "\n\n")
	for _, turn := range m.history {
		if turn.input != "" {
			content.WriteString(userStyle.Render("You: ") + wordwrap.String(turn.input, width-5) + "\n\n")
		}
		if turn.out.CardTitle != "" {
			content.WriteString(titleStyle.Render(turn.out.CardTitle) + "\n")
		}
		content.WriteString(narratorStyle.Render(wordwrap.String(turn.out.CardContent, width)) + "\n")
		if turn.out.Reprompt != "" {
			content.WriteString(repromptStyle.Render(wordwrap.String(turn.out.Reprompt, width)) + "\n")
		}
		if turn.err != nil {
			content.WriteString(errorStyle.Render(wordwrap.String(turn.err.Error(), width)) + "\n")
		}
		content.WriteString("\n")
	}
	if m.notice != "" {
		content.WriteString(promptStyle.Render(wordwrap.String(m.notice, width)) + "\n")
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func (m ConsoleUI) writeMetadata() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("SESSION") + "\n\n")
	content.WriteString(m.game.describeSession())
	content.WriteString("\nPlayer:\n" + shorten(m.game.userID, m.metaViewport.Width) + "\n")
	content.WriteString("\nLocale:\n" + m.game.locale + "\n")
	content.WriteString("\nStore:\n" + m.game.driver + "\n")
	if n := len(m.history); n > 0 {
		content.WriteString(fmt.Sprintf("\nLast intent:\n%s\n", m.history[n-1].intent))
	}
	return content.String()
}

func shorten(s string, width int) string {
	if width <= 3 || len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}

func (m ConsoleUI) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.7) - 2
	metaWidth := m.width - chatWidth - 4

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			promptStyle.Render(strings.Repeat("─", max(chatWidth-4, 1))),
			m.textarea.View(),
		),
	)
	metaPanel := metaPanelStyle.Width(metaWidth).Render(m.metaViewport.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}
