// This file implements the AI assistant chat panel using bubbletea.
package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"dealdesk/cmd/dealdesk/ui"
	"dealdesk/internal/api"
)

var chatContractID string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the contract assistant",
	Long: `Opens the interactive assistant panel. Each turn is one request and
one reply - no streaming, no retry. Pass --contract to keep a contract id in
the running context.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		model := newChatModel(client, chatContractID)
		p := tea.NewProgram(model, tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	chatCmd.Flags().StringVar(&chatContractID, "contract", "", "contract id to discuss")
}

type chatMessage struct {
	role    string // "user" or "assistant"
	content string
	time    time.Time
}

// Messages for tea updates.
type (
	chatReplyMsg api.ChatResponse
	chatErrMsg   error
)

// chatModel is the assistant panel: an append-only message history over a
// single in-flight request at a time.
type chatModel struct {
	textinput textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	styles    ui.Styles
	renderer  *glamour.TermRenderer

	history    []chatMessage
	chips      []string
	isLoading  bool
	ready      bool
	width      int
	height     int
	contractID string

	client *api.Client
}

func newChatModel(client *api.Client, contractID string) chatModel {
	styles := ui.StylesFor(cfg.UI.Theme)

	ti := textinput.New()
	ti.Placeholder = "Ask about your contracts... (Enter to send, Ctrl+C to exit)"
	ti.Focus()
	ti.Prompt = "│ "
	ti.CharLimit = cfg.UI.CharLimit
	ti.Width = 80
	ti.PromptStyle = styles.Prompt
	ti.TextStyle = styles.UserInput

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	vp := viewport.New(80, 20)
	vp.SetContent("")

	renderer := newChatRenderer(styles.Theme.IsDark, cfg.UI.WordWrap)

	return chatModel{
		textinput:  ti,
		viewport:   vp,
		spinner:    sp,
		styles:     styles,
		renderer:   renderer,
		contractID: contractID,
		client:     client,
	}
}

// newChatRenderer builds the markdown renderer for the active theme. Rebuilt
// on resize so word wrap tracks the terminal width.
func newChatRenderer(dark bool, wordWrap int) *glamour.TermRenderer {
	style := glamour.WithStylePath("light")
	if dark {
		style = glamour.WithAutoStyle()
	}
	renderer, _ := glamour.NewTermRenderer(style, glamour.WithWordWrap(wordWrap))
	return renderer
}

func (m chatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// sendTurn posts the user query with the running context. One request per
// turn, at-most-once; failures become a generic assistant message.
func (m chatModel) sendTurn(query string) tea.Cmd {
	client := m.client
	contractID := m.contractID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
		defer cancel()
		resp, err := client.Chat(ctx, api.ChatRequest{Query: query, ContractID: contractID})
		if err != nil {
			return chatErrMsg(err)
		}
		return chatReplyMsg(resp)
	}
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var tiCmd, vpCmd, spCmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			if m.isLoading {
				return m, nil
			}
			query := strings.TrimSpace(m.textinput.Value())
			if query == "" {
				return m, nil
			}
			// Optimistic append before the request settles.
			m.history = append(m.history, chatMessage{role: "user", content: query, time: time.Now()})
			m.chips = nil
			m.textinput.Reset()
			m.isLoading = true
			m.viewport.SetContent(m.renderHistory())
			m.viewport.GotoBottom()
			return m, tea.Batch(m.sendTurn(query), m.spinner.Tick)
		}

		if !m.isLoading {
			m.textinput, tiCmd = m.textinput.Update(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 2
		footerHeight := 2
		inputHeight := 3
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, msg.Height-headerHeight-footerHeight-inputHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = msg.Height - headerHeight - footerHeight - inputHeight
		}
		m.textinput.Width = msg.Width - 4
		m.renderer = newChatRenderer(m.styles.Theme.IsDark, msg.Width-8)
		m.viewport.SetContent(m.renderHistory())

	case spinner.TickMsg:
		if m.isLoading {
			m.spinner, spCmd = m.spinner.Update(msg)
			return m, spCmd
		}

	case chatReplyMsg:
		m.isLoading = false
		content := msg.Reply
		if len(msg.Analysis) > 0 {
			content += "\n\n" + formatAnalysis(msg.Analysis)
		}
		m.history = append(m.history, chatMessage{role: "assistant", content: content, time: time.Now()})
		m.chips = msg.Suggestions
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()

	case chatErrMsg:
		m.isLoading = false
		m.history = append(m.history, chatMessage{
			role:    "assistant",
			content: "Sorry, I could not reach the contract assistant. Please try again.",
			time:    time.Now(),
		})
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()
	}

	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd, spCmd)
}

func (m chatModel) renderHistory() string {
	var sb strings.Builder
	for _, msg := range m.history {
		switch msg.role {
		case "user":
			sb.WriteString(m.styles.Prompt.Render("you") + " " + msg.content + "\n")
		default:
			rendered := msg.content
			if m.renderer != nil {
				if md, err := m.renderer.Render(msg.content); err == nil {
					rendered = md
				}
			}
			sb.WriteString(m.styles.Header.Render("assistant") + "\n" + rendered + "\n")
		}
	}
	if len(m.chips) > 0 {
		sb.WriteString(m.styles.Muted.Render("suggestions: "+strings.Join(m.chips, " · ")) + "\n")
	}
	return sb.String()
}

func (m chatModel) View() string {
	if !m.ready {
		return "loading..."
	}
	header := m.styles.Title.Render("dealdesk assistant")
	if m.contractID != "" {
		header += m.styles.Muted.Render(" (contract " + m.contractID + ")")
	}
	status := ""
	if m.isLoading {
		status = m.spinner.View() + " thinking..."
	}
	return fmt.Sprintf("%s\n%s\n%s\n%s", header, m.viewport.View(), status, m.textinput.View())
}

// formatAnalysis renders the analysis block as a markdown list with stable
// key order.
func formatAnalysis(analysis map[string]any) string {
	keys := make([]string, 0, len(analysis))
	for k := range analysis {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("**Analysis**\n")
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("- %s: %v\n", k, analysis[k]))
	}
	return sb.String()
}
