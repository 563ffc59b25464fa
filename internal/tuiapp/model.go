package tuiapp

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"rdoc/internal/docgraph"
	"rdoc/internal/docir"
	"rdoc/internal/doclayout"
	"rdoc/internal/docrender"
	"rdoc/internal/logging"
	"rdoc/internal/tuitheme"
	"rdoc/internal/workerproto"
)

const gutterWidth = 2

// Model is the bubbletea application (§4.J, §5): one Model owns the UI
// thread's view of the current Document, the layout/scroll/cursor state
// doclayout tracks, navigation history, and the Mode state machine. It
// is a single flat struct with UI sub-components (spinner, textinput)
// plus domain state, and an Update that switches on concrete tea.Msg
// types.
type Model struct {
	ch *workerproto.Channels

	theme   string
	palette docrender.StylePalette
	chrome  tuitheme.Chrome

	width, height int

	doc    Document
	layout doclayout.Result
	scroll doclayout.Scroll
	cursor doclayout.Cursor

	mode Mode

	back    []docgraph.Ref
	forward []docgraph.Ref
	current docgraph.Ref

	pending uuid.UUID
	loading bool
	spin    spinner.Model
	input   textinput.Model

	status string
	err    error
	quit   bool
}

// New builds the initial Model for root, the first item to format.
func New(ch *workerproto.Channels, theme string, root docgraph.Ref) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = tuitheme.ChromeFor(theme).Accent

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 256

	return Model{
		ch:      ch,
		theme:   theme,
		palette: tuitheme.Palette(theme),
		chrome:  tuitheme.ChromeFor(theme),
		current: root,
		spin:    sp,
		input:   ti,
	}
}

func (m Model) Init() tea.Cmd {
	cmd := workerproto.NewCommand(workerproto.CommandNavigate)
	cmd.NavigateTarget = m.current
	return tea.Batch(m.spin.Tick, m.issue(cmd))
}

// responseMsg wraps a worker answer so bubbletea can route it through
// Update like any other message.
type responseMsg workerproto.RequestResponse

// issue sends cmd to the worker and arranges to receive exactly one
// matching response, marking the UI as loading until it arrives (§5:
// "single in-flight request" — the UI doesn't issue a second command
// before this one answers).
func (m *Model) issue(cmd workerproto.UiCommand) tea.Cmd {
	m.pending = cmd.ID
	m.loading = true
	ch := m.ch
	return tea.Batch(
		func() tea.Msg { ch.Commands <- cmd; return nil },
		func() tea.Msg { return responseMsg(<-ch.Responses) },
	)
}

func (m *Model) navigate(ref docgraph.Ref) tea.Cmd {
	cmd := workerproto.NewCommand(workerproto.CommandNavigate)
	cmd.NavigateTarget = ref
	return m.issue(cmd)
}

func (m *Model) navigateToPath(path string) tea.Cmd {
	cmd := workerproto.NewCommand(workerproto.CommandNavigateToPath)
	cmd.Path = path
	return m.issue(cmd)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.rerender()
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case responseMsg:
		if msg.CommandID != m.pending {
			return m, nil // stale response for a superseded command
		}
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			if len(msg.Suggestions) > 0 {
				m.status = "not found — try: " + strings.Join(msg.Suggestions, ", ")
			}
			return m, nil
		}
		m.err = nil
		m.doc = msg.Document
		m.scroll.Home()
		m.cursor.Reset()
		m.rerender()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) rerender() {
	contentWidth := m.width - gutterWidth
	if contentWidth < 20 {
		contentWidth = 20
	}
	m.layout = doclayout.Render(m.doc, m.palette, contentWidth)
	m.scroll.Clamp(m.layout.Height, m.viewportHeight())
}

func (m *Model) viewportHeight() int {
	h := m.height - 3 // header + status + input rows
	if h < 1 {
		h = 1
	}
	return h
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode.Kind {
	case ModeInput:
		return m.handleInputKey(msg)
	case ModeThemePicker:
		return m.handleThemePickerKey(msg)
	case ModeHelp, ModeDevLog:
		if msg.Type == tea.KeyEsc || msg.String() == "q" {
			next, _ := m.mode.Escape()
			if m.mode.Kind == ModeDevLog {
				m.doc, m.scroll = m.mode.SavedDoc, m.mode.SavedScroll
			}
			m.mode = next
			m.rerender()
		}
		return m, nil
	default:
		return m.handleNormalKey(msg)
	}
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quit = true
		return m, tea.Quit
	case "esc":
		_, exit := m.mode.Escape()
		if exit {
			m.quit = true
			return m, tea.Quit
		}
		return m, nil
	case "j", "down":
		m.cursor.MoveDown(len(m.layout.Regions), m.regionVisible)
		return m, nil
	case "k", "up":
		m.cursor.MoveUp(len(m.layout.Regions), m.regionVisible)
		return m, nil
	case "ctrl+d", "pgdown":
		m.scroll.HalfPageDown(m.viewportHeight(), m.layout.Height)
		return m, nil
	case "ctrl+u", "pgup":
		m.scroll.HalfPageUp(m.viewportHeight())
		return m, nil
	case "home":
		m.scroll.Home()
		return m, nil
	case "G", "end":
		m.scroll.End(m.layout.Height, m.viewportHeight())
		return m, nil
	case "enter":
		if m.cursor.State == doclayout.CursorFocused {
			region := m.layout.Regions[m.cursor.Index]
			if region.Action != nil {
				return m, m.dispatch(region.Action)
			}
		}
		return m, nil
	case "backspace", "left":
		return m, m.goBack()
	case "right":
		return m, m.goForward()
	case "/":
		m.mode = EnterInput(InputSearch)
		m.input.Placeholder = "search (this crate)..."
		m.input.SetValue("")
		m.input.Focus()
		return m, nil
	case "g":
		m.mode = EnterInput(InputGoTo)
		m.input.Placeholder = "crate::path::to::item"
		m.input.SetValue("")
		m.input.Focus()
		return m, nil
	case "t":
		idx := 0
		for i, n := range tuitheme.Names {
			if n == m.theme {
				idx = i
			}
		}
		m.mode = EnterThemePicker(m.theme, idx)
		return m, nil
	case "d":
		m.mode = EnterDevLog(m.doc, m.scroll)
		m.doc = devLogDocument()
		m.rerender()
		return m, nil
	case "?":
		m.mode = Mode{Kind: ModeHelp}
		return m, nil
	}
	return m, nil
}

func (m Model) regionVisible(i int) bool {
	r := m.layout.Regions[i]
	return r.Rect.Y >= m.scroll.Offset && r.Rect.Y < m.scroll.Offset+m.viewportHeight()
}

func (m *Model) dispatch(a docir.Action) tea.Cmd {
	switch act := a.(type) {
	case docir.Navigate:
		m.pushHistory()
		m.current = act.Target
		return m.navigate(act.Target)
	case docir.NavigateToPath:
		return m.navigateToPath(act.Path)
	case docir.ExpandBlock:
		if ExpandAt(m.doc, act.Path) {
			m.rerender()
		}
		return nil
	case docir.OpenUrl:
		m.status = "link: " + act.URL
		return nil
	case docir.SelectTheme:
		m.applyTheme(act.Name)
		return nil
	}
	return nil
}

func (m *Model) pushHistory() {
	if !m.current.IsZero() {
		m.back = append(m.back, m.current)
		m.forward = nil
	}
}

func (m *Model) goBack() tea.Cmd {
	if len(m.back) == 0 {
		return nil
	}
	ref := m.back[len(m.back)-1]
	m.back = m.back[:len(m.back)-1]
	m.forward = append(m.forward, m.current)
	m.current = ref
	return m.navigate(ref)
}

func (m *Model) goForward() tea.Cmd {
	if len(m.forward) == 0 {
		return nil
	}
	ref := m.forward[len(m.forward)-1]
	m.forward = m.forward[:len(m.forward)-1]
	m.back = append(m.back, m.current)
	m.current = ref
	return m.navigate(ref)
}

func (m *Model) applyTheme(name string) {
	m.theme = name
	m.palette = tuitheme.Palette(name)
	m.chrome = tuitheme.ChromeFor(name)
	m.spin.Style = m.chrome.Accent
	m.rerender()
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = Mode{Kind: ModeNormal}
		m.input.Blur()
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		kind := m.mode.InputKind
		allCrates := m.mode.AllCrates
		m.mode = Mode{Kind: ModeNormal}
		m.input.Blur()
		if value == "" {
			return m, nil
		}
		if kind == InputGoTo {
			return m, m.navigateToPath(value)
		}
		cmd := workerproto.NewCommand(workerproto.CommandSearch)
		cmd.Query = value
		cmd.AllCrates = allCrates
		if !m.current.IsZero() {
			cmd.DefaultCrate = m.current.Graph.CrateName.String()
		}
		return m, m.issue(cmd)
	case "ctrl+a":
		if m.mode.InputKind == InputSearch {
			m.mode.AllCrates = !m.mode.AllCrates
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.mode.Buffer = m.input.Value()
	return m, cmd
}

func (m Model) handleThemePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.applyTheme(m.mode.SavedTheme)
		m.mode = Mode{Kind: ModeNormal}
		return m, nil
	case "up", "k":
		if m.mode.Selected > 0 {
			m.mode.Selected--
		}
		return m, nil
	case "down", "j":
		if m.mode.Selected < len(tuitheme.Names)-1 {
			m.mode.Selected++
		}
		return m, nil
	case "enter":
		m.applyTheme(tuitheme.Names[m.mode.Selected])
		m.mode = Mode{Kind: ModeNormal}
		return m, nil
	}
	return m, nil
}

func devLogDocument() Document {
	return []docir.Node{
		docir.Heading{Level: docir.HeadingSection, Spans: []docir.Span{{Text: "Developer log"}}},
		docir.Paragraph{Spans: []docir.Span{{Text: "Debug logging writes to " + string(logging.CategoryWorker) + " and sibling category files under the configured log root when debug_mode is enabled; this pane is a placeholder viewport onto that state rather than a live tail."}}},
	}
}

func (m Model) View() string {
	if m.width == 0 {
		return "initializing..."
	}
	var b strings.Builder
	b.WriteString(m.chrome.Accent.Render(m.headerLine()))
	b.WriteByte('\n')

	start := m.scroll.Offset
	end := start + m.viewportHeight()
	if end > len(m.layout.Lines) {
		end = len(m.layout.Lines)
	}
	if start > end {
		start = end
	}
	for _, line := range m.layout.Lines[start:end] {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	for i := end - start; i < m.viewportHeight(); i++ {
		b.WriteByte('\n')
	}

	b.WriteString(m.chrome.Muted.Render(m.statusLine()))

	switch m.mode.Kind {
	case ModeInput:
		b.WriteByte('\n')
		b.WriteString(m.input.View())
	case ModeHelp:
		b.WriteByte('\n')
		b.WriteString(m.chrome.Border.Render(helpText()))
	case ModeThemePicker:
		b.WriteByte('\n')
		b.WriteString(m.themePickerView())
	}
	return b.String()
}

func (m Model) headerLine() string {
	if m.current.IsZero() {
		return "rdoc"
	}
	return fmt.Sprintf("rdoc — %s :: %s", m.current.Graph.CrateName.String(), m.current.Item.Name)
}

func (m Model) statusLine() string {
	if m.loading {
		return m.spin.View() + " loading..."
	}
	if m.err != nil {
		msg := m.err.Error()
		if m.status != "" {
			msg += " (" + m.status + ")"
		}
		return msg
	}
	if m.status != "" {
		return m.status
	}
	return "?: help  g: goto  /: search  t: theme  d: devlog  q: quit"
}

func helpText() string {
	return strings.Join([]string{
		"j/k or arrows: move    enter: activate    left/right: back/forward",
		"ctrl+d/ctrl+u: half page    home/G: top/bottom",
		"g: goto path    /: search    t: theme picker    d: developer log",
		"esc: back to normal / quit    q: quit",
	}, "\n")
}

func (m Model) themePickerView() string {
	var b strings.Builder
	for i, name := range tuitheme.Names {
		prefix := "  "
		style := m.chrome.Muted
		if i == m.mode.Selected {
			prefix = "> "
			style = m.chrome.Accent
		}
		b.WriteString(style.Render(prefix + name))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}
