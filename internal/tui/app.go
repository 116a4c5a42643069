package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/FisherYu0112/Aix-DB/internal/api"
	"github.com/FisherYu0112/Aix-DB/internal/config"
	"github.com/FisherYu0112/Aix-DB/internal/database/repository"
	"github.com/FisherYu0112/Aix-DB/internal/history"
)

const appName = "AixDB"

// pageSizeCycle is the set of page sizes "p" rotates through in the
// history dialog.
var pageSizeCycle = []int{8, 20, 50}

// Backend is everything the app needs from the remote server.
type Backend interface {
	history.Conversations
	Ask(ctx context.Context, req api.AskRequest) (string, error)
}

// App ties the composer and the history pager to the terminal.
type App struct {
	ctx     context.Context
	cfg     config.Config
	log     *zap.Logger
	backend Backend
	turns   *repository.TurnRepo // nil disables the local archive

	composer *history.Composer
	pager    *history.Pager

	chatID          string
	transcript      []repository.Turn
	pendingQuestion string
	waiting         bool

	histCursor  int
	filtering   bool
	filterQuery string

	status string
	width  int
	height int

	keys     keyMap
	histKeys historyKeyMap
}

func New(ctx context.Context, cfg config.Config, backend Backend, turns *repository.TurnRepo, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		ctx:      ctx,
		cfg:      cfg,
		log:      log,
		backend:  backend,
		turns:    turns,
		composer: history.NewComposer(),
		pager:    history.NewPager(cfg.History.PageSize, log),
		chatID:   uuid.NewString(),
		keys:     newKeyMap(),
		histKeys: newHistoryKeyMap(),
	}
}

func (a *App) Init() tea.Cmd {
	if a.turns == nil {
		return nil
	}
	return a.loadRecentCmd()
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
		return a, nil
	case tea.KeyMsg:
		if a.pager.Visible() {
			return a.handleHistoryKey(m)
		}
		return a.handleChatKey(m)
	case historyFetchedMsg:
		if a.pager.Apply(m.seq, m.res, m.err) {
			a.clampHistCursor()
		}
		return a, nil
	case deleteDoneMsg:
		if m.err != nil {
			a.status = "delete failed: " + m.err.Error()
			return a, nil
		}
		a.status = "deleted"
		return a, a.fetchCmd(a.pager.Refresh())
	case askDoneMsg:
		a.waiting = false
		a.pendingQuestion = ""
		if m.err != nil {
			a.status = "ask failed: " + m.err.Error()
			return a, nil
		}
		a.transcript = append(a.transcript, m.turn)
		return a, nil
	case archiveMsg:
		if m.err != nil {
			a.log.Warn("archive load failed", zap.Error(m.err))
			return a, nil
		}
		a.transcript = m.turns
		return a, nil
	case statusMsg:
		a.status = string(m)
		return a, nil
	}
	return a, nil
}

func (a *App) handleChatKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "ctrl+o":
		a.histCursor = 0
		a.status = ""
		return a, a.fetchCmd(a.pager.Open())
	case "tab":
		a.composer.SelectMode(nextMode(a.composer.Mode()))
		return a, nil
	case "ctrl+g":
		a.composer.ClearMode()
		return a, nil
	case "shift+enter", "alt+enter":
		// literal newline, never a submit
		a.composer.Insert("\n")
		return a, nil
	case "enter":
		sub, ok := a.composer.Submit()
		if !ok {
			return a, nil
		}
		a.pendingQuestion = sub.Text
		a.waiting = true
		a.status = ""
		return a, a.askCmd(sub)
	}
	switch m.Type {
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		a.composer.Backspace()
	case tea.KeySpace:
		a.composer.Insert(" ")
	case tea.KeyRunes:
		a.composer.Insert(string(m.Runes))
	}
	return a, nil
}

func (a *App) handleHistoryKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.filtering {
		return a.handleFilterKey(m)
	}
	switch m.String() {
	case "ctrl+c", "q":
		return a, tea.Quit
	case "esc", "ctrl+o":
		a.pager.Close()
		a.histCursor = 0
		a.filterQuery = ""
		return a, nil
	case "up", "k":
		if a.histCursor > 0 {
			a.histCursor--
		}
	case "down", "j":
		if a.histCursor < len(a.visibleRecords())-1 {
			a.histCursor++
		}
	case " ":
		a.toggleSelection()
	case "enter":
		return a.resumeSelected()
	case "left", "h":
		if page := a.pager.Page() - 1; page >= 1 {
			a.histCursor = 0
			return a, a.fetchCmd(a.pager.SetPage(page))
		}
	case "right", "l":
		if page := a.pager.Page() + 1; page <= max(a.pager.PageCount(), 1) {
			a.histCursor = 0
			return a, a.fetchCmd(a.pager.SetPage(page))
		}
	case "p":
		a.histCursor = 0
		return a, a.fetchCmd(a.pager.SetPageSize(nextPageSize(a.pager.PageSize())))
	case "d":
		ids, ok := a.pager.DeleteSelected()
		if !ok {
			// empty selection is silently ignored
			return a, nil
		}
		a.status = "deleting..."
		return a, a.deleteCmd(ids)
	case "r":
		return a, a.fetchCmd(a.pager.Refresh())
	case "/":
		a.filtering = true
		a.filterQuery = ""
		a.histCursor = 0
	}
	return a, nil
}

func (a *App) handleFilterKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.filtering = false
		a.filterQuery = ""
		a.histCursor = 0
	case tea.KeyEnter:
		a.filtering = false
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(a.filterQuery) > 0 {
			runes := []rune(a.filterQuery)
			a.filterQuery = string(runes[:len(runes)-1])
		}
		a.clampHistCursor()
	case tea.KeySpace:
		a.filterQuery += " "
	case tea.KeyRunes:
		a.filterQuery += string(m.Runes)
		a.clampHistCursor()
	}
	return a, nil
}

func (a *App) toggleSelection() {
	rows := a.visibleRecords()
	if a.histCursor >= len(rows) {
		return
	}
	id := rows[a.histCursor].ChatID
	ids := a.pager.Selected()
	if a.pager.IsSelected(id) {
		kept := ids[:0]
		for _, s := range ids {
			if s != id {
				kept = append(kept, s)
			}
		}
		ids = kept
	} else {
		ids = append(ids, id)
	}
	// the control reports the whole set, wholesale
	a.pager.Select(ids)
}

func (a *App) resumeSelected() (tea.Model, tea.Cmd) {
	rows := a.visibleRecords()
	if a.histCursor >= len(rows) {
		return a, nil
	}
	rec := rows[a.histCursor]
	a.chatID = rec.ChatID
	a.pager.Close()
	a.histCursor = 0
	a.filterQuery = ""
	a.status = "resumed: " + history.RowViewOf(rec).Label
	if a.turns == nil {
		a.transcript = nil
		return a, nil
	}
	return a, a.loadChatCmd(rec.ChatID)
}

func (a *App) visibleRecords() []api.Record {
	return history.RankRecords(a.pager.Rows(), a.filterQuery)
}

func (a *App) clampHistCursor() {
	n := len(a.visibleRecords())
	if n == 0 {
		a.histCursor = 0
		return
	}
	if a.histCursor >= n {
		a.histCursor = n - 1
	}
}

func nextMode(m history.Mode) history.Mode {
	modes := history.Modes()
	for i, candidate := range modes {
		if candidate == m {
			return modes[(i+1)%len(modes)]
		}
	}
	return modes[0]
}

func nextPageSize(size int) int {
	for i, candidate := range pageSizeCycle {
		if candidate == size {
			return pageSizeCycle[(i+1)%len(pageSizeCycle)]
		}
	}
	return pageSizeCycle[0]
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

func (a *App) fetchCmd(req history.FetchRequest) tea.Cmd {
	return func() tea.Msg {
		res, err := a.backend.QueryRecords(a.ctx, req.Page, req.PageSize)
		return historyFetchedMsg{seq: req.Seq, res: res, err: err}
	}
}

func (a *App) deleteCmd(ids []string) tea.Cmd {
	return func() tea.Msg {
		return deleteDoneMsg{err: a.backend.DeleteRecords(a.ctx, ids)}
	}
}

func (a *App) askCmd(sub history.Submission) tea.Cmd {
	chatID := a.chatID
	return func() tea.Msg {
		answer, err := a.backend.Ask(a.ctx, api.AskRequest{
			ChatID:   chatID,
			Question: sub.Text,
			Intent:   string(sub.Mode),
		})
		if err != nil {
			return askDoneMsg{err: err}
		}
		turn := repository.Turn{
			ID:        uuid.NewString(),
			ChatID:    chatID,
			Question:  sub.Text,
			Answer:    answer,
			Mode:      string(sub.Mode),
			CreatedAt: time.Now().UTC(),
		}
		if a.turns != nil {
			if err := a.turns.Insert(a.ctx, turn); err != nil {
				a.log.Warn("archive insert failed", zap.String("turn", turn.ID), zap.Error(err))
			}
		}
		return askDoneMsg{turn: turn}
	}
}

func (a *App) loadRecentCmd() tea.Cmd {
	return func() tea.Msg {
		turns, err := a.turns.Recent(a.ctx, 20)
		if err != nil {
			return archiveMsg{err: err}
		}
		// Recent is newest first; the transcript reads oldest first.
		for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
			turns[i], turns[j] = turns[j], turns[i]
		}
		return archiveMsg{turns: turns}
	}
}

func (a *App) loadChatCmd(chatID string) tea.Cmd {
	return func() tea.Msg {
		turns, err := a.turns.ListByChat(a.ctx, chatID)
		return archiveMsg{turns: turns, err: err}
	}
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (a *App) View() string {
	base := a.renderChat()
	if !a.pager.Visible() {
		return base
	}
	return a.composeModal(base, a.renderHistory())
}

func (a *App) renderChat() string {
	width := a.contentWidth()
	var b strings.Builder

	mode := history.ModeViewOf(a.composer.Mode())
	header := titleStyle.Render(appName) + "  " + timeStyle.Render(mode.Label)
	b.WriteString(header + "\n\n")

	b.WriteString(a.renderTranscript(width) + "\n")
	b.WriteString(a.renderChips() + "\n")

	input := a.composer.Text() + cursorStyle.Render("█")
	b.WriteString(inputBoxStyle.Width(width).Render(input) + "\n")

	if a.status != "" {
		line := a.status
		if strings.Contains(line, "failed") {
			line = errorStyle.Render(line)
		} else {
			line = statusStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(a.renderFooter(renderHelp(a.keys.ShortHelp())))
	return b.String()
}

func (a *App) renderTranscript(width int) string {
	if len(a.transcript) == 0 && a.pendingQuestion == "" {
		return statusStyle.Render("Ask anything. tab picks a mode, ctrl+o opens history.") + "\n"
	}
	var lines []string
	for _, t := range a.transcript {
		label := history.ModeViewOf(history.Mode(t.Mode)).Label
		lines = append(lines, questionStyle.Render("You")+" "+timeStyle.Render("("+label+")"))
		lines = append(lines, truncateLines(t.Question, width)...)
		lines = append(lines, answerStyle.Render(appName))
		lines = append(lines, truncateLines(t.Answer, width)...)
		lines = append(lines, "")
	}
	if a.pendingQuestion != "" {
		lines = append(lines, questionStyle.Render("You"))
		lines = append(lines, truncateLines(a.pendingQuestion, width)...)
		lines = append(lines, statusStyle.Render("thinking..."))
		lines = append(lines, "")
	}
	// keep the tail that fits
	visible := a.transcriptHeight()
	if len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderChips() string {
	if a.composer.PickerVisible() {
		var chips []string
		for _, m := range history.Modes() {
			chips = append(chips, chipIdleStyle.Render(history.ModeViewOf(m).Label))
		}
		return strings.Join(chips, " ")
	}
	active := history.ModeViewOf(a.composer.Mode())
	return chipActiveStyle.Render(active.Label) + " " + statusStyle.Render("ctrl+g to clear")
}

func (a *App) renderHistory() string {
	width := a.modalWidth()
	var b strings.Builder
	b.WriteString(titleStyle.Render("Conversation History") + "\n")

	counts := fmt.Sprintf("page %d/%d · %d records · %d/page",
		a.pager.Page(), max(a.pager.PageCount(), 1), a.pager.Total(), a.pager.PageSize())
	if a.pager.Loading() {
		counts += "  loading..."
	}
	b.WriteString(statusStyle.Render(counts) + "\n\n")

	rows := a.visibleRecords()
	if a.pager.Loading() && len(rows) == 0 {
		b.WriteString(statusStyle.Render("loading...") + "\n")
	} else if len(rows) == 0 {
		b.WriteString(statusStyle.Render("(no records)") + "\n")
	}
	for i, rec := range rows {
		view := history.RowViewOf(rec)
		prefix := "  "
		if i == a.histCursor {
			prefix = cursorStyle.Render("▶ ")
		}
		check := "[ ] "
		if a.pager.IsSelected(rec.ChatID) {
			check = selectedStyle.Render("[x] ")
		}
		label := truncate(view.Label, width-28)
		line := prefix + check + padRight(label, width-28) + "  " + timeStyle.Render(view.Timestamp)
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	if a.filtering {
		b.WriteString("/" + a.filterQuery + cursorStyle.Render("█") + "\n")
	} else if a.filterQuery != "" {
		b.WriteString(statusStyle.Render("filter: "+a.filterQuery) + "\n")
	}
	b.WriteString(statusStyle.Render(renderHelp(a.histKeys.ShortHelp())))
	return b.String()
}

func (a *App) composeModal(base, content string) string {
	modal := modalStyle.Render(lipgloss.NewStyle().Width(a.modalWidth()).Render(content))
	if a.width == 0 || a.height == 0 {
		return base + "\n\n" + modal
	}
	lines := splitLines(modal)
	modalWidth := maxLineWidth(lines)
	modalHeight := len(lines)

	x := (a.width - modalWidth) / 2
	if x < 0 {
		x = 0
	}
	y := (a.height - modalHeight) / 2
	if y < 0 {
		y = 0
	}
	return overlayAt(base, modal, x, y, a.width, a.height)
}

func (a *App) renderFooter(text string) string {
	if a.width == 0 {
		return footerStyle.Render(text)
	}
	flat := strings.ReplaceAll(text, "\n", " ")
	return footerStyle.Render(padRight(flat, a.width-footerStyle.GetHorizontalFrameSize()))
}

func (a *App) contentWidth() int {
	if a.width == 0 {
		return 80
	}
	w := a.width - 2
	if w < 20 {
		w = 20
	}
	return w
}

func (a *App) modalWidth() int {
	if a.width == 0 {
		return 70
	}
	w := min(70, a.width-6)
	if w < 40 {
		w = 40
	}
	return w
}

func (a *App) transcriptHeight() int {
	if a.height == 0 {
		return 16
	}
	h := a.height - 10
	if h < 4 {
		h = 4
	}
	return h
}

func truncateLines(s string, width int) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		out = append(out, truncate(line, width))
	}
	return out
}

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

type historyFetchedMsg struct {
	seq uint64
	res api.QueryResult
	err error
}

type deleteDoneMsg struct {
	err error
}

type askDoneMsg struct {
	turn repository.Turn
	err  error
}

type archiveMsg struct {
	turns []repository.Turn
	err   error
}

type statusMsg string
