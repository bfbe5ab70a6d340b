package app

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/jwulff/ttsedit/internal/compare"
	"github.com/jwulff/ttsedit/internal/config"
	"github.com/jwulff/ttsedit/internal/dataset"
	"github.com/jwulff/ttsedit/internal/db"
	"github.com/jwulff/ttsedit/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// Mode is what the keyboard currently drives.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeEdit
	ModeSearch
	ModeOpen
	ModeConfirm
	ModeDuplicates
	ModeHelp
)

// action is a session operation waiting on confirmation prompts.
type action int

const (
	actionOpen action = iota
	actionSave
	actionExport
	actionClose
	actionQuit
)

// Model is the root bubbletea model for the dataset reviewer. All session
// operations run synchronously inside Update.
type Model struct {
	cfg  config.Config
	fsys dataset.FS

	// Dataset
	session *dataset.Session
	view    []*dataset.Entry
	cursor  int

	// Input state
	mode     Mode
	input    textinput.Model
	useRegex bool
	showDiff bool

	// Pending confirmation
	pending    action
	pendingDir string
	prompts    []dataset.Prompt
	answers    map[dataset.Prompt]bool

	// Duplicate scan
	scanning   bool
	spinner    spinner.Model
	dupes      []compare.Group
	dupeCursor int

	// Recent datasets
	store  *db.Store
	recent []db.Dataset

	// UI state
	width  int
	height int

	notice         string
	errorMessage   string
	errorTransient bool

	initialDir string
	title      string
}

// New creates a Model. A non-empty dir is opened on start.
func New(cfg config.Config, dir string) Model {
	in := textinput.New()
	in.CharLimit = 0

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(ui.SpinnerStyle),
	)

	return Model{
		cfg:        cfg,
		fsys:       dataset.OSFS{},
		input:      in,
		spinner:    sp,
		initialDir: dir,
	}
}

// Init opens the recent-datasets store and the initial directory.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{openStoreCmd(m.cfg.DBPath)}
	if m.initialDir != "" {
		dir := m.initialDir
		cmds = append(cmds, func() tea.Msg { return OpenRequestMsg{Dir: dir} })
	}
	return tea.Batch(cmds...)
}

// Session returns the open session, or nil.
func (m Model) Session() *dataset.Session { return m.session }

// openStoreCmd opens the SQLite store.
func openStoreCmd(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		store, err := db.Open(path)
		if err != nil {
			log.Printf("open recent-datasets store: %v", err)
			return nil // the reviewer works without history
		}
		return storeOpenedMsg{store: store}
	}
}

// loadRecentCmd reads recently opened datasets.
func loadRecentCmd(store *db.Store, limit int) tea.Cmd {
	if store == nil || limit == 0 {
		return nil
	}
	return func() tea.Msg {
		recent, err := store.Recent(limit)
		if err != nil {
			return RecentLoadedMsg{} // silently ignore DB errors
		}
		return RecentLoadedMsg{Datasets: recent}
	}
}

func datasetRecord(s *dataset.Session) db.Dataset {
	st := s.Stats()
	return db.Dataset{
		Dir:           s.Dir(),
		Format:        s.Format().String(),
		Entries:       st.Total,
		PendingReview: st.PendingReview,
		Deleted:       st.Deleted,
	}
}

// recordOpenCmd stores the open in the recent list. The record is built
// before the command runs so the session is never read off the UI loop.
func recordOpenCmd(store *db.Store, s *dataset.Session) tea.Cmd {
	if store == nil {
		return nil
	}
	d := datasetRecord(s)
	d.OpenedAt = time.Now()
	return func() tea.Msg {
		if err := store.RecordOpen(d); err != nil {
			log.Printf("record open: %v", err)
		}
		return nil
	}
}

func recordSaveCmd(store *db.Store, s *dataset.Session) tea.Cmd {
	if store == nil {
		return nil
	}
	d := datasetRecord(s)
	now := time.Now()
	return func() tea.Msg {
		if err := store.RecordSave(d, now); err != nil {
			log.Printf("record save: %v", err)
		}
		return nil
	}
}

// duplicatesCmd scans for near-duplicate transcripts off the UI loop. It
// only sees the copied items, never the session.
func duplicatesCmd(items []compare.Item, cutoff, limit int) tea.Cmd {
	return func() tea.Msg {
		return DuplicatesFoundMsg{Groups: compare.Duplicates(items, cutoff, limit)}
	}
}

// clearTransientErrorCmd fires after a delay to clear transient errors.
func clearTransientErrorCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return ClearTransientErrorMsg{}
	})
}

func clearNoticeCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return ClearNoticeMsg{}
	})
}

// Update processes messages and returns the updated model and any commands.
// The terminal title follows the open dataset and its dirty state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	nm := next.(Model)
	if title := nm.windowTitle(); title != nm.title {
		nm.title = title
		cmd = tea.Batch(cmd, tea.SetWindowTitle(title))
	}
	return nm, cmd
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(10, msg.Width-20)
		return m, nil

	case OpenRequestMsg:
		return m.request(actionOpen, msg.Dir)

	case storeOpenedMsg:
		m.store = msg.store
		return m, loadRecentCmd(m.store, m.cfg.RecentLimit)

	case RecentLoadedMsg:
		m.recent = msg.Datasets
		return m, nil

	case DuplicatesFoundMsg:
		m.scanning = false
		m.dupes = msg.Groups
		m.dupeCursor = 0
		if len(m.dupes) == 0 {
			return m.setNotice("No near-duplicate transcripts found.")
		}
		m.mode = ModeDuplicates
		return m, nil

	case spinner.TickMsg:
		if !m.scanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ClearTransientErrorMsg:
		if m.errorTransient {
			m.errorMessage = ""
			m.errorTransient = false
		}
		return m, nil

	case ClearNoticeMsg:
		m.notice = ""
		return m, nil
	}

	// Cursor blink and other input-internal messages.
	if m.inputActive() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) inputActive() bool {
	return m.mode == ModeEdit || m.mode == ModeSearch || m.mode == ModeOpen
}

// handleKey dispatches key presses by mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == KeyCtrlC {
		return m.request(actionQuit, "")
	}

	switch m.mode {
	case ModeEdit:
		return m.handleEditKey(msg)
	case ModeSearch:
		return m.handleSearchKey(msg)
	case ModeOpen:
		return m.handleOpenKey(msg)
	case ModeConfirm:
		return m.handleConfirmKey(msg)
	case ModeDuplicates:
		return m.handleDuplicatesKey(msg)
	case ModeHelp:
		m.mode = ModeBrowse
		return m, nil
	}
	return m.handleBrowseKey(msg)
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case KeyQuit:
		return m.request(actionQuit, "")
	case KeyOpen:
		return m.startInput(ModeOpen, "Open: ", "")
	case KeyHelp:
		m.mode = ModeHelp
		return m, nil
	}

	if m.session == nil {
		// 1-9 reopen a recent dataset.
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.recent) {
				return m.request(actionOpen, m.recent[i].Dir)
			}
		}
		return m, nil
	}

	switch key {
	case KeyDown, KeyJ, KeyNext:
		m.moveCursor(1)
	case KeyUp, KeyK, KeyPrev:
		m.moveCursor(-1)
	case KeyTop:
		m.moveCursor(-len(m.view))
	case KeyBottom:
		m.moveCursor(len(m.view))

	case KeyEnter:
		cur := m.current()
		if cur == nil {
			return m, nil
		}
		return m.startInput(ModeEdit, "Text: ", cur.Transcript())

	case KeyToggleReview:
		if cur := m.current(); cur != nil {
			m.session.TogglePendingReview(cur)
		}
	case KeyToggleDelete:
		if cur := m.current(); cur != nil {
			m.session.ToggleDeleted(cur)
		}

	case KeySearch:
		return m.startInput(ModeSearch, "Search: ", "")
	case KeyFilterReview:
		m.session.ShowPendingReview(m.session.ActiveFilter() != dataset.FilterPendingReview)
		m.refreshView()
	case KeyFilterDeleted:
		m.session.ShowDeleted(m.session.ActiveFilter() != dataset.FilterDeleted)
		m.refreshView()
	case KeyEsc:
		m.session.ClearFilter()
		m.refreshView()

	case KeySave:
		return m.request(actionSave, "")
	case KeyExport:
		return m.request(actionExport, "")
	case KeyCloseDataset:
		return m.request(actionClose, "")

	case KeyDuplicates:
		if m.scanning {
			return m, nil
		}
		if len(m.dupes) > 0 {
			m.mode = ModeDuplicates
			return m, nil
		}
		m.scanning = true
		items := compare.FromEntries(m.session.Entries())
		return m, tea.Batch(m.spinner.Tick, duplicatesCmd(items, m.cfg.DuplicateCutoff, m.cfg.DuplicateLimit))

	case KeyDiff:
		m.showDiff = !m.showDiff
	}
	return m, nil
}

func (m Model) startInput(mode Mode, prompt, value string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) stopInput() Model {
	m.mode = ModeBrowse
	m.input.Blur()
	m.input.Reset()
	return m
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEnter:
		value := m.input.Value()
		m = m.stopInput()
		if cur := m.current(); cur != nil {
			m.session.EditTranscript(cur, value)
		}
		return m, nil
	case KeyEsc:
		return m.stopInput(), nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyTab:
		m.useRegex = !m.useRegex
		return m, nil
	case KeyEsc:
		return m.stopInput(), nil
	case KeyEnter:
		query := m.input.Value()
		m = m.stopInput()
		out, err := m.session.Search(query, m.useRegex)
		if err != nil {
			return m.fail(err)
		}
		m.refreshView()
		switch out {
		case dataset.SearchEmptyQuery:
			return m.setNotice("Search cleared.")
		case dataset.SearchNoMatches:
			return m.setNotice("No matches found.")
		}
		return m.setNotice(fmt.Sprintf("%d matching entries.", len(m.view)))
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleOpenKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEsc:
		return m.stopInput(), nil
	case KeyEnter:
		dir := expandHome(strings.TrimSpace(m.input.Value()))
		m = m.stopInput()
		if dir == "" {
			return m, nil
		}
		return m.request(actionOpen, dir)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyYes, KeyYesUpper:
		return m.answer(true)
	case KeyNo, KeyNoUpper:
		return m.answer(false)
	case KeyEsc:
		m.mode = ModeBrowse
		m.prompts = nil
		return m.setNotice("Cancelled.")
	}
	return m, nil
}

func (m Model) handleDuplicatesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyDown, KeyJ:
		if m.dupeCursor < len(m.dupes)-1 {
			m.dupeCursor++
		}
	case KeyUp, KeyK:
		if m.dupeCursor > 0 {
			m.dupeCursor--
		}
	case KeyEnter:
		if m.dupeCursor < len(m.dupes) && m.session != nil {
			m.session.ClearFilter()
			m.refreshView()
			m.focusIndex(m.dupes[m.dupeCursor].Index)
		}
		m.mode = ModeBrowse
	case KeyDuplicates:
		// Rescan.
		m.dupes = nil
		m.mode = ModeBrowse
		return m.handleBrowseKey(msg)
	case KeyEsc, KeyQuit:
		m.mode = ModeBrowse
	}
	return m, nil
}

// request starts an operation, asking its prompts first when it has any.
func (m Model) request(a action, dir string) (tea.Model, tea.Cmd) {
	var prompts []dataset.Prompt
	switch a {
	case actionOpen:
		if m.session != nil {
			prompts = m.session.ClosePrompts()
		}
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		if !m.fsys.DirExists(dir) {
			return m.fail(fmt.Errorf("directory not found: %s", dir))
		}
		prompts = append(prompts, dataset.ResumePrompts(m.fsys, dir)...)
	case actionSave, actionExport, actionClose:
		if m.session == nil {
			return m, nil
		}
		switch a {
		case actionSave:
			prompts = m.session.SavePrompts()
		case actionExport:
			prompts = m.session.ExportPrompts()
		default:
			prompts = m.session.ClosePrompts()
		}
	case actionQuit:
		if m.session != nil {
			prompts = m.session.ClosePrompts()
		}
	}

	m.pending = a
	m.pendingDir = dir
	m.prompts = prompts
	m.answers = make(map[dataset.Prompt]bool, len(prompts))
	if len(prompts) > 0 {
		m.mode = ModeConfirm
		return m, nil
	}
	return m.run()
}

// answer records the reply to the first queued prompt and runs the
// pending operation once the queue is empty.
func (m Model) answer(yes bool) (tea.Model, tea.Cmd) {
	if len(m.prompts) == 0 {
		m.mode = ModeBrowse
		return m, nil
	}
	p := m.prompts[0]
	m.answers[p] = yes
	m.prompts = m.prompts[1:]
	if p == dataset.PromptSaveBeforeClose && !yes {
		// Nothing will be saved, so nothing can be overwritten.
		m.prompts = slices.DeleteFunc(slices.Clone(m.prompts), func(q dataset.Prompt) bool {
			return q == dataset.PromptOverwriteEdits
		})
	}
	if len(m.prompts) > 0 {
		return m, nil
	}
	m.mode = ModeBrowse
	return m.run()
}

// run executes the pending operation with the collected answers.
func (m Model) run() (tea.Model, tea.Cmd) {
	decide := dataset.Answers(m.answers)

	switch m.pending {
	case actionOpen:
		s, err := dataset.Load(m.fsys, m.pendingDir, decide)
		if err != nil {
			return m.fail(describeLoadError(err))
		}
		if m.session != nil {
			if err := m.session.Close(decide); err != nil {
				return m.fail(err)
			}
			m.closeSession()
		}
		s.SetRegexTimeout(m.cfg.RegexTimeout)
		m.session = s
		m.refreshView()
		m.focusIndex(s.LastFocused())
		next, cmd := m.setNotice(fmt.Sprintf("Opened %s (%d entries, %s).", s.Name(), len(s.Entries()), s.Format()))
		return next, tea.Batch(cmd, recordOpenCmd(m.store, s))

	case actionSave:
		res, err := m.session.Save(decide)
		if err != nil {
			return m.fail(err)
		}
		switch res {
		case dataset.Saved:
			next, cmd := m.setNotice("Edits saved to " + m.session.EditedPath())
			return next, tea.Batch(cmd, recordSaveCmd(m.store, m.session))
		case dataset.SaveDeclined:
			return m.setNotice("Save cancelled.")
		}
		return m.setNotice("No changes to save.")

	case actionExport:
		res, err := m.session.ExportCSV(decide)
		if err != nil {
			return m.fail(err)
		}
		if res == dataset.ExportDeclined {
			return m.setNotice("Export cancelled.")
		}
		next, cmd := m.setNotice("Data exported to " + m.session.ExportPath())
		return next, tea.Batch(cmd, recordSaveCmd(m.store, m.session))

	case actionClose:
		if err := m.session.Close(decide); err != nil {
			return m.fail(err)
		}
		m.closeSession()
		return m, loadRecentCmd(m.store, m.cfg.RecentLimit)

	case actionQuit:
		if m.session != nil {
			if err := m.session.Close(decide); err != nil {
				return m.fail(err)
			}
		}
		if m.store != nil {
			m.store.Close()
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) closeSession() {
	m.session = nil
	m.view = nil
	m.cursor = 0
	m.dupes = nil
	m.scanning = false
}

func describeLoadError(err error) error {
	switch {
	case errors.Is(err, dataset.ErrNotFound):
		return fmt.Errorf("no %s or %s in that directory", dataset.MetadataFile, dataset.EditedFile)
	case errors.Is(err, dataset.ErrMalformed):
		return fmt.Errorf("could not read dataset: %w", err)
	}
	return err
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.mode = ModeBrowse
	m.errorMessage = err.Error()
	m.errorTransient = true
	return m, clearTransientErrorCmd()
}

func (m Model) setNotice(s string) (tea.Model, tea.Cmd) {
	m.notice = s
	return m, clearNoticeCmd()
}

// refreshView re-reads the session's view, keeping the focused entry
// under the cursor when it is still visible.
func (m *Model) refreshView() {
	focused := -1
	if cur := m.current(); cur != nil {
		focused = cur.Index()
	}
	m.view = m.session.View()
	m.cursor = 0
	if focused >= 0 {
		m.focusIndex(focused)
	} else {
		m.syncFocus()
	}
}

// focusIndex moves the cursor to the entry with the given index, if it is
// in the view.
func (m *Model) focusIndex(index int) {
	for i, e := range m.view {
		if e.Index() == index {
			m.cursor = i
			break
		}
	}
	m.syncFocus()
}

func (m *Model) moveCursor(delta int) {
	if len(m.view) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.view)-1)
	m.syncFocus()
}

func (m *Model) syncFocus() {
	if m.cursor >= len(m.view) {
		m.cursor = max(0, len(m.view)-1)
	}
	if cur := m.current(); cur != nil {
		m.session.SetFocus(cur.Index())
	}
}

func (m Model) current() *dataset.Entry {
	if m.cursor < 0 || m.cursor >= len(m.view) {
		return nil
	}
	return m.view[m.cursor]
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
