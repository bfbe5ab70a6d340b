package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwulff/ttsedit/internal/compare"
	"github.com/jwulff/ttsedit/internal/config"
	"github.com/jwulff/ttsedit/internal/dataset"
	"github.com/jwulff/ttsedit/internal/db"
)

func writeDataset(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func newTestModel() Model {
	cfg := config.Default()
	cfg.DBPath = ""
	m := New(cfg, "")
	m.width = 100
	m.height = 30
	return m
}

// send feeds one message through Update.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = send(t, m, keyMsg(k))
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "alt+right":
		return tea.KeyMsg{Type: tea.KeyRight, Alt: true}
	case "alt+left":
		return tea.KeyMsg{Type: tea.KeyLeft, Alt: true}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// typeText types s one rune at a time.
func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func openDataset(t *testing.T, files map[string]string) Model {
	t.Helper()
	dir := writeDataset(t, files)
	m := send(t, newTestModel(), OpenRequestMsg{Dir: dir})
	if m.session == nil {
		t.Fatalf("dataset not opened: error = %q", m.errorMessage)
	}
	return m
}

const threeRows = "a|x|hello\nb|x|world\nc|x|hello there\n"

func TestNewModel(t *testing.T) {
	m := New(config.Default(), "")
	if m.session != nil {
		t.Error("new model should have no session")
	}
	if m.mode != ModeBrowse {
		t.Errorf("mode = %d, want browse", m.mode)
	}
	if m.fsys == nil {
		t.Error("new model should have a filesystem")
	}
}

func TestViewWithoutSize(t *testing.T) {
	m := New(config.Default(), "")
	view := m.View()
	if view != "Initializing..." {
		t.Errorf("view without size = %q, want 'Initializing...'", view)
	}
}

func TestViewRendersWithSize(t *testing.T) {
	m := newTestModel()
	view := m.View()
	if !strings.Contains(view, "TTS Dataset Editor") {
		t.Errorf("view should show the title, got %q", view)
	}
	if !strings.Contains(view, "Press o to open") {
		t.Error("empty view should explain how to open a dataset")
	}
}

func TestWindowSize(t *testing.T) {
	m := New(config.Default(), "")
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.width != 120 || m.height != 40 {
		t.Errorf("size = %dx%d, want 120x40", m.width, m.height)
	}
}

func TestOpenRequestLoadsCSV(t *testing.T) {
	m := openDataset(t, map[string]string{dataset.MetadataFile: threeRows})

	if m.session.Format() != dataset.FormatCSV {
		t.Errorf("format = %v, want csv", m.session.Format())
	}
	if len(m.view) != 3 {
		t.Fatalf("view = %d, want 3", len(m.view))
	}
	if !strings.HasPrefix(m.notice, "Opened") {
		t.Errorf("notice = %q", m.notice)
	}

	view := m.View()
	if !strings.Contains(view, "1. a") {
		t.Error("view should list entries")
	}
	if !strings.Contains(view, "hello") {
		t.Error("view should show the focused transcript")
	}
}

func TestOpenMissingDirectory(t *testing.T) {
	m := send(t, newTestModel(), OpenRequestMsg{Dir: filepath.Join(t.TempDir(), "missing")})
	if m.session != nil {
		t.Error("session should stay closed")
	}
	if m.errorMessage == "" {
		t.Error("should report an error")
	}
	if !m.errorTransient {
		t.Error("open errors should be transient")
	}
}

func TestOpenDirectoryWithoutMetadata(t *testing.T) {
	m := send(t, newTestModel(), OpenRequestMsg{Dir: t.TempDir()})
	if !strings.Contains(m.errorMessage, dataset.MetadataFile) {
		t.Errorf("errorMessage = %q, want mention of %s", m.errorMessage, dataset.MetadataFile)
	}
}

func TestOpenMalformed(t *testing.T) {
	dir := writeDataset(t, map[string]string{dataset.EditedFile: "{not json"})
	m := send(t, newTestModel(), OpenRequestMsg{Dir: dir})
	if m.session != nil {
		t.Error("malformed dataset should not open")
	}
	if !strings.HasPrefix(m.errorMessage, "could not read dataset") {
		t.Errorf("errorMessage = %q", m.errorMessage)
	}
}

func TestOpenAsksToResumeEdits(t *testing.T) {
	dir := writeDataset(t, map[string]string{
		dataset.MetadataFile: "a|x|csv text\n",
		dataset.EditedFile:   `[{"idx": 0, "filename": "a", "text": "json text"}]`,
	})

	m := send(t, newTestModel(), OpenRequestMsg{Dir: dir})
	if m.mode != ModeConfirm {
		t.Fatalf("mode = %d, want confirm", m.mode)
	}
	if m.prompts[0] != dataset.PromptResumeEdits {
		t.Errorf("prompt = %v, want resume", m.prompts[0])
	}
	if !strings.Contains(m.View(), "Reload them?") {
		t.Error("view should show the prompt")
	}

	yes := press(t, m, "y")
	if yes.session == nil || yes.session.Format() != dataset.FormatJSON {
		t.Fatal("yes should load the saved edits")
	}
	if got := yes.view[0].Transcript(); got != "json text" {
		t.Errorf("transcript = %q, want %q", got, "json text")
	}

	no := press(t, m, "n")
	if no.session == nil || no.session.Format() != dataset.FormatCSV {
		t.Fatal("no should load the csv")
	}
}

func TestConfirmEscCancels(t *testing.T) {
	dir := writeDataset(t, map[string]string{
		dataset.MetadataFile: "a|x|csv text\n",
		dataset.EditedFile:   `[{"idx": 0, "filename": "a", "text": "json text"}]`,
	})
	m := send(t, newTestModel(), OpenRequestMsg{Dir: dir})
	m = press(t, m, "esc")
	if m.mode != ModeBrowse {
		t.Errorf("mode = %d, want browse", m.mode)
	}
	if m.session != nil {
		t.Error("cancelled open should not load")
	}
}

func TestNavigation(t *testing.T) {
	m := openDataset(t, map[string]string{dataset.MetadataFile: threeRows})

	m = press(t, m, "j")
	if m.cursor != 1 {
		t.Errorf("after j, cursor = %d, want 1", m.cursor)
	}
	if m.session.LastFocused() != 1 {
		t.Errorf("LastFocused = %d, want 1", m.session.LastFocused())
	}

	m = press(t, m, "alt+right", "alt+right")
	if m.cursor != 2 {
		t.Errorf("cursor should stop at the last entry, got %d", m.cursor)
	}

	m = press(t, m, "k")
	if m.cursor != 1 {
		t.Errorf("after k, cursor = %d, want 1", m.cursor)
	}

	m = press(t, m, "g")
	if m.cursor != 0 {
		t.Errorf("after g, cursor = %d, want 0", m.cursor)
	}
	m = press(t, m, "up")
	if m.cursor != 0 {
		t.Errorf("cursor should stop at the first entry, got %d", m.cursor)
	}

	m = press(t, m, "G")
	if m.cursor != 2 {
		t.Errorf("after G, cursor = %d, want 2", m.cursor)
	}
}

func TestOpenRestoresFocus(t *testing.T) {
	m := openDataset(t, map[string]string{
		dataset.MetadataFile: threeRows,
		dataset.HistoryFile:  "2",
	})
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.cursor)
	}
}

func TestEditTranscript(t *testing.T) {
	m := openDataset(t, map[string]string{dataset.MetadataFile: threeRows})

	m = press(t, m, "enter")
	if m.mode != ModeEdit {
		t.Fatalf("mode = %d, want edit", m.mode)
	}
	if m.input.Value() != "hello" {
		t.Errorf("input = %q, want current transcript", m.input.Value())
	}

	m = typeText(t, m, "!")
	m = press(t, m, "enter")

	if m.mode != ModeBrowse {
		t.Errorf("mode = %d, want browse", m.mode)
	}
	if got := m.view[0].Transcript(); got != "hello!" {
		t.Errorf("transcript = %q, want %q", got, "hello!")
	}
	if !m.session.IsDirty() {
		t.Error("edit should mark the session dirty")
	}
	if !strings.HasPrefix(m.title, "* ") {
		t.Errorf("title = %q, want dirty marker", m.title)
	}
	if !strings.HasSuffix(m.title, " - TTS Dataset Editor") {
		t.Errorf("title = %q", m.title)
	}
}

func TestEditEscCancels(t *testing.T) {
	m := openDataset(t, map[string]string{dataset.MetadataFile: threeRows})

	m = press(t, m, "enter")
	m = typeText(t, m, "xyz")
	m = press(t, m, "esc")

	if got := m.view[0].Transcript(); got != "hello" {
		t.Errorf("transcript = %q, want unchanged", got)
	}
	if m.session.IsDirty() {
		t.Error("cancelled edit should not mark dirty")
	}
}

func TestEditUnchangedIsClean(t *testing.T) {
	m := openDataset(t, map[string]string{dataset.MetadataFile: threeRows})
	m = press(t, m, "enter", "enter")
	if m.session.IsDirty() {
		t.Error("committing the same text should not mark dirty")
	}
}

func TestToggleFlags(t *testing.T) {
	m := openDataset(t, map[string]string{dataset.MetadataFile: threeRows})

	m = press(t, m, "r")
	if !m.view[0].PendingReview() {
		t.Error("r should mark pending review")
	}
	m = press(t, m, "d")
	if !m.view[0].Deleted() {
		t.Error("d should mark deleted")
	}
	if len(m.session.Entries()) != 3 {
		t.Error("deleted entries should stay in the session")
	}
	if !strings.Contains(m.View(), "(deleted) (review) 1. a") {
		t.Error("label should show both flags")
	}
}

func TestFilterKeys(t *testing.T) {
	m := openDataset(t, map[string]string{dataset.MetadataFile: threeRows})
	m = press(t, m, "j", "r")

	m = press(t, m, "p")
	if m.session.ActiveFilter() != dataset.FilterPendingReview {
		t.Fatalf("filter = %v, want pending review", m.session.ActiveFilter())
	}
	if len(m.view) != 1 || m.view[0].Stem() != "b" {
		t.Fatalf("view = %d entries, want only b", len(m.view))
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}

	m = press(t, m, "x")
	if m.session.ActiveFilter() != dataset.FilterDeleted {
		t.Errorf("filter = %v, want deleted", m.session.ActiveFilter())
	}
	if len(m.view) != 0 {
		t.Errorf("view = %d, want 0", len(m.view))
	}

	m = press(t, m, "x")
	if m.session.ActiveFilter() != dataset.FilterNone {
		t.Errorf("filter = %v, want none", m.session.ActiveFilter())
	}
	if len(m.view) != 3 {
		t.Errorf("view = %d, want 3", len(m.view))
	}
}

func TestFilterKeepsFocusedEntry(t *testing.T) {
	m := openDataset(t, map[string]string{dataset.MetadataFile: threeRows})
	m = press(t, m, "G", "r", "p")
	m = press(t, m, "esc")
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want focused entry to stay selected", m.cursor)
	}
}

func TestSearch(t *testing.T) {
	m := openDataset(t, map[string]string{dataset.MetadataFile: threeRows})

	m = press(t, m, "/")
	if m.mode != ModeSearch {
		t.Fatalf("mode = %d, want search", m.mode)
	}
	m = typeText(t, m, "hello")
	m = press(t, m, "enter")

	if m.session.ActiveFilter() != dataset.FilterSearch {
		t.Fatalf("filter = %v, want search", m.session.ActiveFilter())
	}
	if len(m.view) != 2 {
		t.Errorf("view = %d, want 2", len(m.view))
	}
	if m.notice != "2 matching entries." {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestSearchNoMatches(t *testing.T) {
	m := openDataset(t, map[string]string{dataset.MetadataFile: threeRows})
	m = press(t, m, "/")
	m = typeText(t, m, "zzz")
	m = press(t, m, "enter")

	if m.session.ActiveFilter() != dataset.FilterNone {
		t.Errorf("filter = %v, want none", m.session.ActiveFilter())
	}
	if m.notice != "No matches found." {
		t.Errorf("notice = %q", m.notice)
	}
	if len(m.view) != 3 {
		t.Errorf("view = %d, want 3", len(m.view))
	}
}

func TestRegexSearchAnchored(t *testing.T) {
	m := openDataset(t, map[string]string{dataset.MetadataFile: threeRows})
	m = press(t, m, "/", "tab")
	if !m.useRegex {
		t.Fatal("tab should switch to regex")
	}
	m = typeText(t, m, "w.r")
	m = press(t, m, "enter")

	if len(m.view) != 1 || m.view[0].Stem() != "b" {
		t.Fatalf("view = %d entries, want only b", len(m.view))
	}
	if !m.session.QueryIsRegex() {
		t.Error("query should be a regex")
	}
}

func TestRegexSearchInvalidKeepsFilter(t *testing.T) {
	m := openDataset(t, map[string]string{dataset.MetadataFile: threeRows})
	m = press(t, m, "r", "p")

	m = press(t, m, "/", "tab")
	m = typeText(t, m, "(")
	m = press(t, m, "enter")

	if m.errorMessage == "" {
		t.Error("invalid pattern should be reported")
	}
	if m.session.ActiveFilter() != dataset.FilterPendingReview {
		t.Errorf("filter = %v, want unchanged", m.session.ActiveFilter())
	}
	if len(m.view) != 1 {
		t.Errorf("view = %d, want unchanged", len(m.view))
	}
}

func TestSaveKey(t *testing.T) {
	m := openDataset(t, map[string]string{dataset.MetadataFile: threeRows})

	m = press(t, m, "s")
	if m.notice != "No changes to save." {
		t.Errorf("notice = %q", m.notice)
	}

	m = press(t, m, "r", "s")
	if !strings.HasPrefix(m.notice, "Edits saved to") {
		t.Errorf("notice = %q", m.notice)
	}
	if m.session.IsDirty() {
		t.Error("save should clear dirty")
	}
	if _, err := os.Stat(m.session.EditedPath()); err != nil {
		t.Errorf("edited file: %v", err)
	}
	if strings.HasPrefix(m.title, "* ") {
		t.Errorf("title = %q, want no dirty marker", m.title)
	}
}

func TestSaveOverwriteDeclined(t *testing.T) {
	dir := writeDataset(t, map[string]string{
		dataset.MetadataFile: "a|x|csv text\n",
		dataset.EditedFile:   `[{"idx": 0, "filename": "a", "text": "json text"}]`,
	})
	m := send(t, newTestModel(), OpenRequestMsg{Dir: dir})
	m = press(t, m, "n") // load the csv

	m = press(t, m, "r", "s")
	if m.mode != ModeConfirm || m.prompts[0] != dataset.PromptOverwriteEdits {
		t.Fatalf("save should ask before overwriting, mode = %d", m.mode)
	}
	m = press(t, m, "n")
	if m.notice != "Save cancelled." {
		t.Errorf("notice = %q", m.notice)
	}
	if !m.session.IsDirty() {
		t.Error("declined save should keep the session dirty")
	}

	data, _ := os.ReadFile(filepath.Join(dir, dataset.EditedFile))
	if !strings.Contains(string(data), "json text") {
		t.Error("existing edits should be untouched")
	}
}

func TestExportKey(t *testing.T) {
	m := openDataset(t, map[string]string{dataset.MetadataFile: threeRows})
	m = press(t, m, "j", "d", "e")

	if !strings.HasPrefix(m.notice, "Data exported to") {
		t.Fatalf("notice = %q", m.notice)
	}
	data, err := os.ReadFile(m.session.ExportPath())
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	want := "a||hello\nc||hello there\n"
	if string(data) != want {
		t.Errorf("export = %q, want %q", data, want)
	}
}

func TestExportPendingReviewDeclined(t *testing.T) {
	m := openDataset(t, map[string]string{dataset.MetadataFile: threeRows})
	m = press(t, m, "r", "e")
	if m.mode != ModeConfirm || m.prompts[0] != dataset.PromptExportPendingReview {
		t.Fatalf("export should ask about pending review, mode = %d", m.mode)
	}
	m = press(t, m, "n")
	if m.notice != "Export cancelled." {
		t.Errorf("notice = %q", m.notice)
	}
	if _, err := os.Stat(m.session.ExportPath()); !os.IsNotExist(err) {
		t.Error("declined export should not write a file")
	}
}

func TestCloseDataset(t *testing.T) {
	m := openDataset(t, map[string]string{dataset.MetadataFile: threeRows})
	m = press(t, m, "w")
	if m.session != nil {
		t.Error("w should close a clean dataset without asking")
	}
	if m.title != appTitle {
		t.Errorf("title = %q, want %q", m.title, appTitle)
	}
}

func TestCloseDirtyAsksToSave(t *testing.T) {
	m := openDataset(t, map[string]string{dataset.MetadataFile: threeRows})
	dir := m.session.Dir()

	m = press(t, m, "r", "w")
	if m.mode != ModeConfirm || m.prompts[0] != dataset.PromptSaveBeforeClose {
		t.Fatalf("close should ask to save, mode = %d", m.mode)
	}
	m = press(t, m, "y")
	if m.session != nil {
		t.Error("session should be closed")
	}
	if _, err := os.Stat(filepath.Join(dir, dataset.EditedFile)); err != nil {
		t.Errorf("yes should save: %v", err)
	}
}

func TestQuitDeclineSaveSkipsOverwritePrompt(t *testing.T) {
	dir := writeDataset(t, map[string]string{
		dataset.MetadataFile: "a|x|csv text\n",
		dataset.EditedFile:   `[{"idx": 0, "filename": "a", "text": "json text"}]`,
	})
	m := send(t, newTestModel(), OpenRequestMsg{Dir: dir})
	m = press(t, m, "n", "r")

	updated, _ := m.Update(keyMsg("q"))
	m = updated.(Model)
	if len(m.prompts) != 2 {
		t.Fatalf("prompts = %v, want save and overwrite", m.prompts)
	}

	updated, cmd := m.Update(keyMsg("n"))
	m = updated.(Model)
	if len(m.prompts) != 0 {
		t.Errorf("declining save should drop the overwrite prompt, got %v", m.prompts)
	}
	if cmd == nil {
		t.Error("quit should return a command")
	}
	data, _ := os.ReadFile(filepath.Join(dir, dataset.EditedFile))
	if !strings.Contains(string(data), "json text") {
		t.Error("declining save should leave edits untouched")
	}
}

func TestOpenPathPrompt(t *testing.T) {
	dir := writeDataset(t, map[string]string{dataset.MetadataFile: threeRows})
	m := press(t, newTestModel(), "o")
	if m.mode != ModeOpen {
		t.Fatalf("mode = %d, want open", m.mode)
	}
	m.input.SetValue(dir)
	m = press(t, m, "enter")
	if m.session == nil {
		t.Fatalf("dataset not opened: %q", m.errorMessage)
	}
}

func TestRecentDatasets(t *testing.T) {
	dir := writeDataset(t, map[string]string{dataset.MetadataFile: threeRows})
	m := send(t, newTestModel(), RecentLoadedMsg{Datasets: []db.Dataset{
		{Dir: dir, Format: "csv", Entries: 3},
	}})
	if !strings.Contains(m.View(), dir) {
		t.Error("welcome screen should list recent datasets")
	}

	m = press(t, m, "1")
	if m.session == nil {
		t.Fatalf("1 should open the first recent dataset: %q", m.errorMessage)
	}
}

func TestDuplicatesFound(t *testing.T) {
	m := openDataset(t, map[string]string{dataset.MetadataFile: threeRows})

	none := send(t, m, DuplicatesFoundMsg{})
	if none.mode != ModeBrowse {
		t.Errorf("mode = %d, want browse", none.mode)
	}
	if !strings.HasPrefix(none.notice, "No near-duplicate") {
		t.Errorf("notice = %q", none.notice)
	}

	groups := []compare.Group{{
		Index: 2,
		Text:  "hello there",
		Matches: []compare.Match{
			{Index: 2, Text: "hello there", Score: 100},
			{Index: 0, Text: "hello", Score: 96},
		},
	}}
	m = send(t, m, DuplicatesFoundMsg{Groups: groups})
	if m.mode != ModeDuplicates {
		t.Fatalf("mode = %d, want duplicates", m.mode)
	}
	if !strings.Contains(m.View(), "NEAR DUPLICATES") {
		t.Error("view should show the duplicates panel")
	}

	m = press(t, m, "enter")
	if m.mode != ModeBrowse {
		t.Errorf("mode = %d, want browse", m.mode)
	}
	if m.current().Index() != 2 {
		t.Errorf("focused = %d, want 2", m.current().Index())
	}
}

func TestDuplicateScanStarts(t *testing.T) {
	m := openDataset(t, map[string]string{dataset.MetadataFile: threeRows})
	updated, cmd := m.Update(keyMsg("u"))
	m = updated.(Model)
	if !m.scanning {
		t.Error("u should start a scan")
	}
	if cmd == nil {
		t.Error("scan should return a command")
	}
	if !strings.Contains(m.View(), "scanning") {
		t.Error("status bar should show the scan")
	}
}

func TestDiffToggle(t *testing.T) {
	m := openDataset(t, map[string]string{dataset.MetadataFile: threeRows})
	m = press(t, m, "enter")
	m = typeText(t, m, "!")
	m = press(t, m, "enter")

	if !strings.Contains(m.View(), "v to show changes") {
		t.Error("modified entry should offer the diff")
	}
	m = press(t, m, "v")
	if !strings.Contains(m.View(), "CHANGES") {
		t.Error("v should show the diff")
	}
}

func TestHelpScreen(t *testing.T) {
	m := press(t, newTestModel(), "?")
	if m.mode != ModeHelp {
		t.Fatalf("mode = %d, want help", m.mode)
	}
	if !strings.Contains(m.View(), "KEYS") {
		t.Error("help should list keys")
	}
	m = press(t, m, "x")
	if m.mode != ModeBrowse {
		t.Error("any key should leave help")
	}
}

func TestClearMessages(t *testing.T) {
	m := newTestModel()
	m.notice = "hi"
	m.errorMessage = "boom"
	m.errorTransient = true

	m = send(t, m, ClearNoticeMsg{})
	if m.notice != "" {
		t.Errorf("notice = %q", m.notice)
	}
	m = send(t, m, ClearTransientErrorMsg{})
	if m.errorMessage != "" {
		t.Errorf("errorMessage = %q", m.errorMessage)
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three four", 9)
	want := []string{"one two", "three", "four"}
	if len(got) != len(want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTruncateToWidth(t *testing.T) {
	if got := truncateToWidth("abcdef", 4); got != "abc…" {
		t.Errorf("truncate = %q, want %q", got, "abc…")
	}
	if got := truncateToWidth("abc", 4); got != "abc" {
		t.Errorf("truncate = %q, want %q", got, "abc")
	}
}
