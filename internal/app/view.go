package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jwulff/ttsedit/internal/compare"
	"github.com/jwulff/ttsedit/internal/dataset"
	"github.com/jwulff/ttsedit/internal/ui"
)

const appTitle = "TTS Dataset Editor"

// Layout helpers

func (m Model) listPanelWidth() int {
	w := m.width * 2 / 5
	return max(24, min(w, 60))
}

func (m Model) detailPanelWidth() int {
	return max(10, m.width-m.listPanelWidth()-1)
}

// contentHeight is the height of the main area: header, status, two
// dividers, the input line and the footer are reserved.
func (m Model) contentHeight() int {
	reserved := 6
	if m.errorMessage != "" {
		reserved++
	}
	if m.notice != "" {
		reserved++
	}
	return max(3, m.height-reserved)
}

// View renders the full screen.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderStatusBar())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	switch {
	case m.mode == ModeHelp:
		sections = append(sections, m.renderHelp())
	case m.mode == ModeDuplicates:
		sections = append(sections, m.renderDuplicates())
	case m.session == nil:
		sections = append(sections, m.renderWelcome())
	default:
		sections = append(sections, m.renderMainContent())
	}

	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))
	sections = append(sections, m.renderInputLine())

	if m.errorMessage != "" {
		sections = append(sections, m.renderErrorBar())
	}
	if m.notice != "" {
		sections = append(sections, ui.InfoTextStyle.Render(m.notice))
	}

	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

// windowTitle is "* <dir> - TTS Dataset Editor" while there are unsaved
// edits.
func (m Model) windowTitle() string {
	if m.session == nil {
		return appTitle
	}
	title := m.session.Dir() + " - " + appTitle
	if m.session.IsDirty() {
		title = "* " + title
	}
	return title
}

func (m Model) renderHeader() string {
	if m.session == nil {
		return ui.TitleStyle.Render(appTitle)
	}
	var dirty string
	if m.session.IsDirty() {
		dirty = ui.DirtyMarkStyle.Render("* ")
	}
	return dirty + ui.TitleStyle.Render(m.session.Dir()) + ui.DimStyle.Render(" - "+appTitle)
}

func (m Model) renderStatusBar() string {
	if m.session == nil {
		return ui.StatusStyle.Render("No dataset open")
	}

	st := m.session.Stats()
	status := ui.StatusStyle.Render(fmt.Sprintf("%s  %d entries  %d review  %d deleted  %d modified",
		m.session.Format(), st.Total, st.PendingReview, st.Deleted, st.Modified))

	var badge string
	switch m.session.ActiveFilter() {
	case dataset.FilterPendingReview:
		badge = "[PENDING REVIEW]"
	case dataset.FilterDeleted:
		badge = "[DELETED]"
	case dataset.FilterSearch:
		kind := "text"
		if m.session.QueryIsRegex() {
			kind = "regex"
		}
		badge = fmt.Sprintf("[%s: %s]", kind, m.session.Query())
	}
	if badge != "" {
		status += "  " + ui.FilterBadgeStyle.Render(badge) +
			ui.DimStyle.Render(fmt.Sprintf(" %d shown", len(m.view)))
	}

	if m.scanning {
		status += "  " + m.spinner.View() + ui.SpinnerStyle.Render(" scanning for duplicates")
	}
	return status
}

func (m Model) renderMainContent() string {
	listW := m.listPanelWidth()
	detailW := m.detailPanelWidth()
	contentH := m.contentHeight()

	listLines := strings.Split(m.renderListPanel(listW, contentH), "\n")
	detailLines := strings.Split(m.renderDetailPanel(detailW, contentH), "\n")

	divider := ui.DividerStyle.Render("│")

	var rows []string
	for i := 0; i < contentH; i++ {
		l := strings.Repeat(" ", listW)
		if i < len(listLines) {
			l = listLines[i]
		}
		d := ""
		if i < len(detailLines) {
			d = detailLines[i]
		}
		rows = append(rows, l+divider+d)
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderListPanel(width, height int) string {
	lines := []string{padRight(ui.PanelTitleActiveStyle.Render(fmt.Sprintf("ENTRIES (%d)", len(m.view))), width)}

	rows := height - 1
	if len(m.view) == 0 {
		lines = append(lines, ui.DimStyle.Render("  Nothing to show"))
	} else {
		// Keep the cursor in the middle of the window when possible.
		start := max(0, min(m.cursor-rows/2, len(m.view)-rows))
		end := min(len(m.view), start+rows)
		for i := start; i < end; i++ {
			e := m.view[i]
			label := truncateToWidth(e.Label(), width-2)
			var line string
			switch {
			case i == m.cursor:
				line = ui.SelectedStyle.Render("> " + label)
			case e.Deleted():
				line = "  " + ui.DeletedStyle.Render(label)
			case e.PendingReview():
				line = "  " + ui.ReviewStyle.Render(label)
			default:
				line = "  " + label
			}
			lines = append(lines, line)
		}
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, l := range lines {
		lines[i] = padRight(l, width)
	}
	return strings.Join(lines[:height], "\n")
}

func (m Model) renderDetailPanel(width, height int) string {
	cur := m.current()
	if cur == nil {
		return ""
	}

	textW := max(10, width-4)
	lines := []string{" " + ui.PanelTitleStyle.Render(cur.Label())}
	lines = append(lines, " "+ui.DimStyle.Render(truncateToWidth(cur.AudioPath(), textW)))
	lines = append(lines, "")

	for _, wl := range wrapText(cur.Transcript(), textW) {
		lines = append(lines, "  "+wl)
	}

	if cur.Modified() {
		lines = append(lines, "")
		if m.showDiff {
			lines = append(lines, " "+ui.PanelTitleStyle.Render("CHANGES"))
			for _, wl := range wrapText(renderChanges(cur.Original(), cur.Transcript()), textW) {
				lines = append(lines, "  "+wl)
			}
		} else {
			lines = append(lines, " "+ui.DimStyle.Render("modified since last save (v to show changes)"))
		}
	}

	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// renderChanges colours the inserted and removed runs between two
// transcripts.
func renderChanges(before, after string) string {
	var b strings.Builder
	for _, sp := range compare.Changes(before, after) {
		switch sp.Op {
		case compare.Insert:
			b.WriteString(ui.InsertStyle.Render(sp.Text))
		case compare.Delete:
			b.WriteString(ui.DeleteStyle.Render(sp.Text))
		default:
			b.WriteString(sp.Text)
		}
	}
	return b.String()
}

func (m Model) renderDuplicates() string {
	height := m.contentHeight()
	width := m.width

	lines := []string{ui.PanelTitleActiveStyle.Render(fmt.Sprintf("NEAR DUPLICATES (%d groups, cutoff %d)", len(m.dupes), m.cfg.DuplicateCutoff))}

	rows := height - 1
	start := max(0, min(m.dupeCursor-rows/4, len(m.dupes)-1))
	for i := start; i < len(m.dupes) && len(lines) < height; i++ {
		g := m.dupes[i]
		head := truncateToWidth(fmt.Sprintf("%d. %s", g.Index+1, g.Text), width-2)
		if i == m.dupeCursor {
			lines = append(lines, ui.SelectedStyle.Render("> "+head))
		} else {
			lines = append(lines, "  "+head)
		}
		for _, mt := range g.Matches {
			if mt.Index == g.Index {
				continue
			}
			score := ui.ScoreStyle.Render(fmt.Sprintf("%3d", mt.Score))
			lines = append(lines, "    "+score+" "+truncateToWidth(fmt.Sprintf("%d. %s", mt.Index+1, mt.Text), width-10))
		}
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines[:height], "\n")
}

func (m Model) renderWelcome() string {
	height := m.contentHeight()
	lines := []string{
		"",
		"  " + ui.DimStyle.Render("Press o to open a dataset directory"),
		"",
	}
	if len(m.recent) > 0 {
		lines = append(lines, "  "+ui.PanelTitleStyle.Render("RECENT"))
		for i, d := range m.recent {
			if i >= 9 {
				break
			}
			key := ui.FooterKeyStyle.Render(fmt.Sprintf("%d", i+1))
			info := ui.DimStyle.Render(fmt.Sprintf("  %s, %d entries, opened %s", d.Format, d.Entries, d.OpenedAt.Format("2006-01-02 15:04")))
			lines = append(lines, "  "+key+" "+truncateToWidth(d.Dir, max(10, m.width-40))+info)
		}
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines[:height], "\n")
}

func (m Model) renderHelp() string {
	height := m.contentHeight()
	keys := [][2]string{
		{"j/k ↑↓", "previous / next entry"},
		{"alt+←/→", "previous / next entry"},
		{"g/G", "first / last entry"},
		{"enter", "edit transcript"},
		{"r", "toggle pending review"},
		{"d", "toggle deleted"},
		{"/", "search (tab switches text / regex)"},
		{"p", "show pending review only"},
		{"x", "show deleted only"},
		{"esc", "clear filter"},
		{"v", "show changes since last save"},
		{"u", "find near-duplicate transcripts"},
		{"s", "save edits"},
		{"e", "export csv"},
		{"o", "open dataset"},
		{"w", "close dataset"},
		{"q", "quit"},
	}
	lines := []string{ui.PanelTitleActiveStyle.Render("KEYS"), ""}
	for _, k := range keys {
		lines = append(lines, "  "+padRight(ui.FooterKeyStyle.Render(k[0]), 10)+ui.FooterDescStyle.Render(k[1]))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines[:height], "\n")
}

func (m Model) renderInputLine() string {
	switch m.mode {
	case ModeEdit, ModeOpen:
		return m.input.View()
	case ModeSearch:
		kind := ui.DimStyle.Render(" [text]")
		if m.useRegex {
			kind = ui.FilterBadgeStyle.Render(" [regex]")
		}
		return m.input.View() + kind
	case ModeConfirm:
		if len(m.prompts) > 0 {
			return ui.PromptStyle.Render(m.prompts[0].Message()) + ui.DimStyle.Render(" [y/n, esc cancels]")
		}
	}
	return ""
}

func (m Model) renderErrorBar() string {
	return ui.ErrorStyle.Render("Error: ") + ui.ErrorTextStyle.Render(m.errorMessage)
}

func footerKey(key, desc string) string {
	return ui.FooterKeyStyle.Render(key) + ui.FooterDescStyle.Render(" "+desc)
}

func (m Model) renderFooter() string {
	var parts []string

	switch m.mode {
	case ModeEdit, ModeOpen:
		parts = append(parts, footerKey("Enter", "Apply"), footerKey("Esc", "Cancel"))
	case ModeSearch:
		parts = append(parts, footerKey("Enter", "Search"), footerKey("Tab", "Regex"), footerKey("Esc", "Cancel"))
	case ModeConfirm:
		parts = append(parts, footerKey("y", "Yes"), footerKey("n", "No"), footerKey("Esc", "Cancel"))
	case ModeDuplicates:
		parts = append(parts, footerKey("j/k", "Nav"), footerKey("Enter", "Go to"), footerKey("u", "Rescan"), footerKey("Esc", "Back"))
	case ModeHelp:
		parts = append(parts, footerKey("any key", "Back"))
	default:
		if m.session != nil {
			parts = append(parts,
				footerKey("Enter", "Edit"),
				footerKey("r", "Review"),
				footerKey("d", "Delete"),
				footerKey("/", "Search"),
				footerKey("s", "Save"),
				footerKey("e", "Export"),
			)
		} else {
			parts = append(parts, footerKey("o", "Open"))
		}
		parts = append(parts, footerKey("?", "Help"), footerKey("q", "Quit"))
	}

	return strings.Join(parts, "  ")
}

// Helpers

func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func truncateToWidth(s string, width int) string {
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) > width-1 {
		return string(runes[:width-1]) + "…"
	}
	return s
}

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current string
		for _, word := range strings.Fields(paragraph) {
			switch {
			case current == "":
				current = word
			case lipgloss.Width(current)+1+lipgloss.Width(word) <= width:
				current += " " + word
			default:
				lines = append(lines, current)
				current = word
			}
		}
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
