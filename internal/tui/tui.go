// Package tui is the interactive checklist: a Bubble Tea list over the
// checklist store with a check mode and an edit mode.
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/cabina/internal/checklist"
	"github.com/idilsaglam/cabina/internal/model"
	"github.com/idilsaglam/cabina/internal/ui"
)

// row adapts a checklist item to bubbles/list.Item.
type row struct {
	item    model.Item
	checked bool
}

func (r row) Title() string       { return r.item.Label }
func (r row) Description() string { return "" }
func (r row) FilterValue() string { return r.item.Label }

// inputMode is what the shared text input is currently collecting.
type inputMode int

const (
	inputNone inputMode = iota
	inputAdd
	inputRename
)

type deleted struct {
	item  model.Item
	index int
}

// Model is the Bubble Tea model. It reads from and writes through the store;
// it keeps no copy of checklist data beyond the rows it renders.
type Model struct {
	store *checklist.Store
	keys  keyMap
	list  list.Model
	ti    textinput.Model

	editMode     bool
	rowMode      *bool // shared with itemDelegate
	input        inputMode
	renameID     string
	inputErr     string
	confirmReset bool
	undo         *deleted
	status       string
	now          func() time.Time

	width, height int
}

// itemDelegate renders one row per line. The marker depends on edit mode,
// so the delegate holds a pointer to the live flag.
type itemDelegate struct {
	editMode *bool
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	r, _ := item.(row)
	t := ui.Current()

	label := ui.Truncate(r.item.Label, m.Width()-6)
	var line string
	switch {
	case d.editMode != nil && *d.editMode:
		line = t.Muted.Render("•") + " " + label
	case r.checked:
		line = t.Success.Render(t.BoxChecked) + " " + t.Done.Render(label)
	default:
		line = t.Muted.Render(t.BoxUnchecked) + " " + label
	}

	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render(">") + " "
	}
	fmt.Fprintln(w, prefix+line)
}

// New builds the model over s.
func New(s *checklist.Store) Model {
	m := Model{
		store:   s,
		keys:    newKeyMap(),
		rowMode: new(bool),
		now:     time.Now,
	}

	t := ui.Current()
	l := list.New(nil, itemDelegate{editMode: m.rowMode}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = t.Title
	l.Styles.HelpStyle = t.Help
	l.Styles.PaginationStyle = t.Help
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")
	l.DisableQuitKeybindings()
	m.list = l

	// set up text input for inline add/rename
	m.ti = textinput.New()
	m.ti.Prompt = "> "
	m.ti.CharLimit = 200

	m.syncHelp()
	m.refresh()
	return m
}

// Run starts the program on the alternate screen. Every change is already
// persisted by the store when the program exits.
func Run(s *checklist.Store) error {
	_, err := tea.NewProgram(New(s), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

// refresh rebuilds rows and the header from the store, keeping the cursor.
func (m *Model) refresh() {
	idx := m.list.Index()
	items := m.store.Items()
	rows := make([]list.Item, 0, len(items))
	for _, it := range items {
		rows = append(rows, row{item: it, checked: m.store.IsChecked(it.ID)})
	}
	m.list.SetItems(rows)
	if m.list.FilterState() == list.FilterApplied {
		// Re-run the applied filter now so the visible rows match the store.
		m.list.SetFilterText(m.list.FilterValue())
	}
	if n := len(m.list.VisibleItems()); idx >= n {
		idx = n - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
	m.list.Title = m.header()
}

// selectID moves the cursor to the visible row for id, if there is one.
func (m *Model) selectID(id string) {
	for i, it := range m.list.VisibleItems() {
		if r, ok := it.(row); ok && r.item.ID == id {
			m.list.Select(i)
			return
		}
	}
}

func (m Model) header() string {
	t := ui.Current()
	c, total := m.store.Counts()
	label := "Progress"
	if m.store.AllDone() {
		label = t.Success.Render("All set!")
	}
	mode := ""
	if m.editMode {
		mode = "  " + t.Accent.Render("[editing]")
	}
	return fmt.Sprintf("%s%s\n%s\n%s %d / %d  %s",
		t.Title.Render("Cabina Checklist"), mode,
		t.Muted.Render(ui.LongDate(m.now())),
		label, c, total,
		ui.ProgressBar(m.store.Progress(), 20),
	)
}

// selected returns the item under the cursor.
func (m Model) selected() (model.Item, bool) {
	r, ok := m.list.SelectedItem().(row)
	if !ok {
		return model.Item{}, false
	}
	return r.item, true
}

func (m *Model) setEditMode(on bool) {
	m.editMode = on
	*m.rowMode = on
	if !on {
		m.undo = nil
	}
	m.syncHelp()
	m.list.Title = m.header()
}

func (m *Model) syncHelp() {
	extra := m.keys.checkModeKeys()
	if m.editMode {
		extra = m.keys.editModeKeys()
	}
	m.list.AdditionalShortHelpKeys = func() []key.Binding { return extra }
	m.list.AdditionalFullHelpKeys = func() []key.Binding { return extra }
}

func (m *Model) report(err error) {
	if err != nil {
		m.status = "save failed: " + err.Error()
		return
	}
	m.status = ""
}

func (m *Model) openInput(mode inputMode, value, placeholder string) tea.Cmd {
	m.input = mode
	m.inputErr = ""
	m.ti.SetValue(value)
	m.ti.CursorEnd()
	m.ti.Placeholder = placeholder
	return m.ti.Focus()
}

func (m *Model) closeInput() {
	m.input = inputNone
	m.renameID = ""
	m.inputErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}

	if m.input != inputNone {
		return m.updateInput(msg)
	}
	if m.confirmReset {
		return m.updateConfirm(msg)
	}

	km, isKey := msg.(tea.KeyMsg)
	if !isKey || m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(km, m.keys.quit):
		return m, tea.Quit
	case key.Matches(km, m.keys.editMode):
		m.setEditMode(!m.editMode)
		m.resize()
		return m, nil
	}

	if m.editMode {
		if cmd, handled := m.updateEdit(km); handled {
			return m, cmd
		}
	} else {
		if cmd, handled := m.updateCheck(km); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// updateCheck handles keys while checking items off.
func (m *Model) updateCheck(km tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(km, m.keys.toggle):
		if it, ok := m.selected(); ok {
			_, err := m.store.Toggle(it.ID)
			m.report(err)
			m.refresh()
		}
		return nil, true
	case key.Matches(km, m.keys.reset):
		m.confirmReset = true
		m.resize()
		return nil, true
	}
	return nil, false
}

// updateEdit handles keys while editing the template.
func (m *Model) updateEdit(km tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(km, m.keys.add):
		cmd := m.openInput(inputAdd, "", "New item...")
		m.resize()
		return cmd, true
	case key.Matches(km, m.keys.rename):
		it, ok := m.selected()
		if !ok {
			return nil, true
		}
		m.renameID = it.ID
		cmd := m.openInput(inputRename, it.Label, "Item label...")
		m.resize()
		return cmd, true
	case key.Matches(km, m.keys.remove):
		it, ok := m.selected()
		if !ok {
			return nil, true
		}
		idx := m.store.Index(it.ID)
		removed, err := m.store.Delete(it.ID)
		if removed {
			m.undo = &deleted{item: it, index: idx}
		}
		m.report(err)
		m.refresh()
		return nil, true
	case key.Matches(km, m.keys.undo):
		if m.undo != nil {
			idx := min(m.undo.index, m.store.Len())
			_, err := m.store.Insert(idx, m.undo.item)
			m.report(err)
			m.undo = nil
			m.refresh()
			if it, err := m.store.At(idx); err == nil {
				m.selectID(it.ID)
			}
		}
		return nil, true
	}
	return nil, false
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, m.keys.submit):
			label := strings.TrimSpace(m.ti.Value())
			if label == "" {
				m.inputErr = "Label cannot be empty"
				return m, nil
			}
			var err error
			if m.input == inputAdd {
				_, _, err = m.store.Add(label)
				m.report(err)
				m.refresh()
				if it, err := m.store.At(m.store.Len() - 1); err == nil {
					m.selectID(it.ID)
				}
				// Stay in add mode for the next item.
				m.ti.SetValue("")
				m.inputErr = ""
				return m, nil
			}
			_, err = m.store.Edit(m.renameID, label)
			m.report(err)
			m.closeInput()
			m.refresh()
			m.resize()
			return m, nil
		case key.Matches(km, m.keys.cancel):
			m.closeInput()
			m.resize()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, m.keys.confirm):
		m.report(m.store.Reset())
		m.confirmReset = false
		m.refresh()
		m.resize()
	case key.Matches(km, m.keys.cancel), key.Matches(km, m.keys.deny):
		m.confirmReset = false
		m.resize()
	}
	return m, nil
}

// footerHeight is the number of lines drawn under the list.
func (m Model) footerHeight() int {
	h := 0
	if m.input != inputNone || m.confirmReset {
		h += 4
	}
	if m.status != "" {
		h++
	}
	if m.store.Len() == 0 {
		h += 2
	}
	return h
}

func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	// panel border + padding
	m.list.SetSize(m.width-4, max(1, m.height-2-m.footerHeight()))
}

func (m Model) View() string {
	t := ui.Current()
	content := m.list.View()

	if m.store.Len() == 0 {
		content += "\n" + t.Muted.Render("No items in the list.\nPress "+keyName(m.keys.editMode)+" to edit and add some.")
	}

	bar := lipgloss.NewStyle().Border(t.Border).BorderForeground(t.BorderColor).Padding(0, 1)
	switch {
	case m.input != inputNone:
		title := "Add item"
		if m.input == inputRename {
			title = "Edit item"
		}
		if m.inputErr != "" {
			title += " - " + t.Error.Render(m.inputErr)
		}
		content += "\n" + bar.Render(title+"\n"+m.ti.View())
	case m.confirmReset:
		content += "\n" + bar.Render("Reset all checks for the next event?\n"+
			t.Help.Render("y reset • n cancel"))
	}
	if m.status != "" {
		content += "\n" + t.Error.Render(m.status)
	}
	return ui.Panel(content)
}

func keyName(b key.Binding) string {
	return b.Help().Key
}
