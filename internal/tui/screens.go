// internal/tui/screens.go
//
// The non-menu screens: the add form, the id prompts, the search query
// prompt and the scrolling book list. Each form wraps bubbles/textinput
// components; the App routes messages here based on its current state.

package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kingrea/libris/internal/catalog"
)

var (
	formLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	formHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).MarginTop(1)
	rowStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#DDDDDD"))
	availableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#50C878"))
	checkedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E8B339"))
)

// addForm collects title, author and year for a new book.
type addForm struct {
	inputs []textinput.Model
	focus  int
}

func newAddForm() addForm {
	labels := []string{"Title", "Author", "Year"}
	inputs := make([]textinput.Model, len(labels))
	for i, label := range labels {
		ti := textinput.New()
		ti.Placeholder = label
		ti.CharLimit = 128
		ti.Width = 40
		inputs[i] = ti
	}
	inputs[2].CharLimit = 4
	inputs[2].Width = 8
	return addForm{inputs: inputs}
}

func (f *addForm) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = 0
}

func (f *addForm) focusFirst() tea.Cmd {
	f.focus = 0
	return f.inputs[0].Focus()
}

func (f *addForm) blur() {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// onLast reports whether the year field currently has focus.
func (f *addForm) onLast() bool {
	return f.focus == len(f.inputs)-1
}

// advance moves focus to the next field.
func (f *addForm) advance() tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus++
	return f.inputs[f.focus].Focus()
}

func (f *addForm) update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			if f.focus < len(f.inputs)-1 {
				return f.advance()
			}
			return nil
		case "shift+tab", "up":
			if f.focus > 0 {
				f.inputs[f.focus].Blur()
				f.focus--
				return f.inputs[f.focus].Focus()
			}
			return nil
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *addForm) values() (title, author, year string) {
	return f.inputs[0].Value(), f.inputs[1].Value(), f.inputs[2].Value()
}

func (f *addForm) view() string {
	labels := []string{"Title", "Author", "Year"}
	var rows []string
	for i, label := range labels {
		rows = append(rows, fmt.Sprintf("%s\n%s", formLabelStyle.Render(label), f.inputs[i].View()))
	}
	hint := formHintStyle.Render("Enter → next field / save    Esc → cancel")
	return strings.Join(append(rows, hint), "\n\n")
}

// idForm is a single numeric prompt reused by remove and status change.
type idForm struct {
	input textinput.Model
}

func newIDForm() idForm {
	ti := textinput.New()
	ti.CharLimit = 12
	ti.Width = 12
	return idForm{input: ti}
}

func (f *idForm) reset(placeholder string) {
	f.input.SetValue("")
	f.input.Placeholder = placeholder
}

func (f *idForm) focus() tea.Cmd {
	return f.input.Focus()
}

func (f *idForm) blur() {
	f.input.Blur()
}

func (f *idForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

// value parses the entered id.
func (f *idForm) value() (int, error) {
	raw := strings.TrimSpace(f.input.Value())
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%q is not a book id", raw)
	}
	return id, nil
}

func (f *idForm) view() string {
	label := formLabelStyle.Render("Book Id")
	hint := formHintStyle.Render("Enter → confirm    Esc → cancel")
	return fmt.Sprintf("%s\n%s\n%s", label, f.input.View(), hint)
}

// queryForm is the free-text search prompt.
type queryForm struct {
	input textinput.Model
}

func newQueryForm() queryForm {
	ti := textinput.New()
	ti.Placeholder = "Query"
	ti.CharLimit = 128
	ti.Width = 40
	return queryForm{input: ti}
}

func (f *queryForm) reset() {
	f.input.SetValue("")
}

func (f *queryForm) focus() tea.Cmd {
	return f.input.Focus()
}

func (f *queryForm) blur() {
	f.input.Blur()
}

func (f *queryForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

func (f *queryForm) view() string {
	label := formLabelStyle.Render("Search Query")
	hint := formHintStyle.Render("Enter → search    Esc → cancel")
	return fmt.Sprintf("%s\n%s\n%s", label, f.input.View(), hint)
}

// handleAddFormEnter advances through the add form and submits on the
// last field.
func (a *App) handleAddFormEnter() (tea.Model, tea.Cmd) {
	if !a.addForm.onLast() {
		return a, a.addForm.advance()
	}
	title, author, year := a.addForm.values()
	book, err := a.catalog.Add(title, author, year)
	if err != nil {
		a.statusMsg = fmt.Sprintf("Error: %v", err)
		a.logInfo("Add rejected: %v", err)
		return a, nil
	}
	a.logInfo("Added book %d · %s", book.ID, book.Title)
	return a.returnToMainMenu(fmt.Sprintf("Added #%d %q", book.ID, book.Title))
}

func (a *App) handleRemoveSubmit() (tea.Model, tea.Cmd) {
	id, err := a.idForm.value()
	if err != nil {
		a.statusMsg = fmt.Sprintf("Error: %v", err)
		return a, nil
	}
	if err := a.catalog.Remove(id); err != nil {
		a.statusMsg = fmt.Sprintf("Error: %v", err)
		a.logInfo("Remove rejected: %v", err)
		return a, nil
	}
	a.logInfo("Removed book %d", id)
	return a.returnToMainMenu(fmt.Sprintf("Removed book %d", id))
}

func (a *App) handleFieldSelection() (tea.Model, tea.Cmd) {
	item, ok := a.fieldMenu.SelectedItem().(menuItem)
	if !ok {
		return a, nil
	}
	field, err := catalog.ParseField(item.title)
	if err != nil {
		a.statusMsg = fmt.Sprintf("Error: %v", err)
		return a, nil
	}
	a.searchField = field
	a.queryForm.reset()
	a.state = stateQueryForm
	a.statusMsg = fmt.Sprintf("Searching by %s", field)
	return a, a.queryForm.focus()
}

func (a *App) handleQuerySubmit() (tea.Model, tea.Cmd) {
	query := strings.TrimSpace(a.queryForm.input.Value())
	var hits []catalog.Book
	for book := range a.catalog.Search(a.searchField, query) {
		hits = append(hits, book)
	}
	a.queryForm.blur()
	a.logInfo("Search · %s contains %q → %d hit(s)", a.searchField, query, len(hits))
	a.showBooks(fmt.Sprintf("Search · %s contains %q", a.searchField, query), hits)
	return a, nil
}

func (a *App) handleStatusIDSubmit() (tea.Model, tea.Cmd) {
	id, err := a.idForm.value()
	if err != nil {
		a.statusMsg = fmt.Sprintf("Error: %v", err)
		return a, nil
	}
	a.statusID = id
	a.idForm.blur()
	a.state = stateStatusPick
	a.statusMsg = fmt.Sprintf("New status for book %d", id)
	return a, nil
}

func (a *App) handleStatusSelection() (tea.Model, tea.Cmd) {
	item, ok := a.statusMenu.SelectedItem().(menuItem)
	if !ok {
		return a, nil
	}
	status := catalog.StatusAvailable
	if item.title == "Checked Out" {
		status = catalog.StatusCheckedOut
	}
	if err := a.catalog.UpdateStatus(a.statusID, status); err != nil {
		a.statusMsg = fmt.Sprintf("Error: %v", err)
		a.logInfo("Status change rejected: %v", err)
		return a, nil
	}
	a.logInfo("Book %d is now %s", a.statusID, status)
	return a.returnToMainMenu(fmt.Sprintf("Book %d is now %s", a.statusID, status))
}

// updateListView pages through the current book list.
func (a *App) updateListView(msg tea.Msg) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return
	}
	page := a.config.PageSize()
	switch key.String() {
	case "down", "j":
		if a.listOffset+page < len(a.listBooks) {
			a.listOffset++
		}
	case "up", "k":
		if a.listOffset > 0 {
			a.listOffset--
		}
	case "pgdown", "right", "l":
		if a.listOffset+page < len(a.listBooks) {
			a.listOffset = min(a.listOffset+page, len(a.listBooks)-1)
		}
	case "pgup", "left", "h":
		a.listOffset = max(0, a.listOffset-page)
	}
}

func (a *App) renderListView(width int) string {
	title := formLabelStyle.Render(a.listTitle)
	if len(a.listBooks) == 0 {
		empty := formHintStyle.Render("Nothing here. Esc → menu")
		return fmt.Sprintf("%s\n%s", title, empty)
	}
	page := a.config.PageSize()
	end := min(a.listOffset+page, len(a.listBooks))
	var rows []string
	for _, b := range a.listBooks[a.listOffset:end] {
		rows = append(rows, renderBookRow(b, width))
	}
	position := fmt.Sprintf("%d-%d of %d", a.listOffset+1, end, len(a.listBooks))
	hint := formHintStyle.Render(fmt.Sprintf("%s    ↑/↓ scroll    Esc → menu", position))
	return strings.Join(append([]string{title}, append(rows, hint)...), "\n")
}

func renderBookRow(b catalog.Book, width int) string {
	badge := availableStyle.Render("[available]")
	if b.Status == catalog.StatusCheckedOut {
		badge = checkedStyle.Render("[checked out]")
	}
	line := fmt.Sprintf("#%-4d %s · %s (%s) %s", b.ID, b.Title, b.Author, b.Year, badge)
	return rowStyle.Width(max(20, width)).Render(line)
}
