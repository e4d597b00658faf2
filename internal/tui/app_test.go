package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/libris/internal/catalog"
	"github.com/kingrea/libris/internal/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, config.InitLibrisDir(dir))
	app, err := NewApp(dir)
	require.NoError(t, err)
	return app
}

func seedBook(t *testing.T, app *App, title, author, year string) catalog.Book {
	t.Helper()
	book, err := app.catalog.Add(title, author, year)
	require.NoError(t, err)
	return book
}

func TestAddFormSubmissionAddsBook(t *testing.T) {
	app := newTestApp(t)
	app.state = stateAddForm
	app.addForm.inputs[0].SetValue("1984")
	app.addForm.inputs[1].SetValue("Orwell")
	app.addForm.inputs[2].SetValue("1949")
	app.addForm.focus = len(app.addForm.inputs) - 1

	_, _ = app.handleAddFormEnter()

	assert.Equal(t, stateMainMenu, app.state)
	books := app.catalog.Books()
	require.Len(t, books, 1)
	assert.Equal(t, 1, books[0].ID)
	assert.Equal(t, catalog.StatusAvailable, books[0].Status)
	assert.Contains(t, app.statusMsg, "Added")
}

func TestAddFormEnterAdvancesThroughFields(t *testing.T) {
	app := newTestApp(t)
	app.state = stateAddForm

	_, _ = app.handleAddFormEnter()
	assert.Equal(t, 1, app.addForm.focus)
	assert.Equal(t, stateAddForm, app.state, "submission only happens on the last field")
}

func TestAddFormRejectionStaysOnForm(t *testing.T) {
	app := newTestApp(t)
	app.state = stateAddForm
	app.addForm.inputs[0].SetValue("1984")
	app.addForm.inputs[1].SetValue("Orwell")
	app.addForm.inputs[2].SetValue("abc")
	app.addForm.focus = len(app.addForm.inputs) - 1

	_, _ = app.handleAddFormEnter()

	assert.Equal(t, stateAddForm, app.state)
	assert.Contains(t, app.statusMsg, "Error")
	assert.Empty(t, app.catalog.Books())
	assert.NotEmpty(t, app.errlog.Entries(), "rejection lands in the error log")
}

func TestRemoveFlow(t *testing.T) {
	app := newTestApp(t)
	seedBook(t, app, "Dune", "Herbert", "1965")

	app.state = stateRemoveForm
	app.idForm.input.SetValue("1")
	_, _ = app.handleRemoveSubmit()

	assert.Equal(t, stateMainMenu, app.state)
	assert.Empty(t, app.catalog.Books())
}

func TestRemoveRejectsNonNumericID(t *testing.T) {
	app := newTestApp(t)
	seedBook(t, app, "Dune", "Herbert", "1965")

	app.state = stateRemoveForm
	app.idForm.input.SetValue("abc")
	_, _ = app.handleRemoveSubmit()

	assert.Equal(t, stateRemoveForm, app.state, "bad input keeps the prompt open")
	assert.Contains(t, app.statusMsg, "Error")
	assert.Len(t, app.catalog.Books(), 1)
}

func TestSearchFlowShowsMatches(t *testing.T) {
	app := newTestApp(t)
	seedBook(t, app, "Dune", "Herbert", "1965")
	seedBook(t, app, "Dune Messiah", "Herbert", "1969")
	seedBook(t, app, "Hyperion", "Simmons", "1989")

	app.searchField = catalog.FieldTitle
	app.queryForm.input.SetValue("dune")
	_, _ = app.handleQuerySubmit()

	assert.Equal(t, stateListView, app.state)
	require.Len(t, app.listBooks, 2)
	assert.Equal(t, "Dune", app.listBooks[0].Title)
	assert.Contains(t, app.statusMsg, "2 book(s)")
}

func TestSearchFlowReportsNoMatches(t *testing.T) {
	app := newTestApp(t)
	seedBook(t, app, "Dune", "Herbert", "1965")

	app.searchField = catalog.FieldAuthor
	app.queryForm.input.SetValue("tolkien")
	_, _ = app.handleQuerySubmit()

	assert.Equal(t, stateListView, app.state)
	assert.Empty(t, app.listBooks)
	assert.Equal(t, "No books matched", app.statusMsg)
}

func TestStatusChangeFlow(t *testing.T) {
	app := newTestApp(t)
	seedBook(t, app, "Dune", "Herbert", "1965")

	app.state = stateStatusForm
	app.idForm.input.SetValue("1")
	_, _ = app.handleStatusIDSubmit()
	require.Equal(t, stateStatusPick, app.state)

	app.statusMenu.Select(1) // Checked Out
	_, _ = app.handleStatusSelection()

	assert.Equal(t, stateMainMenu, app.state)
	assert.Equal(t, catalog.StatusCheckedOut, app.catalog.Books()[0].Status)
}

func TestStatusChangeMissingBookStaysOnScreen(t *testing.T) {
	app := newTestApp(t)

	app.state = stateStatusPick
	app.statusID = 99
	_, _ = app.handleStatusSelection()

	assert.Equal(t, stateStatusPick, app.state)
	assert.Contains(t, app.statusMsg, "Error")
	assert.NotEmpty(t, app.errlog.Entries())
}

func TestEscReturnsToMainMenu(t *testing.T) {
	app := newTestApp(t)
	app.state = stateAddForm

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	updated, ok := model.(*App)
	require.True(t, ok)

	assert.Equal(t, stateMainMenu, updated.state)
	assert.Equal(t, "Cancelled", updated.statusMsg)
}

func TestListViewPaging(t *testing.T) {
	app := newTestApp(t)
	for i := 0; i < 15; i++ {
		seedBook(t, app, "Dune", "Herbert", "1965")
	}
	app.showBooks("All Books", app.catalog.Books())

	require.Equal(t, stateListView, app.state)
	app.updateListView(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, 10, app.listOffset)
	app.updateListView(tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Equal(t, 0, app.listOffset)
}
