// internal/tui/app.go
//
// This is the main TUI (Terminal User Interface) for libris.
// It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The flow is: User Input -> Message -> Update -> New Model -> View -> Screen

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kingrea/libris/internal/catalog"
	"github.com/kingrea/libris/internal/config"
	"github.com/kingrea/libris/internal/errorlog"
	"github.com/kingrea/libris/internal/logging"
)

// appState represents which "screen" we're on
type appState int

const (
	stateMainMenu    appState = iota // Main menu with the catalog operations
	stateAddForm                     // Title/author/year entry for a new book
	stateRemoveForm                  // Id entry for removal
	stateFieldSelect                 // Search field picker
	stateQueryForm                   // Search query entry
	stateStatusForm                  // Id entry for a status change
	stateStatusPick                  // Status picker for the chosen book
	stateListView                    // Scrolling book list (all books or search hits)
)

const errorPanelLines = 6

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	state   appState
	config  *config.Config
	catalog *catalog.Catalog
	errlog  *errorlog.Log
	session *logging.Logger

	// UI components
	mainMenu   list.Model
	fieldMenu  list.Model
	statusMenu list.Model
	addForm    addForm
	idForm     idForm
	queryForm  queryForm

	// List screen data
	listTitle  string
	listBooks  []catalog.Book
	listOffset int

	// Pending multi-step input
	searchField catalog.Field
	statusID    int

	statusMsg string

	// Window size (we get this from bubbletea)
	width  int
	height int
}

// menuItem implements list.Item interface for our menu items
type menuItem struct {
	title string
	desc  string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

// NewApp creates a new App instance wired to the data files under the
// configured .libris directory.
func NewApp(baseDir string) (*App, error) {
	cfg, err := config.NewConfig(baseDir)
	if err != nil {
		return nil, err
	}
	errlog := errorlog.Open(cfg.ErrorLogPath())
	cat := catalog.Open(catalog.NewStore(cfg.CatalogPath()), errlog)
	session, err := logging.New(cfg.SessionLogPath())
	if err == nil {
		session.Printf("Session opened · %d book(s) loaded", cat.Len())
	}

	mainMenu := list.New(buildMainMenu(), list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "⬡ LIBRIS"
	mainMenu.SetShowStatusBar(false)
	mainMenu.SetFilteringEnabled(false)

	fieldMenu := list.New([]list.Item{
		menuItem{title: "Title", desc: "Match against book titles"},
		menuItem{title: "Author", desc: "Match against author names"},
		menuItem{title: "Year", desc: "Match against publication years"},
	}, list.NewDefaultDelegate(), 0, 0)
	fieldMenu.Title = "Search By"
	fieldMenu.SetShowStatusBar(false)
	fieldMenu.SetFilteringEnabled(false)

	statusMenu := list.New([]list.Item{
		menuItem{title: "Available", desc: "The book is on the shelf"},
		menuItem{title: "Checked Out", desc: "The book is on loan"},
	}, list.NewDefaultDelegate(), 0, 0)
	statusMenu.Title = "New Status"
	statusMenu.SetShowStatusBar(false)
	statusMenu.SetFilteringEnabled(false)

	app := &App{
		state:      stateMainMenu,
		config:     cfg,
		catalog:    cat,
		errlog:     errlog,
		session:    session,
		mainMenu:   mainMenu,
		fieldMenu:  fieldMenu,
		statusMenu: statusMenu,
		addForm:    newAddForm(),
		idForm:     newIDForm(),
		queryForm:  newQueryForm(),
	}
	return app, nil
}

// buildMainMenu creates the main menu items
func buildMainMenu() []list.Item {
	return []list.Item{
		menuItem{title: "Add Book", desc: "Catalog a new book"},
		menuItem{title: "Remove Book", desc: "Delete a book by id"},
		menuItem{title: "Search", desc: "Find books by title, author or year"},
		menuItem{title: "List Books", desc: "Show the whole catalog"},
		menuItem{title: "Change Status", desc: "Mark a book available or checked out"},
		menuItem{title: "Exit", desc: "Quit libris"},
	}
}

func (a *App) logInfo(format string, args ...any) {
	if a.session == nil {
		return
	}
	a.session.Printf(format, args...)
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		menuW := max(0, msg.Width-6)
		menuH := max(0, msg.Height-12)
		a.mainMenu.SetSize(menuW, menuH)
		a.fieldMenu.SetSize(menuW, menuH)
		a.statusMenu.SetSize(menuW, menuH)
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if a.state == stateMainMenu {
				a.logInfo("Session closed")
				return a, tea.Quit
			}
			if a.state == stateListView {
				return a.returnToMainMenu("")
			}
		case "esc":
			if a.state != stateMainMenu {
				return a.returnToMainMenu("Cancelled")
			}
		case "enter":
			switch a.state {
			case stateMainMenu:
				return a.handleMainMenuSelection()
			case stateAddForm:
				return a.handleAddFormEnter()
			case stateRemoveForm:
				return a.handleRemoveSubmit()
			case stateFieldSelect:
				return a.handleFieldSelection()
			case stateQueryForm:
				return a.handleQuerySubmit()
			case stateStatusForm:
				return a.handleStatusIDSubmit()
			case stateStatusPick:
				return a.handleStatusSelection()
			}
		}
	}

	var cmds []tea.Cmd
	switch a.state {
	case stateMainMenu:
		var cmd tea.Cmd
		a.mainMenu, cmd = a.mainMenu.Update(msg)
		cmds = append(cmds, cmd)
	case stateFieldSelect:
		var cmd tea.Cmd
		a.fieldMenu, cmd = a.fieldMenu.Update(msg)
		cmds = append(cmds, cmd)
	case stateStatusPick:
		var cmd tea.Cmd
		a.statusMenu, cmd = a.statusMenu.Update(msg)
		cmds = append(cmds, cmd)
	case stateAddForm:
		cmds = append(cmds, a.addForm.update(msg))
	case stateRemoveForm, stateStatusForm:
		cmds = append(cmds, a.idForm.update(msg))
	case stateQueryForm:
		cmds = append(cmds, a.queryForm.update(msg))
	case stateListView:
		a.updateListView(msg)
	}

	return a, tea.Batch(cmds...)
}

// handleMainMenuSelection processes menu item selection
func (a *App) handleMainMenuSelection() (tea.Model, tea.Cmd) {
	item, ok := a.mainMenu.SelectedItem().(menuItem)
	if !ok {
		return a, nil
	}

	switch item.title {
	case "Add Book":
		a.logInfo("Menu · Add Book selected")
		a.addForm.reset()
		a.state = stateAddForm
		a.statusMsg = "Enter the new book"
		return a, a.addForm.focusFirst()

	case "Remove Book":
		a.logInfo("Menu · Remove Book selected")
		a.idForm.reset("Book id to remove")
		a.state = stateRemoveForm
		a.statusMsg = "Which book should go?"
		return a, a.idForm.focus()

	case "Search":
		a.logInfo("Menu · Search selected")
		a.state = stateFieldSelect
		a.statusMsg = "Pick a field to search"
		return a, nil

	case "List Books":
		a.logInfo("Menu · List Books selected")
		a.showBooks("All Books", a.catalog.Books())
		return a, nil

	case "Change Status":
		a.logInfo("Menu · Change Status selected")
		a.idForm.reset("Book id")
		a.state = stateStatusForm
		a.statusMsg = "Which book changes status?"
		return a, a.idForm.focus()

	case "Exit":
		a.logInfo("Menu · Exit selected")
		a.logInfo("Session closed")
		return a, tea.Quit
	}

	return a, nil
}

// returnToMainMenu transitions back to the main menu
func (a *App) returnToMainMenu(status string) (tea.Model, tea.Cmd) {
	a.state = stateMainMenu
	a.statusMsg = status
	a.addForm.blur()
	a.idForm.blur()
	a.queryForm.blur()
	return a, nil
}

// showBooks switches to the list screen with the given records.
func (a *App) showBooks(title string, books []catalog.Book) {
	a.state = stateListView
	a.listTitle = title
	a.listBooks = books
	a.listOffset = 0
	if len(books) == 0 {
		a.statusMsg = "No books matched"
	} else {
		a.statusMsg = fmt.Sprintf("%d book(s)", len(books))
	}
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}

	var content string
	switch a.state {
	case stateMainMenu:
		content = a.mainMenu.View()
	case stateAddForm:
		content = a.addForm.view()
	case stateRemoveForm, stateStatusForm:
		content = a.idForm.view()
	case stateFieldSelect:
		content = a.fieldMenu.View()
	case stateQueryForm:
		content = a.queryForm.view()
	case stateStatusPick:
		content = a.statusMenu.View()
	case stateListView:
		content = a.renderListView(width - 6)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		MarginBottom(1).
		Render("⬡ LIBRIS")
	body := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Width(max(20, width-2)).
		Render(content)
	sections := []string{header, body}
	if panel := a.renderErrorPanel(); panel != "" {
		sections = append(sections, panel)
	}
	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render(a.statusMsg)
	sections = append(sections, footer)
	return strings.Join(sections, "\n")
}

// renderErrorPanel shows the tail of the persisted error log so recent
// failures stay visible without leaving the screen.
func (a *App) renderErrorPanel() string {
	lines := a.errlog.Tail(errorPanelLines)
	if len(lines) == 0 {
		return ""
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		Render("ERRORS · " + a.config.Project.Files.Errors)
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(fmt.Sprintf("%s\n%s", head, body))
}
