// internal/tui/app.go
//
// This is the operator console for the quality-control line.
// It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The console is the only caller of the station: it collects operator input,
// normalizes it, invokes one station operation per request and renders the
// result.

package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kingrea/qcline/internal/config"
	"github.com/kingrea/qcline/internal/logbook"
	"github.com/kingrea/qcline/internal/logging"
	"github.com/kingrea/qcline/internal/metrics"
	"github.com/kingrea/qcline/internal/packing"
	"github.com/kingrea/qcline/internal/registry"
	"github.com/kingrea/qcline/internal/station"
)

// appState represents which "screen" we're on
type appState int

const (
	stateMainMenu   appState = iota // Main menu with the six actions
	stateRegister                   // Register part form
	stateRemove                     // Remove part form
	stateListParts                  // Accepted / rejected listing
	stateListBoxes                  // Sealed boxes listing
	stateReport                     // Shift report
)

// Menu actions in display order. The hotkey for each is its 1-based position.
const (
	actionRegister = "Register part"
	actionList     = "List parts"
	actionRemove   = "Remove part"
	actionBoxes    = "List sealed boxes"
	actionReport   = "Generate report"
	actionExit     = "Exit"
)

type statusLevel int

const (
	statusInfo statusLevel = iota
	statusWarn
	statusError
)

type statusLine struct {
	text  string
	level statusLevel
}

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithStation replaces the station built from the project configuration.
func WithStation(st *station.Station) AppOption {
	return func(a *App) {
		if st != nil {
			a.station = st
		}
	}
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	state   appState
	config  *config.Config
	station *station.Station
	session string

	logger  *zap.Logger
	logbook *logbook.Logbook
	metrics *metrics.Metrics

	// UI components
	mainMenu list.Model
	form     *partForm
	status   []statusLine

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

// NewApp creates a new App instance for the given working directory.
func NewApp(projectDir string, opts ...AppOption) (*App, error) {
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return nil, err
	}
	session := uuid.NewString()
	logger, err := logging.New(cfg, session)
	if err != nil {
		return nil, err
	}
	lb, err := logbook.New(cfg.JournalPath(), cfg.Operator())
	if err != nil {
		logger.Warn("journal unavailable", zap.Error(err))
		lb = nil
	}
	m := metrics.New(cfg.StationName())

	mainMenu := list.New(buildMainMenu(), list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "⬡ QUALITY CONTROL"
	mainMenu.SetShowStatusBar(false)
	mainMenu.SetFilteringEnabled(false)
	mainMenu.KeyMap.Quit.SetEnabled(false)

	app := &App{
		state:    stateMainMenu,
		config:   cfg,
		session:  session,
		logger:   logger,
		logbook:  lb,
		metrics:  m,
		mainMenu: mainMenu,
	}
	app.station = station.New(
		station.WithLogger(logger),
		station.WithJournal(lb),
		station.WithMetrics(m),
	)
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	logger.Info("session opened", zap.String("operator", cfg.Operator()))
	app.logInfo("Session opened · station %s", cfg.StationName())
	return app, nil
}

// Close flushes the logs and writes the metrics export when enabled.
func (a *App) Close() error {
	var errs []error
	a.logInfo("Session closed")
	if a.config != nil && a.config.MetricsEnabled() {
		path := a.config.MetricsTextfile()
		if err := a.metrics.WriteTextfile(path); err != nil {
			errs = append(errs, err)
		} else {
			a.logger.Info("metrics written", zap.String("path", path))
		}
	}
	a.logger.Info("session closed")
	_ = a.logger.Sync()
	return errors.Join(errs...)
}

// Station returns the station driven by this console.
func (a *App) Station() *station.Station {
	return a.station
}

// AltScreen reports whether the console should take over the terminal.
func (a *App) AltScreen() bool {
	return a.config != nil && a.config.AltScreen()
}

// buildMainMenu creates the six menu items.
func buildMainMenu() []list.Item {
	return []list.Item{
		menuItem{title: actionRegister, desc: "Measure, classify and pack a new part"},
		menuItem{title: actionList, desc: "Accepted and rejected parts"},
		menuItem{title: actionRemove, desc: "Delete a registered part"},
		menuItem{title: actionBoxes, desc: "Contents of every full box"},
		menuItem{title: actionReport, desc: "Totals, rejection reasons and logistics"},
		menuItem{title: actionExit, desc: "Close the console"},
	}
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

func (a *App) setStatus(level statusLevel, lines ...string) {
	a.status = a.status[:0]
	for _, line := range lines {
		a.status = append(a.status, statusLine{text: line, level: level})
	}
}

func (a *App) addStatus(level statusLevel, line string) {
	a.status = append(a.status, statusLine{text: line, level: level})
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
		a.mainMenu.SetSize(max(0, msg.Width-6), max(0, msg.Height-10))
		return a, nil

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.state {
		case stateMainMenu:
			return a.handleMainMenuKey(msg)
		case stateRegister:
			return a.handleRegisterKey(msg)
		case stateRemove:
			return a.handleRemoveKey(msg)
		case stateListParts, stateListBoxes, stateReport:
			switch key {
			case "esc", "enter", "q":
				return a.returnToMainMenu()
			}
			return a, nil
		}
	}

	if a.state == stateMainMenu {
		var cmd tea.Cmd
		a.mainMenu, cmd = a.mainMenu.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleMainMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch {
	case key == "q":
		return a.selectAction(actionExit)
	case key == "enter":
		item, ok := a.mainMenu.SelectedItem().(menuItem)
		if !ok {
			return a, nil
		}
		return a.selectAction(item.title)
	case len(key) == 1 && key[0] >= '0' && key[0] <= '9':
		items := a.mainMenu.Items()
		idx := int(key[0] - '1')
		if idx < 0 || idx >= len(items) {
			a.setStatus(statusError, fmt.Sprintf("Invalid option %q. Choose 1 to %d.", key, len(items)))
			return a, nil
		}
		a.mainMenu.Select(idx)
		return a.selectAction(items[idx].(menuItem).title)
	}
	var cmd tea.Cmd
	a.mainMenu, cmd = a.mainMenu.Update(msg)
	return a, cmd
}

// selectAction processes menu item selection
func (a *App) selectAction(title string) (tea.Model, tea.Cmd) {
	a.status = nil
	switch title {
	case actionRegister:
		a.state = stateRegister
		a.form = newRegisterForm()
		return a, a.form.focusCmd()
	case actionList:
		a.state = stateListParts
	case actionRemove:
		a.state = stateRemove
		a.form = newRemoveForm()
		return a, a.form.focusCmd()
	case actionBoxes:
		a.state = stateListBoxes
	case actionReport:
		a.state = stateReport
		data := a.station.Report()
		a.logInfo("Report generated · %d accepted · %d rejected · %d boxes", data.TotalAccepted, data.TotalRejected, data.BoxesUsed)
	case actionExit:
		a.logger.Info("exit selected")
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) returnToMainMenu() (tea.Model, tea.Cmd) {
	a.state = stateMainMenu
	a.form = nil
	return a, nil
}

func (a *App) handleRegisterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.setStatus(statusInfo, "Registration cancelled.")
		return a.returnToMainMenu()
	case "enter":
		return a.submitRegisterField()
	}
	return a, a.form.update(msg)
}

func (a *App) submitRegisterField() (tea.Model, tea.Cmd) {
	f := a.form
	field := f.current()
	raw := strings.TrimSpace(field.input.Value())

	switch f.focus {
	case fieldID:
		id := registry.NormalizeID(raw)
		if id == "" {
			a.setStatus(statusError, "Invalid ID.")
			return a.returnToMainMenu()
		}
		if _, err := a.station.Get(id); err == nil {
			a.setStatus(statusError, fmt.Sprintf("ERROR: part %q is already registered.", id))
			return a.returnToMainMenu()
		}
		f.id = id
	case fieldWeight, fieldLength:
		value, err := parseMeasurement(raw)
		if err != nil {
			field.err = "Invalid value. Enter a number."
			field.input.Reset()
			return a, nil
		}
		if f.focus == fieldWeight {
			f.weight = value
		} else {
			f.length = value
		}
	case fieldColor:
		f.color = raw
	}
	field.err = ""

	if !f.last() {
		return a, f.next()
	}

	reg, err := a.station.Register(f.id, f.weight, f.color, f.length)
	if err != nil {
		a.setStatus(statusError, registrationError(f.id, err))
		return a.returnToMainMenu()
	}
	a.showRegistration(reg)
	return a.returnToMainMenu()
}

func (a *App) showRegistration(reg station.Registration) {
	part := reg.Part
	if part.Accepted {
		a.setStatus(statusInfo, fmt.Sprintf("➡ RESULT: part %s ACCEPTED.", part.ID))
		if reg.Sealed != nil {
			a.addStatus(statusInfo, fmt.Sprintf("*** 📦 BOX %d SEALED (full) ***", reg.Sealed.Number))
		}
		return
	}
	a.setStatus(statusWarn, fmt.Sprintf("➡ RESULT: part %s REJECTED. (Reasons: %s)", part.ID, reasonList(part.Reasons)))
}

func registrationError(id string, err error) string {
	switch {
	case errors.Is(err, registry.ErrDuplicateID):
		return fmt.Sprintf("ERROR: part %q is already registered.", id)
	case errors.Is(err, station.ErrInvalidID):
		return "Invalid ID."
	default:
		return fmt.Sprintf("ERROR: %v", err)
	}
}

func (a *App) handleRemoveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.setStatus(statusInfo, "Removal cancelled.")
		return a.returnToMainMenu()
	case "enter":
		return a.submitRemove()
	}
	return a, a.form.update(msg)
}

func (a *App) submitRemove() (tea.Model, tea.Cmd) {
	id := registry.NormalizeID(a.form.current().input.Value())
	res, err := a.station.Remove(id)
	switch {
	case errors.Is(err, registry.ErrNotFound), errors.Is(err, station.ErrInvalidID):
		a.setStatus(statusError, fmt.Sprintf("ERROR: part %q not found.", id))
		return a.returnToMainMenu()
	case err != nil:
		a.setStatus(statusError, fmt.Sprintf("ERROR: %v", err))
		return a.returnToMainMenu()
	}

	a.setStatus(statusInfo, fmt.Sprintf("Part %q removed.", res.Part.ID))
	switch res.Packing.Status {
	case packing.RemovedFromOpenBox:
		a.addStatus(statusInfo, "The part was also taken out of the current box.")
	case packing.HistoricalBoxAffected:
		a.addStatus(statusWarn, fmt.Sprintf("WARNING: this part was already in sealed box %d (historical box).", res.Packing.BoxNumber))
		a.addStatus(statusWarn, "The removal affects the report but the sealed box keeps its record.")
	}
	return a.returnToMainMenu()
}

// View renders the current screen inside the station board.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}
	rightWidth := max(32, width/3)
	leftWidth := width - rightWidth - 4
	if leftWidth < 40 {
		leftWidth = width - 4
		rightWidth = 0
	}
	if a.state == stateMainMenu {
		a.mainMenu.SetSize(max(20, leftWidth-4), max(14, a.height-12))
	}
	var content string
	switch a.state {
	case stateMainMenu:
		content = a.mainMenu.View()
	case stateRegister:
		content = a.form.view("Register part")
	case stateRemove:
		content = a.form.view("Remove part")
	case stateListParts:
		accepted, rejected := a.station.Parts()
		content = withReturnHint(renderParts(accepted, rejected))
	case stateListBoxes:
		content = withReturnHint(renderSealedBoxes(a.station.SealedBoxes()))
	case stateReport:
		content = withReturnHint(renderReport(a.station.Report()))
	}
	return a.renderStatusBoard(content, leftWidth, rightWidth)
}

func (a *App) renderLogPanel(width int) string {
	if a.logbook == nil {
		return ""
	}
	tail := 8
	if a.config != nil {
		tail = a.config.LogTail()
	}
	lines, total := a.logbook.Tail(tail)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := panelTitleStyle.Render(fmt.Sprintf("JOURNAL · %s · %d entries", fileName, total))
	body := mutedStyle.Width(max(20, width)).Render(strings.Join(lines, "\n"))
	return fmt.Sprintf("%s\n%s", head, body)
}

func (a *App) renderBoxGauge() string {
	size, capacity := a.station.OpenBoxSize(), a.station.Capacity()
	bar := strings.Repeat("■", size) + strings.Repeat("·", capacity-size)
	return fmt.Sprintf("Parts in current box: %d/%d  %s", size, capacity, bar)
}

func (a *App) renderStatusBoard(mainContent string, leftWidth, rightWidth int) string {
	title := "⬡ QC LINE · " + a.stationName()
	header := headerStyle.Render(title)
	left := lipgloss.JoinVertical(lipgloss.Left,
		a.renderBoxGauge(),
		"",
		lipgloss.NewStyle().Width(max(20, leftWidth-4)).Render(mainContent),
	)
	leftBox := panelStyle.Width(max(20, leftWidth)).Render(left)
	body := leftBox
	if rightWidth > 0 {
		if logPanel := a.renderLogPanel(rightWidth - 4); logPanel != "" {
			rightBox := panelStyle.Width(max(20, rightWidth)).Render(logPanel)
			body = lipgloss.JoinHorizontal(lipgloss.Top, leftBox, rightBox)
		}
	}
	sections := []string{header, body}
	if status := a.renderStatus(); status != "" {
		sections = append(sections, status)
	}
	sections = append(sections, footerStyle.Render(a.keyHints()))
	return strings.Join(sections, "\n")
}

func (a *App) renderStatus() string {
	if len(a.status) == 0 {
		return ""
	}
	lines := make([]string, len(a.status))
	for i, s := range a.status {
		lines[i] = statusStyle(s.level).Render(s.text)
	}
	return strings.Join(lines, "\n")
}

func (a *App) keyHints() string {
	switch a.state {
	case stateRegister, stateRemove:
		return "enter=confirm field  esc=cancel"
	case stateListParts, stateListBoxes, stateReport:
		return "enter/esc=back to menu"
	default:
		return "1-6=choose  ↑/↓=move  enter=select  q=exit"
	}
}

func (a *App) stationName() string {
	if a.config == nil {
		return "station"
	}
	name := a.config.StationName()
	if op := a.config.Operator(); op != "" {
		name += " · " + op
	}
	return name
}

func withReturnHint(content string) string {
	return content + "\n\n" + hintStyle.Render("Press ENTER to return to the menu...")
}
