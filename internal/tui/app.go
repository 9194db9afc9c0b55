package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"aurum-cli/internal/metrics"
	"aurum-cli/internal/model"
	"aurum-cli/internal/mutate"
	"aurum-cli/internal/nav"
	"aurum-cli/internal/store"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type view int

const (
	viewPillars view = iota
	viewAreas
	viewProjects
	viewTasks
)

type reloadTickMsg struct{}

type appModel struct {
	dir       string
	workspace string
	store     store.Store
	db        *store.DB

	width  int
	height int

	view view

	pillarsList  list.Model
	areasList    list.Model
	projectsList list.Model
	tasksList    list.Model

	lastStoreModTime time.Time
}

func newAppModel(dir string, db *store.DB, workspace string) appModel {
	s := store.Store{Dir: dir}
	m := appModel{
		dir:       dir,
		workspace: workspace,
		store:     s,
		db:        db,
		view:      viewPillars,
	}

	m.pillarsList = newList("Pillars", []list.Item{})
	m.areasList = newList("Areas", []list.Item{})
	m.projectsList = newList("Projects", []list.Item{})
	m.tasksList = newList("Tasks", []list.Item{})

	// Resume where the last session (or CLI `aurum nav to`) left off.
	ctx := nav.Resolve(db)
	switch nav.ContextLevel(ctx) {
	case nav.LevelProject:
		m.view = viewTasks
	case nav.LevelArea:
		m.view = viewProjects
	case nav.LevelPillar:
		m.view = viewAreas
	}
	m.db.Context = ctx

	m.refreshAll()
	m.captureStoreModTime()
	return m
}

func (m appModel) Init() tea.Cmd { return tickReload() }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case reloadTickMsg:
		if m.storeChanged() {
			_ = m.reloadFromDisk()
		}
		return m, tickReload()

	case tea.KeyMsg:
		// Don't treat keys as commands while the list filter input is open.
		if m.activeList().FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			// Reload from disk (CLI commands in another terminal are reflected).
			_ = m.reloadFromDisk()
			return m, nil
		case "esc", "backspace":
			if m.back() {
				return m, nil
			}
		case "enter":
			if m.drill() {
				return m, nil
			}
		case " ":
			if m.view == viewTasks {
				m.toggleSelectedTask()
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.view {
	case viewPillars:
		m.pillarsList, cmd = m.pillarsList.Update(msg)
	case viewAreas:
		m.areasList, cmd = m.areasList.Update(msg)
	case viewProjects:
		m.projectsList, cmd = m.projectsList.Update(msg)
	case viewTasks:
		m.tasksList, cmd = m.tasksList.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	title := "Aurum"
	if m.workspace != "" {
		title += "  [" + m.workspace + "]"
	}
	header := headerStyle.Render(title) + "  " + breadcrumbStyle.Render(m.breadcrumbLine())

	var body string
	switch m.view {
	case viewPillars:
		body = m.pillarsList.View()
	case viewAreas:
		body = m.areasList.View()
	case viewProjects:
		body = m.projectsList.View()
	case viewTasks:
		body = m.viewTasks()
	}

	help := "enter: drill in  esc: back  space: toggle done  r: reload  /: filter  q: quit"
	footer := footerStyle.Render(truncateLine(help, m.width))
	return strings.Join([]string{header, body, footer}, "\n\n")
}

func (m *appModel) breadcrumbLine() string {
	crumbs := nav.Breadcrumb(m.db)
	if len(crumbs) == 0 {
		return "all pillars"
	}
	parts := make([]string, 0, len(crumbs))
	for _, c := range crumbs {
		parts = append(parts, c.Name)
	}
	return strings.Join(parts, " › ")
}

// drill descends one level from the selected row. Returns false when the
// key should fall through to the list.
func (m *appModel) drill() bool {
	switch m.view {
	case viewPillars:
		it, ok := m.pillarsList.SelectedItem().(pillarItem)
		if !ok {
			return false
		}
		if err := nav.ToPillar(m.db, it.pillar.ID); err != nil {
			return false
		}
		_ = m.store.Save(m.db)
		m.view = viewAreas
		m.refreshAreas()
		return true
	case viewAreas:
		it, ok := m.areasList.SelectedItem().(areaItem)
		if !ok {
			return false
		}
		if err := nav.ToArea(m.db, it.area.ID); err != nil {
			return false
		}
		_ = m.store.Save(m.db)
		m.view = viewProjects
		m.refreshProjects()
		return true
	case viewProjects:
		it, ok := m.projectsList.SelectedItem().(projectItem)
		if !ok {
			return false
		}
		if err := nav.ToProject(m.db, it.project.ID); err != nil {
			return false
		}
		_ = m.store.Save(m.db)
		m.view = viewTasks
		m.refreshTasks()
		return true
	}
	return false
}

// back ascends one level, trimming the persisted context with it.
func (m *appModel) back() bool {
	switch m.view {
	case viewTasks:
		m.db.Context.ProjectID = ""
		_ = m.store.Save(m.db)
		m.view = viewProjects
		m.refreshProjects()
		return true
	case viewProjects:
		m.db.Context.AreaID = ""
		_ = m.store.Save(m.db)
		m.view = viewAreas
		m.refreshAreas()
		return true
	case viewAreas:
		nav.Reset(m.db)
		_ = m.store.Save(m.db)
		m.view = viewPillars
		m.refreshPillars()
		return true
	}
	return false
}

func (m *appModel) toggleSelectedTask() {
	it, ok := m.tasksList.SelectedItem().(taskItem)
	if !ok {
		return
	}
	next := model.TaskCompleted
	if it.task.Status == model.TaskCompleted {
		next = model.TaskTodo
	}
	res, err := mutate.SetTaskStatus(m.db, it.task.ID, next)
	if err != nil || !res.Changed {
		return
	}
	_ = m.store.Save(m.db)
	_ = m.store.AppendEvent("task.set_status", res.Task.ID, res.EventPayload)
	m.refreshTasks()
}

func (m *appModel) activeList() *list.Model {
	switch m.view {
	case viewAreas:
		return &m.areasList
	case viewProjects:
		return &m.projectsList
	case viewTasks:
		return &m.tasksList
	default:
		return &m.pillarsList
	}
}

func (m *appModel) refreshAll() {
	m.refreshPillars()
	m.refreshAreas()
	m.refreshProjects()
	m.refreshTasks()
}

func (m *appModel) refreshPillars() {
	var items []list.Item
	for _, p := range m.db.Pillars {
		pm, _ := metrics.GetPillarMetrics(m.db, p.ID)
		items = append(items, pillarItem{pillar: p, metrics: pm})
	}
	m.pillarsList.SetItems(items)
	selectListItemByID(&m.pillarsList, m.db.Context.PillarID)
}

func (m *appModel) refreshAreas() {
	var items []list.Item
	for _, a := range m.db.AreasOf(m.db.Context.PillarID) {
		items = append(items, areaItem{area: a, health: metrics.AreaHealth(m.db, a.ID)})
	}
	m.areasList.SetItems(items)
	selectListItemByID(&m.areasList, m.db.Context.AreaID)
}

func (m *appModel) refreshProjects() {
	var items []list.Item
	for _, p := range m.db.ProjectsOf(m.db.Context.AreaID) {
		items = append(items, projectItem{project: p, progress: metrics.ProjectProgress(m.db, p.ID)})
	}
	m.projectsList.SetItems(items)
	selectListItemByID(&m.projectsList, m.db.Context.ProjectID)
}

func (m *appModel) refreshTasks() {
	curID := ""
	if it, ok := m.tasksList.SelectedItem().(taskItem); ok {
		curID = it.task.ID
	}
	var items []list.Item
	for _, t := range m.db.TasksOf(m.db.Context.ProjectID) {
		items = append(items, taskItem{task: t})
	}
	m.tasksList.SetItems(items)
	selectListItemByID(&m.tasksList, curID)
}

func (m *appModel) viewTasks() string {
	bodyHeight := m.height - 6
	if bodyHeight < 8 {
		bodyHeight = 8
	}
	leftWidth := m.width / 2
	if leftWidth < 40 {
		leftWidth = 40
	}
	rightWidth := m.width - leftWidth - 2
	if rightWidth < 30 {
		rightWidth = 30
	}

	m.tasksList.SetSize(leftWidth, bodyHeight)
	left := m.tasksList.View()

	var detail string
	if it, ok := m.tasksList.SelectedItem().(taskItem); ok {
		detail = renderTaskDetail(m.db, it.task, rightWidth, bodyHeight)
	} else {
		detail = lipgloss.NewStyle().Width(rightWidth).Height(bodyHeight).Render("No task selected.")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, left, detail)
}

func renderTaskDetail(db *store.DB, t model.Task, width, height int) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(t.Name))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("status: %s   priority: %s\n", t.Status, t.Priority))
	if t.DueDate != nil {
		b.WriteString(metaDueStyle.Render("due: "+t.DueDate.Format("2006-01-02")) + "\n")
	}
	if t.CompletedAt != nil {
		b.WriteString(metaDoneStyle.Render("completed: "+t.CompletedAt.Format("2006-01-02")) + "\n")
	}
	if len(t.Tags) > 0 {
		b.WriteString("tags: " + strings.Join(t.Tags, ", ") + "\n")
	}
	if t.EstimatedHours > 0 {
		b.WriteString(fmt.Sprintf("estimate: %.1fh\n", t.EstimatedHours))
	}
	if desc := strings.TrimSpace(t.Description); desc != "" {
		b.WriteString("\n")
		b.WriteString(renderMarkdown(desc, width-2))
	}
	return lipgloss.NewStyle().Width(width).Height(height).Render(b.String())
}

func (m *appModel) resizeLists() {
	// Leave room for header/footer.
	h := m.height - 6
	if h < 8 {
		h = 8
	}
	w := m.width
	if w < 40 {
		w = 40
	}
	m.pillarsList.SetSize(w, h)
	m.areasList.SetSize(w, h)
	m.projectsList.SetSize(w, h)
	// Tasks view is split.
	m.tasksList.SetSize(w/2, h)
}

func tickReload() tea.Cmd {
	return tea.Tick(750*time.Millisecond, func(time.Time) tea.Msg { return reloadTickMsg{} })
}

func (m *appModel) storePath() string {
	return m.store.StatePath()
}

func (m *appModel) captureStoreModTime() {
	m.lastStoreModTime = fileModTime(m.storePath())
}

func (m *appModel) storeChanged() bool {
	return fileModTime(m.storePath()).After(m.lastStoreModTime)
}

func fileModTime(path string) time.Time {
	st, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return st.ModTime()
}

func (m *appModel) reloadFromDisk() error {
	db, err := m.store.Load()
	if err != nil {
		return err
	}
	m.db = db
	m.db.Context = nav.Resolve(db)
	m.captureStoreModTime()

	// A reload can invalidate the level we were on (e.g. the selected
	// project was deleted from another terminal).
	switch nav.ContextLevel(m.db.Context) {
	case nav.LevelNone:
		m.view = viewPillars
	case nav.LevelPillar:
		if m.view > viewAreas {
			m.view = viewAreas
		}
	case nav.LevelArea:
		if m.view > viewProjects {
			m.view = viewProjects
		}
	}
	m.refreshAll()
	return nil
}

func selectListItemByID(l *list.Model, id string) {
	if id == "" {
		return
	}
	for i, item := range l.Items() {
		switch it := item.(type) {
		case pillarItem:
			if it.pillar.ID == id {
				l.Select(i)
				return
			}
		case areaItem:
			if it.area.ID == id {
				l.Select(i)
				return
			}
		case projectItem:
			if it.project.ID == id {
				l.Select(i)
				return
			}
		case taskItem:
			if it.task.ID == id {
				l.Select(i)
				return
			}
		}
	}
}
