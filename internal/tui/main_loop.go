package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/avoronov/go-cv-builder/internal/adapter"
	"github.com/avoronov/go-cv-builder/internal/service"
	"github.com/avoronov/go-cv-builder/models"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type uiMode int

const (
	modeList uiMode = iota
	modeWizard
	modeLetter
	modeAnalysis
)

type mainLoopModel struct {
	ctx      context.Context
	services *service.ClientServices
	ai       adapter.AIAdapter
	shareURL string

	mode   uiMode
	logout bool

	docs      []models.Document
	idx       int
	syncing   bool
	importing bool
	spinner   spinner.Model
	status    string
	errMsg    string

	wizard wizardState
	letter letterState

	analysis  models.Analysis
	analyzing bool
}

func newMainLoopModel(ctx context.Context, services *service.ClientServices, ai adapter.AIAdapter, shareURL string) mainLoopModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	m := mainLoopModel{
		ctx:      ctx,
		services: services,
		ai:       ai,
		shareURL: shareURL,
		spinner:  s,
	}
	m.reloadList()
	return m
}

// reloadList rebuilds the visible list from the document store: CVs first,
// then cover letters.
func (m *mainLoopModel) reloadList() {
	store := m.services.DocumentStore
	m.docs = append(store.Documents(models.KindCV), store.Documents(models.KindCoverLetter)...)
	if m.idx >= len(m.docs) {
		m.idx = len(m.docs) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m mainLoopModel) current() (models.Document, bool) {
	if len(m.docs) == 0 || m.idx < 0 || m.idx >= len(m.docs) {
		return models.Document{}, false
	}
	return m.docs[m.idx], true
}

func (m mainLoopModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdWaitNotice())
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case storeNoticeMsg:
		m.errMsg = msg.text
		return m, m.cmdWaitNotice()

	case syncDoneMsg:
		m.syncing = false
		if msg.err != nil {
			m.errMsg = humanizeServerUnavailableError(msg.err)
		} else {
			m.status = "Синхронизация завершена"
			m.errMsg = ""
		}
		m.reloadList()
		return m, nil

	case persistDoneMsg:
		if msg.err != nil {
			m.errMsg = humanizeServerUnavailableError(msg.err)
		} else {
			m.status = "Сохранено на сервере"
		}
		return m, nil

	case documentCreatedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.reloadList()
		return m, nil

	case documentImportedMsg:
		m.importing = false
		if msg.err != nil {
			m.errMsg = "Ошибка импорта: " + humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.status = "Резюме импортировано"
		m.errMsg = ""
		m.reloadList()
		return m, nil

	case documentDeletedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		} else {
			m.status = "Документ удалён"
		}
		m.reloadList()
		return m, nil

	case aiAnalysisDoneMsg:
		m.analyzing = false
		if msg.err != nil {
			m.errMsg = "Ошибка анализа: " + humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.analysis = msg.analysis
		m.mode = modeAnalysis
		return m, nil
	}

	switch m.mode {
	case modeWizard:
		return m.updateWizard(msg)
	case modeLetter:
		return m.updateLetter(msg)
	case modeAnalysis:
		return m.updateAnalysis(msg)
	default:
		return m.updateList(msg)
	}
}

func (m mainLoopModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
	case "down", "j":
		if m.idx < len(m.docs)-1 {
			m.idx++
		}
	case "n":
		return m, m.cmdCreate(models.KindCV, "Новое резюме")
	case "m":
		return m, m.cmdCreate(models.KindCoverLetter, "Новое сопроводительное письмо")
	case "i":
		if m.importing {
			return m, nil
		}
		text, err := clipboard.ReadAll()
		if err != nil {
			m.errMsg = fmt.Sprintf("Ошибка чтения буфера обмена: %v", err)
			return m, nil
		}
		if strings.TrimSpace(text) == "" {
			m.status = "Скопируйте текст резюме в буфер обмена и нажмите i"
			return m, nil
		}
		m.importing = true
		m.status = "Импорт резюме из буфера обмена..."
		m.errMsg = ""
		return m, m.cmdImport(text)
	case "enter":
		doc, ok := m.current()
		if !ok {
			m.status = "Нет документов"
			return m, nil
		}
		m.services.DocumentStore.LoadDocument(m.ctx, doc.ID)
		if doc.Kind == models.KindCV {
			m.openWizard(doc.ID)
			m.mode = modeWizard
		} else {
			m.openLetter(doc.ID)
			m.mode = modeLetter
		}
		return m, nil
	case "ctrl+d":
		doc, ok := m.current()
		if !ok {
			m.status = "Нет документов"
			return m, nil
		}
		return m, m.cmdDelete(doc.ID)
	case "s":
		if m.syncing {
			return m, nil
		}
		m.syncing = true
		m.status = "Синхронизация..."
		m.errMsg = ""
		return m, m.cmdSync()
	case "p":
		doc, ok := m.current()
		if !ok || doc.Kind != models.KindCV {
			m.status = "Публикация доступна только для резюме"
			return m, nil
		}
		if err := m.services.DocumentStore.ToggleVisibility(m.ctx, doc.ID); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.reloadList()
		if doc.Public {
			m.status = "Ссылка на резюме закрыта"
		} else {
			m.status = "Резюме опубликовано"
		}
	case "c":
		doc, ok := m.current()
		if !ok || doc.Kind != models.KindCV {
			m.status = "Нечего копировать"
			return m, nil
		}
		if !doc.Public {
			m.status = "Сначала опубликуйте резюме (p)"
			return m, nil
		}
		if err := clipboard.WriteAll(m.shareLink(doc.ID)); err != nil {
			m.errMsg = fmt.Sprintf("Ошибка копирования: %v", err)
			return m, nil
		}
		m.status = "Ссылка скопирована"
	case "v":
		doc, ok := m.current()
		if !ok || doc.Kind != models.KindCV {
			return m, nil
		}
		if err := m.services.DocumentStore.IncrementViewCounter(m.ctx, doc.ID); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.reloadList()
	case "l":
		m.logout = true
		return m, tea.Quit
	case "q":
		return m, tea.Quit
	}

	return m, nil
}

func (m mainLoopModel) View() string {
	switch m.mode {
	case modeWizard:
		return m.viewWizard()
	case modeLetter:
		return m.viewLetter()
	case modeAnalysis:
		return m.viewAnalysis()
	default:
		return m.viewList()
	}
}

func (m mainLoopModel) viewList() string {
	var b strings.Builder

	if m.syncing || m.importing {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
	}

	if len(m.docs) == 0 {
		b.WriteString("Нет документов\n")
	} else {
		for i, doc := range m.docs {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			icon := "[CV]"
			if doc.Kind == models.KindCoverLetter {
				icon = "[П] "
			}
			line := fmt.Sprintf("%s%s %s", cursor, icon, fitText(doc.Title, 40))
			if doc.Kind == models.KindCV {
				if doc.Public {
					line += fmt.Sprintf("  (публичное, %d просм.)", doc.Views)
				}
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorLine(m.errMsg))
		b.WriteString("\n")
	}

	hotKeys := "n: новое резюме │ m: новое письмо │ i: импорт │ enter: открыть │ ctrl+d: удалить │ s: синхр. │ p: публикация │ c: ссылка │ l: перелогин"
	return renderPage("МОИ ДОКУМЕНТЫ", strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (m mainLoopModel) shareLink(id string) string {
	base := strings.TrimRight(m.shareURL, "/")
	return base + "/cv/" + id
}

// cmdWaitNotice blocks on the document store's toast stream and converts the
// next notification into a message. Re-armed after every delivery.
func (m mainLoopModel) cmdWaitNotice() tea.Cmd {
	ch := m.services.DocumentStore.Notifications()
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return storeNoticeMsg{text: n.Text}
	}
}

func (m mainLoopModel) cmdSync() tea.Cmd {
	ctx := m.ctx
	svc := m.services.SyncService

	return func() tea.Msg {
		err := svc.FullSync(ctx)
		return syncDoneMsg{err: err}
	}
}

func (m mainLoopModel) cmdCreate(kind models.DocumentKind, title string) tea.Cmd {
	ctx := m.ctx
	store := m.services.DocumentStore

	return func() tea.Msg {
		id, err := store.CreateDocument(ctx, kind, title, "")
		return documentCreatedMsg{id: id, err: err}
	}
}

func (m mainLoopModel) cmdDelete(id string) tea.Cmd {
	ctx := m.ctx
	store := m.services.DocumentStore

	return func() tea.Msg {
		err := store.DeleteDocument(ctx, id)
		return documentDeletedMsg{err: err}
	}
}

func (m mainLoopModel) cmdPersist(kind models.DocumentKind) tea.Cmd {
	ctx := m.ctx
	store := m.services.DocumentStore

	return func() tea.Msg {
		err := store.PersistCurrent(ctx, kind)
		return persistDoneMsg{err: err}
	}
}

// cmdImport runs the AI extraction on pasted resume text and seeds a new
// document from the result. Item identifiers come from the store, not the
// model answer.
func (m mainLoopModel) cmdImport(text string) tea.Cmd {
	ctx := m.ctx
	ai := m.ai
	store := m.services.DocumentStore

	return func() tea.Msg {
		content, err := ai.ExtractCV(ctx, text)
		if err != nil {
			return documentImportedMsg{err: err}
		}

		title := "Импортированное резюме"
		if content.PersonalInfo.FirstName != "" || content.PersonalInfo.LastName != "" {
			title = strings.TrimSpace(content.PersonalInfo.FirstName + " " + content.PersonalInfo.LastName)
		}

		id, err := store.CreateFromImport(ctx, models.Document{
			Kind:  models.KindCV,
			Title: title,
			CV:    &content,
		})
		return documentImportedMsg{id: id, err: err}
	}
}

func (m mainLoopModel) cmdAnalyze() tea.Cmd {
	ctx := m.ctx
	ai := m.ai
	doc := m.services.DocumentStore.Current(models.KindCV)

	return func() tea.Msg {
		if doc == nil || doc.CV == nil {
			return aiAnalysisDoneMsg{err: fmt.Errorf("нет текущего резюме")}
		}
		analysis, err := ai.AnalyzeCV(ctx, *doc.CV)
		return aiAnalysisDoneMsg{analysis: analysis, err: err}
	}
}
