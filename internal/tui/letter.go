package tui

import (
	"fmt"
	"strings"

	"github.com/avoronov/go-cv-builder/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// letterState is the transient editor state of the cover-letter screen. The
// last input is the free-text job description fed to the AI generator; it is
// not part of the persisted letter.
type letterState struct {
	docID string

	labels []string
	inputs []textinput.Model
	focus  int

	generating bool
}

var letterFieldLabels = []string{
	"Получатель",
	"Компания",
	"Вакансия",
	"Приветствие",
	"Вступление",
	"Основная часть",
	"Заключение",
	"Подпись",
	"Описание вакансии (AI)",
}

func (m *mainLoopModel) openLetter(docID string) {
	doc := m.services.DocumentStore.Current(models.KindCoverLetter)

	var letter models.LetterContent
	if doc != nil && doc.Letter != nil {
		letter = *doc.Letter
	}

	labels, inputs := newForm(letterFieldLabels, []string{
		letter.Recipient,
		letter.Company,
		letter.JobTitle,
		letter.Greeting,
		letter.Intro,
		letter.Body,
		letter.Conclusion,
		letter.Signature,
		"",
	})

	m.letter = letterState{
		docID:  docID,
		labels: labels,
		inputs: inputs,
	}
}

func (m mainLoopModel) updateLetter(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case aiLetterDoneMsg:
		m.letter.generating = false
		if msg.err != nil {
			m.errMsg = "Ошибка генерации: " + humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.applyGeneratedLetter(msg.letter)
		m.status = "Письмо сгенерировано, проверьте текст"
		return m, nil

	case aiTransformDoneMsg:
		m.letter.generating = false
		if msg.err != nil {
			m.errMsg = "Ошибка AI: " + humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		if m.letter.focus < len(m.letter.inputs) {
			m.letter.inputs[m.letter.focus].SetValue(msg.result)
			m.status = "Текст обновлён AI"
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		m.saveLetter()
		m.mode = modeList
		m.reloadList()
		return m, m.cmdPersist(models.KindCoverLetter)
	case "tab":
		m.letterFocusNext()
		return m, nil
	case "shift+tab":
		m.letterFocusPrev()
		return m, nil
	case "ctrl+s":
		m.saveLetter()
		m.status = "Письмо сохранено"
		return m, m.cmdPersist(models.KindCoverLetter)
	case "ctrl+g":
		return m.startGenerateLetter()
	case "ctrl+i":
		return m.startLetterImprove(models.AIImprove)
	case "ctrl+f":
		return m.startLetterImprove(models.AIFix)
	}

	var cmd tea.Cmd
	m.letter.inputs[m.letter.focus], cmd = m.letter.inputs[m.letter.focus].Update(keyMsg)
	return m, cmd
}

// saveLetter commits the form fields to the document store as one shallow
// merge.
func (m *mainLoopModel) saveLetter() {
	val := func(i int) string { return strings.TrimSpace(m.letter.inputs[i].Value()) }

	patch := models.LetterContent{
		Recipient:  val(0),
		Company:    val(1),
		JobTitle:   val(2),
		Greeting:   val(3),
		Intro:      val(4),
		Body:       val(5),
		Conclusion: val(6),
		Signature:  val(7),
	}

	if err := m.services.DocumentStore.UpdateLetter(m.ctx, patch); err != nil {
		m.errMsg = err.Error()
	}
}

func (m *mainLoopModel) applyGeneratedLetter(letter models.LetterContent) {
	set := func(i int, v string) {
		if v != "" {
			m.letter.inputs[i].SetValue(v)
		}
	}
	set(0, letter.Recipient)
	set(1, letter.Company)
	set(2, letter.JobTitle)
	set(3, letter.Greeting)
	set(4, letter.Intro)
	set(5, letter.Body)
	set(6, letter.Conclusion)
	set(7, letter.Signature)
}

// startGenerateLetter drafts the letter from the user's current CV and the
// job description field.
func (m *mainLoopModel) startGenerateLetter() (tea.Model, tea.Cmd) {
	if m.letter.generating {
		return *m, nil
	}

	cvDoc := m.services.DocumentStore.Current(models.KindCV)
	if cvDoc == nil || cvDoc.CV == nil {
		m.errMsg = "Для генерации письма нужно резюме"
		return *m, nil
	}

	jobDescription := strings.TrimSpace(m.letter.inputs[8].Value())
	if jobDescription == "" {
		m.status = "Заполните описание вакансии для AI"
		return *m, nil
	}

	m.letter.generating = true
	m.status = "AI генерирует письмо..."

	ctx := m.ctx
	ai := m.ai
	content := *cvDoc.CV
	return *m, func() tea.Msg {
		letter, err := ai.GenerateLetter(ctx, content, jobDescription)
		return aiLetterDoneMsg{letter: letter, err: err}
	}
}

func (m *mainLoopModel) startLetterImprove(op models.AIOperation) (tea.Model, tea.Cmd) {
	if m.letter.generating {
		return *m, nil
	}
	text := strings.TrimSpace(m.letter.inputs[m.letter.focus].Value())
	if text == "" {
		m.status = "Поле пустое, нечего улучшать"
		return *m, nil
	}

	m.letter.generating = true
	m.status = "AI обрабатывает текст..."

	ctx := m.ctx
	ai := m.ai
	return *m, func() tea.Msg {
		result, err := ai.TransformText(ctx, op, text)
		return aiTransformDoneMsg{op: op, result: result, err: err}
	}
}

func (m *mainLoopModel) letterFocusNext() {
	m.letter.inputs[m.letter.focus].Blur()
	m.letter.focus = (m.letter.focus + 1) % len(m.letter.inputs)
	m.letter.inputs[m.letter.focus].Focus()
}

func (m *mainLoopModel) letterFocusPrev() {
	m.letter.inputs[m.letter.focus].Blur()
	m.letter.focus = (m.letter.focus - 1 + len(m.letter.inputs)) % len(m.letter.inputs)
	m.letter.inputs[m.letter.focus].Focus()
}

func (m mainLoopModel) viewLetter() string {
	var b strings.Builder

	labelWidth := 0
	for _, l := range m.letter.labels {
		if len([]rune(l)) > labelWidth {
			labelWidth = len([]rune(l))
		}
	}

	for i, label := range m.letter.labels {
		pad := strings.Repeat(" ", labelWidth-len([]rune(label)))
		b.WriteString(fmt.Sprintf("%s%s │ [%s]\n", label, pad, m.letter.inputs[i].View()))
	}

	if m.letter.generating {
		b.WriteString("\nAI работает...\n")
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

	hotKeys := "ctrl+s: сохранить │ ctrl+g: сгенерировать AI │ ctrl+i: улучшить AI │ tab: след. поле │ esc: к списку"
	return renderPage("СОПРОВОДИТЕЛЬНОЕ ПИСЬМО", strings.TrimRight(b.String(), "\n"), hotKeys)
}
