package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/avoronov/go-cv-builder/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Wizard steps of the CV editor. The active step lives in the document
// store so that it survives reloads and resets on LoadDocument.
const (
	stepPersonal = iota
	stepExperience
	stepEducation
	stepSkills
	stepHobbies
	stepExtras
	stepSettings

	wizardStepCount
)

var wizardStepTitles = [wizardStepCount]string{
	"Шаг 1/7: Персональные данные",
	"Шаг 2/7: Опыт работы",
	"Шаг 3/7: Образование",
	"Шаг 4/7: Навыки и языки",
	"Шаг 5/7: Хобби",
	"Шаг 6/7: Дополнительно",
	"Шаг 7/7: Оформление",
}

// wizardState holds the transient editor state of the CV wizard: the input
// widgets of the active step and, on collection steps, the selection and the
// overlay form.
type wizardState struct {
	docID string
	step  int

	// Scalar steps keep their inputs here permanently; collection steps
	// only while the overlay form is open.
	labels []string
	inputs []textinput.Model
	focus  int

	// Collection step state.
	itemIdx  int
	formOpen bool
	editID   string
	editKind string

	improving bool
}

func newForm(labels, values []string) ([]string, []textinput.Model) {
	inputs := make([]textinput.Model, len(labels))
	for i := range labels {
		inputs[i] = textinput.New()
		inputs[i].Width = 50
		if i < len(values) {
			inputs[i].SetValue(values[i])
		}
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}
	return labels, inputs
}

func (m *mainLoopModel) openWizard(docID string) {
	m.wizard = wizardState{docID: docID}
	m.wizard.step = m.services.DocumentStore.WizardStep()
	m.rebuildWizardStep()
}

// rebuildWizardStep reloads the active step's widgets from the current
// document so that the forms always show committed state.
func (m *mainLoopModel) rebuildWizardStep() {
	doc := m.services.DocumentStore.Current(models.KindCV)
	if doc == nil || doc.CV == nil {
		m.wizard.labels, m.wizard.inputs = nil, nil
		return
	}

	w := &m.wizard
	w.focus = 0
	w.formOpen = false
	w.editID = ""
	w.editKind = ""

	switch w.step {
	case stepPersonal:
		p := doc.CV.PersonalInfo
		w.labels, w.inputs = newForm(
			[]string{"Имя", "Фамилия", "Заголовок", "Email", "Телефон", "Город", "О себе"},
			[]string{p.FirstName, p.LastName, p.Headline, p.Email, p.Phone, p.City, p.Summary},
		)
	case stepSettings:
		w.labels, w.inputs = newForm(
			[]string{"Название", "Цвет акцента", "Шрифт", "Размер шрифта", "Бумага", "Порядок секций", "Прочее", "Подвал"},
			[]string{
				doc.Title,
				doc.Style.AccentColor,
				doc.Style.FontFamily,
				intOrEmpty(doc.Style.FontSize),
				doc.Style.PaperSize,
				strings.Join(doc.SectionOrder, ","),
				doc.CV.Divers,
				doc.CV.Footer.Text,
			},
		)
	default:
		w.labels, w.inputs = nil, nil
		if w.itemIdx < 0 {
			w.itemIdx = 0
		}
	}
}

func intOrEmpty(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func (m mainLoopModel) updateWizard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if res, ok := msg.(aiTransformDoneMsg); ok {
		m.wizard.improving = false
		if res.err != nil {
			m.errMsg = "Ошибка AI: " + humanizeServerUnavailableError(res.err)
			return m, nil
		}
		if m.wizard.focus < len(m.wizard.inputs) {
			m.wizard.inputs[m.wizard.focus].SetValue(res.result)
			m.status = "Текст обновлён AI"
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	// Overlay form on a collection step.
	if m.wizard.formOpen {
		return m.updateWizardForm(keyMsg)
	}

	if m.wizardOnScalarStep() {
		return m.updateWizardScalar(keyMsg)
	}

	return m.updateWizardCollection(keyMsg)
}

func (m mainLoopModel) wizardOnScalarStep() bool {
	return m.wizard.step == stepPersonal || m.wizard.step == stepSettings
}

func (m mainLoopModel) updateWizardScalar(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.wizard.inputs) == 0 {
		if keyMsg.String() == "esc" {
			m.mode = modeList
			m.reloadList()
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		m.saveScalarStep()
		m.mode = modeList
		m.reloadList()
		return m, m.cmdPersist(models.KindCV)
	case "pgdown":
		m.saveScalarStep()
		return m.wizardGoto(m.wizard.step + 1)
	case "pgup":
		m.saveScalarStep()
		return m.wizardGoto(m.wizard.step - 1)
	case "tab":
		m.wizardFocusNext()
		return m, nil
	case "shift+tab":
		m.wizardFocusPrev()
		return m, nil
	case "ctrl+i":
		return m.startImprove(models.AIImprove)
	case "ctrl+f":
		return m.startImprove(models.AIFix)
	case "ctrl+a":
		if m.analyzing {
			return m, nil
		}
		m.saveScalarStep()
		m.analyzing = true
		m.status = "Анализ резюме..."
		return m, m.cmdAnalyze()
	}

	var cmd tea.Cmd
	m.wizard.inputs[m.wizard.focus], cmd = m.wizard.inputs[m.wizard.focus].Update(keyMsg)
	return m, cmd
}

func (m *mainLoopModel) startImprove(op models.AIOperation) (tea.Model, tea.Cmd) {
	if m.wizard.improving || m.wizard.focus >= len(m.wizard.inputs) {
		return *m, nil
	}
	text := strings.TrimSpace(m.wizard.inputs[m.wizard.focus].Value())
	if text == "" {
		m.status = "Поле пустое, нечего улучшать"
		return *m, nil
	}
	m.wizard.improving = true
	m.status = "AI обрабатывает текст..."

	ctx := m.ctx
	ai := m.ai
	return *m, func() tea.Msg {
		result, err := ai.TransformText(ctx, op, text)
		return aiTransformDoneMsg{op: op, result: result, err: err}
	}
}

func (m mainLoopModel) updateWizardCollection(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "esc":
		m.mode = modeList
		m.reloadList()
		return m, m.cmdPersist(models.KindCV)
	case "pgdown":
		return m.wizardGoto(m.wizard.step + 1)
	case "pgup":
		return m.wizardGoto(m.wizard.step - 1)
	case "up", "k":
		if m.wizard.itemIdx > 0 {
			m.wizard.itemIdx--
		}
	case "down", "j":
		if m.wizard.itemIdx < m.wizardItemCount()-1 {
			m.wizard.itemIdx++
		}
	case "n":
		m.openCollectionForm()
		return m, nil
	case "g":
		if m.wizard.step == stepSkills {
			m.openLanguageForm("", models.Language{})
			return m, nil
		}
		if m.wizard.step == stepExtras {
			m.openProjectForm("", models.Project{})
			return m, nil
		}
	case "r":
		if m.wizard.step == stepExtras {
			m.openReferenceForm("", models.Reference{})
			return m, nil
		}
	case "f":
		if m.wizard.step == stepExtras {
			m.openQualityForm("", models.Quality{})
			return m, nil
		}
	case "o":
		if m.wizard.step == stepExtras {
			m.openSocialLinkForm("", models.SocialLink{})
			return m, nil
		}
	case "enter":
		m.openSelectedForEdit()
		return m, nil
	case "ctrl+d":
		return m.removeSelected()
	case "ctrl+a":
		if m.analyzing {
			return m, nil
		}
		m.analyzing = true
		m.status = "Анализ резюме..."
		return m, m.cmdAnalyze()
	}

	return m, nil
}

func (m mainLoopModel) currentCV() *models.CVContent {
	doc := m.services.DocumentStore.Current(models.KindCV)
	if doc == nil {
		return nil
	}
	return doc.CV
}

func (m mainLoopModel) wizardItemCount() int {
	cv := m.currentCV()
	if cv == nil {
		return 0
	}
	switch m.wizard.step {
	case stepExperience:
		return len(cv.Experiences)
	case stepEducation:
		return len(cv.Educations)
	case stepSkills:
		return len(cv.Skills) + len(cv.Languages)
	case stepHobbies:
		return len(cv.Hobbies)
	case stepExtras:
		return len(cv.Certifications) + len(cv.Projects) + len(cv.References) +
			len(cv.Qualities) + len(cv.SocialLinks)
	}
	return 0
}

func (m *mainLoopModel) openCollectionForm() {
	switch m.wizard.step {
	case stepExperience:
		m.openExperienceForm("", models.Experience{})
	case stepEducation:
		m.openEducationForm("", models.Education{})
	case stepSkills:
		m.openSkillForm("", models.Skill{})
	case stepHobbies:
		m.openHobbyForm("", models.Hobby{})
	case stepExtras:
		m.openCertificationForm("", models.Certification{})
	}
}

func (m *mainLoopModel) openSelectedForEdit() {
	cv := m.currentCV()
	if cv == nil {
		return
	}
	idx := m.wizard.itemIdx

	switch m.wizard.step {
	case stepExperience:
		if idx < len(cv.Experiences) {
			item := cv.Experiences[idx]
			m.openExperienceForm(item.ID, item)
		}
	case stepEducation:
		if idx < len(cv.Educations) {
			item := cv.Educations[idx]
			m.openEducationForm(item.ID, item)
		}
	case stepSkills:
		if idx < len(cv.Skills) {
			item := cv.Skills[idx]
			m.openSkillForm(item.ID, item)
		} else if li := idx - len(cv.Skills); li < len(cv.Languages) {
			item := cv.Languages[li]
			m.openLanguageForm(item.ID, item)
		}
	case stepHobbies:
		if idx < len(cv.Hobbies) {
			item := cv.Hobbies[idx]
			m.openHobbyForm(item.ID, item)
		}
	case stepExtras:
		if idx < len(cv.Certifications) {
			item := cv.Certifications[idx]
			m.openCertificationForm(item.ID, item)
			return
		}
		idx -= len(cv.Certifications)
		if idx < len(cv.Projects) {
			item := cv.Projects[idx]
			m.openProjectForm(item.ID, item)
			return
		}
		idx -= len(cv.Projects)
		if idx < len(cv.References) {
			item := cv.References[idx]
			m.openReferenceForm(item.ID, item)
			return
		}
		idx -= len(cv.References)
		if idx < len(cv.Qualities) {
			item := cv.Qualities[idx]
			m.openQualityForm(item.ID, item)
			return
		}
		idx -= len(cv.Qualities)
		if idx < len(cv.SocialLinks) {
			item := cv.SocialLinks[idx]
			m.openSocialLinkForm(item.ID, item)
		}
	}
}

func (m mainLoopModel) removeSelected() (tea.Model, tea.Cmd) {
	cv := m.currentCV()
	if cv == nil {
		return m, nil
	}
	store := m.services.DocumentStore
	idx := m.wizard.itemIdx

	var err error
	switch m.wizard.step {
	case stepExperience:
		if idx < len(cv.Experiences) {
			err = store.RemoveExperience(m.ctx, cv.Experiences[idx].ID)
		}
	case stepEducation:
		if idx < len(cv.Educations) {
			err = store.RemoveEducation(m.ctx, cv.Educations[idx].ID)
		}
	case stepSkills:
		if idx < len(cv.Skills) {
			err = store.RemoveSkill(m.ctx, cv.Skills[idx].ID)
		} else if li := idx - len(cv.Skills); li < len(cv.Languages) {
			err = store.RemoveLanguage(m.ctx, cv.Languages[li].ID)
		}
	case stepHobbies:
		if idx < len(cv.Hobbies) {
			err = store.RemoveHobby(m.ctx, cv.Hobbies[idx].ID)
		}
	case stepExtras:
		err = m.removeSelectedExtra(cv, idx)
	}

	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	if m.wizard.itemIdx >= m.wizardItemCount() && m.wizard.itemIdx > 0 {
		m.wizard.itemIdx--
	}
	return m, nil
}

// removeSelectedExtra resolves the combined extras-list index to the record
// it points at and removes it.
func (m mainLoopModel) removeSelectedExtra(cv *models.CVContent, idx int) error {
	store := m.services.DocumentStore

	if idx < len(cv.Certifications) {
		return store.RemoveCertification(m.ctx, cv.Certifications[idx].ID)
	}
	idx -= len(cv.Certifications)
	if idx < len(cv.Projects) {
		return store.RemoveProject(m.ctx, cv.Projects[idx].ID)
	}
	idx -= len(cv.Projects)
	if idx < len(cv.References) {
		return store.RemoveReference(m.ctx, cv.References[idx].ID)
	}
	idx -= len(cv.References)
	if idx < len(cv.Qualities) {
		return store.RemoveQuality(m.ctx, cv.Qualities[idx].ID)
	}
	idx -= len(cv.Qualities)
	if idx < len(cv.SocialLinks) {
		return store.RemoveSocialLink(m.ctx, cv.SocialLinks[idx].ID)
	}
	return nil
}

func (m *mainLoopModel) openExperienceForm(editID string, item models.Experience) {
	m.wizard.labels, m.wizard.inputs = newForm(
		[]string{"Компания", "Должность", "Город", "Начало", "Конец", "Описание"},
		[]string{item.Company, item.Position, item.City, item.StartDate, item.EndDate, item.Description},
	)
	m.wizard.formOpen = true
	m.wizard.editID = editID
	m.wizard.editKind = "experience"
	m.wizard.focus = 0
}

func (m *mainLoopModel) openEducationForm(editID string, item models.Education) {
	m.wizard.labels, m.wizard.inputs = newForm(
		[]string{"Учебное заведение", "Степень", "Специальность", "Начало", "Конец"},
		[]string{item.School, item.Degree, item.Field, item.StartDate, item.EndDate},
	)
	m.wizard.formOpen = true
	m.wizard.editID = editID
	m.wizard.editKind = "education"
	m.wizard.focus = 0
}

func (m *mainLoopModel) openSkillForm(editID string, item models.Skill) {
	m.wizard.labels, m.wizard.inputs = newForm(
		[]string{"Название", "Уровень (1-5)"},
		[]string{item.Name, intOrEmpty(item.Level)},
	)
	m.wizard.formOpen = true
	m.wizard.editID = editID
	m.wizard.editKind = "skill"
	m.wizard.focus = 0
}

func (m *mainLoopModel) openLanguageForm(editID string, item models.Language) {
	m.wizard.labels, m.wizard.inputs = newForm(
		[]string{"Язык", "Уровень (1-5)"},
		[]string{item.Name, intOrEmpty(item.Level)},
	)
	m.wizard.formOpen = true
	m.wizard.editID = editID
	m.wizard.editKind = "language"
	m.wizard.focus = 0
}

func (m *mainLoopModel) openHobbyForm(editID string, item models.Hobby) {
	m.wizard.labels, m.wizard.inputs = newForm(
		[]string{"Название"},
		[]string{item.Name},
	)
	m.wizard.formOpen = true
	m.wizard.editID = editID
	m.wizard.editKind = "hobby"
	m.wizard.focus = 0
}

func (m *mainLoopModel) openCertificationForm(editID string, item models.Certification) {
	m.wizard.labels, m.wizard.inputs = newForm(
		[]string{"Название", "Организация", "Дата"},
		[]string{item.Name, item.Issuer, item.Date},
	)
	m.wizard.formOpen = true
	m.wizard.editID = editID
	m.wizard.editKind = "certification"
	m.wizard.focus = 0
}

func (m *mainLoopModel) openProjectForm(editID string, item models.Project) {
	m.wizard.labels, m.wizard.inputs = newForm(
		[]string{"Название", "Ссылка", "Описание"},
		[]string{item.Name, item.URL, item.Description},
	)
	m.wizard.formOpen = true
	m.wizard.editID = editID
	m.wizard.editKind = "project"
	m.wizard.focus = 0
}

func (m *mainLoopModel) openReferenceForm(editID string, item models.Reference) {
	m.wizard.labels, m.wizard.inputs = newForm(
		[]string{"Имя", "Компания", "Должность", "Email", "Телефон"},
		[]string{item.Name, item.Company, item.Position, item.Email, item.Phone},
	)
	m.wizard.formOpen = true
	m.wizard.editID = editID
	m.wizard.editKind = "reference"
	m.wizard.focus = 0
}

func (m *mainLoopModel) openQualityForm(editID string, item models.Quality) {
	m.wizard.labels, m.wizard.inputs = newForm(
		[]string{"Качество"},
		[]string{item.Name},
	)
	m.wizard.formOpen = true
	m.wizard.editID = editID
	m.wizard.editKind = "quality"
	m.wizard.focus = 0
}

func (m *mainLoopModel) openSocialLinkForm(editID string, item models.SocialLink) {
	m.wizard.labels, m.wizard.inputs = newForm(
		[]string{"Платформа", "URL"},
		[]string{item.Label, item.URL},
	)
	m.wizard.formOpen = true
	m.wizard.editID = editID
	m.wizard.editKind = "social_link"
	m.wizard.focus = 0
}

func (m mainLoopModel) updateWizardForm(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "esc":
		m.rebuildWizardStep()
		return m, nil
	case "tab":
		m.wizardFocusNext()
		return m, nil
	case "shift+tab":
		m.wizardFocusPrev()
		return m, nil
	case "ctrl+i":
		return m.startImprove(models.AIImprove)
	case "ctrl+f":
		return m.startImprove(models.AIFix)
	case "enter":
		return m.submitCollectionForm()
	}

	var cmd tea.Cmd
	m.wizard.inputs[m.wizard.focus], cmd = m.wizard.inputs[m.wizard.focus].Update(keyMsg)
	return m, cmd
}

func (m mainLoopModel) submitCollectionForm() (tea.Model, tea.Cmd) {
	store := m.services.DocumentStore
	w := &m.wizard
	val := func(i int) string { return strings.TrimSpace(w.inputs[i].Value()) }

	var err error
	switch w.editKind {
	case "experience":
		item := models.Experience{
			Company:     val(0),
			Position:    val(1),
			City:        val(2),
			StartDate:   val(3),
			EndDate:     val(4),
			Description: val(5),
		}
		if w.editID == "" {
			_, err = store.AddExperience(m.ctx, item)
		} else {
			err = store.UpdateExperience(m.ctx, w.editID, item)
		}
	case "education":
		item := models.Education{
			School:    val(0),
			Degree:    val(1),
			Field:     val(2),
			StartDate: val(3),
			EndDate:   val(4),
		}
		if w.editID == "" {
			_, err = store.AddEducation(m.ctx, item)
		} else {
			err = store.UpdateEducation(m.ctx, w.editID, item)
		}
	case "skill":
		level, _ := strconv.Atoi(val(1))
		item := models.Skill{Name: val(0), Level: level}
		if w.editID == "" {
			_, err = store.AddSkill(m.ctx, item)
		} else {
			err = store.UpdateSkill(m.ctx, w.editID, item)
		}
	case "language":
		level, _ := strconv.Atoi(val(1))
		item := models.Language{Name: val(0), Level: level}
		if w.editID == "" {
			_, err = store.AddLanguage(m.ctx, item)
		} else {
			err = store.UpdateLanguage(m.ctx, w.editID, item)
		}
	case "hobby":
		item := models.Hobby{Name: val(0)}
		if w.editID == "" {
			_, err = store.AddHobby(m.ctx, item)
		} else {
			err = store.UpdateHobby(m.ctx, w.editID, item)
		}
	case "certification":
		item := models.Certification{Name: val(0), Issuer: val(1), Date: val(2)}
		if w.editID == "" {
			_, err = store.AddCertification(m.ctx, item)
		} else {
			err = store.UpdateCertification(m.ctx, w.editID, item)
		}
	case "project":
		item := models.Project{Name: val(0), URL: val(1), Description: val(2)}
		if w.editID == "" {
			_, err = store.AddProject(m.ctx, item)
		} else {
			err = store.UpdateProject(m.ctx, w.editID, item)
		}
	case "reference":
		item := models.Reference{
			Name:     val(0),
			Company:  val(1),
			Position: val(2),
			Email:    val(3),
			Phone:    val(4),
		}
		if w.editID == "" {
			_, err = store.AddReference(m.ctx, item)
		} else {
			err = store.UpdateReference(m.ctx, w.editID, item)
		}
	case "quality":
		item := models.Quality{Name: val(0)}
		if w.editID == "" {
			_, err = store.AddQuality(m.ctx, item)
		} else {
			err = store.UpdateQuality(m.ctx, w.editID, item)
		}
	case "social_link":
		item := models.SocialLink{Label: val(0), URL: val(1)}
		if w.editID == "" {
			_, err = store.AddSocialLink(m.ctx, item)
		} else {
			err = store.UpdateSocialLink(m.ctx, w.editID, item)
		}
	}

	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}

	m.status = "Запись сохранена"
	m.rebuildWizardStep()
	return m, nil
}

// saveScalarStep commits the active scalar form to the document store.
func (m *mainLoopModel) saveScalarStep() {
	w := &m.wizard
	if len(w.inputs) == 0 {
		return
	}
	val := func(i int) string { return strings.TrimSpace(w.inputs[i].Value()) }
	store := m.services.DocumentStore

	switch w.step {
	case stepPersonal:
		patch := models.PersonalInfo{
			FirstName: val(0),
			LastName:  val(1),
			Headline:  val(2),
			Email:     val(3),
			Phone:     val(4),
			City:      val(5),
			Summary:   val(6),
		}
		if err := store.UpdatePersonalInfo(m.ctx, patch); err != nil {
			m.errMsg = err.Error()
		}
	case stepSettings:
		if title := val(0); title != "" {
			if err := store.UpdateTitle(m.ctx, title); err != nil {
				m.errMsg = err.Error()
			}
		}
		fontSize, _ := strconv.Atoi(val(3))
		style := models.Style{
			AccentColor: val(1),
			FontFamily:  val(2),
			FontSize:    fontSize,
			PaperSize:   val(4),
		}
		if err := store.UpdateStyle(m.ctx, style); err != nil {
			m.errMsg = err.Error()
		}
		if order := val(5); order != "" {
			sections := strings.Split(order, ",")
			for i := range sections {
				sections[i] = strings.TrimSpace(sections[i])
			}
			if err := store.UpdateSectionOrder(m.ctx, sections); err != nil {
				m.errMsg = err.Error()
			}
		}
		if divers := val(6); divers != "" {
			if err := store.UpdateDivers(m.ctx, divers); err != nil {
				m.errMsg = err.Error()
			}
		}
		if footer := val(7); footer != "" {
			if err := store.UpdateFooter(m.ctx, models.Footer{Text: footer}); err != nil {
				m.errMsg = err.Error()
			}
		}
	}
}

func (m mainLoopModel) wizardGoto(step int) (tea.Model, tea.Cmd) {
	if step < 0 || step >= wizardStepCount {
		return m, nil
	}
	m.services.DocumentStore.SetWizardStep(step)
	m.wizard.step = step
	m.wizard.itemIdx = 0
	m.rebuildWizardStep()
	return m, nil
}

func (m *mainLoopModel) wizardFocusNext() {
	w := &m.wizard
	if len(w.inputs) == 0 {
		return
	}
	w.inputs[w.focus].Blur()
	w.focus = (w.focus + 1) % len(w.inputs)
	w.inputs[w.focus].Focus()
}

func (m *mainLoopModel) wizardFocusPrev() {
	w := &m.wizard
	if len(w.inputs) == 0 {
		return
	}
	w.inputs[w.focus].Blur()
	w.focus = (w.focus - 1 + len(w.inputs)) % len(w.inputs)
	w.inputs[w.focus].Focus()
}

func (m mainLoopModel) viewWizard() string {
	var b strings.Builder

	if m.wizard.formOpen || m.wizardOnScalarStep() {
		b.WriteString(m.viewWizardForm())
	} else {
		b.WriteString(m.viewWizardCollection())
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

	hotKeys := m.wizardHotKeys()
	return renderPage(wizardStepTitles[m.wizard.step], strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (m mainLoopModel) wizardHotKeys() string {
	if m.wizard.formOpen {
		return "enter: сохранить │ esc: отмена │ tab: след. поле │ ctrl+i: улучшить AI │ ctrl+f: исправить AI"
	}
	if m.wizardOnScalarStep() {
		return "pgdn/pgup: шаги │ tab: след. поле │ ctrl+i: улучшить AI │ ctrl+a: анализ │ esc: к списку"
	}
	if m.wizard.step == stepSkills {
		return "n: навык │ g: язык │ enter: изменить │ ctrl+d: удалить │ pgdn/pgup: шаги │ esc: к списку"
	}
	if m.wizard.step == stepExtras {
		return "n: сертификат │ g: проект │ r: рекомендация │ f: качество │ o: ссылка │ enter: изменить │ ctrl+d: удалить"
	}
	return "n: добавить │ enter: изменить │ ctrl+d: удалить │ pgdn/pgup: шаги │ esc: к списку"
}

func (m mainLoopModel) viewWizardForm() string {
	var b strings.Builder

	labelWidth := 0
	for _, l := range m.wizard.labels {
		if len([]rune(l)) > labelWidth {
			labelWidth = len([]rune(l))
		}
	}

	for i, label := range m.wizard.labels {
		pad := strings.Repeat(" ", labelWidth-len([]rune(label)))
		b.WriteString(label)
		b.WriteString(pad)
		b.WriteString(" │ [")
		b.WriteString(m.wizard.inputs[i].View())
		b.WriteString("]\n")
	}

	if m.wizard.improving {
		b.WriteString("\nAI обрабатывает...\n")
	}

	return b.String()
}

func (m mainLoopModel) viewWizardCollection() string {
	cv := m.currentCV()
	if cv == nil {
		return "Нет текущего резюме\n"
	}

	var lines []string
	switch m.wizard.step {
	case stepExperience:
		for _, e := range cv.Experiences {
			period := e.StartDate
			if e.EndDate != "" {
				period += " - " + e.EndDate
			}
			lines = append(lines, fmt.Sprintf("%s — %s (%s)", valueOrDash(e.Company), valueOrDash(e.Position), valueOrDash(period)))
		}
	case stepEducation:
		for _, e := range cv.Educations {
			lines = append(lines, fmt.Sprintf("%s — %s", valueOrDash(e.School), valueOrDash(e.Degree)))
		}
	case stepSkills:
		for _, s := range cv.Skills {
			lines = append(lines, fmt.Sprintf("[Н] %s %s", valueOrDash(s.Name), levelBar(s.Level)))
		}
		for _, l := range cv.Languages {
			lines = append(lines, fmt.Sprintf("[Я] %s %s", valueOrDash(l.Name), levelBar(l.Level)))
		}
	case stepHobbies:
		for _, h := range cv.Hobbies {
			lines = append(lines, valueOrDash(h.Name))
		}
	case stepExtras:
		for _, c := range cv.Certifications {
			lines = append(lines, fmt.Sprintf("[С] %s (%s)", valueOrDash(c.Name), valueOrDash(c.Issuer)))
		}
		for _, p := range cv.Projects {
			lines = append(lines, fmt.Sprintf("[П] %s %s", valueOrDash(p.Name), p.URL))
		}
		for _, r := range cv.References {
			lines = append(lines, fmt.Sprintf("[Р] %s, %s", valueOrDash(r.Name), valueOrDash(r.Company)))
		}
		for _, q := range cv.Qualities {
			lines = append(lines, fmt.Sprintf("[К] %s", valueOrDash(q.Name)))
		}
		for _, l := range cv.SocialLinks {
			lines = append(lines, fmt.Sprintf("[Л] %s %s", valueOrDash(l.Label), l.URL))
		}
	}

	if len(lines) == 0 {
		return "Пока пусто. Нажмите n, чтобы добавить запись.\n"
	}

	var b strings.Builder
	for i, line := range lines {
		cursor := "  "
		if i == m.wizard.itemIdx {
			cursor = "> "
		}
		b.WriteString(cursor)
		b.WriteString(fitText(line, 60))
		b.WriteString("\n")
	}
	return b.String()
}
