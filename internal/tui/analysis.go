package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m mainLoopModel) updateAnalysis(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc", "enter", "q":
		m.mode = modeWizard
		m.rebuildWizardStep()
		return m, nil
	}

	return m, nil
}

func (m mainLoopModel) viewAnalysis() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Оценка: %d/100\n", m.analysis.Score))

	if len(m.analysis.Strengths) > 0 {
		b.WriteString("\nСильные стороны:\n")
		for _, s := range m.analysis.Strengths {
			b.WriteString("  + ")
			b.WriteString(s)
			b.WriteString("\n")
		}
	}

	if len(m.analysis.Improvements) > 0 {
		b.WriteString("\nЧто улучшить:\n")
		for _, s := range m.analysis.Improvements {
			b.WriteString("  - ")
			b.WriteString(s)
			b.WriteString("\n")
		}
	}

	if len(m.analysis.RecommendedRoles) > 0 {
		b.WriteString("\nПодходящие роли:\n")
		for _, s := range m.analysis.RecommendedRoles {
			b.WriteString("  * ")
			b.WriteString(s)
			b.WriteString("\n")
		}
	}

	return renderPage("АНАЛИЗ РЕЗЮМЕ", strings.TrimRight(b.String(), "\n"), "enter / esc: назад к редактору")
}
