package tui

import (
	"github.com/avoronov/go-cv-builder/models"
	tea "github.com/charmbracelet/bubbletea"
)

// NavigateTo asks the RootModel router to switch the active page. Payload,
// when set, is delivered to the new page as its first message.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// LoginResult finishes the authentication flow on success.
type LoginResult struct {
	Err      error
	Username string
}

// RegisterResult reports the outcome of an account registration attempt.
type RegisterResult struct {
	Err      error
	Username string
}

// RegisterSuccessNotice is shown on the menu after a successful registration.
type RegisterSuccessNotice struct {
	Username string
}

type syncDoneMsg struct {
	err error
}

type persistDoneMsg struct {
	err error
}

type documentCreatedMsg struct {
	id  string
	err error
}

type documentDeletedMsg struct {
	err error
}

type documentImportedMsg struct {
	id  string
	err error
}

type aiTransformDoneMsg struct {
	op     models.AIOperation
	result string
	err    error
}

type aiAnalysisDoneMsg struct {
	analysis models.Analysis
	err      error
}

type aiLetterDoneMsg struct {
	letter models.LetterContent
	err    error
}

type storeNoticeMsg struct {
	text string
}

type clearStatusMsg struct{}
