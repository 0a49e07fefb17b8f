package tui

import (
	"context"
	"errors"

	"github.com/avoronov/go-cv-builder/internal/adapter"
	"github.com/avoronov/go-cv-builder/internal/logger"
	"github.com/avoronov/go-cv-builder/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUserQuit = errors.New("вышел из программы")

type TUI struct {
	services *service.ClientServices
	ai       adapter.AIAdapter
	shareURL string
}

// New builds the terminal UI on top of the client services. shareBaseURL is
// the public address used when composing share links (the server URL when
// empty).
func New(services *service.ClientServices, ai adapter.AIAdapter, shareBaseURL string, _ *logger.Logger) (*TUI, error) {
	return &TUI{services: services, ai: ai, shareURL: shareBaseURL}, nil
}

// LoginFlow runs the menu/login/register pages until the user authenticates
// or quits. A successful login leaves the adapter holding a bearer token and
// the document store refreshed from the server.
func (t *TUI) LoginFlow(ctx context.Context) error {
	pages := map[string]tea.Model{
		"menu":     NewMenuModel(),
		"login":    NewLoginModel(ctx, t.services.AuthService),
		"register": NewRegisterModel(ctx, t.services.AuthService),
	}

	root := NewRootModel(pages, "menu")
	finalModel, runErr := tea.NewProgram(root, tea.WithAltScreen()).Run()
	if runErr != nil {
		return runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}

	return nil
}

// MainLoop runs the document list and editors until the user logs out or
// quits.
func (t *TUI) MainLoop(ctx context.Context) (logout bool, err error) {
	model := newMainLoopModel(ctx, t.services, t.ai, t.shareURL)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return false, runErr
	}

	result, ok := finalModel.(mainLoopModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.logout, nil
}
