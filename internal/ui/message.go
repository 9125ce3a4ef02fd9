package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/lyriek/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgStatus MsgKind = iota
	MsgStreamClosed
	MsgOpened
)

// statusMsg is the constructor for [MsgStatus]
func statusMsg(update tasks.StatusUpdate) Msg {
	return Msg{kind: MsgStatus, data: update}
}

// streamClosedMsg is the constructor for [MsgStreamClosed]
func streamClosedMsg() Msg {
	return Msg{kind: MsgStreamClosed}
}

// openedMsg is the constructor for [MsgOpened]
func openedMsg(err error) Msg {
	return Msg{kind: MsgOpened, data: err}
}
