// internal/event/event.go
package event

import (
	"github.com/bethropolis/quicknotepad/internal/types"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Editor events
	TypeBufferModified // buffer content changed
	TypeBufferLoaded   // a file was loaded into the buffer
	TypeBufferSaved    // the buffer was written to disk
	TypeCursorMoved    // cursor position changed
	TypeHistoryChanged // undo or redo stack changed

	// Tab events
	TypeTabSwitched

	// Application lifecycle
	TypeAppReady
	TypeAppQuit
)

var typeNames = map[Type]string{
	TypeUnknown:        "Unknown",
	TypeBufferModified: "BufferModified",
	TypeBufferLoaded:   "BufferLoaded",
	TypeBufferSaved:    "BufferSaved",
	TypeCursorMoved:    "CursorMoved",
	TypeHistoryChanged: "HistoryChanged",
	TypeTabSwitched:    "TabSwitched",
	TypeAppReady:       "AppReady",
	TypeAppQuit:        "AppQuit",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// BufferModifiedData carries the byte-level edits of one change, in order.
type BufferModifiedData struct {
	Edits []types.EditInfo
}

type BufferLoadedData struct {
	FilePath string
}

type BufferSavedData struct {
	FilePath string
}

type CursorMovedData struct {
	NewPosition types.Position
}

// HistoryChangedData reports the stack depths after a push, undo or redo.
type HistoryChangedData struct {
	UndoLen int
	RedoLen int
}

// TabSwitchedData carries the 0-based index of the newly active tab.
type TabSwitchedData struct {
	Index    int
	FilePath string
}

type AppQuitData struct{}

type AppReadyData struct{}
