// internal/event/event.go
package event

import "github.com/bethropolis/tidefind/internal/types"

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Document events
	TypeBufferModified // Text changed
	TypeBufferLoaded   // Buffer loaded from disk
	TypeBufferSaved    // Buffer written to disk
	TypeSelectionChanged

	// Find events
	TypeFindProgress        // A match was found during replace-all
	TypeFoundCount          // A scope range finished during replace-all
	TypeReplacementProgress // One replacement was spliced during replace-all
	TypeSearchWrapped       // A directional search continued from the other end
)

var typeNames = map[Type]string{
	TypeUnknown:             "Unknown",
	TypeBufferModified:      "BufferModified",
	TypeBufferLoaded:        "BufferLoaded",
	TypeBufferSaved:         "BufferSaved",
	TypeSelectionChanged:    "SelectionChanged",
	TypeFindProgress:        "FindProgress",
	TypeFoundCount:          "FoundCount",
	TypeReplacementProgress: "ReplacementProgress",
	TypeSearchWrapped:       "SearchWrapped",
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

// BufferModifiedData describes one edit in pre-edit rune offsets.
type BufferModifiedData struct {
	Range     types.Range // Replaced span
	NewLength int         // Length of the text put there
}

// BufferLoadedData carries the path of the loaded buffer.
type BufferLoadedData struct {
	FilePath string
}

// BufferSavedData carries the path the buffer was written to.
type BufferSavedData struct {
	FilePath string
}

// SelectionChangedData carries the new selection.
type SelectionChangedData struct {
	Ranges []types.Range
}

// FoundCountData is sent when a scope range of a replace-all is done.
type FoundCountData struct {
	Count int
}

// ProgressData is sent with TypeFindProgress and TypeReplacementProgress.
// Done counts units of that kind so far in the current operation.
type ProgressData struct {
	Done int
}

// SearchWrappedData tells in which direction the search wrapped.
type SearchWrappedData struct {
	Forward bool
}
