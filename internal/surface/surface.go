package surface

import "github.com/studiowebux/inkpad/internal/tabs"

// EmptyDocument is what an editor holding nothing serializes to
const EmptyDocument = tabs.EmptyDocument

// Command is an editing command understood by the surface
type Command string

const (
	CmdBold        Command = "bold"
	CmdItalic      Command = "italic"
	CmdCodeBlock   Command = "codeBlock"
	CmdBulletList  Command = "bulletList"
	CmdOrderedList Command = "orderedList"
	CmdParagraph   Command = "paragraph"
	CmdHeading     Command = "heading" // args: level "1".."6"
	CmdLink        Command = "link"    // args: href
	CmdUndo        Command = "undo"
	CmdRedo        Command = "redo"
)

// Surface is the single editing surface shared by all tabs
type Surface interface {
	// Content returns the serialized document
	Content() string
	// SetContent mounts a document and discards undo/redo history. It does
	// not emit a change notification.
	SetContent(content string)
	// Replace is an undoable edit that emits a change notification
	Replace(content string)
	Exec(cmd Command, args ...string)
	IsActive(mark string, attrs map[string]string) bool
	CanUndo() bool
	CanRedo() bool
}
