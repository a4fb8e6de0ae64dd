package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	ContextGlobal  Context = "global"  // Available everywhere
	ContextEditor  Context = "editor"  // Editing surface focused
	ContextFind    Context = "find"    // Find / find-replace dialog
	ContextPrompt  Context = "prompt"  // Single line text prompt
	ContextConfirm Context = "confirm" // Yes/no question
	ContextPicker  Context = "picker"  // File dialogs and recent-files list
	ContextHelp    Context = "help"    // Help viewer
)

// Contexts lists every known context in display order
var Contexts = []Context{
	ContextGlobal,
	ContextEditor,
	ContextFind,
	ContextPrompt,
	ContextConfirm,
	ContextPicker,
	ContextHelp,
}

const (
	// Global actions
	ActionQuit Action = "quit"

	// Document and tab actions
	ActionNewDocument    Action = "new_document"
	ActionNewTab         Action = "new_tab"
	ActionCloseTab       Action = "close_tab"
	ActionOpenFile       Action = "open_file"
	ActionOpenMostRecent Action = "open_most_recent"
	ActionOpenRecent     Action = "open_recent"
	ActionSave           Action = "save"
	ActionSaveAs         Action = "save_as"
	ActionCycleNext      Action = "cycle_next"
	ActionCyclePrevious  Action = "cycle_previous"
	ActionCopyMarkdown   Action = "copy_markdown"

	// Formatting
	ActionBold         Action = "bold"
	ActionItalic       Action = "italic"
	ActionCodeBlock    Action = "code_block"
	ActionBulletList   Action = "bullet_list"
	ActionOrderedList  Action = "ordered_list"
	ActionParagraph    Action = "paragraph"
	ActionHeading1     Action = "heading_1"
	ActionHeading2     Action = "heading_2"
	ActionHeading3     Action = "heading_3"
	ActionHeading4     Action = "heading_4"
	ActionHeading5     Action = "heading_5"
	ActionHeading6     Action = "heading_6"
	ActionInsertLink   Action = "insert_link"
	ActionUndo         Action = "undo"
	ActionRedo         Action = "redo"
	ActionOpenFind     Action = "open_find"
	ActionOpenFindRepl Action = "open_find_replace"
	ActionOpenHelp     Action = "open_help"

	// Modal actions
	ActionCloseModal   Action = "close_modal"
	ActionConfirm      Action = "confirm"
	ActionCancel       Action = "cancel"
	ActionSubmit       Action = "submit"
	ActionNavigateUp   Action = "navigate_up"
	ActionNavigateDown Action = "navigate_down"
	ActionPageUp       Action = "page_up"
	ActionPageDown     Action = "page_down"
	ActionSwitchField  Action = "switch_field"
	ActionToggleCase   Action = "toggle_case"
	ActionReplaceNext  Action = "replace_next"
	ActionReplaceAll   Action = "replace_all"
)

// HeadingLevel returns the level of a heading action
func HeadingLevel(a Action) (int, bool) {
	switch a {
	case ActionHeading1:
		return 1, true
	case ActionHeading2:
		return 2, true
	case ActionHeading3:
		return 3, true
	case ActionHeading4:
		return 4, true
	case ActionHeading5:
		return 5, true
	case ActionHeading6:
		return 6, true
	}
	return 0, false
}

// Description returns a short human-readable label for help screens
func Description(a Action) string {
	if d, ok := descriptions[a]; ok {
		return d
	}
	return string(a)
}

var descriptions = map[Action]string{
	ActionQuit:           "Quit",
	ActionNewDocument:    "New document",
	ActionNewTab:         "New tab",
	ActionCloseTab:       "Close tab",
	ActionOpenFile:       "Open file",
	ActionOpenMostRecent: "Open most recent file",
	ActionOpenRecent:     "Recent files",
	ActionSave:           "Save",
	ActionSaveAs:         "Save as",
	ActionCycleNext:      "Next tab",
	ActionCyclePrevious:  "Previous tab",
	ActionCopyMarkdown:   "Copy as markdown",
	ActionBold:           "Bold",
	ActionItalic:         "Italic",
	ActionCodeBlock:      "Code block",
	ActionBulletList:     "Bullet list",
	ActionOrderedList:    "Ordered list",
	ActionParagraph:      "Paragraph",
	ActionHeading1:       "Heading 1",
	ActionHeading2:       "Heading 2",
	ActionHeading3:       "Heading 3",
	ActionHeading4:       "Heading 4",
	ActionHeading5:       "Heading 5",
	ActionHeading6:       "Heading 6",
	ActionInsertLink:     "Insert link",
	ActionUndo:           "Undo",
	ActionRedo:           "Redo",
	ActionOpenFind:       "Find",
	ActionOpenFindRepl:   "Find and replace",
	ActionOpenHelp:       "Help",
	ActionCloseModal:     "Close",
	ActionConfirm:        "Yes",
	ActionCancel:         "No / cancel",
	ActionSubmit:         "Submit",
	ActionNavigateUp:     "Up",
	ActionNavigateDown:   "Down",
	ActionPageUp:         "Page up",
	ActionPageDown:       "Page down",
	ActionSwitchField:    "Switch field",
	ActionToggleCase:     "Toggle case sensitivity",
	ActionReplaceNext:    "Replace next",
	ActionReplaceAll:     "Replace all",
}

// KnownAction reports whether a is a defined action
func KnownAction(a Action) bool {
	_, ok := descriptions[a]
	return ok
}
