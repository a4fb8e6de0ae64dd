package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerEditorBindings(r)
	registerFindBindings(r)
	registerPromptBindings(r)
	registerConfirmBindings(r)
	registerPickerBindings(r)
	registerHelpBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all modes
func registerGlobalBindings(r *Registry) {
	r.RegisterMultiple(ContextGlobal, []string{"ctrl+q", "ctrl+c"}, ActionQuit)
}

// registerEditorBindings installs the command table plus aliases for
// chords most terminals cannot report (ctrl+digit, ctrl+tab, ctrl+i)
func registerEditorBindings(r *Registry) {
	for _, chord := range TableChords() {
		action, _ := ChordToCommand(chord)
		r.Register(ContextEditor, chord.String(), action)
	}

	r.Register(ContextEditor, "alt+i", ActionItalic)
	r.Register(ContextEditor, "alt+0", ActionParagraph)
	r.Register(ContextEditor, "alt+1", ActionHeading1)
	r.Register(ContextEditor, "alt+2", ActionHeading2)
	r.Register(ContextEditor, "alt+3", ActionHeading3)
	r.Register(ContextEditor, "alt+4", ActionHeading4)
	r.Register(ContextEditor, "alt+5", ActionHeading5)
	r.Register(ContextEditor, "alt+6", ActionHeading6)
	r.Register(ContextEditor, "alt+8", ActionBulletList)
	r.Register(ContextEditor, "alt+7", ActionOrderedList)
	r.Register(ContextEditor, "alt+c", ActionCodeBlock)
	r.Register(ContextEditor, "alt+s", ActionSaveAs)
	r.RegisterMultiple(ContextEditor, []string{"ctrl+pgdown", "alt+]"}, ActionCycleNext)
	r.RegisterMultiple(ContextEditor, []string{"ctrl+pgup", "alt+["}, ActionCyclePrevious)

	r.Register(ContextEditor, "alt+r", ActionOpenRecent)
	r.Register(ContextEditor, "alt+m", ActionCopyMarkdown)
	r.RegisterMultiple(ContextEditor, []string{"f1", "ctrl+g"}, ActionOpenHelp)
}

func registerFindBindings(r *Registry) {
	r.Register(ContextFind, "esc", ActionCloseModal)
	r.Register(ContextFind, "enter", ActionSubmit)
	r.RegisterMultiple(ContextFind, []string{"tab", "shift+tab"}, ActionSwitchField)
	r.Register(ContextFind, "alt+c", ActionToggleCase)
	r.Register(ContextFind, "alt+n", ActionReplaceNext)
	r.Register(ContextFind, "alt+a", ActionReplaceAll)
}

func registerPromptBindings(r *Registry) {
	r.Register(ContextPrompt, "enter", ActionSubmit)
	r.Register(ContextPrompt, "esc", ActionCancel)
}

func registerConfirmBindings(r *Registry) {
	r.RegisterMultiple(ContextConfirm, []string{"y", "Y", "enter"}, ActionConfirm)
	r.RegisterMultiple(ContextConfirm, []string{"n", "N", "esc"}, ActionCancel)
}

func registerPickerBindings(r *Registry) {
	r.RegisterMultiple(ContextPicker, []string{"up", "ctrl+p"}, ActionNavigateUp)
	r.RegisterMultiple(ContextPicker, []string{"down", "ctrl+n"}, ActionNavigateDown)
	r.Register(ContextPicker, "pgup", ActionPageUp)
	r.Register(ContextPicker, "pgdown", ActionPageDown)
	r.Register(ContextPicker, "enter", ActionSubmit)
	r.Register(ContextPicker, "tab", ActionSwitchField)
	r.Register(ContextPicker, "esc", ActionCancel)
}

func registerHelpBindings(r *Registry) {
	r.RegisterMultiple(ContextHelp, []string{"esc", "q", "f1", "?"}, ActionCloseModal)
	r.RegisterMultiple(ContextHelp, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextHelp, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextHelp, "pgup", ActionPageUp)
	r.Register(ContextHelp, "pgdown", ActionPageDown)
}
