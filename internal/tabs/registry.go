package tabs

// Registry is the ordered tab collection. It always holds at least one tab
// and exactly one of them is active.
type Registry struct {
	tabs     []*Tab
	activeID ID
	nextID   ID
	onRepair func(dangling, repaired ID)
}

// NewRegistry returns a registry holding one default tab
func NewRegistry() *Registry {
	r := &Registry{}
	r.Create()
	return r
}

// Create appends a default tab, activates it and returns its id
func (r *Registry) Create() ID {
	r.nextID++
	tab := &Tab{
		ID:    r.nextID,
		Title: DefaultTitle,
	}
	r.tabs = append(r.tabs, tab)
	r.activeID = tab.ID
	return tab.ID
}

// Close removes the tab. When the active tab is removed the last tab in
// order becomes active; removing the only tab leaves a fresh default tab.
// Unknown ids are ignored.
func (r *Registry) Close(id ID) {
	idx := r.indexOf(id)
	if idx < 0 {
		return
	}

	r.tabs = append(r.tabs[:idx], r.tabs[idx+1:]...)

	if len(r.tabs) == 0 {
		r.Create()
		return
	}
	if r.activeID == id {
		r.activeID = r.tabs[len(r.tabs)-1].ID
	}
}

// UpdateContent stores content and recomputes IsModified against the
// tab's baseline
func (r *Registry) UpdateContent(id ID, content string) {
	tab := r.Get(id)
	if tab == nil {
		return
	}
	tab.Content = content
	tab.IsModified = !SameContent(content, tab.baseline)
}

// UpdateFileBinding rebinds the tab after a successful open or save.
// The current content becomes the baseline unless modified is true.
func (r *Registry) UpdateFileBinding(id ID, filePath, title string, modified bool) {
	tab := r.Get(id)
	if tab == nil {
		return
	}
	tab.FilePath = filePath
	tab.Title = title
	tab.IsModified = modified
	if !modified {
		tab.baseline = tab.Content
	}
}

// Load replaces a tab's content and baseline together, as when a file is
// read into it
func (r *Registry) Load(id ID, content string) {
	tab := r.Get(id)
	if tab == nil {
		return
	}
	tab.Content = content
	tab.baseline = content
	tab.IsModified = false
}

// Activate makes id the active tab. Unknown ids are ignored.
// It reports whether the active tab changed.
func (r *Registry) Activate(id ID) bool {
	if r.indexOf(id) < 0 || r.activeID == id {
		return false
	}
	r.activeID = id
	return true
}

// CycleNext activates the following tab, wrapping at the end
func (r *Registry) CycleNext() bool {
	return r.cycle(1)
}

// CyclePrevious activates the preceding tab, wrapping at the start
func (r *Registry) CyclePrevious() bool {
	return r.cycle(-1)
}

func (r *Registry) cycle(step int) bool {
	n := len(r.tabs)
	if n < 2 {
		return false
	}
	idx := r.activeIndex()
	next := ((idx+step)%n + n) % n
	r.activeID = r.tabs[next].ID
	return true
}

// Active returns the active tab. If the active pointer is found dangling it
// is repaired to the first tab.
func (r *Registry) Active() *Tab {
	return r.tabs[r.activeIndex()]
}

// ActiveID returns the id of the active tab
func (r *Registry) ActiveID() ID {
	return r.Active().ID
}

// Get returns the tab with id, or nil
func (r *Registry) Get(id ID) *Tab {
	if idx := r.indexOf(id); idx >= 0 {
		return r.tabs[idx]
	}
	return nil
}

// FindByPath returns the tab bound to path, or nil
func (r *Registry) FindByPath(path string) *Tab {
	for _, tab := range r.tabs {
		if tab.FilePath != "" && tab.FilePath == path {
			return tab
		}
	}
	return nil
}

// All returns copies of the tabs in order
func (r *Registry) All() []Tab {
	out := make([]Tab, len(r.tabs))
	for i, tab := range r.tabs {
		out[i] = *tab
	}
	return out
}

// Len returns the number of tabs
func (r *Registry) Len() int {
	return len(r.tabs)
}

// Modified returns copies of the tabs with unsaved changes
func (r *Registry) Modified() []Tab {
	var out []Tab
	for _, tab := range r.tabs {
		if tab.IsModified {
			out = append(out, *tab)
		}
	}
	return out
}

func (r *Registry) activeIndex() int {
	if idx := r.indexOf(r.activeID); idx >= 0 {
		return idx
	}
	dangling := r.activeID
	r.activeID = r.tabs[0].ID
	if r.onRepair != nil {
		r.onRepair(dangling, r.activeID)
	}
	return 0
}

// OnRepair registers a hook called when a dangling active id is replaced
func (r *Registry) OnRepair(fn func(dangling, repaired ID)) {
	r.onRepair = fn
}

func (r *Registry) indexOf(id ID) int {
	for i, tab := range r.tabs {
		if tab.ID == id {
			return i
		}
	}
	return -1
}
