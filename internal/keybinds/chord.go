package keybinds

import "strings"

// Chord is a key pressed with the primary (ctrl) and optionally the
// secondary (alt) modifier
type Chord struct {
	Primary   bool
	Secondary bool
	Key       string
}

// String renders the chord the way the terminal reports it, e.g.
// "alt+ctrl+s"
func (c Chord) String() string {
	var sb strings.Builder
	if c.Secondary {
		sb.WriteString("alt+")
	}
	if c.Primary {
		sb.WriteString("ctrl+")
	}
	sb.WriteString(c.Key)
	return sb.String()
}

// ParseChord splits a key string into modifiers and key
func ParseChord(s string) Chord {
	var c Chord
	for {
		switch {
		case strings.HasPrefix(s, "alt+"):
			c.Secondary = true
			s = s[len("alt+"):]
			continue
		case strings.HasPrefix(s, "ctrl+") && len(s) > len("ctrl+"):
			c.Primary = true
			s = s[len("ctrl+"):]
			continue
		}
		break
	}
	c.Key = s
	return c
}

type chordKey struct {
	secondary bool
	key       string
}

// chordTable is the editor's fixed command table. Every entry requires the
// primary modifier.
var chordTable = map[chordKey]Action{
	{false, "n"}:   ActionNewDocument,
	{false, "t"}:   ActionNewTab,
	{false, "w"}:   ActionCloseTab,
	{false, "o"}:   ActionOpenFile,
	{false, "r"}:   ActionOpenMostRecent,
	{false, "s"}:   ActionSave,
	{false, "b"}:   ActionBold,
	{false, "i"}:   ActionItalic,
	{false, "z"}:   ActionUndo,
	{false, "y"}:   ActionRedo,
	{false, "f"}:   ActionOpenFind,
	{false, "h"}:   ActionOpenFindRepl,
	{false, "k"}:   ActionInsertLink,
	{false, "0"}:   ActionParagraph,
	{false, "1"}:   ActionHeading1,
	{false, "2"}:   ActionHeading2,
	{false, "3"}:   ActionHeading3,
	{false, "4"}:   ActionHeading4,
	{false, "5"}:   ActionHeading5,
	{false, "6"}:   ActionHeading6,
	{false, "tab"}: ActionCycleNext,
	{true, "s"}:    ActionSaveAs,
	{true, "c"}:    ActionCodeBlock,
	{true, "8"}:    ActionBulletList,
	{true, "7"}:    ActionOrderedList,
	{true, "tab"}:  ActionCyclePrevious,
}

// ChordToCommand maps a chord to its command. Chords without the primary
// modifier and chords not in the table map to nothing.
func ChordToCommand(c Chord) (Action, bool) {
	if !c.Primary {
		return "", false
	}
	action, ok := chordTable[chordKey{c.Secondary, strings.ToLower(c.Key)}]
	return action, ok
}

// TableChords returns every chord of the command table
func TableChords() []Chord {
	chords := make([]Chord, 0, len(chordTable))
	for k := range chordTable {
		chords = append(chords, Chord{Primary: true, Secondary: k.secondary, Key: k.key})
	}
	return chords
}
