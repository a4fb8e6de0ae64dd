/*
Package keybinds maps terminal key presses to editor actions.

# Overview

Two layers cooperate:

  - The command table (chord.go): a pure function ChordToCommand from a
    Chord (primary modifier, secondary modifier, key) to an Action. It has
    no state and is the canonical list of editing commands.
  - The Registry (registry.go): context-aware key -> action lookup used by
    the TUI. Defaults install every chord of the command table plus
    aliases for chords terminals cannot report, then keybinds.json
    overrides are applied on top.

# Contexts

  - global: available everywhere (quit)
  - editor: the editing surface
  - find, prompt, confirm, picker, help: the modals

A key bound in a specific context shadows the same key in global.

# Configuration File Format

keybinds.json maps keys to action names per context. Comments and
trailing commas are accepted. The action "none" removes a default.

	{
	  // hand-picked overrides
	  "version": "1.0",
	  "editor": {
	    "ctrl+e": "copy_markdown",
	    "alt+m": "none",
	  }
	}

Use `inkpad keybinds export` to print the full default set and
`inkpad keybinds validate` to check a file.

# Validation

The validator reports unknown contexts and actions as errors, and
warns about shadowed global keys, a rebound ctrl+c, and table commands
left without any key.

# Thread Safety

The Registry is not synchronized. Build it during startup and only read
it afterwards.
*/
package keybinds
