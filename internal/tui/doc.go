/*
Package tui implements the terminal user interface for inkpad.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: the latest workspace snapshot plus view-only state
  - Update: processes key presses and messages from the event loop
  - View: renders the tab bar, the editor and any open modal

# Threading Model

Workspace state is owned by a workspace.Loop running in its own
goroutine. The model never mutates it directly: key presses become jobs
posted to the loop, and the loop publishes a snapshot after every job,
delivered as a snapshotMsg.

Typing is the exception. The text area writes straight into the shared
surface.Buffer, which forwards the change to the loop. Edits made against
a view older than the buffer's revision are rejected and the view is
reloaded.

# Modal System

Modes fall in two groups:
  - Blocking (ModeConfirm, ModePrompt, ModeFileDialog): the loop is
    suspended in a bridge call until the modal answers
  - View-only (ModeFind, ModeRecent, ModeHelp)

# Keybind System

Every key is resolved through keybinds.Registry in the context of the
current mode, falling back to the global context. Editor actions are
routed by commands.Dispatcher.
*/
package tui
