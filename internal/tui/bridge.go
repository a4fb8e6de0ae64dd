package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/inkpad/internal/fileio"
	"github.com/studiowebux/inkpad/internal/guard"
)

// bridge answers the workspace's blocking questions with modals. Each call
// sends a request to the program and waits for the reply or for ctx.
type bridge struct {
	send func(tea.Msg)
}

type confirmRequestMsg struct {
	message string
	kind    guard.Kind
	reply   chan bool
}

type promptReply struct {
	value string
	ok    bool
}

type promptRequestMsg struct {
	label   string
	initial string
	reply   chan promptReply
}

type dialogRequestMsg struct {
	save      bool
	filters   []fileio.Filter
	suggested string
	reply     chan promptReply
}

// Confirm implements guard.Confirmer
func (b *bridge) Confirm(ctx context.Context, message string, kind guard.Kind) bool {
	reply := make(chan bool, 1)
	b.send(confirmRequestMsg{message: message, kind: kind, reply: reply})
	select {
	case yes := <-reply:
		return yes
	case <-ctx.Done():
		return false
	}
}

// Prompt implements workspace.Prompter
func (b *bridge) Prompt(ctx context.Context, label, initial string) (string, bool) {
	reply := make(chan promptReply, 1)
	b.send(promptRequestMsg{label: label, initial: initial, reply: reply})
	return wait(ctx, reply)
}

// OpenFile implements fileio.Dialogs
func (b *bridge) OpenFile(ctx context.Context, filters []fileio.Filter) (string, bool) {
	reply := make(chan promptReply, 1)
	b.send(dialogRequestMsg{filters: filters, reply: reply})
	return wait(ctx, reply)
}

// SaveFile implements fileio.Dialogs
func (b *bridge) SaveFile(ctx context.Context, filters []fileio.Filter, suggested string) (string, bool) {
	reply := make(chan promptReply, 1)
	b.send(dialogRequestMsg{save: true, filters: filters, suggested: suggested, reply: reply})
	return wait(ctx, reply)
}

func wait(ctx context.Context, reply <-chan promptReply) (string, bool) {
	select {
	case r := <-reply:
		return r.value, r.ok
	case <-ctx.Done():
		return "", false
	}
}
