package guard

import (
	"context"
	"fmt"

	"github.com/studiowebux/inkpad/internal/logging"
	"github.com/studiowebux/inkpad/internal/tabs"
)

// Kind hints how a confirmation should be presented
type Kind string

const (
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Confirmer asks the user a yes/no question and waits for the answer.
// A cancelled context counts as "no".
type Confirmer interface {
	Confirm(ctx context.Context, message string, kind Kind) bool
}

// Guard is the single decision point before unsaved edits are discarded
type Guard struct {
	confirmer Confirmer
}

// New creates a guard asking through confirmer
func New(confirmer Confirmer) *Guard {
	return &Guard{confirmer: confirmer}
}

// ConfirmDiscard returns true when tab may lose its in-memory state.
// Unmodified tabs pass without a prompt.
func (g *Guard) ConfirmDiscard(ctx context.Context, tab tabs.Tab) bool {
	if !tab.IsModified {
		return true
	}
	return g.ask(ctx, DiscardMessage(tab))
}

// ConfirmQuit returns true when the application may close with the given
// modified tabs
func (g *Guard) ConfirmQuit(ctx context.Context, modified []tabs.Tab) bool {
	switch len(modified) {
	case 0:
		return true
	case 1:
		return g.ask(ctx, DiscardMessage(modified[0]))
	default:
		return g.ask(ctx, fmt.Sprintf("%d documents have unsaved changes. Quit and discard them?", len(modified)))
	}
}

func (g *Guard) ask(ctx context.Context, message string) bool {
	if ctx.Err() != nil {
		return false
	}
	ok := g.confirmer.Confirm(ctx, message, KindWarning)
	if !ok {
		logging.FromContext(ctx).Debug().Str("prompt", message).Msg("discard declined")
	}
	return ok
}

// DiscardMessage is the question asked before discarding tab
func DiscardMessage(tab tabs.Tab) string {
	return fmt.Sprintf("%q has unsaved changes. Discard them?", tab.DisplayName())
}
