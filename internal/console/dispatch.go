package console

import (
	"context"
	"fmt"
	"strings"
)

type ActionKind string

const (
	ActionPush   ActionKind = "push"
	ActionDelete ActionKind = "delete"
)

// Action is what a rendered row asks for: the kind comes from the row's
// data-action attribute and the txid from data-txid.
type Action struct {
	Kind ActionKind
	TxID string
}

func ParseAction(kind, txid string) (Action, error) {
	txid = strings.TrimSpace(txid)
	if txid == "" {
		return Action{}, fmt.Errorf("action %q: missing txid", kind)
	}
	switch ActionKind(strings.ToLower(strings.TrimSpace(kind))) {
	case ActionPush:
		return Action{Kind: ActionPush, TxID: txid}, nil
	case ActionDelete:
		return Action{Kind: ActionDelete, TxID: txid}, nil
	default:
		return Action{}, fmt.Errorf("unknown action %q", kind)
	}
}

// Dispatch routes a row action to its handler.
func (c *Console) Dispatch(ctx context.Context, a Action) error {
	switch a.Kind {
	case ActionPush:
		return c.Push(ctx, a.TxID)
	case ActionDelete:
		return c.Delete(ctx, a.TxID)
	default:
		return fmt.Errorf("unknown action %q", a.Kind)
	}
}
