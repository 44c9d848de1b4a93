// Package console binds user actions (submit a raw transaction, push or delete
// a stored one) to the transaction API and reports the outcome through
// pluggable notify, confirm and navigate collaborators.
package console

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"mempush/pkg/logger"
	"mempush/pkg/txclient"
)

const (
	msgPushed        = "Transaction pushed successfully"
	msgConfirmDelete = "Are you sure you want to delete this transaction?"
)

// ErrInFlight is returned when the same action is triggered again before the
// previous request for it has finished. No request is issued.
var ErrInFlight = errors.New("request already in flight")

// ErrDeclined is returned when the user does not confirm a delete.
var ErrDeclined = errors.New("delete declined")

// TransactionAPI is the subset of *txclient.Client the console drives.
type TransactionAPI interface {
	Submit(ctx context.Context, rawTx string) (*txclient.SubmitResult, error)
	Push(ctx context.Context, txid string) (*txclient.PushResult, error)
	Delete(ctx context.Context, txid string) error
	DetailPath(txid string) string
}

// Notifier shows a blocking message to the user.
type Notifier interface {
	Alert(msg string)
}

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Navigator moves the user to another page or refreshes the current one.
type Navigator interface {
	Navigate(path string)
	Reload()
}

type Console struct {
	api       TransactionAPI
	notifier  Notifier
	confirmer Confirmer
	nav       Navigator

	mu       sync.Mutex
	inflight map[string]struct{}
}

func New(api TransactionAPI, notifier Notifier, confirmer Confirmer, nav Navigator) *Console {
	return &Console{
		api:       api,
		notifier:  notifier,
		confirmer: confirmer,
		nav:       nav,
		inflight:  make(map[string]struct{}),
	}
}

// Submit sends rawTx and navigates to its detail page on success.
func (c *Console) Submit(ctx context.Context, rawTx string) error {
	release, ok := c.acquire("submit")
	if !ok {
		logger.Debug("submit ignored, previous submit still running")
		return ErrInFlight
	}
	defer release()

	res, err := c.api.Submit(ctx, rawTx)
	if err != nil {
		logger.Error("submit transaction failed", zap.Error(err))
		c.notifier.Alert("Error submitting transaction: " + err.Error())
		return err
	}

	c.nav.Navigate(c.api.DetailPath(res.TxID))
	return nil
}

// Push asks the server to broadcast txid and reloads on success.
func (c *Console) Push(ctx context.Context, txid string) error {
	release, ok := c.acquire("tx:" + txid)
	if !ok {
		logger.Debug("push ignored, request in flight", zap.String("txid", txid))
		return ErrInFlight
	}
	defer release()

	_, err := c.api.Push(ctx, txid)
	if err != nil {
		logger.Error("push transaction failed", zap.String("txid", txid), zap.Error(err))
		if txclient.IsStatusError(err) {
			c.notifier.Alert("Error: " + err.Error())
		} else {
			c.notifier.Alert("Error pushing transaction: " + err.Error())
		}
		return err
	}

	c.notifier.Alert(msgPushed)
	c.nav.Reload()
	return nil
}

// Delete removes txid after the user confirms, then reloads.
func (c *Console) Delete(ctx context.Context, txid string) error {
	release, ok := c.acquire("tx:" + txid)
	if !ok {
		logger.Debug("delete ignored, request in flight", zap.String("txid", txid))
		return ErrInFlight
	}
	defer release()

	if !c.confirmer.Confirm(msgConfirmDelete) {
		return ErrDeclined
	}

	if err := c.api.Delete(ctx, txid); err != nil {
		logger.Error("delete transaction failed", zap.String("txid", txid), zap.Error(err))
		if txclient.IsStatusError(err) {
			c.notifier.Alert("Error: " + err.Error())
		} else {
			c.notifier.Alert("Error deleting transaction: " + err.Error())
		}
		return err
	}

	c.nav.Reload()
	return nil
}

// acquire marks key as busy. The returned func clears it.
func (c *Console) acquire(key string) (func(), bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, busy := c.inflight[key]; busy {
		return nil, false
	}
	c.inflight[key] = struct{}{}
	return func() {
		c.mu.Lock()
		delete(c.inflight, key)
		c.mu.Unlock()
	}, true
}
