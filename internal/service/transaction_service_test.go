package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mempush/internal/model"
	"mempush/internal/service/explorer"
	"mempush/pkg/errno"
	"mempush/pkg/network"
)

func newTestService() (TransactionService, *memoryStore, *fakeExplorer, *recordingProducer) {
	store := newMemoryStore()
	exp := newFakeExplorer()
	prod := &recordingProducer{}
	return NewTransactionService(store, exp, prod, "events"), store, exp, prod
}

func TestComputeTxID(t *testing.T) {
	txid, err := ComputeTxID(genesisRawTx)
	require.NoError(t, err)
	assert.Equal(t, genesisTxID, txid)

	_, err = ComputeTxID("0100")
	assert.Error(t, err)

	_, err = ComputeTxID(genesisRawTx + "00")
	assert.Error(t, err)

	_, err = ComputeTxID("abc")
	assert.Error(t, err)
}

func TestSubmit(t *testing.T) {
	svc, store, _, prod := newTestService()
	ctx := context.Background()

	tx, err := svc.Submit(ctx, network.Signet, SubmitInput{RawTx: "  " + genesisRawTx + "\n"})
	require.NoError(t, err)
	assert.Equal(t, genesisTxID, tx.TxID)
	assert.Equal(t, "signet", tx.Network)
	assert.Equal(t, model.StatusPending, tx.Status)
	assert.Equal(t, genesisRawTx, tx.RawTx)

	stored, err := store.Find(ctx, network.Signet, genesisTxID)
	require.NoError(t, err)
	assert.Equal(t, tx.ID, stored.ID)
	assert.Equal(t, []string{"signet:" + genesisTxID}, prod.keys)

	// 同一网络重复提交
	_, err = svc.Submit(ctx, network.Signet, SubmitInput{RawTx: genesisRawTx})
	assert.ErrorIs(t, err, errno.ErrTxExists)

	// 不同网络互不影响
	_, err = svc.Submit(ctx, network.Mainchain, SubmitInput{RawTx: genesisRawTx})
	assert.NoError(t, err)
}

func TestSubmitValidation(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name    string
		in      SubmitInput
		wantErr errno.Errno
		wantMsg string
	}{
		{"Empty", SubmitInput{RawTx: ""}, errno.ErrRawTxRequired, "Raw transaction is required"},
		{"Whitespace", SubmitInput{RawTx: "   "}, errno.ErrRawTxRequired, "Raw transaction is required"},
		{"Not hex", SubmitInput{RawTx: "zz00"}, errno.ErrRawTxNotHex, "Raw transaction must contain only hexadecimal characters"},
		{"Truncated", SubmitInput{RawTx: "0100"}, errno.ErrInvalidTxFormat, "Invalid transaction format: "},
		{"Unknown txid", SubmitInput{TxID: "ff"}, errno.ErrTxNotFound, "Transaction not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, network.Mainchain, tt.in)
			require.Error(t, err)

			var e errno.Errno
			require.True(t, errors.As(err, &e))
			assert.Equal(t, tt.wantErr.Code, e.Code)
			assert.True(t, strings.HasPrefix(e.Message, tt.wantMsg), e.Message)
		})
	}
}

func TestSubmitByTxID(t *testing.T) {
	svc, _, exp, _ := newTestService()
	ctx := context.Background()
	exp.rawTxs[genesisTxID] = genesisRawTx

	tx, err := svc.Submit(ctx, network.Testnetv4, SubmitInput{TxID: genesisTxID})
	require.NoError(t, err)
	assert.Equal(t, genesisRawTx, tx.RawTx)

	// 浏览器返回的 hex 与 txid 不符
	exp.rawTxs["aa"] = genesisRawTx
	_, err = svc.Submit(ctx, network.Signet, SubmitInput{TxID: "aa"})
	assert.ErrorIs(t, err, errno.ErrTxIDMismatch)
}

func TestSubmitRawTxWithTxID(t *testing.T) {
	svc, _, exp, _ := newTestService()
	ctx := context.Background()

	// 浏览器里没有这笔交易, 以提交的 hex 为准
	tx, err := svc.Submit(ctx, network.Signet, SubmitInput{RawTx: genesisRawTx, TxID: genesisTxID})
	require.NoError(t, err)
	assert.Equal(t, genesisTxID, tx.TxID)
	assert.Equal(t, genesisRawTx, tx.RawTx)

	// hex 与 txid 不符
	_, err = svc.Submit(ctx, network.Testnetv3, SubmitInput{RawTx: genesisRawTx, TxID: strings.Repeat("ab", 32)})
	assert.ErrorIs(t, err, errno.ErrTxIDMismatch)

	// 两者都给时不访问浏览器
	exp.rawTxs[genesisTxID] = "00"
	tx, err = svc.Submit(ctx, network.Mainchain, SubmitInput{RawTx: genesisRawTx, TxID: genesisTxID})
	require.NoError(t, err)
	assert.Equal(t, genesisRawTx, tx.RawTx)
}

func submitGenesis(t *testing.T, svc TransactionService, net network.Network) {
	t.Helper()
	_, err := svc.Submit(context.Background(), net, SubmitInput{RawTx: genesisRawTx})
	require.NoError(t, err)
}

func TestPushBroadcastsUnknownTransaction(t *testing.T) {
	svc, _, exp, _ := newTestService()
	ctx := context.Background()
	submitGenesis(t, svc, network.Mainchain)

	tx, err := svc.Push(ctx, network.Mainchain, genesisTxID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSuccess, tx.Status)
	assert.Equal(t, 1, tx.PushAttempts)
	assert.Equal(t, genesisTxID, tx.AnalysisResult)
	assert.Equal(t, []string{genesisRawTx}, exp.broadcasted)
}

func TestPushRejected(t *testing.T) {
	svc, _, exp, _ := newTestService()
	ctx := context.Background()
	submitGenesis(t, svc, network.Mainchain)
	exp.broadcast = &explorer.BroadcastResult{Accepted: false, StatusCode: 400, Response: "bad-txns-inputs-missingorspent"}

	tx, err := svc.Push(ctx, network.Mainchain, genesisTxID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusFailed, tx.Status)
	assert.Equal(t, "bad-txns-inputs-missingorspent", tx.AnalysisResult)

	tx, err = svc.Push(ctx, network.Mainchain, genesisTxID)
	require.NoError(t, err)
	assert.Equal(t, 2, tx.PushAttempts)
}

func TestPushAlreadyKnown(t *testing.T) {
	svc, _, exp, _ := newTestService()
	ctx := context.Background()
	submitGenesis(t, svc, network.Signet)

	exp.statuses[genesisTxID] = &explorer.TxStatus{Confirmed: false}
	tx, err := svc.Push(ctx, network.Signet, genesisTxID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSuccess, tx.Status)
	assert.Equal(t, "Transaction is already present in mempool", tx.AnalysisResult)
	assert.Equal(t, 0, exp.broadcastN)

	exp.statuses[genesisTxID] = &explorer.TxStatus{Confirmed: true}
	tx, err = svc.Push(ctx, network.Signet, genesisTxID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, tx.Status)
	assert.Equal(t, "Transaction is already confirmed in the blockchain", tx.AnalysisResult)

	// 已确认后不再访问浏览器
	exp.statusErr = errors.New("should not be called")
	tx, err = svc.Push(ctx, network.Signet, genesisTxID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, tx.Status)
	assert.Equal(t, 0, exp.broadcastN)
}

func TestPushExplorerError(t *testing.T) {
	svc, store, exp, _ := newTestService()
	ctx := context.Background()
	submitGenesis(t, svc, network.Mainchain)
	exp.statusErr = errors.New("dial tcp: i/o timeout")

	tx, err := svc.Push(ctx, network.Mainchain, genesisTxID)
	require.Error(t, err)
	require.NotNil(t, tx)
	assert.Equal(t, model.StatusError, tx.Status)
	assert.Equal(t, "dial tcp: i/o timeout", tx.AnalysisResult)
	assert.Equal(t, 1, tx.PushAttempts)

	var e errno.Errno
	require.True(t, errors.As(err, &e))
	assert.Equal(t, errno.ErrPushExplorerFailure.Code, e.Code)

	stored, _ := store.Find(ctx, network.Mainchain, genesisTxID)
	assert.Equal(t, model.StatusError, stored.Status)
}

func TestPushNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()
	_, err := svc.Push(context.Background(), network.Mainchain, "missing")
	assert.ErrorIs(t, err, errno.ErrTxNotFound)
}

func TestDelete(t *testing.T) {
	svc, _, exp, prod := newTestService()
	ctx := context.Background()
	submitGenesis(t, svc, network.Mainchain)

	err := svc.Delete(ctx, network.Mainchain, genesisTxID)
	assert.ErrorIs(t, err, errno.ErrDeleteNotConfirmed)

	exp.statuses[genesisTxID] = &explorer.TxStatus{Confirmed: true}
	_, err = svc.Push(ctx, network.Mainchain, genesisTxID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, network.Mainchain, genesisTxID))
	_, err = svc.Get(ctx, network.Mainchain, genesisTxID)
	assert.ErrorIs(t, err, errno.ErrTxNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, network.Mainchain, genesisTxID), errno.ErrTxNotFound)
	assert.Len(t, prod.keys, 3) // submitted, pushed, deleted
}

func TestList(t *testing.T) {
	svc, store, _, _ := newTestService()
	ctx := context.Background()
	submitGenesis(t, svc, network.Signet)
	require.NoError(t, store.Create(ctx, &model.Transaction{Network: "signet", TxID: "bb", RawTx: "00", Status: model.StatusPending}))
	require.NoError(t, store.Create(ctx, &model.Transaction{Network: "mainchain", TxID: "cc", RawTx: "00", Status: model.StatusPending}))

	txs, err := svc.List(ctx, network.Signet)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "bb", txs[0].TxID)
	assert.Equal(t, genesisTxID, txs[1].TxID)
}
