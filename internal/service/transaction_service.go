package service

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
	"go.uber.org/zap"

	"mempush/internal/model"
	"mempush/internal/service/explorer"
	"mempush/internal/service/mq"
	"mempush/pkg/errno"
	"mempush/pkg/logger"
	"mempush/pkg/monitor"
	"mempush/pkg/network"
)

const (
	analysisConfirmed = "Transaction is already confirmed in the blockchain"
	analysisInMempool = "Transaction is already present in mempool"
)

type transactionService struct {
	store    TransactionStore
	explorer explorer.Explorer
	producer mq.Producer
	topic    string
}

func NewTransactionService(store TransactionStore, exp explorer.Explorer, producer mq.Producer, topic string) TransactionService {
	if producer == nil {
		producer = mq.NopProducer{}
	}
	return &transactionService{
		store:    store,
		explorer: exp,
		producer: producer,
		topic:    topic,
	}
}

// Submit 校验并保存一笔原始交易, txid 由交易内容计算
func (s *transactionService) Submit(ctx context.Context, net network.Network, in SubmitInput) (*model.Transaction, error) {
	rawTx := strings.TrimSpace(in.RawTx)

	// 1. 只给了 txid: 从浏览器拉取 hex
	if in.TxID != "" && rawTx == "" {
		fetched, err := s.explorer.RawTx(ctx, net, in.TxID)
		if errors.Is(err, explorer.ErrNotFound) {
			return nil, errno.ErrTxNotFound
		}
		if err != nil {
			return nil, errno.ErrExplorerFetch.WithMessage("Error fetching transaction: " + err.Error())
		}
		rawTx = fetched
	}

	// 2. 基本校验
	if rawTx == "" {
		return nil, errno.ErrRawTxRequired
	}
	if !isHex(rawTx) {
		return nil, errno.ErrRawTxNotHex
	}

	// 3. 解析交易, 计算 txid
	txid, err := ComputeTxID(rawTx)
	if err != nil {
		return nil, errno.ErrInvalidTxFormat.WithMessage("Invalid transaction format: " + err.Error())
	}
	if in.TxID != "" && !strings.EqualFold(in.TxID, txid) {
		return nil, errno.ErrTxIDMismatch
	}

	// 4. 保存
	if _, err := s.store.Find(ctx, net, txid); err == nil {
		return nil, errno.ErrTxExists
	}
	tx := &model.Transaction{
		Network: string(net),
		TxID:    txid,
		RawTx:   rawTx,
		Status:  model.StatusPending,
	}
	if err := s.store.Create(ctx, tx); err != nil {
		if errors.Is(err, errno.ErrTxExists) {
			return nil, err
		}
		logger.Error("save transaction failed", zap.String("txid", txid), zap.Error(err))
		return nil, errno.ErrDatabase
	}

	monitor.Business.TxSubmittedTotal.WithLabelValues(string(net)).Inc()
	s.publish(ctx, mq.EventSubmitted, tx)
	logger.Info("transaction submitted", zap.String("network", string(net)), zap.String("txid", txid))
	return tx, nil
}

func (s *transactionService) Get(ctx context.Context, net network.Network, txid string) (*model.Transaction, error) {
	return s.find(ctx, net, txid)
}

func (s *transactionService) List(ctx context.Context, net network.Network) ([]model.Transaction, error) {
	txs, err := s.store.List(ctx, net)
	if err != nil {
		logger.Error("list transactions failed", zap.Error(err))
		return nil, errno.ErrDatabase
	}
	return txs, nil
}

// Push 广播交易到 mempool
// 已确认的交易直接返回; 浏览器已知的交易只更新状态; 未知的才真正广播
func (s *transactionService) Push(ctx context.Context, net network.Network, txid string) (*model.Transaction, error) {
	tx, err := s.find(ctx, net, txid)
	if err != nil {
		return nil, err
	}
	if tx.IsConfirmed() {
		return tx, nil
	}

	pushErr := s.push(ctx, net, tx)
	if pushErr != nil {
		tx.Status = model.StatusError
		tx.AnalysisResult = pushErr.Error()
		tx.PushAttempts++
		logger.Error("push transaction failed", zap.String("txid", txid), zap.Error(pushErr))
	}

	if err := s.store.Save(ctx, tx); err != nil {
		logger.Error("save push result failed", zap.String("txid", txid), zap.Error(err))
		return nil, errno.ErrDatabase
	}

	monitor.Business.TxPushTotal.WithLabelValues(string(net), tx.Status).Inc()
	s.publish(ctx, mq.EventPushed, tx)

	if pushErr != nil {
		return tx, errno.ErrPushExplorerFailure.WithMessage(pushErr.Error())
	}
	return tx, nil
}

func (s *transactionService) push(ctx context.Context, net network.Network, tx *model.Transaction) error {
	// 1. 先查询是否已在链上 / mempool 中
	status, err := s.explorer.Status(ctx, net, tx.TxID)
	switch {
	case err == nil && status.Confirmed:
		tx.Status = model.StatusConfirmed
		tx.AnalysisResult = analysisConfirmed
		return nil
	case err == nil:
		tx.Status = model.StatusSuccess
		tx.AnalysisResult = analysisInMempool
		return nil
	case !errors.Is(err, explorer.ErrNotFound):
		return err
	}

	// 2. 浏览器不认识这笔交易, 广播
	res, err := s.explorer.Broadcast(ctx, net, tx.RawTx)
	if err != nil {
		return err
	}
	tx.AnalysisResult = res.Response
	if res.Accepted {
		tx.Status = model.StatusSuccess
	} else {
		tx.Status = model.StatusFailed
	}
	tx.PushAttempts++
	return nil
}

// Delete 只允许删除已确认的交易
func (s *transactionService) Delete(ctx context.Context, net network.Network, txid string) error {
	tx, err := s.find(ctx, net, txid)
	if err != nil {
		return err
	}
	if !tx.IsConfirmed() {
		return errno.ErrDeleteNotConfirmed
	}
	if err := s.store.Delete(ctx, tx); err != nil {
		logger.Error("delete transaction failed", zap.String("txid", txid), zap.Error(err))
		return errno.ErrDatabase
	}

	monitor.Business.TxDeletedTotal.WithLabelValues(string(net)).Inc()
	s.publish(ctx, mq.EventDeleted, tx)
	return nil
}

func (s *transactionService) find(ctx context.Context, net network.Network, txid string) (*model.Transaction, error) {
	tx, err := s.store.Find(ctx, net, txid)
	if errors.Is(err, errno.ErrTxNotFound) {
		return nil, err
	}
	if err != nil {
		logger.Error("find transaction failed", zap.String("txid", txid), zap.Error(err))
		return nil, errno.ErrDatabase
	}
	return tx, nil
}

// publish 事件发送失败不影响主流程
func (s *transactionService) publish(ctx context.Context, eventType string, tx *model.Transaction) {
	ev := mq.NewEvent(eventType, tx.Network, tx.TxID, tx.Status)
	payload, err := ev.Marshal()
	if err != nil {
		logger.Error("marshal event failed", zap.Error(err))
		return
	}
	if err := s.producer.Publish(ctx, s.topic, ev.Key(), payload); err != nil {
		logger.Warn("publish event failed", zap.String("type", eventType), zap.String("txid", tx.TxID), zap.Error(err))
	}
}

// ComputeTxID 反序列化原始交易并返回 txid (不含 witness 的双 SHA256, 大端显示)
func ComputeTxID(rawTx string) (string, error) {
	raw, err := hex.DecodeString(rawTx)
	if err != nil {
		return "", err
	}

	var msgTx wire.MsgTx
	r := bytes.NewReader(raw)
	if err := msgTx.Deserialize(r); err != nil {
		return "", err
	}
	if r.Len() != 0 {
		return "", errors.New("unexpected trailing bytes after transaction")
	}
	return btcutil.NewTx(&msgTx).Hash().String(), nil
}

func isHex(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
