package service

import (
	"context"

	"mempush/internal/model"
	"mempush/pkg/network"
)

// SubmitInput 提交请求; TxID 不为空时从区块浏览器拉取 raw hex
type SubmitInput struct {
	RawTx string
	TxID  string
}

// TransactionStore 交易持久化
type TransactionStore interface {
	Create(ctx context.Context, tx *model.Transaction) error
	Find(ctx context.Context, net network.Network, txid string) (*model.Transaction, error)
	List(ctx context.Context, net network.Network) ([]model.Transaction, error)
	// ListUnconfirmed 按 ID 升序分页, afterID 为上一页最后一条的 ID
	ListUnconfirmed(ctx context.Context, net network.Network, afterID uint64, limit int) ([]model.Transaction, error)
	Save(ctx context.Context, tx *model.Transaction) error
	Delete(ctx context.Context, tx *model.Transaction) error
}

// TransactionService 对外的业务接口, handler 只依赖这个接口
type TransactionService interface {
	Submit(ctx context.Context, net network.Network, in SubmitInput) (*model.Transaction, error)
	Get(ctx context.Context, net network.Network, txid string) (*model.Transaction, error)
	List(ctx context.Context, net network.Network) ([]model.Transaction, error)
	Push(ctx context.Context, net network.Network, txid string) (*model.Transaction, error)
	Delete(ctx context.Context, net network.Network, txid string) error
}
