package model

import "time"

// 交易状态
const (
	StatusPending   = "pending"
	StatusSuccess   = "success"   // 已进入 mempool
	StatusConfirmed = "confirmed" // 已上链
	StatusFailed    = "failed"    // 广播被拒绝
	StatusError     = "error"     // 广播过程出错 (网络等)
)

// Transaction 用户提交的原始交易
type Transaction struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Network        string    `gorm:"type:varchar(20);not null;default:'mainchain';uniqueIndex:idx_network_txid" json:"network"`
	TxID           string    `gorm:"column:txid;type:varchar(64);not null;uniqueIndex:idx_network_txid" json:"txid"`
	RawTx          string    `gorm:"type:text;not null" json:"raw_tx"`
	Status         string    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PushAttempts   int       `gorm:"not null;default:0" json:"push_attempts"`
	AnalysisResult string    `gorm:"type:text" json:"analysis_result"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// IsConfirmed 已上链的交易不再重复广播，也是唯一允许删除的状态
func (t *Transaction) IsConfirmed() bool {
	return t.Status == StatusConfirmed
}
