package mq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// 交易生命周期事件
const (
	EventSubmitted = "transaction.submitted"
	EventPushed    = "transaction.pushed"
	EventDeleted   = "transaction.deleted"
)

// Producer 生产者接口
type Producer interface {
	// Publish 发送消息
	// key: 分区键, 这里使用 network:txid 保证同一交易的事件有序
	Publish(ctx context.Context, topic string, key string, payload []byte) error
	Close() error
}

// Event 交易事件
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Network    string    `json:"network"`
	TxID       string    `json:"txid"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewEvent(eventType, network, txid, status string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Network:    network,
		TxID:       txid,
		Status:     status,
		OccurredAt: time.Now().UTC(),
	}
}

func (e Event) Key() string {
	return e.Network + ":" + e.TxID
}

func (e Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// NopProducer 未配置消息队列时使用
type NopProducer struct{}

func (NopProducer) Publish(ctx context.Context, topic string, key string, payload []byte) error {
	return nil
}

func (NopProducer) Close() error {
	return nil
}
