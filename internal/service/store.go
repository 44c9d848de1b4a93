package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mempush/internal/model"
	"mempush/pkg/errno"
	"mempush/pkg/network"
)

// GormStore 基于 gorm 的 TransactionStore
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, tx *model.Transaction) error {
	err := s.db.WithContext(ctx).Create(tx).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errno.ErrTxExists
	}
	return err
}

func (s *GormStore) Find(ctx context.Context, net network.Network, txid string) (*model.Transaction, error) {
	var tx model.Transaction
	err := s.db.WithContext(ctx).
		Where("network = ? AND txid = ?", string(net), txid).
		First(&tx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errno.ErrTxNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (s *GormStore) List(ctx context.Context, net network.Network) ([]model.Transaction, error) {
	var txs []model.Transaction
	err := s.db.WithContext(ctx).
		Where("network = ?", string(net)).
		Order("created_at DESC").
		Find(&txs).Error
	return txs, err
}

func (s *GormStore) ListUnconfirmed(ctx context.Context, net network.Network, afterID uint64, limit int) ([]model.Transaction, error) {
	var txs []model.Transaction
	err := s.db.WithContext(ctx).
		Where("network = ? AND status <> ? AND id > ?", string(net), model.StatusConfirmed, afterID).
		Order("id ASC").
		Limit(limit).
		Find(&txs).Error
	return txs, err
}

func (s *GormStore) Save(ctx context.Context, tx *model.Transaction) error {
	return s.db.WithContext(ctx).Save(tx).Error
}

func (s *GormStore) Delete(ctx context.Context, tx *model.Transaction) error {
	return s.db.WithContext(ctx).Delete(tx).Error
}
