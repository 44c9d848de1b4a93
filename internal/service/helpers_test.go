package service

import (
	"context"
	"sort"
	"sync"

	"mempush/internal/model"
	"mempush/internal/service/explorer"
	"mempush/pkg/errno"
	"mempush/pkg/network"
)

const (
	genesisTxID  = "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"
	genesisRawTx = "01000000010000000000000000000000000000000000000000000000000000000000000000ffffffff4d04ffff001d0104455468652054696d65732030332f4a616e2f32303039204368616e63656c6c6f72206f6e206272696e6b206f66207365636f6e64206261696c6f757420666f722062616e6b73ffffffff0100f2052a01000000434104678afdb0fe5548271967f1a67130b7105cd6a828e03909a67962e0ea1f61deb649f6bc3f4cef38c4f35504e51ec112de5c384df7ba0b8d578a4c702b6bf11d5fac00000000"
)

// memoryStore 测试用的内存 TransactionStore
type memoryStore struct {
	mu     sync.Mutex
	nextID uint64
	txs    map[string]*model.Transaction
}

func newMemoryStore() *memoryStore {
	return &memoryStore{txs: make(map[string]*model.Transaction)}
}

func storeKey(net, txid string) string {
	return net + "/" + txid
}

func (m *memoryStore) Create(ctx context.Context, tx *model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := storeKey(tx.Network, tx.TxID)
	if _, ok := m.txs[k]; ok {
		return errno.ErrTxExists
	}
	m.nextID++
	tx.ID = m.nextID
	cp := *tx
	m.txs[k] = &cp
	return nil
}

func (m *memoryStore) Find(ctx context.Context, net network.Network, txid string) (*model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.txs[storeKey(string(net), txid)]
	if !ok {
		return nil, errno.ErrTxNotFound
	}
	cp := *tx
	return &cp, nil
}

func (m *memoryStore) all(net network.Network) []model.Transaction {
	var out []model.Transaction
	for _, tx := range m.txs {
		if tx.Network == string(net) {
			out = append(out, *tx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memoryStore) List(ctx context.Context, net network.Network) ([]model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.all(net)
	// 新的在前
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (m *memoryStore) ListUnconfirmed(ctx context.Context, net network.Network, afterID uint64, limit int) ([]model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Transaction
	for _, tx := range m.all(net) {
		if tx.Status != model.StatusConfirmed && tx.ID > afterID {
			out = append(out, tx)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (m *memoryStore) Save(ctx context.Context, tx *model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *tx
	m.txs[storeKey(tx.Network, tx.TxID)] = &cp
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, tx *model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.txs, storeKey(tx.Network, tx.TxID))
	return nil
}

// fakeExplorer 可编程的区块浏览器
type fakeExplorer struct {
	mu          sync.Mutex
	statuses    map[string]*explorer.TxStatus
	statusErr   error
	rawTxs      map[string]string
	broadcast   *explorer.BroadcastResult
	broadcastN  int
	broadcasted []string
}

func newFakeExplorer() *fakeExplorer {
	return &fakeExplorer{
		statuses:  make(map[string]*explorer.TxStatus),
		rawTxs:    make(map[string]string),
		broadcast: &explorer.BroadcastResult{Accepted: true, StatusCode: 200, Response: genesisTxID},
	}
}

func (f *fakeExplorer) Status(ctx context.Context, net network.Network, txid string) (*explorer.TxStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	st, ok := f.statuses[txid]
	if !ok {
		return nil, explorer.ErrNotFound
	}
	return st, nil
}

func (f *fakeExplorer) RawTx(ctx context.Context, net network.Network, txid string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.rawTxs[txid]
	if !ok {
		return "", explorer.ErrNotFound
	}
	return raw, nil
}

func (f *fakeExplorer) Broadcast(ctx context.Context, net network.Network, rawTx string) (*explorer.BroadcastResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.broadcastN++
	f.broadcasted = append(f.broadcasted, rawTx)
	return f.broadcast, nil
}

// recordingProducer 记录发布的事件
type recordingProducer struct {
	mu   sync.Mutex
	keys []string
}

func (p *recordingProducer) Publish(ctx context.Context, topic string, key string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	return nil
}

func (p *recordingProducer) Close() error {
	return nil
}
