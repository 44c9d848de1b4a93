package console

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mempush/pkg/txclient"
)

func sampleTable() *Table {
	return TableFromTransactions([]txclient.Transaction{
		{TxID: "a", Status: "confirmed"},
		{TxID: "b", Status: "pending"},
		{TxID: "c", Status: "confirmed"},
		{TxID: "d", Status: "failed"},
		{TxID: "e", Status: "success"},
	})
}

func visibleIDs(t *Table) []string {
	var ids []string
	for _, r := range t.Visible() {
		ids = append(ids, r.TxID)
	}
	return ids
}

func TestHideConfirmed(t *testing.T) {
	table := sampleTable()
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, visibleIDs(table))

	table.SetHideConfirmed(true)
	assert.Equal(t, []string{"b", "d", "e"}, visibleIDs(table))

	// 重复设置同一状态结果不变
	table.SetHideConfirmed(true)
	assert.Equal(t, []string{"b", "d", "e"}, visibleIDs(table))

	table.SetHideConfirmed(false)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, visibleIDs(table))
	for _, r := range table.Rows() {
		assert.False(t, r.Hidden)
	}
}

func TestHideConfirmedEmptyTable(t *testing.T) {
	table := NewTable(nil)
	table.SetHideConfirmed(true)
	assert.Empty(t, table.Visible())
}

func TestTableOwnsItsRows(t *testing.T) {
	rows := []Row{
		{TxID: "a", Status: "confirmed"},
		{TxID: "b", Status: "pending", Hidden: true},
	}
	table := NewTable(rows)

	table.SetHideConfirmed(true)
	assert.False(t, rows[0].Hidden, "caller's slice must not change")
	assert.Empty(t, visibleIDs(table))

	// false 恢复所有行, 包括初始就隐藏的非 confirmed 行
	table.SetHideConfirmed(false)
	assert.Equal(t, []string{"a", "b"}, visibleIDs(table))
	assert.True(t, rows[1].Hidden)
}
