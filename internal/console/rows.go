package console

import "mempush/pkg/txclient"

// Row is one rendered transaction line, tagged with its status.
type Row struct {
	TxID   string
	Status string
	Hidden bool
}

// Table holds the rows currently on screen.
type Table struct {
	rows []Row
}

func NewTable(rows []Row) *Table {
	return &Table{rows: append([]Row(nil), rows...)}
}

// TableFromTransactions renders API records as rows.
func TableFromTransactions(txs []txclient.Transaction) *Table {
	rows := make([]Row, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, Row{TxID: tx.TxID, Status: tx.Status})
	}
	return NewTable(rows)
}

// SetHideConfirmed hides every confirmed row when hide is true and restores
// default visibility for all of them when it is false.
func (t *Table) SetHideConfirmed(hide bool) {
	for i := range t.rows {
		if !hide {
			t.rows[i].Hidden = false
			continue
		}
		if t.rows[i].Status == txclient.StatusConfirmed {
			t.rows[i].Hidden = true
		}
	}
}

func (t *Table) Rows() []Row {
	return t.rows
}

func (t *Table) Visible() []Row {
	var out []Row
	for _, r := range t.rows {
		if !r.Hidden {
			out = append(out, r)
		}
	}
	return out
}
