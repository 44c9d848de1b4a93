package request

// SubmitTransactionRequest 提交交易: raw_tx 与 txid 二选一, 给了 txid 时从浏览器拉取
type SubmitTransactionRequest struct {
	RawTx string `json:"raw_tx" example:"0100000001..."`
	TxID  string `json:"txid" binding:"omitempty,hexadecimal,len=64" example:"4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"`
}
