package cmd

import (
	"time"

	"mempush/pkg/network"
	"mempush/pkg/txclient"
)

// shortTxID 列表里只显示前后 8 位
func shortTxID(txid string) string {
	if len(txid) <= 19 {
		return txid
	}
	return txid[:8] + "..." + txid[len(txid)-8:]
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

// explorerURL 单网络部署时按默认网络处理
func explorerURL(c *txclient.Client, txid string) string {
	net := c.Network()
	if net == "" {
		net = network.Default
	}
	return net.TxURL(txid)
}
