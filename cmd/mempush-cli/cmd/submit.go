package cmd

import (
	"context"
	"fmt"
	"io"

	"mempush/internal/console"
	"mempush/pkg/txclient"

	"github.com/spf13/cobra"
)

// byTxID 让 console 按 txid 提交: 服务端从区块浏览器拉取 raw hex
type byTxID struct {
	*txclient.Client
}

func (b byTxID) Submit(ctx context.Context, txid string) (*txclient.SubmitResult, error) {
	return b.Client.SubmitTxID(ctx, txid)
}

var submitCmd = &cobra.Command{
	Use:   "submit [raw-tx-hex]",
	Short: "提交原始交易",
	Long: `提交一笔原始交易 (hex)。可以作为参数传入, 也可以用 --raw 或从 stdin 读取;
使用 --txid 时由服务端从区块浏览器获取交易内容。`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rawTx, _ := cmd.Flags().GetString("raw")
		txid, _ := cmd.Flags().GetString("txid")
		if len(args) == 1 {
			rawTx = args[0]
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		t := newTerminal(cmd, client, false)

		if txid != "" {
			c := console.New(byTxID{client}, t, t, t)
			return consoleResult(c.Submit(ctx, txid))
		}

		// 没有参数时从管道读取; 内容原样提交, 由服务端校验
		if rawTx == "" && !t.interactive {
			data, err := io.ReadAll(t.in)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			rawTx = string(data)
		}

		c := console.New(client, t, t, t)
		return consoleResult(c.Submit(ctx, rawTx))
	},
}

func init() {
	rootCmd.AddCommand(submitCmd)
	submitCmd.Flags().String("raw", "", "原始交易 hex")
	submitCmd.Flags().String("txid", "", "交易 ID, 由服务端从区块浏览器获取")
}
