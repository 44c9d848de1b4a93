package cmd

import (
	"fmt"

	"mempush/internal/console"
	"mempush/pkg/txclient"

	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "重新推送所有未确认的交易",
	Long:  `逐个推送当前网络中所有未确认的交易, 已确认的交易会被跳过。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		txs, err := client.List(ctx)
		if err != nil {
			return err
		}

		t := newTerminal(cmd, client, false)
		c := console.New(client, t, t, t)

		var pushed, failed int
		for _, tx := range txs {
			if tx.Status == txclient.StatusConfirmed {
				continue
			}
			fmt.Fprintf(t.out, "%s: ", shortTxID(tx.TxID))
			if err := c.Dispatch(ctx, console.Action{Kind: console.ActionPush, TxID: tx.TxID}); err != nil {
				failed++
				continue
			}
			pushed++
		}

		fmt.Fprintf(t.out, "\nPushed: %d, failed: %d\n", pushed, failed)
		t.reload = t.listView(false)
		t.Reload()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
