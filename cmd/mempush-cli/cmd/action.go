package cmd

import (
	"mempush/internal/console"

	"github.com/spf13/cobra"
)

// runAction push / delete 共用: 解析动作后交给 console 分发
func runAction(cmd *cobra.Command, kind, txid string, assumeYes bool) error {
	action, err := console.ParseAction(kind, txid)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	t := newTerminal(cmd, client, assumeYes)
	if action.Kind == console.ActionDelete {
		// 删除后详情页已不存在, 刷新列表
		t.reload = t.listView(false)
	} else {
		t.reload = t.detailView(action.TxID)
	}

	c := console.New(client, t, t, t)
	return consoleResult(c.Dispatch(ctx, action))
}

var pushCmd = &cobra.Command{
	Use:   "push <txid>",
	Short: "推送交易到 mempool",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(cmd, string(console.ActionPush), args[0], false)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <txid>",
	Short: "删除已确认的交易",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		return runAction(cmd, string(console.ActionDelete), args[0], yes)
	},
}

func init() {
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolP("yes", "y", false, "跳过确认")
}
