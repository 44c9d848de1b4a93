package cmd

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "列出当前网络的交易",
	RunE: func(cmd *cobra.Command, args []string) error {
		hide, _ := cmd.Flags().GetBool("hide-confirmed")

		client, err := newClient()
		if err != nil {
			return err
		}
		t := newTerminal(cmd, client, false)
		return t.listView(hide)(cmd.Context())
	},
}

var showCmd = &cobra.Command{
	Use:   "show <txid>",
	Short: "查看交易详情",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		t := newTerminal(cmd, client, false)
		return t.detailView(args[0])(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	listCmd.Flags().Bool("hide-confirmed", false, "隐藏已确认的交易")
}
