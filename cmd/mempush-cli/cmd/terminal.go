package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"
	"text/tabwriter"

	"mempush/internal/console"
	"mempush/pkg/txclient"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// 终端里的状态颜色, 与 push_transactions 脚本一致; 每个颜色码长度相同, tabwriter 才能对齐
var statusColors = map[string]string{
	txclient.StatusConfirmed: "\033[92m",
	txclient.StatusSuccess:   "\033[94m",
	"failed":                 "\033[91m",
	"error":                  "\033[93m",
	txclient.StatusPending:   "\033[90m",
}

const (
	colorDefault = "\033[39m"
	colorReset   = "\033[0m"
)

// terminal 在命令行里扮演浏览器页面: alert 打印消息, confirm 读取 y/N, 导航/刷新重新拉取数据展示
type terminal struct {
	ctx    context.Context
	client *txclient.Client
	out    io.Writer
	in     *bufio.Reader

	interactive bool
	assumeYes   bool
	color       bool

	// reload 刷新当前 "页面", 为空时什么都不做
	reload func(ctx context.Context) error
}

func newTerminal(cmd *cobra.Command, client *txclient.Client, assumeYes bool) *terminal {
	return &terminal{
		ctx:         cmd.Context(),
		client:      client,
		out:         cmd.OutOrStdout(),
		in:          bufio.NewReader(cmd.InOrStdin()),
		interactive: isTerminal(cmd.InOrStdin()),
		assumeYes:   assumeYes,
		color:       isTerminal(cmd.OutOrStdout()),
	}
}

// isTerminal 只有真实的 tty 才算交互式; 测试和管道里是普通的 Reader/Writer
func isTerminal(v interface{}) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (t *terminal) Alert(msg string) {
	fmt.Fprintln(t.out, msg)
}

func (t *terminal) Confirm(prompt string) bool {
	if t.assumeYes {
		return true
	}
	if !t.interactive {
		fmt.Fprintln(t.out, prompt+" (stdin is not a terminal, pass --yes to confirm)")
		return false
	}
	fmt.Fprint(t.out, prompt+" (y/N): ")
	input, _ := t.in.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

// Navigate 打印详情页地址并展示交易
func (t *terminal) Navigate(p string) {
	fmt.Fprintf(t.out, "Location: %s%s\n", t.client.BaseURL(), p)

	txid, err := url.PathUnescape(path.Base(p))
	if err != nil {
		return
	}
	t.reload = t.detailView(txid)
	t.Reload()
}

func (t *terminal) Reload() {
	if t.reload == nil {
		return
	}
	if err := t.reload(t.ctx); err != nil {
		fmt.Fprintf(t.out, "Error loading page: %v\n", err)
	}
}

func (t *terminal) detailView(txid string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		tx, err := t.client.Get(ctx, txid)
		if err != nil {
			return err
		}
		t.printDetail(tx)
		return nil
	}
}

func (t *terminal) listView(hideConfirmed bool) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		txs, err := t.client.List(ctx)
		if err != nil {
			return err
		}
		t.printList(txs, hideConfirmed)
		return nil
	}
}

func (t *terminal) printDetail(tx *txclient.Transaction) {
	w := tabwriter.NewWriter(t.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "TXID\t%s\n", tx.TxID)
	fmt.Fprintf(w, "Network\t%s\n", tx.Network)
	fmt.Fprintf(w, "Status\t%s\n", t.status(tx.Status))
	fmt.Fprintf(w, "Push Attempts\t%d\n", tx.PushAttempts)
	if tx.AnalysisResult != "" {
		fmt.Fprintf(w, "Analysis\t%s\n", tx.AnalysisResult)
	}
	fmt.Fprintf(w, "Created At\t%s\n", formatTime(tx.CreatedAt))
	fmt.Fprintf(w, "Updated At\t%s\n", formatTime(tx.UpdatedAt))
	fmt.Fprintf(w, "Explorer\t%s\n", explorerURL(t.client, tx.TxID))
	w.Flush()
}

func (t *terminal) printList(txs []txclient.Transaction, hideConfirmed bool) {
	if len(txs) == 0 {
		fmt.Fprintln(t.out, "No transactions found.")
		return
	}

	table := console.TableFromTransactions(txs)
	table.SetHideConfirmed(hideConfirmed)
	visible := table.Visible()
	if len(visible) == 0 {
		fmt.Fprintln(t.out, "No pending transactions found.")
		return
	}

	byID := make(map[string]txclient.Transaction, len(txs))
	for _, tx := range txs {
		byID[tx.TxID] = tx
	}

	w := tabwriter.NewWriter(t.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TXID\tSTATUS\tPUSH ATTEMPTS\tCREATED AT\tUPDATED AT")
	for _, row := range visible {
		tx := byID[row.TxID]
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			shortTxID(row.TxID), t.status(row.Status), tx.PushAttempts,
			formatTime(tx.CreatedAt), formatTime(tx.UpdatedAt))
	}
	w.Flush()

	fmt.Fprintf(t.out, "\nTotal transactions: %d", len(visible))
	if hidden := len(table.Rows()) - len(visible); hidden > 0 {
		fmt.Fprintf(t.out, " (%d confirmed hidden)", hidden)
	}
	fmt.Fprintln(t.out)
}

func (t *terminal) status(s string) string {
	if !t.color {
		return s
	}
	c, ok := statusColors[s]
	if !ok {
		c = colorDefault
	}
	return c + s + colorReset
}
