package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"mempush/internal/console"
	"mempush/pkg/logger"
	"mempush/pkg/network"
	"mempush/pkg/txclient"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd 代表基础命令，没有子命令时直接调用
var rootCmd = &cobra.Command{
	Use:   "mempush-cli",
	Short: "Bitcoin 原始交易广播命令行工具",
	Long: `mempush-cli 连接 mempush-server, 提交原始交易、推送到 mempool、删除已确认交易。
网络 (mainchain, testnetv3, testnetv4, signet) 可以用 --network 指定,
也可以直接写在 --server 的路径里, e.g. http://localhost:3000/signet`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.InitCLI(viper.GetBool("verbose"))
	},
}

// Execute 将所有子命令添加到根命令并设置标志
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logger.Sync()

	if err != nil {
		var alerted alertedError
		if !errors.As(err, &alerted) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// alertedError 已经通过 Alert 展示给用户的错误, 退出时不再重复打印
type alertedError struct {
	error
}

func (e alertedError) Unwrap() error { return e.error }

// consoleResult 把 console 的返回值转成命令的返回值
func consoleResult(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, console.ErrDeclined):
		return nil
	case errors.Is(err, console.ErrInFlight):
		return err
	default:
		return alertedError{err}
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件 (默认 $HOME/.mempush.yaml)")
	rootCmd.PersistentFlags().String("server", "http://localhost:3000", "mempush-server 地址, 路径中可以带网络")
	rootCmd.PersistentFlags().StringP("network", "n", "", "网络: "+strings.Join(network.Names(), ", "))
	rootCmd.PersistentFlags().Bool("single", false, "单网络部署: 路由不带网络前缀")
	rootCmd.PersistentFlags().Duration("timeout", 30*time.Second, "请求超时")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "输出调试日志")

	for _, name := range []string{"server", "network", "single", "timeout", "verbose"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// initConfig 读取配置文件和 MEMPUSH_ 前缀的环境变量
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName(".mempush")
	}

	viper.SetEnvPrefix("mempush")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger.Debug("using config file: " + viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "读取配置文件失败: %v\n", err)
	}
}

// clientConfig 根据 server / network / single 决定访问哪个网络
//
// --network 优先; 否则从 server 地址的路径中解析网络 (没有则为默认网络);
// --single 时不带网络前缀.
func clientConfig(server, net string, single bool, timeout time.Duration) (txclient.Config, error) {
	u, err := url.Parse(server)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return txclient.Config{}, fmt.Errorf("invalid server url %q", server)
	}
	path := u.Path
	u.Path, u.RawQuery, u.Fragment = "", "", ""

	cfg := txclient.Config{BaseURL: u.String(), Timeout: timeout}
	switch {
	case single:
	case net != "":
		parsed, err := network.Parse(net)
		if err != nil {
			return txclient.Config{}, err
		}
		cfg.Network = parsed
	default:
		cfg.Network = network.Resolve(path)
	}
	return cfg, nil
}

func newClient() (*txclient.Client, error) {
	cfg, err := clientConfig(
		viper.GetString("server"),
		viper.GetString("network"),
		viper.GetBool("single"),
		viper.GetDuration("timeout"),
	)
	if err != nil {
		return nil, err
	}
	return txclient.New(cfg)
}
