// Package commands tania 命令行
package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go-tania/client"
	"go-tania/config"
)

// Version 构建时通过 -ldflags 注入
var Version = "dev"

// app 各子命令共享的配置和日志
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	a.cfg, a.logger = cfg, logger
	logger.Debug("config loaded", zap.String("path", a.cfgFile), zap.String("command", cmd.Name()))
	return nil
}

// backend 不带 token 的后端 client
func (a *app) backend() (*client.Client, error) {
	return client.New(a.cfg.Backend.APIURL(),
		client.WithTimeout(a.cfg.Backend.Timeout),
		client.WithLogger(a.logger.Named("backend")))
}

// NewRootCmd 创建根命令
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "tania",
		Short:         "Farm management front server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "tania.yaml", "config file")

	root.AddCommand(
		newServeCmd(a),
		newMigrateCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newListCmd(a),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// 不需要读取配置
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tania %s\n", Version)
		},
	}
}

// Execute 执行根命令
func Execute(stderr io.Writer) int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}
