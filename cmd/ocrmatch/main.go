/*

ocrmatch把送货单OCR文本与参考表中的（供应商，工程名称）行匹配，并给出accept、review或reject的结论。

	ocrmatch build-index --source refs/ --out index.bolt
	ocrmatch match --index index.bolt --source refs/ ocr/*.txt

环境变量（可以写在.env中）：

	OCRMATCH_CONFIG     配置文件路径
	OCRMATCH_LOG_LEVEL  日志级别，默认info

*/

package main

import (
	"os"

	"github.com/huichen/ocrmatch/config"
	"github.com/huichen/ocrmatch/utils"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// 各子命令共享的状态，由根命令的PersistentPreRunE填写
type app struct {
	configPath string
	logLevel   string
	devLog     bool

	config *config.Config
	logger *zap.Logger
}

func main() {
	// .env不存在时忽略
	_ = godotenv.Load()

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "ocrmatch",
		Short:         "Match OCR delivery notes against reference (supplier, project) rows",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", os.Getenv("OCRMATCH_CONFIG"), "YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", envOr("OCRMATCH_LOG_LEVEL", "info"), "log level")
	root.PersistentFlags().BoolVar(&a.devLog, "dev-log", false, "human readable colored logs")

	root.AddCommand(newBuildIndexCommand(a))
	root.AddCommand(newMatchCommand(a))
	root.AddCommand(newInspectCommand(a))
	return root
}

func (a *app) setup() error {
	logger, err := utils.NewLogger(a.logLevel, a.devLog)
	if err != nil {
		return err
	}
	a.logger = logger

	if a.configPath == "" {
		a.config = config.Default()
		logger.Debug("using default config")
		return nil
	}
	a.config, err = config.Load(a.configPath, logger)
	if err != nil {
		return err
	}
	logger.Info("config loaded", zap.String("path", a.configPath), zap.String("sha", a.config.SHA))
	return nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
