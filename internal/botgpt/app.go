package botgpt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	appName        = "botgpt"
	appDescription = `BOT-GPT Conversational AI Backend

A conversational AI backend with retrieval-augmented generation.

This server provides:
  - User, conversation and message management
  - Open chat and document-grounded conversation modes
  - Document upload with chunking, embedding and vector indexing
  - Similarity search over uploaded documents via Milvus`
)

// NewCommand creates the root command for the BOT-GPT service.
func NewCommand() *cobra.Command {
	opts := NewOptions()

	cmd := &cobra.Command{
		Use:          appName,
		Short:        "BOT-GPT conversational AI backend",
		Long:         appDescription,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd, opts); err != nil {
				return err
			}
			if err := opts.Complete(); err != nil {
				return err
			}
			if err := opts.Validate(); err != nil {
				return err
			}
			return Run(opts)
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)
	cmd.Flags().SortFlags = true
	cmd.PersistentFlags().StringP("config", "c", "", "Path to config file")

	opts.AddFlags(cmd.Flags())

	return cmd
}

// loadConfig 加载配置：配置文件 < 环境变量 < 命令行参数。
func loadConfig(cmd *cobra.Command, opts *Options) error {
	v := viper.New()

	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(appName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), "."+appName))
		v.AddConfigPath("/etc/" + appName)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		// 找不到配置文件时使用默认值继续
	}

	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// 记录命令行显式设置的参数，反序列化后恢复其优先级
	changedFlags := make(map[string]string)
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			changedFlags[f.Name] = f.Value.String()
		}
	})

	if err := v.Unmarshal(opts); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	for name, val := range changedFlags {
		if err := cmd.Flags().Set(name, val); err != nil {
			return fmt.Errorf("failed to re-apply flag %s: %w", name, err)
		}
	}

	return nil
}
