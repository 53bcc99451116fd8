// Package cli implements the paisactl command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"paisa/internal/backend"
)

var cfgFile string

// Execute wires configuration, the backend, and the command tree, then runs
// the CLI.
func Execute() {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	if err := initConfig(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	ctx := context.Background()
	result, err := buildBackend(ctx)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
	defer func() {
		if result.Cleanup != nil {
			_ = result.Cleanup()
		}
	}()

	rootCmd := &cobra.Command{
		Use:           "paisactl",
		Short:         "paisactl is a CLI for the paisa expense tracker",
		Long:          `paisactl records and inspects transactions from the terminal, sharing the paisa server's store.`,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "set the config file path")

	rootCmd.AddCommand(NewAddCmd(result.Service))
	rootCmd.AddCommand(NewListCmd(result.Service))
	rootCmd.AddCommand(NewSummaryCmd(result.Service))
	rootCmd.AddCommand(NewDeleteCmd(result.Service))

	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(capitalize(err.Error()))
		os.Exit(1)
	}
}

func buildBackend(ctx context.Context) (*backend.Result, error) {
	dbPath, err := expandPath(viper.GetString("sqlite_path"))
	if err != nil {
		return nil, fmt.Errorf("resolve sqlite path: %w", err)
	}

	cfg := backend.Config{
		Type:         backend.Type(viper.GetString("backend")),
		SQLiteDBPath: dbPath,
		MongoURI:     viper.GetString("mongo_uri"),
		MongoDB:      viper.GetString("mongo_db"),
		AMQPURL:      viper.GetString("amqp_url"),
		AMQPExchange: viper.GetString("amqp_exchange"),
		AMQPQueue:    viper.GetString("amqp_queue"),
	}

	return backend.NewFactory(nil).CreateBackend(ctx, cfg)
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		appDir, err := getAppDataDir()
		if err != nil {
			return fmt.Errorf("error getting app dir: %w", err)
		}

		viper.AddConfigPath(appDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetDefault("backend", "sqlite")
	viper.SetDefault("sqlite_path", "~/.local/share/paisa/paisa.db")
	viper.SetDefault("mongo_uri", "mongodb://localhost:27017")
	viper.SetDefault("mongo_db", "paisa")
	viper.SetDefault("amqp_exchange", "paisa")
	viper.SetDefault("amqp_queue", "sync_transactions")

	viper.SetEnvPrefix("PAISA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if cfgFile != "" {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return fmt.Errorf("config file error: %w", err)
		}
	}

	return nil
}

func getAppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, ".paisactl"), nil
	}

	return filepath.Join(configDir, "paisactl"), nil
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~\\") {
			return filepath.Join(home, path[2:]), nil
		}
	}
	return path, nil
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
