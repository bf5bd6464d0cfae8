package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const version = "1.0.0"

var (
	configPath    string
	downloadLabel string
	appLog        *zap.Logger
	rootCmd       = &cobra.Command{
		Use:   "shazam-dl",
		Short: "Download songs recognized by Shazam as MP3",
		Long: `Listens for Shazam song detections in the Android notification list and
offers a one-tap download of each song through yt-dlp.

Run without arguments to listen. The Download button of a detection
notification re-invokes the program with --download "<song> - <artist>".`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		Version:      version,
		RunE:         runRoot,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ./configs/config.yaml or ~/.shazam-dl/config.yaml)")
	rootCmd.Flags().StringVar(&downloadLabel, "download", "", `Download one song, given as "<song> - <artist>", then exit`)

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			if appLog != nil {
				appLog.Error("Critical error", zap.Any("panic", r), zap.Stack("stack"))
				_ = appLog.Sync()
			} else {
				fmt.Fprintf(os.Stderr, "Critical error: %v\n%s", r, debug.Stack())
			}
			os.Exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	download := cmd.Flags().Changed("download")
	if download && downloadLabel == "" {
		return fmt.Errorf("no song name provided for download")
	}

	env, err := setupEnvironment(true)
	if err != nil {
		return err
	}
	defer env.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if download {
		return runDownload(ctx, env, downloadLabel)
	}
	return runListen(ctx, env)
}
