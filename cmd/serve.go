package cmd

import (
	"context"

	"github.com/showsync/showsync/config"
	"github.com/showsync/showsync/pkg/history"
	"github.com/showsync/showsync/pkg/logger"
	"github.com/showsync/showsync/pkg/manager"
	"github.com/showsync/showsync/server"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the show server",
	Long:  `start the show server and the periodic sync scheduler`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()

		cfg, err := config.New(viper.GetViper())
		if err != nil {
			log.Fatal("failed to read configurations", zap.Error(err))
		}

		m, err := newManager(cfg)
		if err != nil {
			log.Fatal("failed to create manager", zap.Error(err))
		}

		runs, err := history.New(cfg.History.FilePath)
		if err != nil {
			log.Fatal("failed to open run history", zap.Error(err))
		}
		defer runs.Close()

		scheduler := manager.NewScheduler(m, cfg.Sync.Interval, manager.WithRunRecorder(runs))

		ctx, cancel := context.WithCancel(logger.WithCtx(cmd.Context(), log))
		defer cancel()
		go scheduler.Run(ctx)

		srv := server.New(log, m, scheduler, runs)
		log.Error(srv.Serve(cfg.Server.Port))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
