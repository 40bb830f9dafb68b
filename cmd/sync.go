package cmd

import (
	"fmt"
	"os"

	"github.com/showsync/showsync/config"
	"github.com/showsync/showsync/pkg/history"
	"github.com/showsync/showsync/pkg/logger"
	"github.com/showsync/showsync/pkg/manager"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	exitSoftFailures = 2
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "run one reconciliation now",
	Long:  `fetch the collection, check seasons, gather recommendations, and write the result back`,
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

		ctx := logger.WithCtx(cmd.Context(), log)
		report, runErr := m.Sync(ctx)

		if report != nil && cfg.History.FilePath != "" {
			runs, err := history.New(cfg.History.FilePath)
			if err != nil {
				log.Error("failed to open run history", zap.Error(err))
			} else {
				defer runs.Close()
				if err := runs.RecordRun(ctx, report); err != nil {
					log.Error("failed to record run", zap.Error(err))
				}
			}
		}

		if report == nil {
			log.Error("sync produced no report", zap.Error(runErr))
			os.Exit(1)
		}

		fmt.Println(report.Summary())

		if len(report.Changes) > 0 {
			rows := make([][]string, 0, len(report.Changes))
			for _, c := range report.Changes {
				switch c.Kind {
				case manager.ChangeAdded:
					rows = append(rows, []string{c.ID, c.Title, "added", string(c.ToState)})
				default:
					rows = append(rows, []string{c.ID, c.Title, string(c.FromState), string(c.ToState)})
				}
			}
			fmt.Println(renderTable([]string{"ID", "TITLE", "FROM", "TO"}, rows))
		}

		switch {
		case runErr != nil:
			os.Exit(1)
		case report.Outcome == manager.OutcomeSoftFailures:
			os.Exit(exitSoftFailures)
		}
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
