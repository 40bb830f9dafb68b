package cmd

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/showsync/showsync/config"
	"github.com/showsync/showsync/pkg/history"
	"github.com/showsync/showsync/pkg/logger"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var runsLimit int

// runsCmd represents the runs command
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "list recent sync runs",
	Long:  `list recent sync runs from the local run history`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()

		cfg, err := config.New(viper.GetViper())
		if err != nil {
			log.Fatal("failed to read configurations", zap.Error(err))
		}

		runs, err := history.New(cfg.History.FilePath)
		if err != nil {
			log.Fatal("failed to open run history", zap.Error(err))
		}
		defer runs.Close()

		ctx := logger.WithCtx(cmd.Context(), log)
		reports, err := runs.ListRuns(ctx, runsLimit)
		if err != nil {
			log.Fatal("failed to list runs", zap.Error(err))
		}

		rows := make([][]string, 0, len(reports))
		for _, r := range reports {
			rows = append(rows, []string{
				r.RunID,
				humanize.Time(r.FinishedAt),
				string(r.Outcome),
				strconv.Itoa(len(r.Changes)),
				strconv.Itoa(len(r.SoftFailures)),
			})
		}

		fmt.Println(renderTable([]string{"RUN", "FINISHED", "OUTCOME", "CHANGES", "SKIPPED"}, rows))
	},
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum runs to list")
	rootCmd.AddCommand(runsCmd)
}
