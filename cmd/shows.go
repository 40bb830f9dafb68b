package cmd

import (
	"fmt"
	"strconv"

	"github.com/showsync/showsync/config"
	"github.com/showsync/showsync/pkg/logger"
	"github.com/showsync/showsync/pkg/show"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var showsState string

// showsCmd represents the shows command
var showsCmd = &cobra.Command{
	Use:   "shows",
	Short: "list tracked shows",
	Long:  `list the shows in the collection, optionally filtered by state`,
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

		var shows []show.Show
		if showsState != "" {
			shows, err = m.ListShowsByState(ctx, show.State(showsState))
		} else {
			shows, err = m.ListShows(ctx)
		}
		if err != nil {
			log.Fatal("failed to list shows", zap.Error(err))
		}

		rows := make([][]string, 0, len(shows))
		for _, s := range shows {
			rows = append(rows, []string{
				s.ID,
				s.Title,
				string(s.State),
				strconv.Itoa(s.SeasonsWatched),
				strconv.Itoa(s.TotalSeasons),
				string(s.Rating),
			})
		}

		fmt.Println(renderTable([]string{"ID", "TITLE", "STATE", "WATCHED", "TOTAL", "RATING"}, rows))
	},
}

func init() {
	showsCmd.Flags().StringVar(&showsState, "state", "", "only list shows in this state")
	rootCmd.AddCommand(showsCmd)
}
