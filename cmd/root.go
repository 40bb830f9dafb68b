package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "showsync",
	Short: "showsync cli",
	Long:  `track a personal tv show collection and keep it reconciled`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file")
}

const (
	defaultSyncInterval   = time.Hour * 24 * 7
	defaultLookupTimeout  = time.Second * 15
	defaultRequestTimeout = time.Second * 30
)

func initConfig() {
	viper.SetConfigFile(cfgFile)

	viper.SetEnvPrefix("SHOWSYNC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", ""))
	viper.AutomaticEnv()

	viper.SetDefault("store.backend", "file")
	viper.SetDefault("store.file.path", "shows.yaml")
	viper.SetDefault("store.github.branch", "main")
	viper.SetDefault("store.github.path", "shows.yaml")

	viper.SetDefault("tmdb.uri", "https://api.themoviedb.org")
	viper.SetDefault("tmdb.apiKey", "")
	viper.SetDefault("tmdb.lookupTTL", time.Hour*12)
	viper.SetDefault("tmdb.backoff", time.Millisecond*500)
	viper.SetDefault("tmdb.maxRetries", 3)

	viper.SetDefault("recommender.uri", "https://api.openai.com")
	viper.SetDefault("recommender.apiKey", "")
	viper.SetDefault("recommender.model", "gpt-4o-mini")

	viper.SetDefault("sync.interval", defaultSyncInterval)
	viper.SetDefault("sync.lookupTimeout", defaultLookupTimeout)
	viper.SetDefault("sync.requestTimeout", defaultRequestTimeout)

	viper.SetDefault("server.port", 8080)

	viper.SetDefault("history.filePath", "showsync.sqlite")
}
