package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/careersuite/internal/favorites"
	"github.com/spigell/careersuite/internal/jobs"
	"github.com/spigell/careersuite/internal/storage"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage saved jobs",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite jobs",
	Run: func(cmd *cobra.Command, _ []string) {
		withFavorites(cmd, func(logger *zap.Logger, _ *Config, favs *favorites.List) {
			output, _ := cmd.Flags().GetString("output")
			if err := checkOutput(output); err != nil {
				logger.Fatal("parsing flags", zap.Error(err))
			}

			var err error
			if output == outputJSON {
				err = writeJSON(os.Stdout, favs.Items())
			} else {
				err = printJobs(os.Stdout, &jobs.Listings{Items: favs.Items()})
			}
			if err != nil {
				logger.Fatal("writing favorites", zap.Error(err))
			}
		})
	},
}

var favoritesToggleCmd = &cobra.Command{
	Use:   "toggle <job-id>",
	Short: "Add a job from the board to favorites or remove it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withFavorites(cmd, func(logger *zap.Logger, config *Config, favs *favorites.List) {
			listings, err := loadListings(config.Jobs, logger)
			if err != nil {
				logger.Fatal("getting job listings", zap.Error(err))
			}

			job := listings.FindByID(args[0])
			if job == nil {
				// A favorite may outlive the board it came from.
				if !favs.Contains(args[0]) {
					logger.Fatal("there is no such job", zap.String("job_id", args[0]))
				}
				job = &jobs.Job{ID: args[0]}
			}

			added, err := favs.Toggle(cmd.Context(), job)
			if err != nil {
				logger.Fatal("toggling favorite", zap.Error(err))
			}
			logger.Info("favorite toggled", zap.String("job_id", job.ID), zap.Bool("favorite", added))
		})
	},
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove <job-id>",
	Short: "Remove a job from favorites",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withFavorites(cmd, func(logger *zap.Logger, _ *Config, favs *favorites.List) {
			removed, err := favs.Remove(cmd.Context(), args[0])
			if err != nil {
				logger.Fatal("removing favorite", zap.Error(err))
			}
			if !removed {
				logger.Warn("job is not a favorite", zap.String("job_id", args[0]))
				return
			}
			logger.Info("favorite removed", zap.String("job_id", args[0]))
		})
	},
}

var favoritesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all favorites",
	Run: func(cmd *cobra.Command, _ []string) {
		withFavorites(cmd, func(logger *zap.Logger, _ *Config, favs *favorites.List) {
			count := favs.Len()
			if err := favs.Clear(cmd.Context()); err != nil {
				logger.Fatal("clearing favorites", zap.Error(err))
			}
			logger.Info("favorites cleared", zap.Int("count", count))
		})
	},
}

func init() {
	rootCmd.AddCommand(favoritesCmd)
	favoritesCmd.AddCommand(favoritesListCmd, favoritesToggleCmd, favoritesRemoveCmd, favoritesClearCmd)

	favoritesCmd.PersistentFlags().String("backend", storage.BackendFile, "favorites store: file or sqlite")
	favoritesCmd.PersistentFlags().String("path", "", "favorites store location (default is under ~/.careersuite)")

	viper.BindPFlag("favorites.backend", favoritesCmd.PersistentFlags().Lookup("backend"))
	viper.BindPFlag("favorites.path", favoritesCmd.PersistentFlags().Lookup("path"))

	favoritesListCmd.Flags().StringP("output", "o", outputText, "output format: text or json")
}

func withFavorites(cmd *cobra.Command, fn func(*zap.Logger, *Config, *favorites.List)) {
	logger, config := setup()

	favs, store, err := openFavorites(cmd.Context(), config.Favorites, logger)
	if err != nil {
		logger.Fatal("opening favorites", zap.Error(err))
	}
	defer store.Close()

	fn(logger, config, favs)
}
