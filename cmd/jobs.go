package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/careersuite/internal/favorites"
	"github.com/spigell/careersuite/internal/filtering"
	"github.com/spigell/careersuite/internal/jobs"
)

const (
	PromptExit              = "Exit"
	PromptBack              = "back"
	PromptToggleFavorite    = "Toggle favorite"
	PromptReportByEmployers = "Report by employers"
	PromptJobsToFile        = "Dump jobs to file"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Next?",
	Items: []string{PromptToggleFavorite, PromptReportByEmployers, PromptJobsToFile, PromptExit},
}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Browse the job board",
}

var jobsSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search and filter job listings, optionally ranking them against the resume",
	Run: func(cmd *cobra.Command, _ []string) {
		runJobsSearch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)
	jobsCmd.AddCommand(jobsSearchCmd)

	source := jobsCmd.PersistentFlags()
	source.String("source", jobsSourceGenerated, "job source: generated or file")
	source.String("file", "", "JSON file with job objects when the source is file")
	source.Uint64("seed", 0, "seed for the generated job board")
	source.Int("count", 0, "number of generated jobs")

	viper.BindPFlag("jobs.source", source.Lookup("source"))
	viper.BindPFlag("jobs.file", source.Lookup("file"))
	viper.BindPFlag("jobs.seed", source.Lookup("seed"))
	viper.BindPFlag("jobs.count", source.Lookup("count"))

	flags := jobsSearchCmd.Flags()
	flags.StringP("query", "q", "", "search in title, employer and description")
	flags.String("location", "", "city to search in, \"remote\" keeps remote jobs")
	flags.Bool("remote-only", false, "keep only remote jobs")
	flags.Int("min-salary", 0, "minimum yearly salary")
	flags.String("experience", "", "experience level: entry, mid or senior")
	flags.String("employment-type", "", "FULLTIME, PARTTIME, CONTRACTOR, INTERN or ALL")
	flags.Bool("exclude-favorites", false, "hide jobs that are already favorites")
	flags.Int("minimum-score", 0, "minimum fit score against the resume")
	flags.Int("limit", 0, "print at most this many jobs")
	flags.StringP("output", "o", outputText, "output format: text or json")
	flags.BoolP("interactive", "i", false, "browse results interactively")

	for _, name := range []string{"query", "location", "remote-only", "min-salary", "experience", "employment-type", "exclude-favorites", "minimum-score"} {
		viper.BindPFlag("search."+name, flags.Lookup(name))
	}
}

func runJobsSearch(cmd *cobra.Command) {
	ctx := cmd.Context()
	logger, config := setup()

	output, _ := cmd.Flags().GetString("output")
	if err := checkOutput(output); err != nil {
		logger.Fatal("parsing flags", zap.Error(err))
	}

	listings, err := loadListings(config.Jobs, logger)
	if err != nil {
		logger.Fatal("getting job listings", zap.Error(err))
	}

	favs, store, err := openFavorites(ctx, config.Favorites, logger)
	if err != nil {
		logger.Fatal("opening favorites", zap.Error(err))
	}
	defer store.Close()

	deps, steps := prepareFilters(config, favs, logger)

	filtered, err := filtering.Run(ctx, config.Search, deps, steps, listings)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	if deps.Resume != "" {
		slices.SortStableFunc(filtered.Items, func(a, b *jobs.Job) int {
			return fitScore(b) - fitScore(a)
		})
	}

	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 && filtered.Len() > limit {
		filtered.Items = filtered.Items[:limit]
	}

	logger.Info("current list of jobs", zap.Int("count", filtered.Len()))

	if output == outputJSON {
		if err := writeJSON(os.Stdout, filtered.Items); err != nil {
			logger.Fatal("writing jobs", zap.Error(err))
		}
	} else if err := printJobs(os.Stdout, filtered); err != nil {
		logger.Fatal("writing jobs", zap.Error(err))
	}

	if interactive, _ := cmd.Flags().GetBool("interactive"); !interactive || filtered.Len() == 0 {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(ctx, action, logger, favs, filtered); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func fitScore(j *jobs.Job) int {
	if j.Fit == nil {
		return -1
	}
	return j.Fit.Score
}

func prepareFilters(config *Config, favs *favorites.List, logger *zap.Logger) (filtering.Deps, []filtering.Filter) {
	deps := filtering.Deps{
		Logger:    logger,
		Favorites: favs.IDs(),
	}
	steps := filtering.Defaults()

	if strings.TrimSpace(config.Resume) == "" {
		filtering.DisableByName(steps, "fit", "no resume configured")
	} else {
		resume, err := readResume(config.Resume)
		if err != nil {
			logger.Fatal("reading resume", zap.Error(err))
		}

		analyzer, err := newAnalyzer(config, logger)
		if err != nil {
			logger.Fatal("building analyzer", zap.Error(err))
		}

		deps.Resume = resume
		deps.Analyzer = analyzer
	}

	for _, status := range filtering.Describe(steps) {
		logger.Debug("filter status",
			zap.String("filter", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	return deps, steps
}

func handleAction(ctx context.Context, action string, logger *zap.Logger, favs *favorites.List, l *jobs.Listings) error {
	switch action {
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	case PromptToggleFavorite:
		return manualToggle(ctx, logger, favs, l)
	case PromptReportByEmployers:
		return writeJSON(os.Stdout, l.ReportByEmployer())
	case PromptJobsToFile:
		filename, err := l.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func manualToggle(ctx context.Context, logger *zap.Logger, favs *favorites.List, l *jobs.Listings) error {
	for {
		items := make([]string, 0, l.Len()+1)
		for _, j := range l.Items {
			label := jobLabel(j)
			if favs.Contains(j.ID) {
				label = "★ " + label
			}
			items = append(items, label)
		}

		jobPrompt := promptui.Select{
			Label: "Choose a job and press ENTER",
			Items: append(items, PromptBack),
			Size:  10,
		}

		idx, selected, err := jobPrompt.Run()
		if err != nil {
			return err
		}
		if selected == PromptBack {
			return nil
		}

		job := l.Items[idx]
		added, err := favs.Toggle(ctx, job)
		if err != nil {
			return err
		}

		logger.Info("favorite toggled",
			zap.String("job_id", job.ID),
			zap.String("job_title", job.Title),
			zap.Bool("favorite", added),
		)
	}
}
