package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/careersuite/internal/catalog"
	"github.com/spigell/careersuite/internal/logger"
	"github.com/spigell/careersuite/internal/matcher"
	"github.com/spigell/careersuite/internal/textsource"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a resume against a target role or a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		runScore(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().String("role", "", "target role id or title from the catalog")
	scoreCmd.Flags().String("job-file", "", "score against a job description file instead of a catalog role")
	scoreCmd.Flags().StringP("output", "o", outputText, "output format: text or json")
	scoreCmd.Flags().Int("top", 0, "how many keywords the findings quote")

	viper.BindPFlag("role", scoreCmd.Flags().Lookup("role"))
	viper.BindPFlag("report.top", scoreCmd.Flags().Lookup("top"))
}

func runScore(cmd *cobra.Command) {
	logger, config := setup()

	output, _ := cmd.Flags().GetString("output")
	if err := checkOutput(output); err != nil {
		logger.Fatal("parsing flags", zap.Error(err))
	}

	resume, err := readResume(config.Resume)
	if err != nil {
		logger.Fatal("reading resume", zap.Error(err), zap.String("hint", "pass --resume or set the 'resume' key"))
	}

	analyzer, err := newAnalyzer(config, logger)
	if err != nil {
		logger.Fatal("building analyzer", zap.Error(err))
	}

	jobFile, _ := cmd.Flags().GetString("job-file")
	target, err := resolveTarget(config, jobFile)
	if err != nil {
		logger.Fatal("choosing target", zap.Error(err))
	}

	result, err := analyzer.Analyze(resume, target)
	if errors.Is(err, matcher.ErrInvalidInput) {
		logger.Fatal("resume has no text to score", zap.Error(err), zap.String("resume", config.Resume))
	}
	if err != nil {
		logger.Fatal("analyzing resume", zap.Error(err))
	}

	logMatch(logger, result)

	if output == outputJSON {
		if err := writeJSON(os.Stdout, result); err != nil {
			logger.Fatal("writing result", zap.Error(err))
		}
		return
	}

	printResult(os.Stdout, result)
}

func logMatch(l *zap.Logger, r *matcher.MatchResult) {
	l.Info("resume analyzed", logger.MatchFields(r.Role, r.Score, string(r.Tier))...)
}

func resolveTarget(config *Config, jobFile string) (matcher.Target, error) {
	if jobFile = strings.TrimSpace(jobFile); jobFile != "" {
		text, err := textsource.ReadFile(jobFile)
		if err != nil {
			return matcher.Target{}, err
		}
		name := strings.TrimSuffix(filepath.Base(jobFile), filepath.Ext(jobFile))
		return matcher.Target{Name: name, Text: text}, nil
	}

	roles, err := catalog.Load(config.Catalog)
	if err != nil {
		return matcher.Target{}, err
	}

	if strings.TrimSpace(config.Role) != "" {
		role, err := roles.Find(config.Role)
		if err != nil {
			return matcher.Target{}, err
		}
		return role.Target(), nil
	}

	rolePrompt := promptui.Select{
		Label: "Choose a target role",
		Items: roles.Titles(),
	}

	_, title, err := rolePrompt.Run()
	if err != nil {
		return matcher.Target{}, err
	}

	role, err := roles.Find(title)
	if err != nil {
		return matcher.Target{}, err
	}
	return role.Target(), nil
}
