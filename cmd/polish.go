package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/careersuite/internal/ai"
	"github.com/spigell/careersuite/internal/textsource"
)

var polishCmd = &cobra.Command{
	Use:   "polish",
	Short: "Rewrite an experience entry in a chosen tone for a target role",
	Run: func(cmd *cobra.Command, _ []string) {
		runPolish(cmd)
	},
}

func init() {
	rootCmd.AddCommand(polishCmd)

	tones := make([]string, 0, len(ai.Tones()))
	for _, t := range ai.Tones() {
		tones = append(tones, string(t))
	}

	polishCmd.Flags().String("tone", string(ai.ToneProfessional), "tone: "+strings.Join(tones, ", "))
	polishCmd.Flags().String("role", "", "target role title")
	polishCmd.Flags().String("text", "", "experience text to rewrite")
	polishCmd.Flags().String("file", "", "read the experience text from a file")
	polishCmd.Flags().StringP("output", "o", outputText, "output format: text or json")
	polishCmd.Flags().Bool("ai", false, "use the configured AI provider instead of the offline templates")

	viper.BindPFlag("ai.enabled", polishCmd.Flags().Lookup("ai"))
}

func runPolish(cmd *cobra.Command) {
	ctx := cmd.Context()
	logger, config := setup()

	output, _ := cmd.Flags().GetString("output")
	if err := checkOutput(output); err != nil {
		logger.Fatal("parsing flags", zap.Error(err))
	}

	text, _ := cmd.Flags().GetString("text")
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		var err error
		text, err = textsource.ReadFile(file)
		if err != nil {
			logger.Fatal("reading experience", zap.Error(err))
		}
	}

	tone, _ := cmd.Flags().GetString("tone")
	role, _ := cmd.Flags().GetString("role")
	if role == "" {
		role = config.Role
	}

	rewriter, err := newRewriter(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("building rewriter", zap.Error(err))
	}

	rewrite, err := rewriter.Rewrite(ctx, ai.Request{Tone: ai.Tone(tone), Role: role, Experience: text})
	if errors.Is(err, ai.ErrEmptyExperience) {
		logger.Fatal("nothing to rewrite", zap.Error(err), zap.String("hint", "pass --text or --file"))
	}
	if err != nil {
		logger.Fatal("rewriting experience", zap.Error(err))
	}

	logger.Info("experience rewritten",
		zap.String("tone", string(rewrite.Tone)),
		zap.String("provider", rewrite.Provider),
	)

	if output == outputJSON {
		if err := writeJSON(os.Stdout, rewrite); err != nil {
			logger.Fatal("writing rewrite", zap.Error(err))
		}
		return
	}

	fmt.Println(color.New(color.Bold).Sprintf("%s rewrite", rewrite.Tone))
	fmt.Println(rewrite.Text)
}
