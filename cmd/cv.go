package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/careersuite/internal/cv"
)

const (
	formatHTML = "html"
	formatPDF  = "pdf"
)

var cvCmd = &cobra.Command{
	Use:   "cv",
	Short: "Build a CV document",
}

var cvExportCmd = &cobra.Command{
	Use:   "export <cv.yaml>",
	Short: "Render a CV file to HTML or PDF",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCVExport(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(cvCmd)
	cvCmd.AddCommand(cvExportCmd)

	cvExportCmd.Flags().String("format", formatPDF, "output format: html or pdf")
	cvExportCmd.Flags().String("out", "", "output file (default is the input name with the format extension)")
	cvExportCmd.Flags().Duration("chrome-timeout", 0, "time limit for printing the PDF")
	cvExportCmd.Flags().String("chrome-path", "", "chrome or chromium binary")

	viper.BindPFlag("cv.chrome-timeout", cvExportCmd.Flags().Lookup("chrome-timeout"))
	viper.BindPFlag("cv.chrome-path", cvExportCmd.Flags().Lookup("chrome-path"))
}

func runCVExport(cmd *cobra.Command, path string) {
	logger, config := setup()

	format, _ := cmd.Flags().GetString("format")
	format = strings.ToLower(strings.TrimSpace(format))
	if format != formatHTML && format != formatPDF {
		logger.Fatal("parsing flags", zap.Error(fmt.Errorf("unsupported format %q (valid: %s, %s)", format, formatHTML, formatPDF)))
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + "." + format
	}

	doc, err := cv.Load(path)
	if err != nil {
		logger.Fatal("loading cv", zap.Error(err))
	}

	if err := doc.Validate(); err != nil {
		logger.Fatal("validating cv", zap.Error(err))
	}

	f, err := os.Create(out)
	if err != nil {
		logger.Fatal("creating output file", zap.Error(err))
	}
	defer f.Close()

	switch format {
	case formatHTML:
		err = cv.RenderHTML(f, doc)
	case formatPDF:
		renderer := &cv.ChromeRenderer{Timeout: config.CV.ChromeTimeout, ExecPath: config.CV.ChromePath}
		err = cv.Export(cmd.Context(), doc, renderer, f)
	}
	if err != nil {
		f.Close()
		os.Remove(out)
		logger.Fatal("exporting cv", zap.Error(err), zap.String("format", format))
	}

	logger.Info("cv exported", zap.String("file", out), zap.String("format", format))
}
