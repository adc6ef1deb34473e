package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/spigell/careersuite/internal/jobs"
	"github.com/spigell/careersuite/internal/matcher"
)

const (
	outputText = "text"
	outputJSON = "json"
)

func checkOutput(format string) error {
	switch format {
	case outputText, outputJSON:
		return nil
	default:
		return fmt.Errorf("unsupported output %q (valid: %s, %s)", format, outputText, outputJSON)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func tierColor(tier matcher.Tier) *color.Color {
	switch tier {
	case matcher.TierStrong:
		return color.New(color.FgGreen, color.Bold)
	case matcher.TierSolid:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

func printResult(w io.Writer, r *matcher.MatchResult) {
	fmt.Fprintln(w, color.New(color.Bold, color.Underline).Sprint("Match Analysis: "+r.Role))
	fmt.Fprintf(w, "\nFit score: %s %s\n", tierColor(r.Tier).Sprintf("%d/100", r.Score), r.Tier.Label())

	if len(r.Bonuses) > 0 {
		names := make([]string, 0, len(r.Bonuses))
		for _, b := range r.Bonuses {
			names = append(names, fmt.Sprintf("%s +%d", b.Name, b.Bonus))
		}
		fmt.Fprintf(w, "Base %d, bonuses: %s\n", r.Base, strings.Join(names, ", "))
	}

	if len(r.Matched) > 0 {
		fmt.Fprintf(w, "\n%s\n", color.GreenString("Matched keywords:"))
		fmt.Fprintf(w, "  %s %s\n", color.GreenString("✓"), strings.Join(r.Matched, ", "))
	}
	if len(r.Missing) > 0 {
		fmt.Fprintf(w, "\n%s\n", color.RedString("Missing keywords:"))
		fmt.Fprintf(w, "  %s %s\n", color.RedString("✗"), strings.Join(r.Missing, ", "))
	}

	fmt.Fprintf(w, "\n%s\n", color.New(color.Bold).Sprint("Findings"))
	for _, finding := range r.Findings {
		fmt.Fprintf(w, "  %s %s\n", color.CyanString("•"), finding)
	}

	fmt.Fprintf(w, "\n%s\n", color.New(color.Bold).Sprint("ATS checks"))
	for _, check := range r.Checks {
		status := color.GreenString(check.Status)
		if !check.Passed {
			status = color.YellowString(check.Status)
		}
		fmt.Fprintf(w, "  [%s] %s: %s\n", status, check.Label, check.Details)
	}

	fmt.Fprintf(w, "\n%s\n", r.Summary)
}

func jobLabel(j *jobs.Job) string {
	return fmt.Sprintf("%s %s / %s / %s", j.ID, j.Title, j.Employer, j.Location())
}

func printJobs(w io.Writer, l *jobs.Listings) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tEMPLOYER\tLOCATION\tTYPE\tSALARY\tFIT")
	for _, j := range l.Items {
		fit := "-"
		if j.Fit != nil {
			fit = tierColor(matcher.TierFor(j.Fit.Score)).Sprintf("%d", j.Fit.Score)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			j.ID, j.Title, j.Employer, j.Location(), j.EmploymentType, j.SalaryRange(), fit)
	}
	return tw.Flush()
}
