package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/fmi-tools/fmucheck/cosim"
	"github.com/fmi-tools/fmucheck/result"
)

var (
	passStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	failStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	skipStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	labelStyle = lipgloss.NewStyle().Faint(true)
)

const (
	plotHeight = 10
	plotWidth  = 80
)

// verdict is the one-word result shown first in the report.
func verdict(out cosim.Outcome) string {
	switch {
	case !out.OK():
		return failStyle.Render("FAIL")
	case !out.Simulated:
		return skipStyle.Render("SKIPPED")
	default:
		return passStyle.Render("PASS")
	}
}

// printReport writes the human-readable summary of a run.
func printReport(w io.Writer, cfg CheckConfig, out cosim.Outcome, runErr error, rec *result.Recorder) {
	fmt.Fprintf(w, "%s %s\n", verdict(out), cfg.Model)
	if runErr != nil {
		fmt.Fprintf(w, "%s %v\n", labelStyle.Render("error:"), runErr)
	}
	if !out.Simulated {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("mime type:"), out.MIMEType)
		return
	}

	fmt.Fprintf(w, "%s [%g, %g] step %g\n", labelStyle.Render("window:"), out.Start, out.Stop, out.StepSize)
	fmt.Fprintf(w, "%s %d steps, %d samples, last at t=%g, FMU status %s\n",
		labelStyle.Render("run:"), out.Steps, out.Samples, out.LastTime, out.Status)

	summary := result.Summarize(rec)
	for _, o := range summary.Outputs {
		fmt.Fprintf(w, "  %-10s min %-12.6g max %-12.6g final %.6g\n", o.Name, o.Min, o.Max, o.Final)
	}

	if cfg.Plot != "" {
		chart, err := result.Plot(rec, cfg.Plot, plotHeight, plotWidth)
		if err != nil {
			fmt.Fprintf(w, "%s %v\n", labelStyle.Render("plot:"), err)
			return
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, chart)
	}
}
