package analyzer

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"classcheck/internal/config"
	"classcheck/internal/models"

	"github.com/fatih/color"
)

// ReportGenerator formats an analysis result for the user.
type ReportGenerator struct {
	format string
	config *config.Config
}

func NewReportGenerator(cfg *config.Config) *ReportGenerator {
	return &ReportGenerator{
		format: cfg.Output.Format,
		config: cfg,
	}
}

// Generate creates a formatted report from analysis results.
func (r *ReportGenerator) Generate(result *models.AnalysisResult) string {
	switch r.format {
	case "json":
		return r.generateJSON(result)
	default:
		return r.generateConsole(result)
	}
}

func (r *ReportGenerator) generateJSON(result *models.AnalysisResult) string {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Sprintf("Error generating JSON report: %v", err)
	}
	return string(data)
}

func (r *ReportGenerator) generateConsole(result *models.AnalysisResult) string {
	var report strings.Builder
	useColors := r.config.Output.Colors

	if useColors {
		report.WriteString(color.CyanString("classcheck analysis report\n"))
		report.WriteString(color.WhiteString("═══════════════════════════════════════\n\n"))
	} else {
		report.WriteString("classcheck analysis report\n")
		report.WriteString("=======================================\n\n")
	}

	report.WriteString(fmt.Sprintf("Files analyzed: %d\n", len(result.Files)))
	report.WriteString(fmt.Sprintf("Issues found: %d\n\n", result.TotalIssues))

	if result.TotalIssues == 0 {
		if useColors {
			report.WriteString(color.GreenString("No class design issues detected.\n\n"))
		} else {
			report.WriteString("No class design issues detected.\n\n")
		}
	} else {
		r.writeSeveritySummary(&report, result, useColors)
		report.WriteString("\n")
		r.writeDiagnostics(&report, result, useColors)
	}

	report.WriteString(fmt.Sprintf("Analysis completed in %s\n", result.AnalysisDuration))
	return report.String()
}

func (r *ReportGenerator) writeSeveritySummary(report *strings.Builder, result *models.AnalysisResult, useColors bool) {
	if useColors {
		report.WriteString(color.WhiteString("Issues by severity:\n"))
	} else {
		report.WriteString("Issues by severity:\n")
	}

	for _, severity := range []string{"error", "style"} {
		count := result.IssuesBySeverity[severity]
		if count == 0 {
			continue
		}
		if useColors {
			colorFunc := r.severityColor(severity)
			report.WriteString(fmt.Sprintf("   %s: %s\n", severity, colorFunc(fmt.Sprintf("%d", count))))
		} else {
			report.WriteString(fmt.Sprintf("   %s: %d\n", severity, count))
		}
	}
}

func (r *ReportGenerator) severityColor(severity string) func(a ...interface{}) string {
	switch severity {
	case "error":
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case "style":
		return color.New(color.FgYellow).SprintFunc()
	default:
		return color.New(color.FgWhite).SprintFunc()
	}
}

func (r *ReportGenerator) writeDiagnostics(report *strings.Builder, result *models.AnalysisResult, useColors bool) {
	if useColors {
		report.WriteString(color.WhiteString("Diagnostics:\n"))
	} else {
		report.WriteString("Diagnostics:\n")
	}
	report.WriteString(strings.Repeat("─", 50) + "\n")

	// errors first, then stable by location
	sorted := make([]models.Diagnostic, len(result.Diagnostics))
	copy(sorted, result.Diagnostics)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Severity != sorted[j].Severity {
			return sorted[i].Severity > sorted[j].Severity
		}
		if sorted[i].Location.File != sorted[j].Location.File {
			return sorted[i].Location.File < sorted[j].Location.File
		}
		return sorted[i].Location.Line < sorted[j].Location.Line
	})

	for _, d := range sorted {
		r.writeDiagnostic(report, d, useColors)
	}
	report.WriteString("\n")
}

func (r *ReportGenerator) writeDiagnostic(report *strings.Builder, d models.Diagnostic, useColors bool) {
	location := fmt.Sprintf("%s:%d:%d", d.Location.File, d.Location.Line, d.Location.Column)
	if useColors {
		colorFunc := r.severityColor(d.Severity.String())
		report.WriteString(fmt.Sprintf("%s: %s [%s] %s\n",
			color.CyanString(location), colorFunc(d.Severity.String()), d.ID, d.Message))
	} else {
		report.WriteString(fmt.Sprintf("%s: %s [%s] %s\n", location, d.Severity.String(), d.ID, d.Message))
	}
	if d.Secondary != nil {
		secondary := fmt.Sprintf("%s:%d:%d", d.Secondary.File, d.Secondary.Line, d.Secondary.Column)
		if useColors {
			report.WriteString(color.WhiteString("   declared at %s\n", secondary))
		} else {
			report.WriteString(fmt.Sprintf("   declared at %s\n", secondary))
		}
	}
}
