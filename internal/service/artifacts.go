package service

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"

	"github.com/finastra-demo/repo-compliance-bot/models"
)

// WriteJSONReport overwrites the machine-readable report artifact.
func WriteJSONReport(path string, report models.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing report to %s: %w", path, err)
	}
	return nil
}

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Repository Compliance Dashboard</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; background: #f6f8fa; }
        .container { max-width: 1200px; margin: 0 auto; background: white; padding: 20px; border-radius: 8px; }
        .header { text-align: center; margin-bottom: 30px; }
        .metrics { display: flex; justify-content: space-around; margin: 20px 0; }
        .metric { text-align: center; padding: 20px; background: #f6f8fa; border-radius: 8px; min-width: 150px; }
        .metric h3 { margin: 0; color: #586069; }
        .metric h2 { margin: 10px 0 0 0; font-size: 2em; }
        .compliant { color: #28a745; }
        .non-compliant { color: #d73a49; }
        .repository { background: #f6f8fa; margin: 10px 0; padding: 15px; border-radius: 6px; }
        .violation { color: #d73a49; margin: 5px 0; }
        .timestamp { color: #586069; font-size: 0.9em; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>{{.Organization}} - Repository Compliance Dashboard</h1>
            <p class="timestamp">Last Updated: {{.ScanTimestamp.UTC.Format "2006-01-02 15:04:05"}} UTC</p>
        </div>

        <div class="metrics">
            <div class="metric">
                <h3>Scanned</h3>
                <h2>{{.TotalRepositories}}</h2>
            </div>
            <div class="metric">
                <h3>Compliant</h3>
                <h2 class="compliant">{{.CompliantCount}}</h2>
            </div>
            <div class="metric">
                <h3>Non-Compliant</h3>
                <h2 class="non-compliant">{{.NonCompliantCount}}</h2>
            </div>
            <div class="metric">
                <h3>Compliance Rate</h3>
                <h2>{{printf "%.1f" .ComplianceRate}}%</h2>
            </div>
        </div>

        <h2>Non-Compliant Repositories</h2>
{{- $nonCompliant := false}}
{{- range .Results}}
{{- if .Findings}}
{{- $nonCompliant = true}}
        <div class="repository">
            <h3><a href="{{.Repository.URL}}" target="_blank">{{.Repository.Name}}</a></h3>
            <p><strong>Visibility:</strong> {{.Repository.Visibility}}</p>
{{- range .Findings}}
            <div class="violation">{{.Violation}}</div>
{{- end}}
        </div>
{{- end}}
{{- end}}
{{- if not $nonCompliant}}
        <p>All repositories are compliant.</p>
{{- end}}
    </div>
</body>
</html>
`))

// WriteHTMLDashboard overwrites the human-readable dashboard artifact.
func WriteHTMLDashboard(path string, report models.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dashboard at %s: %w", path, err)
	}
	defer f.Close()

	if err := dashboardTemplate.Execute(f, report); err != nil {
		return fmt.Errorf("rendering dashboard: %w", err)
	}
	return nil
}
