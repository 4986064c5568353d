package renderer

import (
	"github.com/finbook/reconcile"
)

const reportTemplate = `# Consolidation Report

| Statistic | Value |
|---|---:|
| Source batches | {{.SourceBatches}} |
| Input records | {{.TotalInputRecords}} |
| Duplicates removed | {{.DuplicatesRemoved}} |
| Final records | {{.FinalRecordCount}} |
{{- if .Analyses}}

## Sign conventions

| Batch | Convention | Confidence | Corrected |
|---|---|---:|---|
{{- range .Analyses}}
| {{.Source}} | {{.Analysis.Convention}} | {{printf "%.2f" .Analysis.Confidence}} | {{if .Flipped}}flipped{{else}}unchanged{{end}} |
{{- end}}
{{- end}}
{{- if .Warnings}}

## Warnings

{{- range .Warnings}}
* {{.}}
{{- end}}
{{- end}}
`

// ConsolidationReport renders a consolidation report to a markdown string.
func ConsolidationReport(r *reconcile.Report) string {
	return renderTemplate("report", reportTemplate, r)
}

const analysisTemplate = `# Sign Convention Analysis: {{.Source}}

| Metric | Value |
|---|---:|
| Convention | {{.Analysis.Convention}} |
| Confidence | {{printf "%.2f" .Analysis.Confidence}} |
| Spending records | {{.Analysis.SpendingCount}} |
| Income records | {{.Analysis.IncomeCount}} |
| Spending positive | {{percent .Analysis.SpendingPositiveRatio}} |
| Income positive | {{percent .Analysis.IncomePositiveRatio}} |
| Records | {{.Analysis.TotalRecords}} |
| Decision | {{if .Flipped}}flip all signs{{else}}keep signs{{end}} |
`

// BatchAnalysis renders one batch's sign-convention analysis to markdown.
func BatchAnalysis(a reconcile.BatchAnalysis) string {
	return renderTemplate("analysis", analysisTemplate, a)
}

const clustersTemplate = `# Duplicate Clusters
{{if not .Clusters}}
No duplicates found.
{{end}}
{{- range .Clusters}}
## {{.Signature}} ({{len .Records}} records)

| Date | Amount | Description | Account | Institution | Transaction ID |
|---|---:|---|---|---|---|
{{- range .Records}}
| {{.Date}} | {{.Amount.Display $.Currency}} | {{.Description}} | {{.Account}} | {{.Institution}} | {{.TransactionID}} |
{{- end}}
{{end}}`

// Clusters renders duplicate clusters to markdown, with amounts formatted
// in the given currency. Singleton clusters are not interesting and should
// be filtered out by the caller.
func Clusters(clusters []reconcile.Cluster, currency string) string {
	data := struct {
		Clusters []reconcile.Cluster
		Currency string
	}{clusters, currency}
	return renderTemplate("clusters", clustersTemplate, data)
}

const accountsTemplate = `# Configured Accounts
{{if not .}}
No accounts configured.
{{end}}
{{- if .}}
| Institution | Account | Name | Type | Description |
|---|---|---|---|---|
{{- range .}}
| {{.Institution}} | {{.Account}} | {{.AccountName}} | {{.AccountType}} | {{.Description}} |
{{- end}}
{{- end}}
`

// Accounts renders the account directory to markdown.
func Accounts(accounts []reconcile.ConfiguredAccount) string {
	return renderTemplate("accounts", accountsTemplate, accounts)
}

const runsTemplate = `# Consolidation Runs
{{if not .}}
No runs recorded.
{{end}}
{{- if .}}
| When | Batches | Input | Removed | Final | Warnings |
|---|---:|---:|---:|---:|---:|
{{- range .}}
| {{.Timestamp.Format "2006-01-02 15:04"}} | {{.SourceBatches}} | {{.TotalInputRecords}} | {{.DuplicatesRemoved}} | {{.FinalRecordCount}} | {{len .Warnings}} |
{{- end}}
{{- end}}
`

// Runs renders the consolidation run history to markdown, oldest first.
func Runs(runs []reconcile.Run) string {
	return renderTemplate("runs", runsTemplate, runs)
}
