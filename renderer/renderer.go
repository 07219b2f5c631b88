package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/banker"
)

//go:embed templates/*.md
var templates embed.FS

// RenderVerification renders the result of a verification pass.
func RenderVerification(v *Verification) string {
	partials := map[string]string{
		"verification_account":      "verification_account.md",
		"verification_transactions": "verification_transactions.md",
	}
	return renderTemplate("verification", "verification.md", partials, v)
}

// RenderAccounts renders the list of accounts.
func RenderAccounts(l *AccountList) string {
	return renderTemplate("accounts", "accounts.md", nil, l)
}

// RenderAccount renders the summary of one account and its statement directories.
func RenderAccount(s *AccountSummary) string {
	partials := map[string]string{
		"account_directory": "account_directory.md",
	}
	return renderTemplate("account", "account.md", partials, s)
}

// RenderStatements renders every statement of an account, by directory.
func RenderStatements(l *StatementListing) string {
	return renderTemplate("statements", "statements.md", nil, l)
}

// RenderSchedule renders the scheduled payments with their next due date.
func RenderSchedule(s *ScheduleView) string {
	return renderTemplate("schedule", "schedule.md", nil, s)
}

// RenderFrequencies renders the frequency table, shortest period first.
func RenderFrequencies(f banker.Frequencies) string {
	return renderTemplate("frequencies", "frequencies.md", nil, f.Policies())
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, "templates/"+file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
