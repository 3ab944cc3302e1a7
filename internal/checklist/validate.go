package checklist

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ndsrf/wedding-sub002/internal/model"
	"github.com/ndsrf/wedding-sub002/internal/reldate"
)

const (
	maxSectionLen     = 100
	maxTitleLen       = 200
	maxDescriptionLen = 2000

	absoluteDateLayout = "2006-01-02"
)

// Validate checks a parsed batch against schema and business rules and
// returns the normalized rows eligible for preview/commit.
//
// Batch-size violations reject the whole batch with a single error. Per-row
// problems only exclude that row. Duplicate (section, title) keys keep the
// first occurrence and drop the rest with a warning. A completed/status
// mismatch is reconciled in favor of "completed" with a warning rather than
// rejected.
func Validate(rows []ImportRow, weddingDate time.Time) ValidationReport {
	var report ValidationReport

	if len(rows) == 0 {
		report.Errors = append(report.Errors, RowIssue{Message: "no data rows found"})
		return report
	}
	if len(rows) > MaxImportRows {
		report.Errors = append(report.Errors, RowIssue{
			Message: fmt.Sprintf("too many rows: %d (maximum %d)", len(rows), MaxImportRows),
		})
		return report
	}

	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		issues := validateRow(row, weddingDate)
		if len(issues) > 0 {
			report.Errors = append(report.Errors, issues...)
			continue
		}

		key := mergeKey(row.Section, row.Title)
		if seen[key] {
			report.Warnings = append(report.Warnings, RowIssue{
				Row:     row.Line,
				Message: fmt.Sprintf("duplicate of an earlier row (%s / %s), skipped", row.Section, row.Title),
			})
			continue
		}
		seen[key] = true

		// Reconcile completed/status: completion wins over the stale flag.
		if row.Completed && row.Status != model.StatusCompleted {
			report.Warnings = append(report.Warnings, RowIssue{
				Row:     row.Line,
				Field:   "status",
				Message: fmt.Sprintf("marked completed but status was %s; status set to %s", row.Status, model.StatusCompleted),
			})
			row.Status = model.StatusCompleted
		} else if row.Status == model.StatusCompleted && !row.Completed {
			report.Warnings = append(report.Warnings, RowIssue{
				Row:     row.Line,
				Field:   "completed",
				Message: "status is COMPLETED but completed flag was false; flag set to true",
			})
			row.Completed = true
		}

		report.Rows = append(report.Rows, row)
	}

	return report
}

func validateRow(row ImportRow, weddingDate time.Time) []RowIssue {
	var issues []RowIssue

	fail := func(field, message string) {
		issues = append(issues, RowIssue{Row: row.Line, Field: field, Message: message})
	}

	if row.Section == "" {
		fail("section", "section is required")
	} else if utf8.RuneCountInString(row.Section) > maxSectionLen {
		fail("section", fmt.Sprintf("section exceeds %d characters", maxSectionLen))
	}

	if utf8.RuneCountInString(row.Title) > maxTitleLen {
		fail("title", fmt.Sprintf("title exceeds %d characters", maxTitleLen))
	}

	if utf8.RuneCountInString(row.Description) > maxDescriptionLen {
		fail("description", fmt.Sprintf("description exceeds %d characters", maxDescriptionLen))
	}

	if !model.ValidAssignee(row.AssignedTo) {
		fail("assigned_to", fmt.Sprintf("invalid assignee %q", row.AssignedTo))
	}

	if !model.ValidStatus(row.Status) {
		fail("status", fmt.Sprintf("invalid status %q", row.Status))
	}

	if row.DueDate == "" {
		fail("due_date", "due date is required")
	} else if _, err := resolveDueDate(row.DueDate, weddingDate); err != nil {
		fail("due_date", fmt.Sprintf("%q is neither a relative date nor a valid YYYY-MM-DD date", row.DueDate))
	}

	return issues
}

// resolveDueDate accepts either the relative date grammar or a literal
// YYYY-MM-DD calendar date.
func resolveDueDate(raw string, weddingDate time.Time) (time.Time, error) {
	if r, ok := reldate.Parse(raw); ok {
		return reldate.ToAbsolute(r, weddingDate)
	}
	return time.Parse(absoluteDateLayout, strings.TrimSpace(raw))
}

// mergeKey is the import identity: lowercased section plus lowercased title.
// Renaming a task's title therefore makes the importer treat it as a brand
// new task; that behavior is part of the import contract.
func mergeKey(section, title string) string {
	return strings.ToLower(section) + "\x00" + strings.ToLower(title)
}
