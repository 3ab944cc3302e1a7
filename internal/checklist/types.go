// Package checklist implements the wedding checklist import pipeline:
// parse a spreadsheet, validate and normalize its rows, optionally preview
// the merge, then commit it against the wedding's existing checklist.
package checklist

// ImportRow is one spreadsheet row mapped to checklist task fields.
// Line is the 1-based data row number, counted from the row after the header,
// so errors can point back at the source file.
type ImportRow struct {
	Line        int    `json:"line"`
	Section     string `json:"section"`
	Title       string `json:"title"`
	Description string `json:"description"`
	AssignedTo  string `json:"assigned_to"`
	DueDate     string `json:"due_date"`
	Status      string `json:"status"`
	Completed   bool   `json:"completed"`
}

// RowIssue is a validation error or warning tied to a source row.
// Row 0 means the issue applies to the batch as a whole.
type RowIssue struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ValidationReport is the outcome of the validate stage. Rows holds the
// normalized rows eligible to proceed; rows with errors are excluded but do
// not block the rest of the batch.
type ValidationReport struct {
	Errors   []RowIssue  `json:"errors"`
	Warnings []RowIssue  `json:"warnings"`
	Rows     []ImportRow `json:"rows"`
}

// OK reports whether the batch has no blocking errors.
func (r ValidationReport) OK() bool {
	return len(r.Errors) == 0
}

// ImportPreview is a dry-run summary of what a commit would do.
type ImportPreview struct {
	NewTasks     int         `json:"new_tasks"`
	UpdatedTasks int         `json:"updated_tasks"`
	Sections     []string    `json:"sections"`
	Rows         []ImportRow `json:"rows"`
	Warnings     []RowIssue  `json:"warnings"`
}

// ImportResult is the outcome of the commit stage. Success is true only when
// every row went through; row failures are itemized in Errors and do not
// undo the rows that succeeded.
type ImportResult struct {
	Success      bool       `json:"success"`
	TasksCreated int        `json:"tasks_created"`
	TasksUpdated int        `json:"tasks_updated"`
	Errors       []RowIssue `json:"errors"`
	Warnings     []RowIssue `json:"warnings"`
}

// MaxImportRows caps a single import batch.
const MaxImportRows = 200
