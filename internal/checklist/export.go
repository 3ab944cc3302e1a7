package checklist

import (
	"fmt"
	"io"
	"time"

	"github.com/ndsrf/wedding-sub002/internal/model"
	"github.com/ndsrf/wedding-sub002/internal/reldate"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Checklist"

// WriteWorkbook serializes a wedding's checklist to xlsx with the same
// columns the importer reads, so an exported file can be imported back.
// Due dates are written in relative form anchored to the wedding date.
func WriteWorkbook(w io.Writer, weddingDate time.Time, sections []model.ChecklistSection, tasks []model.ChecklistTask) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	header := []interface{}{"Section", "Title", "Description", "Assigned To", "Due Date", "Status", "Completed"}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return err
	}

	names := make(map[uuid.UUID]string, len(sections))
	for _, section := range sections {
		names[section.ID] = section.Name
	}

	for i, task := range tasks {
		sectionName := ""
		if task.SectionID != nil {
			sectionName = names[*task.SectionID]
		}

		dueDate := ""
		if task.DueDate != nil {
			rel, err := reldate.ToRelative(*task.DueDate, weddingDate)
			if err != nil {
				return err
			}
			dueDate = rel.String()
		}

		completed := "false"
		if task.Completed {
			completed = "true"
		}

		row := []interface{}{sectionName, task.Title, task.Description, task.AssignedTo, dueDate, task.Status, completed}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return err
		}
	}

	return f.Write(w)
}
