// Package xlsx renders tender document registers as Excel workbooks.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/bennyclifton-svg/assemble.ai-sub002/internal/core/domain"
)

const sheetName = "Tender Register"

type RegisterWriter struct{}

func NewRegisterWriter() *RegisterWriter {
	return &RegisterWriter{}
}

// Write renders one sheet with a header row followed by the register
// rows in the order given (folder then name, as listed by the
// repository).
func (w *RegisterWriter) Write(projectID string, rows []domain.RegisterRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	header := []any{"Project", "Folder", "Document", "Version", "Uploaded"}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("cell name for row %d: %w", i+2, err)
		}
		values := []any{
			projectID,
			row.FolderPath,
			row.DisplayName,
			row.Version,
			row.UploadedAt.Format("2006-01-02 15:04"),
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
