// Package importer parses employee roster spreadsheets for bulk onboarding.
package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jonesrussell/onboarding/internal/models"
)

// ErrEmptyRoster is returned when the spreadsheet has no data rows.
var ErrEmptyRoster = errors.New("roster has no data rows")

// SheetName is the worksheet the roster rows are read from.
const SheetName = "Roster"

// rosterHeader is the expected first row, in order.
var rosterHeader = []string{"First Name", "Last Name", "Email", "Department", "Start Date"}

// dateLayouts are the accepted start date formats, tried in order.
var dateLayouts = []string{"2006-01-02", "01/02/2006", "2006-01-02 15:04:05"}

// RowError describes a roster row that failed validation.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// ParsedEmployee pairs a parsed employee with its 1-based spreadsheet row,
// so later failures (such as a rejected save) can name the right row.
type ParsedEmployee struct {
	Row      int
	Employee models.Employee
}

// Result holds the parsed employees and any per-row validation failures.
type Result struct {
	Employees []ParsedEmployee
	Errors    []RowError
}

// ParseRoster reads an xlsx roster and returns the employees it describes.
// Rows that fail validation are reported in Result.Errors rather than
// aborting the whole import.
func ParseRoster(r io.Reader) (*Result, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer workbook.Close()

	sheet := SheetName
	if idx, idxErr := workbook.GetSheetIndex(sheet); idxErr != nil || idx < 0 {
		sheet = workbook.GetSheetName(0)
	}

	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, ErrEmptyRoster
	}

	result := &Result{}
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header
		if isBlankRow(row) {
			continue
		}

		employee, rowErr := parseRow(row, rowNum)
		if rowErr != nil {
			result.Errors = append(result.Errors, *rowErr)
			continue
		}
		result.Employees = append(result.Employees, ParsedEmployee{
			Row:      rowNum,
			Employee: *employee,
		})
	}

	if len(result.Employees) == 0 && len(result.Errors) == 0 {
		return nil, ErrEmptyRoster
	}

	return result, nil
}

func parseRow(row []string, rowNum int) (*models.Employee, *RowError) {
	firstName := cell(row, 0)
	lastName := cell(row, 1)
	email := cell(row, 2)

	if firstName == "" || lastName == "" {
		return nil, &RowError{Row: rowNum, Reason: "first and last name are required"}
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, &RowError{Row: rowNum, Reason: "a valid email is required"}
	}

	employee := &models.Employee{
		FirstName:  firstName,
		LastName:   lastName,
		Email:      email,
		Department: cell(row, 3),
		Status:     models.StatusPending,
	}

	if raw := cell(row, 4); raw != "" {
		start, err := parseDate(raw)
		if err != nil {
			return nil, &RowError{Row: rowNum, Reason: fmt.Sprintf("unrecognized start date %q", raw)}
		}
		employee.StartDate = &start
	}

	return employee, nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("no layout matched %q", raw)
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// WriteTemplate writes an empty roster workbook with the expected header to w.
// Used by the template generator command.
func WriteTemplate(w io.Writer) error {
	workbook := excelize.NewFile()
	defer workbook.Close()

	if _, err := workbook.NewSheet(SheetName); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := workbook.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("remove default sheet: %w", err)
	}

	for i, name := range rosterHeader {
		cellRef, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := workbook.SetCellValue(SheetName, cellRef, name); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	if err := workbook.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
