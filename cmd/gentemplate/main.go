// Command gentemplate generates the Excel import template for employee
// rosters. Usage: go run cmd/gentemplate/main.go
package main

import (
	"log"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/jonesrussell/onboarding/internal/importer"
)

const templatePath = "examples/roster-import-template.xlsx"

func main() {
	if err := os.MkdirAll("examples", 0o755); err != nil {
		log.Fatal(err)
	}

	f, err := os.Create(templatePath)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	if err := importer.WriteTemplate(f); err != nil {
		log.Fatal(err)
	}

	if err := addInstructions(templatePath); err != nil {
		log.Fatal(err)
	}

	log.Println("Created " + templatePath)
}

// addInstructions reopens the template and appends an Instructions sheet
// plus two example rows under the header.
func addInstructions(path string) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rows := [][]string{
		{"Ada", "Lovelace", "ada.lovelace@example.com", "Engineering", "2026-09-15"},
		{"Grace", "Hopper", "grace.hopper@example.com", "People Ops", ""},
	}
	for r, row := range rows {
		for c, value := range row {
			cell, cellErr := excelize.CoordinatesToCellName(c+1, r+2)
			if cellErr != nil {
				return cellErr
			}
			if setErr := f.SetCellValue(importer.SheetName, cell, value); setErr != nil {
				return setErr
			}
		}
	}

	if _, err := f.NewSheet("Instructions"); err != nil {
		return err
	}
	instructions := []string{
		"Column Descriptions:",
		"",
		"First Name - Required.",
		"Last Name - Required.",
		"Email - Required. Must be unique per employee",
		"Department - Optional.",
		"Start Date - Optional. YYYY-MM-DD or MM/DD/YYYY",
	}
	for i, line := range instructions {
		cell, cellErr := excelize.CoordinatesToCellName(1, i+1)
		if cellErr != nil {
			return cellErr
		}
		if setErr := f.SetCellValue("Instructions", cell, line); setErr != nil {
			return setErr
		}
	}

	return f.Save()
}
