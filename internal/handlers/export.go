package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/alimgiray/persondir/internal/models"
)

const peopleSheet = "People"

var peopleHeader = []interface{}{"ID", "First Name", "Last Name", "Address", "Gender", "Email"}

// Export streams every person as an xlsx workbook
func (h *PersonHandler) Export(c *gin.Context) {
	people, err := h.personService.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	f, err := buildPeopleWorkbook(people)
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", `attachment; filename="people.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		c.Error(err)
	}
}

func buildPeopleWorkbook(people []*models.Person) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", peopleSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(peopleSheet, "A1", &peopleHeader); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, p := range people {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := []interface{}{p.ID, p.FirstName, p.LastName, p.Address, p.Gender, p.Email}
		if err := f.SetSheetRow(peopleSheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	return f, nil
}
