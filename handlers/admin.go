package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	taxrecordRepo "taxline/database/repository/taxrecord"
	"taxline/models"
	"taxline/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes back-office operations.
type AdminHandler struct {
	Records taxrecordRepo.TaxRecordRepository
}

func NewAdminHandler(records taxrecordRepo.TaxRecordRepository) *AdminHandler {
	return &AdminHandler{Records: records}
}

// ImportTaxRecordsHandler replaces the tax records collection with the
// rows of an uploaded CSV file. Expected headers: Customer ID, Full
// Name, Province, Tax Year, Income, Tax Owed, Tax Paid, Balance,
// Filing Status.
func (h *AdminHandler) ImportTaxRecordsHandler(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "csv file is required", err.Error())
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to read csv header", err.Error())
		return
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"customer id", "full name"} {
		if _, ok := cols[required]; !ok {
			utils.JSONError(c, http.StatusBadRequest, "invalid csv header",
				fmt.Sprintf("missing column %q", required))
			return
		}
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []models.TaxRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "failed to read csv",
				fmt.Sprintf("line %d: %v", line, err))
			return
		}

		rec := models.TaxRecord{
			CustomerID:   field(row, "customer id"),
			FullName:     field(row, "full name"),
			Province:     field(row, "province"),
			FilingStatus: field(row, "filing status"),
		}
		rec.TaxYear, _ = strconv.Atoi(field(row, "tax year"))
		rec.Income, _ = strconv.ParseFloat(field(row, "income"), 64)
		rec.TaxOwed, _ = strconv.ParseFloat(field(row, "tax owed"), 64)
		rec.TaxPaid, _ = strconv.ParseFloat(field(row, "tax paid"), 64)
		rec.Balance, _ = strconv.ParseFloat(field(row, "balance"), 64)

		if rec.CustomerID == "" || rec.FullName == "" {
			utils.JSONError(c, http.StatusBadRequest, "invalid csv row",
				fmt.Sprintf("line %d: customer id and full name are required", line))
			return
		}
		records = append(records, rec)
	}

	imported, err := h.Records.ReplaceAll(c.Request.Context(), records)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to import records", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": imported})
}
