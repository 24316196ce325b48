package services

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"backend_timesheet/models"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// Форматы выгрузки табеля
const (
	ExportFormatExcel = "xlsx"
	ExportFormatCSV   = "csv"
	ExportFormatPDF   = "pdf"
)

// ExportService выгружает сформированный табель в файл. Работает
// только с уже сохраненными строками, ничего не пересчитывает.
type ExportService struct{}

// NewExportService создает новый экземпляр ExportService
func NewExportService() *ExportService {
	return &ExportService{}
}

// ExportFile результат выгрузки: содержимое и метаданные для отдачи клиенту
type ExportFile struct {
	Data        []byte
	FileName    string
	ContentType string
}

var exportHeaders = []string{"Дата", "Часы", "Описание работ"}

// ExportEntries формирует файл табеля за период в указанном формате
func (es *ExportService) ExportEntries(entries []models.TimesheetEntry, login string, month, year int, format string) (*ExportFile, error) {
	baseName := fmt.Sprintf("timesheet_%s_%02d_%d_%s", login, month, year, uuid.New().String()[:8])

	switch format {
	case ExportFormatExcel:
		data, err := es.buildExcel(entries, month, year)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Data:        data,
			FileName:    baseName + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		}, nil
	case ExportFormatCSV:
		data, err := es.buildCSV(entries)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Data:        data,
			FileName:    baseName + ".csv",
			ContentType: "text/csv",
		}, nil
	case ExportFormatPDF:
		data, err := es.buildPDF(entries, month, year)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Data:        data,
			FileName:    baseName + ".pdf",
			ContentType: "application/pdf",
		}, nil
	default:
		return nil, fmt.Errorf("%w: неподдерживаемый формат выгрузки '%s'", ErrValidation, format)
	}
}

// buildExcel формирует Excel файл табеля
func (es *ExportService) buildExcel(entries []models.TimesheetEntry, month, year int) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Табель"
	f.SetSheetName("Sheet1", sheetName)

	// Заголовок листа
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Табель рабочего времени за %02d.%d", month, year))
	f.MergeCell(sheetName, "A1", "C1")

	// Шапка таблицы
	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(sheetName, cell, header)
	}

	// Строки табеля
	for rowIdx, entry := range entries {
		row := rowIdx + 3
		dateCell, _ := excelize.CoordinatesToCellName(1, row)
		hoursCell, _ := excelize.CoordinatesToCellName(2, row)
		descCell, _ := excelize.CoordinatesToCellName(3, row)

		f.SetCellValue(sheetName, dateCell, entry.EntryDate.Format("02.01.2006"))
		hours, _ := entry.WorkHours.Float64()
		f.SetCellValue(sheetName, hoursCell, hours)
		f.SetCellValue(sheetName, descCell, entry.Description)
	}

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 8)
	f.SetColWidth(sheetName, "C", "C", 80)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("не удалось сформировать Excel файл: %w", err)
	}
	return buf.Bytes(), nil
}

// buildCSV формирует CSV файл табеля
func (es *ExportService) buildCSV(entries []models.TimesheetEntry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(exportHeaders); err != nil {
		return nil, fmt.Errorf("не удалось записать заголовки CSV: %w", err)
	}

	for _, entry := range entries {
		record := []string{
			entry.EntryDate.Format("02.01.2006"),
			entry.WorkHours.StringFixed(3),
			entry.Description,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("не удалось записать строку CSV: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("не удалось сформировать CSV файл: %w", err)
	}
	return buf.Bytes(), nil
}

// buildPDF формирует PDF файл табеля (упрощенная таблица)
func (es *ExportService) buildPDF(entries []models.TimesheetEntry, month, year int) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(100, 10, fmt.Sprintf("Timesheet %02d.%d", month, year))
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 9)
	pdf.Cell(25, 8, "Date")
	pdf.Cell(20, 8, "Hours")
	pdf.Cell(140, 8, "Description")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 8)
	for _, entry := range entries {
		pdf.Cell(25, 7, entry.EntryDate.Format("02.01.2006"))
		pdf.Cell(20, 7, entry.WorkHours.StringFixed(3))

		desc := []rune(entry.Description)
		if len(desc) > 110 {
			desc = append(desc[:110], []rune("...")...)
		}
		pdf.Cell(140, 7, string(desc))
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("не удалось сформировать PDF файл: %w", err)
	}
	return buf.Bytes(), nil
}
