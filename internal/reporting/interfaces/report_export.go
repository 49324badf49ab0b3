package interfaces

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	reporting "hotel-reports/internal/reporting/domain"
)

var georgianMonths = [...]string{
	"იანვარი", "თებერვალი", "მარტი", "აპრილი", "მაისი", "ივნისი",
	"ივლისი", "აგვისტო", "სექტემბერი", "ოქტომბერი", "ნოემბერი", "დეკემბერი",
}

// ExportFileName returns the localized workbook name for a month.
func ExportFileName(year, month int) string {
	return fmt.Sprintf("Orbi_City_%s_%d_Analysis.xlsx", georgianMonths[month-1], year)
}

// BuildReportXLSX renders the analysis as a five-sheet workbook: filtered
// bookings, bilingual summary, and the room/channel/building breakdowns.
// Money is formatted with 2 decimals, nights and bookings with 1.
func BuildReportXLSX(result *reporting.AnalysisResult, year, month int) ([]byte, error) {
	f := excelize.NewFile()
	bookingsSheet := "ჯავშნები"
	summarySheet := "სტატისტიკა"
	roomsSheet := "ოთახები"
	channelsSheet := "არხები"
	buildingsSheet := "ბლოკები"

	f.SetSheetName("Sheet1", bookingsSheet)
	for _, sheet := range []string{summarySheet, roomsSheet, channelsSheet, buildingsSheet} {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}

	bookingRows := [][]any{{
		"ნომერი / Room", "შესვლა / Check-in", "გასვლა / Check-out",
		"ღამეები / Nights", "ღამეები თვეში / Nights in Month",
		"თანხა თვეში / Revenue in Month", "არხი / Channel", "ბლოკი / Building",
	}}
	for _, b := range result.FilteredData {
		bookingRows = append(bookingRows, []any{
			b.Room, b.CheckIn, b.CheckOut, b.Nights, b.NightsInMonth,
			money(b.RevenueInMonth), b.Channel, b.Building,
		})
	}
	if err := writeRows(f, bookingsSheet, bookingRows); err != nil {
		return nil, err
	}

	overall := result.Overall
	summaryRows := [][]any{
		{"მთავარი მაჩვენებლები / Key Figures", ""},
		{"თვე / Month", fmt.Sprintf("%s %d", georgianMonths[month-1], year)},
		{"", ""},
		{"სულ შემოსავალი / Total Revenue", money(overall.TotalRevenue)},
		{"საშუალო ღამის ფასი / ADR", money(overall.AvgADR)},
		{"RevPAR", money(overall.RevPAR)},
		{"", ""},
		{"სულ ღამეები / Total Nights", count(overall.TotalNights)},
		{"სულ ბრონირებები / Total Bookings", count(overall.TotalBookings)},
		{"დაკავების მაჩვენებელი / Occupancy", fmt.Sprintf("%.1f%%", overall.OccupancyRate)},
		{"უნიკალური ოთახები / Unique Rooms", overall.UniqueRooms},
	}
	if err := writeRows(f, summarySheet, summaryRows); err != nil {
		return nil, err
	}

	roomRows := [][]any{{"ოთახი", "შემოსავალი", "ღამეები", "ბრონირებები", "ADR"}}
	for _, r := range result.RoomStats {
		roomRows = append(roomRows, []any{r.Room, money(r.Revenue), count(r.Nights), count(r.Bookings), money(r.ADR)})
	}
	if err := writeRows(f, roomsSheet, roomRows); err != nil {
		return nil, err
	}

	channelRows := [][]any{{"არხი", "შემოსავალი", "ღამეები", "ბრონირებები", "ADR"}}
	for _, c := range result.ChannelStats {
		channelRows = append(channelRows, []any{c.Channel, money(c.Revenue), count(c.Nights), count(c.Bookings), money(c.ADR)})
	}
	if err := writeRows(f, channelsSheet, channelRows); err != nil {
		return nil, err
	}

	buildingRows := [][]any{{"ბლოკი", "შემოსავალი", "ღამეები", "ბრონირებები", "ADR"}}
	for _, b := range result.BuildingStats {
		buildingRows = append(buildingRows, []any{b.Building, money(b.Revenue), count(b.Nights), count(b.Bookings), money(b.ADR)})
	}
	if err := writeRows(f, buildingsSheet, buildingRows); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildReportPDF renders a one-page summary for a stored month. The base
// fonts carry no Georgian glyphs, so the PDF uses English labels.
func BuildReportPDF(report *reporting.MonthlyReportUpload, result *reporting.AnalysisResult) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Monthly Revenue Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %04d-%02d", report.Year, report.Month))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Source file: %s", report.FileName))
	pdf.Ln(8)

	overall := result.Overall
	pdf.Cell(0, 6, fmt.Sprintf("Total Revenue (%s): %.2f", report.Currency, overall.TotalRevenue))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("ADR: %.2f", overall.AvgADR))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("RevPAR: %.2f", overall.RevPAR))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Occupancy: %.1f%%", overall.OccupancyRate))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Nights: %.1f  Bookings: %.1f  Rooms: %d", overall.TotalNights, overall.TotalBookings, overall.UniqueRooms))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(50, 6, "Room", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Revenue", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Nights", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "ADR", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	rooms := result.RoomStats
	if len(rooms) > 20 {
		rooms = rooms[:20]
	}
	for _, room := range rooms {
		pdf.CellFormat(50, 6, room.Room, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", room.Revenue), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.1f", room.Nights), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", room.ADR), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func money(v float64) string { return fmt.Sprintf("%.2f", v) }

func count(v float64) string { return fmt.Sprintf("%.1f", v) }
