package xlsx

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	reporting "hotel-reports/internal/reporting/domain"
)

// Booking exports carry either Georgian or English headers. Candidates are
// tried in order per logical field.
var (
	roomKeys     = []string{"ნომერი", "Room"}
	checkInKeys  = []string{"შესვლა", "Check-in"}
	checkOutKeys = []string{"გასვლა", "Check-out"}
	nightsKeys   = []string{"ხანგრძლივობა", "Nights"}
	revenueKeys  = []string{"თანხა", "Revenue"}
	buildingKeys = []string{"ბლოკი", "Building"}

	// The channel column name varies freely; matched by substring.
	channelFragments = []string{"channel", "წყარო", "source", "არხ", "platform"}
)

// Excel serial dates count days since this epoch.
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

var ErrEmptyWorkbook = errors.New("xlsx: workbook has no data rows")

// ReadBookings decodes the first sheet of an xlsx workbook into booking
// rows. Cell-level defects (bad dates, non-numeric amounts) yield zero
// values and are left to the analyzer's row validation; an unreadable
// workbook is an error.
func ReadBookings(r io.Reader) ([]reporting.BookingRow, error) {
	f, err := excelize.OpenReader(r, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}
	cells, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	if len(cells) < 2 {
		return nil, ErrEmptyWorkbook
	}

	columns := mapColumns(cells[0])
	rows := make([]reporting.BookingRow, 0, len(cells)-1)
	for _, record := range cells[1:] {
		rows = append(rows, reporting.BookingRow{
			RoomIdentifier: strings.TrimSpace(columns.value(record, columns.room)),
			CheckIn:        parseCellDate(columns.value(record, columns.checkIn)),
			CheckOut:       parseCellDate(columns.value(record, columns.checkOut)),
			Nights:         parseCellInt(columns.value(record, columns.nights)),
			Revenue:        parseCellAmount(columns.value(record, columns.revenue)),
			ChannelRaw:     strings.TrimSpace(columns.value(record, columns.channel)),
			BuildingBlock:  strings.TrimSpace(columns.value(record, columns.building)),
		})
	}
	return rows, nil
}

type columnIndex struct {
	room     int
	checkIn  int
	checkOut int
	nights   int
	revenue  int
	building int
	channel  int
}

func mapColumns(header []string) columnIndex {
	idx := columnIndex{
		room:     findColumn(header, roomKeys),
		checkIn:  findColumn(header, checkInKeys),
		checkOut: findColumn(header, checkOutKeys),
		nights:   findColumn(header, nightsKeys),
		revenue:  findColumn(header, revenueKeys),
		building: findColumn(header, buildingKeys),
		channel:  -1,
	}
	for i, name := range header {
		lower := strings.ToLower(strings.TrimSpace(name))
		for _, fragment := range channelFragments {
			if strings.Contains(lower, fragment) {
				idx.channel = i
				break
			}
		}
		if idx.channel >= 0 {
			break
		}
	}
	return idx
}

func findColumn(header []string, candidates []string) int {
	for _, candidate := range candidates {
		for i, name := range header {
			if strings.EqualFold(strings.TrimSpace(name), candidate) {
				return i
			}
		}
	}
	return -1
}

func (c columnIndex) value(record []string, index int) string {
	if index < 0 || index >= len(record) {
		return ""
	}
	return record[index]
}

// parseCellDate accepts an Excel serial number or a date string. A value
// that parses as neither yields the zero time, which invalidates the row.
func parseCellDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		return excelEpoch.Add(time.Duration(serial * 24 * float64(time.Hour)))
	}
	for _, layout := range []string{"2006-01-02", "02.01.2006", "02/01/2006"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseCellInt(value string) int {
	value = strings.TrimSpace(value)
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return int(f)
	}
	return 0
}

// parseCellAmount tolerates thousands separators.
func parseCellAmount(value string) float64 {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}
