package export

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// TimetableBlock is one merged display block positioned on the print grid.
type TimetableBlock struct {
	Day         string
	StartMinute int
	EndMinute   int
	Title       string
	Subtitle    string
	Building    string
}

// TimetableLayout fixes the day columns and daily time window of the grid.
type TimetableLayout struct {
	Days            []string
	DayStartMinute  int
	DayEndMinute    int
	IntervalMinutes int
}

// TimetablePDFExporter renders merged blocks into a paginated, colored
// timetable grid with a building legend.
type TimetablePDFExporter struct{}

// NewTimetablePDFExporter constructs a timetable PDF exporter.
func NewTimetablePDFExporter() *TimetablePDFExporter {
	return &TimetablePDFExporter{}
}

// Soft fill palette cycled per building.
var buildingPalette = [][3]int{
	{197, 225, 165},
	{179, 229, 252},
	{255, 224, 178},
	{225, 190, 231},
	{255, 205, 210},
	{207, 216, 220},
}

const (
	timeColWidth = 22.0
	headerRowH   = 8.0
	slotRowH     = 6.0
	rowsPerPage  = 28
)

// Render produces the PDF document. Windows taller than one page split
// across pages by slot-row ranges; every page repeats the title and the
// day header.
func (e *TimetablePDFExporter) Render(title string, layout TimetableLayout, blocks []TimetableBlock) ([]byte, error) {
	if len(layout.Days) == 0 {
		return nil, fmt.Errorf("pdf requires at least one day column")
	}
	if layout.IntervalMinutes <= 0 || layout.DayEndMinute <= layout.DayStartMinute {
		return nil, fmt.Errorf("invalid timetable window")
	}

	colors := buildingColors(blocks)

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(false, 0)

	pageW, _ := pdf.GetPageSize()
	gridW := pageW - 20
	dayColWidth := (gridW - timeColWidth) / float64(len(layout.Days))

	totalRows := (layout.DayEndMinute - layout.DayStartMinute) / layout.IntervalMinutes
	for firstRow := 0; firstRow < totalRows; firstRow += rowsPerPage {
		lastRow := firstRow + rowsPerPage
		if lastRow > totalRows {
			lastRow = totalRows
		}
		windowStart := layout.DayStartMinute + firstRow*layout.IntervalMinutes
		windowEnd := layout.DayStartMinute + lastRow*layout.IntervalMinutes

		pdf.AddPage()
		e.drawHeader(pdf, title, layout.Days, dayColWidth)
		gridTop := pdf.GetY()
		e.drawGrid(pdf, layout, windowStart, windowEnd, dayColWidth, gridTop)
		e.drawBlocks(pdf, layout, blocks, colors, windowStart, windowEnd, dayColWidth, gridTop)
		e.drawLegend(pdf, colors, gridTop+float64(lastRow-firstRow)*slotRowH+6)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *TimetablePDFExporter) drawHeader(pdf *gofpdf.Fpdf, title string, days []string, dayColWidth float64) {
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 9, strings.ToUpper(title), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(238, 238, 238)
	pdf.CellFormat(timeColWidth, headerRowH, "Time", "1", 0, "C", true, 0, "")
	for _, day := range days {
		pdf.CellFormat(dayColWidth, headerRowH, day, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func (e *TimetablePDFExporter) drawGrid(pdf *gofpdf.Fpdf, layout TimetableLayout, windowStart, windowEnd int, dayColWidth, top float64) {
	pdf.SetFont("Arial", "", 7)
	y := top
	for start := windowStart; start < windowEnd; start += layout.IntervalMinutes {
		pdf.SetXY(10, y)
		label := fmt.Sprintf("%s - %s", clock(start), clock(start+layout.IntervalMinutes))
		pdf.CellFormat(timeColWidth, slotRowH, label, "1", 0, "C", false, 0, "")
		for range layout.Days {
			pdf.CellFormat(dayColWidth, slotRowH, "", "1", 0, "", false, 0, "")
		}
		y += slotRowH
	}
}

func (e *TimetablePDFExporter) drawBlocks(pdf *gofpdf.Fpdf, layout TimetableLayout, blocks []TimetableBlock, colors map[string][3]int, windowStart, windowEnd int, dayColWidth, top float64) {
	dayIndex := make(map[string]int, len(layout.Days))
	for i, day := range layout.Days {
		dayIndex[day] = i
	}

	for _, block := range blocks {
		col, ok := dayIndex[block.Day]
		if !ok {
			continue
		}
		start, end := block.StartMinute, block.EndMinute
		if start < windowStart {
			start = windowStart
		}
		if end > windowEnd {
			end = windowEnd
		}
		if start >= end {
			continue
		}

		x := 10 + timeColWidth + float64(col)*dayColWidth
		y := top + float64(start-windowStart)/float64(layout.IntervalMinutes)*slotRowH
		h := float64(end-start) / float64(layout.IntervalMinutes) * slotRowH

		rgb := colors[block.Building]
		pdf.SetFillColor(rgb[0], rgb[1], rgb[2])
		pdf.Rect(x, y, dayColWidth, h, "FD")

		pdf.SetFont("Arial", "B", 7)
		pdf.SetXY(x, y+1)
		pdf.CellFormat(dayColWidth, 3, block.Title, "", 2, "C", false, 0, "")
		if block.Subtitle != "" && h >= 9 {
			pdf.SetFont("Arial", "", 6)
			pdf.SetX(x)
			pdf.CellFormat(dayColWidth, 3, block.Subtitle, "", 0, "C", false, 0, "")
		}
	}
}

func (e *TimetablePDFExporter) drawLegend(pdf *gofpdf.Fpdf, colors map[string][3]int, y float64) {
	if len(colors) == 0 {
		return
	}
	buildings := make([]string, 0, len(colors))
	for building := range colors {
		if building != "" {
			buildings = append(buildings, building)
		}
	}
	sort.Strings(buildings)
	if len(buildings) == 0 {
		return
	}

	pdf.SetFont("Arial", "", 7)
	x := 10.0
	pdf.SetXY(x, y)
	pdf.CellFormat(18, 4, "Buildings:", "", 0, "L", false, 0, "")
	x += 18
	for _, building := range buildings {
		rgb := colors[building]
		pdf.SetFillColor(rgb[0], rgb[1], rgb[2])
		pdf.Rect(x, y, 4, 4, "FD")
		x += 5
		pdf.SetXY(x, y)
		w := pdf.GetStringWidth(building) + 4
		pdf.CellFormat(w, 4, building, "", 0, "L", false, 0, "")
		x += w + 2
	}
}

func buildingColors(blocks []TimetableBlock) map[string][3]int {
	buildings := make([]string, 0)
	seen := make(map[string]bool)
	for _, block := range blocks {
		if !seen[block.Building] {
			seen[block.Building] = true
			buildings = append(buildings, block.Building)
		}
	}
	sort.Strings(buildings)

	colors := make(map[string][3]int, len(buildings))
	for i, building := range buildings {
		colors[building] = buildingPalette[i%len(buildingPalette)]
	}
	return colors
}

func clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
