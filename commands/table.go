package commands

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"go-tania/models"
)

var (
	accent      = lipgloss.Color("#8BC34A")
	muted       = lipgloss.Color("#7a8699")
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(muted)
)

// renderTable 渲染带表头的表格
func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(muted)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	return t.String()
}

// pageFooter 分页信息
func pageFooter(page, pages, total int) string {
	if pages < 1 {
		pages = 1
	}
	return footerStyle.Render(fmt.Sprintf("page %d of %d (%d total)", page, pages, total))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

var farmHeaders = []string{"UID", "Name", "Type", "Country", "City"}

func farmRows(farms []models.Farm, current string) [][]string {
	rows := make([][]string, 0, len(farms))
	for _, f := range farms {
		name := f.Name
		if f.UID == current {
			name += " *"
		}
		rows = append(rows, []string{f.UID, name, f.Type, f.Country, f.City})
	}
	return rows
}

var reservoirHeaders = []string{"UID", "Name", "Type", "Capacity"}

func reservoirRows(reservoirs []models.Reservoir) [][]string {
	rows := make([][]string, 0, len(reservoirs))
	for _, r := range reservoirs {
		capacity := "-"
		if r.HasCapacity() {
			capacity = formatFloat(r.Capacity)
		}
		rows = append(rows, []string{r.UID, r.Name, r.Type, capacity})
	}
	return rows
}

var areaHeaders = []string{"UID", "Name", "Size", "Type", "Location"}

func areaRows(areas []models.Area) [][]string {
	rows := make([][]string, 0, len(areas))
	for _, ar := range areas {
		rows = append(rows, []string{ar.UID, ar.Name, formatFloat(ar.Size) + " " + ar.SizeUnit, ar.Type, ar.Location})
	}
	return rows
}

var cropHeaders = []string{"UID", "Variety", "Plant", "Quantity", "Container", "Status"}

func cropRows(crops []models.Crop) [][]string {
	rows := make([][]string, 0, len(crops))
	for _, c := range crops {
		rows = append(rows, []string{c.UID, c.Variety, c.PlantType, strconv.Itoa(c.Quantity), c.ContainerType, c.Status})
	}
	return rows
}

var materialHeaders = []string{"UID", "Name", "Type", "Quantity", "Price"}

func materialRows(materials []models.Material) [][]string {
	rows := make([][]string, 0, len(materials))
	for _, m := range materials {
		typ := m.Type
		if m.TypeDetail != "" {
			typ += "/" + m.TypeDetail
		}
		rows = append(rows, []string{m.UID, m.Name, typ, formatFloat(m.Quantity) + " " + m.QuantityUnit, formatFloat(m.Price)})
	}
	return rows
}

var taskHeaders = []string{"UID", "Title", "Category", "Priority", "Due", "Status"}

func taskRows(tasks []models.Task) [][]string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		due := t.DueDate
		if due == "" {
			due = "-"
		}
		rows = append(rows, []string{t.UID, t.Title, t.Category, t.Priority, due, t.Status})
	}
	return rows
}
