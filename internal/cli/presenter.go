package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gpucatalog/gpucatalog/internal/admin"
	"github.com/gpucatalog/gpucatalog/pkg/api"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	numericStyle = cellStyle.Align(lipgloss.Right)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#2a3850"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935"))
)

var deviceHeaders = []string{
	"ID", "Name", "Manufacturer", "Year", "Memory", "Type", "Bus", "Clock", "Resolution", "PSU", "Price",
}

// numeric columns are right aligned
var numericColumns = map[int]bool{0: true, 3: true, 4: true, 6: true, 7: true, 9: true, 10: true}

// deviceRow formats one table row. Missing specification or price cells are
// left blank.
func deviceRow(d api.Device) []string {
	row := []string{
		strconv.FormatInt(d.ID, 10),
		d.Name,
		d.ManufacturerName(),
		strconv.Itoa(d.ReleaseYear),
		"", "", "", "", "", "", "",
	}
	if s, ok := d.PrimarySpecification(); ok {
		row[4] = fmt.Sprintf("%d GB", s.MemorySize)
		row[5] = s.MemoryType.String()
		row[6] = fmt.Sprintf("%d bit", s.BusWidth)
		row[7] = fmt.Sprintf("%d MHz", s.BaseClock)
		row[8] = s.MaxResolution
		row[9] = fmt.Sprintf("%d W", s.PSUPowerRequirement)
	}
	if p, ok := d.PrimaryPrice(); ok {
		row[10] = formatPrice(p.Price)
	}
	return row
}

func formatPrice(p float64) string {
	return "$" + strconv.FormatFloat(p, 'f', 2, 64)
}

// renderDevices draws the device table.
func renderDevices(devices []api.Device) string {
	rows := make([][]string, 0, len(devices))
	for _, d := range devices {
		rows = append(rows, deviceRow(d))
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(deviceHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case numericColumns[col]:
				return numericStyle
			default:
				return cellStyle
			}
		})
	return t.Render()
}

func renderManufacturers(manufacturers []api.Manufacturer) string {
	rows := make([][]string, 0, len(manufacturers))
	for _, m := range manufacturers {
		rows = append(rows, []string{strconv.FormatInt(m.ID, 10), m.Name})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("ID", "Name").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}

// tablePresenter renders the derived view as a table whenever the core asks
// for it. Option sets are kept for interactive prompts.
type tablePresenter struct {
	out    io.Writer
	quiet  bool
	form   []admin.Option
	filter []admin.Option
	memory []admin.Option
}

func (p *tablePresenter) SetManufacturerOptions(form, filter []admin.Option) {
	p.form, p.filter = form, filter
}

func (p *tablePresenter) SetMemoryTypeOptions(form, filter []admin.Option) {
	p.memory = form
}

func (p *tablePresenter) RenderDevices(devices []api.Device) {
	if p.quiet {
		return
	}
	if len(devices) == 0 {
		fmt.Fprintln(p.out, "No devices")
		return
	}
	fmt.Fprintln(p.out, renderDevices(devices))
}

func (p *tablePresenter) OpenForm(mode admin.FormMode, input admin.FormInput) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, "Form opened (%s)\n", mode)
}

func (p *tablePresenter) CloseForm() {}

// optionLabels lists the option set as "value label" lines, skipping the
// placeholder.
func optionLabels(opts []admin.Option) string {
	var b strings.Builder
	for _, o := range opts {
		if o.Value == "" {
			continue
		}
		if o.Value == o.Label {
			fmt.Fprintf(&b, "  %s\n", o.Label)
		} else {
			fmt.Fprintf(&b, "  %s) %s\n", o.Value, o.Label)
		}
	}
	return b.String()
}

var _ admin.Presenter = (*tablePresenter)(nil)

// consoleNotifier prints notices. Errors go to the error stream.
type consoleNotifier struct {
	out io.Writer
	err io.Writer
}

func (n *consoleNotifier) Success(msg string) {
	fmt.Fprintln(n.out, successStyle.Render(msg))
}

func (n *consoleNotifier) Error(msg string) {
	fmt.Fprintln(n.err, errorStyle.Render("Error: "+msg))
}

var _ admin.Notifier = (*consoleNotifier)(nil)
