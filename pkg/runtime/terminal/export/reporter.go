package export

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type TableConfig struct {
	NameWidth        int
	ValueWidth       int
	UnitWidth        int
	DescriptionWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:        40,
		ValueWidth:       24,
		UnitWidth:        14,
		DescriptionWidth: 60,
	}
}

// Reporter renders each report section as a table.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(report *domain.Report) error {
	if report == nil {
		return fmt.Errorf("report is nil")
	}

	fmt.Fprintln(c.writer, text.Bold.Sprint(report.Title))
	fmt.Fprintf(c.writer, "Period: %s\n", report.Period)

	for _, section := range report.Sections {
		fmt.Fprintln(c.writer)
		fmt.Fprintln(c.writer, text.Bold.Sprintf("=== %s ===", section.Title))
		for _, k := range slices.Sorted(maps.Keys(section.Summary)) {
			fmt.Fprintf(c.writer, "%s: %v\n", k, section.Summary[k])
		}
		if len(section.Details) == 0 {
			continue
		}

		tw := table.NewWriter()
		tw.SetOutputMirror(c.writer)
		tw.SetStyle(table.StyleLight)
		tw.AppendHeader(table.Row{"Name", "Value", "Unit", "Description"})
		tw.SetColumnConfigs([]table.ColumnConfig{
			{Number: 1, WidthMax: c.config.NameWidth},
			{Number: 2, WidthMax: c.config.ValueWidth, Align: text.AlignRight},
			{Number: 3, WidthMax: c.config.UnitWidth},
			{Number: 4, WidthMax: c.config.DescriptionWidth},
		})
		for _, d := range section.Details {
			tw.AppendRow(table.Row{d.Name, d.Value, d.Unit, d.Description})
		}
		tw.Render()
	}
	return nil
}
