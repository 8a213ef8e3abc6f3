package commands

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/de-tools/fin-atlas/pkg/services/benchmark"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

type BenchmarksCmd struct {
	level    string
	parentID int
	seedFile string

	deps Provider
}

func NewBenchmarksCmd(deps Provider) *cobra.Command {
	bc := &BenchmarksCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "benchmarks",
		Short: "Browse industry categories and benchmark data",
	}

	categories := &cobra.Command{
		Use:   "categories",
		Short: "List industry categories",
		RunE:  bc.runCategories,
	}
	categories.Flags().StringVar(&bc.level, "level", "", "Category level: major, middle or minor")
	categories.Flags().IntVar(&bc.parentID, "parent", 0, "Only list children of this category")

	show := &cobra.Command{
		Use:   "show <category-id>",
		Short: "Show the benchmark used for a category",
		Args:  cobra.ExactArgs(1),
		RunE:  bc.runShow,
	}

	seed := &cobra.Command{
		Use:   "seed",
		Short: "Write a benchmark dataset into the configured database",
		Long: "Write a benchmark dataset into the configured database.\n\n" +
			"An empty database cannot serve benchmarks.source=sql, so seed it with\n" +
			"FINATLAS_BENCHMARKS_SOURCE=embedded and database.dsn set.",
		RunE: bc.runSeed,
	}
	seed.Flags().StringVar(&bc.seedFile, "file", "", "Dataset file (YAML or JSON); the built-in dataset when empty")

	cmd.AddCommand(categories, show, seed)
	return cmd
}

func newTable(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	return tw
}

func (bc *BenchmarksCmd) runCategories(cmd *cobra.Command, _ []string) error {
	deps, err := bc.deps()
	if err != nil {
		return err
	}

	var parent *int
	if cmd.Flags().Changed("parent") {
		parent = &bc.parentID
	}

	var categories []domain.Category
	level := domain.CategoryLevel(bc.level)
	switch {
	case level == "" && parent == nil:
		categories = deps.Benchmarks.Categories()
	case level == "":
		categories = deps.Benchmarks.Children(*parent)
	case !level.Valid():
		return fmt.Errorf("invalid level %q. Supported levels: major, middle, minor", bc.level)
	default:
		categories = deps.Benchmarks.ByLevel(level, parent)
	}

	if len(categories) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No categories found")
		return nil
	}

	tw := newTable(cmd.OutOrStdout())
	tw.AppendHeader(table.Row{"ID", "Code", "Name", "Level", "Parent"})
	for _, c := range categories {
		parent := ""
		if c.ParentID != nil {
			parent = strconv.Itoa(*c.ParentID)
		}
		tw.AppendRow(table.Row{c.ID, c.Code, c.Name, c.Level, parent})
	}
	tw.Render()
	return nil
}

func (bc *BenchmarksCmd) runShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid category id %q", args[0])
	}
	deps, err := bc.deps()
	if err != nil {
		return err
	}

	res := deps.Benchmarks.Resolve(id)
	b := res.Benchmark
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, text.Bold.Sprintf("%s (%s)", b.Category.Name, b.Category.Code))
	if res.Fallback {
		fmt.Fprintf(out, "No data for category %d; using %d\n", id, b.Category.ID)
	}
	fmt.Fprintf(out, "Sample size: %d, data year: %d\n", b.SampleSize, b.DataYear)

	tw := newTable(out)
	tw.AppendHeader(table.Row{"Metric", "Value"})
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	for _, m := range slices.Sorted(maps.Keys(b.Values)) {
		tw.AppendRow(table.Row{m, fmt.Sprintf("%.2f", b.Values[m])})
	}
	tw.Render()
	return nil
}

func (bc *BenchmarksCmd) runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	deps, err := bc.deps()
	if err != nil {
		return err
	}
	if deps.Seeder == nil {
		return fmt.Errorf("no database configured; set database.dsn")
	}

	loader := benchmark.NewEmbeddedLoader()
	if bc.seedFile != "" {
		loader = benchmark.NewFileLoader(bc.seedFile)
	}
	ds, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	// validate before writing anything
	if _, err := benchmark.New(ds); err != nil {
		return fmt.Errorf("invalid dataset: %w", err)
	}
	if err := deps.Seeder.Save(ctx, ds); err != nil {
		return fmt.Errorf("failed to seed benchmarks: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d categories and %d benchmarks\n", len(ds.Categories), len(ds.Benchmarks))
	return nil
}
