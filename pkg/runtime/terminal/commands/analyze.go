package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/de-tools/fin-atlas/pkg/adapters"
	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/de-tools/fin-atlas/pkg/services/analysis"
	"github.com/de-tools/fin-atlas/pkg/services/config"
	"github.com/de-tools/fin-atlas/pkg/services/extraction"
	"github.com/spf13/cobra"
)

const formatJSON = "json"

type AnalyzeCmd struct {
	inputs         []string
	previous       []string
	companyID      string
	period         string
	previousPeriod string
	documentType   string
	categoryID     int
	employees      float64
	profile        string
	profilesPath   string
	format         string

	deps      Provider
	reporters map[string]ReportHandler
}

func NewAnalyzeCmd(deps Provider, reporters map[string]ReportHandler) *cobra.Command {
	ac := &AnalyzeCmd{deps: deps, reporters: reporters}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute financial ratios for statement files and compare them with the industry",
		RunE:  ac.run,
	}

	cmd.Flags().StringSliceVar(&ac.inputs, "input", nil, "Statement files for the analyzed period (.txt, .csv, .xlsx, .pdf)")
	cmd.Flags().StringSliceVar(&ac.previous, "previous", nil, "Statement files for the previous period")
	cmd.Flags().StringVar(&ac.companyID, "company", "", "Company id (defaults to the profile's)")
	cmd.Flags().StringVar(&ac.period, "period", "current", "Label of the analyzed period")
	cmd.Flags().StringVar(&ac.previousPeriod, "previous-period", "previous", "Label of the previous period")
	cmd.Flags().StringVar(&ac.documentType, "type", "", "Document type of the inputs: bs, pl, payroll (default: detect all)")
	cmd.Flags().IntVar(&ac.categoryID, "category", 0, "Industry category id")
	cmd.Flags().Float64Var(&ac.employees, "employees", 0, "Employee count")
	cmd.Flags().StringVar(&ac.profile, "profile", "", "Company profile name")
	cmd.Flags().StringVar(&ac.profilesPath, "profiles", "profiles.ini", "Path to the company profiles file")
	cmd.Flags().StringVar(&ac.format, "format", "table", "Output format: table, text or json")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	reporter, ok := ac.reporters[ac.format]
	if !ok && ac.format != formatJSON {
		return fmt.Errorf("unsupported format %q. Supported formats: %s", ac.format, strings.Join(ac.formats(), ", "))
	}

	deps, err := ac.deps()
	if err != nil {
		return err
	}

	req, err := ac.request(cmd)
	if err != nil {
		return err
	}

	if req.Extracts, err = ac.extract(cmd, deps.Extractors, ac.inputs, req.CompanyID, req.Period); err != nil {
		return err
	}
	if len(ac.previous) > 0 {
		req.PreviousPeriod = ac.previousPeriod
		if req.PreviousExtracts, err = ac.extract(cmd, deps.Extractors, ac.previous, req.CompanyID, ac.previousPeriod); err != nil {
			return err
		}
	}

	result, err := deps.Analyzer.Analyze(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to analyze: %w", err)
	}

	if ac.format == formatJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(adapters.MapAnalysisDomainToApi(result, deps.Policy))
	}
	return reporter.Handle(adapters.MapAnalysisDomainToReport(result, deps.Policy))
}

func (ac *AnalyzeCmd) formats() []string {
	out := []string{formatJSON}
	for name := range ac.reporters {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// request merges the company profile with flags; explicit flags win.
func (ac *AnalyzeCmd) request(cmd *cobra.Command) (analysis.Request, error) {
	req := analysis.Request{CompanyID: ac.companyID, Period: ac.period}

	if ac.profile != "" {
		profiles, err := config.NewProfileRegistry(ac.profilesPath)
		if err != nil {
			return req, err
		}
		p, err := profiles.GetProfile(cmd.Context(), ac.profile)
		if err != nil {
			return req, err
		}
		if req.CompanyID == "" {
			req.CompanyID = p.CompanyID
		}
		req.CategoryID = p.CategoryID
		req.EmployeeCount = p.EmployeeCount
	}

	if cmd.Flags().Changed("category") {
		id := ac.categoryID
		req.CategoryID = &id
	}
	if cmd.Flags().Changed("employees") {
		n := ac.employees
		req.EmployeeCount = &n
	}
	if req.CompanyID == "" {
		req.CompanyID = "default"
	}
	return req, nil
}

func (ac *AnalyzeCmd) extract(
	cmd *cobra.Command,
	registry extraction.Registry,
	paths []string,
	companyID, period string,
) ([]domain.RawFinancialExtract, error) {
	out := make([]domain.RawFinancialExtract, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		ex, err := registry.Extract(cmd.Context(), extraction.Document{
			Name:      filepath.Base(path),
			Type:      domain.DocumentType(ac.documentType),
			Content:   content,
			CompanyID: companyID,
			Period:    period,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to extract %s: %w", path, err)
		}
		out = append(out, ex)
	}
	return out, nil
}
