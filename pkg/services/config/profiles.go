package config

import (
	"context"
	"fmt"

	"gopkg.in/ini.v1"
)

// CompanyProfile carries the per-company settings the analysis needs but
// statements do not contain.
type CompanyProfile struct {
	Name          string
	CompanyID     string
	CategoryID    *int
	EmployeeCount *float64
}

type ProfileRegistry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (*CompanyProfile, error)
}

type profileRegistry struct {
	cfg *ini.File
}

// NewProfileRegistry loads an INI file with one section per company:
//
//	[acme]
//	company_id = c-001
//	category_id = 21
//	employees = 120
func NewProfileRegistry(path string) (ProfileRegistry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	return &profileRegistry{cfg: cfg}, nil
}

func (pr *profileRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range pr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (pr *profileRegistry) GetProfile(_ context.Context, name string) (*CompanyProfile, error) {
	section, err := pr.cfg.GetSection(name)
	if err != nil || len(section.Keys()) == 0 {
		return nil, fmt.Errorf("profile %s not found", name)
	}

	profile := &CompanyProfile{
		Name:      name,
		CompanyID: section.Key("company_id").MustString(name),
	}

	if section.HasKey("category_id") {
		id, err := section.Key("category_id").Int()
		if err != nil {
			return nil, fmt.Errorf("profile %s: invalid category_id: %w", name, err)
		}
		profile.CategoryID = &id
	}

	if section.HasKey("employees") {
		n, err := section.Key("employees").Float64()
		if err != nil {
			return nil, fmt.Errorf("profile %s: invalid employees: %w", name, err)
		}
		profile.EmployeeCount = &n
	}

	return profile, nil
}
