package services

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pathfinity/pathfinity-backend/internal/logger"
	pkgerrors "github.com/pathfinity/pathfinity-backend/internal/pkg/errors"
	"github.com/pathfinity/pathfinity-backend/internal/types"
)

//go:embed provisioning.yaml
var provisioningYAML []byte

// ProvisioningService resolves the feature bundle for a grade and school
// type by a deterministic table merge: grade band first, then school-type
// overrides on top.
type ProvisioningService interface {
	GetProvisioningConfig(grade, schoolType string) (types.ProvisioningConfig, error)
}

type provisioningOverride struct {
	InterfaceComplexity *string `yaml:"interface_complexity"`
	ShowLeaderboard     *bool   `yaml:"show_leaderboard"`
	EnableChat          *bool   `yaml:"enable_chat"`
	EnableVideo         *bool   `yaml:"enable_video"`
	MaxSessionMinutes   *int    `yaml:"max_session_minutes"`
	ReadAloudDefault    *bool   `yaml:"read_aloud_default"`
	ParentDigest        *bool   `yaml:"parent_digest"`
}

type provisioningTable struct {
	Bands       map[string]types.ProvisioningConfig `yaml:"bands"`
	SchoolTypes map[string]provisioningOverride     `yaml:"school_types"`
}

type provisioningService struct {
	log   *logger.Logger
	table provisioningTable
}

func NewProvisioningService(baseLog *logger.Logger) (ProvisioningService, error) {
	var table provisioningTable
	if err := yaml.Unmarshal(provisioningYAML, &table); err != nil {
		return nil, fmt.Errorf("provisioning table: %w", err)
	}
	if len(table.Bands) == 0 {
		return nil, fmt.Errorf("provisioning table has no grade bands")
	}
	return &provisioningService{
		log:   baseLog.With("service", "ProvisioningService"),
		table: table,
	}, nil
}

func (s *provisioningService) GetProvisioningConfig(grade, schoolType string) (types.ProvisioningConfig, error) {
	band := gradeBand(grade)
	cfg, ok := s.table.Bands[band]
	if !ok {
		return types.ProvisioningConfig{}, fmt.Errorf("%w: no provisioning band for grade %q", pkgerrors.ErrNotFound, grade)
	}

	if override, ok := s.table.SchoolTypes[strings.ToLower(strings.TrimSpace(schoolType))]; ok {
		applyOverride(&cfg, override)
	}
	return cfg, nil
}

func applyOverride(cfg *types.ProvisioningConfig, o provisioningOverride) {
	if o.InterfaceComplexity != nil {
		cfg.InterfaceComplexity = *o.InterfaceComplexity
	}
	if o.ShowLeaderboard != nil {
		cfg.ShowLeaderboard = *o.ShowLeaderboard
	}
	if o.EnableChat != nil {
		cfg.EnableChat = *o.EnableChat
	}
	if o.EnableVideo != nil {
		cfg.EnableVideo = *o.EnableVideo
	}
	if o.MaxSessionMinutes != nil {
		cfg.MaxSessionMinutes = *o.MaxSessionMinutes
	}
	if o.ReadAloudDefault != nil {
		cfg.ReadAloudDefault = *o.ReadAloudDefault
	}
	if o.ParentDigest != nil {
		cfg.ParentDigest = *o.ParentDigest
	}
}

// gradeBand maps a grade label ("K", "2", "10") onto its band key.
func gradeBand(grade string) string {
	g := strings.ToUpper(strings.TrimSpace(grade))
	if g == "K" || g == "PK" || g == "PRE-K" || g == "TK" {
		return "K-2"
	}
	n, err := strconv.Atoi(g)
	if err != nil {
		return "K-2"
	}
	switch {
	case n <= 2:
		return "K-2"
	case n <= 5:
		return "3-5"
	case n <= 8:
		return "6-8"
	default:
		return "9-12"
	}
}
