package toml

import (
	"fmt"

	"github.com/mgrude/clashtrack/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Accounts []accountSchema `toml:"accounts"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported accounts schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type accountSchema struct {
	ID                  string           `toml:"id"`
	Name                string           `toml:"name"`
	MainVillageBuilders []upgraderSchema `toml:"main_village_builders"`
	MainVillageLab      upgraderSchema   `toml:"main_village_lab"`
	BuilderBaseBuilders []upgraderSchema `toml:"builder_base_builders"`
	BuilderBaseLab      upgraderSchema   `toml:"builder_base_lab"`
	Config              *configSchema    `toml:"config,omitempty"`
}

type upgraderSchema struct {
	ID      string `toml:"id"`
	Name    string `toml:"name,omitempty"`
	EndTime string `toml:"end_time,omitempty"`
	InUse   bool   `toml:"in_use"`
}

type configSchema struct {
	MaxMainVillageBuilders int  `toml:"max_main_village_builders"`
	HasMainVillageLab      bool `toml:"has_main_village_lab"`
	MaxBuilderBaseBuilders int  `toml:"max_builder_base_builders"`
	HasBuilderBaseLab      bool `toml:"has_builder_base_lab"`
}

func toSchema(account domain.Account) accountSchema {
	return accountSchema{
		ID:                  string(account.ID),
		Name:                account.Name,
		MainVillageBuilders: buildersToSchema(account.MainVillageBuilders),
		MainVillageLab:      labToSchema(account.MainVillageLab),
		BuilderBaseBuilders: buildersToSchema(account.BuilderBaseBuilders),
		BuilderBaseLab:      labToSchema(account.BuilderBaseLab),
		Config: &configSchema{
			MaxMainVillageBuilders: account.Config.MaxMainVillageBuilders,
			HasMainVillageLab:      account.Config.HasMainVillageLab,
			MaxBuilderBaseBuilders: account.Config.MaxBuilderBaseBuilders,
			HasBuilderBaseLab:      account.Config.HasBuilderBaseLab,
		},
	}
}

// fromSchema decodes a stored account. Records written before capacity
// config existed carry no config table; those get one synthesized from the
// stored pool lengths, with both labs enabled. One-way migration, applied
// on every load until the record is next saved.
func fromSchema(account accountSchema) domain.Account {
	config := domain.AccountConfig{
		MaxMainVillageBuilders: len(account.MainVillageBuilders),
		HasMainVillageLab:      true,
		MaxBuilderBaseBuilders: len(account.BuilderBaseBuilders),
		HasBuilderBaseLab:      true,
	}
	if account.Config != nil {
		config = domain.AccountConfig{
			MaxMainVillageBuilders: account.Config.MaxMainVillageBuilders,
			HasMainVillageLab:      account.Config.HasMainVillageLab,
			MaxBuilderBaseBuilders: account.Config.MaxBuilderBaseBuilders,
			HasBuilderBaseLab:      account.Config.HasBuilderBaseLab,
		}
	}

	return domain.Account{
		ID:                  domain.AccountID(account.ID),
		Name:                account.Name,
		MainVillageBuilders: buildersFromSchema(account.MainVillageBuilders),
		MainVillageLab:      labFromSchema(account.MainVillageLab),
		BuilderBaseBuilders: buildersFromSchema(account.BuilderBaseBuilders),
		BuilderBaseLab:      labFromSchema(account.BuilderBaseLab),
		Config:              config,
	}
}

func buildersToSchema(builders []domain.Builder) []upgraderSchema {
	out := make([]upgraderSchema, 0, len(builders))
	for _, b := range builders {
		out = append(out, upgraderSchema{
			ID:      string(b.ID),
			Name:    b.Name,
			EndTime: formatTime(b.EndTime),
			InUse:   b.InUse,
		})
	}

	return out
}

func buildersFromSchema(builders []upgraderSchema) []domain.Builder {
	out := make([]domain.Builder, 0, len(builders))
	for _, b := range builders {
		out = append(out, domain.Builder{
			ID:      domain.UpgraderID(b.ID),
			Name:    b.Name,
			EndTime: parseTime(b.EndTime),
			InUse:   b.InUse,
		})
	}

	return out
}

func labToSchema(lab domain.Laboratory) upgraderSchema {
	return upgraderSchema{
		ID:      string(lab.ID),
		EndTime: formatTime(lab.EndTime),
		InUse:   lab.InUse,
	}
}

func labFromSchema(lab upgraderSchema) domain.Laboratory {
	return domain.Laboratory{
		ID:      domain.UpgraderID(lab.ID),
		EndTime: parseTime(lab.EndTime),
		InUse:   lab.InUse,
	}
}
