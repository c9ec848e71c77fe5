package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type AccountID string
type UpgraderID string

// Builder is one upgrade slot in a village builder pool.
type Builder struct {
	ID      UpgraderID
	Name    string
	EndTime *time.Time
	InUse   bool
}

// Laboratory is the singleton research slot of a village. Same timer
// semantics as a Builder, but there is exactly one per village.
type Laboratory struct {
	ID      UpgraderID
	EndTime *time.Time
	InUse   bool
}

// AccountConfig controls how many builders exist in each pool and whether
// each laboratory is usable.
type AccountConfig struct {
	MaxMainVillageBuilders int
	HasMainVillageLab      bool
	MaxBuilderBaseBuilders int
	HasBuilderBaseLab      bool
}

const (
	MaxMainVillageBuilderSlots = 6
	MaxBuilderBaseBuilderSlots = 2
)

func DefaultConfig() AccountConfig {
	return AccountConfig{
		MaxMainVillageBuilders: MaxMainVillageBuilderSlots,
		HasMainVillageLab:      true,
		MaxBuilderBaseBuilders: MaxBuilderBaseBuilderSlots,
		HasBuilderBaseLab:      true,
	}
}

func (c AccountConfig) Validate() error {
	if c.MaxMainVillageBuilders < 0 || c.MaxMainVillageBuilders > MaxMainVillageBuilderSlots {
		return fmt.Errorf("main village builders must be between 0 and %d", MaxMainVillageBuilderSlots)
	}
	if c.MaxBuilderBaseBuilders < 0 || c.MaxBuilderBaseBuilders > MaxBuilderBaseBuilderSlots {
		return fmt.Errorf("builder base builders must be between 0 and %d", MaxBuilderBaseBuilderSlots)
	}

	return nil
}

type Account struct {
	ID                  AccountID
	Name                string
	MainVillageBuilders []Builder
	MainVillageLab      Laboratory
	BuilderBaseBuilders []Builder
	BuilderBaseLab      Laboratory
	Config              AccountConfig
}

// NewAccount creates an account with the default config and a fresh,
// fully idle resource set.
func NewAccount(name string) Account {
	config := DefaultConfig()

	return Account{
		ID:                  AccountID(uuid.NewString()),
		Name:                name,
		MainVillageBuilders: newBuilders(CategoryMainBuilder, 0, config.MaxMainVillageBuilders),
		MainVillageLab:      Laboratory{ID: UpgraderID(uuid.NewString())},
		BuilderBaseBuilders: newBuilders(CategoryBuilderBaseBuilder, 0, config.MaxBuilderBaseBuilders),
		BuilderBaseLab:      Laboratory{ID: UpgraderID(uuid.NewString())},
		Config:              config,
	}
}

// newBuilders creates count idle builders whose display names continue the
// numbering from the given offset.
func newBuilders(category Category, offset, count int) []Builder {
	builders := make([]Builder, 0, count)
	for i := 0; i < count; i++ {
		builders = append(builders, Builder{
			ID:   UpgraderID(uuid.NewString()),
			Name: builderName(category, offset+i+1),
		})
	}

	return builders
}

func builderName(category Category, slot int) string {
	if category == CategoryBuilderBaseBuilder {
		return fmt.Sprintf("Builder Base Builder %d", slot)
	}

	return fmt.Sprintf("Builder %d", slot)
}

// clone returns a deep copy so mutation operations never touch their input.
func (a Account) clone() Account {
	out := a
	out.MainVillageBuilders = cloneBuilders(a.MainVillageBuilders)
	out.BuilderBaseBuilders = cloneBuilders(a.BuilderBaseBuilders)
	out.MainVillageLab = a.MainVillageLab.clone()
	out.BuilderBaseLab = a.BuilderBaseLab.clone()

	return out
}

func cloneBuilders(builders []Builder) []Builder {
	out := make([]Builder, len(builders))
	for i, b := range builders {
		out[i] = b
		if b.EndTime != nil {
			end := *b.EndTime
			out[i].EndTime = &end
		}
	}

	return out
}

func (l Laboratory) clone() Laboratory {
	out := l
	if l.EndTime != nil {
		end := *l.EndTime
		out.EndTime = &end
	}

	return out
}
