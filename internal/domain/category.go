package domain

// Category identifies one of the four upgrader groups of an account.
// Dispatch always goes through this enum, never through display names.
type Category string

const (
	CategoryMainBuilder        Category = "main_builder"
	CategoryBuilderBaseBuilder Category = "builder_base_builder"
	CategoryMainLab            Category = "main_lab"
	CategoryBuilderBaseLab     Category = "builder_base_lab"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryMainBuilder, CategoryBuilderBaseBuilder, CategoryMainLab, CategoryBuilderBaseLab:
		return true
	default:
		return false
	}
}

func (c Category) IsLab() bool {
	return c == CategoryMainLab || c == CategoryBuilderBaseLab
}

func (c Category) Label() string {
	switch c {
	case CategoryMainBuilder:
		return "Main Village Builder"
	case CategoryBuilderBaseBuilder:
		return "Builder Base Builder"
	case CategoryMainLab:
		return "Main Village Lab"
	case CategoryBuilderBaseLab:
		return "Builder Base Lab"
	default:
		return string(c)
	}
}

// Enabled reports whether the category is usable under the given config.
func (c Category) Enabled(config AccountConfig) bool {
	switch c {
	case CategoryMainBuilder:
		return config.MaxMainVillageBuilders > 0
	case CategoryBuilderBaseBuilder:
		return config.MaxBuilderBaseBuilders > 0
	case CategoryMainLab:
		return config.HasMainVillageLab
	case CategoryBuilderBaseLab:
		return config.HasBuilderBaseLab
	default:
		return false
	}
}

// Target references one upgrader within an account: the category plus, for
// builder pools, the id of the slot. Labs are singletons, so the category
// alone identifies them and ID may be empty.
type Target struct {
	Category Category
	ID       UpgraderID
}
