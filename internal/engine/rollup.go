package engine

import (
	"github.com/sells-group/advisory-cli/internal/model"
)

// CategoryTotal sums the coerced amounts of every item in a category.
// Item order is irrelevant; a nil or empty category totals 0.
func CategoryTotal(category model.Category) float64 {
	var total float64
	for _, raw := range category {
		total += Coerce(raw)
	}
	return total
}

// SectionTotal sums CategoryTotal over every category in a section.
func SectionTotal(section model.Section) float64 {
	var total float64
	for _, category := range section {
		total += CategoryTotal(category)
	}
	return total
}

// GrandTotal sums SectionTotal over the catalogue-supplied section keys.
// Keys missing from the statement contribute 0 rather than failing, and
// sections present in the statement but absent from the catalogue are
// ignored: the catalogue defines what a statement side consists of.
func GrandTotal(stmt model.Statement, sectionKeys []string) float64 {
	var total float64
	for _, key := range sectionKeys {
		total += SectionTotal(stmt[key])
	}
	return total
}

// SectionTotals returns per-section totals in catalogue order, for display
// surfaces that label each section ("Total of I", "Total of II", ...).
func SectionTotals(stmt model.Statement, defs []model.SectionDef) []SectionFigure {
	figures := make([]SectionFigure, len(defs))
	for i, def := range defs {
		figures[i] = SectionFigure{
			Key:   def.Key,
			Label: def.Label,
			Total: SectionTotal(stmt[def.Key]),
		}
	}
	return figures
}

// SectionFigure is one section's rolled-up total.
type SectionFigure struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Total float64 `json:"total"`
}
