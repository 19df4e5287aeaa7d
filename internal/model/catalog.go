package model

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

// ModuleKey identifies one intake form module tracked per client.
type ModuleKey string

// SectionDef names one section of a statement side, in display order.
type SectionDef struct {
	Key   string `yaml:"key" json:"key"`
	Label string `yaml:"label" json:"label"`
}

// ModuleDef describes one entry of the module catalogue.
type ModuleDef struct {
	Key   ModuleKey `yaml:"key" json:"key"`
	Label string    `yaml:"label" json:"label"`
}

// Catalog is the single source of truth for section ordering and the
// module enumeration. Both the progress tracker and the rollup consume it,
// so the aggregation code stays free of hard-coded labels.
type Catalog struct {
	AssetSections     []SectionDef `yaml:"asset_sections"`
	LiabilitySections []SectionDef `yaml:"liability_sections"`
	IncomeSections    []SectionDef `yaml:"income_sections"`
	ExpenseSections   []SectionDef `yaml:"expense_sections"`
	Modules           []ModuleDef  `yaml:"modules"`

	moduleByKey map[ModuleKey]*ModuleDef
}

//go:embed catalog.yaml
var catalogYAML []byte

// defaultCatalog is parsed once at init; the embedded file is part of the
// build, so a parse failure is a broken binary, not a runtime condition.
var defaultCatalog = mustParseCatalog(catalogYAML)

func mustParseCatalog(raw []byte) *Catalog {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		panic("model: parse embedded catalog: " + err.Error())
	}
	c.index()
	return &c
}

func (c *Catalog) index() {
	c.moduleByKey = make(map[ModuleKey]*ModuleDef, len(c.Modules))
	for i := range c.Modules {
		c.moduleByKey[c.Modules[i].Key] = &c.Modules[i]
	}
}

// DefaultCatalog returns the built-in catalogue.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// ParseCatalog decodes a catalogue from YAML, for deployments that override
// the built-in section and module lists.
func ParseCatalog(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	c.index()
	return &c, nil
}

// Module returns the module definition for key, or nil if unknown.
func (c *Catalog) Module(key ModuleKey) *ModuleDef {
	return c.moduleByKey[key]
}

// ModuleKeys returns the module keys in canonical priority order.
func (c *Catalog) ModuleKeys() []ModuleKey {
	keys := make([]ModuleKey, len(c.Modules))
	for i, m := range c.Modules {
		keys[i] = m.Key
	}
	return keys
}

// SectionKeys extracts the ordered keys of a section catalogue.
func SectionKeys(defs []SectionDef) []string {
	keys := make([]string, len(defs))
	for i, d := range defs {
		keys[i] = d.Key
	}
	return keys
}
