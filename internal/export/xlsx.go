// Package export writes statement workbooks for sharing outside the tool.
package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/advisory-cli/internal/engine"
	"github.com/sells-group/advisory-cli/internal/model"
)

// WriteNetWorthXLSX renders a net-worth statement to an .xlsx workbook:
// one sheet per side, a row per line item with its coerced amount, a total
// row per section, and a closing summary sheet. A nil doc produces an
// all-zero workbook, matching the engine's missing-record behavior.
func WriteNetWorthXLSX(doc *model.NetWorthDoc, cat *model.Catalog, path string) error {
	if doc == nil {
		doc = &model.NetWorthDoc{}
	}
	if cat == nil {
		cat = model.DefaultCatalog()
	}

	f := xlsx.NewFile()

	if err := writeSide(f, "Assets", doc.Assets, cat.AssetSections); err != nil {
		return err
	}
	if err := writeSide(f, "Liabilities", doc.Liabilities, cat.LiabilitySections); err != nil {
		return err
	}

	nw := engine.DeriveNetWorth(doc, cat)
	summary, err := f.AddSheet("Summary")
	if err != nil {
		return eris.Wrap(err, "export: add summary sheet")
	}
	addFigureRow(summary, "Total Assets", nw.TotalAssets)
	addFigureRow(summary, "Total Liabilities", nw.TotalLiabilities)
	addFigureRow(summary, "Net Worth", nw.NetWorth)

	return eris.Wrapf(f.Save(path), "export: save workbook %s", path)
}

func writeSide(f *xlsx.File, name string, stmt model.Statement, defs []model.SectionDef) error {
	sheet, err := f.AddSheet(name)
	if err != nil {
		return eris.Wrapf(err, "export: add sheet %s", name)
	}

	header := sheet.AddRow()
	header.AddCell().SetString("Section")
	header.AddCell().SetString("Item")
	header.AddCell().SetString("Amount")

	for _, def := range defs {
		section := stmt[def.Key]
		for catKey, category := range section {
			for label, raw := range category {
				row := sheet.AddRow()
				row.AddCell().SetString(def.Label + " / " + catKey)
				row.AddCell().SetString(label)
				row.AddCell().SetFloat(engine.Coerce(raw))
			}
		}
		addFigureRow(sheet, "Total of "+def.Label, engine.SectionTotal(section))
	}
	return nil
}

func addFigureRow(sheet *xlsx.Sheet, label string, value float64) {
	row := sheet.AddRow()
	row.AddCell().SetString(label)
	row.AddCell()
	row.AddCell().SetFloat(value)
}
