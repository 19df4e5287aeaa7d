package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/advisory-cli/internal/model"
)

func TestWriteNetWorthXLSX(t *testing.T) {
	t.Parallel()

	doc := &model.NetWorthDoc{
		Assets: model.Statement{
			"demand_deposits": {"savings": {"SBI": "5,000"}},
		},
		Liabilities: model.Statement{
			"current_liabilities": {"cards": {"Credit Card Dues": "2,000"}},
		},
	}

	path := filepath.Join(t.TempDir(), "networth.xlsx")
	require.NoError(t, WriteNetWorthXLSX(doc, nil, path))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 3)
	assert.Equal(t, "Assets", f.Sheets[0].Name)
	assert.Equal(t, "Liabilities", f.Sheets[1].Name)
	assert.Equal(t, "Summary", f.Sheets[2].Name)

	// Summary sheet carries the derived figures.
	summary := f.Sheets[2]
	require.Len(t, summary.Rows, 3)
	assert.Equal(t, "Total Assets", summary.Rows[0].Cells[0].String())
	total, err := summary.Rows[0].Cells[2].Float()
	require.NoError(t, err)
	assert.Equal(t, 5000.0, total)

	netWorth, err := summary.Rows[2].Cells[2].Float()
	require.NoError(t, err)
	assert.Equal(t, 3000.0, netWorth)
}

func TestWriteNetWorthXLSX_NilDoc(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteNetWorthXLSX(nil, nil, path))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)

	summary := f.Sheets[2]
	netWorth, err := summary.Rows[2].Cells[2].Float()
	require.NoError(t, err)
	assert.Zero(t, netWorth)
}
