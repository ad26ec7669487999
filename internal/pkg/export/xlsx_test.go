package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	err := WriteXLSX(&buf, Sheet{
		Name:    "Fees",
		Headers: []string{"Fee ID", "Amount"},
		Rows: [][]interface{}{
			{"FEE-1", 10.5},
			{"FEE-2", "500.00"},
		},
		Widths: []float64{20, 12},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Fees"}, f.GetSheetList())
	v, err := f.GetCellValue("Fees", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Fee ID", v)
	v, err = f.GetCellValue("Fees", "A3")
	require.NoError(t, err)
	assert.Equal(t, "FEE-2", v)
	v, err = f.GetCellValue("Fees", "B2")
	require.NoError(t, err)
	assert.Equal(t, "10.5", v)
}
