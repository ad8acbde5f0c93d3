package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	docs, cols, results := exportFixture()

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, docs, cols, results))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{xlsxSheet}, f.GetSheetList())

	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Document Name", "Term", "Rent"}, rows[0])
	assert.Equal(t, "lease.pdf", rows[1][0])
	assert.Equal(t, "5 years", rows[1][1])
	assert.Equal(t, "nda.pdf", rows[2][0])
	assert.Equal(t, "$2,000", rows[2][2])
}
