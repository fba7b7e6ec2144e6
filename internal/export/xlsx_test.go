package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Djberg2/GrndWrkv0/internal/models"
)

func TestWriteLeads(t *testing.T) {
	date, clock, est := "2025-07-14", "09:30", "est-1"
	leads := []models.Lead{
		{ID: 7, Fullname: "Jane Roe", ServiceType: "lawn-mowing", Estimate: 150, Status: "Scheduled",
			AppointmentDate: &date, AppointmentTime: &clock, AssignedTo: &est,
			CreatedAt: time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)},
		{ID: 8, Fullname: "Bo Lin", ServiceType: "Tree Removal", Status: "New"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteLeads(&buf, leads, map[string]string{"est-1": "Alex Estimator"}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "Created At", rows[0][len(rows[0])-1])

	assert.Equal(t, "Jane Roe", rows[1][1])
	assert.Equal(t, "Lawn Mowing", rows[1][5])
	assert.Equal(t, "2025-07-14", rows[1][8])
	assert.Equal(t, "Alex Estimator", rows[1][11])
	assert.Equal(t, "Tree Removal", rows[2][5])
}

func TestWriteLeads_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLeads(&buf, nil, nil))
	assert.Greater(t, buf.Len(), 0)
}
