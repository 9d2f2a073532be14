package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/brandonbohn/adebackend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDonations(t *testing.T) {
	data, err := Donations([]*domain.Donation{
		{ID: "d1", Amount: 100, Currency: "KES", DonationType: "general", Date: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{ID: "d2", DonorID: "donor-1", Amount: 25.5, Currency: "USD", DonationType: "onetime"},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Donations"}, f.GetSheetList())
	rows, err := f.GetRows("Donations")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Donation ID", rows[0][0])
	assert.Equal(t, "d1", rows[1][0])
	assert.Equal(t, "", rows[1][1])
	assert.Equal(t, "100", rows[1][2])
	assert.Equal(t, "2024-05-01 10:00:00", rows[1][6])
	assert.Equal(t, "donor-1", rows[2][1])
}

func TestDonors_EmptyHasHeaderOnly(t *testing.T) {
	data, err := Donors(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Donors")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Contains(t, rows[0], "Anonymous")
}
