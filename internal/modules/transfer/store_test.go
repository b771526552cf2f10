package transfer

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carhire/internal/apperr"
)

func TestStore_Load(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("FROM transfer_pricing_config").WithArgs("default").WillReturnRows(
		pgxmock.NewRows([]string{"fixed_prices", "price_per_km", "child_seat_price", "currency"}).AddRow(
			`{"standard": 30, "premium": "45.50", "van": 60}`,
			`{"standard": {"min": 2, "max": 3}, "premium": {"min": 3, "max": 4}, "van": {"min": 3.5, "max": 5}}`,
			"10.00",
			"EUR",
		),
	)

	cfg, err := NewStore(mock).Load(context.Background())
	require.NoError(t, err)

	assert.True(t, cfg.FixedPrices[CategoryPremium].Equal(dec("45.5")))
	assert.True(t, cfg.PricePerKm[CategoryVan].Min.Equal(dec("3.5")))
	assert.True(t, cfg.ChildSeatPrice.Equal(dec("10")))
	assert.Equal(t, "EUR", cfg.Currency)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_LoadMissingRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("FROM transfer_pricing_config").WithArgs("default").WillReturnError(pgx.ErrNoRows)

	_, err = NewStore(mock).Load(context.Background())
	assert.ErrorIs(t, err, apperr.ErrConfigurationMissing)
}

func TestStore_LoadBadJSON(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("FROM transfer_pricing_config").WithArgs("default").WillReturnRows(
		pgxmock.NewRows([]string{"fixed_prices", "price_per_km", "child_seat_price", "currency"}).
			AddRow(`not json`, `{}`, "0", "EUR"),
	)

	_, err = NewStore(mock).Load(context.Background())
	assert.ErrorContains(t, err, "decode fixed_prices")
}
