package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ousmanedev/boutik/internal/domain/entity"
	"github.com/ousmanedev/boutik/pkg/event"
)

func usd() entity.Currency {
	return entity.Currency{
		Code:                 "USD",
		Name:                 "US Dollar",
		Symbol:               "$",
		ConversionRateToFCFA: decimal.NewFromInt(600),
		IsDefault:            true,
	}
}

func TestConvertDividesByRate(t *testing.T) {
	repo := &fakeCurrencyRepo{currencies: []entity.Currency{usd()}}
	svc := NewCurrencyService(repo, nil, nil)

	got := svc.ConvertFromFCFA(context.Background(), decimal.NewFromInt(1000))
	assert.True(t, got.Equal(decimal.RequireFromString("1.666667")), got.String())
}

func TestBaseCurrencyPassesThrough(t *testing.T) {
	base := entity.FallbackCurrency()
	got := convertFromFCFA(decimal.NewFromInt(1000), base)
	assert.True(t, got.Equal(decimal.NewFromInt(1000)))
}

func TestNonPositiveRatePassesThrough(t *testing.T) {
	cur := usd()
	cur.ConversionRateToFCFA = decimal.Zero
	got := convertFromFCFA(decimal.NewFromInt(1000), cur)
	assert.True(t, got.Equal(decimal.NewFromInt(1000)))
}

func TestDefaultFallsBackToFCFA(t *testing.T) {
	repo := &fakeCurrencyRepo{fail: true}
	svc := NewCurrencyService(repo, nil, nil)

	cur := svc.Default(context.Background())
	assert.Equal(t, entity.BaseCurrencyCode, cur.Code)
	// A failed fetch must not poison the cache.
	repo.fail = false
	repo.currencies = []entity.Currency{usd()}
	assert.Equal(t, "USD", svc.Default(context.Background()).Code)
}

func TestDefaultCachesUntilInvalidated(t *testing.T) {
	repo := &fakeCurrencyRepo{currencies: []entity.Currency{usd()}}
	bus := event.NewBus()
	svc := NewCurrencyService(repo, bus, nil)

	svc.Default(context.Background())
	svc.Default(context.Background())
	assert.Equal(t, 1, repo.fetches)

	bus.Publish(event.TopicCurrencyUpdated)
	svc.Default(context.Background())
	assert.Equal(t, 2, repo.fetches)
}

func TestSetDefaultBroadcastsInvalidation(t *testing.T) {
	eur := entity.Currency{Code: "EUR", Name: "Euro", ConversionRateToFCFA: decimal.NewFromInt(655)}
	repo := &fakeCurrencyRepo{currencies: []entity.Currency{usd(), eur}}
	svc := NewCurrencyService(repo, event.NewBus(), nil)

	assert.Equal(t, "USD", svc.Default(context.Background()).Code)
	require.NoError(t, svc.SetDefault(context.Background(), "EUR"))
	assert.Equal(t, "EUR", svc.Default(context.Background()).Code)
}

func TestFormatGroupsAndPrefixesSymbol(t *testing.T) {
	base := entity.FallbackCurrency()
	repo := &fakeCurrencyRepo{currencies: []entity.Currency{base}}
	svc := NewCurrencyService(repo, nil, nil)

	got := svc.Format(context.Background(), decimal.NewFromInt(1234567), FormatOptions{})
	assert.Equal(t, "FCFA 1,234,567", got)

	bare := svc.Format(context.Background(), decimal.NewFromInt(1234567), FormatOptions{HideSymbol: true})
	assert.Equal(t, "1,234,567", bare)
}

func TestAllCurrenciesLine(t *testing.T) {
	eur := entity.Currency{Code: "EUR", Name: "Euro", ConversionRateToFCFA: decimal.NewFromInt(655)}
	gbp := entity.Currency{Code: "GBP", Name: "Pound", ConversionRateToFCFA: decimal.NewFromInt(750)}
	repo := &fakeCurrencyRepo{currencies: []entity.Currency{usd(), eur, gbp}}
	svc := NewCurrencyService(repo, nil, nil)

	line := svc.AllCurrenciesLine(context.Background(), decimal.NewFromInt(6000))
	assert.Equal(t, "6,000 FCFA / USD 10.00 / EUR 9.16", line)
	// GBP exists in the table but never appears in this mode.
	assert.NotContains(t, line, "GBP")
}

func TestAllCurrenciesLineWithoutTable(t *testing.T) {
	repo := &fakeCurrencyRepo{fail: true}
	svc := NewCurrencyService(repo, nil, nil)

	line := svc.AllCurrenciesLine(context.Background(), decimal.NewFromInt(6000))
	assert.Equal(t, "6,000 FCFA", line)
}
