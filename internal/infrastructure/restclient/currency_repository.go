package restclient

import (
	"context"
	"net/url"

	"github.com/ousmanedev/boutik/internal/domain/entity"
	"github.com/ousmanedev/boutik/internal/domain/repository"
)

// CurrencyRepository implements repository.CurrencyRepository over
// /currencies.
type CurrencyRepository struct {
	client *Client
}

// NewCurrencyRepository creates a currency repository backed by the shared
// client.
func NewCurrencyRepository(client *Client) *CurrencyRepository {
	return &CurrencyRepository{client: client}
}

var _ repository.CurrencyRepository = (*CurrencyRepository)(nil)

type currencyListResponse struct {
	apiStatus
	Currencies []entity.Currency `json:"currencies"`
}

type currencyResponse struct {
	apiStatus
	Currency entity.Currency `json:"currency"`
}

func (r *CurrencyRepository) List(ctx context.Context) ([]entity.Currency, error) {
	out := &currencyListResponse{}
	if err := r.client.get(ctx, "/currencies", out, nil); err != nil {
		return nil, err
	}
	return out.Currencies, nil
}

func (r *CurrencyRepository) GetDefault(ctx context.Context) (*entity.Currency, error) {
	out := &currencyResponse{}
	if err := r.client.get(ctx, "/currencies/default", out, nil); err != nil {
		return nil, err
	}
	return &out.Currency, nil
}

func (r *CurrencyRepository) SetDefault(ctx context.Context, code string) error {
	body := map[string]string{"code": code}
	out := &currencyResponse{}
	return r.client.put(ctx, "/currencies/default", body, out)
}

func (r *CurrencyRepository) Upsert(ctx context.Context, currency entity.Currency) error {
	out := &currencyResponse{}
	return r.client.post(ctx, "/currencies", currency, out)
}

func (r *CurrencyRepository) Delete(ctx context.Context, code string) error {
	return r.client.delete(ctx, "/currencies/"+url.PathEscape(code))
}
