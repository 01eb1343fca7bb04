package restclient

import (
	"context"
	"fmt"

	"github.com/ousmanedev/boutik/internal/domain/entity"
	"github.com/ousmanedev/boutik/internal/domain/repository"
)

// SaleRepository implements repository.SaleRepository over /income.
type SaleRepository struct {
	client *Client
}

// NewSaleRepository creates a sale repository backed by the shared client.
func NewSaleRepository(client *Client) *SaleRepository {
	return &SaleRepository{client: client}
}

var _ repository.SaleRepository = (*SaleRepository)(nil)

type saleListResponse struct {
	apiStatus
	Income []entity.SaleRecord `json:"income"`
}

type saleResponse struct {
	apiStatus
	Income entity.SaleRecord `json:"income"`
}

func (r *SaleRepository) List(ctx context.Context, opts repository.ListOptions) ([]entity.SaleRecord, error) {
	out := &saleListResponse{}
	if err := r.client.get(ctx, "/income", out, listQuery(opts.DateFrom, opts.DateTo, opts.Page)); err != nil {
		return nil, err
	}
	return out.Income, nil
}

func (r *SaleRepository) Create(ctx context.Context, input entity.CreateSaleInput) (*entity.SaleRecord, error) {
	out := &saleResponse{}
	if err := r.client.post(ctx, "/income", input, out); err != nil {
		return nil, err
	}
	return &out.Income, nil
}

func (r *SaleRepository) Update(ctx context.Context, record entity.SaleRecord) error {
	out := &saleResponse{}
	return r.client.put(ctx, fmt.Sprintf("/income/%d", record.ID), record, out)
}

func (r *SaleRepository) Delete(ctx context.Context, id int64) error {
	return r.client.delete(ctx, fmt.Sprintf("/income/%d", id))
}
