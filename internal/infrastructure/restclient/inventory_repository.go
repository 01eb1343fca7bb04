package restclient

import (
	"context"
	"fmt"

	"github.com/ousmanedev/boutik/internal/domain/entity"
	"github.com/ousmanedev/boutik/internal/domain/repository"
)

// InventoryRepository implements repository.InventoryRepository over
// /purchases.
type InventoryRepository struct {
	client *Client
}

// NewInventoryRepository creates an inventory repository backed by the
// shared client.
func NewInventoryRepository(client *Client) *InventoryRepository {
	return &InventoryRepository{client: client}
}

var _ repository.InventoryRepository = (*InventoryRepository)(nil)

type inventoryListResponse struct {
	apiStatus
	Purchases []entity.InventoryItem `json:"purchases"`
}

type inventoryResponse struct {
	apiStatus
	Purchase entity.InventoryItem `json:"purchase"`
}

func (r *InventoryRepository) List(ctx context.Context, opts repository.ListOptions) ([]entity.InventoryItem, error) {
	out := &inventoryListResponse{}
	if err := r.client.get(ctx, "/purchases", out, listQuery(opts.DateFrom, opts.DateTo, opts.Page)); err != nil {
		return nil, err
	}
	return out.Purchases, nil
}

func (r *InventoryRepository) Create(ctx context.Context, input entity.CreateInventoryInput) (*entity.InventoryItem, error) {
	out := &inventoryResponse{}
	if err := r.client.post(ctx, "/purchases", input, out); err != nil {
		return nil, err
	}
	return &out.Purchase, nil
}

func (r *InventoryRepository) Update(ctx context.Context, item entity.InventoryItem) error {
	out := &inventoryResponse{}
	return r.client.put(ctx, fmt.Sprintf("/purchases/%d", item.ID), item, out)
}

func (r *InventoryRepository) Delete(ctx context.Context, id int64) error {
	return r.client.delete(ctx, fmt.Sprintf("/purchases/%d", id))
}

func (r *InventoryRepository) SetThreshold(ctx context.Context, id int64, threshold int) error {
	body := map[string]int{"stock_deficiency_threshold": threshold}
	out := &inventoryResponse{}
	return r.client.put(ctx, fmt.Sprintf("/purchases/%d/threshold", id), body, out)
}
