package restclient

import (
	"context"

	"github.com/ousmanedev/boutik/internal/domain/entity"
	"github.com/ousmanedev/boutik/internal/domain/repository"
)

// ConfigRepository implements repository.ConfigRepository over
// /configuration.
type ConfigRepository struct {
	client *Client
}

// NewConfigRepository creates a configuration repository backed by the
// shared client.
func NewConfigRepository(client *Client) *ConfigRepository {
	return &ConfigRepository{client: client}
}

var _ repository.ConfigRepository = (*ConfigRepository)(nil)

type configResponse struct {
	apiStatus
	Configuration entity.ShopConfiguration `json:"configuration"`
}

type pinResponse struct {
	apiStatus
	Valid bool `json:"valid"`
}

func (r *ConfigRepository) Get(ctx context.Context) (*entity.ShopConfiguration, error) {
	out := &configResponse{}
	if err := r.client.get(ctx, "/configuration", out, nil); err != nil {
		return nil, err
	}
	return &out.Configuration, nil
}

func (r *ConfigRepository) Update(ctx context.Context, cfg entity.ShopConfiguration) error {
	if len(cfg.Items) > entity.MaxReceiptItems {
		cfg.Items = cfg.Items[:entity.MaxReceiptItems]
	}
	out := &configResponse{}
	return r.client.put(ctx, "/configuration", cfg, out)
}

func (r *ConfigRepository) VerifyPIN(ctx context.Context, pin string) (bool, error) {
	body := map[string]string{"pin": pin}
	out := &pinResponse{}
	if err := r.client.post(ctx, "/configuration/verify-pin", body, out); err != nil {
		return false, err
	}
	return out.Valid, nil
}
