package restclient

import (
	"context"
	"fmt"

	"github.com/ousmanedev/boutik/internal/domain/entity"
	"github.com/ousmanedev/boutik/internal/domain/repository"
)

// GoalRepository implements repository.GoalRepository over /goals.
type GoalRepository struct {
	client *Client
}

// NewGoalRepository creates a goal repository backed by the shared client.
func NewGoalRepository(client *Client) *GoalRepository {
	return &GoalRepository{client: client}
}

var _ repository.GoalRepository = (*GoalRepository)(nil)

type goalListResponse struct {
	apiStatus
	Goals []entity.GoalRecord `json:"goals"`
}

type goalResponse struct {
	apiStatus
	Goal entity.GoalRecord `json:"goal"`
}

func (r *GoalRepository) List(ctx context.Context) ([]entity.GoalRecord, error) {
	out := &goalListResponse{}
	if err := r.client.get(ctx, "/goals", out, nil); err != nil {
		return nil, err
	}
	return out.Goals, nil
}

func (r *GoalRepository) Create(ctx context.Context, input entity.CreateGoalInput) (*entity.GoalRecord, error) {
	out := &goalResponse{}
	if err := r.client.post(ctx, "/goals", input, out); err != nil {
		return nil, err
	}
	return &out.Goal, nil
}

func (r *GoalRepository) Update(ctx context.Context, goal entity.GoalRecord) error {
	out := &goalResponse{}
	return r.client.put(ctx, fmt.Sprintf("/goals/%d", goal.ID), goal, out)
}

func (r *GoalRepository) Delete(ctx context.Context, id int64) error {
	return r.client.delete(ctx, fmt.Sprintf("/goals/%d", id))
}
