package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ayurcare/internal/model"
)

// PlanCache caches the resolved current plan per patient. Every plan
// mutation and every appointment completion invalidates the entry.
type PlanCache interface {
	SetCurrent(ctx context.Context, patientID string, plan *model.CurrentPlan) error
	GetCurrent(ctx context.Context, patientID string) (*model.CurrentPlan, error)
	Invalidate(ctx context.Context, patientID string) error
}

type planCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPlanCache creates a new plan cache
func NewPlanCache(client *redis.Client) PlanCache {
	return &planCache{
		client: client,
		ttl:    10 * time.Minute,
	}
}

func (c *planCache) currentKey(patientID string) string {
	return fmt.Sprintf("patient:%s:plan:current", patientID)
}

func (c *planCache) SetCurrent(ctx context.Context, patientID string, plan *model.CurrentPlan) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.currentKey(patientID), data, c.ttl).Err()
}

func (c *planCache) GetCurrent(ctx context.Context, patientID string) (*model.CurrentPlan, error) {
	data, err := c.client.Get(ctx, c.currentKey(patientID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var plan model.CurrentPlan
	if err := json.Unmarshal([]byte(data), &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (c *planCache) Invalidate(ctx context.Context, patientID string) error {
	return c.client.Del(ctx, c.currentKey(patientID)).Err()
}
