package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ayurcare/internal/model"
)

// AssessmentCache caches per-attempt progress projections so repeated
// progress polls don't hit the document store. Entries are invalidated on
// every answer submission.
type AssessmentCache interface {
	SetProgress(ctx context.Context, patientID, assessmentID string, progress *model.AssessmentProgress) error
	GetProgress(ctx context.Context, patientID, assessmentID string) (*model.AssessmentProgress, error)
	InvalidateProgress(ctx context.Context, patientID, assessmentID string) error
}

type assessmentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAssessmentCache creates a new assessment cache
func NewAssessmentCache(client *redis.Client) AssessmentCache {
	return &assessmentCache{
		client: client,
		ttl:    1 * time.Hour,
	}
}

func (c *assessmentCache) progressKey(patientID, assessmentID string) string {
	return fmt.Sprintf("patient:%s:assessment:%s:progress", patientID, assessmentID)
}

func (c *assessmentCache) SetProgress(ctx context.Context, patientID, assessmentID string, progress *model.AssessmentProgress) error {
	data, err := json.Marshal(progress)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.progressKey(patientID, assessmentID), data, c.ttl).Err()
}

func (c *assessmentCache) GetProgress(ctx context.Context, patientID, assessmentID string) (*model.AssessmentProgress, error) {
	data, err := c.client.Get(ctx, c.progressKey(patientID, assessmentID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var progress model.AssessmentProgress
	if err := json.Unmarshal([]byte(data), &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

func (c *assessmentCache) InvalidateProgress(ctx context.Context, patientID, assessmentID string) error {
	return c.client.Del(ctx, c.progressKey(patientID, assessmentID)).Err()
}
