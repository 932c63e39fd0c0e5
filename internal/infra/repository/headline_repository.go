package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finchboard/tickerlane/internal/domain"
)

const (
	headlineKeyPrefix = "ticker:headline:"
	headlineIndexKey  = "ticker:headlines"
)

type headlineRecord struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

type headlineRepository struct {
	client *redis.Client
}

func NewHeadlineRepository(client *redis.Client) domain.HeadlineRepository {
	return &headlineRepository{
		client: client,
	}
}

func (r *headlineRepository) SaveHeadline(ctx context.Context, headline *domain.Headline) error {
	if headline == nil || headline.ID == "" {
		return ErrInvalidHeadlineData
	}

	record := headlineRecord{
		ID:        headline.ID,
		Text:      headline.Text,
		URL:       headline.URL,
		CreatedAt: headline.CreatedAt,
	}

	data, err := json.Marshal(record)
	if err != nil {
		return ErrInvalidHeadlineData
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, headlineKeyPrefix+headline.ID, data, 0)
	pipe.SAdd(ctx, headlineIndexKey, headline.ID)

	_, err = pipe.Exec(ctx)
	return err
}

func (r *headlineRepository) ListHeadlines(ctx context.Context) ([]domain.Headline, error) {
	ids, err := r.client.SMembers(ctx, headlineIndexKey).Result()
	if err != nil {
		return nil, err
	}

	headlines := make([]domain.Headline, 0, len(ids))
	for _, id := range ids {
		data, err := r.client.Get(ctx, headlineKeyPrefix+id).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Index entry without a value, repair the index.
				r.client.SRem(ctx, headlineIndexKey, id)
				continue
			}
			return nil, err
		}

		var record headlineRecord
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, ErrInvalidHeadlineData
		}

		headlines = append(headlines, domain.Headline{
			ID:        record.ID,
			Text:      record.Text,
			URL:       record.URL,
			CreatedAt: record.CreatedAt,
		})
	}

	return headlines, nil
}

func (r *headlineRepository) DeleteHeadline(ctx context.Context, id string) error {
	exists, err := r.client.Exists(ctx, headlineKeyPrefix+id).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return domain.ErrHeadlineNotFound
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, headlineKeyPrefix+id)
	pipe.SRem(ctx, headlineIndexKey, id)

	_, err = pipe.Exec(ctx)
	return err
}

func (r *headlineRepository) ReplaceHeadlines(ctx context.Context, headlines []domain.Headline) error {
	existing, err := r.client.SMembers(ctx, headlineIndexKey).Result()
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()

	for _, id := range existing {
		pipe.Del(ctx, headlineKeyPrefix+id)
	}
	pipe.Del(ctx, headlineIndexKey)

	for i := range headlines {
		h := headlines[i]
		if h.ID == "" {
			return ErrInvalidHeadlineData
		}
		data, err := json.Marshal(headlineRecord{
			ID:        h.ID,
			Text:      h.Text,
			URL:       h.URL,
			CreatedAt: h.CreatedAt,
		})
		if err != nil {
			return ErrInvalidHeadlineData
		}
		pipe.Set(ctx, headlineKeyPrefix+h.ID, data, 0)
		pipe.SAdd(ctx, headlineIndexKey, h.ID)
	}

	_, err = pipe.Exec(ctx)
	return err
}

func (r *headlineRepository) CountHeadlines(ctx context.Context) (int, error) {
	count, err := r.client.SCard(ctx, headlineIndexKey).Result()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
