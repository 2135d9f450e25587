package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/khalilbouhlel1/threadly-api/internal/domain/entity"
	"github.com/khalilbouhlel1/threadly-api/internal/domain/repository"
)

type SubscriberRepository struct {
	collection *mongo.Collection
}

func NewSubscriberRepository(db *mongo.Database) *SubscriberRepository {
	return &SubscriberRepository{collection: db.Collection(subscriberCollection)}
}

func (r *SubscriberRepository) Create(ctx context.Context, s *entity.Subscriber) error {
	res, err := r.collection.InsertOne(ctx, s)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert subscriber: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = oid
	}
	return nil
}

func (r *SubscriberRepository) GetByEmail(ctx context.Context, email string) (*entity.Subscriber, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *SubscriberRepository) GetByToken(ctx context.Context, token string) (*entity.Subscriber, error) {
	return r.findOne(ctx, bson.M{"unsubscribe_token": token})
}

func (r *SubscriberRepository) findOne(ctx context.Context, filter bson.M) (*entity.Subscriber, error) {
	var s entity.Subscriber
	if err := r.collection.FindOne(ctx, filter).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find subscriber: %w", err)
	}
	return &s, nil
}

func (r *SubscriberRepository) ListActive(ctx context.Context) ([]*entity.Subscriber, error) {
	cur, err := r.collection.Find(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	subs := make([]*entity.Subscriber, 0)
	if err := cur.All(ctx, &subs); err != nil {
		return nil, fmt.Errorf("decode subscribers: %w", err)
	}
	return subs, nil
}

func (r *SubscriberRepository) Update(ctx context.Context, s *entity.Subscriber) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	if err != nil {
		return fmt.Errorf("update subscriber: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.SubscriberRepository = (*SubscriberRepository)(nil)
