package expense

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"my-expenses-backend/config"
	"my-expenses-backend/domain"
)

// Sort orders for List.
const (
	SortByDate     = "date"     // newest first
	SortByAmount   = "amount"   // largest first
	SortByCategory = "category" // alphabetical
)

// ListQuery narrows and orders a user's expenses. Zero time bounds are
// unbounded; an empty category matches all.
type ListQuery struct {
	From     time.Time
	To       time.Time
	Category string
	SortBy   string
}

// Store owns expense documents. Every query and mutation is scoped by
// (id, owner) so a user can only ever touch their own records.
type Store interface {
	Insert(ctx context.Context, e *Expense) error
	Get(ctx context.Context, userID, id string) (*Expense, error)
	Update(ctx context.Context, e *Expense) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string, q ListQuery) ([]Expense, error)
}

// MongoStore is the production Store backed by an expenses collection.
type MongoStore struct {
	mongoClient *mongo.Client
	config      *config.Config
}

func NewMongoStore(mongoClient *mongo.Client, config *config.Config) *MongoStore {
	return &MongoStore{
		mongoClient: mongoClient,
		config:      config,
	}
}

func (s *MongoStore) collection() *mongo.Collection {
	return s.mongoClient.Database(s.config.DatabaseName).Collection(s.config.CollectionExpensesName)
}

func (s *MongoStore) Insert(ctx context.Context, e *Expense) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := s.collection().InsertOne(ctx, e); err != nil {
		return &domain.ErrStorage{Op: "expense.insert", Err: err}
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, userID, id string) (*Expense, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var e Expense
	err := s.collection().FindOne(ctx, bson.M{
		"_id":     id,
		"user_id": userID,
	}).Decode(&e)

	if err == mongo.ErrNoDocuments {
		return nil, &domain.ErrNotFound{Resource: "expense", ID: id}
	} else if err != nil {
		return nil, &domain.ErrStorage{Op: "expense.get", Err: err}
	}
	return &e, nil
}

func (s *MongoStore) Update(ctx context.Context, e *Expense) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := s.collection().ReplaceOne(ctx, bson.M{
		"_id":     e.ID,
		"user_id": e.UserID,
	}, e)

	if err != nil {
		return &domain.ErrStorage{Op: "expense.update", Err: err}
	}
	if result.MatchedCount == 0 {
		return &domain.ErrNotFound{Resource: "expense", ID: e.ID}
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, userID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := s.collection().DeleteOne(ctx, bson.M{
		"_id":     id,
		"user_id": userID,
	})

	if err != nil {
		return &domain.ErrStorage{Op: "expense.delete", Err: err}
	}
	if result.DeletedCount == 0 {
		return &domain.ErrNotFound{Resource: "expense", ID: id}
	}
	return nil
}

func sortSpec(sortBy string) bson.D {
	switch sortBy {
	case SortByAmount:
		return bson.D{{Key: "amount", Value: -1}}
	case SortByCategory:
		return bson.D{{Key: "category", Value: 1}, {Key: "date", Value: -1}}
	default:
		return bson.D{{Key: "date", Value: -1}}
	}
}

func (s *MongoStore) List(ctx context.Context, userID string, q ListQuery) ([]Expense, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"user_id": userID}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if !q.From.IsZero() || !q.To.IsZero() {
		dateFilter := bson.M{}
		if !q.From.IsZero() {
			dateFilter["$gte"] = q.From
		}
		if !q.To.IsZero() {
			dateFilter["$lt"] = q.To
		}
		filter["date"] = dateFilter
	}

	findOptions := options.Find().SetSort(sortSpec(q.SortBy))
	cursor, err := s.collection().Find(ctx, filter, findOptions)
	if err != nil {
		return nil, &domain.ErrStorage{Op: "expense.list", Err: err}
	}
	defer cursor.Close(ctx)

	var expenses []Expense = make([]Expense, 0)
	if err = cursor.All(ctx, &expenses); err != nil {
		return nil, &domain.ErrStorage{Op: "expense.list", Err: err}
	}
	return expenses, nil
}
