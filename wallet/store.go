package wallet

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"my-expenses-backend/config"
	"my-expenses-backend/domain"
)

// Store owns one wallet document per user. Get returns *domain.ErrNotFound
// when the user has no wallet yet; Save replaces the whole document in one
// atomic write.
type Store interface {
	Get(ctx context.Context, userID string) (*Wallet, error)
	Create(ctx context.Context, w *Wallet) error
	Save(ctx context.Context, w *Wallet) error
}

// MongoStore is the production Store backed by a wallets collection.
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
	return s.mongoClient.Database(s.config.DatabaseName).Collection(s.config.CollectionWalletsName)
}

func (s *MongoStore) Get(ctx context.Context, userID string) (*Wallet, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var w Wallet
	err := s.collection().FindOne(ctx, bson.M{"user_id": userID}).Decode(&w)
	if err == mongo.ErrNoDocuments {
		return nil, &domain.ErrNotFound{Resource: "wallet", ID: userID}
	} else if err != nil {
		return nil, &domain.ErrStorage{Op: "wallet.get", Err: err}
	}
	return &w, nil
}

func (s *MongoStore) Create(ctx context.Context, w *Wallet) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if w.ID == "" {
		w.ID = primitive.NewObjectID().Hex()
	}
	if _, err := s.collection().InsertOne(ctx, w); err != nil {
		return &domain.ErrStorage{Op: "wallet.create", Err: err}
	}
	return nil
}

func (s *MongoStore) Save(ctx context.Context, w *Wallet) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(false)
	result, err := s.collection().ReplaceOne(ctx, bson.M{"user_id": w.UserID}, w, opts)
	if err != nil {
		return &domain.ErrStorage{Op: "wallet.save", Err: err}
	}
	if result.MatchedCount == 0 {
		return &domain.ErrNotFound{Resource: "wallet", ID: w.UserID}
	}
	return nil
}
