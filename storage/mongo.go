package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/malusev998/xrate"
)

type (
	mongoStorage struct {
		client     *mongo.Client
		collection *mongo.Collection
	}

	mongoRate struct {
		ID        primitive.ObjectID `bson:"_id,omitempty"`
		Base      string             `bson:"base"`
		Currency  string             `bson:"currency"`
		Provider  string             `bson:"provider"`
		Rate      float64            `bson:"rate"`
		Date      time.Time          `bson:"date"`
		CreatedAt time.Time          `bson:"createdAt"`
	}
)

func NewMongoStorage(ctx context.Context, config MongoDBConfig) (xrate.Storage, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.ConnectionString))
	if err != nil {
		return nil, err
	}

	st := NewMongoStorageFromCollection(client, client.Database(config.Database).Collection(config.Collection))

	if config.Migrate {
		if err := st.Migrate(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
	}

	return st, nil
}

// NewMongoStorageFromCollection wraps an existing collection. The client
// may be nil, Close is then a no-op.
func NewMongoStorageFromCollection(client *mongo.Client, collection *mongo.Collection) xrate.Storage {
	return mongoStorage{
		client:     client,
		collection: collection,
	}
}

func (m mongoStorage) GetStorageProviderName() string {
	return string(MongoDB)
}

func (m mongoStorage) Migrate(ctx context.Context) error {
	_, err := m.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "provider", Value: 1},
			{Key: "currency", Value: 1},
			{Key: "date", Value: 1},
		},
	})

	return err
}

func (m mongoStorage) Drop(ctx context.Context) error {
	return m.collection.Drop(ctx)
}

func (m mongoStorage) Close() error {
	if m.client == nil {
		return nil
	}

	return m.client.Disconnect(context.Background())
}

func (m mongoStorage) Store(ctx context.Context, rates []xrate.Rate) ([]xrate.RateWithID, error) {
	if len(rates) == 0 {
		return []xrate.RateWithID{}, nil
	}

	// rates is shared with the other storages, work on a copy
	copied := make([]xrate.Rate, len(rates))
	copy(copied, rates)

	documents := make([]interface{}, 0, len(copied))

	for i := range copied {
		if copied[i].CreatedAt.IsZero() {
			copied[i].CreatedAt = time.Now().UTC()
		}

		documents = append(documents, mongoRate{
			Base:      copied[i].Base,
			Currency:  copied[i].Currency,
			Provider:  string(copied[i].Provider),
			Rate:      copied[i].Rate,
			Date:      copied[i].Date,
			CreatedAt: copied[i].CreatedAt,
		})
	}

	result, err := m.collection.InsertMany(ctx, documents)
	if err != nil {
		return nil, err
	}

	stored := make([]xrate.RateWithID, 0, len(copied))

	for i, id := range result.InsertedIDs {
		stored = append(stored, xrate.RateWithID{Rate: copied[i], ID: id})
	}

	return stored, nil
}

func (m mongoStorage) Get(ctx context.Context, provider xrate.Provider, currency string, date time.Time) (xrate.RateWithID, error) {
	filter := bson.M{
		"provider": string(provider),
		"currency": currency,
		"date":     date,
	}

	var doc mongoRate

	err := m.collection.FindOne(ctx, filter, options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return xrate.RateWithID{}, fmt.Errorf("%w: %s %s on %s", xrate.ErrRateNotStored, provider, currency, date.Format(MySQLDateFormat))
	}

	if err != nil {
		return xrate.RateWithID{}, err
	}

	return xrate.RateWithID{
		Rate: xrate.Rate{
			Base:      doc.Base,
			Currency:  doc.Currency,
			Provider:  xrate.Provider(doc.Provider),
			Rate:      doc.Rate,
			Date:      doc.Date.UTC(),
			CreatedAt: doc.CreatedAt.UTC(),
		},
		ID: doc.ID,
	}, nil
}
