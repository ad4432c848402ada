// Package mongostore implements the storage contract on MongoDB with one
// collection per entity. Singleton records live under the fixed document id
// "default" and exchange rates use the currency code itself as the document
// id, so every upsert is a single merge-write with no read-then-write
// window. Partial updates are $set merges: absent fields are preserved.
package mongostore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/oguzcelik/jewelry-backend/internal/domain"
	"github.com/oguzcelik/jewelry-backend/internal/schema"
	"github.com/oguzcelik/jewelry-backend/internal/storage"
)

// Collection names, one per entity.
const (
	colProducts  = "products"
	colUsers     = "users"
	colContact   = "contactInfo"
	colAbout     = "aboutInfo"
	colHomepage  = "homepageInfo"
	colMessages  = "messages"
	colExchange  = "exchangeRates"
	connectLimit = 10 * time.Second
)

// Store is the MongoDB-backed storage implementation.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ storage.Storage = (*Store)(nil)

// Open connects to MongoDB, verifies the connection, and returns a Store
// bound to the named database.
func Open(ctx context.Context, uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectLimit)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &Store{client: client, db: client.Database(dbName)}, nil
}

// New wraps an existing database handle; used by tests.
func New(client *mongo.Client, dbName string) *Store {
	return &Store{client: client, db: client.Database(dbName)}
}

func (s *Store) col(name string) *mongo.Collection { return s.db.Collection(name) }

// findOne decodes a single document into out, mapping "no documents" to
// absence (false, nil).
func findOne[T any](ctx context.Context, c *mongo.Collection, filter any) (*T, error) {
	var out T
	err := c.FindOne(ctx, filter).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// findAll decodes every matching document.
func findAll[T any](ctx context.Context, c *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cur, err := c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

//
// Products
//

// GetProducts returns all active products.
func (s *Store) GetProducts(ctx context.Context) ([]domain.Product, error) {
	return findAll[domain.Product](ctx, s.col(colProducts),
		bson.M{"isActive": domain.FlagTrue},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}))
}

// GetAllProducts returns every product regardless of active state.
func (s *Store) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	return findAll[domain.Product](ctx, s.col(colProducts), bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}))
}

// GetProduct returns the product with the given id, or nil when absent.
func (s *Store) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return findOne[domain.Product](ctx, s.col(colProducts), bson.M{"_id": id})
}

// GetProductsByCategory returns active products in the given category.
func (s *Store) GetProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return findAll[domain.Product](ctx, s.col(colProducts),
		bson.M{"category": category, "isActive": domain.FlagTrue},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}))
}

// CreateProduct inserts a new product document with a fresh id.
func (s *Store) CreateProduct(ctx context.Context, in schema.InsertProduct) (*domain.Product, error) {
	p := domain.Product{
		ID:             uuid.NewString(),
		Name:           in.Name,
		Category:       in.Category,
		Weight:         in.Weight,
		GoldKarat:      in.GoldKarat,
		ImageURL:       in.ImageURL,
		IsActive:       in.IsActive,
		HasWorkmanship: in.HasWorkmanship,
	}
	if _, err := s.col(colProducts).InsertOne(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProduct merges the supplied fields onto an existing document.
func (s *Store) UpdateProduct(ctx context.Context, id string, in schema.UpdateProduct) (*domain.Product, error) {
	set := bson.M{}
	if in.Name != nil {
		set["name"] = *in.Name
	}
	if in.Category != nil {
		set["category"] = *in.Category
	}
	if in.Weight != nil {
		set["weight"] = *in.Weight
	}
	if in.GoldKarat != nil {
		set["goldKarat"] = *in.GoldKarat
	}
	if in.ImageURL != nil {
		set["imageUrl"] = *in.ImageURL
	}
	if in.IsActive != nil {
		set["isActive"] = *in.IsActive
	}
	if in.HasWorkmanship != nil {
		set["hasWorkmanship"] = *in.HasWorkmanship
	}
	if len(set) == 0 {
		p, err := s.GetProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, storage.ErrNotFound
		}
		return p, nil
	}

	var p domain.Product
	err := s.col(colProducts).FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProduct removes a document, reporting whether one existed.
func (s *Store) DeleteProduct(ctx context.Context, id string) (bool, error) {
	res, err := s.col(colProducts).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

//
// Users
//

// GetUser returns a user by id, or nil when absent.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return findOne[domain.User](ctx, s.col(colUsers), bson.M{"_id": id})
}

// GetUserByUsername returns a user by its unique username, or nil when absent.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return findOne[domain.User](ctx, s.col(colUsers), bson.M{"username": username})
}

// CreateUser inserts a new user, rejecting duplicate usernames by an
// explicit lookup (usernames are not document ids here).
func (s *Store) CreateUser(ctx context.Context, in schema.InsertUser) (*domain.User, error) {
	existing, err := s.GetUserByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, storage.ErrUsernameTaken
	}
	u := domain.User{
		ID:       uuid.NewString(),
		Username: in.Username,
		Password: in.Password,
		Role:     in.Role,
	}
	if _, err := s.col(colUsers).InsertOne(ctx, u); err != nil {
		return nil, err
	}
	return &u, nil
}

//
// Singletons
//

// GetContactInfo returns the contact singleton, or nil before first write.
func (s *Store) GetContactInfo(ctx context.Context) (*domain.ContactInfo, error) {
	return findOne[domain.ContactInfo](ctx, s.col(colContact), bson.M{"_id": domain.SingletonID})
}

// UpdateContactInfo merge-writes the contact singleton (upsert).
func (s *Store) UpdateContactInfo(ctx context.Context, in schema.UpdateContactInfo) (*domain.ContactInfo, error) {
	set := bson.M{}
	if in.Address != nil {
		set["address"] = *in.Address
	}
	if in.Phone != nil {
		set["phone"] = *in.Phone
	}
	if in.WorkingHours != nil {
		set["workingHours"] = *in.WorkingHours
	}
	if err := s.upsertSingleton(ctx, colContact, set); err != nil {
		return nil, err
	}
	return s.GetContactInfo(ctx)
}

// GetAboutInfo returns the about singleton, or nil before first write.
func (s *Store) GetAboutInfo(ctx context.Context) (*domain.AboutInfo, error) {
	return findOne[domain.AboutInfo](ctx, s.col(colAbout), bson.M{"_id": domain.SingletonID})
}

// UpdateAboutInfo merge-writes the about singleton (upsert).
func (s *Store) UpdateAboutInfo(ctx context.Context, in schema.UpdateAboutInfo) (*domain.AboutInfo, error) {
	set := bson.M{}
	if in.Title != nil {
		set["title"] = *in.Title
	}
	if in.Description != nil {
		set["description"] = *in.Description
	}
	if in.ExperienceYears != nil {
		set["experienceYears"] = *in.ExperienceYears
	}
	if in.CustomerCount != nil {
		set["customerCount"] = *in.CustomerCount
	}
	if in.ImageURL != nil {
		set["imageUrl"] = *in.ImageURL
	}
	if err := s.upsertSingleton(ctx, colAbout, set); err != nil {
		return nil, err
	}
	return s.GetAboutInfo(ctx)
}

// GetHomepageInfo returns the homepage singleton, or nil before first write.
func (s *Store) GetHomepageInfo(ctx context.Context) (*domain.HomepageInfo, error) {
	return findOne[domain.HomepageInfo](ctx, s.col(colHomepage), bson.M{"_id": domain.SingletonID})
}

// UpdateHomepageInfo merge-writes the homepage singleton (upsert).
func (s *Store) UpdateHomepageInfo(ctx context.Context, in schema.UpdateHomepageInfo) (*domain.HomepageInfo, error) {
	set := bson.M{}
	if in.Title != nil {
		set["title"] = *in.Title
	}
	if in.Description != nil {
		set["description"] = *in.Description
	}
	if in.ImageURL != nil {
		set["imageUrl"] = *in.ImageURL
	}
	if err := s.upsertSingleton(ctx, colHomepage, set); err != nil {
		return nil, err
	}
	return s.GetHomepageInfo(ctx)
}

// upsertSingleton merges set onto the well-known singleton document,
// creating it when missing. An empty merge still ensures the document
// exists ($setOnInsert keeps the write valid without touching fields).
func (s *Store) upsertSingleton(ctx context.Context, collection string, set bson.M) error {
	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	} else {
		update["$setOnInsert"] = bson.M{"seededAt": time.Now().UTC()}
	}
	_, err := s.col(collection).UpdateByID(ctx, domain.SingletonID, update,
		options.Update().SetUpsert(true))
	return err
}

//
// Messages
//

// CreateMessage inserts a contact-form submission.
func (s *Store) CreateMessage(ctx context.Context, in schema.InsertMessage) (*domain.Message, error) {
	m := domain.Message{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Phone:     in.Phone,
		Message:   in.Message,
		CreatedAt: time.Now().UTC(),
		IsRead:    domain.FlagFalse,
	}
	if _, err := s.col(colMessages).InsertOne(ctx, m); err != nil {
		return nil, err
	}
	return &m, nil
}

// GetMessages returns all messages newest-first.
func (s *Store) GetMessages(ctx context.Context) ([]domain.Message, error) {
	return findAll[domain.Message](ctx, s.col(colMessages), bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}))
}

// UpdateMessageReadStatus sets the IsRead flag of a message.
func (s *Store) UpdateMessageReadStatus(ctx context.Context, id, isRead string) (*domain.Message, error) {
	var m domain.Message
	err := s.col(colMessages).FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isRead": isRead}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteMessage removes a message, reporting whether one existed.
func (s *Store) DeleteMessage(ctx context.Context, id string) (bool, error) {
	res, err := s.col(colMessages).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

//
// Exchange rates
//

// GetExchangeRates returns all rates ordered by currency.
func (s *Store) GetExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	return findAll[domain.ExchangeRate](ctx, s.col(colExchange), bson.M{},
		options.Find().SetSort(bson.D{{Key: "currency", Value: 1}}))
}

// GetExchangeRateByCurrency returns the rate for a currency, or nil. The
// currency code is the document id.
func (s *Store) GetExchangeRateByCurrency(ctx context.Context, currency string) (*domain.ExchangeRate, error) {
	return findOne[domain.ExchangeRate](ctx, s.col(colExchange), bson.M{"_id": currency})
}

// UpdateExchangeRate upserts the rate for a currency as one merge-write,
// using the currency code as the document id so the operation is atomic.
func (s *Store) UpdateExchangeRate(ctx context.Context, currency, rate string) (*domain.ExchangeRate, error) {
	_, err := s.col(colExchange).UpdateByID(ctx, currency,
		bson.M{"$set": bson.M{"currency": currency, "rate": rate}},
		options.Update().SetUpsert(true))
	if err != nil {
		return nil, err
	}
	return s.GetExchangeRateByCurrency(ctx, currency)
}

// Ping verifies the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
