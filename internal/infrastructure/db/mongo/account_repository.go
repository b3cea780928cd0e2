package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/petcare/petcare-client/internal/devapi"
)

const (
	accountCollection = "accounts"
	counterCollection = "counters"
	accountSequence   = "accounts"
)

// AccountRepository stores devapi accounts. Numeric ids come from a counter
// document so they match the ids the production backend hands out.
type AccountRepository struct {
	coll     *mongo.Collection
	counters *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{
		coll:     db.Collection(accountCollection),
		counters: db.Collection(counterCollection),
	}
}

type mongoAccount struct {
	ID           int64  `bson:"_id"`
	Username     string `bson:"username"`
	Email        string `bson:"email"`
	FirstName    string `bson:"first_name"`
	LastName     string `bson:"last_name"`
	PhoneNumber  string `bson:"phone_number,omitempty"`
	Role         string `bson:"role"`
	PasswordHash string `bson:"password_hash"`
	IsActive     bool   `bson:"is_active"`
	DateJoined   int64  `bson:"date_joined"`
	UpdatedAt    int64  `bson:"updated_at"`
}

type counter struct {
	Seq int64 `bson:"seq"`
}

// EnsureIndexes creates the unique username and email indexes.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *AccountRepository) Create(ctx context.Context, acct *devapi.Account) (*devapi.Account, error) {
	id, err := r.nextID(ctx)
	if err != nil {
		return nil, err
	}

	doc := toMongo(acct)
	doc.ID = id
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, devapi.ErrAccountExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return fromMongo(doc), nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*devapi.Account, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*devapi.Account, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*devapi.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AccountRepository) Update(ctx context.Context, acct *devapi.Account) error {
	doc := toMongo(acct)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": acct.ID}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return devapi.ErrAccountExists
		}
		return fmt.Errorf("update account: %w", err)
	}
	if res.MatchedCount == 0 {
		return devapi.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) List(ctx context.Context) ([]*devapi.Account, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoAccount
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}
	out := make([]*devapi.Account, 0, len(docs))
	for i := range docs {
		out = append(out, fromMongo(docs[i]))
	}
	return out, nil
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (*devapi.Account, error) {
	var doc mongoAccount
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, devapi.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return fromMongo(doc), nil
}

func (r *AccountRepository) nextID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var c counter
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": accountSequence},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("next account id: %w", err)
	}
	return c.Seq, nil
}

func toMongo(a *devapi.Account) mongoAccount {
	return mongoAccount{
		ID:           a.ID,
		Username:     a.Username,
		Email:        a.Email,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		PhoneNumber:  a.PhoneNumber,
		Role:         a.Role,
		PasswordHash: a.PasswordHash,
		IsActive:     a.IsActive,
		DateJoined:   a.DateJoined.Unix(),
		UpdatedAt:    a.UpdatedAt.Unix(),
	}
}

func fromMongo(m mongoAccount) *devapi.Account {
	return &devapi.Account{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		PhoneNumber:  m.PhoneNumber,
		Role:         m.Role,
		PasswordHash: m.PasswordHash,
		IsActive:     m.IsActive,
		DateJoined:   unixToTime(m.DateJoined),
		UpdatedAt:    unixToTime(m.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
