package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fieldgate/fieldgate/internal/core/domain"
)

const principalCollection = "principals"

// PrincipalRepository is the MongoDB-backed principal store. Email uniqueness
// is enforced by a unique index, so concurrent inserts for the same email are
// serialized by the database rather than by an application-level check.
type PrincipalRepository struct {
	coll *mongo.Collection
}

func NewPrincipalRepository(db *mongo.Database) *PrincipalRepository {
	return &PrincipalRepository{coll: db.Collection(principalCollection)}
}

// EnsureIndexes creates the unique email index. Must run once at startup
// before the repository serves inserts.
func (r *PrincipalRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

type mongoPrincipal struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Roles        []string           `bson:"roles"`
	CreatedAt    int64              `bson:"created_at"`
}

func (r *PrincipalRepository) Insert(ctx context.Context, email, passwordHash string, roles []string) (*domain.Principal, error) {
	doc := mongoPrincipal{
		Email:        email,
		PasswordHash: passwordHash,
		Roles:        roles,
		CreatedAt:    time.Now().UTC().Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert principal: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return toDomain(doc), nil
}

func (r *PrincipalRepository) FindByID(ctx context.Context, id string) (*domain.Principal, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id cannot match any stored principal.
		return nil, domain.ErrPrincipalNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *PrincipalRepository) FindByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *PrincipalRepository) findOne(ctx context.Context, filter bson.M) (*domain.Principal, error) {
	var mp mongoPrincipal
	if err := r.coll.FindOne(ctx, filter).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("find principal: %w", err)
	}
	return toDomain(mp), nil
}

func toDomain(mp mongoPrincipal) *domain.Principal {
	return &domain.Principal{
		ID:           mp.ID.Hex(),
		Email:        mp.Email,
		PasswordHash: mp.PasswordHash,
		Roles:        mp.Roles,
		CreatedAt:    time.Unix(mp.CreatedAt, 0).UTC(),
	}
}
