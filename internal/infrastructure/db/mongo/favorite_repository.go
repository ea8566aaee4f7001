package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rentora/rental-system/internal/core/domain"
)

const favoritesCollection = "favorites"

// FavoriteRepository persists per-user saved properties. A compound unique
// index on (user_id, property_id) makes duplicate inserts fail atomically
// at the storage layer.
type FavoriteRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewFavoriteRepository(db *mongo.Database) *FavoriteRepository {
	return &FavoriteRepository{db: db, col: db.Collection(favoritesCollection)}
}

type favoriteDoc struct {
	ID         int64     `bson:"_id"`
	UserID     int64     `bson:"user_id"`
	PropertyID int64     `bson:"property_id"`
	CreatedAt  time.Time `bson:"created_at"`
}

func (d favoriteDoc) toDomain() *domain.Favorite {
	return &domain.Favorite{
		ID:         d.ID,
		UserID:     d.UserID,
		PropertyID: d.PropertyID,
		CreatedAt:  d.CreatedAt,
	}
}

func (r *FavoriteRepository) Create(ctx context.Context, f *domain.Favorite) (*domain.Favorite, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, favoritesCollection)
	if err != nil {
		return nil, err
	}

	doc := favoriteDoc{
		ID:         id,
		UserID:     f.UserID,
		PropertyID: f.PropertyID,
		CreatedAt:  f.CreatedAt,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateFavorite
		}
		return nil, fmt.Errorf("insert favorite: %w", err)
	}

	created := *f
	created.ID = id
	return &created, nil
}

func (r *FavoriteRepository) FindByIDAndUser(ctx context.Context, id, userID int64) (*domain.Favorite, error) {
	return r.findOne(ctx, bson.M{"_id": id, "user_id": userID})
}

func (r *FavoriteRepository) FindByUserAndProperty(ctx context.Context, userID, propertyID int64) (*domain.Favorite, error) {
	return r.findOne(ctx, bson.M{"user_id": userID, "property_id": propertyID})
}

func (r *FavoriteRepository) findOne(ctx context.Context, query bson.M) (*domain.Favorite, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc favoriteDoc
	if err := r.col.FindOne(ctx, query).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFavoriteNotFound
		}
		return nil, fmt.Errorf("find favorite: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Favorite, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer cur.Close(ctx)

	favorites := []*domain.Favorite{}
	for cur.Next(ctx) {
		var doc favoriteDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode favorite: %w", err)
		}
		favorites = append(favorites, doc.toDomain())
	}
	return favorites, cur.Err()
}

// Update repoints an existing favorite at a different property. The unique
// index rejects the move when the target pair already exists.
func (r *FavoriteRepository) Update(ctx context.Context, f *domain.Favorite) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": f.ID, "user_id": f.UserID},
		bson.M{"$set": bson.M{"property_id": f.PropertyID}},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateFavorite
		}
		return fmt.Errorf("update favorite: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}

func (r *FavoriteRepository) Delete(ctx context.Context, id, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}

// EnsureIndexes creates the uniqueness and lookup indexes.
func (r *FavoriteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "property_id", Value: 1}},
			Options: uniqueIndex(),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
