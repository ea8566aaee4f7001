package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rentora/rental-system/internal/core/domain"
	"github.com/rentora/rental-system/internal/core/ports"
)

const propertiesCollection = "properties"

// PropertyRepository persists rental listings.
type PropertyRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{db: db, col: db.Collection(propertiesCollection)}
}

type propertyDoc struct {
	ID           int64     `bson:"_id"`
	OwnerID      int64     `bson:"owner_id"`
	Title        string    `bson:"title"`
	Description  string    `bson:"description,omitempty"`
	RentalType   string    `bson:"rental_type"`
	Price        float64   `bson:"price"`
	Location     string    `bson:"location"`
	PropertyType string    `bson:"property_type"`
	CreatedAt    time.Time `bson:"created_at"`
}

func (d propertyDoc) toDomain() *domain.Property {
	return &domain.Property{
		ID:           d.ID,
		OwnerID:      d.OwnerID,
		Title:        d.Title,
		Description:  d.Description,
		RentalType:   domain.RentalType(d.RentalType),
		Price:        d.Price,
		Location:     d.Location,
		PropertyType: domain.PropertyType(d.PropertyType),
		CreatedAt:    d.CreatedAt,
	}
}

func fromDomainProperty(p *domain.Property) propertyDoc {
	return propertyDoc{
		ID:           p.ID,
		OwnerID:      p.OwnerID,
		Title:        p.Title,
		Description:  p.Description,
		RentalType:   string(p.RentalType),
		Price:        p.Price,
		Location:     p.Location,
		PropertyType: string(p.PropertyType),
		CreatedAt:    p.CreatedAt,
	}
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, propertiesCollection)
	if err != nil {
		return nil, err
	}

	doc := fromDomainProperty(p)
	doc.ID = id

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert property: %w", err)
	}

	created := *p
	created.ID = id
	return &created, nil
}

func (r *PropertyRepository) FindByID(ctx context.Context, id int64) (*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc propertyDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("find property: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PropertyRepository) List(ctx context.Context) ([]*domain.Property, error) {
	return r.find(ctx, bson.M{})
}

// Search builds a conjunctive filter from the optional predicates: location
// is a case-insensitive substring match, price bounds are inclusive, and
// enum fields match exactly.
func (r *PropertyRepository) Search(ctx context.Context, filter ports.SearchFilter) ([]*domain.Property, error) {
	query := bson.M{}

	if filter.Location != "" {
		query["location"] = bson.M{"$regex": primitive.Regex{
			Pattern: regexp.QuoteMeta(filter.Location),
			Options: "i",
		}}
	}

	price := bson.M{}
	if filter.MinPrice != nil {
		price["$gte"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		price["$lte"] = *filter.MaxPrice
	}
	if len(price) > 0 {
		query["price"] = price
	}

	if filter.PropertyType != "" {
		query["property_type"] = string(filter.PropertyType)
	}
	if filter.RentalType != "" {
		query["rental_type"] = string(filter.RentalType)
	}

	return r.find(ctx, query)
}

func (r *PropertyRepository) find(ctx context.Context, query bson.M) ([]*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find properties: %w", err)
	}
	defer cur.Close(ctx)

	properties := []*domain.Property{}
	for cur.Next(ctx) {
		var doc propertyDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode property: %w", err)
		}
		properties = append(properties, doc.toDomain())
	}
	return properties, cur.Err()
}

// Update persists every mutable field. owner_id and created_at are
// deliberately not part of the $set.
func (r *PropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":         p.Title,
		"description":   p.Description,
		"rental_type":   string(p.RentalType),
		"price":         p.Price,
		"location":      p.Location,
		"property_type": string(p.PropertyType),
	}}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": p.ID}, update)
	if err != nil {
		return fmt.Errorf("update property: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

// EnsureIndexes creates the query indexes for search and owner lookups.
func (r *PropertyRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "location", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
