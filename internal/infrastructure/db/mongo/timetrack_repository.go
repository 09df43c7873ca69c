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

	"github.com/chronoworks/timetrack-system/internal/core/domain"
	"github.com/chronoworks/timetrack-system/internal/core/ports"
)

const collectionTimeTracks = "time_tracks"

var timeTrackSortFields = map[string]string{
	"date":      "date",
	"duration":  "duration",
	"createdAt": "created_at",
}

type TimeTrackRepository struct {
	col *mongo.Collection
}

func NewTimeTrackRepository(db *mongo.Database) *TimeTrackRepository {
	return &TimeTrackRepository{col: db.Collection(collectionTimeTracks)}
}

type timeTrackDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID   primitive.ObjectID `bson:"user_id"`
	Date      time.Time          `bson:"date"`
	Duration  float64            `bson:"duration"`
	Note      string             `bson:"note"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d timeTrackDoc) toDomain() *domain.TimeTrack {
	return &domain.TimeTrack{
		ID:        d.ID.Hex(),
		OwnerID:   d.OwnerID.Hex(),
		Date:      d.Date.UTC(),
		Duration:  d.Duration,
		Note:      d.Note,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// Insert adds an entry. A unique-index violation on (user_id, date) maps
// to domain.ErrDuplicateDay.
func (r *TimeTrackRepository) Insert(ctx context.Context, t *domain.TimeTrack) (*domain.TimeTrack, error) {
	ownerID, err := primitive.ObjectIDFromHex(t.OwnerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := timeTrackDoc{
		OwnerID:   ownerID,
		Date:      t.Date,
		Duration:  t.Duration,
		Note:      t.Note,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateDay
		}
		return nil, fmt.Errorf("insert time track: %w", err)
	}

	created := *t
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// FindByID retrieves an entry. A malformed id is reported the same way
// as a missing document.
func (r *TimeTrackRepository) FindByID(ctx context.Context, id string) (*domain.TimeTrack, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTimeTrackNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc timeTrackDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTimeTrackNotFound
		}
		return nil, fmt.Errorf("find time track: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TimeTrackRepository) Update(ctx context.Context, t *domain.TimeTrack) (*domain.TimeTrack, error) {
	oid, err := primitive.ObjectIDFromHex(t.ID)
	if err != nil {
		return nil, domain.ErrTimeTrackNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"date":       t.Date,
		"duration":   t.Duration,
		"note":       t.Note,
		"updated_at": t.UpdatedAt,
	}}

	res, err := r.col.UpdateByID(ctx, oid, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateDay
		}
		return nil, fmt.Errorf("update time track: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrTimeTrackNotFound
	}
	return t, nil
}

func (r *TimeTrackRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTimeTrackNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete time track: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTimeTrackNotFound
	}
	return nil
}

// List returns one page of the owner's entries plus the total count.
func (r *TimeTrackRepository) List(ctx context.Context, filter ports.ListTimeTracksFilter) ([]*domain.TimeTrack, int64, error) {
	ownerID, err := primitive.ObjectIDFromHex(filter.OwnerID)
	if err != nil {
		return nil, 0, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"user_id": ownerID}
	if filter.Date != nil {
		query["date"] = *filter.Date
	}
	if filter.Note != "" {
		query["note"] = filter.Note
	}
	if filter.Query != nil && *filter.Query != "" {
		query["note"] = primitive.Regex{Pattern: regexp.QuoteMeta(*filter.Query), Options: "i"}
	}
	if filter.DateFrom != nil || filter.DateTo != nil {
		dateRange := bson.M{}
		if filter.DateFrom != nil {
			dateRange["$gte"] = *filter.DateFrom
		}
		if filter.DateTo != nil {
			dateRange["$lte"] = *filter.DateTo
		}
		query["date"] = dateRange
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count time tracks: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortField(timeTrackSortFields, filter.Page.SortBy, "date"), Value: filter.Page.SortOrder}}).
		SetSkip(int64(filter.Page.Skip())).
		SetLimit(int64(filter.Page.PerPage))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list time tracks: %w", err)
	}
	defer cur.Close(ctx)

	var tracks []*domain.TimeTrack
	for cur.Next(ctx) {
		var doc timeTrackDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode time track: %w", err)
		}
		tracks = append(tracks, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate time tracks: %w", err)
	}
	return tracks, total, nil
}

// SumForDay totals the durations already stored for the owner on date.
func (r *TimeTrackRepository) SumForDay(ctx context.Context, ownerID string, date time.Time) (float64, error) {
	oid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return 0, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": oid, "date": date}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$duration"}}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("sum for day: %w", err)
	}
	defer cur.Close(ctx)

	var result struct {
		Total float64 `bson:"total"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&result); err != nil {
			return 0, fmt.Errorf("decode day sum: %w", err)
		}
	}
	return result.Total, cur.Err()
}

// AggregateRange sums durations and collects notes across the inclusive
// date range.
func (r *TimeTrackRepository) AggregateRange(ctx context.Context, ownerID string, start, end time.Time) (float64, []string, error) {
	oid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return 0, nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"user_id": oid,
			"date":    bson.M{"$gte": start, "$lte": end},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: 1}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$duration"},
			// $ifNull keeps documents written before the note field
			// became mandatory in the aggregate.
			"notes": bson.M{"$push": bson.M{"$ifNull": bson.A{"$note", ""}}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, nil, fmt.Errorf("aggregate range: %w", err)
	}
	defer cur.Close(ctx)

	var result struct {
		Total float64  `bson:"total"`
		Notes []string `bson:"notes"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&result); err != nil {
			return 0, nil, fmt.Errorf("decode aggregate: %w", err)
		}
	}
	return result.Total, result.Notes, cur.Err()
}

// EnsureIndexes creates the compound unique (user_id, date) index that
// backs the one-entry-per-day invariant.
func (r *TimeTrackRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "note", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
