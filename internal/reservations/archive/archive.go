package archive

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hotelier/pkg/config"
	"hotelier/pkg/model"
)

const CollectionName = "Reservations"

// Record is the archived form of a reservation. The archive is write-behind:
// the in-memory ledger stays authoritative and every lifecycle change is
// mirrored here with an upsert keyed by reservation ID.
type Record struct {
	ReservationID string    `bson:"_id" json:"reservation_id"`
	HotelID       string    `bson:"hotel_id" json:"hotel_id"`
	RoomID        string    `bson:"room_id" json:"room_id"`
	UserID        string    `bson:"user_id" json:"user_id"`
	Start         time.Time `bson:"start_date" json:"start_date"`
	End           time.Time `bson:"end_date" json:"end_date"`
	TotalCents    int64     `bson:"total_cents" json:"total_cents"`
	Status        string    `bson:"status" json:"status"`
	ArchivedAt    time.Time `bson:"archived_at" json:"archived_at"`
}

// ReservationArchive persists reservation snapshots outside process memory.
type ReservationArchive interface {
	Save(ctx context.Context, res *model.Reservation) error
	Close(ctx context.Context) error
}

type mongoArchive struct {
	cfg        *config.Config
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoArchive(ctx context.Context, cfg *config.Config) (ReservationArchive, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.MongoConnTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return &mongoArchive{
		cfg:        cfg,
		client:     client,
		collection: client.Database(cfg.MongoDatabase).Collection(CollectionName),
	}, nil
}

func (a *mongoArchive) Save(ctx context.Context, res *model.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.ArchiveTimeout)
	defer cancel()

	record := Record{
		ReservationID: res.ID,
		HotelID:       res.HotelID,
		RoomID:        res.RoomID,
		UserID:        res.UserID,
		Start:         res.Start,
		End:           res.End,
		TotalCents:    res.TotalCents,
		Status:        string(res.Status),
		ArchivedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}

	filter := bson.M{"_id": record.ReservationID}
	opts := options.Replace().SetUpsert(true)
	if _, err := a.collection.ReplaceOne(ctx, filter, record, opts); err != nil {
		return fmt.Errorf("failed to archive reservation %s: %w", res.ID, err)
	}
	return nil
}

func (a *mongoArchive) Close(ctx context.Context) error {
	return a.client.Disconnect(ctx)
}
