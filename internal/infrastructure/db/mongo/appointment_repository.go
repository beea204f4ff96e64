package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vertex-clinic/booking-api/internal/core/domain"
)

const collectionAppointments = "appointments"

type AppointmentRepository struct {
	col *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{col: db.Collection(collectionAppointments)}
}

type appointmentDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	FullName       string             `bson:"fullName"`
	MobileNumber   string             `bson:"mobileNumber"`
	EmailAddress   string             `bson:"emailAddress,omitempty"`
	Department     string             `bson:"department"`
	DoctorName     string             `bson:"doctorName,omitempty"`
	ReasonForVisit string             `bson:"reasonForVisit,omitempty"`
	Status         string             `bson:"status"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

// Create inserts a new appointment document and returns it with its ObjectID.
func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toDocument(a)
	doc.ID = primitive.NewObjectID()

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert appointment: %w", err)
	}
	return toDomain(doc), nil
}

// ListNewestFirst returns every appointment sorted by createdAt descending.
// ObjectIDs grow with insertion time, so _id breaks ties within a millisecond.
func (r *AppointmentRepository) ListNewestFirst(ctx context.Context) ([]*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: -1},
	})
	cur, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find appointments: %w", err)
	}
	defer cur.Close(ctx)

	var docs []appointmentDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode appointments: %w", err)
	}

	out := make([]*domain.Appointment, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDomain(d))
	}
	return out, nil
}

// EnsureIndexes creates the index backing the newest-first listing.
func (r *AppointmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	return err
}

func toDocument(a *domain.Appointment) appointmentDocument {
	return appointmentDocument{
		FullName:       a.FullName,
		MobileNumber:   a.MobileNumber,
		EmailAddress:   a.EmailAddress,
		Department:     a.Department,
		DoctorName:     a.DoctorName,
		ReasonForVisit: a.ReasonForVisit,
		Status:         string(a.Status),
		CreatedAt:      a.CreatedAt.UTC(),
		UpdatedAt:      a.UpdatedAt.UTC(),
	}
}

func toDomain(d appointmentDocument) *domain.Appointment {
	return &domain.Appointment{
		ID:             d.ID.Hex(),
		FullName:       d.FullName,
		MobileNumber:   d.MobileNumber,
		EmailAddress:   d.EmailAddress,
		Department:     d.Department,
		DoctorName:     d.DoctorName,
		ReasonForVisit: d.ReasonForVisit,
		Status:         domain.AppointmentStatus(d.Status),
		CreatedAt:      d.CreatedAt.UTC(),
		UpdatedAt:      d.UpdatedAt.UTC(),
	}
}
