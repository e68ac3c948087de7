package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dtroode/otp-signup/internal/model"
)

type userDocument struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	Mobile       string    `bson:"mobile"`
	PasswordHash string    `bson:"password_hash"`
	City         string    `bson:"city"`
	Age          int       `bson:"age"`
	FileName     string    `bson:"file_name"`
	OrgName      string    `bson:"org_name"`
	FilePath     string    `bson:"file_path"`
	Role         string    `bson:"role_type"`
	Token        string    `bson:"token"`
	CreatedAt    time.Time `bson:"created_at"`
}

func toDocument(u model.User) userDocument {
	return userDocument{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		Mobile:       u.Mobile,
		PasswordHash: u.PasswordHash,
		City:         u.City,
		Age:          u.Age,
		FileName:     u.FileName,
		OrgName:      u.OrgName,
		FilePath:     u.FilePath,
		Role:         u.Role,
		Token:        u.Token,
		CreatedAt:    u.CreatedAt,
	}
}

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewUserRepository(coll *mongo.Collection) *UserRepository {
	return &UserRepository{
		coll: coll,
		now:  time.Now,
	}
}

// Create inserts one document per confirmed registration.
func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	user.CreatedAt = r.now().UTC().Truncate(time.Millisecond)

	if _, err := r.coll.InsertOne(ctx, toDocument(user)); err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}
