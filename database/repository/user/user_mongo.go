package userRepo

import (
	"context"
	"fmt"
	"time"

	"kisansaarthi/models"
	"kisansaarthi/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo uses the users collection of db and makes sure its
// indexes exist.
func NewMongoUserRepo(ctx context.Context, db *mongo.Database) UserRepository {
	repo := &MongoUserRepo{coll: db.Collection("users")}
	if err := repo.ensureIndexes(ctx); err != nil {
		utils.GetLogger().Error("failed to create user indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoUserRepo) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

// GetByPhone retrieves a user by mobile number.
func (r *MongoUserRepo) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"phone": phone})
}

// GetByEmail retrieves a user by its email address.
func (r *MongoUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// Create inserts a new user document.
func (r *MongoUserRepo) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateUser
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UpdatePassword replaces the stored hash.
func (r *MongoUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"passwordHash": passwordHash, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update user with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
