package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/napat-t/task-tracker-api/internal/model"
)

// TodoRepository defines the interface for todo-related database operations.
type TodoRepository interface {
	CreateTodo(ctx context.Context, todo *model.Todo) (*model.Todo, error)
	GetTodo(ctx context.Context, id string) (*model.Todo, error)
	ListTodos(ctx context.Context) ([]*model.Todo, error)
	ListTodosByUser(ctx context.Context, userID string) ([]*model.Todo, error)
	UpdateTodo(ctx context.Context, id string, params UpdateTodoParams) (*model.Todo, error)
	DeleteTodo(ctx context.Context, id string) (*model.Todo, error)
}

// UpdateTodoParams defines the optional parameters for updating a todo.
// Only the fields that are not nil will be updated.
type UpdateTodoParams struct {
	Title *string
	Date  *string
}

const todoCollection = "todos"

type todoMongoRepository struct {
	db *mongo.Database
}

func NewTodoMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) TodoRepository {
	collection := db.Collection(todoCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create todo indexes")
	}

	return &todoMongoRepository{db: db}
}

func (r *todoMongoRepository) CreateTodo(ctx context.Context, todo *model.Todo) (*model.Todo, error) {
	now := time.Now()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	result, err := r.db.Collection(todoCollection).InsertOne(ctx, todo)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		todo.ID = objectID
	}

	return todo, nil
}

func (r *todoMongoRepository) GetTodo(ctx context.Context, id string) (*model.Todo, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(todoCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var todo model.Todo
	if err := result.Decode(&todo); err != nil {
		return nil, err
	}

	return &todo, nil
}

func (r *todoMongoRepository) ListTodos(ctx context.Context) ([]*model.Todo, error) {
	return r.find(ctx, bson.M{})
}

func (r *todoMongoRepository) ListTodosByUser(ctx context.Context, userID string) ([]*model.Todo, error) {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	return r.find(ctx, bson.M{"user_id": objectID})
}

func (r *todoMongoRepository) UpdateTodo(
	ctx context.Context,
	id string,
	params UpdateTodoParams,
) (*model.Todo, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{}
	if params.Title != nil {
		updateMap["title"] = *params.Title
	}
	if params.Date != nil {
		updateMap["date"] = *params.Date
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(todoCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var todo model.Todo
	if err := result.Decode(&todo); err != nil {
		return nil, err
	}

	return &todo, nil
}

func (r *todoMongoRepository) DeleteTodo(ctx context.Context, id string) (*model.Todo, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(todoCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var todo model.Todo
	if err := result.Decode(&todo); err != nil {
		return nil, err
	}

	return &todo, nil
}

func (r *todoMongoRepository) find(ctx context.Context, filter bson.M) ([]*model.Todo, error) {
	findOptions := options.Find()
	findOptions.SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.db.Collection(todoCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var todos []*model.Todo
	for cursor.Next(ctx) {
		var todo model.Todo
		if err := cursor.Decode(&todo); err != nil {
			return nil, err
		}
		todos = append(todos, &todo)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return todos, nil
}
