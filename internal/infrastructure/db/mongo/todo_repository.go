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

	"github.com/taskvault/todo-api/internal/core/domain"
	"github.com/taskvault/todo-api/internal/core/ports"
)

const todosCollection = "todos"

type TodoRepository struct {
	col *mongo.Collection
}

func NewTodoRepository(db *mongo.Database) *TodoRepository {
	return &TodoRepository{col: db.Collection(todosCollection)}
}

type mongoTodo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Owner       string             `bson:"owner"`
	Text        string             `bson:"text"`
	Completed   bool               `bson:"completed"`
	CompletedAt *int64             `bson:"completedAt"`
}

func (r *TodoRepository) Insert(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoTodo{
		Owner:       todo.Owner,
		Text:        todo.Text,
		Completed:   todo.Completed,
		CompletedAt: todo.CompletedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *TodoRepository) FindByOwner(ctx context.Context, owner string) ([]domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"owner": owner})
	if err != nil {
		return nil, fmt.Errorf("find todos: %w", err)
	}
	defer cur.Close(ctx)

	todos := []domain.Todo{}
	for cur.Next(ctx) {
		var mt mongoTodo
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode todo: %w", err)
		}
		todos = append(todos, *mt.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos: %w", err)
	}
	return todos, nil
}

func (r *TodoRepository) FindByID(ctx context.Context, id, owner string) (*domain.Todo, error) {
	filter, err := ownedFilter(id, owner)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mt mongoTodo
	if err := r.col.FindOne(ctx, filter).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}
	return mt.toDomain(), nil
}

// Update applies the change in a single findOneAndUpdate, so ownership check
// and mutation are one atomic document operation.
func (r *TodoRepository) Update(ctx context.Context, id, owner string, change ports.TodoChange) (*domain.Todo, error) {
	filter, err := ownedFilter(id, owner)
	if err != nil {
		return nil, err
	}

	set := bson.M{
		"completed":   change.Completed,
		"completedAt": change.CompletedAt,
	}
	if change.Text != nil {
		set["text"] = *change.Text
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mt mongoTodo
	err = r.col.FindOneAndUpdate(ctx, filter, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&mt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *TodoRepository) Delete(ctx context.Context, id, owner string) (*domain.Todo, error) {
	filter, err := ownedFilter(id, owner)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mt mongoTodo
	if err := r.col.FindOneAndDelete(ctx, filter).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("delete todo: %w", err)
	}
	return mt.toDomain(), nil
}

// EnsureIndexes creates the owner index used by every scoped query.
func (r *TodoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner", Value: 1}},
	})
	return err
}

// ownedFilter builds the {_id, owner} filter every single-item operation
// uses. A malformed id cannot match anything, so it reports not-found rather
// than a distinct error; the HTTP layer decides the malformed-id status per
// route before the repository is ever reached.
func ownedFilter(id, owner string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTodoNotFound
	}
	return bson.M{"_id": oid, "owner": owner}, nil
}

func (mt mongoTodo) toDomain() *domain.Todo {
	return &domain.Todo{
		ID:          mt.ID.Hex(),
		Owner:       mt.Owner,
		Text:        mt.Text,
		Completed:   mt.Completed,
		CompletedAt: mt.CompletedAt,
	}
}
