package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"task-tracker/internal/models"
	"task-tracker/internal/utils"
)

var ErrTaskNotFound = errors.New("task not found")

type TaskRepository struct {
	coll *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	utils.LogSuccess("TaskRepository", "Task repository initialised")
	return &TaskRepository{coll: db.Collection("tasks")}
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	result, err := r.coll.InsertOne(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		task.ID = oid
	}

	utils.LogSuccess("TaskRepository", "Task created: %s (owner: %s)", task.ID.Hex(), task.UserID.Hex())
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	task := &models.Task{}
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to look up task: %w", err)
	}
	return task, nil
}

// GetByUserID returns the tasks owned by userID, narrowed by the equality
// fields of the filter. Text search and ordering live in the service layer so
// they behave identically across store implementations.
func (r *TaskRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID, filter models.TaskFilter) ([]models.Task, error) {
	query := bson.M{"userId": userID}

	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Priority != "" {
		query["priority"] = filter.Priority
	}

	cursor, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}

	return tasks, nil
}

// Update replaces the mutable fields of a task. Ownership is immutable, so
// userId is never part of the update document.
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	update := bson.M{"$set": bson.M{
		"title":       task.Title,
		"description": task.Description,
		"status":      task.Status,
		"priority":    task.Priority,
		"dueDate":     task.DueDate,
	}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": task.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrTaskNotFound
	}

	utils.LogSuccess("TaskRepository", "Task updated: %s", task.ID.Hex())
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrTaskNotFound
	}

	utils.LogSuccess("TaskRepository", "Task deleted: %s", id.Hex())
	return nil
}
