package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"task-tracker/internal/models"
	"task-tracker/internal/repository"
	"task-tracker/internal/utils"
)

// ErrForbidden marks an operation on a task the caller does not own. It is
// kept distinct from repository.ErrTaskNotFound on purpose: "doesn't exist"
// and "not yours" map to different responses.
var ErrForbidden = errors.New("no access to this task")

// TaskStore is the persistence surface the service needs. The Mongo-backed
// repository satisfies it; tests use an in-memory implementation.
type TaskStore interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type TaskService struct {
	taskStore TaskStore
}

func NewTaskService(taskStore TaskStore) *TaskService {
	return &TaskService{taskStore: taskStore}
}

func (s *TaskService) Create(ctx context.Context, userID string, req models.CreateTaskRequest) (*models.Task, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrForbidden
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	task := &models.Task{
		UserID:      uid,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		CreatedAt:   time.Now(),
	}
	if task.Status == "" {
		task.Status = models.DefaultStatus
	}
	if task.Priority == "" {
		task.Priority = models.DefaultPriority
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		utils.LogError("TaskService", "Failed to create task", err)
		return nil, err
	}

	utils.LogSuccess("TaskService", "Task %s created for user %s", task.ID.Hex(), userID)
	return task, nil
}

func (s *TaskService) List(ctx context.Context, userID string, filter models.TaskFilter) ([]models.Task, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrForbidden
	}

	tasks, err := s.taskStore.GetByUserID(ctx, uid, filter)
	if err != nil {
		utils.LogError("TaskService", "Failed to list tasks", err)
		return nil, err
	}

	if filter.Search != "" {
		tasks = searchTasks(tasks, filter.Search)
	}
	sortTasks(tasks, filter.SortBy)

	utils.LogInfo("TaskService", "Found %d tasks for user %s", len(tasks), userID)
	return tasks, nil
}

// searchTasks keeps the tasks whose title or description contains the term,
// case-insensitively.
func searchTasks(tasks []models.Task, term string) []models.Task {
	needle := strings.ToLower(term)
	matched := tasks[:0]
	for _, task := range tasks {
		if strings.Contains(strings.ToLower(task.Title), needle) ||
			strings.Contains(strings.ToLower(task.Description), needle) {
			matched = append(matched, task)
		}
	}
	return matched
}

// sortTasks orders a listing. Priority and status follow their enum order, not
// the lexical one; tasks without a due date sort after dated ones.
func sortTasks(tasks []models.Task, sortBy string) {
	switch sortBy {
	case "priority":
		order := map[string]int{models.PriorityHigh: 0, models.PriorityMedium: 1, models.PriorityLow: 2}
		sort.SliceStable(tasks, func(i, j int) bool {
			return order[tasks[i].Priority] < order[tasks[j].Priority]
		})
	case "status":
		order := map[string]int{models.StatusToDo: 0, models.StatusInProgress: 1, models.StatusCompleted: 2}
		sort.SliceStable(tasks, func(i, j int) bool {
			return order[tasks[i].Status] < order[tasks[j].Status]
		})
	case "dueDate":
		sort.SliceStable(tasks, func(i, j int) bool {
			a, b := tasks[i].DueDate, tasks[j].DueDate
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.Before(*b)
			}
		})
	case "title":
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Title < tasks[j].Title
		})
	default:
		// newest first
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
	}
}

// Get loads a task and verifies the caller owns it. The ownership policy is
// uniform across read, update and delete: unknown id answers not-found, a
// foreign task answers forbidden.
func (s *TaskService) Get(ctx context.Context, userID, taskID string) (*models.Task, error) {
	return s.loadOwned(ctx, userID, taskID)
}

func (s *TaskService) Update(ctx context.Context, userID, taskID string, req models.UpdateTaskRequest) (*models.Task, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	task, err := s.loadOwned(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	if err := s.taskStore.Update(ctx, task); err != nil {
		utils.LogError("TaskService", "Failed to update task", err)
		return nil, err
	}

	utils.LogSuccess("TaskService", "Task %s updated by user %s", taskID, userID)
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	task, err := s.loadOwned(ctx, userID, taskID)
	if err != nil {
		return err
	}

	if err := s.taskStore.Delete(ctx, task.ID); err != nil {
		utils.LogError("TaskService", "Failed to delete task", err)
		return err
	}

	utils.LogSuccess("TaskService", "Task %s deleted by user %s", taskID, userID)
	return nil
}

func (s *TaskService) loadOwned(ctx context.Context, userID, taskID string) (*models.Task, error) {
	oid, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return nil, repository.ErrTaskNotFound
	}

	task, err := s.taskStore.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if task.UserID.Hex() != userID {
		utils.LogWarning("TaskService", "User %s attempted to access task %s owned by %s", userID, taskID, task.UserID.Hex())
		return nil, ErrForbidden
	}

	return task, nil
}
