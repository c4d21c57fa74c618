package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateTaskRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateTaskRequest
		wantErr error
	}{
		{name: "title only", req: CreateTaskRequest{Title: "x"}},
		{name: "full", req: CreateTaskRequest{Title: "x", Status: StatusInProgress, Priority: PriorityHigh}},
		{name: "empty", req: CreateTaskRequest{}, wantErr: ErrTitleRequired},
		{name: "unknown status", req: CreateTaskRequest{Title: "x", Status: "Done"}, wantErr: ErrInvalidStatus},
		{name: "lowercase status", req: CreateTaskRequest{Title: "x", Status: "completed"}, wantErr: ErrInvalidStatus},
		{name: "unknown priority", req: CreateTaskRequest{Title: "x", Priority: "Urgent"}, wantErr: ErrInvalidPriority},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestUpdateTaskRequest_Validate(t *testing.T) {
	empty := ""
	done := "Done"
	completed := StatusCompleted

	tests := []struct {
		name    string
		req     UpdateTaskRequest
		wantErr error
	}{
		{name: "all nil", req: UpdateTaskRequest{}},
		{name: "valid status", req: UpdateTaskRequest{Status: &completed}},
		{name: "blank title", req: UpdateTaskRequest{Title: &empty}, wantErr: ErrTitleRequired},
		{name: "unknown status", req: UpdateTaskRequest{Status: &done}, wantErr: ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusToDo))
	assert.True(t, ValidStatus(StatusInProgress))
	assert.True(t, ValidStatus(StatusCompleted))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("todo"))
}

func TestValidPriority(t *testing.T) {
	assert.True(t, ValidPriority(PriorityLow))
	assert.True(t, ValidPriority(PriorityMedium))
	assert.True(t, ValidPriority(PriorityHigh))
	assert.False(t, ValidPriority(""))
	assert.False(t, ValidPriority("critical"))
}
