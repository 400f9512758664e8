package manager

import (
	"context"
	"fmt"

	"portfolio/api-server/models"
)

// OpKind enumerates the operations the manager dispatches on.
type OpKind int

const (
	OpList OpKind = iota
	OpCreate
	OpUpdate
	OpDelete
	OpRemoveMedia
)

func (k OpKind) String() string {
	switch k {
	case OpList:
		return "list"
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	case OpRemoveMedia:
		return "remove-media"
	}
	return fmt.Sprintf("OpKind(%d)", int(k))
}

// Request is a tagged-variant operation request: Kind selects the
// operation and the matching payload field carries its input.
type Request struct {
	Kind OpKind

	Create      *models.Project
	Update      *UpdateInput
	DeleteID    string
	RemoveMedia *RemoveMediaInput
}

// Response carries the outcome of a dispatched request; the field matching
// the request kind is populated.
type Response struct {
	Projects      []models.Project
	Created       *models.Project
	ModifiedCount int64
	Delete        *DeleteResult
	Acknowledged  bool
}

// Dispatch routes a request to the matching operation with an exhaustive
// switch over the operation kind.
func (m *Manager) Dispatch(ctx context.Context, req Request) (*Response, error) {
	switch req.Kind {
	case OpList:
		projects, err := m.List(ctx)
		if err != nil {
			return nil, err
		}
		return &Response{Projects: projects}, nil

	case OpCreate:
		if req.Create == nil {
			return nil, models.NewValidationError("body", "project payload is required")
		}
		created, err := m.Create(ctx, req.Create)
		if err != nil {
			return nil, err
		}
		return &Response{Created: created}, nil

	case OpUpdate:
		if req.Update == nil {
			return nil, models.NewValidationError("body", "update payload is required")
		}
		modified, err := m.Update(ctx, req.Update)
		if err != nil {
			return nil, err
		}
		return &Response{ModifiedCount: modified}, nil

	case OpDelete:
		result, err := m.Delete(ctx, req.DeleteID)
		if err != nil {
			return nil, err
		}
		return &Response{Delete: result}, nil

	case OpRemoveMedia:
		if req.RemoveMedia == nil {
			return nil, models.NewValidationError("body", "media removal payload is required")
		}
		if err := m.RemoveMedia(ctx, req.RemoveMedia); err != nil {
			return nil, err
		}
		return &Response{Acknowledged: true}, nil
	}

	return nil, fmt.Errorf("unsupported operation kind %s", req.Kind)
}
