// Package notices holds the user-facing notices slice: toasts raised by
// handlers when a side effect fails or succeeds.
package notices

import (
	"time"

	"github.com/google/uuid"

	"portal/internal/state"
)

const (
	ActionCreate state.ActionType = "NOTICE_CREATE"
	ActionRemove state.ActionType = "NOTICE_REMOVE"
)

// Status classifies a notice for display.
type Status string

const (
	StatusError   Status = "is-error"
	StatusSuccess Status = "is-success"
	StatusInfo    Status = "is-info"
)

// Notice is a single user-facing message.
type Notice struct {
	ID          string    `json:"notice_id"`
	Status      Status    `json:"status"`
	Text        string    `json:"text"`
	ShowDismiss bool      `json:"show_dismiss"`
	CreatedAt   time.Time `json:"created_at"`
}

// Slice keeps notices in creation order.
type Slice struct {
	Items []Notice `json:"items"`
}

// InitialSlice returns an empty notices slice.
func InitialSlice() Slice {
	return Slice{Items: []Notice{}}
}

type CreateAction struct {
	Notice Notice
}

func (CreateAction) Type() state.ActionType { return ActionCreate }

type RemoveAction struct {
	NoticeID string
}

func (RemoveAction) Type() state.ActionType { return ActionRemove }

// Create wraps an already-built notice.
func Create(n Notice) CreateAction {
	return CreateAction{Notice: n}
}

// Remove dismisses the notice with the given id.
func Remove(noticeID string) RemoveAction {
	return RemoveAction{NoticeID: noticeID}
}

// Error builds a dismissible error notice.
func Error(text string) CreateAction {
	return Create(newNotice(StatusError, text))
}

// Success builds a dismissible success notice.
func Success(text string) CreateAction {
	return Create(newNotice(StatusSuccess, text))
}

// Info builds a dismissible informational notice.
func Info(text string) CreateAction {
	return Create(newNotice(StatusInfo, text))
}

func newNotice(status Status, text string) Notice {
	return Notice{
		ID:          uuid.NewString(),
		Status:      status,
		Text:        text,
		ShowDismiss: true,
		CreatedAt:   time.Now(),
	}
}

// Reduce folds notice actions into the slice. The input slice is never mutated.
func Reduce(s Slice, a state.Action) Slice {
	switch a := a.(type) {
	case CreateAction:
		items := make([]Notice, 0, len(s.Items)+1)
		items = append(items, s.Items...)
		items = append(items, a.Notice)
		return Slice{Items: items}
	case RemoveAction:
		items := make([]Notice, 0, len(s.Items))
		for _, n := range s.Items {
			if n.ID != a.NoticeID {
				items = append(items, n)
			}
		}
		return Slice{Items: items}
	}
	return s
}

// Find returns the notice with the given id.
func Find(s Slice, noticeID string) (Notice, bool) {
	for _, n := range s.Items {
		if n.ID == noticeID {
			return n, true
		}
	}
	return Notice{}, false
}
