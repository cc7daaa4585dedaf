package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the lifecycle marker of a sales ticket.
type Status string

const (
	StatusNew        Status = "New"
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

// ErrInvalidTransition is returned when a status change is not allowed from the current status.
var ErrInvalidTransition = errors.New("invalid ticket status transition")

var transitions = map[Status][]Status{
	StatusNew:        {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// ParseStatus accepts the status names case-insensitively.
func ParseStatus(raw string) (Status, error) {
	for _, s := range []Status{StatusNew, StatusInProgress, StatusCompleted, StatusCancelled} {
		if strings.EqualFold(strings.TrimSpace(raw), string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown ticket status %q", raw)
}

// CanTransitionTo reports whether next is reachable in one step. Staying put is always allowed.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

func (s Status) String() string { return string(s) }
