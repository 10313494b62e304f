package models

import (
	"errors"
	"fmt"
)

type ProjectStatus string

const (
	ProjectPending  ProjectStatus = "pending"
	ProjectApproved ProjectStatus = "approved"
	ProjectRejected ProjectStatus = "rejected"
	ProjectClosed   ProjectStatus = "closed"
)

type ApplicationStatus string

const (
	ApplicationApplied  ApplicationStatus = "applied"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

var ErrInvalidTransition = errors.New("invalid status transition")

var projectTransitions = map[ProjectStatus]map[ProjectStatus]struct{}{
	ProjectPending: {
		ProjectApproved: {},
		ProjectRejected: {},
	},
	ProjectApproved: {
		ProjectClosed: {},
	},
	ProjectRejected: {},
	ProjectClosed:   {},
}

var applicationTransitions = map[ApplicationStatus]map[ApplicationStatus]struct{}{
	ApplicationApplied: {
		ApplicationAccepted: {},
		ApplicationRejected: {},
	},
	ApplicationAccepted: {},
	ApplicationRejected: {},
}

func (s ProjectStatus) Valid() bool {
	_, ok := projectTransitions[s]
	return ok
}

// Public reports whether projects in this state are listed to everyone.
func (s ProjectStatus) Public() bool {
	return s == ProjectApproved || s == ProjectClosed
}

func (s ProjectStatus) Terminal() bool {
	return s.Valid() && len(projectTransitions[s]) == 0
}

func (s ApplicationStatus) Valid() bool {
	_, ok := applicationTransitions[s]
	return ok
}

func ValidateProjectTransition(from, to ProjectStatus) error {
	if !from.Valid() {
		return fmt.Errorf("invalid project status: %q", from)
	}
	if !to.Valid() {
		return fmt.Errorf("invalid project status: %q", to)
	}
	if _, ok := projectTransitions[from][to]; !ok {
		return fmt.Errorf("%w: project %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

func ValidateApplicationTransition(from, to ApplicationStatus) error {
	if !from.Valid() {
		return fmt.Errorf("invalid application status: %q", from)
	}
	if !to.Valid() {
		return fmt.Errorf("invalid application status: %q", to)
	}
	if _, ok := applicationTransitions[from][to]; !ok {
		return fmt.Errorf("%w: application %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
