package engine

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dmoraes/inscrito/internal/identity"
	"github.com/dmoraes/inscrito/internal/journal"
	"github.com/dmoraes/inscrito/internal/model"
)

// RegisterProfileInput carries the values for a profile registration.
// Course applies to students only and is ignored for coordinators.
type RegisterProfileInput struct {
	Name   string
	Email  string
	Course string
}

// RegisterStudent adds a student profile with a fresh sequential id.
func (e *Engine) RegisterStudent(ctx context.Context, in RegisterProfileInput) (*model.Profile, error) {
	return e.register(ctx, model.RoleStudent, in)
}

// RegisterCoordinator adds a coordinator profile with a fresh sequential id.
func (e *Engine) RegisterCoordinator(ctx context.Context, in RegisterProfileInput) (*model.Profile, error) {
	in.Course = ""
	return e.register(ctx, model.RoleCoordinator, in)
}

func (e *Engine) register(ctx context.Context, role model.Role, in RegisterProfileInput) (*model.Profile, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, newError(CodeInvalidInput, "profile name is required")
	}
	email := strings.TrimSpace(in.Email)
	if !identity.ValidEmail(email) {
		return nil, newError(CodeInvalidInput, "email %q is not a valid address", in.Email)
	}

	students, coordinators, err := e.loadProfiles()
	if err != nil {
		return nil, err
	}

	// Emails are unique case-insensitively across BOTH collections.
	normalized := identity.NormalizeEmail(email)
	for _, collection := range []model.ProfileMap{students, coordinators} {
		for _, p := range collection {
			if identity.NormalizeEmail(p.Email) == normalized {
				return nil, newError(CodeDuplicateEmail, "email %q is already registered", email)
			}
		}
	}

	target := students
	if role == model.RoleCoordinator {
		target = coordinators
	}
	id, err := identity.NextID(target.IDs())
	if err != nil {
		return nil, fmt.Errorf("generate %s id: %w", role, err)
	}

	profile := &model.Profile{
		ID:     id,
		Name:   name,
		Email:  email,
		Course: strings.TrimSpace(in.Course),
		Events: []string{},
	}
	target[id] = profile

	if role == model.RoleCoordinator {
		err = e.store.SaveCoordinators(coordinators)
	} else {
		err = e.store.SaveStudents(students)
	}
	if err != nil {
		return nil, err
	}

	e.record(ctx, journal.OpProfileRegistered, "profile", id, map[string]string{
		"role":  string(role),
		"email": normalized,
	})
	out := *profile
	return &out, nil
}

// GetStudent returns one student profile.
func (e *Engine) GetStudent(ctx context.Context, id string) (*model.Profile, error) {
	students, err := e.store.LoadStudents()
	if err != nil {
		return nil, err
	}
	p, ok := students[id]
	if !ok {
		return nil, NewNotFound("student", id)
	}
	out := *p
	return &out, nil
}

// ListProfiles returns one collection ordered by numeric id.
func (e *Engine) ListProfiles(ctx context.Context, role model.Role) ([]model.Profile, error) {
	var (
		m   model.ProfileMap
		err error
	)
	if role == model.RoleCoordinator {
		m, err = e.store.LoadCoordinators()
	} else {
		m, err = e.store.LoadStudents()
	}
	if err != nil {
		return nil, err
	}

	out := make([]model.Profile, 0, len(m))
	for _, p := range m {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		a, errA := strconv.Atoi(out[i].ID)
		b, errB := strconv.Atoi(out[j].ID)
		if errA != nil || errB != nil {
			return out[i].ID < out[j].ID
		}
		return a < b
	})
	return out, nil
}
