// Package services – SessionService
//
// Demo-grade login for the shelter surface. There is no real authentication
// (an explicit non-goal): any non-empty username/password pair is accepted,
// and the session facts other surfaces read are written to the store.
package services

import (
	"context"
	"strings"

	"github.com/replate/replate-backend/internal/domain"
	"github.com/replate/replate-backend/internal/store"
)

// Fixed demo identity recorded on shelter login.
const (
	demoShelterName  = "The Osborn"
	demoEmployeeName = "Mark Johnson"
	demoEmployeeRole = "Distribution Manager"
)

// Session is the logged-in state other surfaces read from the store.
type Session struct {
	UserType    string          `json:"user_type,omitempty"`
	ShelterName string          `json:"shelter_name,omitempty"`
	Employee    domain.Employee `json:"employee"`
}

// SessionService records and reads the demo session.
type SessionService struct {
	// Store is the persisted key-value store holding the session facts.
	Store store.Store
}

// NewSessionService constructs a SessionService.
func NewSessionService(st store.Store) *SessionService {
	return &SessionService{Store: st}
}

// LoginShelter validates that credentials are non-empty and records the demo
// shelter session.
func (s *SessionService) LoginShelter(ctx context.Context, username, password string) (*Session, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return nil, ErrMissingCredentials
	}

	sess := &Session{
		UserType:    "shelter",
		ShelterName: demoShelterName,
		Employee:    domain.Employee{Name: demoEmployeeName, Role: demoEmployeeRole},
	}
	if err := s.Store.Set(ctx, store.KeyUserType, sess.UserType); err != nil {
		return nil, err
	}
	if err := s.Store.Set(ctx, store.KeyShelterName, sess.ShelterName); err != nil {
		return nil, err
	}
	if err := s.Store.Set(ctx, store.KeyShelterEmployee, sess.Employee); err != nil {
		return nil, err
	}
	return sess, nil
}

// Logout clears the recorded session facts.
func (s *SessionService) Logout(ctx context.Context) error {
	for _, key := range []string{store.KeyUserType, store.KeyShelterName, store.KeyShelterEmployee} {
		if err := s.Store.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// Current returns whatever session facts are recorded; zero values mean no
// one is logged in.
func (s *SessionService) Current(ctx context.Context) (*Session, error) {
	var sess Session
	if _, err := s.Store.Get(ctx, store.KeyUserType, &sess.UserType); err != nil {
		return nil, err
	}
	if _, err := s.Store.Get(ctx, store.KeyShelterName, &sess.ShelterName); err != nil {
		return nil, err
	}
	if _, err := s.Store.Get(ctx, store.KeyShelterEmployee, &sess.Employee); err != nil {
		return nil, err
	}
	return &sess, nil
}
