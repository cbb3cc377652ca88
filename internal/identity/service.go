// Package identity resolves the current actor: an anonymous visitor
// with a stable locally generated id, or an authenticated user. It is
// constructed once at startup and passed explicitly to every consumer;
// nothing reads identity ambiently.
package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sportbook-io/sportbook-cli/internal/api"
	"github.com/sportbook-io/sportbook-cli/internal/model"
	"github.com/sportbook-io/sportbook-cli/internal/store"
	"go.uber.org/zap"
)

const (
	keyLocalID   = "user.uid"
	keyUserID    = "user.id"
	keyFirstName = "user.firstName"
	keyLastName  = "user.lastName"
)

// Authenticator is the slice of the backend client the service needs.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (api.AccountInfo, error)
	Register(ctx context.Context, name, surname, email, password string) error
}

// Service owns the persisted identity state and the login/logout
// transitions, including the anonymous-reservation linking that must
// complete before a login returns.
type Service struct {
	kv           store.KV
	auth         Authenticator
	reservations *store.ReservationStore
	log          *zap.Logger
}

// New wires an identity service over the local KV state.
func New(kv store.KV, auth Authenticator, reservations *store.ReservationStore, log *zap.Logger) *Service {
	return &Service{kv: kv, auth: auth, reservations: reservations, log: log}
}

// Current returns the active identity. The first call on a fresh state
// directory generates and persists the local id; it survives restarts
// and is lost only when the state file is removed.
func (s *Service) Current() (model.User, error) {
	localID, err := s.localID()
	if err != nil {
		return nil, err
	}
	rawID, ok, err := s.kv.Get(keyUserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return model.Anonymous{LocalID: localID}, nil
	}
	var id int64
	if _, err := fmt.Sscanf(rawID, "%d", &id); err != nil {
		return nil, fmt.Errorf("corrupt user id %q: %w", rawID, err)
	}
	first, _, err := s.kv.Get(keyFirstName)
	if err != nil {
		return nil, err
	}
	last, _, err := s.kv.Get(keyLastName)
	if err != nil {
		return nil, err
	}
	return model.Authenticated{ID: id, LocalID: localID, FirstName: first, LastName: last}, nil
}

func (s *Service) localID() (uuid.UUID, error) {
	raw, ok, err := s.kv.Get(keyLocalID)
	if err != nil {
		return uuid.Nil, err
	}
	if ok {
		if id, err := uuid.Parse(raw); err == nil {
			return id, nil
		}
		// Unparseable uid: regenerate rather than fail every call.
		s.log.Warn("replacing corrupt local id", zap.String("value", raw))
	}
	id := uuid.New()
	if err := s.kv.Set(keyLocalID, id.String()); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Login authenticates, persists the profile and links any anonymous
// reservations held under the local id. Linking failure is logged and
// retried on a later explicit link; it never fails the login. The link
// attempt completes before Login returns so the authenticated listing
// seen next already includes the transferred reservations.
func (s *Service) Login(ctx context.Context, email, password string) (model.Authenticated, error) {
	localID, err := s.localID()
	if err != nil {
		return model.Authenticated{}, err
	}
	info, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return model.Authenticated{}, err
	}
	if err := s.persistProfile(info); err != nil {
		return model.Authenticated{}, err
	}
	if _, err := s.reservations.Link(ctx, info.ID); err != nil {
		s.log.Warn("post-login link failed, local reservations kept", zap.Error(err))
	}
	return model.Authenticated{
		ID:        info.ID,
		LocalID:   localID,
		FirstName: info.FirstName,
		LastName:  info.LastName,
	}, nil
}

func (s *Service) persistProfile(info api.AccountInfo) error {
	if err := s.kv.Set(keyUserID, fmt.Sprintf("%d", info.ID)); err != nil {
		return err
	}
	if err := s.kv.Set(keyFirstName, info.FirstName); err != nil {
		return err
	}
	return s.kv.Set(keyLastName, info.LastName)
}

// Register creates an account; the caller logs in separately.
func (s *Service) Register(ctx context.Context, name, surname, email, password string) error {
	return s.auth.Register(ctx, name, surname, email, password)
}

// Logout clears the authenticated profile and discards the anonymous
// reservation list. The local id is kept. Callers that want to warn
// about unlinked reservations must do so before calling Logout.
func (s *Service) Logout() error {
	for _, key := range []string{keyUserID, keyFirstName, keyLastName} {
		if err := s.kv.Delete(key); err != nil {
			return err
		}
	}
	return s.reservations.Clear()
}
