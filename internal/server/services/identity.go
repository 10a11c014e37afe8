package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/yogatrack/internal/common"
	"github.com/dmitrijs2005/yogatrack/internal/cryptox"
	"github.com/dmitrijs2005/yogatrack/internal/logging"
	"github.com/dmitrijs2005/yogatrack/internal/server/models"
	"github.com/dmitrijs2005/yogatrack/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/yogatrack/internal/timex"
	"github.com/google/uuid"
)

const minPasswordLength = 6

// RegisterRequest carries the registration form.
type RegisterRequest struct {
	UserName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// IdentityService owns accounts and sessions.
type IdentityService struct {
	repomanager repomanager.RepositoryManager
	pepper      string
	log         logging.Logger
	now         func() time.Time
}

// NewIdentityService builds the service. pepper is the application-wide
// secret mixed into every password hash.
func NewIdentityService(m repomanager.RepositoryManager, pepper string, opts ...Option) *IdentityService {
	o := buildOptions(opts)
	return &IdentityService{
		repomanager: m,
		pepper:      pepper,
		log:         o.log.With("service", "identity"),
		now:         o.now,
	}
}

func (s *IdentityService) Register(ctx context.Context, req RegisterRequest) (models.Account, error) {
	if req.UserName == "" || req.Password == "" {
		return models.Account{}, common.ErrMissingCredentials
	}
	if req.Password != req.ConfirmPassword {
		return models.Account{}, common.ErrPasswordMismatch
	}
	if len(req.Password) < minPasswordLength {
		return models.Account{}, common.ErrWeakPassword
	}

	a := models.Account{
		ID:           uuid.NewString(),
		UserName:     req.UserName,
		Email:        req.Email,
		PasswordHash: cryptox.HashPassword(req.Password, s.pepper),
		CreatedAt:    s.now(),
		Active:       true,
		Profile:      map[string]string{"display_name": req.UserName},
	}

	if err := s.repomanager.Accounts().Create(ctx, a); err != nil {
		if errors.Is(err, common.ErrDuplicateUsername) {
			s.log.Warn(ctx, "registration rejected", "username", req.UserName, "reason", "duplicate")
		} else {
			s.log.Error(ctx, "registration failed", "username", req.UserName, "error", err)
		}
		return models.Account{}, err
	}

	s.log.Info(ctx, "account registered", "user_id", a.ID, "username", a.UserName)
	return a.Redacted(), nil
}

// Authenticate checks the credentials and issues a session valid until the
// end of the current calendar day. Unknown users and wrong passwords yield
// the same common.ErrInvalidCredentials.
func (s *IdentityService) Authenticate(ctx context.Context, userName, password string, client models.ClientInfo) (models.Session, error) {
	a, err := s.repomanager.Accounts().GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// hash anyway so that both failure paths cost the same
			_, _ = cryptox.VerifyPassword(dummyHash(), password, s.pepper)
			s.log.Warn(ctx, "login rejected", "username", userName)
			return models.Session{}, common.ErrInvalidCredentials
		}
		return models.Session{}, err
	}

	ok, err := cryptox.VerifyPassword(a.PasswordHash, password, s.pepper)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	if !ok {
		s.log.Warn(ctx, "login rejected", "username", userName)
		return models.Session{}, common.ErrInvalidCredentials
	}
	if !a.Active {
		s.log.Warn(ctx, "login rejected", "username", userName, "reason", "deactivated")
		return models.Session{}, common.ErrAccountDeactivated
	}

	now := s.now()
	if _, err := s.repomanager.Accounts().Update(ctx, a.ID, func(acc *models.Account) error {
		acc.LastLogin = &now
		return nil
	}); err != nil {
		return models.Session{}, err
	}

	token, err := common.MakeRandHexString(common.SessionTokenBytes)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	sess := models.Session{
		ID:        token,
		UserID:    a.ID,
		CreatedAt: now,
		ExpiresAt: timex.EndOfDay(now),
		ClientIP:  client.IP,
		UserAgent: client.UserAgent,
	}
	if err := s.repomanager.Sessions().Create(ctx, sess); err != nil {
		return models.Session{}, err
	}

	s.log.Info(ctx, "login", "user_id", a.ID, "session", common.TokenPrefix(token), "expires_at", sess.ExpiresAt)
	return sess, nil
}

// Validate resolves a session to its account. An expired session is deleted
// before common.ErrSessionExpired is returned.
func (s *IdentityService) Validate(ctx context.Context, sessionID string) (models.Account, error) {
	sess, err := s.repomanager.Sessions().Get(ctx, sessionID)
	if err != nil {
		return models.Account{}, err
	}

	if sess.Expired(s.now()) {
		if _, err := s.repomanager.Sessions().Delete(ctx, sessionID); err != nil {
			return models.Account{}, err
		}
		s.log.Info(ctx, "expired session removed", "user_id", sess.UserID, "session", common.TokenPrefix(sessionID))
		return models.Account{}, common.ErrSessionExpired
	}

	a, err := s.repomanager.Accounts().Get(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, common.ErrAccountNotFound) {
			return models.Account{}, common.ErrNoSuchSession
		}
		return models.Account{}, err
	}
	if !a.Active {
		return models.Account{}, common.ErrAccountDeactivated
	}
	return a.Redacted(), nil
}

// Revoke deletes the session. Unknown ids are not an error.
func (s *IdentityService) Revoke(ctx context.Context, sessionID string) error {
	removed, err := s.repomanager.Sessions().Delete(ctx, sessionID)
	if err != nil {
		return err
	}
	if removed {
		s.log.Info(ctx, "logout", "session", common.TokenPrefix(sessionID))
	}
	return nil
}

func (s *IdentityService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	var verifyErr error
	_, err := s.repomanager.Accounts().Update(ctx, userID, func(a *models.Account) error {
		ok, err := cryptox.VerifyPassword(a.PasswordHash, oldPassword, s.pepper)
		if err != nil {
			verifyErr = err
			return err
		}
		if !ok {
			return common.ErrWrongOldPassword
		}
		if len(newPassword) < minPasswordLength {
			return common.ErrWeakPassword
		}
		a.PasswordHash = cryptox.HashPassword(newPassword, s.pepper)
		return nil
	})
	if verifyErr != nil {
		return fmt.Errorf("%w: %w", common.ErrorInternal, verifyErr)
	}
	if err != nil {
		return err
	}

	s.log.Info(ctx, "password changed", "user_id", userID)
	return nil
}

// SweepExpired deletes every expired session and returns how many went.
func (s *IdentityService) SweepExpired(ctx context.Context) (int, error) {
	now := s.now()
	n, err := s.repomanager.Sessions().DeleteWhere(ctx, func(sess models.Session) bool {
		return sess.Expired(now)
	})
	if err != nil {
		s.log.Error(ctx, "session sweep failed", "error", err)
		return 0, err
	}
	if n > 0 {
		s.log.Info(ctx, "expired sessions swept", "count", n)
	}
	return n, nil
}

func (s *IdentityService) Account(ctx context.Context, userID string) (models.Account, error) {
	a, err := s.repomanager.Accounts().Get(ctx, userID)
	if err != nil {
		return models.Account{}, err
	}
	return a.Redacted(), nil
}

func (s *IdentityService) Profile(ctx context.Context, userID string) (map[string]string, error) {
	a, err := s.Account(ctx, userID)
	if err != nil {
		return nil, err
	}
	return a.Profile, nil
}

// UpdateProfile merges fields into the profile map. An empty value removes
// the key.
func (s *IdentityService) UpdateProfile(ctx context.Context, userID string, fields map[string]string) (models.Account, error) {
	a, err := s.repomanager.Accounts().Update(ctx, userID, func(a *models.Account) error {
		if a.Profile == nil {
			a.Profile = map[string]string{}
		}
		for k, v := range fields {
			if v == "" {
				delete(a.Profile, k)
				continue
			}
			a.Profile[k] = v
		}
		return nil
	})
	if err != nil {
		return models.Account{}, err
	}
	return a.Redacted(), nil
}

// SetActive activates or deactivates an account. Sessions of a deactivated
// account stay stored but no longer validate.
func (s *IdentityService) SetActive(ctx context.Context, userID string, active bool) (models.Account, error) {
	a, err := s.repomanager.Accounts().Update(ctx, userID, func(a *models.Account) error {
		a.Active = active
		return nil
	})
	if err != nil {
		return models.Account{}, err
	}
	s.log.Info(ctx, "account state changed", "user_id", userID, "active", active)
	return a.Redacted(), nil
}

func (s *IdentityService) ListAccounts(ctx context.Context) ([]models.Account, error) {
	list, err := s.repomanager.Accounts().List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i] = list[i].Redacted()
	}
	return list, nil
}

// LookupUserName resolves user ids for the leaderboard.
func (s *IdentityService) LookupUserName(ctx context.Context, userID string) (string, error) {
	a, err := s.repomanager.Accounts().Get(ctx, userID)
	if err != nil {
		return "", err
	}
	return a.UserName, nil
}

func (s *IdentityService) UserStats(ctx context.Context, userID string) (models.UserStats, error) {
	a, err := s.Account(ctx, userID)
	if err != nil {
		return models.UserStats{}, err
	}
	sessions, err := s.repomanager.Sessions().List(ctx)
	if err != nil {
		return models.UserStats{}, err
	}

	now := s.now()
	stats := models.UserStats{Account: a}
	for _, sess := range sessions {
		if sess.UserID == userID && !sess.Expired(now) {
			stats.ActiveSessions++
		}
	}
	return stats, nil
}

// Health sweeps expired sessions and reports the store's size.
func (s *IdentityService) Health(ctx context.Context) (models.Health, error) {
	if _, err := s.SweepExpired(ctx); err != nil {
		return models.Health{}, err
	}
	accounts, err := s.repomanager.Accounts().List(ctx)
	if err != nil {
		return models.Health{}, err
	}
	sessions, err := s.repomanager.Sessions().List(ctx)
	if err != nil {
		return models.Health{}, err
	}
	return models.Health{Users: len(accounts), ActiveSessions: len(sessions)}, nil
}

// dummyHash is verified against when the username is unknown.
var dummyHash = sync.OnceValue(func() string {
	return cryptox.HashPassword("not-a-real-password", "")
})
