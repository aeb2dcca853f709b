package service

import (
	"context"
	"time"

	"github.com/taskmanager/taskmanager/config"
	"github.com/taskmanager/taskmanager/database"
	"github.com/taskmanager/taskmanager/database/model"
	"github.com/taskmanager/taskmanager/logger"
	"github.com/taskmanager/taskmanager/util/crypto"
	"github.com/taskmanager/taskmanager/util/random"
	"github.com/taskmanager/taskmanager/web/cache"
)

const (
	tokenLength     = 32
	sessionCacheTTL = time.Minute
)

// AuthSession is a valid session together with its user.
type AuthSession struct {
	Session model.Session `json:"session"`
	User    model.User    `json:"user"`
}

// AuthService issues and validates sign-in sessions stored in the session table.
type AuthService struct {
	maxAge    time.Duration
	updateAge time.Duration
	cache     *cache.Memory[*AuthSession]
	now       func() time.Time
}

func NewAuthService() *AuthService {
	return NewAuthServiceWithAges(config.GetSessionMaxAge(), config.GetSessionUpdateAge())
}

func NewAuthServiceWithAges(maxAge, updateAge time.Duration) *AuthService {
	return &AuthService{
		maxAge:    maxAge,
		updateAge: updateAge,
		cache:     cache.NewMemory[*AuthSession](sessionCacheTTL, 5*time.Minute),
		now:       time.Now,
	}
}

func (s *AuthService) MaxAge() time.Duration { return s.maxAge }

// SignIn checks the e-mail and password against the user's credential account
// and opens a new session.
func (s *AuthService) SignIn(ctx context.Context, email, password, ip, userAgent string) (*AuthSession, error) {
	db := database.GetDB().WithContext(ctx)

	user := model.User{}
	err := db.Where("email = ?", normalizeEmail(email)).First(&user).Error
	if database.IsNotFound(err) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	account := model.Account{}
	err = db.Where("user_id = ? AND provider_id = ?", user.Id, model.CredentialProvider).First(&account).Error
	if database.IsNotFound(err) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !crypto.CheckPasswordHash(account.Password, password) {
		return nil, ErrInvalidCredentials
	}

	session := model.Session{
		Token:     random.Seq(tokenLength),
		ExpiresAt: s.now().Add(s.maxAge),
		IpAddress: ip,
		UserAgent: userAgent,
		UserId:    user.Id,
	}
	if err := db.Create(&session).Error; err != nil {
		return nil, err
	}
	auth := &AuthSession{Session: session, User: user}
	s.cache.Set(session.Token, auth)
	return auth, nil
}

// GetSession resolves a token to its session and user. A session older than
// the update age has its expiry pushed to now plus the max age.
func (s *AuthService) GetSession(ctx context.Context, token string) (*AuthSession, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	now := s.now()
	if cached, ok := s.cache.Get(token); ok {
		if cached.Session.Expired(now) {
			s.cache.Delete(token)
			return nil, ErrSessionNotFound
		}
		if !s.needsRefresh(&cached.Session, now) {
			return cached, nil
		}
	}

	db := database.GetDB().WithContext(ctx)
	session := model.Session{}
	err := db.Preload("User").Where("token = ?", token).First(&session).Error
	if database.IsNotFound(err) {
		s.cache.Delete(token)
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	if session.Expired(now) || session.User == nil {
		s.cache.Delete(token)
		return nil, ErrSessionNotFound
	}

	if s.needsRefresh(&session, now) {
		expiresAt := now.Add(s.maxAge)
		err := db.Model(&model.Session{}).
			Where("id = ?", session.Id).
			Updates(map[string]any{"expires_at": expiresAt, "updated_at": now}).
			Error
		if err != nil {
			return nil, err
		}
		session.ExpiresAt = expiresAt
		session.UpdatedAt = now
	}

	user := *session.User
	session.User = nil
	auth := &AuthSession{Session: session, User: user}
	s.cache.Set(token, auth)
	return auth, nil
}

func (s *AuthService) needsRefresh(session *model.Session, now time.Time) bool {
	refreshAt := session.ExpiresAt.Add(-s.maxAge).Add(s.updateAge)
	return !refreshAt.After(now)
}

func (s *AuthService) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	s.cache.Delete(token)
	return database.GetDB().WithContext(ctx).Where("token = ?", token).Delete(&model.Session{}).Error
}

// InvalidateUser drops the cached sessions of a user so the next request
// rereads the user from the database.
func (s *AuthService) InvalidateUser(userID string) {
	if s == nil {
		return
	}
	n := s.cache.DeleteFunc(func(_ string, a *AuthSession) bool {
		return a.User.Id == userID
	})
	if n > 0 {
		logger.Debugf("dropped %d cached sessions of user %s", n, userID)
	}
}

// CleanupExpired deletes expired sessions and verification records.
func (s *AuthService) CleanupExpired(ctx context.Context) (sessions int64, verifications int64, err error) {
	db := database.GetDB().WithContext(ctx)
	now := s.now()

	res := db.Where("expires_at <= ?", now).Delete(&model.Session{})
	if res.Error != nil {
		return 0, 0, res.Error
	}
	sessions = res.RowsAffected

	res = db.Where("expires_at <= ?", now).Delete(&model.Verification{})
	if res.Error != nil {
		return sessions, 0, res.Error
	}
	verifications = res.RowsAffected

	s.cache.DeleteFunc(func(_ string, a *AuthSession) bool {
		return a.Session.Expired(now)
	})
	return sessions, verifications, nil
}
