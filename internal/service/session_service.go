package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/taazabazaar/internal/cache"
	"github.com/taazabazaar/internal/config"
	"github.com/taazabazaar/internal/constants"
	"github.com/taazabazaar/internal/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Session 登录会话（未做签名校验，仅作身份标识）
type Session struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin 是否为管理员会话
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == constants.RoleAdmin
}

// SignInResult 登录结果
type SignInResult struct {
	Token   string   `json:"token"`
	Session *Session `json:"user"`
}

// SignUpInput 注册输入
type SignUpInput struct {
	Phone    string `json:"phone" validate:"required,min=10"`
	Password string `json:"password" validate:"required,min=4"`
	Name     string `json:"name" validate:"required"`
	Address  string `json:"address" validate:"required"`
}

type signInInput struct {
	Phone    string `json:"phone" validate:"required,min=10"`
	Password string `json:"password" validate:"required,min=4"`
}

// SessionService 会话服务
type SessionService struct {
	store         cache.Store
	adminUsername string
	adminHash     []byte
	now           func() time.Time
}

// NewSessionService 创建会话服务，管理员密码在启动时计算 bcrypt 摘要
func NewSessionService(store cache.Store, admin config.AdminConfig) (*SessionService, error) {
	username := strings.TrimSpace(admin.Username)
	if username == "" || admin.Password == "" {
		return nil, fmt.Errorf("admin credentials not configured")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &SessionService{
		store:         store,
		adminUsername: username,
		adminHash:     hash,
		now:           time.Now,
	}, nil
}

// SignIn 顾客登录：手机号至少 10 位，密码至少 4 位
func (s *SessionService) SignIn(ctx context.Context, phone, password string) (*SignInResult, error) {
	input := signInInput{Phone: strings.TrimSpace(phone), Password: password}
	if err := validate.Struct(input); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(ctx, &Session{
		ID:      input.Phone,
		Name:    constants.CustomerDefaultName,
		Phone:   input.Phone,
		Email:   customerEmail(input.Phone),
		Address: constants.CustomerDefaultAddress,
		Role:    constants.RoleCustomer,
	})
}

// SignUp 顾客注册
func (s *SessionService) SignUp(ctx context.Context, input SignUpInput) (*SignInResult, error) {
	input.Phone = strings.TrimSpace(input.Phone)
	input.Name = strings.TrimSpace(input.Name)
	input.Address = strings.TrimSpace(input.Address)
	if err := validate.Struct(input); err != nil {
		return nil, validationError(err)
	}
	return s.issue(ctx, &Session{
		ID:      input.Phone,
		Name:    input.Name,
		Phone:   input.Phone,
		Email:   customerEmail(input.Phone),
		Address: input.Address,
		Role:    constants.RoleCustomer,
	})
}

// SignInAdmin 管理员登录
func (s *SessionService) SignInAdmin(ctx context.Context, username, password string) (*SignInResult, error) {
	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(s.adminUsername)) == 1
	passErr := bcrypt.CompareHashAndPassword(s.adminHash, []byte(password))
	if !userOK || passErr != nil {
		logger.Warnw("admin_sign_in_rejected", "username", username)
		return nil, ErrInvalidCredentials
	}
	return s.issue(ctx, &Session{
		ID:      constants.AdminSessionID,
		Name:    constants.AdminDefaultName,
		Phone:   constants.AdminDefaultPhone,
		Address: constants.AdminDefaultAddress,
		Role:    constants.RoleAdmin,
	})
}

// Resolve 根据 token 读取会话
func (s *SessionService) Resolve(ctx context.Context, token string) (*Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrNotLoggedIn
	}
	var session Session
	ok, err := cache.GetJSON(ctx, s.store, sessionKey(token), &session)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

// SignOut 删除会话，token 不存在时视为成功
func (s *SessionService) SignOut(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return s.store.Delete(ctx, sessionKey(token))
}

func (s *SessionService) issue(ctx context.Context, session *Session) (*SignInResult, error) {
	session.CreatedAt = s.now()
	token := uuid.NewString()
	if err := cache.SetJSON(ctx, s.store, sessionKey(token), session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	logger.Infow("session_created", "user_id", session.ID, "role", session.Role)
	return &SignInResult{Token: token, Session: session}, nil
}

func sessionKey(token string) string {
	return cache.Key(constants.StorageKeySession, token)
}

func customerEmail(phone string) string {
	return phone + "@" + constants.CustomerEmailDomain
}
