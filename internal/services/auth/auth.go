// Package auth содержит логику бизнес-уровня для работы с учётными записями:
// регистрацию, вход, чтение и обновление профиля, смену пароля.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	jwtlib "github.com/cod-analytics/backend/internal/lib/jwt"
	"github.com/cod-analytics/backend/internal/lib/password"
	"github.com/cod-analytics/backend/internal/models"
	"github.com/cod-analytics/backend/internal/storage"
)

// ErrInvalidCredentials возвращается при неверном пароле или неизвестном email.
// Ответ клиенту одинаков в обоих случаях.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в хранилище.
type UserRepository interface {
	// CreateUser атомарно сохраняет пользователя и его пробную подписку.
	CreateUser(ctx context.Context, user models.User, sub models.Subscription) error
	// GetUserByEmail возвращает пользователя или storage.ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateUser обновляет профиль пользователя.
	UpdateUser(ctx context.Context, user models.User) error
	// UpdateUserPassword заменяет хэш пароля.
	UpdateUserPassword(ctx context.Context, email, passwordHash string) error
}

// SubscriptionProvider описывает нужную auth-сервису часть машины состояний подписки.
type SubscriptionProvider interface {
	NewTrial(email string) models.Subscription
	Current(ctx context.Context, email string) (*models.Subscription, error)
	View(user *models.User, sub *models.Subscription) models.UserView
}

// Service отвечает за регистрацию, авторизацию и операции с профилем.
type Service struct {
	users       UserRepository
	subs        SubscriptionProvider
	jwtMaker    jwtlib.Maker
	tokenTTL    time.Duration // обычная сессия
	rememberTTL time.Duration // постоянная сессия: "запомнить меня" и регистрация
	log         *slog.Logger
}

// New создает новый экземпляр Service.
func New(users UserRepository, subs SubscriptionProvider, jwtMaker jwtlib.Maker,
	tokenTTL, rememberTTL time.Duration, log *slog.Logger) *Service {
	return &Service{
		users:       users,
		subs:        subs,
		jwtMaker:    jwtMaker,
		tokenTTL:    tokenTTL,
		rememberTTL: rememberTTL,
		log:         log,
	}
}

// Signup регистрирует нового пользователя: хэширует пароль, создаёт учётную
// запись вместе с пробной подпиской и выдаёт долгоживущий токен.
// Возвращает storage.ErrUserExists, если email уже занят.
func (s *Service) Signup(ctx context.Context, name, email, rawPassword, company, phone string) (string, models.UserView, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", models.UserView{}, err
	}

	user := models.User{
		UID:          uuid.NewString(),
		Email:        email,
		Name:         name,
		Company:      company,
		Phone:        phone,
		PasswordHash: hashed,
		CreatedAt:    time.Now().UTC(),
	}
	sub := s.subs.NewTrial(email)

	if err := s.users.CreateUser(ctx, user, sub); err != nil {
		return "", models.UserView{}, err
	}

	token, err := s.jwtMaker.GenerateToken(email, name, s.rememberTTL)
	if err != nil {
		return "", models.UserView{}, err
	}

	s.log.Info("user registered", slog.String("email", email))
	return token, s.subs.View(&user, &sub), nil
}

// Login проверяет пароль пользователя, применяет ленивую проверку истечения
// пробного периода и выдаёт токен. Срок жизни токена зависит от remember.
func (s *Service) Login(ctx context.Context, email, rawPassword string, remember bool) (string, models.UserView, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrUserNotFound) {
		return "", models.UserView{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", models.UserView{}, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", models.UserView{}, ErrInvalidCredentials
	}

	sub, err := s.subs.Current(ctx, email)
	if err != nil {
		return "", models.UserView{}, err
	}

	ttl := s.tokenTTL
	if remember {
		ttl = s.rememberTTL
	}
	token, err := s.jwtMaker.GenerateToken(user.Email, user.Name, ttl)
	if err != nil {
		return "", models.UserView{}, err
	}

	return token, s.subs.View(user, sub), nil
}

// Profile возвращает представление профиля вместе с актуальным статусом подписки.
func (s *Service) Profile(ctx context.Context, email string) (models.UserView, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return models.UserView{}, err
	}
	sub, err := s.subs.Current(ctx, email)
	if err != nil {
		return models.UserView{}, err
	}
	return s.subs.View(user, sub), nil
}

// UpdateProfile выполняет частичное обновление профиля:
// пустые поля сохраняют прежние значения и никогда не затираются.
func (s *Service) UpdateProfile(ctx context.Context, email, name, company, phone string) (models.UserView, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return models.UserView{}, err
	}

	if name != "" {
		user.Name = name
	}
	if company != "" {
		user.Company = company
	}
	if phone != "" {
		user.Phone = phone
	}

	if err := s.users.UpdateUser(ctx, *user); err != nil {
		return models.UserView{}, err
	}

	sub, err := s.subs.Current(ctx, email)
	if err != nil {
		return models.UserView{}, err
	}
	return s.subs.View(user, sub), nil
}

// ChangePassword заменяет пароль пользователя после проверки текущего.
// Возвращает ErrInvalidCredentials, если текущий пароль не совпадает с хэшем.
func (s *Service) ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := password.CompareHash(user.PasswordHash, currentPassword); err != nil {
		return ErrInvalidCredentials
	}

	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdateUserPassword(ctx, email, hashed); err != nil {
		return err
	}

	s.log.Info("password changed", slog.String("email", email))
	return nil
}
