package account

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sort"
	"time"

	"github.com/nakliye-kontrol-api/internal/domain"
	"github.com/nakliye-kontrol-api/internal/pkg/id"
	"github.com/nakliye-kontrol-api/internal/pkg/identifier"
	"golang.org/x/crypto/bcrypt"
)

const codeTTL = 10 * time.Minute

type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req domain.LoginRequest) (string, *domain.User, error)
	Verify(ctx context.Context, identifier, code string) error
	ForgotPassword(ctx context.Context, identifier string) error
	ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
	ResendVerification(ctx context.Context, identifier string) error
	CurrentUser(ctx context.Context, subject string) (*domain.User, error)
}

type userStore interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	MarkVerified(ctx context.Context, userID string, at time.Time) error
	SetPasswordHash(ctx context.Context, userID, hash string) error
}

type codeStore interface {
	Put(ctx context.Context, v *domain.VerificationCode) error
	FindUnused(ctx context.Context, identifier string) ([]domain.VerificationCode, error)
	Consume(ctx context.Context, codeID string, usedAt time.Time) error
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type tokenSigner interface {
	Sign(subject string) (string, error)
}

type service struct {
	users      userStore
	codes      codeStore
	mailer     mailer
	smsSender  smsSender
	signer     tokenSigner
	autoVerify bool
}

type ServiceDeps struct {
	UserRepo  userStore
	CodeRepo  codeStore
	Mailer    mailer
	SMSSender smsSender
	Signer    tokenSigner

	// AutoVerify marks new accounts verified at registration and disables
	// the login-time verification gate.
	AutoVerify bool
}

func NewService(deps ServiceDeps) Service {
	return &service{
		users:      deps.UserRepo,
		codes:      deps.CodeRepo,
		mailer:     deps.Mailer,
		smsSender:  deps.SMSSender,
		signer:     deps.Signer,
		autoVerify: deps.AutoVerify,
	}
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	if req.Email == "" && req.Phone == "" {
		return nil, fmt.Errorf("email veya telefon gerekli: %w", domain.ErrBadRequest)
	}

	email := ""
	if req.Email != "" {
		if !identifier.IsValidEmail(req.Email) {
			return nil, fmt.Errorf("geçersiz email formatı: %w", domain.ErrBadRequest)
		}
		email = canonicalEmail(req.Email)
		if _, err := s.users.GetByEmail(ctx, email); err == nil {
			return nil, fmt.Errorf("bu email zaten kayıtlı: %w", domain.ErrConflict)
		}
	}

	phone := ""
	if req.Phone != "" {
		if !identifier.IsValidPhone(req.Phone) {
			return nil, fmt.Errorf("geçersiz telefon formatı: %w", domain.ErrBadRequest)
		}
		phone = identifier.NormalizePhone(req.Phone)
		if _, err := s.users.GetByPhone(ctx, phone); err == nil {
			return nil, fmt.Errorf("bu telefon zaten kayıtlı: %w", domain.ErrConflict)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Email:        email,
		Phone:        phone,
		FullName:     req.FullName,
		PasswordHash: string(hash),
		IsVerified:   s.autoVerify,
		CreatedAt:    now,
	}
	if s.autoVerify {
		u.VerifiedAt = &now
	}
	if err := s.users.Put(ctx, u); err != nil {
		return nil, err
	}

	if !s.autoVerify {
		s.issueAndDispatch(ctx, u, verificationPurpose(u))
	}
	return u, nil
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (string, *domain.User, error) {
	canonical, u, err := s.findByIdentifier(ctx, req.Identifier)
	if err != nil {
		return "", nil, fmt.Errorf("email/telefon veya şifre hatalı: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, fmt.Errorf("email/telefon veya şifre hatalı: %w", domain.ErrUnauthorized)
	}
	if !s.autoVerify && !u.IsVerified {
		return "", nil, fmt.Errorf("hesap doğrulanmamış: %w", domain.ErrUnauthorized)
	}
	token, err := s.signer.Sign(canonical)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *service) Verify(ctx context.Context, ident, code string) error {
	userID, err := s.redeem(ctx, ident, code,
		domain.PurposeEmailVerification, domain.PurposePhoneVerification)
	if err != nil {
		return err
	}
	return s.users.MarkVerified(ctx, userID, time.Now().UTC())
}

// ForgotPassword always reports success to the caller: an unknown identifier
// must be indistinguishable from a known one to prevent account enumeration.
func (s *service) ForgotPassword(ctx context.Context, ident string) error {
	_, u, err := s.findByIdentifier(ctx, ident)
	if err != nil {
		slog.Info("password reset requested for unknown identifier")
		return nil
	}
	s.issueAndDispatch(ctx, u, domain.PurposePasswordReset)
	return nil
}

func (s *service) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	userID, err := s.redeem(ctx, req.Identifier, req.Code, domain.PurposePasswordReset)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.SetPasswordHash(ctx, userID, string(hash))
}

func (s *service) ResendVerification(ctx context.Context, ident string) error {
	_, u, err := s.findByIdentifier(ctx, ident)
	if err != nil {
		return fmt.Errorf("kullanıcı bulunamadı: %w", domain.ErrNotFound)
	}
	if u.IsVerified {
		return fmt.Errorf("hesap zaten doğrulanmış: %w", domain.ErrBadRequest)
	}
	s.issueAndDispatch(ctx, u, verificationPurpose(u))
	return nil
}

func (s *service) CurrentUser(ctx context.Context, subject string) (*domain.User, error) {
	_, u, err := s.findByIdentifier(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("kullanıcı bulunamadı: %w", domain.ErrUnauthorized)
	}
	return u, nil
}

// findByIdentifier classifies once and returns the canonical form alongside
// the user, so callers never re-classify downstream.
func (s *service) findByIdentifier(ctx context.Context, ident string) (string, *domain.User, error) {
	kind, canonical := identifier.Classify(ident)
	var u *domain.User
	var err error
	if kind == identifier.KindEmail {
		u, err = s.users.GetByEmail(ctx, canonical)
	} else {
		u, err = s.users.GetByPhone(ctx, canonical)
	}
	if err != nil {
		return "", nil, err
	}
	return canonical, u, nil
}

// redeem finds an unused code for the identifier matching one of the given
// purposes and consumes it. The consume step is a conditional store update,
// so concurrent redemptions of the same code yield exactly one winner.
// Expired codes are reported but left unconsumed; the store TTL reaps them.
func (s *service) redeem(ctx context.Context, ident, code string, purposes ...string) (string, error) {
	_, canonical := identifier.Classify(ident)
	candidates, err := s.codes.FindUnused(ctx, canonical)
	if err != nil {
		return "", err
	}

	matched := candidates[:0]
	for _, c := range candidates {
		if c.Code == code && purposeMatches(c.Purpose, purposes) {
			matched = append(matched, c)
		}
	}
	if len(matched) == 0 {
		return "", fmt.Errorf("geçersiz doğrulama kodu: %w", domain.ErrNotFound)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	best := matched[0]

	now := time.Now().UTC()
	if now.Unix() >= best.ExpiresAt {
		return "", fmt.Errorf("doğrulama kodunun süresi dolmuş: %w", domain.ErrExpired)
	}
	if err := s.codes.Consume(ctx, best.CodeID, now); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Lost the race: someone consumed this code first.
			return "", fmt.Errorf("geçersiz doğrulama kodu: %w", domain.ErrNotFound)
		}
		return "", err
	}
	return best.UserID, nil
}

// issueAndDispatch creates a fresh code and hands it to the notification
// gateway. Dispatch failures are logged, never surfaced: the code stays
// redeemable and the caller's request must not fail because a relay is down.
func (s *service) issueAndDispatch(ctx context.Context, u *domain.User, purpose string) {
	target := u.Email
	if purpose == domain.PurposePhoneVerification || (purpose == domain.PurposePasswordReset && u.Email == "") {
		target = u.Phone
	}

	code, err := generateCode()
	if err != nil {
		slog.Error("failed to generate verification code", "user_id", u.UserID, "err", err)
		return
	}
	now := time.Now().UTC()
	v := &domain.VerificationCode{
		CodeID:     id.New(),
		UserID:     u.UserID,
		Code:       code,
		Purpose:    purpose,
		Identifier: target,
		Used:       false,
		CreatedAt:  now,
		ExpiresAt:  now.Add(codeTTL).Unix(),
	}
	if err := s.codes.Put(ctx, v); err != nil {
		slog.Error("failed to persist verification code", "user_id", u.UserID, "err", err)
		return
	}

	if err := s.dispatch(ctx, u, target, code, purpose); err != nil {
		slog.Warn("failed to dispatch verification code", "user_id", u.UserID, "purpose", purpose, "err", err)
	}
}

func (s *service) dispatch(ctx context.Context, u *domain.User, target, code, purpose string) error {
	kind, _ := identifier.Classify(target)
	if kind == identifier.KindEmail {
		subject, body := emailMessage(u.FullName, code, purpose)
		return s.mailer.SendEmail(target, subject, body)
	}
	if s.smsSender == nil {
		return fmt.Errorf("sms sender not configured")
	}
	return s.smsSender.SendSMS(ctx, target, smsMessage(code, purpose))
}

// verificationPurpose picks the purpose tag for a fresh account by its
// primary identifier. Accounts created with both get the email flow.
func verificationPurpose(u *domain.User) string {
	if u.Email != "" {
		return domain.PurposeEmailVerification
	}
	return domain.PurposePhoneVerification
}

func purposeMatches(purpose string, allowed []string) bool {
	for _, p := range allowed {
		if purpose == p {
			return true
		}
	}
	return false
}

// generateCode returns a uniform 6-digit code from a CSPRNG.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func canonicalEmail(s string) string {
	_, c := identifier.Classify(s)
	return c
}
