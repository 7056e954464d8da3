// internal/domain/user/service.go
package user

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/tochayanroy/ecomapp-backend/internal/config"
	"github.com/tochayanroy/ecomapp-backend/internal/pkg/auth"
	"github.com/tochayanroy/ecomapp-backend/internal/pkg/email"
	"gorm.io/gorm"
)

// Service handles user business logic
type Service struct {
	db              *gorm.DB
	redisClient     *redis.Client
	config          *config.Config
	passwordManager *auth.PasswordManager
	jwtManager      *auth.JWTManager
	emailService    *email.Service
}

// NewService creates a new user service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:              db,
		redisClient:     redisClient,
		config:          cfg,
		passwordManager: auth.NewPasswordManager(cfg),
		jwtManager:      auth.NewJWTManager(cfg),
		emailService:    email.NewService(cfg),
	}
}

// RegisterRequest represents user registration data
type RegisterRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	PhoneNumber string `json:"phone_number"`
}

// LoginRequest represents user login data
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// VerifyOTPRequest represents email verification data
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Register creates a new unverified user account and emails an OTP
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	// Stored emails are lowercase, so lookups must use the same form
	req.Email = strings.ToLower(req.Email)

	// Check if user already exists
	var existingUser User
	result := s.db.Where("email = ?", req.Email).First(&existingUser)
	if result.Error == nil {
		return nil, fmt.Errorf("user with this email already exists")
	}

	// Hash password
	hashedPassword, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := User{
		Username:    req.Username,
		Email:       req.Email,
		Password:    hashedPassword,
		PhoneNumber: req.PhoneNumber,
		Role:        RoleUser,
		IsVerified:  false,
		IsActive:    true,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Issue verification OTP; registration still succeeds if email delivery fails
	if err := s.SendVerificationOTP(ctx, &user); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Warn("failed to send verification OTP")
	}

	user.Password = ""
	return &user, nil
}

// SendVerificationOTP generates a fresh OTP, stores it with a TTL and mails it
func (s *Service) SendVerificationOTP(ctx context.Context, u *User) error {
	if u.IsVerified {
		return fmt.Errorf("email is already verified")
	}

	otp, err := generateOTP(6)
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	// OTP expires automatically; a resend overwrites the previous code
	key := otpKey(u.ID)
	if err := s.redisClient.Set(ctx, key, otp, s.config.Security.OTPExpiry).Err(); err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}

	if err := s.emailService.SendVerificationOTP(ctx, u.Email, u.Username, otp, s.config.Security.OTPExpiry); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}

	return nil
}

// ResendOTP re-issues a verification OTP for an unverified account
func (s *Service) ResendOTP(ctx context.Context, emailAddr string) error {
	var user User
	result := s.db.Where("email = ?", strings.ToLower(emailAddr)).First(&user)
	if result.Error != nil {
		return fmt.Errorf("user not found")
	}

	return s.SendVerificationOTP(ctx, &user)
}

// VerifyOTP checks the submitted OTP and marks the user verified
func (s *Service) VerifyOTP(ctx context.Context, req *VerifyOTPRequest) (*User, error) {
	var user User
	result := s.db.Where("email = ?", strings.ToLower(req.Email)).First(&user)
	if result.Error != nil {
		return nil, fmt.Errorf("user not found")
	}

	if user.IsVerified {
		return nil, fmt.Errorf("email is already verified")
	}

	key := otpKey(user.ID)
	storedOTP, err := s.redisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("OTP expired or not found, please request a new one")
	} else if err != nil {
		return nil, fmt.Errorf("failed to retrieve OTP: %w", err)
	}

	if storedOTP != req.OTP {
		return nil, fmt.Errorf("invalid OTP")
	}

	if err := s.db.Model(&user).Update("is_verified", true).Error; err != nil {
		return nil, fmt.Errorf("failed to verify email: %w", err)
	}

	// One-shot code
	s.redisClient.Del(ctx, key)

	user.IsVerified = true
	user.Password = ""
	return &user, nil
}

// Login authenticates a verified user
func (s *Service) Login(req *LoginRequest) (*AuthResponse, error) {
	var user User
	result := s.db.Where("email = ? AND is_active = ?", strings.ToLower(req.Email), true).First(&user)
	if result.Error != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := s.passwordManager.VerifyPassword(req.Password, user.Password); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if !user.IsVerified {
		return nil, fmt.Errorf("email is not verified")
	}

	return s.issueTokens(&user)
}

// RefreshToken generates new tokens using a refresh token
func (s *Service) RefreshToken(refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	var user User
	result := s.db.Where("id = ? AND is_active = ?", claims.UserID, true).First(&user)
	if result.Error != nil {
		return nil, fmt.Errorf("user not found or inactive")
	}

	return s.issueTokens(&user)
}

// GetProfile gets user profile by ID
func (s *Service) GetProfile(userID uint) (*User, error) {
	var user User
	result := s.db.Where("id = ? AND is_active = ?", userID, true).First(&user)
	if result.Error != nil {
		return nil, fmt.Errorf("user not found")
	}

	user.Password = ""
	return &user, nil
}

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	Username    *string `json:"username"`
	PhoneNumber *string `json:"phone_number"`
}

// UpdateProfile updates user profile
func (s *Service) UpdateProfile(userID uint, req *UpdateProfileRequest) (*User, error) {
	var user User
	result := s.db.Where("id = ? AND is_active = ?", userID, true).First(&user)
	if result.Error != nil {
		return nil, fmt.Errorf("user not found")
	}

	updates := make(map[string]interface{})
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	user.Password = ""
	return &user, nil
}

// ChangePassword changes user password after verifying the current one
func (s *Service) ChangePassword(userID uint, currentPassword, newPassword string) error {
	var user User
	result := s.db.Where("id = ? AND is_active = ?", userID, true).First(&user)
	if result.Error != nil {
		return fmt.Errorf("user not found")
	}

	if err := s.passwordManager.VerifyPassword(currentPassword, user.Password); err != nil {
		return fmt.Errorf("current password is incorrect")
	}

	hashedPassword, err := s.passwordManager.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.db.Model(&user).Update("password", hashedPassword).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *Service) issueTokens(user *User) (*AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	s.db.Model(user).Update("last_login_at", now)

	user.Password = ""
	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.JWT.AccessTokenExpiry.Seconds()),
	}, nil
}

func otpKey(userID uint) string {
	return fmt.Sprintf("otp:user:%d", userID)
}

// generateOTP returns a zero-padded numeric code of the given length
func generateOTP(length int) (string, error) {
	const digits = "0123456789"

	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		code[i] = digits[n.Int64()]
	}

	return string(code), nil
}
