package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/repository/db"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUserAlreadyExists username已被註冊
	ErrUserAlreadyExists = errors.New("username already exists")
	// ErrUserNotFound 使用者不存在
	ErrUserNotFound = errors.New("user not found")
	// ErrIncorrectPassword 密碼錯誤
	ErrIncorrectPassword = errors.New("incorrect password")
	// ErrUserInactive 帳號停用
	ErrUserInactive = errors.New("user account is disabled")
	// ErrMissingUserFields 必填欄位缺漏
	ErrMissingUserFields = errors.New("one of the required fields is blank")
)

type IUserService interface {
	Register(ctx context.Context, username, password, email string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.Identity, error)
}

type UserService struct {
	userRepo db.IUserRepository
}

func NewUserService(userRepo db.IUserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register 建立一般使用者帳號，密碼以bcrypt雜湊儲存
func (u *UserService) Register(ctx context.Context, username, password, email string) (*model.User, error) {
	if username == "" || password == "" || email == "" {
		return nil, ErrMissingUserFields
	}

	// 檢查username是否已存在
	existing, err := u.userRepo.GetUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, db.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		HashPassword: string(hash),
		Email:        email,
		AccessLevel:  model.AccessLevelUser,
		IsActive:     true,
	}
	if err := u.userRepo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login 驗證帳密並回傳身份
// 停用帳號不可登入
func (u *UserService) Login(ctx context.Context, username, password string) (*model.Identity, error) {
	if username == "" || password == "" {
		return nil, ErrMissingUserFields
	}

	user, err := u.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashPassword), []byte(password)); err != nil {
		return nil, ErrIncorrectPassword
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	return &model.Identity{
		UserID:      user.UserID,
		Username:    user.Username,
		Email:       user.Email,
		AccessLevel: user.AccessLevel,
	}, nil
}

var _ IUserService = (*UserService)(nil)
