package user

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/loci-space/core/internal/models"
	"github.com/loci-space/core/internal/pkg/jwt"
)

const tokenTTL = 30 * 24 * time.Hour

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Register(dto *RegisterDTO) (*models.UserModel, error) {
	var count int64
	if err := s.db.Model(&models.UserModel{}).Where("username = ?", dto.Username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	name := dto.Name
	if name == "" {
		name = dto.Username
	}

	user := models.UserModel{
		Username: dto.Username,
		Name:     name,
		Password: string(hashed),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) Login(dto *LoginDTO, ip string) (*LoginResult, error) {
	var user models.UserModel
	if err := s.db.Where("username = ?", dto.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errUserNotFound
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.Password)) != nil {
		return nil, errWrongPassword
	}

	token, err := jwt.Sign(user.ID, tokenTTL)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.db.Model(&user).Updates(map[string]any{
		"last_login_time": now,
		"last_login_ip":   ip,
	}).Error; err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: sanitize(&user)}, nil
}

func (s *Service) GetByID(id uint) (*models.UserModel, error) {
	var user models.UserModel
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func sanitize(u *models.UserModel) *SafeUserPayload {
	return &SafeUserPayload{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Avatar:   u.Avatar,
	}
}
