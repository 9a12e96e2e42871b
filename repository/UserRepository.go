package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/raobaba/SkillBridge-Pro-sub006/model"
)

// UserRepository defines DB operations for Users
type UserRepository interface {
	Create(user *model.User) error
	GetByID(id uuid.UUID) (*model.User, error)
	GetByEmail(email string) (*model.User, error)
	List(limit, offset int) ([]model.User, error)
	Delete(id uuid.UUID) error
}

type pgUserRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &pgUserRepo{db: db}
}

func (r *pgUserRepo) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *pgUserRepo) GetByID(id uuid.UUID) (*model.User, error) {
	var u model.User
	if err := r.db.Preload("Roles").First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *pgUserRepo) GetByEmail(email string) (*model.User, error) {
	var u model.User
	// Roles are preloaded so they are available for claims during login
	if err := r.db.Preload("Roles").Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *pgUserRepo) List(limit, offset int) ([]model.User, error) {
	var users []model.User
	if err := r.db.Preload("Roles").Limit(limit).Offset(offset).Order("created_at desc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *pgUserRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.User{}, "id = ?", id).Error
}
