package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleListener = "listener"
	RoleArtist   = "artist"
	RoleAdmin    = "admin"
)

type User struct {
	ID               string         `gorm:"type:uuid;primaryKey" json:"id"`
	Username         string         `gorm:"uniqueIndex;not null" json:"username"`
	Email            string         `gorm:"uniqueIndex;not null" json:"email"`
	Password         string         `gorm:"not null" json:"-"`
	FirstName        string         `gorm:"type:varchar(100)" json:"first_name"`
	LastName         string         `gorm:"type:varchar(100)" json:"last_name"`
	DisplayName      string         `gorm:"type:varchar(100)" json:"display_name"`
	Bio              string         `gorm:"type:text" json:"bio"`
	DateOfBirth      *time.Time     `json:"date_of_birth,omitempty"`
	ProfileURL       string         `json:"profile_url"`
	Role             string         `gorm:"type:varchar(20);default:'listener'" json:"role"`
	StripeCustomerID string         `gorm:"type:varchar(100)" json:"-"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Summed play count across the artist's catalog, filled by aggregate
	// queries only.
	TotalPlays int64 `gorm:"-" json:"total_plays,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Follow is a directed follower -> followed edge between users.
type Follow struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	FollowerID string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_follow_pair" json:"follower_id"`
	FollowedID string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_follow_pair" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`

	Follower User `gorm:"foreignKey:FollowerID" json:"-"`
	Followed User `gorm:"foreignKey:FollowedID" json:"-"`
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

const (
	ArtistRequestPending  = "Pending"
	ArtistRequestApproved = "Approved"
	ArtistRequestRejected = "Rejected"
)

// ArtistRequest tracks a listener asking to be promoted to the artist role.
type ArtistRequest struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string     `gorm:"type:uuid;not null;index" json:"user_id"`
	Description string     `gorm:"type:text" json:"description"`
	Status      string     `gorm:"type:varchar(20);default:'Pending'" json:"status"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (a *ArtistRequest) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

type UserRegister struct {
	Username    string `json:"username" binding:"required,min=3"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DisplayName string `json:"display_name"`
}

type UserLogin struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdatePassword struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type ProfileUpdate struct {
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	DisplayName string     `json:"display_name"`
	Bio         string     `json:"bio"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	ProfileURL  string     `json:"profile_url"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
