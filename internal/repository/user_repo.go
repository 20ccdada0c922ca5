package repository

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Asna-Zulfiqar/spotify-clone/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	CreateUser(user *models.User) error
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id string) (*models.User, error)
	UpdateUser(user *models.User) error
	SetRole(userID string, role string) error
	SetStripeCustomerID(userID string, customerID string) error

	// Popular artists: users with the artist role whose albums have at
	// least one song, ranked by summed play count across all their songs.
	PopularArtists(limit int) ([]models.User, error)

	SearchArtists(query string) ([]models.User, error)

	CreateArtistRequest(req *models.ArtistRequest) error
	FindArtistRequestByID(id string) (*models.ArtistRequest, error)
	HasPendingArtistRequest(userID string) (bool, error)
	UpdateArtistRequest(req *models.ArtistRequest) error

	HashPassword(password string) (string, error)
	VerifyPassword(hashedPassword, password string) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepo) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindUserByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *userRepo) SetRole(userID string, role string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("role", role).Error
}

func (r *userRepo) SetStripeCustomerID(userID string, customerID string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("stripe_customer_id", customerID).Error
}

func (r *userRepo) PopularArtists(limit int) ([]models.User, error) {
	type artistTotal struct {
		ArtistID   string
		TotalPlays int64
	}

	var totals []artistTotal
	err := r.db.Table("albums").
		Select("albums.artist_id AS artist_id, SUM(songs.plays_count) AS total_plays").
		Joins("JOIN songs ON songs.album_id = albums.id").
		Group("albums.artist_id").
		Having("SUM(songs.plays_count) > 0").
		Order("total_plays DESC").
		Limit(limit).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	if len(totals) == 0 {
		return []models.User{}, nil
	}

	ids := make([]string, len(totals))
	playsByID := make(map[string]int64, len(totals))
	for i, t := range totals {
		ids[i] = t.ArtistID
		playsByID[t.ArtistID] = t.TotalPlays
	}

	var users []models.User
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}

	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	// Preserve the aggregate ranking order.
	ranked := make([]models.User, 0, len(totals))
	for _, t := range totals {
		if u, ok := byID[t.ArtistID]; ok {
			u.TotalPlays = playsByID[u.ID]
			ranked = append(ranked, u)
		}
	}
	return ranked, nil
}

// SearchArtists matches the query against first, last and display names;
// only users with the artist role appear in the artist facet.
func (r *userRepo) SearchArtists(query string) ([]models.User, error) {
	var users []models.User
	err := r.db.Model(&models.User{}).
		Where("role = ?", models.RoleArtist).
		Where(
			"to_tsvector('english', coalesce(first_name, '') || ' ' || coalesce(last_name, '') || ' ' || coalesce(display_name, '')) @@ plainto_tsquery('english', ?)",
			query,
		).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (r *userRepo) CreateArtistRequest(req *models.ArtistRequest) error {
	return r.db.Create(req).Error
}

func (r *userRepo) FindArtistRequestByID(id string) (*models.ArtistRequest, error) {
	var req models.ArtistRequest
	err := r.db.First(&req, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *userRepo) HasPendingArtistRequest(userID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.ArtistRequest{}).
		Where("user_id = ? AND status = ?", userID, models.ArtistRequestPending).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepo) UpdateArtistRequest(req *models.ArtistRequest) error {
	return r.db.Save(req).Error
}

func (r *userRepo) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func (r *userRepo) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
