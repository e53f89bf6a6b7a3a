package database

import (
	"time"

	"gorm.io/datatypes"
)

// Every entity carries a surrogate integer id assigned on creation and a
// creation timestamp that is never mutated afterwards. Records are removed
// with hard deletes, so none of the models embed gorm.Model (no DeletedAt).

// User is an account. IsAdmin is never settable through the registration
// endpoint; admins are created by the seed step or the bootstrap CLI.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:64" json:"username"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	IsAdmin      bool      `gorm:"default:false" json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Project is a portfolio entry on the public showcase.
type Project struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"size:255" json:"title"`
	Description string    `json:"description"`
	Category    string    `gorm:"size:128;index" json:"category"`
	Client      string    `gorm:"size:255" json:"client"`
	ImageURL    string    `gorm:"size:512" json:"imageUrl"`
	Featured    bool      `gorm:"default:false" json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Service describes one offering on the services page.
type Service struct {
	ID          uint                        `gorm:"primarykey" json:"id"`
	Title       string                      `gorm:"size:255" json:"title"`
	Description string                      `json:"description"`
	Icon        string                      `gorm:"size:128" json:"icon"`
	Features    datatypes.JSONSlice[string] `json:"features"`
	CreatedAt   time.Time                   `json:"createdAt"`
}

// Product is a sellable offering with marketing collateral.
type Product struct {
	ID          uint                        `gorm:"primarykey" json:"id"`
	Name        string                      `gorm:"size:255" json:"name"`
	Description string                      `json:"description"`
	Category    string                      `gorm:"size:128;index" json:"category"`
	Price       string                      `gorm:"size:64" json:"price"`
	Features    datatypes.JSONSlice[string] `json:"features"`
	ImageURL    string                      `gorm:"size:512" json:"imageUrl"`
	Screenshots datatypes.JSONSlice[string] `json:"screenshots"`
	DemoURL     string                      `gorm:"size:512" json:"demoUrl"`
	IsPopular   bool                        `gorm:"default:false" json:"isPopular"`
	CreatedAt   time.Time                   `json:"createdAt"`
}

// JobOpening is a careers-page posting. Only active openings are visible on
// the public read path.
type JobOpening struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"size:255" json:"title"`
	Location    string    `gorm:"size:128" json:"location"`
	Type        string    `gorm:"size:64" json:"type"`
	Salary      string    `gorm:"size:128" json:"salary"`
	Description string    `json:"description"`
	Active      bool      `gorm:"default:true" json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
}

// JobApplication is a public submission against an opening. JobID is a soft
// reference: deleting the opening neither deletes nor rewrites applications.
// ResumeURL holds the uploaded attachment inline as a data URI.
type JobApplication struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	JobID       *uint     `gorm:"index" json:"jobId"`
	FirstName   string    `gorm:"size:128" json:"firstName"`
	LastName    string    `gorm:"size:128" json:"lastName"`
	Email       string    `gorm:"size:255" json:"email"`
	Position    string    `gorm:"size:255" json:"position"`
	ResumeURL   *string   `json:"resumeUrl"`
	CoverLetter *string   `json:"coverLetter"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BlogArticle is a blog post. Only published articles are visible on the
// public read path.
type BlogArticle struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	Title          string    `gorm:"size:255" json:"title"`
	Content        string    `json:"content"`
	Excerpt        string    `json:"excerpt"`
	Category       string    `gorm:"size:128;index" json:"category"`
	ImageURL       string    `gorm:"size:512" json:"imageUrl"`
	AuthorName     string    `gorm:"size:128" json:"authorName"`
	AuthorImageURL string    `gorm:"size:512" json:"authorImageUrl"`
	Published      bool      `gorm:"default:false" json:"published"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Models lists every persisted entity for AutoMigrate.
func Models() []any {
	return []any{
		&User{},
		&Project{},
		&Service{},
		&Product{},
		&JobOpening{},
		&JobApplication{},
		&BlogArticle{},
	}
}
