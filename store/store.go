package store

import (
	"errors"

	"venturescope/models"
)

// ErrNotFound is returned when no row matches the given key or id.
var ErrNotFound = errors.New("record not found")

// ErrKeyCollision is returned when submission key generation collided twice
// in a row, which should never happen with real entropy.
var ErrKeyCollision = errors.New("submission key collision after retry")

// Store is the persistence boundary for submissions and account mirrors.
// Two implementations exist: Gorm for the relational database and Memory for
// tests and local runs. The implementation is selected once at process start
// from config (STORAGE_DRIVER).
type Store interface {
	GetUser(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	CreateUser(user *models.User) error

	// CreateSubmission inserts an empty pending row under a fresh submission
	// key and returns the key. On a key collision it regenerates once.
	CreateSubmission() (string, error)
	GetBySubmissionKey(key string) (*models.Startup, error)
	// UpdateProfile merges the supplied fields into the row for key.
	UpdateProfile(key string, profile *models.StartupProfile) (*models.Startup, error)
	// SetAnalysis attaches (or clears) the evaluation and moves the row to
	// status. This is a separate write from UpdateProfile: a crash between the
	// two leaves a filled profile without an evaluation.
	SetAnalysis(key string, analysis *models.StartupAnalysis, status string) (*models.Startup, error)
	// ListStartups returns every row. There is no ownership filter; any
	// authenticated caller sees all submissions.
	ListStartups() ([]models.Startup, error)
	ListByStatus(status string) ([]models.Startup, error)
}
