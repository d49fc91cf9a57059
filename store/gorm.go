package store

import (
	"errors"
	"log"

	"venturescope/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Gorm is the relational Store implementation.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (s *Gorm) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Gorm) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Gorm) CreateUser(user *models.User) error {
	return s.db.Create(user).Error
}

func (s *Gorm) CreateSubmission() (string, error) {
	key, err := GenerateSubmissionKey()
	if err != nil {
		return "", err
	}

	startup := models.Startup{SubmissionKey: key, Status: models.StatusPending}
	if err := s.db.Create(&startup).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", err
		}

		// Collision on the unique key index. Astronomically unlikely at 126
		// bits of entropy; regenerate once and give up after that.
		log.Printf("Submission key collision on %s, regenerating", key)
		key, err = GenerateSubmissionKey()
		if err != nil {
			return "", err
		}
		startup = models.Startup{SubmissionKey: key, Status: models.StatusPending}
		if err := s.db.Create(&startup).Error; err != nil {
			return "", err
		}
	}

	return key, nil
}

func (s *Gorm) GetBySubmissionKey(key string) (*models.Startup, error) {
	var startup models.Startup
	if err := s.db.Where("submission_key = ?", key).First(&startup).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &startup, nil
}

func (s *Gorm) UpdateProfile(key string, profile *models.StartupProfile) (*models.Startup, error) {
	startup, err := s.GetBySubmissionKey(key)
	if err != nil {
		return nil, err
	}

	profile.ApplyTo(startup)
	if err := s.db.Save(startup).Error; err != nil {
		return nil, err
	}
	return startup, nil
}

func (s *Gorm) SetAnalysis(key string, analysis *models.StartupAnalysis, status string) (*models.Startup, error) {
	startup, err := s.GetBySubmissionKey(key)
	if err != nil {
		return nil, err
	}

	if analysis != nil {
		stored := datatypes.NewJSONType(*analysis)
		startup.AiAnalysis = &stored
	}
	startup.Status = status

	if err := s.db.Save(startup).Error; err != nil {
		return nil, err
	}
	return startup, nil
}

func (s *Gorm) ListStartups() ([]models.Startup, error) {
	var startups []models.Startup
	if err := s.db.Order("id").Find(&startups).Error; err != nil {
		return nil, err
	}
	return startups, nil
}

func (s *Gorm) ListByStatus(status string) ([]models.Startup, error) {
	var startups []models.Startup
	if err := s.db.Where("status = ?", status).Order("id").Find(&startups).Error; err != nil {
		return nil, err
	}
	return startups, nil
}
