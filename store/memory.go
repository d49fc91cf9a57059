package store

import (
	"sort"
	"sync"
	"time"

	"venturescope/models"

	"gorm.io/datatypes"
)

// Memory is a map-backed Store used by tests and STORAGE_DRIVER=memory runs.
type Memory struct {
	mu       sync.Mutex
	users    map[uint]*models.User
	startups map[string]*models.Startup
	nextID   uint

	// GenerateKey can be swapped in tests for deterministic keys.
	GenerateKey func() (string, error)
}

func NewMemory() *Memory {
	return &Memory{
		users:       make(map[uint]*models.User),
		startups:    make(map[string]*models.Startup),
		nextID:      1,
		GenerateKey: GenerateSubmissionKey,
	}
}

func (s *Memory) GetUser(id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *Memory) GetUserByUsername(username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = s.nextID
	user.CreatedAt = time.Now()
	s.nextID++

	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *Memory) CreateSubmission() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, err := s.GenerateKey()
	if err != nil {
		return "", err
	}
	if _, exists := s.startups[key]; exists {
		// Retry once, mirroring the unique-constraint handling of the
		// relational implementation.
		key, err = s.GenerateKey()
		if err != nil {
			return "", err
		}
		if _, exists := s.startups[key]; exists {
			return "", ErrKeyCollision
		}
	}

	startup := &models.Startup{SubmissionKey: key, Status: models.StatusPending}
	startup.ID = s.nextID
	startup.CreatedAt = time.Now()
	s.nextID++

	s.startups[key] = startup
	return key, nil
}

func (s *Memory) GetBySubmissionKey(key string) (*models.Startup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	startup, ok := s.startups[key]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *startup
	return &copied, nil
}

func (s *Memory) UpdateProfile(key string, profile *models.StartupProfile) (*models.Startup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	startup, ok := s.startups[key]
	if !ok {
		return nil, ErrNotFound
	}

	profile.ApplyTo(startup)
	startup.UpdatedAt = time.Now()

	copied := *startup
	return &copied, nil
}

func (s *Memory) SetAnalysis(key string, analysis *models.StartupAnalysis, status string) (*models.Startup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	startup, ok := s.startups[key]
	if !ok {
		return nil, ErrNotFound
	}

	if analysis != nil {
		stored := datatypes.NewJSONType(*analysis)
		startup.AiAnalysis = &stored
	}
	startup.Status = status
	startup.UpdatedAt = time.Now()

	copied := *startup
	return &copied, nil
}

func (s *Memory) ListStartups() ([]models.Startup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	startups := make([]models.Startup, 0, len(s.startups))
	for _, startup := range s.startups {
		startups = append(startups, *startup)
	}
	sortByID(startups)
	return startups, nil
}

func (s *Memory) ListByStatus(status string) ([]models.Startup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var startups []models.Startup
	for _, startup := range s.startups {
		if startup.Status == status {
			startups = append(startups, *startup)
		}
	}
	sortByID(startups)
	return startups, nil
}

func sortByID(startups []models.Startup) {
	sort.Slice(startups, func(i, j int) bool { return startups[i].ID < startups[j].ID })
}
