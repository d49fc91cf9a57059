package store

import (
	"testing"

	"venturescope/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestGorm(t *testing.T) *Gorm {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Startup{}))

	return NewGorm(db)
}

func TestGormSubmissionLifecycle(t *testing.T) {
	st := newTestGorm(t)

	key, err := st.CreateSubmission()
	require.NoError(t, err)
	require.Len(t, key, 21)

	pending, err := st.GetBySubmissionKey(key)
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, pending.Status)
	require.Nil(t, pending.AiAnalysis)

	profile := &models.StartupProfile{
		OrganizationName: strPtr("Acme"),
		Industries:       []string{"fintech"},
		Founders: []models.Founder{
			{Name: "Jess Doe", Role: "CEO", PreviousCompanies: []string{"BigCo"}},
		},
		Revenue: fltPtr(125000),
	}

	_, err = st.UpdateProfile(key, profile)
	require.NoError(t, err)

	result := &models.StartupAnalysis{
		Scores:              models.AnalysisScores{MarketPotential: 8, TeamStrength: 7, ProductInnovation: 6, CompetitiveAdvantage: 5, FinancialViability: 7},
		Analysis:            models.SwotAnalysis{Strengths: []string{"team"}, Weaknesses: []string{"runway"}, Opportunities: []string{"market"}, Threats: []string{"incumbents"}},
		Recommendations:     []string{"raise"},
		RiskLevel:           models.RiskLow,
		InvestmentPotential: models.PotentialStrong,
	}

	analyzed, err := st.SetAnalysis(key, result, models.StatusAnalyzed)
	require.NoError(t, err)
	require.Equal(t, models.StatusAnalyzed, analyzed.Status)

	// Re-read from the database to prove the JSON columns survived storage
	reloaded, err := st.GetBySubmissionKey(key)
	require.NoError(t, err)
	require.Equal(t, "Acme", reloaded.OrganizationName)
	require.Equal(t, []string{"fintech"}, []string(reloaded.Industries))
	require.Len(t, reloaded.Founders, 1)
	require.Equal(t, "Jess Doe", reloaded.Founders[0].Name)
	require.Equal(t, 125000.0, *reloaded.Revenue)
	require.NotNil(t, reloaded.AiAnalysis)
	require.Equal(t, *result, reloaded.AiAnalysis.Data())
}

func TestGormGetUnknownKey(t *testing.T) {
	st := newTestGorm(t)

	_, err := st.GetBySubmissionKey("no-such-key")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGormUpdateUnknownKey(t *testing.T) {
	st := newTestGorm(t)

	_, err := st.UpdateProfile("no-such-key", &models.StartupProfile{OrganizationName: strPtr("Acme")})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGormDistinctKeys(t *testing.T) {
	st := newTestGorm(t)

	seen := make(map[string]struct{})
	for i := 0; i < 25; i++ {
		key, err := st.CreateSubmission()
		require.NoError(t, err)
		if _, dup := seen[key]; dup {
			t.Fatalf("duplicate key %s", key)
		}
		seen[key] = struct{}{}
	}
}

func TestGormUserUniqueness(t *testing.T) {
	st := newTestGorm(t)

	require.NoError(t, st.CreateUser(&models.User{Username: "founder", Password: "hash"}))

	err := st.CreateUser(&models.User{Username: "founder", Password: "other"})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
