package utils

import (
	"context"
	"log"
	"time"

	"venturescope/analysis"
	"venturescope/models"
	"venturescope/store"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[ANALYSIS-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// retryFailedAnalyses re-runs the evaluation for submissions stuck in the
// failed state. Only rows last touched before the current quarter-hour are
// picked up, so a fill request that failed seconds ago is not raced.
func retryFailedAnalyses(s store.Store, analyzer analysis.Analyzer) {
	cutoff := now.BeginningOfMinute().Truncate(15 * time.Minute)

	failed, err := s.ListByStatus(models.StatusFailed)
	if err != nil {
		logScheduler("Error fetching failed submissions: " + err.Error())
		return
	}

	for _, startup := range failed {
		if !startup.UpdatedAt.Before(cutoff) {
			continue
		}

		profile := profileFromRow(&startup)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		result, err := analyzer.Analyze(ctx, profile)
		cancel()
		if err != nil {
			logScheduler("Retry failed for submission " + startup.SubmissionKey + ": " + err.Error())
			continue
		}

		if _, err := s.SetAnalysis(startup.SubmissionKey, result.Analysis, models.StatusAnalyzed); err != nil {
			logScheduler("Error storing retried analysis for " + startup.SubmissionKey + ": " + err.Error())
			continue
		}
		logScheduler("Submission " + startup.SubmissionKey + " analyzed on retry")
	}
}

// profileFromRow rebuilds the business-field view of a stored row so the
// retry sends exactly what a fresh fill would have sent.
func profileFromRow(s *models.Startup) *models.StartupProfile {
	profile := &models.StartupProfile{
		Industries:        s.Industries,
		IndustryGroups:    s.IndustryGroups,
		FundingRounds:     s.FundingRounds,
		LastFunding:       s.LastFunding,
		Equity:            s.Equity,
		TotalFunding:      s.TotalFunding,
		Revenue:           s.Revenue,
		Growth:            s.Growth,
		Valuation:         s.Valuation,
		LastValuationDate: s.LastValuationDate,
		FoundersCount:     s.FoundersCount,
		EmployeesCount:    s.EmployeesCount,
		Founders:          s.Founders,
		TopInvestors:      s.TopInvestors,
		MonthlyMetrics:    s.MonthlyMetrics,
		KeyMetrics:        s.KeyMetrics,
	}

	if s.OrganizationName != "" {
		profile.OrganizationName = &s.OrganizationName
	}
	if s.URL != "" {
		profile.URL = &s.URL
	}
	if s.Location != "" {
		profile.Location = &s.Location
	}
	if s.LastFundingType != "" {
		profile.LastFundingType = &s.LastFundingType
	}

	return profile
}

// StartAnalysisScheduler runs the failed-analysis retry sweep every 15
// minutes. Returns the cron so callers can Stop it on shutdown.
func StartAnalysisScheduler(s store.Store, analyzer analysis.Analyzer) *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("*/15 * * * *", func() {
		retryFailedAnalyses(s, analyzer)
	}); err != nil {
		log.Fatalf("Failed to register analysis retry job: %v", err)
	}

	c.Start()
	logScheduler("Analysis retry scheduler started")
	return c
}
