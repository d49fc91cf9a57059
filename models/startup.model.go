package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Submission lifecycle states.
const (
	StatusPending  = "pending"  // created, profile not yet analyzed
	StatusAnalyzed = "analyzed" // profile submitted and evaluation attached
	StatusFailed   = "failed"   // profile submitted but the evaluation call failed
)

// Founder describes one member of the founding team.
type Founder struct {
	Name              string   `json:"name"`
	Role              string   `json:"role"`
	LinkedIn          string   `json:"linkedIn,omitempty"`
	Education         string   `json:"education,omitempty"`
	Experience        string   `json:"experience,omitempty"`
	PreviousCompanies []string `json:"previousCompanies,omitempty"`
	Achievements      []string `json:"achievements,omitempty"`
}

// MonthlyMetric is one point of the externally supplied time series.
type MonthlyMetric struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Users   float64 `json:"users"`
	Growth  float64 `json:"growth"`
	Burn    float64 `json:"burn"`
}

// KeyMetric is a point-in-time headline figure for the dashboard.
type KeyMetric struct {
	Metric    string  `json:"metric"`
	Value     string  `json:"value"`
	Change    float64 `json:"change"`
	Timeframe string  `json:"timeframe"`
}

// Startup is one submission row. The SubmissionKey is the external handle:
// anyone holding it can read and fill the row without authentication.
type Startup struct {
	gorm.Model
	SubmissionKey string `gorm:"uniqueIndex;not null" json:"submissionKey"`

	OrganizationName string                      `gorm:"default:''" json:"organizationName"`
	URL              string                      `gorm:"default:''" json:"url"`
	Location         string                      `gorm:"default:''" json:"location"`
	Industries       datatypes.JSONSlice[string] `json:"industries"`
	IndustryGroups   datatypes.JSONSlice[string] `json:"industryGroups"`

	FundingRounds     *int       `json:"fundingRounds"`
	LastFunding       *float64   `json:"lastFunding"`
	LastFundingType   string     `gorm:"default:''" json:"lastFundingType"`
	Equity            *float64   `json:"equity"`
	TotalFunding      *float64   `json:"totalFunding"`
	Revenue           *float64   `json:"revenue"`
	Growth            *float64   `json:"growth"`
	Valuation         *float64   `json:"valuation"`
	LastValuationDate *time.Time `json:"lastValuationDate"`

	FoundersCount  *int                         `json:"foundersCount"`
	EmployeesCount *int                         `json:"employeesCount"`
	Founders       datatypes.JSONSlice[Founder] `json:"founders"`
	TopInvestors   datatypes.JSONSlice[string]  `json:"topInvestors"`

	MonthlyMetrics datatypes.JSONSlice[MonthlyMetric] `json:"monthlyMetrics"`
	KeyMetrics     datatypes.JSONSlice[KeyMetric]     `json:"keyMetrics"`

	AiAnalysis *datatypes.JSONType[StartupAnalysis] `json:"aiAnalysis"`
	Status     string                               `gorm:"default:'pending'" json:"status"`
}

// StartupProfile is the editable subset a submitter may fill in. Every field
// is optional; nil means "leave the stored value alone" so repeated partial
// submissions merge rather than overwrite.
type StartupProfile struct {
	OrganizationName *string  `json:"organizationName"`
	URL              *string  `json:"url" validate:"omitempty,url"`
	Location         *string  `json:"location"`
	Industries       []string `json:"industries"`
	IndustryGroups   []string `json:"industryGroups"`

	FundingRounds     *int       `json:"fundingRounds" validate:"omitempty,gte=0"`
	LastFunding       *float64   `json:"lastFunding" validate:"omitempty,gte=0"`
	LastFundingType   *string    `json:"lastFundingType"`
	Equity            *float64   `json:"equity" validate:"omitempty,gte=0,lte=100"`
	TotalFunding      *float64   `json:"totalFunding" validate:"omitempty,gte=0"`
	Revenue           *float64   `json:"revenue" validate:"omitempty,gte=0"`
	Growth            *float64   `json:"growth"`
	Valuation         *float64   `json:"valuation" validate:"omitempty,gte=0"`
	LastValuationDate *time.Time `json:"lastValuationDate"`

	FoundersCount  *int      `json:"foundersCount" validate:"omitempty,gte=0"`
	EmployeesCount *int      `json:"employeesCount" validate:"omitempty,gte=0"`
	Founders       []Founder `json:"founders" validate:"omitempty,dive"`
	TopInvestors   []string  `json:"topInvestors"`

	MonthlyMetrics []MonthlyMetric `json:"monthlyMetrics"`
	KeyMetrics     []KeyMetric     `json:"keyMetrics"`
}

// ApplyTo merges the supplied fields into an existing row. Absent fields are
// skipped so a partial fill never clears previously stored data.
func (p *StartupProfile) ApplyTo(s *Startup) {
	if p.OrganizationName != nil {
		s.OrganizationName = *p.OrganizationName
	}
	if p.URL != nil {
		s.URL = *p.URL
	}
	if p.Location != nil {
		s.Location = *p.Location
	}
	if p.Industries != nil {
		s.Industries = datatypes.NewJSONSlice(p.Industries)
	}
	if p.IndustryGroups != nil {
		s.IndustryGroups = datatypes.NewJSONSlice(p.IndustryGroups)
	}
	if p.FundingRounds != nil {
		s.FundingRounds = p.FundingRounds
	}
	if p.LastFunding != nil {
		s.LastFunding = p.LastFunding
	}
	if p.LastFundingType != nil {
		s.LastFundingType = *p.LastFundingType
	}
	if p.Equity != nil {
		s.Equity = p.Equity
	}
	if p.TotalFunding != nil {
		s.TotalFunding = p.TotalFunding
	}
	if p.Revenue != nil {
		s.Revenue = p.Revenue
	}
	if p.Growth != nil {
		s.Growth = p.Growth
	}
	if p.Valuation != nil {
		s.Valuation = p.Valuation
	}
	if p.LastValuationDate != nil {
		s.LastValuationDate = p.LastValuationDate
	}
	if p.FoundersCount != nil {
		s.FoundersCount = p.FoundersCount
	}
	if p.EmployeesCount != nil {
		s.EmployeesCount = p.EmployeesCount
	}
	if p.Founders != nil {
		s.Founders = datatypes.NewJSONSlice(p.Founders)
	}
	if p.TopInvestors != nil {
		s.TopInvestors = datatypes.NewJSONSlice(p.TopInvestors)
	}
	if p.MonthlyMetrics != nil {
		s.MonthlyMetrics = datatypes.NewJSONSlice(p.MonthlyMetrics)
	}
	if p.KeyMetrics != nil {
		s.KeyMetrics = datatypes.NewJSONSlice(p.KeyMetrics)
	}
}
