package analytics

import "surety/internal/domain/policies"

const (
	RoleInsured   = "insured"
	RoleApplicant = "applicant"

	TargetMember = "member"
	TargetAsset  = "asset"

	DefaultLookAheadMonths = 12
	MaxLookAheadMonths     = 120
)

type MemberSummary struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Relation  string  `json:"relation"`
	Gender    *string `json:"gender"`
	BirthDate *string `json:"birthDate"`
	Phone     *string `json:"phone"`
}

type MemberPolicy struct {
	ID           int64   `json:"id"`
	ProductName  string  `json:"productName"`
	PolicyNumber string  `json:"policyNumber"`
	Category     string  `json:"category"`
	Status       string  `json:"status"`
	Premium      float64 `json:"premium"`
	SumAssured   float64 `json:"sumAssured"`
	Role         string  `json:"role"`
}

type MemberDetail struct {
	MemberSummary
	Policies []MemberPolicy `json:"policies"`
}

type PolicyFilter struct {
	Status   string
	Category string
	MemberID *int64
}

type PolicySummary struct {
	ID               int64   `json:"id"`
	ProductName      string  `json:"productName"`
	PolicyNumber     string  `json:"policyNumber"`
	Category         string  `json:"category"`
	SubCategory      *string `json:"subCategory"`
	InsurerName      string  `json:"insurerName"`
	Status           string  `json:"status"`
	Premium          float64 `json:"premium"`
	SumAssured       float64 `json:"sumAssured"`
	EffectiveDate    string  `json:"effectiveDate"`
	ExpiryDate       *string `json:"expiryDate"`
	ApplicantName    *string `json:"applicantName"`
	InsuredName      *string `json:"insuredName"`
	InsuredAssetName *string `json:"insuredAssetName"`
}

type BeneficiaryView struct {
	Name         *string `json:"name"`
	SharePercent float64 `json:"sharePercent"`
	RankOrder    int64   `json:"rankOrder"`
}

type CoverageItemView struct {
	Name            string   `json:"name"`
	PeriodLimit     *float64 `json:"periodLimit"`
	LifetimeLimit   *float64 `json:"lifetimeLimit"`
	Deductible      *float64 `json:"deductible"`
	CoveragePercent *float64 `json:"coveragePercent"`
	IsOptional      bool     `json:"isOptional"`
}

type PolicyDetail struct {
	PolicySummary
	InsuredType      string             `json:"insuredType"`
	PaymentFrequency string             `json:"paymentFrequency"`
	PaymentYears     *int64             `json:"paymentYears"`
	RenewalType      *string            `json:"renewalType"`
	NextDueDate      *string            `json:"nextDueDate"`
	Notes            *string            `json:"notes"`
	Beneficiaries    []BeneficiaryView  `json:"beneficiaries"`
	CoverageItems    []CoverageItemView `json:"coverageItems"`
}

type AssetView struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Identifier string  `json:"identifier"`
	OwnerName  *string `json:"ownerName"`
	Details    any     `json:"details"`
}

type CategoryTotals struct {
	Count      int     `json:"count"`
	Premium    float64 `json:"premium"`
	SumAssured float64 `json:"sumAssured"`
}

type MemberCoverage struct {
	Name            string                    `json:"name"`
	Relation        string                    `json:"relation"`
	TotalPremium    float64                   `json:"totalPremium"`
	TotalSumAssured float64                   `json:"totalSumAssured"`
	PolicyCount     int                       `json:"policyCount"`
	ByCategory      map[string]CategoryTotals `json:"byCategory"`
	Policies        []PolicySummary           `json:"policies"`
}

type AssetCoverage struct {
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Identifier string          `json:"identifier"`
	OwnerName  *string         `json:"ownerName"`
	Policies   []PolicySummary `json:"policies"`
}

type RenewalPolicy struct {
	ID            int64   `json:"id"`
	ProductName   string  `json:"productName"`
	PolicyNumber  string  `json:"policyNumber"`
	InsurerName   string  `json:"insurerName"`
	Premium       float64 `json:"premium"`
	NextDueDate   *string `json:"nextDueDate"`
	ExpiryDate    *string `json:"expiryDate"`
	ApplicantName *string `json:"applicantName"`
}

type RenewalOverview struct {
	LookAheadMonths int             `json:"lookAheadMonths"`
	Total           int             `json:"total"`
	Policies        []RenewalPolicy `json:"policies"`
}

type DashboardSummary struct {
	MemberCount       int                       `json:"memberCount"`
	PolicyCount       int                       `json:"policyCount"`
	ActivePolicyCount int                       `json:"activePolicyCount"`
	TotalPremium      float64                   `json:"totalPremium"`
	TotalSumAssured   float64                   `json:"totalSumAssured"`
	ByCategory        map[string]CategoryTotals `json:"byCategory"`
}

func (t *CategoryTotals) add(policy policies.Policy) {
	t.Count++
	t.Premium += policy.Premium
	t.SumAssured += policy.SumAssured
}

// DashboardOverview extends the summary with chart series over effectively
// active, unarchived policies.
type DashboardOverview struct {
	DashboardSummary
	Charts DashboardCharts `json:"charts"`
}

type DashboardCharts struct {
	PremiumByCategory        []CategorySlice `json:"premiumByCategory"`
	PremiumByMember          []MemberPremium `json:"premiumByMember"`
	PolicyByInsurer          []NamedTotals   `json:"policyByInsurer"`
	PolicyByChannel          []NamedTotals   `json:"policyByChannel"`
	CoverageByCategory       []CoverageSlice `json:"coverageByCategory"`
	MemberByCategory         CategoryMatrix  `json:"memberByCategory"`
	MemberPremiumByCategory  CategoryMatrix  `json:"memberPremiumByCategory"`
	MemberCoverageByCategory CategoryMatrix  `json:"memberCoverageByCategory"`
	RenewalTimeline          []MonthTotals   `json:"renewalTimeline"`
	ExpiryTimeline           []MonthTotals   `json:"expiryTimeline"`
}

type CategorySlice struct {
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	Premium    float64 `json:"premium"`
	SumAssured float64 `json:"sumAssured"`
}

type MemberPremium struct {
	MemberID int64   `json:"memberId"`
	Name     string  `json:"name"`
	Premium  float64 `json:"premium"`
	Count    int     `json:"count"`
}

type NamedTotals struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Premium float64 `json:"premium"`
}

type CoverageSlice struct {
	Category   string  `json:"category"`
	SumAssured float64 `json:"sumAssured"`
}

// CategoryMatrix is a per-member breakdown by category, largest total first.
type CategoryMatrix struct {
	Categories []string            `json:"categories"`
	Data       []CategoryMatrixRow `json:"data"`
}

type CategoryMatrixRow struct {
	Name   string             `json:"name"`
	Values map[string]float64 `json:"values"`
	Total  float64            `json:"total"`
}

type MonthTotals struct {
	Month   string  `json:"month"`
	Count   int     `json:"count"`
	Premium float64 `json:"premium"`
}

// RenewalCalendar adds per-month premium due dates to the renewal overview.
type RenewalCalendar struct {
	RenewalOverview
	Summary     RenewalSummary   `json:"summary"`
	MonthlyData []MonthlyRenewal `json:"monthlyData"`
	PolicyNames []string         `json:"policyNames"`
}

type RenewalItem struct {
	ID                int64   `json:"id"`
	ProductName       string  `json:"productName"`
	Category          string  `json:"category"`
	Premium           float64 `json:"premium"`
	DueDate           string  `json:"nextDueDate"`
	DaysUntilDue      int     `json:"daysUntilDue"`
	InsuredMemberName string  `json:"insuredMemberName"`
	IsSavings         bool    `json:"isSavings"`
}

type MonthlyRenewal struct {
	Month             string        `json:"month"`
	Items             []RenewalItem `json:"items"`
	TotalPremium      float64       `json:"totalPremium"`
	SavingsPremium    float64       `json:"savingsPremium"`
	ProtectionPremium float64       `json:"protectionPremium"`
	Count             int           `json:"count"`
}

type RenewalSummary struct {
	TotalPremium      float64 `json:"totalPremium"`
	SavingsPremium    float64 `json:"savingsPremium"`
	ProtectionPremium float64 `json:"protectionPremium"`
	// TotalCount counts distinct policies, RenewalCount every due date.
	TotalCount   int `json:"totalCount"`
	RenewalCount int `json:"renewalCount"`
}

// CoverageBoard lists every member with their active cover and groups the
// selected member's policies by category.
type CoverageBoard struct {
	Members        []MemberCard    `json:"members"`
	SelectedMember *MemberCard     `json:"selectedMember"`
	CategoryGroups []CategoryGroup `json:"categoryGroups"`
}

type MemberCard struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Relation          string  `json:"relation"`
	Gender            *string `json:"gender"`
	ActivePolicyCount int     `json:"activePolicyCount"`
	TotalSumAssured   float64 `json:"totalSumAssured"`
}

type CategoryGroup struct {
	Category        string       `json:"category"`
	Policies        []PolicyCard `json:"policies"`
	TotalSumAssured float64      `json:"totalSumAssured"`
	Count           int          `json:"count"`
}

type PolicyCard struct {
	ID            int64   `json:"id"`
	ProductName   string  `json:"productName"`
	Category      string  `json:"category"`
	SubCategory   *string `json:"subCategory"`
	SumAssured    float64 `json:"sumAssured"`
	Premium       float64 `json:"premium"`
	InsurerName   string  `json:"insurerName"`
	InsurerPhone  *string `json:"insurerPhone"`
	EffectiveDate string  `json:"effectiveDate"`
	ExpiryDate    *string `json:"expiryDate"`
	Status        string  `json:"status"`
	IsActive      bool    `json:"isActive"`
}
