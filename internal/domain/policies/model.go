package policies

const (
	InsuredTypeMember = "Member"
	InsuredTypeAsset  = "Asset"

	CategoryLife            = "Life"
	CategoryCriticalIllness = "CriticalIllness"
	CategoryMedical         = "Medical"
	CategoryAccident        = "Accident"
	CategoryAnnuity         = "Annuity"
	CategoryProperty        = "Property"

	StatusActive      = "Active"
	StatusLapsed      = "Lapsed"
	StatusSurrendered = "Surrendered"
	StatusClaimed     = "Claimed"

	FrequencySingle  = "Single"
	FrequencyMonthly = "Monthly"
	FrequencyYearly  = "Yearly"

	RenewalManual = "Manual"
	RenewalAuto   = "Auto"
	RenewalYearly = "Yearly"

	PaymentPending = "Pending"
	PaymentPaid    = "Paid"
	PaymentOverdue = "Overdue"
)

var (
	Categories  = []string{CategoryLife, CategoryCriticalIllness, CategoryMedical, CategoryAccident, CategoryAnnuity, CategoryProperty}
	Statuses    = []string{StatusActive, StatusLapsed, StatusSurrendered, StatusClaimed}
	Frequencies = []string{FrequencySingle, FrequencyMonthly, FrequencyYearly}
)

type Policy struct {
	ID                     int64  `gorm:"primaryKey"`
	ApplicantID            int64  `gorm:"not null"`
	InsuredType            string `gorm:"not null"`
	InsuredMemberID        *int64
	InsuredAssetID         *int64
	Category               string  `gorm:"not null"`
	SubCategory            *string `gorm:"type:text"`
	InsurerID              *int64
	InsurerName            string  `gorm:"not null"`
	ProductName            string  `gorm:"not null"`
	PolicyNumber           string  `gorm:"not null;uniqueIndex"`
	Channel                *string `gorm:"type:text"`
	SumAssured             float64 `gorm:"not null"`
	Premium                float64 `gorm:"not null"`
	PaymentFrequency       string  `gorm:"not null"`
	PaymentYears           *int64
	TotalPayments          *int64
	RenewalType            *string `gorm:"type:text"`
	PaymentAccount         *string `gorm:"type:text"`
	NextDueDate            *string `gorm:"type:text"`
	EffectiveDate          string  `gorm:"not null"`
	ExpiryDate             *string `gorm:"type:text"`
	HesitationEndDate      *string `gorm:"type:text"`
	WaitingDays            *int64
	GuaranteedRenewalYears *int64
	Status                 string  `gorm:"not null"`
	DeathBenefit           *string `gorm:"type:text"`
	Archived               bool    `gorm:"not null"`
	PolicyFilePath         *string `gorm:"type:text"`
	Notes                  *string `gorm:"type:text"`
	CreatedAt              int64   `gorm:"autoCreateTime"`
	UpdatedAt              int64   `gorm:"autoUpdateTime"`
}

func (Policy) TableName() string {
	return "policies"
}

type Beneficiary struct {
	ID             int64 `gorm:"primaryKey"`
	PolicyID       int64 `gorm:"not null"`
	MemberID       *int64
	ExternalName   *string `gorm:"type:text"`
	ExternalIDCard *string `gorm:"column:external_id_card;type:text"`
	SharePercent   float64 `gorm:"not null"`
	RankOrder      int64   `gorm:"not null"`
}

func (Beneficiary) TableName() string {
	return "beneficiaries"
}

type Payment struct {
	ID           int64   `gorm:"primaryKey"`
	PolicyID     int64   `gorm:"not null"`
	PeriodNumber int64   `gorm:"not null"`
	DueDate      string  `gorm:"not null"`
	Amount       float64 `gorm:"not null"`
	Status       string  `gorm:"not null"`
	PaidDate     *string `gorm:"type:text"`
	PaidAmount   *float64
}

func (Payment) TableName() string {
	return "payments"
}

type CashValue struct {
	ID         int64   `gorm:"primaryKey"`
	PolicyID   int64   `gorm:"not null"`
	PolicyYear int64   `gorm:"not null"`
	Value      float64 `gorm:"not null"`
}

func (CashValue) TableName() string {
	return "cash_values"
}

// Extension holds category-specific attributes as a JSON object.
type Extension struct {
	ID       int64  `gorm:"primaryKey"`
	PolicyID int64  `gorm:"not null;uniqueIndex"`
	Data     string `gorm:"not null"`
}

func (Extension) TableName() string {
	return "policy_extensions"
}

type CoverageItem struct {
	ID              int64  `gorm:"primaryKey"`
	PolicyID        int64  `gorm:"not null"`
	Name            string `gorm:"not null"`
	PeriodLimit     *float64
	LifetimeLimit   *float64
	Deductible      *float64
	CoveragePercent *float64
	IsOptional      bool    `gorm:"not null"`
	Notes           *string `gorm:"type:text"`
	SortOrder       int64   `gorm:"not null"`
}

func (CoverageItem) TableName() string {
	return "coverage_items"
}

type PolicyInput struct {
	ApplicantID            int64
	InsuredType            string
	InsuredMemberID        *int64
	InsuredAssetID         *int64
	Category               string
	SubCategory            *string
	InsurerID              *int64
	InsurerName            string
	ProductName            string
	PolicyNumber           string
	Channel                *string
	SumAssured             float64
	Premium                float64
	PaymentFrequency       string
	PaymentYears           *int64
	TotalPayments          *int64
	RenewalType            *string
	PaymentAccount         *string
	NextDueDate            *string
	EffectiveDate          string
	ExpiryDate             *string
	HesitationEndDate      *string
	WaitingDays            *int64
	GuaranteedRenewalYears *int64
	Status                 string
	DeathBenefit           *string
	Archived               bool
	PolicyFilePath         *string
	Notes                  *string
}

type BeneficiaryInput struct {
	MemberID       *int64
	ExternalName   *string
	ExternalIDCard *string
	SharePercent   float64
	RankOrder      int64
}

type PaymentInput struct {
	PeriodNumber int64
	DueDate      string
	Amount       float64
	Status       string
	PaidDate     *string
	PaidAmount   *float64
}

type CashValueInput struct {
	PolicyYear int64
	Value      float64
}

type CoverageItemInput struct {
	Name            string
	PeriodLimit     *float64
	LifetimeLimit   *float64
	Deductible      *float64
	CoveragePercent *float64
	IsOptional      bool
	Notes           *string
	SortOrder       int64
}
