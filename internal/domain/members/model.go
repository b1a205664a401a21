package members

const (
	RelationSelf   = "Self"
	RelationSpouse = "Spouse"
	RelationChild  = "Child"
	RelationParent = "Parent"

	GenderMale   = "M"
	GenderFemale = "F"
)

type Member struct {
	ID                 int64   `gorm:"primaryKey"`
	Name               string  `gorm:"not null"`
	Relation           string  `gorm:"not null"`
	Gender             *string `gorm:"type:text"`
	BirthDate          *string `gorm:"type:text"`
	IDCard             *string `gorm:"column:id_card;type:text"`
	IDType             *string `gorm:"column:id_type;type:text"`
	IDExpiry           *string `gorm:"column:id_expiry;type:text"`
	Phone              *string `gorm:"type:text"`
	HasSocialInsurance *bool
	CreatedAt          int64 `gorm:"autoCreateTime"`
	UpdatedAt          int64 `gorm:"autoUpdateTime"`
}

func (Member) TableName() string {
	return "members"
}

type MemberInput struct {
	Name               string
	Relation           string
	Gender             *string
	BirthDate          *string
	IDCard             *string
	IDType             *string
	IDExpiry           *string
	Phone              *string
	HasSocialInsurance *bool
}
