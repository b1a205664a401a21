package insurers

type Insurer struct {
	ID        int64   `gorm:"primaryKey"`
	Name      string  `gorm:"not null;uniqueIndex"`
	Phone     *string `gorm:"type:text"`
	Website   *string `gorm:"type:text"`
	CreatedAt int64   `gorm:"autoCreateTime"`
	UpdatedAt int64   `gorm:"autoUpdateTime"`
}

func (Insurer) TableName() string {
	return "insurers"
}

type InsurerInput struct {
	Name    string
	Phone   *string
	Website *string
}
