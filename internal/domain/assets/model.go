package assets

const (
	TypeRealEstate = "RealEstate"
	TypeVehicle    = "Vehicle"
)

type Asset struct {
	ID         int64  `gorm:"primaryKey"`
	Type       string `gorm:"not null"`
	Name       string `gorm:"not null"`
	Identifier string `gorm:"not null"`
	OwnerID    *int64
	// Details holds a free-form JSON document as text.
	Details   *string `gorm:"type:text"`
	CreatedAt int64   `gorm:"autoCreateTime"`
	UpdatedAt int64   `gorm:"autoUpdateTime"`
}

func (Asset) TableName() string {
	return "assets"
}

type AssetInput struct {
	Type       string
	Name       string
	Identifier string
	OwnerID    *int64
	Details    *string
}
