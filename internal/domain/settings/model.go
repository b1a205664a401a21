package settings

const KeyMCPEnabled = "mcp.enabled"

type Setting struct {
	Key       string `gorm:"primaryKey"`
	Value     string `gorm:"not null"`
	UpdatedAt int64  `gorm:"autoUpdateTime"`
}

func (Setting) TableName() string {
	return "settings"
}
