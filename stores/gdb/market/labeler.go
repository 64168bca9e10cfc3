package market

import (
	"time"

	"github.com/shopspring/decimal"
)

type LabelerStatus string

const (
	LabelerStatusActive    LabelerStatus = "active"
	LabelerStatusSuspended LabelerStatus = "suspended"
)

type Labeler struct {
	ID string `gorm:"primaryKey;size:64" json:"id"`
	// 钱包地址即身份
	WalletAddress      string        `gorm:"uniqueIndex;size:100;not null" json:"wallet_address"`
	FirstName          string        `gorm:"size:100" json:"first_name"`
	LastName           string        `gorm:"size:100" json:"last_name"`
	Email              string        `gorm:"size:200" json:"email"`
	Country            string        `gorm:"size:100" json:"country"`
	PrimaryLanguage    string        `gorm:"size:50" json:"primary_language"`
	EnglishProficiency string        `gorm:"size:50" json:"english_proficiency"`
	Skills             []string      `gorm:"serializer:json" json:"skills"`
	AvailableHours     string        `gorm:"size:50" json:"available_hours"`
	PreferredTime      string        `gorm:"size:50" json:"preferred_time"`
	Education          string        `gorm:"size:100" json:"education"`
	Experience         string        `gorm:"size:100" json:"experience"`
	ExperienceDesc     string        `gorm:"type:text" json:"experience_description"`
	DeviceType         string        `gorm:"size:50" json:"device_type"`
	InternetSpeed      string        `gorm:"size:50" json:"internet_speed"`
	Rating             float64       `gorm:"default:0" json:"rating"`
	Status             LabelerStatus `gorm:"size:20;default:active" json:"status"`
	// 聚合字段，只允许结算路径原子累加
	TasksCompleted int             `gorm:"default:0" json:"tasks_completed"`
	TotalEarned    decimal.Decimal `gorm:"type:decimal(20,6);default:0" json:"total_earned"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (Labeler) TableName() string {
	return LabelerTableName()
}

func LabelerTableName() string {
	return "labeler"
}
