package market

import "time"

type Company struct {
	ID            string    `gorm:"primaryKey;size:64" json:"id"`
	WalletAddress string    `gorm:"uniqueIndex;size:100;not null" json:"wallet_address"`
	CompanyName   string    `gorm:"size:200;not null" json:"company_name"`
	Industry      string    `gorm:"size:100" json:"industry"`
	ContactName   string    `gorm:"size:100" json:"contact_name"`
	Email         string    `gorm:"size:200" json:"email"`
	Description   string    `gorm:"type:text" json:"description"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Company) TableName() string {
	return CompanyTableName()
}

func CompanyTableName() string {
	return "company"
}
