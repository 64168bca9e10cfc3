package types

import "github.com/labelchain/LabelChain/stores/gdb/market"

type RegisterCompanyReq struct {
	WalletAddress string `json:"wallet_address" binding:"required" validate:"required"`
	CompanyName   string `json:"company_name" binding:"required" validate:"required,max=200"`
	Industry      string `json:"industry" binding:"required" validate:"required,max=100"`
	ContactName   string `json:"contact_name" binding:"required" validate:"required,max=100"`
	Email         string `json:"email" binding:"required" validate:"required,email"`
	Description   string `json:"description" validate:"max=1000"`
}

type CompanyResp struct {
	Company  *market.Company  `json:"company"`
	Projects []market.Project `json:"projects"`
}
