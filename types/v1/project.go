package types

import "github.com/labelchain/LabelChain/stores/gdb/market"

type CreateProjectReq struct {
	CompanyID          string `json:"company_id" binding:"required" validate:"required"`
	Name               string `json:"project_name" binding:"required" validate:"required,max=200"`
	Type               string `json:"project_type" binding:"required" validate:"required,max=50"`
	Description        string `json:"project_description" binding:"required" validate:"required,max=1000"`
	EstimatedItems     int    `json:"estimated_items" binding:"required" validate:"required,gt=0"`
	QualityRequirement string `json:"quality_requirement" binding:"required" validate:"required,oneof=standard high premium"`
	Instructions       string `json:"instructions" binding:"required" validate:"required"`
}

type ProjectResp struct {
	Project *market.Project `json:"project"`
}

type UploadFileResp struct {
	FileUrl string `json:"file_url"`
}

type FundProjectReq struct {
	Amount    string `json:"amount" binding:"required" validate:"required"`
	Signature string `json:"signature" binding:"required" validate:"required"`
}

type FundProjectResp struct {
	Project *market.Project `json:"project"`
}
