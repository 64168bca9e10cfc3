package types

import "github.com/labelchain/LabelChain/stores/gdb/market"

type AllocateTasksResp struct {
	Tasks   []market.Task   `json:"tasks"`
	Project *market.Project `json:"project"`
}

type SubmitTaskReq struct {
	LabelerID string                 `json:"labeler_id" binding:"required" validate:"required"`
	Result    map[string]interface{} `json:"result" binding:"required" validate:"required"`
}

// Receipt 结算回执：本次入账金额和对账引用
type Receipt struct {
	Amount    string `json:"amount"`
	Reference string `json:"reference"`
}

type SubmitTaskResp struct {
	Task    *market.Task `json:"task"`
	Payment *Receipt     `json:"payment"`
}
