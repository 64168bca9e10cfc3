package types

type StartPaymentReq struct {
	// 对账引用，资助项目时填项目ID
	Reference string `json:"reference" binding:"required" validate:"required"`
	Amount    string `json:"amount" binding:"required" validate:"required"`
}
