package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/labelchain/LabelChain/errcode"
	"github.com/labelchain/LabelChain/kit/validator"
	"github.com/labelchain/LabelChain/service/svc"
	types "github.com/labelchain/LabelChain/types/v1"
	"github.com/labelchain/LabelChain/xhttp"
)

// 发起打款：金额校验同步返回，提交和确认在后台推进
func StartPaymentHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.StartPaymentReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		if err := validator.Verify(&req); err != nil {
			xhttp.Error(c, errcode.NewInvalidParamsErr(err.Error()))
			return
		}

		snap, err := svcCtx.Payments.Start(c.Request.Context(), req.Reference,
			svcCtx.C.Chain.PlatformWallet, req.Amount)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		xhttp.OkJson(c, snap)
	}
}

// 查询打款状态快照
func GetPaymentHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := c.Params.ByName("ref")
		if ref == "" {
			xhttp.Error(c, errcode.NewInvalidParamsErr("reference is null"))
			return
		}

		snap, err := svcCtx.Payments.Get(ref)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		xhttp.OkJson(c, snap)
	}
}

// 超时后重新确认：复用已有签名，不会重发转账
func RecheckPaymentHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := c.Params.ByName("ref")
		if ref == "" {
			xhttp.Error(c, errcode.NewInvalidParamsErr("reference is null"))
			return
		}

		snap, err := svcCtx.Payments.Recheck(c.Request.Context(), ref)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		xhttp.OkJson(c, snap)
	}
}

// 超时后用户选择按成功处理
func AcceptPaymentHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := c.Params.ByName("ref")
		if ref == "" {
			xhttp.Error(c, errcode.NewInvalidParamsErr("reference is null"))
			return
		}

		snap, err := svcCtx.Payments.Accept(ref)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		xhttp.OkJson(c, snap)
	}
}
