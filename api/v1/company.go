package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/labelchain/LabelChain/errcode"
	"github.com/labelchain/LabelChain/kit/validator"
	"github.com/labelchain/LabelChain/service/svc"
	service "github.com/labelchain/LabelChain/service/v1"
	types "github.com/labelchain/LabelChain/types/v1"
	"github.com/labelchain/LabelChain/xhttp"
)

// 企业注册
func RegisterCompanyHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.RegisterCompanyReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		if err := validator.Verify(&req); err != nil {
			xhttp.Error(c, errcode.NewInvalidParamsErr(err.Error()))
			return
		}

		company, err := service.RegisterCompany(c.Request.Context(), svcCtx, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		xhttp.OkJson(c, company)
	}
}

// 企业控制台：按钱包地址查公司和名下项目
func GetCompanyHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		wallet := c.Query("wallet")
		if wallet == "" {
			xhttp.Error(c, errcode.NewInvalidParamsErr("wallet addr is null"))
			return
		}

		res, err := service.GetCompanyByWallet(c.Request.Context(), svcCtx, wallet)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		xhttp.OkJson(c, res)
	}
}
