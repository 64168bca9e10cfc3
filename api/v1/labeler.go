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

// 标注员注册，重复注册返回already_registered
func RegisterLabelerHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.RegisterLabelerReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		if err := validator.Verify(&req); err != nil {
			xhttp.Error(c, errcode.NewInvalidParamsErr(err.Error()))
			return
		}

		res, err := service.RegisterLabeler(c.Request.Context(), svcCtx, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		xhttp.OkJson(c, res)
	}
}

// 技能问卷
func UpdateLabelerSkillsHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.UpdateSkillsReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		if err := validator.Verify(&req); err != nil {
			xhttp.Error(c, errcode.NewInvalidParamsErr(err.Error()))
			return
		}

		labeler, err := service.UpdateLabelerSkills(c.Request.Context(), svcCtx, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		xhttp.OkJson(c, labeler)
	}
}

// 档案和统计
func GetLabelerProfileHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		labelerID := c.Params.ByName("id")
		if labelerID == "" {
			xhttp.Error(c, errcode.NewInvalidParamsErr("labeler id is null"))
			return
		}

		res, err := service.GetLabelerProfile(c.Request.Context(), svcCtx, labelerID)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		xhttp.OkJson(c, res)
	}
}

// 可接项目+在做项目进度
func GetLabelerProjectsHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		labelerID := c.Query("labelerId")
		if labelerID == "" {
			xhttp.Error(c, errcode.NewInvalidParamsErr("labelerId is null"))
			return
		}

		res, err := service.GetLabelerProjects(c.Request.Context(), svcCtx, labelerID, c.Query("type"))
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		xhttp.OkJson(c, res)
	}
}
