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

// 拉任务：首次分配一批，之后幂等返回同一批
func AllocateTasksHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID := c.Params.ByName("id")
		if projectID == "" {
			xhttp.Error(c, errcode.NewInvalidParamsErr("project id is null"))
			return
		}

		labelerID := c.Query("labelerId")
		if labelerID == "" {
			xhttp.Error(c, errcode.NewInvalidParamsErr("labelerId is null"))
			return
		}

		res, err := service.AllocateTasks(c.Request.Context(), svcCtx, projectID, labelerID)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		xhttp.OkJson(c, res)
	}
}

// 提交标注结果并结算
func SubmitTaskHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID := c.Params.ByName("id")
		if taskID == "" {
			xhttp.Error(c, errcode.NewInvalidParamsErr("task id is null"))
			return
		}

		req := types.SubmitTaskReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		if err := validator.Verify(&req); err != nil {
			xhttp.Error(c, errcode.NewInvalidParamsErr(err.Error()))
			return
		}

		res, err := service.SubmitTaskResult(c.Request.Context(), svcCtx, taskID, req.LabelerID, req.Result)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		xhttp.OkJson(c, res)
	}
}
