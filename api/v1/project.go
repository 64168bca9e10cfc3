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

// 创建项目，落draft
func CreateProjectHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.CreateProjectReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		if err := validator.Verify(&req); err != nil {
			xhttp.Error(c, errcode.NewInvalidParamsErr(err.Error()))
			return
		}

		project, err := service.CreateProject(c.Request.Context(), svcCtx, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		xhttp.OkJson(c, types.ProjectResp{Project: project})
	}
}

func GetProjectHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID := c.Params.ByName("id")
		if projectID == "" {
			xhttp.Error(c, errcode.NewInvalidParamsErr("project id is null"))
			return
		}

		project, err := service.GetProject(c.Request.Context(), svcCtx, projectID)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		xhttp.OkJson(c, types.ProjectResp{Project: project})
	}
}

// 上传样本文件，URL进样本池
func UploadSampleFileHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID := c.Params.ByName("id")
		if projectID == "" {
			xhttp.Error(c, errcode.NewInvalidParamsErr("project id is null"))
			return
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			xhttp.Error(c, errcode.NewInvalidParamsErr("file is required"))
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			xhttp.Error(c, errcode.NewInvalidParamsErr("open uploaded file failed"))
			return
		}
		defer file.Close()

		fileUrl, err := service.UploadSampleFile(c.Request.Context(), svcCtx, projectID,
			fileHeader.Filename, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		xhttp.OkJson(c, types.UploadFileResp{FileUrl: fileUrl})
	}
}

// 项目打款：消费状态机终态，项目draft→funded
func FundProjectHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID := c.Params.ByName("id")
		if projectID == "" {
			xhttp.Error(c, errcode.NewInvalidParamsErr("project id is null"))
			return
		}

		req := types.FundProjectReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		if err := validator.Verify(&req); err != nil {
			xhttp.Error(c, errcode.NewInvalidParamsErr(err.Error()))
			return
		}

		project, err := service.FundProject(c.Request.Context(), svcCtx, projectID, req.Amount, req.Signature)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		xhttp.OkJson(c, types.FundProjectResp{Project: project})
	}
}
