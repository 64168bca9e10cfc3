package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	v1 "github.com/labelchain/LabelChain/api/v1"
	"github.com/labelchain/LabelChain/service/svc"
)

func NewRouter(svcCtx *svc.ServerCtx) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	api := r.Group("/api/v1")
	{
		company := api.Group("/company")
		{
			company.POST("/register", v1.RegisterCompanyHandler(svcCtx))
			company.GET("", v1.GetCompanyHandler(svcCtx))
		}

		labeler := api.Group("/labeler")
		{
			labeler.POST("/register", v1.RegisterLabelerHandler(svcCtx))
			labeler.POST("/skills", v1.UpdateLabelerSkillsHandler(svcCtx))
			labeler.GET("/profile/:id", v1.GetLabelerProfileHandler(svcCtx))
			labeler.GET("/projects", v1.GetLabelerProjectsHandler(svcCtx))
		}

		projects := api.Group("/projects")
		{
			projects.POST("", v1.CreateProjectHandler(svcCtx))
			projects.GET("/:id", v1.GetProjectHandler(svcCtx))
			projects.POST("/:id/files", v1.UploadSampleFileHandler(svcCtx))
			projects.POST("/:id/fund", v1.FundProjectHandler(svcCtx))
			projects.GET("/:id/tasks", v1.AllocateTasksHandler(svcCtx))
		}

		tasks := api.Group("/tasks")
		{
			tasks.POST("/:id/submit", v1.SubmitTaskHandler(svcCtx))
		}

		payments := api.Group("/payments")
		{
			payments.POST("", v1.StartPaymentHandler(svcCtx))
			payments.GET("/:ref", v1.GetPaymentHandler(svcCtx))
			payments.POST("/:ref/recheck", v1.RecheckPaymentHandler(svcCtx))
			payments.POST("/:ref/accept", v1.AcceptPaymentHandler(svcCtx))
		}
	}

	return r
}
