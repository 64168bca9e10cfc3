package service

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/labelchain/LabelChain/errcode"
	"github.com/labelchain/LabelChain/service/svc"
	"github.com/labelchain/LabelChain/stores/gdb/market"
	types "github.com/labelchain/LabelChain/types/v1"
)

// CreateProject 建项目，落在draft状态。项目类型必须在标注类型表里，
// 不认识的类型在这里就挡掉，后面的任务分配不会再遇到
func CreateProject(ctx context.Context, s *svc.ServerCtx, req types.CreateProjectReq) (*market.Project, error) {
	if !market.ValidProjectType(market.ProjectType(req.Type)) {
		return nil, errcode.NewInvalidParamsErr("unsupported project type: " + req.Type)
	}

	if _, err := s.Dao.GetCompanyByID(ctx, req.CompanyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.NewNotFoundErr("company not found")
		}
		return nil, errors.Wrap(err, "query company failed")
	}

	project := &market.Project{
		ID:                 uuid.New().String(),
		CompanyID:          req.CompanyID,
		Name:               req.Name,
		Type:               market.ProjectType(req.Type),
		Description:        req.Description,
		Instructions:       req.Instructions,
		QualityRequirement: market.QualityRequirement(req.QualityRequirement),
		EstimatedItems:     req.EstimatedItems,
		Status:             market.ProjectStatusDraft,
		FileUrls:           []string{},
	}
	if err := s.Dao.CreateProject(ctx, project); err != nil {
		return nil, errors.Wrap(err, "create project failed")
	}
	return project, nil
}

func GetProject(ctx context.Context, s *svc.ServerCtx, projectID string) (*market.Project, error) {
	project, err := s.Dao.GetProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.NewNotFoundErr("project not found")
		}
		return nil, errors.Wrap(err, "query project failed")
	}
	return project, nil
}

// UploadSampleFile 样本文件进对象存储，URL追加进项目样本池
func UploadSampleFile(ctx context.Context, s *svc.ServerCtx, projectID, filename string,
	reader io.Reader, size int64, contentType string) (string, error) {
	if _, err := GetProject(ctx, s, projectID); err != nil {
		return "", err
	}

	fileUrl, err := s.Storage.PutSampleFile(ctx, projectID, filename, reader, size, contentType)
	if err != nil {
		return "", errors.Wrap(err, "upload to object storage failed")
	}

	if err := s.Dao.AppendProjectFileUrl(ctx, projectID, fileUrl); err != nil {
		return "", errors.Wrap(err, "record file url failed")
	}
	return fileUrl, nil
}
