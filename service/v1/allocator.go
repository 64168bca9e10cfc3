package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/labelchain/LabelChain/errcode"
	"github.com/labelchain/LabelChain/logger/xzap"
	"github.com/labelchain/LabelChain/service/svc"
	"github.com/labelchain/LabelChain/stores/gdb/market"
	types "github.com/labelchain/LabelChain/types/v1"
)

// 样本池为空时的占位样本，仅用于演示/联调，不是生产行为
var placeholderPool = []string{
	"https://placehold.co/600x400?text=Sample+Image+1",
	"https://placehold.co/600x400?text=Sample+Image+2",
	"https://placehold.co/600x400?text=Sample+Image+3",
	"https://placehold.co/600x400?text=Sample+Image+4",
	"https://placehold.co/600x400?text=Sample+Image+5",
}

// AllocateTasks 标注员首次进入项目时生成一批任务，之后幂等返回同一批。
// 并发调用靠task_batch唯一索引串行化，输掉的一方读已建好的批次
func AllocateTasks(ctx context.Context, s *svc.ServerCtx, projectID, labelerID string) (*types.AllocateTasksResp, error) {
	project, err := s.Dao.GetProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.NewNotFoundErr("project not found")
		}
		return nil, errors.Wrap(err, "query project failed")
	}

	if project.Status == market.ProjectStatusDraft {
		return nil, errcode.NewForbiddenErr("project is not funded yet")
	}

	if _, err := s.Dao.GetLabelerByID(ctx, labelerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.NewNotFoundErr("labeler not found")
		}
		return nil, errors.Wrap(err, "query labeler failed")
	}

	existing, err := s.Dao.GetTasksByProjectAndLabeler(ctx, projectID, labelerID)
	if err != nil {
		return nil, errors.Wrap(err, "query tasks failed")
	}
	if len(existing) > 0 {
		return &types.AllocateTasksResp{Tasks: existing, Project: project}, nil
	}

	pool := project.FileUrls
	if len(pool) == 0 {
		xzap.WithContext(ctx).Info("project has no sample files, using placeholder pool",
			zap.String("project_id", projectID))
		pool = placeholderPool
	}

	batchSize := len(pool)
	if batchSize > s.C.Pricing.MaxBatchSize {
		batchSize = s.C.Pricing.MaxBatchSize
	}

	rate := s.C.Pricing.PerTaskRateDecimal()
	tasks := make([]*market.Task, 0, batchSize)
	for i := 0; i < batchSize; i++ {
		tasks = append(tasks, &market.Task{
			ID:            uuid.New().String(),
			ProjectID:     projectID,
			LabelerID:     labelerID,
			FileUrl:       pool[i],
			Status:        market.TaskStatusPending,
			PaymentAmount: rate,
			BatchNumber:   1,
			TaskData:      buildTaskData(project, i),
		})
	}

	batch := &market.TaskBatch{
		ProjectID:   projectID,
		LabelerID:   labelerID,
		BatchNumber: 1,
		TaskCount:   batchSize,
	}
	if err := s.Dao.CreateTaskBatch(ctx, batch, tasks); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 另一个请求抢先建好了批次，读已有的
			existing, err := s.Dao.GetTasksByProjectAndLabeler(ctx, projectID, labelerID)
			if err != nil {
				return nil, errors.Wrap(err, "query tasks after lost race failed")
			}
			return &types.AllocateTasksResp{Tasks: existing, Project: project}, nil
		}
		return nil, errors.Wrap(err, "create task batch failed")
	}

	xzap.WithContext(ctx).Info("task batch allocated",
		zap.String("project_id", projectID),
		zap.String("labeler_id", labelerID),
		zap.Int("task_count", batchSize))

	// 首次分配把项目推进到in_progress；竞争失败说明别人已经推过了
	if project.Status == market.ProjectStatusFunded {
		if _, err := s.Dao.UpdateProjectStatusFrom(ctx, projectID,
			market.ProjectStatusFunded, market.ProjectStatusInProgress); err != nil {
			return nil, errors.Wrap(err, "advance project status failed")
		}
		project.Status = market.ProjectStatusInProgress
	}

	created, err := s.Dao.GetTasksByProjectAndLabeler(ctx, projectID, labelerID)
	if err != nil {
		return nil, errors.Wrap(err, "reload created tasks failed")
	}
	return &types.AllocateTasksResp{Tasks: created, Project: project}, nil
}

// 图像分类任务的默认候选标签
var defaultClassificationOptions = []string{
	"Car", "Truck", "Motorcycle", "Bicycle", "Bus", "Pedestrian", "Other",
}

// 文本标注任务的默认实体类别
var defaultEntityCategories = []string{
	"Person", "Organization", "Location", "Date", "Product",
}

const defaultAnnotationText = "Sample text for annotation task. " +
	"This is an example sentence with entities to tag."

// buildTaskData 按项目类型生成带类型标签的任务负载
func buildTaskData(project *market.Project, fileIndex int) market.TaskData {
	data := market.TaskData{
		Instructions: project.Instructions,
		ProjectType:  project.Type,
		FileIndex:    fileIndex,
	}
	switch project.Type {
	case market.ProjectTypeImageClassification:
		data.Kind = market.TaskDataKindClassification
		data.Options = defaultClassificationOptions
	case market.ProjectTypeTextAnnotation:
		data.Kind = market.TaskDataKindText
		data.Text = defaultAnnotationText
		data.Categories = defaultEntityCategories
	default:
		data.Kind = market.TaskDataKindNone
	}
	return data
}
