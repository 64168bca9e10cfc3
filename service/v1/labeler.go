package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/labelchain/LabelChain/errcode"
	"github.com/labelchain/LabelChain/service/svc"
	"github.com/labelchain/LabelChain/stores/gdb/market"
	types "github.com/labelchain/LabelChain/types/v1"
)

// RegisterLabeler 标注员注册，重复注册直接返回已有记录
func RegisterLabeler(ctx context.Context, s *svc.ServerCtx, req types.RegisterLabelerReq) (*types.RegisterLabelerResp, error) {
	if existing, err := s.Dao.GetLabelerByWallet(ctx, req.WalletAddress); err == nil {
		return &types.RegisterLabelerResp{AlreadyRegistered: true, Labeler: existing}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "query labeler failed")
	}

	availableHours := req.AvailableHours
	if availableHours == "" {
		availableHours = "flexible"
	}

	labeler := &market.Labeler{
		ID:                 uuid.New().String(),
		WalletAddress:      req.WalletAddress,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Email:              req.Email,
		Country:            req.Country,
		PrimaryLanguage:    req.PrimaryLanguage,
		EnglishProficiency: req.EnglishProficiency,
		Skills:             []string{},
		AvailableHours:     availableHours,
		Status:             market.LabelerStatusActive,
		TotalEarned:        decimal.Zero,
	}
	if err := s.Dao.CreateLabeler(ctx, labeler); err != nil {
		return nil, errors.Wrap(err, "create labeler failed")
	}
	return &types.RegisterLabelerResp{Labeler: labeler}, nil
}

// UpdateLabelerSkills 技能问卷写入资料，聚合字段不受影响
func UpdateLabelerSkills(ctx context.Context, s *svc.ServerCtx, req types.UpdateSkillsReq) (*market.Labeler, error) {
	if _, err := s.Dao.GetLabelerByID(ctx, req.LabelerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.NewNotFoundErr("labeler not found")
		}
		return nil, errors.Wrap(err, "query labeler failed")
	}

	profile := &market.Labeler{
		Skills:         req.Skills,
		AvailableHours: req.AvailableHours,
		PreferredTime:  req.PreferredTime,
		Education:      req.Education,
		Experience:     req.Experience,
		ExperienceDesc: req.ExperienceDesc,
		DeviceType:     req.DeviceType,
		InternetSpeed:  req.InternetSpeed,
	}
	if err := s.Dao.UpdateLabelerProfile(ctx, req.LabelerID, profile); err != nil {
		return nil, errors.Wrap(err, "update labeler failed")
	}
	return s.Dao.GetLabelerByID(ctx, req.LabelerID)
}

// GetLabelerProfile 档案+从任务表算出来的统计
func GetLabelerProfile(ctx context.Context, s *svc.ServerCtx, labelerID string) (*types.LabelerProfileResp, error) {
	labeler, err := s.Dao.GetLabelerByID(ctx, labelerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.NewNotFoundErr("labeler not found")
		}
		return nil, errors.Wrap(err, "query labeler failed")
	}

	tasks, err := s.Dao.GetTasksByLabeler(ctx, labelerID)
	if err != nil {
		return nil, errors.Wrap(err, "query labeler tasks failed")
	}

	completed := 0
	earned := decimal.Zero
	projectSet := map[string]struct{}{}
	for _, t := range tasks {
		projectSet[t.ProjectID] = struct{}{}
		if t.Status == market.TaskStatusCompleted {
			completed++
			earned = earned.Add(t.PaymentAmount)
		}
	}

	return &types.LabelerProfileResp{
		Labeler: labeler,
		Stats: types.LabelerStats{
			CompletedTasks: completed,
			TotalEarned:    earned.String(),
			ProjectCount:   len(projectSet),
		},
	}, nil
}

// GetLabelerProjects 可接的项目列表+在做项目的进度
func GetLabelerProjects(ctx context.Context, s *svc.ServerCtx, labelerID, projectType string) (*types.LabelerProjectsResp, error) {
	if _, err := s.Dao.GetLabelerByID(ctx, labelerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.NewNotFoundErr("labeler not found")
		}
		return nil, errors.Wrap(err, "query labeler failed")
	}

	available, err := s.Dao.GetWorkableProjects(ctx, projectType)
	if err != nil {
		return nil, errors.Wrap(err, "query projects failed")
	}

	tasks, err := s.Dao.GetTasksByLabeler(ctx, labelerID)
	if err != nil {
		return nil, errors.Wrap(err, "query labeler tasks failed")
	}

	// 按项目聚合任务进度
	grouped := map[string]*types.ActiveProject{}
	var order []string
	for _, t := range tasks {
		ap, ok := grouped[t.ProjectID]
		if !ok {
			project, err := s.Dao.GetProjectByID(ctx, t.ProjectID)
			if err != nil {
				return nil, errors.Wrap(err, "query task project failed")
			}
			ap = &types.ActiveProject{Project: project, Earnings: decimal.Zero.String()}
			grouped[t.ProjectID] = ap
			order = append(order, t.ProjectID)
		}
		ap.TasksTotal++
		if t.Status == market.TaskStatusCompleted {
			ap.TasksCompleted++
			earned, _ := decimal.NewFromString(ap.Earnings)
			ap.Earnings = earned.Add(t.PaymentAmount).String()
		}
	}

	resp := &types.LabelerProjectsResp{AvailableProjects: available}
	for _, id := range order {
		resp.ActiveProjects = append(resp.ActiveProjects, *grouped[id])
	}
	return resp, nil
}
