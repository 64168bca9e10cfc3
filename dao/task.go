package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/labelchain/LabelChain/errcode"
	"github.com/labelchain/LabelChain/stores/gdb/market"
)

func (d *Dao) GetTaskByID(c context.Context, taskID string) (*market.Task, error) {
	var task market.Task
	err := d.DB.WithContext(c).
		Table(market.TaskTableName()).Where("id = ?", taskID).First(&task).Error
	return &task, err
}

func (d *Dao) GetTasksByProjectAndLabeler(c context.Context, projectID, labelerID string) ([]market.Task, error) {
	var tasks []market.Task
	err := d.DB.WithContext(c).
		Table(market.TaskTableName()).
		Where("project_id = ? AND labeler_id = ?", projectID, labelerID).
		Order("created_at ASC, id ASC").Find(&tasks).Error
	return tasks, err
}

func (d *Dao) GetTasksByLabeler(c context.Context, labelerID string) ([]market.Task, error) {
	var tasks []market.Task
	err := d.DB.WithContext(c).
		Table(market.TaskTableName()).Where("labeler_id = ?", labelerID).
		Order("created_at ASC").Find(&tasks).Error
	return tasks, err
}

// CreateTaskBatch 先占批次行再落任务，整体一个事务。
// (project, labeler, batch)唯一索引保证并发下最多一个批次能创建成功，
// 输掉的那个拿到gorm.ErrDuplicatedKey；事务回滚也保证不会留下半个批次
func (d *Dao) CreateTaskBatch(c context.Context, batch *market.TaskBatch, tasks []*market.Task) error {
	return d.DB.WithContext(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(market.TaskBatchTableName()).Create(batch).Error; err != nil {
			return err
		}
		return tx.Table(market.TaskTableName()).CreateInBatches(tasks, 100).Error
	})
}

// SettleTask 结算：任务完结+项目计数+标注员收入，一个事务内完成。
// 行锁加状态守卫双保险，重复提交拿AlreadyCompleted而不是二次计酬
func (d *Dao) SettleTask(c context.Context, taskID, labelerID string, result map[string]interface{}) (*market.Task, error) {
	var task market.Task
	err := d.DB.WithContext(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(market.TaskTableName()).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", taskID).First(&task).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errcode.NewNotFoundErr("task not found")
			}
			return err
		}

		if task.LabelerID != labelerID {
			return errcode.NewForbiddenErr("task belongs to another labeler")
		}
		if task.Status == market.TaskStatusCompleted {
			return errcode.ErrAlreadyCompleted
		}

		now := time.Now()
		res := tx.Table(market.TaskTableName()).
			Where("id = ? AND status = ?", taskID, market.TaskStatusPending).
			Select("status", "result", "completed_at").
			Updates(&market.Task{
				Status:      market.TaskStatusCompleted,
				Result:      result,
				CompletedAt: &now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errcode.ErrAlreadyCompleted
		}

		// 聚合计数只走这里的原子累加，绝不读改写
		if err := tx.Table(market.ProjectTableName()).
			Where("id = ?", task.ProjectID).
			UpdateColumn("items_completed", gorm.Expr("items_completed + ?", 1)).Error; err != nil {
			return err
		}

		if err := tx.Table(market.LabelerTableName()).
			Where("id = ?", labelerID).
			UpdateColumns(map[string]interface{}{
				"tasks_completed": gorm.Expr("tasks_completed + ?", 1),
				"total_earned":    gorm.Expr("total_earned + ?", task.PaymentAmount),
			}).Error; err != nil {
			return err
		}

		task.Status = market.TaskStatusCompleted
		task.Result = result
		task.CompletedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}
