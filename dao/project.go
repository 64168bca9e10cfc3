package dao

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/labelchain/LabelChain/stores/gdb/market"
)

func (d *Dao) CreateProject(c context.Context, project *market.Project) error {
	return d.DB.WithContext(c).Table(market.ProjectTableName()).Create(project).Error
}

func (d *Dao) GetProjectByID(c context.Context, id string) (*market.Project, error) {
	var project market.Project
	err := d.DB.WithContext(c).
		Table(market.ProjectTableName()).Where("id = ?", id).First(&project).Error
	return &project, err
}

func (d *Dao) GetProjectsByCompany(c context.Context, companyID string) ([]market.Project, error) {
	var projects []market.Project
	err := d.DB.WithContext(c).
		Table(market.ProjectTableName()).Where("company_id = ?", companyID).
		Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// GetWorkableProjects 标注员可见的项目：已打款及以后的状态
func (d *Dao) GetWorkableProjects(c context.Context, projectType string) ([]market.Project, error) {
	var projects []market.Project
	q := d.DB.WithContext(c).Table(market.ProjectTableName()).
		Where("status IN ?", []market.ProjectStatus{market.ProjectStatusFunded, market.ProjectStatusInProgress})
	if projectType != "" {
		q = q.Where("type = ?", projectType)
	}
	err := q.Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// AppendProjectFileUrl 上传完成后把文件URL追加到样本池
func (d *Dao) AppendProjectFileUrl(c context.Context, projectID, fileUrl string) error {
	return d.DB.WithContext(c).Transaction(func(tx *gorm.DB) error {
		var project market.Project
		if err := tx.Table(market.ProjectTableName()).
			Where("id = ?", projectID).First(&project).Error; err != nil {
			return err
		}
		project.FileUrls = append(project.FileUrls, fileUrl)
		return tx.Table(market.ProjectTableName()).
			Where("id = ?", projectID).Update("file_urls", project.FileUrls).Error
	})
}

// FundProject 只允许draft状态的项目被打款，返回是否真的更新到了。
// rows==0且项目存在说明已经打过款，由调用方区分
func (d *Dao) FundProject(c context.Context, projectID string, amount decimal.Decimal,
	completionDate time.Time, signature string) (bool, error) {
	res := d.DB.WithContext(c).Table(market.ProjectTableName()).
		Where("id = ? AND status = ?", projectID, market.ProjectStatusDraft).
		Updates(map[string]interface{}{
			"status":                    market.ProjectStatusFunded,
			"payment_amount":            amount,
			"items_completed":           0,
			"estimated_completion_date": completionDate,
			"transaction_signature":     signature,
		})
	return res.RowsAffected > 0, res.Error
}

// UpdateProjectStatusFrom 带前置状态的状态迁移，防止并发写回退
func (d *Dao) UpdateProjectStatusFrom(c context.Context, projectID string,
	from, to market.ProjectStatus) (bool, error) {
	res := d.DB.WithContext(c).Table(market.ProjectTableName()).
		Where("id = ? AND status = ?", projectID, from).
		Update("status", to)
	return res.RowsAffected > 0, res.Error
}
