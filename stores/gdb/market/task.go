package market

import (
	"time"

	"github.com/shopspring/decimal"
)

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

type TaskDataKind string

const (
	// 分类任务：给定候选标签
	TaskDataKindClassification TaskDataKind = "classification"
	// 文本任务：给定原文和实体类别
	TaskDataKindText TaskDataKind = "text"
	// 该项目类型没有专用编辑器
	TaskDataKindNone TaskDataKind = "none"
)

// TaskData 按项目类型生成的任务负载，Kind决定哪些字段有效
type TaskData struct {
	Kind         TaskDataKind `json:"kind"`
	Instructions string       `json:"instructions"`
	ProjectType  ProjectType  `json:"project_type"`
	FileIndex    int          `json:"file_index"`
	Options      []string     `json:"options,omitempty"`
	Text         string       `json:"text,omitempty"`
	Categories   []string     `json:"categories,omitempty"`
}

type Task struct {
	ID        string `gorm:"primaryKey;size:64" json:"id"`
	ProjectID string `gorm:"size:64;not null;index:idx_task_project_labeler" json:"project_id"`
	// 任务创建后永久绑定该标注员，不做重新分配
	LabelerID     string          `gorm:"size:64;not null;index:idx_task_project_labeler" json:"labeler_id"`
	FileUrl       string          `gorm:"size:500" json:"file_url"`
	Status        TaskStatus      `gorm:"size:20;default:pending" json:"status"`
	PaymentAmount decimal.Decimal `gorm:"type:decimal(20,6)" json:"payment_amount"`
	BatchNumber   int             `gorm:"default:1" json:"batch_number"`
	TaskData      TaskData        `gorm:"serializer:json" json:"task_data"`
	// 提交的标注结果原样保存
	Result      map[string]interface{} `gorm:"serializer:json" json:"result,omitempty"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

func (Task) TableName() string {
	return TaskTableName()
}

func TaskTableName() string {
	return "task"
}

// TaskBatch 每个(project, labeler, batch)唯一，作为并发分配的串行化点：
// 两个请求同时为同一对创建批次时，唯一索引保证只有一个能落库
type TaskBatch struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID   string    `gorm:"size:64;not null;uniqueIndex:idx_batch_owner" json:"project_id"`
	LabelerID   string    `gorm:"size:64;not null;uniqueIndex:idx_batch_owner" json:"labeler_id"`
	BatchNumber int       `gorm:"not null;uniqueIndex:idx_batch_owner" json:"batch_number"`
	TaskCount   int       `gorm:"not null" json:"task_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func (TaskBatch) TableName() string {
	return TaskBatchTableName()
}

func TaskBatchTableName() string {
	return "task_batch"
}
