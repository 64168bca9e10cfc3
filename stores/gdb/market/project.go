package market

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProjectStatus string

const (
	ProjectStatusDraft      ProjectStatus = "draft"
	ProjectStatusFunded     ProjectStatus = "funded"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
)

type ProjectType string

const (
	ProjectTypeImageClassification ProjectType = "image-classification"
	ProjectTypeObjectDetection     ProjectType = "object-detection"
	ProjectTypeTextAnnotation      ProjectType = "text-annotation"
	ProjectTypeAudioTranscription  ProjectType = "audio-transcription"
	ProjectTypeDataCleaning        ProjectType = "data-cleaning"
	ProjectTypeSentimentAnalysis   ProjectType = "sentiment-analysis"
)

// ValidProjectType 项目类型必须落在已知的标注类型里
func ValidProjectType(t ProjectType) bool {
	switch t {
	case ProjectTypeImageClassification, ProjectTypeObjectDetection,
		ProjectTypeTextAnnotation, ProjectTypeAudioTranscription,
		ProjectTypeDataCleaning, ProjectTypeSentimentAnalysis:
		return true
	}
	return false
}

type QualityRequirement string

const (
	QualityStandard QualityRequirement = "standard"
	QualityHigh     QualityRequirement = "high"
	QualityPremium  QualityRequirement = "premium"
)

// AccuracyTarget 质量档位对应的准确率目标（百分比）
func (q QualityRequirement) AccuracyTarget() int {
	switch q {
	case QualityHigh:
		return 95
	case QualityPremium:
		return 98
	default:
		return 90
	}
}

type Project struct {
	ID          string      `gorm:"primaryKey;size:64" json:"id"`
	CompanyID   string      `gorm:"size:64;not null;index" json:"company_id"`
	Name        string      `gorm:"size:200;not null" json:"name"`
	Type        ProjectType `gorm:"size:50;not null" json:"type"`
	Description string      `gorm:"type:text" json:"description"`
	// 给标注员看的操作说明
	Instructions       string             `gorm:"type:text" json:"instructions"`
	QualityRequirement QualityRequirement `gorm:"size:20;default:standard" json:"quality_requirement"`
	EstimatedItems     int                `gorm:"not null" json:"estimated_items"`
	Status             ProjectStatus      `gorm:"size:20;default:draft;index" json:"status"`
	FileUrls           []string           `gorm:"serializer:json" json:"file_urls"`
	PaymentAmount      decimal.Decimal    `gorm:"type:decimal(20,6)" json:"payment_amount"`
	// 只增不减，由结算路径原子累加；可能超过EstimatedItems，不做截断
	ItemsCompleted          int        `gorm:"default:0" json:"items_completed"`
	EstimatedCompletionDate *time.Time `json:"estimated_completion_date,omitempty"`
	// 打款成功后写入，只写一次
	TransactionSignature string    `gorm:"size:200" json:"transaction_signature"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (Project) TableName() string {
	return ProjectTableName()
}

func ProjectTableName() string {
	return "project"
}
