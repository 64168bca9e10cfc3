package types

import "github.com/labelchain/LabelChain/stores/gdb/market"

type RegisterLabelerReq struct {
	WalletAddress      string `json:"wallet_address" binding:"required" validate:"required"`
	FirstName          string `json:"first_name" binding:"required" validate:"required,max=100"`
	LastName           string `json:"last_name" binding:"required" validate:"required,max=100"`
	Email              string `json:"email" binding:"required" validate:"required,email"`
	Country            string `json:"country" binding:"required" validate:"required,max=100"`
	PrimaryLanguage    string `json:"primary_language" validate:"max=50"`
	EnglishProficiency string `json:"english_proficiency" validate:"max=50"`
	AvailableHours     string `json:"available_hours" validate:"max=50"`
}

type RegisterLabelerResp struct {
	AlreadyRegistered bool            `json:"already_registered"`
	Labeler           *market.Labeler `json:"labeler"`
}

type UpdateSkillsReq struct {
	LabelerID      string   `json:"labeler_id" binding:"required" validate:"required"`
	Skills         []string `json:"skills" binding:"required" validate:"required,min=1"`
	AvailableHours string   `json:"hours_per_week" validate:"max=50"`
	PreferredTime  string   `json:"preferred_time" validate:"max=50"`
	Education      string   `json:"education" validate:"max=100"`
	Experience     string   `json:"prior_experience" validate:"max=100"`
	ExperienceDesc string   `json:"experience_description" validate:"max=2000"`
	DeviceType     string   `json:"device_type" validate:"max=50"`
	InternetSpeed  string   `json:"internet_speed" validate:"max=50"`
}

type LabelerStats struct {
	CompletedTasks int    `json:"completed_tasks"`
	TotalEarned    string `json:"total_earned"`
	ProjectCount   int    `json:"project_count"`
}

type LabelerProfileResp struct {
	Labeler *market.Labeler `json:"labeler"`
	Stats   LabelerStats    `json:"stats"`
}

// ActiveProject 标注员正在做的项目和进度汇总
type ActiveProject struct {
	Project        *market.Project `json:"project"`
	TasksTotal     int             `json:"tasks_total"`
	TasksCompleted int             `json:"tasks_completed"`
	Earnings       string          `json:"earnings"`
}

type LabelerProjectsResp struct {
	AvailableProjects []market.Project `json:"available_projects"`
	ActiveProjects    []ActiveProject  `json:"active_projects"`
}
