package dao

import (
	"gorm.io/gorm"

	"github.com/labelchain/LabelChain/stores/gdb/market"
)

type Dao struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Dao {
	return &Dao{DB: db}
}

// Migrate 建表，TaskBatch的唯一索引是并发分配的关键约束
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&market.Company{},
		&market.Project{},
		&market.Labeler{},
		&market.Task{},
		&market.TaskBatch{},
	)
}
