package svc

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/labelchain/LabelChain/chain"
	"github.com/labelchain/LabelChain/config"
	"github.com/labelchain/LabelChain/dao"
	"github.com/labelchain/LabelChain/logger/xzap"
	"github.com/labelchain/LabelChain/payment"
	"github.com/labelchain/LabelChain/storage"
)

type ServerCtx struct {
	C        *config.Config
	DB       *gorm.DB
	Dao      *dao.Dao
	Chain    chain.Client
	Payments *payment.Manager
	Storage  *storage.Service
}

func NewServiceContext(c *config.Config) (*ServerCtx, error) {
	xzap.InitLogger(c.Log.Level)

	db, err := gorm.Open(mysql.Open(c.DB.DSN), &gorm.Config{
		// 唯一键冲突要翻译成gorm.ErrDuplicatedKey，批次抢占靠它
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "open database failed")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(c.DB.MaxIdleCons)
	sqlDB.SetMaxOpenConns(c.DB.MaxOpenCons)

	if err := dao.Migrate(db); err != nil {
		return nil, errors.Wrap(err, "migrate database failed")
	}

	chainClient, err := chain.NewEthClient(&c.Chain)
	if err != nil {
		return nil, errors.Wrap(err, "init chain client failed")
	}

	store, err := storage.New(&c.Minio)
	if err != nil {
		return nil, errors.Wrap(err, "init object storage failed")
	}
	if err := store.EnsureBucket(context.Background()); err != nil {
		return nil, errors.Wrap(err, "ensure sample bucket failed")
	}

	return &ServerCtx{
		C:        c,
		DB:       db,
		Dao:      dao.New(db),
		Chain:    chainClient,
		Payments: payment.NewManager(chainClient, &c.Chain),
		Storage:  store,
	}, nil
}
