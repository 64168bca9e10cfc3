package dao

import (
	"context"

	"github.com/labelchain/LabelChain/stores/gdb/market"
)

func (d *Dao) CreateLabeler(c context.Context, labeler *market.Labeler) error {
	return d.DB.WithContext(c).Table(market.LabelerTableName()).Create(labeler).Error
}

func (d *Dao) GetLabelerByID(c context.Context, id string) (*market.Labeler, error) {
	var labeler market.Labeler
	err := d.DB.WithContext(c).
		Table(market.LabelerTableName()).Where("id = ?", id).First(&labeler).Error
	return &labeler, err
}

func (d *Dao) GetLabelerByWallet(c context.Context, walletAddress string) (*market.Labeler, error) {
	var labeler market.Labeler
	err := d.DB.WithContext(c).
		Table(market.LabelerTableName()).Where("wallet_address = ?", walletAddress).First(&labeler).Error
	return &labeler, err
}

// UpdateLabelerProfile 技能问卷等资料更新，字段白名单里没有聚合列，
// 钱包地址和收入计数永远不从这条路径写
func (d *Dao) UpdateLabelerProfile(c context.Context, labelerID string, profile *market.Labeler) error {
	return d.DB.WithContext(c).Table(market.LabelerTableName()).
		Where("id = ?", labelerID).
		Select("skills", "available_hours", "preferred_time", "education",
			"experience", "experience_desc", "device_type", "internet_speed").
		Updates(profile).Error
}
