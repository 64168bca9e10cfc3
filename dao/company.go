package dao

import (
	"context"

	"github.com/labelchain/LabelChain/stores/gdb/market"
)

func (d *Dao) CreateCompany(c context.Context, company *market.Company) error {
	return d.DB.WithContext(c).Table(market.CompanyTableName()).Create(company).Error
}

func (d *Dao) GetCompanyByID(c context.Context, id string) (*market.Company, error) {
	var company market.Company
	err := d.DB.WithContext(c).
		Table(market.CompanyTableName()).Where("id = ?", id).First(&company).Error
	return &company, err
}

func (d *Dao) GetCompanyByWallet(c context.Context, walletAddress string) (*market.Company, error) {
	var company market.Company
	err := d.DB.WithContext(c).
		Table(market.CompanyTableName()).Where("wallet_address = ?", walletAddress).First(&company).Error
	return &company, err
}
