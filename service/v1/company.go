package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/labelchain/LabelChain/errcode"
	"github.com/labelchain/LabelChain/service/svc"
	"github.com/labelchain/LabelChain/stores/gdb/market"
	types "github.com/labelchain/LabelChain/types/v1"
)

// RegisterCompany 企业注册，钱包地址唯一
func RegisterCompany(ctx context.Context, s *svc.ServerCtx, req types.RegisterCompanyReq) (*market.Company, error) {
	if existing, err := s.Dao.GetCompanyByWallet(ctx, req.WalletAddress); err == nil {
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "query company failed")
	}

	company := &market.Company{
		ID:            uuid.New().String(),
		WalletAddress: req.WalletAddress,
		CompanyName:   req.CompanyName,
		Industry:      req.Industry,
		ContactName:   req.ContactName,
		Email:         req.Email,
		Description:   req.Description,
	}
	if err := s.Dao.CreateCompany(ctx, company); err != nil {
		return nil, errors.Wrap(err, "create company failed")
	}
	return company, nil
}

// GetCompanyByWallet 企业控制台：公司信息+名下项目
func GetCompanyByWallet(ctx context.Context, s *svc.ServerCtx, walletAddress string) (*types.CompanyResp, error) {
	company, err := s.Dao.GetCompanyByWallet(ctx, walletAddress)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.NewNotFoundErr("company not found")
		}
		return nil, errors.Wrap(err, "query company failed")
	}

	projects, err := s.Dao.GetProjectsByCompany(ctx, company.ID)
	if err != nil {
		return nil, errors.Wrap(err, "query company projects failed")
	}

	return &types.CompanyResp{Company: company, Projects: projects}, nil
}
