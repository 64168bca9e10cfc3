package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/labelchain/LabelChain/chain"
	"github.com/labelchain/LabelChain/errcode"
	"github.com/labelchain/LabelChain/logger/xzap"
	"github.com/labelchain/LabelChain/service/svc"
	"github.com/labelchain/LabelChain/stores/gdb/market"
)

// FundProject 消费打款状态机的终态，把项目推进到funded。
// 前提：以项目ID为reference的打款已经成功（含超时后被接受），签名一致。
// 签名不是本服务发起的（比如企业自己的钱包直接转账）时，退化为直接查链。
// 只有draft状态能被打款，重复打款会被拒绝而不是覆盖
func FundProject(ctx context.Context, s *svc.ServerCtx, projectID, amount, signature string) (*market.Project, error) {
	amt, err := decimal.NewFromString(amount)
	if err != nil || !amt.IsPositive() {
		return nil, errcode.NewInvalidParamsErr("invalid amount")
	}

	if _, err := s.Dao.GetProjectByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.NewNotFoundErr("project not found")
		}
		return nil, errors.Wrap(err, "query project failed")
	}

	if !s.Payments.VerifySuccess(projectID, signature) {
		status, err := s.Chain.GetStatus(ctx, signature)
		if err != nil {
			return nil, errors.Wrap(err, "verify funding signature failed")
		}
		if status != chain.StatusConfirmed && status != chain.StatusFinalized {
			return nil, errcode.NewInvalidParamsErr("funding transaction is not confirmed")
		}
	}

	completionDate := estimateCompletionDate(amt, s.C.Pricing.PricePerItemDecimal(), s.C.Pricing.ItemsPerDay)

	funded, err := s.Dao.FundProject(ctx, projectID, amt, completionDate, signature)
	if err != nil {
		return nil, errors.Wrap(err, "fund project failed")
	}
	if !funded {
		// 项目存在但不在draft：已经打过款了
		return nil, errcode.NewForbiddenErr("project is already funded")
	}

	xzap.WithContext(ctx).Info("project funded",
		zap.String("project_id", projectID),
		zap.String("amount", amt.String()),
		zap.String("signature", signature))

	return s.Dao.GetProjectByID(ctx, projectID)
}

// estimateCompletionDate 按金额倒推条目数，再按日吞吐折算天数
func estimateCompletionDate(amount, pricePerItem decimal.Decimal, itemsPerDay int) time.Time {
	items := amount.Div(pricePerItem).Floor()
	days := items.Div(decimal.NewFromInt(int64(itemsPerDay))).Ceil().IntPart()
	if days < 1 {
		days = 1
	}
	return time.Now().AddDate(0, 0, int(days))
}
