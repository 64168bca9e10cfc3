package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/labelchain/LabelChain/errcode"
	"github.com/labelchain/LabelChain/logger/xzap"
	"github.com/labelchain/LabelChain/service/svc"
	types "github.com/labelchain/LabelChain/types/v1"
)

// SubmitTaskResult 提交标注结果并结算。任务完结、项目计数、标注员收入
// 在一个事务里落库；重复提交会拿到AlreadyCompleted，不会二次计酬。
// 回执里的reference是本地生成的对账号，按任务计酬的链上打款走
// 独立的批量出账流程，不在提交路径上
func SubmitTaskResult(ctx context.Context, s *svc.ServerCtx, taskID, labelerID string,
	result map[string]interface{}) (*types.SubmitTaskResp, error) {
	if len(result) == 0 {
		return nil, errcode.NewInvalidParamsErr("result is empty")
	}

	task, err := s.Dao.SettleTask(ctx, taskID, labelerID, result)
	if err != nil {
		if _, ok := err.(*errcode.Err); ok {
			return nil, err
		}
		return nil, errors.Wrap(err, "settle task failed")
	}

	receipt := &types.Receipt{
		Amount:    task.PaymentAmount.String(),
		Reference: "pay-" + uuid.New().String(),
	}

	xzap.WithContext(ctx).Info("task settled",
		zap.String("task_id", taskID),
		zap.String("labeler_id", labelerID),
		zap.String("amount", receipt.Amount),
		zap.String("reference", receipt.Reference))

	return &types.SubmitTaskResp{Task: task, Payment: receipt}, nil
}
