package payment

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/labelchain/LabelChain/chain"
	"github.com/labelchain/LabelChain/config"
	"github.com/labelchain/LabelChain/errcode"
	"github.com/labelchain/LabelChain/logger/xzap"
)

type State string

const (
	StateIdle       State = "idle"
	StateCreating   State = "creating"
	StateSending    State = "sending"
	StateConfirming State = "confirming"
	StateSuccess    State = "success"
	StateError      State = "error"
	// 软终态：交易可能仍会落块，等用户选择重查或接受
	StateTimeout State = "timeout"
)

// Attempt 一次打款的全部在途状态，生命周期内最多产生一个签名
type Attempt struct {
	mu sync.Mutex

	reference string
	recipient string
	amount    decimal.Decimal

	state     State
	signature string
	attempts  int
	errMsg    string
	// timeout后被用户手动接受
	accepted bool

	polling bool
	cancel  context.CancelFunc
}

// Snapshot 对外可见的状态快照，轮询是否在跑不影响可读性
type Snapshot struct {
	Reference   string `json:"reference"`
	State       State  `json:"state"`
	Signature   string `json:"signature,omitempty"`
	Attempts    int    `json:"attempts"`
	MaxAttempts int    `json:"max_attempts"`
	Amount      string `json:"amount"`
	ErrMsg      string `json:"error,omitempty"`
	ExplorerURL string `json:"explorer_url,omitempty"`
	Accepted    bool   `json:"accepted,omitempty"`
}

// Manager 按correlation reference管理打款状态机
type Manager struct {
	mu       sync.Mutex
	attempts map[string]*Attempt

	chain        chain.Client
	interval     time.Duration
	maxAttempts  int
	explorerBase string
}

func NewManager(client chain.Client, cfg *config.ChainConf) *Manager {
	return &Manager{
		attempts:     make(map[string]*Attempt),
		chain:        client,
		interval:     cfg.ConfirmInterval(),
		maxAttempts:  cfg.MaxConfirmAttempts,
		explorerBase: cfg.ExplorerBase,
	}
}

// Start 发起一笔打款。金额校验同步完成，提交和确认在后台推进。
// 同一个reference如果已经拿到过签名，不会再发第二笔转账，直接返回现状。
func (m *Manager) Start(ctx context.Context, reference, recipient, amount string) (*Snapshot, error) {
	m.mu.Lock()
	a, ok := m.attempts[reference]
	if ok {
		m.mu.Unlock()
		a.mu.Lock()
		defer a.mu.Unlock()
		// 只有还没发出交易的失败尝试允许重新开始
		if a.state != StateError || a.signature != "" {
			return m.snapshotLocked(a), nil
		}
		a.state = StateIdle
		a.errMsg = ""
	} else {
		a = &Attempt{reference: reference, recipient: recipient, state: StateIdle}
		m.attempts[reference] = a
		m.mu.Unlock()
		a.mu.Lock()
		defer a.mu.Unlock()
	}

	// Creating：金额必须是正数
	a.state = StateCreating
	amt, err := decimal.NewFromString(amount)
	if err != nil || !amt.IsPositive() {
		a.state = StateError
		a.errMsg = "invalid amount"
		return m.snapshotLocked(a), errcode.NewInvalidParamsErr("invalid amount")
	}
	a.amount = amt
	a.state = StateSending

	pollCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	a.cancel = cancel
	a.polling = true
	go m.submitAndConfirm(pollCtx, a)

	return m.snapshotLocked(a), nil
}

// submitAndConfirm Sending→Confirming在后台串行推进，签名只产生一次
func (m *Manager) submitAndConfirm(ctx context.Context, a *Attempt) {
	a.mu.Lock()
	transfer := &chain.Transfer{
		Recipient: a.recipient,
		Amount:    a.amount,
		Reference: a.reference,
	}
	a.mu.Unlock()

	sig, err := m.chain.Submit(ctx, transfer)

	a.mu.Lock()
	if err != nil {
		a.state = StateError
		a.errMsg = err.Error()
		a.polling = false
		a.mu.Unlock()
		xzap.WithContext(ctx).Warn("payment submit failed",
			zap.String("reference", a.reference), zap.Error(err))
		return
	}
	a.signature = sig
	a.attempts = 0
	a.state = StateConfirming
	a.mu.Unlock()

	xzap.WithContext(ctx).Info("payment submitted",
		zap.String("reference", a.reference), zap.String("signature", sig))

	m.confirmLoop(ctx, a)
}

// confirmLoop 固定间隔轮询签名状态，预算耗尽进timeout而不是error。
// 查询报错和未确认同样计入预算，按同一节奏重试。
func (m *Manager) confirmLoop(ctx context.Context, a *Attempt) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// 被放弃的轮询不改终态，停在confirming等人接续
			a.mu.Lock()
			a.polling = false
			a.mu.Unlock()
			return
		case <-ticker.C:
			a.mu.Lock()
			if a.state != StateConfirming {
				a.polling = false
				a.mu.Unlock()
				return
			}
			sig := a.signature
			a.mu.Unlock()

			status, err := m.chain.GetStatus(ctx, sig)

			a.mu.Lock()
			if a.state != StateConfirming {
				a.polling = false
				a.mu.Unlock()
				return
			}
			if err == nil && (status == chain.StatusConfirmed || status == chain.StatusFinalized) {
				a.state = StateSuccess
				a.polling = false
				a.mu.Unlock()
				xzap.WithContext(ctx).Info("payment confirmed",
					zap.String("reference", a.reference), zap.String("signature", sig))
				return
			}

			a.attempts++
			if a.attempts >= m.maxAttempts {
				a.state = StateTimeout
				a.polling = false
				a.mu.Unlock()
				xzap.WithContext(ctx).Warn("payment confirmation timed out",
					zap.String("reference", a.reference),
					zap.String("signature", sig),
					zap.Int("attempts", m.maxAttempts))
				return
			}
			a.mu.Unlock()
		}
	}
}

// Recheck timeout（或轮询被取消后的confirming）状态下重新开始确认，
// 复用已有签名，计数清零。绝不重新提交转账。
func (m *Manager) Recheck(ctx context.Context, reference string) (*Snapshot, error) {
	a := m.get(reference)
	if a == nil {
		return nil, errcode.ErrNotFound
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.signature == "" {
		return nil, errcode.NewInvalidParamsErr("no signature to recheck")
	}
	if a.state != StateTimeout && a.state != StateConfirming {
		return nil, errcode.NewInvalidParamsErr("attempt is not awaiting confirmation")
	}
	if a.polling {
		return m.snapshotLocked(a), nil
	}

	a.state = StateConfirming
	a.attempts = 0
	pollCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	a.cancel = cancel
	a.polling = true
	go m.confirmLoop(pollCtx, a)

	return m.snapshotLocked(a), nil
}

// Accept 用户选择把超时的交易当作成功，timeout是唯一入口
func (m *Manager) Accept(reference string) (*Snapshot, error) {
	a := m.get(reference)
	if a == nil {
		return nil, errcode.ErrNotFound
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != StateTimeout {
		return nil, errcode.NewInvalidParamsErr("only a timed out attempt can be accepted")
	}
	a.state = StateSuccess
	a.accepted = true
	if a.cancel != nil {
		a.cancel()
	}
	return m.snapshotLocked(a), nil
}

// Cancel 调用方放弃流程时停掉后台轮询，不改变attempt状态
func (m *Manager) Cancel(reference string) {
	a := m.get(reference)
	if a == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		a.cancel()
	}
}

// Get 当前状态快照
func (m *Manager) Get(reference string) (*Snapshot, error) {
	a := m.get(reference)
	if a == nil {
		return nil, errcode.ErrNotFound
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return m.snapshotLocked(a), nil
}

// VerifySuccess 资金协调器的前置校验：该reference的打款已成功
// （包含超时后被接受的情况），且签名一致
func (m *Manager) VerifySuccess(reference, signature string) bool {
	a := m.get(reference)
	if a == nil {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state == StateSuccess && a.signature == signature
}

func (m *Manager) get(reference string) *Attempt {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempts[reference]
}

func (m *Manager) snapshotLocked(a *Attempt) *Snapshot {
	s := &Snapshot{
		Reference:   a.reference,
		State:       a.state,
		Signature:   a.signature,
		Attempts:    a.attempts,
		MaxAttempts: m.maxAttempts,
		Amount:      a.amount.String(),
		ErrMsg:      a.errMsg,
		Accepted:    a.accepted,
	}
	if a.signature != "" {
		s.ExplorerURL = chain.ExplorerTxURL(m.explorerBase, a.signature)
	}
	return s
}
