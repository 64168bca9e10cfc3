package payment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/labelchain/LabelChain/chain"
)

// fakeChain 可编排的链客户端：控制提交结果和每次状态查询的返回
type fakeChain struct {
	mu          sync.Mutex
	submitErr   error
	submitCalls int
	signature   string

	statusCalls int
	// 第n次查询（1起）返回的状态，没配到的按unconfirmed处理
	statusAt  map[int]chain.Status
	statusErr map[int]error
}

func (f *fakeChain) Submit(ctx context.Context, t *chain.Transfer) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitCalls++
	if f.submitErr != nil {
		return "", f.submitErr
	}
	if f.signature == "" {
		f.signature = "0xabc123"
	}
	return f.signature, nil
}

func (f *fakeChain) GetStatus(ctx context.Context, signature string) (chain.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	if err, ok := f.statusErr[f.statusCalls]; ok {
		return "", err
	}
	if s, ok := f.statusAt[f.statusCalls]; ok {
		return s, nil
	}
	return chain.StatusUnconfirmed, nil
}

func (f *fakeChain) submits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitCalls
}

func (f *fakeChain) statuses() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statusCalls
}

func newTestManager(c chain.Client, maxAttempts int) *Manager {
	return &Manager{
		attempts:     make(map[string]*Attempt),
		chain:        c,
		interval:     2 * time.Millisecond,
		maxAttempts:  maxAttempts,
		explorerBase: "https://sepolia.etherscan.io",
	}
}

func waitState(t *testing.T, m *Manager, ref string, want State) *Snapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		snap, err := m.Get(ref)
		if err != nil {
			t.Fatalf("get attempt: %v", err)
		}
		if snap.State == want {
			return snap
		}
		time.Sleep(time.Millisecond)
	}
	snap, _ := m.Get(ref)
	t.Fatalf("attempt never reached %s, stuck at %s", want, snap.State)
	return nil
}

func TestPaymentConfirmedEarly(t *testing.T) {
	fc := &fakeChain{statusAt: map[int]chain.Status{3: chain.StatusFinalized}}
	m := newTestManager(fc, 20)

	snap, err := m.Start(context.Background(), "proj-1", "0xrecipient", "500")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if snap.State != StateSending && snap.State != StateConfirming {
		t.Errorf("expected sending/confirming right after start, got %s", snap.State)
	}

	snap = waitState(t, m, "proj-1", StateSuccess)
	if snap.Signature == "" {
		t.Error("success without signature")
	}
	if snap.ExplorerURL == "" {
		t.Error("expected explorer url on snapshot")
	}
	// 第3次就确认了，不应该把预算跑满
	if n := fc.statuses(); n > 4 {
		t.Errorf("expected polling to stop after confirmation, got %d status calls", n)
	}
}

func TestPaymentTimeoutAfterBudget(t *testing.T) {
	fc := &fakeChain{} // 永远unconfirmed
	m := newTestManager(fc, 5)

	if _, err := m.Start(context.Background(), "proj-2", "0xrecipient", "100"); err != nil {
		t.Fatalf("start: %v", err)
	}

	snap := waitState(t, m, "proj-2", StateTimeout)
	if snap.Attempts != 5 {
		t.Errorf("expected exactly 5 attempts, got %d", snap.Attempts)
	}
	if snap.State == StateError {
		t.Error("budget exhaustion must end in timeout, not error")
	}

	// 预算耗尽后轮询必须停
	calls := fc.statuses()
	time.Sleep(20 * time.Millisecond)
	if got := fc.statuses(); got != calls {
		t.Errorf("polling continued after timeout: %d -> %d", calls, got)
	}
}

func TestPaymentTransientErrorsCountAsUnconfirmed(t *testing.T) {
	fc := &fakeChain{statusErr: map[int]error{
		1: errors.New("rpc hiccup"),
		2: errors.New("rpc hiccup"),
	}}
	m := newTestManager(fc, 4)

	if _, err := m.Start(context.Background(), "proj-3", "0xrecipient", "100"); err != nil {
		t.Fatalf("start: %v", err)
	}

	snap := waitState(t, m, "proj-3", StateTimeout)
	// 报错的查询和未确认一样计入预算
	if snap.Attempts != 4 {
		t.Errorf("expected 4 attempts, got %d", snap.Attempts)
	}
}

func TestPaymentSubmitFailure(t *testing.T) {
	fc := &fakeChain{submitErr: errors.New("insufficient funds")}
	m := newTestManager(fc, 20)

	if _, err := m.Start(context.Background(), "proj-4", "0xrecipient", "100"); err != nil {
		t.Fatalf("start: %v", err)
	}

	snap := waitState(t, m, "proj-4", StateError)
	if snap.ErrMsg == "" {
		t.Error("expected underlying error message")
	}
	if snap.Signature != "" {
		t.Error("failed submission must not carry a signature")
	}
}

func TestPaymentInvalidAmount(t *testing.T) {
	fc := &fakeChain{}
	m := newTestManager(fc, 20)

	for _, amount := range []string{"-5", "0", "abc", ""} {
		ref := "bad-" + amount
		if _, err := m.Start(context.Background(), ref, "0xrecipient", amount); err == nil {
			t.Errorf("amount %q accepted", amount)
		}
		snap, err := m.Get(ref)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if snap.State != StateError {
			t.Errorf("amount %q: expected error state, got %s", amount, snap.State)
		}
	}
	if fc.submits() != 0 {
		t.Errorf("invalid amounts must never reach Submit, got %d calls", fc.submits())
	}
}

func TestPaymentSingleSignature(t *testing.T) {
	fc := &fakeChain{}
	m := newTestManager(fc, 3)

	if _, err := m.Start(context.Background(), "proj-5", "0xrecipient", "100"); err != nil {
		t.Fatalf("start: %v", err)
	}
	waitState(t, m, "proj-5", StateTimeout)

	// 超时后再Start同一个reference：不允许再发第二笔
	snap, err := m.Start(context.Background(), "proj-5", "0xrecipient", "100")
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if snap.State != StateTimeout {
		t.Errorf("expected existing timeout snapshot, got %s", snap.State)
	}

	// Recheck也只能复用签名
	if _, err := m.Recheck(context.Background(), "proj-5"); err != nil {
		t.Fatalf("recheck: %v", err)
	}
	waitState(t, m, "proj-5", StateTimeout)

	if fc.submits() != 1 {
		t.Errorf("expected exactly one Submit for the attempt, got %d", fc.submits())
	}
}

func TestPaymentRecheckResetsBudget(t *testing.T) {
	fc := &fakeChain{}
	m := newTestManager(fc, 3)

	if _, err := m.Start(context.Background(), "proj-6", "0xrecipient", "100"); err != nil {
		t.Fatalf("start: %v", err)
	}
	waitState(t, m, "proj-6", StateTimeout)

	// 重查时链上已确认
	fc.mu.Lock()
	fc.statusAt = map[int]chain.Status{fc.statusCalls + 1: chain.StatusConfirmed}
	fc.mu.Unlock()

	snap, err := m.Recheck(context.Background(), "proj-6")
	if err != nil {
		t.Fatalf("recheck: %v", err)
	}
	if snap.Attempts != 0 {
		t.Errorf("recheck must reset attempts, got %d", snap.Attempts)
	}
	waitState(t, m, "proj-6", StateSuccess)
}

func TestPaymentAcceptOnlyFromTimeout(t *testing.T) {
	fc := &fakeChain{}
	m := newTestManager(fc, 2)

	if _, err := m.Start(context.Background(), "proj-7", "0xrecipient", "100"); err != nil {
		t.Fatalf("start: %v", err)
	}

	// confirming期间不允许accept
	if _, err := m.Accept("proj-7"); err == nil {
		snap, _ := m.Get("proj-7")
		if snap.State == StateSuccess && !snap.Accepted {
			t.Error("accept succeeded outside timeout state")
		}
	}

	waitState(t, m, "proj-7", StateTimeout)

	snap, err := m.Accept("proj-7")
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if snap.State != StateSuccess || !snap.Accepted {
		t.Errorf("expected accepted success, got state=%s accepted=%v", snap.State, snap.Accepted)
	}

	if !m.VerifySuccess("proj-7", snap.Signature) {
		t.Error("accepted attempt must verify as success")
	}
}

func TestPaymentCancelKeepsConfirming(t *testing.T) {
	fc := &fakeChain{}
	m := newTestManager(fc, 1000)

	if _, err := m.Start(context.Background(), "proj-8", "0xrecipient", "100"); err != nil {
		t.Fatalf("start: %v", err)
	}
	waitState(t, m, "proj-8", StateConfirming)

	m.Cancel("proj-8")
	time.Sleep(10 * time.Millisecond)
	calls := fc.statuses()
	time.Sleep(20 * time.Millisecond)
	if fc.statuses() != calls {
		t.Error("polling survived cancellation")
	}

	snap, err := m.Get("proj-8")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	// 取消不动终态，留在confirming等后续接上
	if snap.State != StateConfirming {
		t.Errorf("cancel must leave attempt in confirming, got %s", snap.State)
	}

	// 同一签名可以继续确认
	fc.mu.Lock()
	fc.statusAt = map[int]chain.Status{fc.statusCalls + 1: chain.StatusFinalized}
	fc.mu.Unlock()
	if _, err := m.Recheck(context.Background(), "proj-8"); err != nil {
		t.Fatalf("recheck after cancel: %v", err)
	}
	waitState(t, m, "proj-8", StateSuccess)

	if fc.submits() != 1 {
		t.Errorf("resume must not resubmit, got %d submits", fc.submits())
	}
}

func TestVerifySuccess(t *testing.T) {
	fc := &fakeChain{statusAt: map[int]chain.Status{1: chain.StatusConfirmed}}
	m := newTestManager(fc, 20)

	if _, err := m.Start(context.Background(), "proj-9", "0xrecipient", "250"); err != nil {
		t.Fatalf("start: %v", err)
	}
	snap := waitState(t, m, "proj-9", StateSuccess)

	if !m.VerifySuccess("proj-9", snap.Signature) {
		t.Error("expected verify to pass for matching signature")
	}
	if m.VerifySuccess("proj-9", "0xother") {
		t.Error("verify passed with wrong signature")
	}
	if m.VerifySuccess("unknown", snap.Signature) {
		t.Error("verify passed for unknown reference")
	}
}
