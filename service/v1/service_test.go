package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/labelchain/LabelChain/chain"
	"github.com/labelchain/LabelChain/config"
	"github.com/labelchain/LabelChain/dao"
	"github.com/labelchain/LabelChain/payment"
	"github.com/labelchain/LabelChain/service/svc"
	"github.com/labelchain/LabelChain/stores/gdb/market"
)

// fakeChain 测试用链客户端，状态可调
type fakeChain struct {
	mu        sync.Mutex
	status    chain.Status
	statusErr error
	signature string
	submitErr error
}

func (f *fakeChain) Submit(ctx context.Context, t *chain.Transfer) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return "", f.submitErr
	}
	if f.signature == "" {
		f.signature = "0xsig-" + t.Reference
	}
	return f.signature, nil
}

func (f *fakeChain) GetStatus(ctx context.Context, signature string) (chain.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statusErr != nil {
		return "", f.statusErr
	}
	return f.status, nil
}

func (f *fakeChain) setStatus(s chain.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = s
}

func newTestCtx(t *testing.T) (*svc.ServerCtx, *fakeChain) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "labelchain.db") + "?_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         glogger.Default.LogMode(glogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := dao.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	c := &config.Config{
		Chain: config.ChainConf{
			Name:               "sepolia",
			ChainID:            11155111,
			PlatformWallet:     "0xplatform",
			ExplorerBase:       "https://sepolia.etherscan.io",
			ConfirmIntervalSec: 1,
			MaxConfirmAttempts: 3,
			FinalityBlocks:     12,
		},
		Pricing: config.PricingConf{
			PricePerItem: "0.12",
			PerTaskRate:  "0.10",
			ItemsPerDay:  5000,
			MaxBatchSize: 10,
		},
	}

	fc := &fakeChain{status: chain.StatusConfirmed}
	return &svc.ServerCtx{
		C:        c,
		DB:       db,
		Dao:      dao.New(db),
		Chain:    fc,
		Payments: payment.NewManager(fc, &c.Chain),
	}, fc
}

func seedCompany(t *testing.T, s *svc.ServerCtx) *market.Company {
	t.Helper()
	company := &market.Company{
		ID:            uuid.New().String(),
		WalletAddress: "0xcompany-" + uuid.New().String(),
		CompanyName:   "Acme Data",
	}
	if err := s.Dao.CreateCompany(context.Background(), company); err != nil {
		t.Fatalf("seed company: %v", err)
	}
	return company
}

func seedProject(t *testing.T, s *svc.ServerCtx, companyID string,
	status market.ProjectStatus, projectType market.ProjectType, fileUrls []string) *market.Project {
	t.Helper()
	if fileUrls == nil {
		fileUrls = []string{}
	}
	project := &market.Project{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		Name:           "Street Scene Labels",
		Type:           projectType,
		Instructions:   "Label every vehicle in the frame",
		EstimatedItems: 5000,
		Status:         status,
		FileUrls:       fileUrls,
	}
	if err := s.Dao.CreateProject(context.Background(), project); err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return project
}

func seedLabeler(t *testing.T, s *svc.ServerCtx) *market.Labeler {
	t.Helper()
	labeler := &market.Labeler{
		ID:             uuid.New().String(),
		WalletAddress:  "0xlabeler-" + uuid.New().String(),
		FirstName:      "Ada",
		LastName:       "Wong",
		Skills:         []string{},
		AvailableHours: "flexible",
		Status:         market.LabelerStatusActive,
		TotalEarned:    decimal.Zero,
	}
	if err := s.Dao.CreateLabeler(context.Background(), labeler); err != nil {
		t.Fatalf("seed labeler: %v", err)
	}
	return labeler
}

func seedTask(t *testing.T, s *svc.ServerCtx, projectID, labelerID string) *market.Task {
	t.Helper()
	task := &market.Task{
		ID:            uuid.New().String(),
		ProjectID:     projectID,
		LabelerID:     labelerID,
		FileUrl:       "https://cdn.example.com/sample.jpg",
		Status:        market.TaskStatusPending,
		PaymentAmount: decimal.RequireFromString("0.10"),
		BatchNumber:   1,
		TaskData:      market.TaskData{Kind: market.TaskDataKindClassification},
	}
	if err := s.DB.Table(market.TaskTableName()).Create(task).Error; err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return task
}
