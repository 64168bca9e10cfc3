package chain

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/labelchain/LabelChain/config"
)

type Status string

const (
	StatusUnconfirmed Status = "unconfirmed"
	StatusConfirmed   Status = "confirmed"
	StatusFinalized   Status = "finalized"
)

// Transfer 一笔待上链的打款，Reference用于事后对账（写进calldata）
type Transfer struct {
	Recipient string
	Amount    decimal.Decimal
	Reference string
}

// Client 链上交互边界：提交交易、查询签名状态
type Client interface {
	Submit(ctx context.Context, t *Transfer) (string, error)
	GetStatus(ctx context.Context, signature string) (Status, error)
}

const (
	transferGasLimit = 100000
	// 占位折算：稳定币转账暂以原生币1/100金额代替
	amountDivisor = 100
)

// EthClient 基于ethclient的Client实现
type EthClient struct {
	client     *ethclient.Client
	cfg        *config.ChainConf
	privateKey *ecdsa.PrivateKey
	from       common.Address
}

func NewEthClient(cfg *config.ChainConf) (*EthClient, error) {
	var client *ethclient.Client
	var err error

	// 公共RPC偶发连不上，最多重试3次
	for i := 0; i < 3; i++ {
		client, err = ethclient.Dial(cfg.RPCEndpoint)
		if err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to chain rpc")
	}

	c := &EthClient{client: client, cfg: cfg}
	if cfg.PrivateKey != "" {
		key, err := crypto.HexToECDSA(cfg.PrivateKey)
		if err != nil {
			return nil, errors.Wrap(err, "invalid chain private key")
		}
		c.privateKey = key
		c.from = crypto.PubkeyToAddress(key.PublicKey)
	}
	return c, nil
}

// Submit 构造、签名并发送一笔转账，返回交易哈希
func (c *EthClient) Submit(ctx context.Context, t *Transfer) (string, error) {
	if c.privateKey == nil {
		return "", errors.New("chain private key not configured")
	}
	if !common.IsHexAddress(t.Recipient) {
		return "", errors.New("recipient address is illegal")
	}

	nonce, err := c.client.PendingNonceAt(ctx, c.from)
	if err != nil {
		return "", errors.Wrap(err, "get pending nonce failed")
	}

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return "", errors.Wrap(err, "get gas price failed")
	}

	value := toWei(t.Amount)
	data := []byte("project:" + t.Reference)

	tx := types.NewTransaction(nonce, common.HexToAddress(t.Recipient), value, transferGasLimit, gasPrice, data)

	signedTx, err := types.SignTx(tx, types.NewEIP155Signer(big.NewInt(c.cfg.ChainID)), c.privateKey)
	if err != nil {
		return "", errors.Wrap(err, "sign transaction failed")
	}

	if err := c.client.SendTransaction(ctx, signedTx); err != nil {
		return "", errors.Wrap(err, "send transaction failed")
	}

	return signedTx.Hash().Hex(), nil
}

// GetStatus 按回执和确认深度归类签名状态
func (c *EthClient) GetStatus(ctx context.Context, signature string) (Status, error) {
	receipt, err := c.client.TransactionReceipt(ctx, common.HexToHash(signature))
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return StatusUnconfirmed, nil
		}
		return "", errors.Wrap(err, "get transaction receipt failed")
	}

	if receipt.Status == types.ReceiptStatusFailed {
		return "", errors.New("transaction reverted on chain")
	}

	head, err := c.client.BlockNumber(ctx)
	if err != nil {
		// 回执已经拿到了，查不到最新块高就先按confirmed报
		return StatusConfirmed, nil
	}

	confirmations := new(big.Int).Sub(new(big.Int).SetUint64(head), receipt.BlockNumber)
	if confirmations.Cmp(big.NewInt(c.cfg.FinalityBlocks)) >= 0 {
		return StatusFinalized, nil
	}
	return StatusConfirmed, nil
}

func toWei(amount decimal.Decimal) *big.Int {
	wei := amount.Mul(decimal.New(1, 18)).Div(decimal.NewFromInt(amountDivisor))
	return wei.BigInt()
}
