package chain

import "fmt"

const (
	Eth      = "eth"
	Optimism = "optimism"
	Sepolia  = "sepolia"
)

const (
	EthChainID      = 1
	OptimismChainID = 10
	SepoliaChainID  = 11155111
)

// ExplorerTxURL 拼出区块浏览器的交易链接，超时场景要展示给用户
func ExplorerTxURL(explorerBase, signature string) string {
	return fmt.Sprintf("%s/tx/%s", explorerBase, signature)
}
