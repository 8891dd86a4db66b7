package domain

import "strings"

// ChainID is an EVM chain id in 0x-prefixed hex, as reported by eth_chainId.
type ChainID string

const (
	ChainIDSepolia ChainID = "0xaa36a7"
	ChainIDMainnet ChainID = "0x1"
)

// Equal compares chain ids ignoring hex case.
func (c ChainID) Equal(other ChainID) bool {
	return strings.EqualFold(string(c), string(other))
}

// NativeCurrency describes a chain's gas token.
type NativeCurrency struct {
	Name     string `json:"name"     yaml:"name"`
	Symbol   string `json:"symbol"   yaml:"symbol"`
	Decimals int    `json:"decimals" yaml:"decimals"`
}

// ChainParams is the wallet_addEthereumChain registration payload.
type ChainParams struct {
	ChainID           ChainID        `json:"chainId"           yaml:"id"`
	ChainName         string         `json:"chainName"         yaml:"name"`
	NativeCurrency    NativeCurrency `json:"nativeCurrency"    yaml:"native_currency"`
	RPCURLs           []string       `json:"rpcUrls"           yaml:"rpc_urls"`
	BlockExplorerURLs []string       `json:"blockExplorerUrls" yaml:"block_explorer_urls"`
}

// Sepolia is the default target network.
var Sepolia = ChainParams{
	ChainID:   ChainIDSepolia,
	ChainName: "Sepolia",
	NativeCurrency: NativeCurrency{
		Name:     "Sepolia Ether",
		Symbol:   "SEP",
		Decimals: 18,
	},
	RPCURLs:           []string{"https://sepolia.infura.io/v3/"},
	BlockExplorerURLs: []string{"https://sepolia.etherscan.io/"},
}
