package txdecode

// knownSelectors maps 4-byte call selectors (lowercase hex, no 0x prefix) to
// the canonical signatures of widely deployed contract methods. It backs
// selector-only decoding when no verified interface is available, covering the
// ERC-20/ERC-721 surface, ownership management, minting, deposits and
// withdrawals, reward claims, the common router swap family, and generic
// execute wrappers.
var knownSelectors = map[string]string{
	// ERC-20 standard
	"a9059cbb": "transfer(address,uint256)",
	"23b872dd": "transferFrom(address,address,uint256)",
	"095ea7b3": "approve(address,uint256)",

	// ERC-721 / operator approvals
	"a22cb465": "setApprovalForAll(address,bool)",
	"42842e0e": "safeTransferFrom(address,address,uint256)",
	"b88d4fde": "safeTransferFrom(address,address,uint256,bytes)",

	// Ownership
	"f2fde38b": "transferOwnership(address)",
	"715018a6": "renounceOwnership()",

	// Minting
	"40c10f19": "mint(address,uint256)",
	"a0712d68": "mint(uint256)",
	"6a627842": "mint(address)",

	// Deposit / withdraw
	"d0e30db0": "deposit()",
	"b6b55f25": "deposit(uint256)",
	"2e1a7d4d": "withdraw(uint256)",
	"3ccfd60b": "withdraw()",

	// Staking / rewards
	"4e71d92d": "claim()",
	"379607f5": "claim(uint256)",

	// Uniswap V2-style routers
	"38ed1739": "swapExactTokensForTokens(uint256,uint256,address[],address,uint256)",
	"7ff36ab5": "swapExactETHForTokens(uint256,address[],address,uint256)",
	"18cbafe5": "swapExactTokensForETH(uint256,uint256,address[],address,uint256)",
	"8803dbee": "swapTokensForExactTokens(uint256,uint256,address[],address,uint256)",

	// Generic execution wrappers
	"b61d27f6": "execute(address,uint256,bytes)",
	"1cff79cd": "execute(address,bytes)",
}

// LookupSelector returns the canonical signature for a 4-byte selector given
// as lowercase hex without the 0x prefix.
func LookupSelector(selectorHex string) (string, bool) {
	sig, ok := knownSelectors[selectorHex]
	return sig, ok
}
