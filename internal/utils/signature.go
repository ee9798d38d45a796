package utils

import (
	"strings" // Case-insensitive address comparison

	"github.com/ethereum/go-ethereum/accounts"       // Personal-message hashing (EIP-191)
	"github.com/ethereum/go-ethereum/common"         // Address validation
	"github.com/ethereum/go-ethereum/common/hexutil" // Hex decoding of the signature
	"github.com/ethereum/go-ethereum/crypto"         // secp256k1 public key recovery
)

// IsHexWalletAddress reports whether s is a 0x-prefixed 20-byte hex address.
// The length check forces the prefix, which IsHexAddress treats as optional.
func IsHexWalletAddress(s string) bool {
	return len(s) == 42 && common.IsHexAddress(s)
}

// VerifyWalletSignature checks that address produced signature over message
// using the personal-message signing scheme. Every failure path returns false;
// recovery errors are never propagated to the caller.
func VerifyWalletSignature(address, signature, message string) bool {
	// Reject malformed inputs up front
	if !IsHexWalletAddress(address) || signature == "" || message == "" {
		return false
	}
	// Decode the 65-byte [R || S || V] signature
	sig, err := hexutil.Decode(signature)
	if err != nil || len(sig) != 65 {
		return false
	}
	// Wallets emit V as 27/28, the recovery code expects 0/1
	if sig[64] >= 27 {
		sig[64] -= 27
	}
	if sig[64] > 1 {
		return false
	}
	// Recover the signing public key from the personal-message hash
	hash := accounts.TextHash([]byte(message))
	pub, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return false
	}
	recovered := crypto.PubkeyToAddress(*pub)
	// Compare addresses case-insensitively
	return strings.EqualFold(recovered.Hex(), address)
}
