// Package util holds small helpers shared across layers.
package util

import (
	"crypto/rand"
	"math/big"

	"github.com/pkg/errors"
)

// shopCodeAlphabet avoids 0/O and 1/I so codes survive being read out loud
// over the counter.
const shopCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// ShopCodeLength is the length of generated public shop codes.
const ShopCodeLength = 8

// NewShopCode generates a random public shop code.
func NewShopCode() (string, error) {
	return randomString(shopCodeAlphabet, ShopCodeLength)
}

// NumericCode generates a random code of n decimal digits, for one-time
// passwords.
func NumericCode(n int) (string, error) {
	return randomString("0123456789", n)
}

func randomString(alphabet string, n int) (string, error) {
	out := make([]byte, n)
	max := big.NewInt(int64(len(alphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", errors.Wrap(err, "read random")
		}
		out[i] = alphabet[idx.Int64()]
	}

	return string(out), nil
}
