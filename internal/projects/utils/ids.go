package utils

import (
	"crypto/rand"
	"math/big"
)

const (
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	// IDLength is the length of generated project IDs, e.g. "k3j9x0q2m".
	IDLength = 9
)

// NewProjectID generates a random lowercase base-36 ID of IDLength characters.
// Uniqueness against the store is checked by the caller.
func NewProjectID() (string, error) {
	max := big.NewInt(int64(len(idAlphabet)))
	b := make([]byte, IDLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = idAlphabet[n.Int64()]
	}
	return string(b), nil
}
