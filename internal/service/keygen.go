package service

import "crypto/rand"

// Token format: a fixed literal prefix followed by KeyRandomLength characters
// drawn from KeyAlphabet. Uniqueness is enforced by the store, not here.
const (
	KeyPrefix       = "tvly-"
	KeyAlphabet     = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	KeyRandomLength = 28
)

type KeyGenerator interface {
	GenerateKey() string
}

func NewRandomKeyGen() *RandomKeyGen {
	return &RandomKeyGen{}
}

type RandomKeyGen struct{}

func (kg *RandomKeyGen) GenerateKey() string {
	buf := make([]byte, KeyRandomLength)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	out := make([]byte, 0, len(KeyPrefix)+KeyRandomLength)
	out = append(out, KeyPrefix...)
	for _, b := range buf {
		out = append(out, KeyAlphabet[int(b)%len(KeyAlphabet)])
	}
	return string(out)
}
