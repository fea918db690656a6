package helpers

import (
	"math/rand"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const (
	ReferCodeLength = 6
	GiftCodeLength  = 6
)

func randomCode(length int) string {
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(buf)
}

// GenerateReferCode returns a candidate invite token. Uniqueness is owned
// by the database constraint; callers retry on collision.
func GenerateReferCode() string {
	return randomCode(ReferCodeLength)
}

func GenerateGiftCode() string {
	return randomCode(GiftCodeLength)
}
