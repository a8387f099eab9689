package checksum

import (
	"crypto/sha256"
	"fmt"
	"strconv"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateRecordHash returns the hex SHA-256 of the fields. Each field is
// length-prefixed, so ("a|b", "c") and ("a", "b|c") hash differently.
func (g *Generator) GenerateRecordHash(fields ...string) string {
	h := sha256.New()
	for _, f := range fields {
		h.Write([]byte(strconv.Itoa(len(f))))
		h.Write([]byte{':'})
		h.Write([]byte(f))
		h.Write([]byte{'|'})
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// VerifyRecordHash reports whether the fields still produce expectedHash.
func (g *Generator) VerifyRecordHash(expectedHash string, fields ...string) bool {
	return g.GenerateRecordHash(fields...) == expectedHash
}
