package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Generator creates opaque IDs for stored rows.
type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// JoinCodeAlphabet leaves out characters that are easy to misread (0/O, 1/I/L).
const JoinCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const JoinCodeLength = 8

// CodeGenerator creates short human-typable codes.
type CodeGenerator interface {
	NewCode() (string, error)
}

type JoinCodeGenerator struct {
	alphabet string
	length   int
}

func NewJoinCodeGenerator() *JoinCodeGenerator {
	return &JoinCodeGenerator{alphabet: JoinCodeAlphabet, length: JoinCodeLength}
}

func (g *JoinCodeGenerator) NewCode() (string, error) {
	code, err := gonanoid.Generate(g.alphabet, g.length)
	if err != nil {
		return "", fmt.Errorf("generate join code: %w", err)
	}
	return code, nil
}
