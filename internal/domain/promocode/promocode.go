package promocode

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"
	"regexp"
	"strings"
)

var (
	ErrInvalidPromoCode = errors.New("invalid promo code format")
	ErrInvalidGenerator = errors.New("promo code generator requires an alphanumeric prefix and positive length")
)

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var promoCodeRegex = regexp.MustCompile(`^[A-Z0-9]{3,32}$`)

type Code string

// Parse normalizes user input (trimmed, uppercased) and validates the format.
func Parse(raw string) (Code, error) {
	code := strings.TrimSpace(strings.ToUpper(raw))
	if !promoCodeRegex.MatchString(code) {
		return Code(""), ErrInvalidPromoCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

type Generator interface {
	Generate() (Code, error)
}

// RandomGenerator produces prefix + N uppercase base-36 characters.
type RandomGenerator struct {
	prefix string
	length int
	reader io.Reader
}

func NewRandomGenerator(prefix string, length int) (*RandomGenerator, error) {
	return NewRandomGeneratorWithReader(prefix, length, rand.Reader)
}

func NewRandomGeneratorWithReader(prefix string, length int, reader io.Reader) (*RandomGenerator, error) {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if length <= 0 || !promoCodeRegex.MatchString(prefix+strings.Repeat("0", length)) {
		return nil, ErrInvalidGenerator
	}
	return &RandomGenerator{prefix: prefix, length: length, reader: reader}, nil
}

func (g *RandomGenerator) Generate() (Code, error) {
	var b strings.Builder
	b.Grow(len(g.prefix) + g.length)
	b.WriteString(g.prefix)

	max := big.NewInt(int64(len(alphabet)))
	for range g.length {
		n, err := rand.Int(g.reader, max)
		if err != nil {
			return Code(""), err
		}
		b.WriteByte(alphabet[n.Int64()])
	}
	return Code(b.String()), nil
}
