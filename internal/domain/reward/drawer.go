package reward

import (
	"crypto/rand"
	"encoding/binary"
	mathrand "math/rand/v2"
)

// Drawer yields uniform random draws in [0,1).
type Drawer interface {
	Draw() float64
}

type DrawerFunc func() float64

func (f DrawerFunc) Draw() float64 { return f() }

type CryptoDrawer struct{}

func NewCryptoDrawer() *CryptoDrawer {
	return &CryptoDrawer{}
}

func (d *CryptoDrawer) Draw() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return mathrand.Float64()
	}
	// 53 significant bits keep the result strictly below 1
	return float64(binary.BigEndian.Uint64(buf[:])>>11) / (1 << 53)
}
