// Package handid issues identifiers for dealt hands. An ID is a UUIDv7
// rendered as 26 characters of Crockford base32, so IDs sort by deal time
// and are safe in file names and logs.
package handid

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

// Crockford's base32: no i, l, o or u.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// RandSource supplies the random tail of an ID. *rand.Rand from
// math/rand/v2 satisfies it, which keeps simulator runs reproducible.
type RandSource interface {
	IntN(n int) int
}

// Generator issues hand IDs. A nil RandSource falls back to crypto/rand.
type Generator struct {
	src RandSource
}

// NewGenerator returns a generator drawing randomness from src, or from
// crypto/rand when src is nil.
func NewGenerator(src RandSource) *Generator {
	return &Generator{src: src}
}

// New issues a hand ID using crypto/rand.
func New() string {
	return NewGenerator(nil).New()
}

// New issues the next hand ID.
func (g *Generator) New() string {
	var uuid [16]byte

	// 48-bit millisecond timestamp, then version and variant bits over a
	// random tail, per UUIDv7.
	now := time.Now().UnixMilli()
	uuid[0] = byte(now >> 40)
	uuid[1] = byte(now >> 32)
	uuid[2] = byte(now >> 24)
	uuid[3] = byte(now >> 16)
	uuid[4] = byte(now >> 8)
	uuid[5] = byte(now)

	if g.src != nil {
		for i := 6; i < 16; i++ {
			uuid[i] = byte(g.src.IntN(256))
		}
	} else if _, err := rand.Read(uuid[6:]); err != nil {
		panic("handid: crypto/rand failed: " + err.Error())
	}

	uuid[6] = (uuid[6] & 0x0f) | 0x70
	uuid[8] = (uuid[8] & 0x3f) | 0x80

	return encode(uuid)
}

// encode renders 128 bits as 26 base32 characters, five bits at a time.
func encode(data [16]byte) string {
	var b strings.Builder
	b.Grow(26)
	for i := 0; i < 26; i++ {
		bit := i * 5
		idx := bit / 8
		off := bit % 8

		var v uint8
		if off <= 3 {
			v = (data[idx] >> (3 - off)) & 0x1f
		} else {
			v = (data[idx] << (off - 3)) & 0x1f
			if idx+1 < 16 {
				v |= data[idx+1] >> (11 - off)
			}
		}
		b.WriteByte(alphabet[v])
	}
	return b.String()
}

// Validate reports whether id is a well-formed hand ID.
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("hand ID must be 26 characters, got %d", len(id))
	}
	// The leading character carries only three payload bits.
	if id[0] > '7' {
		return fmt.Errorf("hand ID first character must be 0-7, got %c", id[0])
	}
	for i := 0; i < len(id); i++ {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}
