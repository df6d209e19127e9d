package orders

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	IDFormatUUID   = "uuid"
	IDFormatLegacy = "legacy"
)

// IDGenerator mints order ids.
type IDGenerator interface {
	NewID(now time.Time) string
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func(now time.Time) string

func (fn IDGeneratorFunc) NewID(now time.Time) string { return fn(now) }

// UUIDGenerator returns random UUIDv4 strings.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(time.Time) string { return uuid.NewString() }

// LegacyGenerator keeps the storefront's historical format: the last six digits
// of the epoch milliseconds. Two orders placed in the same millisecond, or
// 1,000,000 ms apart, collide.
type LegacyGenerator struct{}

func (LegacyGenerator) NewID(now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ms) <= 6 {
		return ms
	}
	return ms[len(ms)-6:]
}

// NewIDGenerator resolves a configured id format.
func NewIDGenerator(format string) (IDGenerator, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", IDFormatUUID:
		return UUIDGenerator{}, nil
	case IDFormatLegacy:
		return LegacyGenerator{}, nil
	}
	return nil, fmt.Errorf("unknown order id format %q", format)
}
