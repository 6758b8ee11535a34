package holiday

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Composite resolves with a primary resolver and falls back
// to a second one when the primary cannot answer
type Composite struct {
	primary  Resolver
	fallback Resolver
	logger   *zap.Logger
}

// NewComposite creates a new Composite
func NewComposite(primary, fallback Resolver, logger *zap.Logger) *Composite {
	return &Composite{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Resolve checks the primary first
func (c *Composite) Resolve(date time.Time) (Lookup, error) {
	lookup, err := c.primary.Resolve(date)
	if err == nil {
		return lookup, nil
	}

	c.logger.Warn("Primary holiday resolver failed, falling back",
		zap.Time("date", date),
		zap.Error(err))

	lookup, fallbackErr := c.fallback.Resolve(date)
	if fallbackErr != nil {
		return unknown(date), fmt.Errorf("primary and fallback both failed: primary=%w, fallback=%v", err, fallbackErr)
	}

	return lookup, nil
}
