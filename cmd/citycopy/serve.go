package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/citycopy"
	citygin "github.com/fwojciec/citycopy/gin"
	ccprom "github.com/fwojciec/citycopy/prometheus"
	"github.com/fwojciec/citycopy/throttle"
	"github.com/gin-gonic/gin"
)

// sweepInterval is how often idle rate limit buckets are evicted.
const sweepInterval = 5 * time.Minute

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	gin.SetMode(gin.ReleaseMode)

	limiter := throttle.NewLimiter(c.Rate, c.Burst)
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-deps.Ctx.Done():
				return
			case <-ticker.C:
				if n := limiter.Sweep(sweepInterval); n > 0 {
					deps.Logger.Debug("rate limit buckets evicted", "count", n)
				}
			}
		}
	}()

	metrics := ccprom.NewMetrics(nil)
	h := &citygin.Handler{
		Contents: ccprom.NewContentService(deps.Contents, metrics),
		Store:    deps.Store,
		Logger:   deps.Logger,
		Metrics:  metrics.Handler(),
	}
	router, err := citygin.NewRouter(h, limiter, deps.Logger, c.TrustedProxies...)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", citycopy.ErrorMessage(err))
		return err
	}

	return citygin.NewServer(c.Addr, router, deps.Logger).Run(deps.Ctx)
}
