package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RegisterDocs(r *gin.Engine) {
	r.GET("/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/markdown; charset=utf-8")
		c.String(http.StatusOK, `# Option Strategy Tracker

Backend for tracking multi-leg option strategies against live market data.

## Identity

All /api/v1/* routes except auth expect an X-User-Email header naming the
caller. The upstream gateway is responsible for authenticating it.

## Routes

- GET  /healthz
- GET  /readyz
- GET  /swagger/index.html
- POST /api/v1/auth/register
- POST /api/v1/auth/login
- GET  /api/v1/strategies
- POST /api/v1/strategies
- GET  /api/v1/strategies/{id}
- PUT  /api/v1/strategies/{id}
- DELETE /api/v1/strategies/{id}
- GET  /api/v1/strategies/{id}/payoff
- GET  /api/v1/strategies/{id}/greeks
- GET  /api/v1/strategies/{id}/alerts
- GET  /api/v1/quotes?tickers=PETRB300,PETRN295
- GET  /api/v1/quotes/stream (websocket)

## Filters and sorting

GET /api/v1/strategies accepts parent, structure, objective and status
filters plus sort=pnl|ticker|parent and order=asc|desc.
`)
	})
}
