package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"optiontracker/internal/repository"
	"optiontracker/internal/stream"
)

type QuoteHandler struct {
	Repo   repository.Repository
	Hub    *stream.Hub
	Logger *zap.Logger
}

func (h *QuoteHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/quotes")
	group.GET("", h.list)
	group.GET("/stream", h.streamQuotes)
}

// @Summary Latest quote snapshots
// @Tags quotes
// @Param tickers query string true "comma separated option tickers"
// @Success 200 {object} map[string]any
// @Router /api/v1/quotes [get]
func (h *QuoteHandler) list(c *gin.Context) {
	var tickers []string
	for _, raw := range strings.Split(c.Query("tickers"), ",") {
		t := strings.ToUpper(strings.TrimSpace(raw))
		if t != "" {
			tickers = append(tickers, t)
		}
	}
	if len(tickers) == 0 {
		Error(c, http.StatusBadRequest, "tickers required", nil)
		return
	}
	items, err := h.Repo.ListQuoteSnapshots(c.Request.Context(), tickers)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, items, map[string]any{"count": len(items)})
}

// streamQuotes upgrades to a websocket and forwards hub updates until the
// client goes away. Slow readers are disconnected rather than buffered
// without bound.
func (h *QuoteHandler) streamQuotes(c *gin.Context) {
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.Debug("websocket accept failed", zap.Error(err))
		}
		return
	}
	defer conn.Close(websocket.StatusInternalError, "closed")

	updates, cancel := h.Hub.Subscribe()
	defer cancel()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "bye")
			return
		case update, ok := <-updates:
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "bye")
				return
			}
			writeCtx, writeCancel := context.WithTimeout(ctx, 5*time.Second)
			err := wsjson.Write(writeCtx, conn, update)
			writeCancel()
			if err != nil {
				return
			}
		}
	}
}
