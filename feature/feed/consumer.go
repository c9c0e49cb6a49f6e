package feed

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"card-manager/core/event"
	"card-manager/core/reconcile"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handler receives decoded events. deck.Service implements it.
type Handler interface {
	Handle(ctx context.Context, ev event.Event) (reconcile.Outcome, error)
}

// Consumer reads the push channel and forwards events to a Handler.
type Consumer struct {
	cfg     Config
	handler Handler
	symbols func() []string
	logger  *zap.Logger
	dialer  websocket.Dialer
}

// NewConsumer creates a consumer. symbols returns the symbols to subscribe to on every
// (re)connect; it may be nil to subscribe to nothing explicitly.
func NewConsumer(cfg Config, handler Handler, symbols func() []string, logger *zap.Logger) *Consumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Consumer{
		cfg:     cfg,
		handler: handler,
		symbols: symbols,
		logger:  logger.With(zap.String("component", "feed")),
		dialer:  websocket.Dialer{HandshakeTimeout: 10 * time.Second},
	}
}

// Run keeps a connection open until ctx is done. It always returns ctx.Err().
func (c *Consumer) Run(ctx context.Context) error {
	for {
		err := c.session(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Warn("Feed connection lost", zap.Error(err), zap.Duration("retry_in", c.cfg.ReconnectDelay()))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.cfg.ReconnectDelay()):
		}
	}
}

// session serves one connection until it fails or ctx is done.
func (c *Consumer) session(ctx context.Context) error {
	header := http.Header{}
	header.Set("Accept", "application/json")
	if c.cfg.ApiKey != "" {
		header.Set("Authorization", "Bearer "+c.cfg.ApiKey)
	}

	conn, _, err := c.dialer.DialContext(ctx, c.cfg.URL, header)
	if err != nil {
		return err
	}
	defer conn.Close()
	c.logger.Info("Feed connected", zap.String("url", c.cfg.URL))

	// ReadMessage does not observe ctx, so closing the connection unblocks it.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			conn.Close()
		case <-done:
		}
	}()

	pingTimeout := c.cfg.PingTimeout()
	_ = conn.SetReadDeadline(time.Now().Add(pingTimeout))
	conn.SetPingHandler(func(data string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pingTimeout))
		return conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(c.cfg.WriteTimeout()))
	})
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pingTimeout))
	})

	if err := c.subscribe(conn); err != nil {
		return err
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		_ = conn.SetReadDeadline(time.Now().Add(pingTimeout))
		c.dispatch(ctx, data)
	}
}

func (c *Consumer) subscribe(conn *websocket.Conn) error {
	if c.symbols == nil {
		return nil
	}
	symbols := c.symbols()
	if len(symbols) == 0 {
		return nil
	}
	frame, err := json.Marshal(Subscribe{Action: "subscribe", Symbols: symbols})
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout()))
	if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		return err
	}
	c.logger.Debug("Feed subscribed", zap.Strings("symbols", symbols))
	return nil
}

func (c *Consumer) dispatch(ctx context.Context, data []byte) {
	events, err := Decode(data)
	if err != nil {
		c.logger.Warn("Dropping undecodable frame", zap.Error(err), zap.Int("bytes", len(data)))
		return
	}
	for _, ev := range events {
		if _, err := c.handler.Handle(ctx, ev); err != nil {
			level := c.logger.Debug
			if !errors.Is(err, event.ErrInvalidEvent) {
				level = c.logger.Warn
			}
			level("Feed event rejected", zap.String("symbol", ev.Symbol), zap.Error(err))
		}
	}
}
