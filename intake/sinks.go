package intake

import (
	"fmt"

	"github.com/imkonsowa/restaurant-concierge/config"
	"go.uber.org/zap"
)

// BuildSinks creates the sinks named in cfg.Intake.Sinks. The returned cleanup releases every
// connection opened, and is safe to call when an error was returned.
func BuildSinks(cfg *config.Config, logger *zap.Logger) ([]Sink, func(), error) {
	var (
		sinks    []Sink
		closers  []func()
		cleanup = func() {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	)

	for _, name := range cfg.Intake.Sinks {
		switch name {
		case "log":
			sinks = append(sinks, NewLogSink(logger))
		case "nats":
			nc, err := NewNatsClient(cfg.Nats)
			if err != nil {
				return nil, cleanup, fmt.Errorf("nats sink: %w", err)
			}
			closers = append(closers, nc.Close)
			sinks = append(sinks, NewNatsSink(nc.JetStream(), cfg.Nats.ReservationsSubject))
		case "redis":
			client := NewRedisClient(cfg.Redis)
			closers = append(closers, func() { _ = client.Close() })
			sinks = append(sinks, NewRedisSink(client, cfg.Redis.Key))
		case "sqlite":
			s, err := NewSQLiteSink(cfg.SQLite.Path)
			if err != nil {
				return nil, cleanup, fmt.Errorf("sqlite sink: %w", err)
			}
			closers = append(closers, func() { _ = s.Close() })
			sinks = append(sinks, s)
		default:
			return nil, cleanup, fmt.Errorf("unknown intake sink %q", name)
		}
	}

	return sinks, cleanup, nil
}
