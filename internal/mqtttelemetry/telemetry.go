// Package mqtttelemetry completes the teacher's dangling MQTTClient
// reference as an optional, best-effort broadcaster of visualization
// snapshots. It is not part of the §4.7 outbound-counter contract — that
// remains the HTTP emitter — this is purely an auxiliary dashboard feed.
package mqtttelemetry

import (
	"encoding/json"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/avtrejo/corridor-counter/internal/tracker"
)

// message is the published payload shape on Topic.
type message struct {
	Frame       int     `json:"frame"`
	State       string  `json:"state"`
	NumCars     int     `json:"num_cars"`
	TotalPassed uint64  `json:"total_passed"`
	AOILatched  [3]bool `json:"aoi_latched"`
	Role        string  `json:"role"`
}

// Broadcaster publishes snapshots pulled off a bounded channel on its own
// goroutine, grounded on the teacher's messageRunner(doneChan, pubChan, c,
// topic, rate) shape — the rate here is "as fast as the queue permits",
// since the tracker, not a ticker, decides when a new snapshot exists.
type Broadcaster struct {
	client mqtt.Client
	topic  string
	role   string
	logger *zap.Logger

	queue chan tracker.Snapshot
	done  chan struct{}
}

// New connects to brokerURL and returns a Broadcaster publishing to topic.
// A connection failure is non-fatal — telemetry is explicitly best-effort
// (§9 design notes) — the returned Broadcaster simply drops every publish.
func New(brokerURL, topic, role string, queueSize int, logger *zap.Logger) *Broadcaster {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := mqtt.NewClientOptions().AddBroker(brokerURL).SetConnectRetry(true).SetAutoReconnect(true)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.WaitTimeout(5*time.Second) && token.Error() != nil {
		logger.Warn("mqtt telemetry broker unreachable, publishes will be dropped", zap.Error(token.Error()))
	}
	return &Broadcaster{
		client: client,
		topic:  topic,
		role:   role,
		logger: logger,
		queue:  make(chan tracker.Snapshot, queueSize),
		done:   make(chan struct{}),
	}
}

// Push enqueues a snapshot for publish, dropping it if the queue is full
// rather than blocking the frame loop (unlike the HTTP emitter, telemetry
// loss here is acceptable — it's a dashboard feed, not the counter).
func (b *Broadcaster) Push(snap tracker.Snapshot) {
	select {
	case b.queue <- snap:
	default:
		b.logger.Debug("telemetry queue full, dropping snapshot", zap.Int("frame", snap.Frame))
	}
}

// Run drains the queue and publishes each snapshot until Stop is called.
func (b *Broadcaster) Run() {
	for {
		select {
		case snap := <-b.queue:
			b.publish(snap)
		case <-b.done:
			b.client.Disconnect(100)
			return
		}
	}
}

func (b *Broadcaster) publish(snap tracker.Snapshot) {
	msg := message{
		Frame:       snap.Frame,
		State:       snap.State.String(),
		NumCars:     snap.NumCars,
		TotalPassed: snap.TotalPassed,
		AOILatched:  snap.AOILatched,
		Role:        b.role,
	}
	body, err := json.Marshal(msg)
	if err != nil {
		b.logger.Warn("failed to encode telemetry message", zap.Error(err))
		return
	}
	token := b.client.Publish(b.topic, 0, false, body)
	if token.WaitTimeout(2*time.Second) && token.Error() != nil {
		b.logger.Warn("telemetry publish failed, dropping", zap.Error(token.Error()))
	}
}

// Stop signals Run to disconnect and return. Safe to call once.
func (b *Broadcaster) Stop() {
	close(b.done)
}
