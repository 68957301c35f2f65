package worker

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"trackmygoal/internal/logger"
	"trackmygoal/internal/queue"
)

const (
	// DefaultWorkerCount is the default number of worker goroutines
	DefaultWorkerCount = 2

	// DefaultBatchSize is the number of messages to read per batch
	DefaultBatchSize = 10

	// DefaultBlockTimeout is how long to block waiting for new messages
	DefaultBlockTimeout = 5 * time.Second

	// errorBackoff is the pause after a failed read
	errorBackoff = time.Second
)

// EventHandler processes a single event.
type EventHandler interface {
	HandleEvent(ctx context.Context, event queue.NotificationEvent) error
}

// Manager orchestrates worker goroutines that consume the notification stream.
type Manager struct {
	consumer    queue.Consumer
	handler     EventHandler
	workerCount int
	batchSize   int64
	blockTime   time.Duration
	stream      string
	group       string

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// ManagerConfig holds configuration for the worker manager.
type ManagerConfig struct {
	WorkerCount  int           // Number of worker goroutines
	BatchSize    int64         // Messages per read
	BlockTimeout time.Duration // Block time for XREADGROUP
}

// DefaultManagerConfig returns sensible defaults.
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		WorkerCount:  DefaultWorkerCount,
		BatchSize:    DefaultBatchSize,
		BlockTimeout: DefaultBlockTimeout,
	}
}

// NewManager creates a new worker manager.
func NewManager(consumer queue.Consumer, handler EventHandler, cfg ManagerConfig) *Manager {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = DefaultWorkerCount
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.BlockTimeout <= 0 {
		cfg.BlockTimeout = DefaultBlockTimeout
	}

	return &Manager{
		consumer:    consumer,
		handler:     handler,
		workerCount: cfg.WorkerCount,
		batchSize:   cfg.BatchSize,
		blockTime:   cfg.BlockTimeout,
		stream:      queue.StreamNotifications,
		group:       queue.ConsumerGroupNotifications,
	}
}

// Start ensures the consumer group exists and spins up the workers.
// Call Stop() to shut them down.
func (m *Manager) Start(ctx context.Context) error {
	if err := m.consumer.EnsureGroup(ctx, m.stream, m.group); err != nil {
		return err
	}

	ctx, m.cancel = context.WithCancel(ctx)

	for i := 0; i < m.workerCount; i++ {
		workerID := i + 1
		m.wg.Add(1)
		go m.runWorker(ctx, workerID, consumerNameForWorker(workerID))
	}

	logger.Info("Notification workers started",
		"workers", m.workerCount, "stream", m.stream, "group", m.group)
	return nil
}

// Stop cancels the workers and blocks until all of them have returned.
func (m *Manager) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	m.wg.Wait()
	logger.Info("Notification workers stopped")
}

func (m *Manager) runWorker(ctx context.Context, workerID int, consumerName string) {
	defer m.wg.Done()

	// Replay anything delivered to this consumer name before a crash.
	m.processPending(ctx, workerID, consumerName)

	for {
		select {
		case <-ctx.Done():
			return
		default:
			m.processMessages(ctx, workerID, consumerName)
		}
	}
}

func (m *Manager) processPending(ctx context.Context, workerID int, consumerName string) {
	for ctx.Err() == nil {
		messages, err := m.consumer.ReadPending(ctx, m.stream, m.group, consumerName, m.batchSize)
		if err != nil {
			logger.Error("Reading pending messages failed", "worker", workerID, "error", err)
			return
		}
		if len(messages) == 0 {
			return
		}

		logger.Info("Replaying pending messages", "worker", workerID, "count", len(messages))
		m.handleMessages(ctx, workerID, messages)
	}
}

func (m *Manager) processMessages(ctx context.Context, workerID int, consumerName string) {
	messages, err := m.consumer.Read(ctx, m.stream, m.group, consumerName, m.batchSize, m.blockTime)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		logger.Error("Reading messages failed", "worker", workerID, "error", err)
		select {
		case <-ctx.Done():
		case <-time.After(errorBackoff):
		}
		return
	}

	if len(messages) > 0 {
		m.handleMessages(ctx, workerID, messages)
	}
}

// handleMessages always ACKs, even on handler errors, so a poison message
// cannot loop forever. Delivery is at-least-once.
func (m *Manager) handleMessages(ctx context.Context, workerID int, messages []queue.Message) {
	for _, msg := range messages {
		if err := m.handler.HandleEvent(ctx, msg.Event); err != nil {
			logger.Warn("Handler error, acknowledging anyway",
				"worker", workerID, "msg_id", msg.ID, "error", err)
		}

		if err := m.consumer.Ack(ctx, m.stream, m.group, msg.ID); err != nil {
			logger.Error("Ack failed", "worker", workerID, "msg_id", msg.ID, "error", err)
		}
	}
}

// consumerNameForWorker is stable per host and worker slot, so a restarted
// process picks up its own pending entries.
func consumerNameForWorker(workerID int) string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "worker"
	}
	return fmt.Sprintf("%s-%d", host, workerID)
}
