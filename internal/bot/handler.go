package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dadbot-lab/dadbot/internal/core/epoch"
	"github.com/dadbot-lab/dadbot/internal/counter"
	"github.com/dadbot-lab/dadbot/internal/telemetry"
	"github.com/google/uuid"
)

// EpochCounter is the part of counter.Manager the handler drives.
type EpochCounter interface {
	Observe(ctx context.Context, now time.Time, width time.Duration) (counter.Snapshot, error)
	IncrementObserved(ctx context.Context, snap counter.Snapshot) (epoch.Counter, error)
	Report(ctx context.Context, now time.Time, width time.Duration) (counter.Report, error)
}

var _ EpochCounter = (*counter.Manager)(nil)

// Sender posts a line to a chat channel.
type Sender interface {
	Send(ctx context.Context, channel, text string) error
}

// Message is one inbound chat line.
type Message struct {
	Channel string
	User    string
	Text    string
	// Self is set when the bot account sent the message.
	Self bool
}

// Options are the handler's fixed settings.
type Options struct {
	Name          string
	CommandPrefix string
	Width         time.Duration
}

// Handler reacts to chat messages: it ticks the epoch manager, answers
// commands and sends dad replies.
type Handler struct {
	opts      Options
	counter   EpochCounter
	responder *Responder
	roller    *Roller
	sender    Sender
	clock     Clock
	metrics   *telemetry.Metrics
}

func NewHandler(opts Options, ec EpochCounter, responder *Responder, roller *Roller, sender Sender, clock Clock, metrics *telemetry.Metrics) *Handler {
	if ec == nil {
		panic("bot: epoch counter must not be nil")
	}
	if responder == nil {
		panic("bot: responder must not be nil")
	}
	if roller == nil {
		panic("bot: roller must not be nil")
	}
	if sender == nil {
		panic("bot: sender must not be nil")
	}
	if clock == nil {
		clock = RealClock{}
	}
	if opts.Name == "" {
		opts.Name = "Dad"
	}
	if opts.CommandPrefix == "" {
		opts.CommandPrefix = "!"
	}
	return &Handler{
		opts:      opts,
		counter:   ec,
		responder: responder,
		roller:    roller,
		sender:    sender,
		clock:     clock,
		metrics:   metrics,
	}
}

// HandleMessage processes one message. Failures are logged and the message
// is dropped.
func (h *Handler) HandleMessage(ctx context.Context, msg Message) {
	ctx = telemetry.WithCorrelation(ctx, uuid.NewString())
	log := telemetry.LoggerWithCorr(ctx).With("channel", msg.Channel, "user", msg.User)

	h.metrics.MessageSeen()

	// Every message ticks, including our own.
	snap, err := h.observe(ctx, log)
	if err != nil {
		return
	}

	if msg.Self {
		return
	}

	if cmd, ok := h.command(msg.Text); ok {
		h.handleCommand(ctx, log, msg, cmd)
		return
	}

	if !h.roller.ShouldReply() {
		return
	}
	dadText, ok := h.responder.Match(msg.Text)
	if !ok {
		return
	}
	reply := Reply(dadText, h.roller.ShouldLoveYou())

	log.Info("[Handler] Sending dad reply", "reply", reply)
	if err := h.sender.Send(ctx, msg.Channel, reply); err != nil {
		log.Error("[Handler] Failed to send reply", "error", err)
		h.metrics.ReplyFailed()
		return
	}
	h.metrics.ReplySent()

	c, err := h.counter.IncrementObserved(ctx, snap)
	if err != nil {
		log.Error("[Handler] Failed to increment dadded count", "counter_id", snap.CounterID, "error", err)
		h.metrics.CounterError("increment")
		return
	}
	log.Debug("[Handler] Incremented dadded count", "counter_id", c.ID, "count", c.Count)
}

// Tick advances the epoch manager to the handler's clock without a message.
func (h *Handler) Tick(ctx context.Context) error {
	_, err := h.observe(ctx, telemetry.LoggerWithCorr(ctx))
	return err
}

func (h *Handler) observe(ctx context.Context, log *slog.Logger) (counter.Snapshot, error) {
	snap, err := h.counter.Observe(ctx, h.clock.Now(), h.opts.Width)
	if err != nil {
		log.Error("[Handler] Failed to tick epoch manager", "error", err)
		h.metrics.CounterError("tick")
		return counter.Snapshot{}, err
	}
	if snap.RolledOver {
		log.Info("[Handler] Epoch rolled over", "epoch_id", snap.EpochID, "next_boundary", snap.NextBoundary)
		h.metrics.RolledOver()
	}
	return snap, nil
}

// command returns the lower-cased command name when text starts with the
// command prefix.
func (h *Handler) command(text string) (string, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], h.opts.CommandPrefix) {
		return "", false
	}
	name := strings.TrimPrefix(fields[0], h.opts.CommandPrefix)
	if name == "" {
		return "", false
	}
	return strings.ToLower(name), true
}

func (h *Handler) handleCommand(ctx context.Context, log *slog.Logger, msg Message, cmd string) {
	var text string
	switch cmd {
	case "dadded":
		report, err := h.Report(ctx)
		if err != nil {
			log.Error("[Handler] Failed to build dadded report", "error", err)
			h.metrics.CounterError("report")
			return
		}
		text = FormatReport(report)
	case "help":
		text = h.HelpText()
	default:
		return
	}

	log.Info("[Handler] Responding to command", "command", cmd, "response", text)
	if err := h.sender.Send(ctx, msg.Channel, text); err != nil {
		log.Error("[Handler] Failed to send command response", "command", cmd, "error", err)
		h.metrics.ReplyFailed()
	}
}

// Report ticks the manager against the handler's clock and returns the
// current count.
func (h *Handler) Report(ctx context.Context) (counter.Report, error) {
	return h.counter.Report(ctx, h.clock.Now(), h.opts.Width)
}

// HelpText lists the supported commands on one line.
func (h *Handler) HelpText() string {
	p := h.opts.CommandPrefix
	return fmt.Sprintf("%s - I'm your digital dad! | %sdadded - How many times I've dadded | %shelp - Show this message",
		h.opts.Name, p, p)
}
