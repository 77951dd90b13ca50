// Package twitch connects the bot to Twitch chat over IRC.
package twitch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/dadbot-lab/dadbot/internal/bot"
	twitchirc "github.com/gempir/go-twitch-irc/v4"
)

// ircClient is the subset of *twitchirc.Client used here.
type ircClient interface {
	OnConnect(func())
	OnPrivateMessage(func(twitchirc.PrivateMessage))
	Join(channels ...string)
	Say(channel, text string)
	Connect() error
	Disconnect() error
}

// MessageHandler receives every chat line the client reads.
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg bot.Message)
}

type Client struct {
	irc      ircClient
	username string
	channels []string
}

// NewClient returns a client for the given bot account. The oauth token is
// expected in "oauth:..." form.
func NewClient(username, oauth string, channels []string) (*Client, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("twitch username is required")
	}
	if strings.TrimSpace(oauth) == "" {
		return nil, errors.New("twitch oauth token is required")
	}
	if len(channels) == 0 {
		return nil, errors.New("at least one twitch channel is required")
	}
	return newClient(twitchirc.NewClient(username, oauth), username, channels), nil
}

func newClient(irc ircClient, username string, channels []string) *Client {
	normalized := make([]string, 0, len(channels))
	for _, ch := range channels {
		ch = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ch), "#"))
		if ch != "" {
			normalized = append(normalized, ch)
		}
	}
	return &Client{irc: irc, username: username, channels: normalized}
}

// Channels returns the channels the client joins.
func (c *Client) Channels() []string {
	return append([]string(nil), c.channels...)
}

// Send posts text to channel.
func (c *Client) Send(ctx context.Context, channel, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return errors.New("refusing to send empty message")
	}
	c.irc.Say(channel, text)
	return nil
}

// Run connects, joins the configured channels and dispatches messages to h
// until ctx is cancelled or the connection fails. Each message is handled on
// its own goroutine; Run waits for in-flight handlers before returning.
func (c *Client) Run(ctx context.Context, h MessageHandler) error {
	var wg sync.WaitGroup

	c.irc.OnConnect(func() {
		slog.Info("[Twitch] Connected", "username", c.username, "channels", c.channels)
	})
	c.irc.OnPrivateMessage(func(pm twitchirc.PrivateMessage) {
		msg := c.toMessage(pm)
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.HandleMessage(ctx, msg)
		}()
	})

	stop := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			slog.Info("[Twitch] Disconnecting")
			if err := c.irc.Disconnect(); err != nil {
				slog.Warn("[Twitch] Disconnect failed", "error", err)
			}
		case <-stop:
		}
	}()

	c.irc.Join(c.channels...)
	err := c.irc.Connect()
	close(stop)
	wg.Wait()

	if err == nil || errors.Is(err, twitchirc.ErrClientDisconnected) {
		return nil
	}
	return fmt.Errorf("twitch connection: %w", err)
}

func (c *Client) toMessage(pm twitchirc.PrivateMessage) bot.Message {
	return bot.Message{
		Channel: pm.Channel,
		User:    pm.User.Name,
		Text:    pm.Message,
		Self:    strings.EqualFold(pm.User.Name, c.username),
	}
}
