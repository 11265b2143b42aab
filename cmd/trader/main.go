// Copyright 2025 The sui-onekey-ai-trading Authors
// SPDX-License-Identifier: Apache-2.0

// Command trader is the terminal front end for the trading agent: it sends
// a task, follows the agent's updates, scores any market data the agent
// returns, and signs order instructions when a wallet key is configured.
package main

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/fabw222/sui-onekey-ai-trading/a2a"
	"github.com/fabw222/sui-onekey-ai-trading/a2a/client"
	"github.com/fabw222/sui-onekey-ai-trading/internal/config"
	"github.com/fabw222/sui-onekey-ai-trading/internal/pushauth"
	"github.com/fabw222/sui-onekey-ai-trading/internal/trading"
	"github.com/fabw222/sui-onekey-ai-trading/internal/wallet"
)

const pollInterval = 2 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "trader:", err)
		os.Exit(1)
	}
}

// terminal bundles the client with the local collaborators: the wallet
// signer, the order builder, and the scoring parameters.
type terminal struct {
	client  *client.Client
	logger  *slog.Logger
	signer  wallet.Signer
	builder trading.TxBuilder

	market         string
	amount         uint64
	derivationPath string
}

func run() error {
	var (
		configPath = flag.String("config", "", "path to YAML config file")
		agentURL   = flag.String("agent", "", "agent base URL (overrides config)")
		prompt     = flag.String("prompt", "", "prompt to send to the agent")
		amount     = flag.Uint64("amount", 0, "base units to order when the scorer recommends a trade (0 disables)")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *agentURL != "" {
		cfg.Agent.BaseURL = *agentURL
	}
	if cfg.Agent.BaseURL == "" {
		return errors.New("no agent URL: pass -agent or set agent.base_url")
	}
	if *prompt == "" {
		return errors.New("no prompt: pass -prompt")
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := wallet.NewHub()
	defer hub.Close()
	sub := hub.Subscribe(0)
	go watchDevices(logger, sub)

	signer, err := newSigner(cfg.Wallet, hub)
	if err != nil {
		return err
	}

	c, err := client.New(
		client.WithBaseURL(cfg.Agent.BaseURL),
		client.WithTimeout(cfg.Agent.Timeout.Std()),
		client.WithAuthToken(cfg.Agent.AuthToken),
		client.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	term := &terminal{
		client:         c,
		logger:         logger,
		signer:         signer,
		builder:        trading.NewOrderBuilder(),
		market:         cfg.Trading.Market,
		amount:         *amount,
		derivationPath: cfg.Wallet.DerivationPath,
	}

	params := a2a.TaskSendParams{
		ID: uuid.NewString(),
		Message: a2a.Message{
			Role:  a2a.RoleUser,
			Parts: []a2a.Part{a2a.NewTextPart(*prompt)},
		},
		AcceptedOutputModes: []string{"text", "data"},
	}

	if err := term.registerPush(ctx, cfg.Push, params.ID); err != nil {
		// Push delivery is an optimization over streaming and polling.
		logger.WarnContext(ctx, "push notification registration failed", "error", err)
	}

	if !c.Supports(ctx, client.CapabilityStreaming) {
		logger.Info("agent does not support streaming, falling back to polling")
		return term.runPoll(ctx, params)
	}

	return term.runStream(ctx, params)
}

// newSigner loads the software signer when a seed is configured and
// announces it on the device hub.
func newSigner(cfg config.WalletConfig, hub *wallet.Hub) (wallet.Signer, error) {
	if cfg.Seed == "" {
		return nil, nil
	}

	seed, err := hex.DecodeString(cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("decode wallet seed: %w", err)
	}
	signer, err := wallet.NewSoftwareSigner(seed)
	if err != nil {
		return nil, err
	}

	hub.Publish(wallet.Event{
		Kind:     wallet.EventAttached,
		DeviceID: "software",
		Label:    "in-process key",
	})
	return signer, nil
}

// watchDevices logs device lifecycle events until the hub closes.
func watchDevices(logger *slog.Logger, sub *wallet.Subscription) {
	for ev := range sub.Events() {
		logger.Info("wallet device",
			"kind", string(ev.Kind), "device_id", ev.DeviceID, "label", ev.Label)
	}
}

// registerPush mints a callback token and registers the push config for the
// task. It is a no-op when no callback URL is configured or the agent does
// not support push notifications.
func (t *terminal) registerPush(ctx context.Context, cfg config.PushConfig, taskID string) error {
	if cfg.CallbackURL == "" {
		return nil
	}
	if !t.client.Supports(ctx, client.CapabilityPushNotifications) {
		t.logger.InfoContext(ctx, "agent does not support push notifications, skipping registration")
		return nil
	}

	issuer, err := pushauth.NewIssuer([]byte(cfg.Secret), cfg.TokenTTL.Std())
	if err != nil {
		return err
	}
	token, err := issuer.Mint(taskID, cfg.CallbackURL)
	if err != nil {
		return err
	}

	_, err = t.client.SetTaskPushNotification(ctx, a2a.TaskPushNotificationConfig{
		TaskID: taskID,
		PushNotificationConfig: a2a.PushNotificationConfig{
			URL:   cfg.CallbackURL,
			Token: token,
		},
	})
	return err
}

// runPoll does one send round trip and then polls the task until it reaches
// a terminal state.
func (t *terminal) runPoll(ctx context.Context, params a2a.TaskSendParams) error {
	task, err := t.client.SendTask(ctx, params)
	if err != nil {
		return err
	}
	if task == nil {
		return errors.New("agent returned no task")
	}

	state := task.Status.State
	fmt.Printf("task %s: %s\n", task.ID, state)
	printed := t.printArtifacts(ctx, task.Artifacts, 0)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for !state.Terminal() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		task, err = t.client.GetTask(ctx, a2a.TaskQueryParams{ID: params.ID})
		if err != nil {
			return err
		}
		if task == nil {
			return errors.New("task disappeared while polling")
		}

		if task.Status.State != state {
			state = task.Status.State
			fmt.Printf("task %s: %s\n", task.ID, state)
		}
		printed = t.printArtifacts(ctx, task.Artifacts, printed)
	}

	return nil
}

// runStream subscribes to the task and follows its updates until a terminal
// status arrives or the stream ends.
func (t *terminal) runStream(ctx context.Context, params a2a.TaskSendParams) error {
	stream, err := t.client.SendTaskSubscribe(ctx, params)
	if err != nil {
		return err
	}
	defer stream.Close()

	for {
		ev, err := stream.Next(ctx)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		switch ev := ev.(type) {
		case *a2a.TaskStatusUpdateEvent:
			fmt.Printf("task %s: %s\n", ev.TaskID, ev.Status.State)
			if msg := ev.Status.Message; msg != nil {
				if text := msg.Text(); text != "" {
					fmt.Println(text)
				}
			}
			if ev.Status.State.Terminal() {
				return nil
			}

		case *a2a.TaskArtifactUpdateEvent:
			t.handleArtifact(ctx, ev.Artifact)
		}
	}
}

// printArtifacts handles artifacts the poller has not seen yet and returns
// the new count.
func (t *terminal) printArtifacts(ctx context.Context, artifacts []a2a.Artifact, printed int) int {
	for _, artifact := range artifacts[min(printed, len(artifacts)):] {
		t.handleArtifact(ctx, artifact)
	}
	return max(printed, len(artifacts))
}

// handleArtifact renders an artifact; data parts carrying market signals
// are run through the recommendation scorer, and a buy/sell recommendation
// triggers the order path when signing is configured.
func (t *terminal) handleArtifact(ctx context.Context, artifact a2a.Artifact) {
	for _, part := range artifact.Parts {
		switch part.Type {
		case "text":
			fmt.Println(part.Text)
		case "data":
			sig, ok := signalFromData(part.Data)
			if !ok {
				continue
			}
			rec := trading.Score(sig)
			fmt.Printf("signal %s: score %.1f -> %s\n", artifact.Name, rec.Score, rec.Action)
			if rec.Action != trading.ActionHold {
				t.placeOrder(ctx, rec.Action)
			}
		}
	}
}

// placeOrder builds and signs an order instruction for the recommended
// action. Without a configured signer or amount it only logs the skip.
func (t *terminal) placeOrder(ctx context.Context, action trading.Action) {
	if t.signer == nil || t.amount == 0 {
		t.logger.InfoContext(ctx, "skipping order, signing not configured",
			"action", string(action), "market", t.market)
		return
	}

	side := trading.SideBuy
	if action == trading.ActionSell {
		side = trading.SideSell
	}

	addr, err := t.signer.Address(ctx, t.derivationPath)
	if err != nil {
		t.logger.ErrorContext(ctx, "resolve wallet address", "error", err)
		return
	}

	payload, err := t.builder.Build(ctx, trading.Intent{
		Market:        t.market,
		Side:          side,
		Amount:        t.amount,
		SenderAddress: addr,
	})
	if err != nil {
		t.logger.ErrorContext(ctx, "build order", "error", err)
		return
	}

	signature, err := t.signer.Sign(ctx, payload, t.derivationPath)
	if err != nil {
		t.logger.ErrorContext(ctx, "sign order", "error", err)
		return
	}

	fmt.Printf("signed %s order for %d on %s: %s\n",
		side, t.amount, t.market, base64.StdEncoding.EncodeToString(signature))
}

// signalFromData extracts scorer inputs from a data part, if present.
func signalFromData(data map[string]any) (trading.Signal, bool) {
	var sig trading.Signal
	momentum, ok := toFloat(data["momentum"])
	if !ok {
		return sig, false
	}
	sig.Momentum = momentum
	if v, ok := toFloat(data["volumeRatio"]); ok {
		sig.VolumeRatio = v
	}
	if v, ok := toFloat(data["volatility"]); ok {
		sig.Volatility = v
	}
	return sig, true
}

func toFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
