// beaconhub-agent is a reference fleet client: it heartbeats its presence to
// the panel, polls the kill directive, and terminates when addressed. It also
// refreshes the remote settings document so a wrapped workload can consume it.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/driftpoint/beaconhub/internal/directive"
	"github.com/driftpoint/beaconhub/internal/settings"
)

var AppVersion string

type heartbeatPayload struct {
	ClientID string `json:"client_id"`
	Status   string `json:"status"`
}

func main() {
	InitConfig()

	slog.Info("BeaconHub Agent", "version", AppVersion, "client_id", config.ClientID, "server", config.ServerURL)

	client := &http.Client{Timeout: 10 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// First heartbeat up front so the panel sees us before the first tick.
	if err := sendHeartbeat(ctx, client); err != nil {
		slog.Warn("Heartbeat failed", "error", err)
	}

	heartbeatTicker := time.NewTicker(config.HeartbeatInterval)
	defer heartbeatTicker.Stop()
	pollTicker := time.NewTicker(config.PollInterval)
	defer pollTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Shutting down")
			return
		case <-heartbeatTicker.C:
			if err := sendHeartbeat(ctx, client); err != nil {
				slog.Warn("Heartbeat failed", "error", err)
			}
		case <-pollTicker.C:
			d, err := fetchDirective(ctx, client)
			if err != nil {
				slog.Warn("Directive poll failed", "error", err)
				continue
			}
			if d.Matches(config.ClientID) {
				slog.Info("Kill directive received, terminating",
					"kill_all", d.KillAll, "message", d.Message)
				os.Exit(0)
			}
			if doc, err := fetchSettings(ctx, client); err != nil {
				slog.Warn("Settings poll failed", "error", err)
			} else {
				slog.Debug("Settings refreshed",
					"offsets", len(doc.Offsets), "bones", len(doc.Bones))
			}
		}
	}
}

func sendHeartbeat(ctx context.Context, client *http.Client) error {
	body, err := json.Marshal(heartbeatPayload{
		ClientID: config.ClientID,
		Status:   config.Status,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		config.ServerURL+"/api/heartbeat", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("heartbeat rejected: %s", resp.Status)
	}
	return nil
}

func fetchDirective(ctx context.Context, client *http.Client) (directive.Directive, error) {
	var d directive.Directive
	err := getJSON(ctx, client, config.ServerURL+"/api/kill", &d)
	return d, err
}

func fetchSettings(ctx context.Context, client *http.Client) (settings.Document, error) {
	var doc settings.Document
	err := getJSON(ctx, client, config.ServerURL+"/api/config", &doc)
	return doc, err
}

func getJSON(ctx context.Context, client *http.Client, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
