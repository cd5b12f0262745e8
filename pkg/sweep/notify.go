package sweep

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"sweeparr/config"
	mhttp "sweeparr/pkg/http"
	"sweeparr/pkg/logger"
)

// Notifier posts a run summary to an optional outbound webhook. It is
// strictly best-effort: failures are logged and swallowed, never
// surfaced, never retried.
type Notifier struct {
	http mhttp.HTTPClient
	cfg  config.Webhook
}

func NewNotifier(httpClient mhttp.HTTPClient, cfg config.Webhook) Notifier {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return Notifier{http: httpClient, cfg: cfg}
}

type webhookPayload struct {
	Username  string `json:"username,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Content   string `json:"content"`
}

// Notify reports a finished sweep. No-op when the webhook is disabled,
// unconfigured, or nothing was deleted.
func (n Notifier) Notify(ctx context.Context, successCount int, bytesFreed int64) {
	log := logger.FromCtx(ctx)

	if !n.cfg.Enabled || n.cfg.URL == "" || successCount == 0 {
		return
	}

	payload := webhookPayload{
		Username:  n.cfg.Username,
		AvatarURL: n.cfg.AvatarURL,
		Content:   formatSummary(successCount, bytesFreed, time.Now()),
	}

	b, err := json.Marshal(payload)
	if err != nil {
		log.Warnw("failed to marshal webhook payload", "error", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.URL, bytes.NewReader(b))
	if err != nil {
		log.Warnw("failed to build webhook request", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := n.http.Do(req)
	if err != nil {
		log.Warnw("failed to deliver webhook", "error", err)
		return
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		log.Warnw("webhook target rejected notification", "status", res.Status)
		return
	}

	log.Debugw("webhook delivered", "deleted", successCount)
}

func formatSummary(successCount int, bytesFreed int64, at time.Time) string {
	gib := float64(bytesFreed) / (1 << 30)
	return fmt.Sprintf("Sweep finished: %d item(s) deleted, %.2f GiB reclaimed at %s",
		successCount, gib, at.UTC().Format(time.RFC3339))
}
