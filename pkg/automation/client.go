package automation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/config"
	pkgerrors "github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/errors"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/logger"
)

const maxResponseBytes = 1 << 20

var (
	errWebhookURLRequired = errors.New("automation webhook url is required")
	errLoggerRequired     = errors.New("automation logger is required")
)

// TriggerPayload is the document posted to the automation platform when a
// customer launches a deployment.
type TriggerPayload struct {
	CustomerInfo         map[string]any        `json:"customerInfo"`
	ModuleConfigurations []ModuleConfiguration `json:"moduleConfigurations"`
	Timestamp            time.Time             `json:"timestamp"`
	DeploymentTrigger    bool                  `json:"deploymentTrigger"`
}

// ModuleConfiguration carries one purchased module's checklist values.
type ModuleConfiguration struct {
	ModuleID string            `json:"moduleId"`
	Values   map[string]string `json:"values"`
}

// TriggerResult is the acknowledgement returned by the automation platform.
type TriggerResult struct {
	DeploymentID string `json:"deploymentId"`
	OrderID      string `json:"orderId"`
}

// Client posts deployment triggers to the external automation endpoint.
// Each trigger is a single attempt bounded by the configured timeout; the
// caller decides whether a failed trigger is retried by the customer.
type Client struct {
	webhookURL string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient validates the endpoint and builds the trigger client.
func NewClient(cfg config.AutomationConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	webhookURL := strings.TrimSpace(cfg.WebhookURL)
	if webhookURL == "" {
		return nil, errWebhookURLRequired
	}
	parsed, err := url.Parse(webhookURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("automation webhook url %q is not absolute", webhookURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logg,
	}, nil
}

// Trigger posts the payload and parses the platform acknowledgement.
func (c *Client) Trigger(ctx context.Context, payload TriggerPayload) (*TriggerResult, error) {
	payload.DeploymentTrigger = true
	if payload.Timestamp.IsZero() {
		payload.Timestamp = time.Now().UTC()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding deployment trigger")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building deployment trigger request")
	}
	req.Header.Set("Content-Type", "application/json")

	c.log(ctx, "request", map[string]any{"modules": len(payload.ModuleConfigurations)})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log(ctx, "error", map[string]any{"error": err.Error()})
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "automation platform unreachable")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading automation response")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.log(ctx, "error", map[string]any{"status": resp.StatusCode})
		return nil, pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("automation platform returned status %d", resp.StatusCode))
	}

	var result TriggerResult
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &result); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding automation response")
		}
	}

	c.log(ctx, "response", map[string]any{"deployment_id": result.DeploymentID})
	return &result, nil
}

func (c *Client) log(ctx context.Context, phase string, fields map[string]any) {
	if c == nil || c.logger == nil {
		return
	}
	logFields := map[string]any{"phase": phase}
	for k, v := range fields {
		logFields[k] = v
	}
	ctx = c.logger.WithFields(ctx, logFields)
	switch phase {
	case "error":
		c.logger.Error(ctx, "automation trigger failed", errors.New(fmt.Sprint(fields["error"])))
	default:
		c.logger.Info(ctx, fmt.Sprintf("automation %s", phase))
	}
}
