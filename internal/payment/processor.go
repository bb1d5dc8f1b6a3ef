package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	ErrIntentNotFound = errors.New("payment intent not found")
	ErrProcessor      = errors.New("payment processor error")
)

const (
	IntentStatusPending   = "pending"
	IntentStatusSucceeded = "succeeded"
	IntentStatusFailed    = "failed"
)

// Intent is the processor's view of a single payment event. Reference is the
// idempotency key used to prevent double-processing on our side.
type Intent struct {
	Reference   string `json:"reference"`
	CustomerRef string `json:"customer"`
	AmountCents int64  `json:"amount_cents"`
	Status      string `json:"status"`
}

// Processor is the opaque external payment capability. The backend only ever
// needs customer provisioning and intent lifecycle checks.
type Processor interface {
	CreateCustomer(ctx context.Context, ownerID int) (string, error)
	CreateIntent(ctx context.Context, customerRef string, amountCents int64) (*Intent, error)
	ConfirmIntent(ctx context.Context, reference string) (*Intent, error)
	GetIntent(ctx context.Context, reference string) (*Intent, error)
}

// HTTPProcessor talks JSON to the hosted payment API.
type HTTPProcessor struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPProcessor(baseURL, apiKey string) *HTTPProcessor {
	return &HTTPProcessor{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *HTTPProcessor) CreateCustomer(ctx context.Context, ownerID int) (string, error) {
	var resp struct {
		Reference string `json:"reference"`
	}
	err := p.do(ctx, http.MethodPost, "/v1/customers", map[string]interface{}{"owner_id": ownerID}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Reference, nil
}

func (p *HTTPProcessor) CreateIntent(ctx context.Context, customerRef string, amountCents int64) (*Intent, error) {
	var intent Intent
	err := p.do(ctx, http.MethodPost, "/v1/intents", map[string]interface{}{
		"customer":     customerRef,
		"amount_cents": amountCents,
	}, &intent)
	if err != nil {
		return nil, err
	}
	return &intent, nil
}

func (p *HTTPProcessor) ConfirmIntent(ctx context.Context, reference string) (*Intent, error) {
	var intent Intent
	err := p.do(ctx, http.MethodPost, "/v1/intents/"+reference+"/confirm", nil, &intent)
	if err != nil {
		return nil, err
	}
	return &intent, nil
}

func (p *HTTPProcessor) GetIntent(ctx context.Context, reference string) (*Intent, error) {
	var intent Intent
	err := p.do(ctx, http.MethodGet, "/v1/intents/"+reference, nil, &intent)
	if err != nil {
		return nil, err
	}
	return &intent, nil
}

func (p *HTTPProcessor) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProcessor, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrIntentNotFound
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: status %d", ErrProcessor, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
