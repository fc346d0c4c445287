package genai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/hieutran/moneykeeper/internal/finmath"
)

// Adapter wraps the raw client with one method per supported task. Structured
// tasks instruct the model to answer with a fixed JSON shape and decode it.
type Adapter struct {
	client *Client
}

// NewAdapter creates a new task adapter
func NewAdapter(client *Client) *Adapter {
	return &Adapter{client: client}
}

// ScanReceipt extracts transaction fields from a receipt photo
func (a *Adapter) ScanReceipt(ctx context.Context, image []byte) (*ReceiptFields, error) {
	text, err := a.client.generate(ctx, generateRequest{
		Task:     taskReceipt,
		ImageB64: base64.StdEncoding.EncodeToString(image),
	})
	if err != nil {
		return nil, err
	}

	var fields ReceiptFields
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, fmt.Errorf("%w: malformed receipt result", ErrUnavailable)
	}
	return &fields, nil
}

// SuggestCategory proposes a spending category for a free-form description
func (a *Adapter) SuggestCategory(ctx context.Context, description string) (*CategorySuggestion, error) {
	text, err := a.client.generate(ctx, generateRequest{
		Task: taskCategory,
		Text: description,
	})
	if err != nil {
		return nil, err
	}

	var suggestion CategorySuggestion
	if err := json.Unmarshal([]byte(text), &suggestion); err != nil {
		return nil, fmt.Errorf("%w: malformed category result", ErrUnavailable)
	}
	return &suggestion, nil
}

// ParseVoiceEntry turns a transcribed spoken sentence into transaction fields
func (a *Adapter) ParseVoiceEntry(ctx context.Context, transcript string) (*VoiceEntry, error) {
	text, err := a.client.generate(ctx, generateRequest{
		Task: taskVoice,
		Text: transcript,
	})
	if err != nil {
		return nil, err
	}

	var entry VoiceEntry
	if err := json.Unmarshal([]byte(text), &entry); err != nil {
		return nil, fmt.Errorf("%w: malformed voice result", ErrUnavailable)
	}
	return &entry, nil
}

// AnalyzePortfolio asks for a narrative review of the user's holdings
func (a *Adapter) AnalyzePortfolio(ctx context.Context, summary any) (string, error) {
	return a.client.generate(ctx, generateRequest{
		Task:    taskPortfolio,
		Context: summary,
	})
}

// Advise answers a free-form question with the user's health snapshot as
// context. Satisfies the advisor's AIClient port.
func (a *Adapter) Advise(ctx context.Context, question string, snapshot *finmath.HealthScore) (string, error) {
	return a.client.generate(ctx, generateRequest{
		Task:    taskChat,
		Text:    question,
		Context: snapshot,
	})
}
