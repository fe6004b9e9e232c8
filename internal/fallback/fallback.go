// Package fallback answers messages no command matched, using the
// Gemini API with a fixed persona as system instruction.
package fallback

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const (
	defaultModel   = "gemini-2.0-flash"
	respondTimeout = 15 * time.Second
)

// DefaultPersona is used when no persona is configured.
const DefaultPersona = "Eres Anota, un asistente de notas por WhatsApp. " +
	"Responde en español, breve y amable. Si el usuario parece querer " +
	"guardar una nota o un recordatorio, recuérdale los comandos del bot."

// Client wraps the Gemini API for conversational replies.
type Client struct {
	client  *genai.Client
	model   string
	persona string
}

// New creates a Client. apiKey must be non-empty; callers disable the
// feature by not constructing a Client at all.
func New(ctx context.Context, apiKey, persona string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("fallback: API key is required")
	}
	if persona == "" {
		persona = DefaultPersona
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("fallback: create client: %w", err)
	}

	return &Client{client: client, model: defaultModel, persona: persona}, nil
}

// Respond generates a reply for the user's free text. The call is
// bounded by its own timeout so a slow provider never stalls the
// webhook response indefinitely.
func (c *Client) Respond(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, respondTimeout)
	defer cancel()

	result, err := c.client.Models.GenerateContent(ctx,
		c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(c.persona, genai.RoleUser),
		},
	)
	if err != nil {
		return "", fmt.Errorf("fallback: generate: %w", err)
	}

	reply := strings.TrimSpace(result.Text())
	if reply == "" {
		return "", fmt.Errorf("fallback: empty completion")
	}
	return reply, nil
}
