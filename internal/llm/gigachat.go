package llm

import (
	"context"
	"fmt"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

// GigaChatClient wraps the gigago SDK behind the Generator contract.
type GigaChatClient struct {
	client *gigago.Client
	model  *gigago.GenerativeModel
	logger *zap.Logger
}

func NewGigaChatClient(ctx context.Context, apiKey, scope string, logger *zap.Logger) (*GigaChatClient, error) {
	opts := []gigago.Option{
		gigago.WithCustomScope(scope),
	}

	client, err := gigago.NewClient(ctx, apiKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gigachat client: %w", err)
	}

	model := client.GenerativeModel("GigaChat")
	model.Temperature = 0.1

	logger.Info("gigachat client initialized", zap.String("scope", scope))

	return &GigaChatClient{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

func (c *GigaChatClient) Generate(ctx context.Context, prompt string) (string, error) {
	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	}

	resp, err := c.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from gigachat")
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *GigaChatClient) Close() {
	c.client.Close()
}
