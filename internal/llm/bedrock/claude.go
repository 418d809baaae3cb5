package bedrock

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/homelens/inspect-agent/internal/llm"
)

type claudeMessageRequest struct {
	AnthropicVersion string            `json:"anthropic_version"`
	MaxTokens        int               `json:"max_tokens"`
	Temperature      float64           `json:"temperature"`
	System           string            `json:"system,omitempty"`
	Messages         []claudeMessage   `json:"messages"`
	Tools            []claudeTool      `json:"tools,omitempty"`
	ToolChoice       *claudeToolChoice `json:"tool_choice,omitempty"`
}

type claudeMessage struct {
	Role    string               `json:"role"`
	Content []claudeContentBlock `json:"content"`
}

type claudeContentBlock struct {
	Type   string             `json:"type"`
	Text   string             `json:"text,omitempty"`
	Source *claudeImageSource `json:"source,omitempty"`
}

type claudeImageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type claudeTool struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	InputSchema map[string]any `json:"input_schema"`
}

type claudeToolChoice struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

type claudeMessageResponse struct {
	Content []struct {
		Type  string          `json:"type"`
		Text  string          `json:"text"`
		Input json.RawMessage `json:"input"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

var anthropicVersion = "bedrock-2023-05-31"

func (c *Client) Infer(ctx context.Context, request llm.InferRequest) (*llm.RawOutput, error) {
	content := []claudeContentBlock{}
	if len(request.Image.Data) > 0 {
		content = append(content, claudeContentBlock{
			Type: "image",
			Source: &claudeImageSource{
				Type:      "base64",
				MediaType: request.Image.MediaType,
				Data:      base64.StdEncoding.EncodeToString(request.Image.Data),
			},
		})
	}
	content = append(content, claudeContentBlock{
		Type: "text",
		Text: request.Prompt,
	})

	maxTokens := request.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.MaxTokens
	}

	temperature := request.Temperature
	if temperature == 0 {
		temperature = c.Temperature
	}

	payload := claudeMessageRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        maxTokens,
		Temperature:      temperature,
		System:           request.System,
		Messages: []claudeMessage{
			{
				Role:    "user",
				Content: content,
			},
		},
	}

	// Schema-constrained output rides on forced tool use: the model must
	// answer by filling the tool's input schema.
	if request.Schema != nil {
		payload.Tools = []claudeTool{
			{
				Name:        request.Schema.Name,
				Description: "Record the structured photo assessment.",
				InputSchema: request.Schema.Definition,
			},
		}
		payload.ToolChoice = &claudeToolChoice{Type: "tool", Name: request.Schema.Name}
	}

	byes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("Unable to serialize claude request. Error: %w", err)
	}

	output, err := c.Client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     &request.Model,
		Body:        byes,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})

	if err != nil {
		return nil, fmt.Errorf("Unable to invoke claude model. Error: %w", err)
	}

	var response claudeMessageResponse
	if err := json.Unmarshal(output.Body, &response); err != nil {
		return nil, fmt.Errorf("Failed to unmarshal bedrock response. Error: %w", err)
	}

	// Prefer a tool_use block (structured), otherwise collect text.
	raw := &llm.RawOutput{StopReason: response.StopReason}
	for _, block := range response.Content {
		if block.Type == "tool_use" && len(block.Input) > 0 {
			raw.Structured = block.Input
			return raw, nil
		}
	}
	for _, block := range response.Content {
		if block.Type == "text" {
			raw.Text += block.Text
		}
	}

	return raw, nil
}
