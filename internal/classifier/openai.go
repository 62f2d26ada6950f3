package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/domain"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/ports"
)

const (
	sentimentInstructions = "You are a sentiment classifier. For every numbered message, " +
		"return a label (POSITIVE, NEGATIVE or NEUTRAL) and a confidence between 0 and 1. " +
		"Classify each message independently."
	toxicityInstructions = "You are a toxicity classifier. For every numbered message, " +
		"return a label (TOXIC or NEUTRAL) and a confidence between 0 and 1. " +
		"Flag harassment, insults, threats and self-harm encouragement as TOXIC."

	maxOutputTokensPerMessage = 30
)

type batchResult struct {
	Results []struct {
		Index      int     `json:"index"`
		Label      string  `json:"label"`
		Confidence float64 `json:"confidence"`
	} `json:"results"`
}

var batchResultSchema = generateSchema[batchResult]()

// OpenAI classifies text through the OpenAI Responses API with structured
// JSON output. The same implementation serves sentiment and toxicity; only
// the instructions differ.
type OpenAI struct {
	client       *openai.Client
	model        string
	instructions string
}

// NewOpenAISentiment creates a model-backed sentiment classifier.
func NewOpenAISentiment(apiKey, model string) ports.Classifier {
	return newOpenAI(apiKey, model, sentimentInstructions)
}

// NewOpenAIToxicity creates a model-backed toxicity classifier.
func NewOpenAIToxicity(apiKey, model string) ports.Classifier {
	return newOpenAI(apiKey, model, toxicityInstructions)
}

func newOpenAI(apiKey, model, instructions string) *OpenAI {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAI{
		client:       &client,
		model:        model,
		instructions: instructions,
	}
}

// Classify labels a single text.
func (c *OpenAI) Classify(ctx context.Context, text string) (domain.Prediction, error) {
	predictions, err := c.ClassifyBatch(ctx, []string{text})
	if err != nil {
		return domain.Prediction{}, err
	}
	return predictions[0], nil
}

// ClassifyBatch labels every text in one API call. The response is
// validated to hold exactly one prediction per input, in input order.
func (c *OpenAI) ClassifyBatch(ctx context.Context, texts []string) ([]domain.Prediction, error) {
	if len(texts) == 0 {
		return []domain.Prediction{}, nil
	}

	var input strings.Builder
	for i, text := range texts {
		fmt.Fprintf(&input, "%d. %s\n", i, text)
	}

	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "BatchClassification",
			Schema:      batchResultSchema,
			Strict:      openai.Bool(true),
			Description: openai.String("Per-message classification JSON"),
			Type:        "json_schema",
		},
	}

	params := responses.ResponseNewParams{
		Model:           c.model,
		MaxOutputTokens: openai.Int(int64(len(texts)*maxOutputTokensPerMessage + 100)),
		Instructions:    openai.String(c.instructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(input.String(), responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}

	resp, err := c.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("classification request failed: %w", err)
	}

	var out batchResult
	if err := json.Unmarshal([]byte(resp.OutputText()), &out); err != nil {
		return nil, fmt.Errorf("failed to decode classification output: %w", err)
	}
	if len(out.Results) != len(texts) {
		return nil, fmt.Errorf("classifier returned %d results for %d inputs", len(out.Results), len(texts))
	}

	predictions := make([]domain.Prediction, len(texts))
	for _, result := range out.Results {
		if result.Index < 0 || result.Index >= len(texts) {
			return nil, fmt.Errorf("classifier returned out-of-range index %d", result.Index)
		}
		predictions[result.Index] = domain.Prediction{
			Label:      result.Label,
			Confidence: result.Confidence,
		}
	}
	return predictions, nil
}

// generateSchema reflects a strict JSON schema for structured model output.
func generateSchema[T any]() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	schema := reflector.Reflect(v)

	raw, err := schema.MarshalJSON()
	if err != nil {
		panic(err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		panic(err)
	}
	markAllRequired(m)
	return m
}

// markAllRequired makes every object property required and closed, which
// the strict structured-output mode demands.
func markAllRequired(schema map[string]any) {
	if t, ok := schema["type"].(string); ok && t == "object" {
		schema["additionalProperties"] = false
		if properties, ok := schema["properties"].(map[string]any); ok {
			var required []string
			for name := range properties {
				required = append(required, name)
			}
			if len(required) > 0 {
				schema["required"] = required
			}
		}
	}
	if properties, ok := schema["properties"].(map[string]any); ok {
		for _, prop := range properties {
			if propMap, ok := prop.(map[string]any); ok {
				markAllRequired(propMap)
			}
		}
	}
	if items, ok := schema["items"].(map[string]any); ok {
		markAllRequired(items)
	}
}
