package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/saulgabriel7/athlete-core/internal/profile"
)

// exerciseGenerator fills in exercise content using the OpenAI API.
type exerciseGenerator struct {
	client openai.Client
}

// newExerciseGenerator creates a new exercise generator.
func newExerciseGenerator(openaiAPIKey string) *exerciseGenerator {
	return &exerciseGenerator{
		client: openai.NewClient(option.WithAPIKey(openaiAPIKey)),
	}
}

// generatedExercise is the JSON shape the model is asked to produce.
type generatedExercise struct {
	Name                 string `json:"name"`
	MuscleGroup          string `json:"muscle_group"`
	Equipment            string `json:"equipment"`
	RecommendedLevel     string `json:"recommended_level"`
	InstructionsMarkdown string `json:"instructions_markdown"`
}

// Generate generates exercise content for the given name.
func (eg *exerciseGenerator) Generate(ctx context.Context, name string) (Exercise, error) {
	if name == "" {
		return Exercise{}, errors.New("exercise name cannot be empty")
	}

	groups := make([]string, 0, len(MuscleGroups()))
	for _, group := range MuscleGroups() {
		groups = append(groups, string(group))
	}

	prompt := fmt.Sprintf(`Generate gym exercise content for "%s".

Pick the primary muscle group, the equipment needed, and the minimum
experience level (beginner, intermediate, or advanced) the exercise suits.
Write markdown instructions with this structure:

## Instructions
[3-5 numbered steps explaining how to perform the exercise correctly]

## Common Mistakes
[3-4 common form errors as bullet points]

Guidelines:
- Use simple, direct language that beginners can understand
- Highlight safety considerations where relevant
- Keep the whole description around 100-150 words`, name)

	schema := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"name", "muscle_group", "equipment", "recommended_level", "instructions_markdown"},
		"properties": map[string]any{
			"name":         map[string]any{"type": "string"},
			"muscle_group": map[string]any{"type": "string", "enum": groups},
			"equipment": map[string]any{"type": "string", "enum": []string{
				"barbell", "dumbbells", "machine", "cable", "bodyweight",
				"kettlebell", "band", "ball", "bench", "none",
			}},
			"recommended_level":     map[string]any{"type": "string", "enum": []string{"beginner", "intermediate", "advanced"}},
			"instructions_markdown": map[string]any{"type": "string"},
		},
	}

	chat, err := eg.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        "exercise",
					Description: openai.String("Structured content for a gym exercise"),
					Schema:      schema,
					Strict:      openai.Bool(true),
				},
			},
		},
		Model: openai.ChatModelGPT4o,
	})
	if err != nil {
		return Exercise{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(chat.Choices) == 0 {
		return Exercise{}, errors.New("chat completion returned no choices")
	}

	var generated generatedExercise
	if err = json.Unmarshal([]byte(chat.Choices[0].Message.Content), &generated); err != nil {
		return Exercise{}, fmt.Errorf("parse exercise response: %w", err)
	}

	if generated.Name == "" || generated.InstructionsMarkdown == "" {
		return Exercise{}, errors.New("generated exercise is missing required fields")
	}
	if !slices.Contains(groups, generated.MuscleGroup) {
		return Exercise{}, fmt.Errorf("invalid muscle group %q", generated.MuscleGroup)
	}
	level := profile.Level(generated.RecommendedLevel)
	if !level.Valid() {
		return Exercise{}, fmt.Errorf("invalid level %q", generated.RecommendedLevel)
	}

	return Exercise{
		Name:                 generated.Name,
		MuscleGroup:          MuscleGroup(generated.MuscleGroup),
		Equipment:            Equipment(generated.Equipment),
		RecommendedLevel:     level,
		InstructionsMarkdown: generated.InstructionsMarkdown,
	}, nil
}
