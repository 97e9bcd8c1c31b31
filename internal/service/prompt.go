package service

import (
	"fmt"

	"github.com/xiaot623/neuralthreads/internal/adapter/llm"
)

// Sampling parameters sent with every stylist request.
const (
	stylistTemperature = 0.7
	stylistMaxTokens   = 2000
	stylistTopP        = 0.9
)

const systemPrompt = `You are an expert AI fashion stylist with years of experience in personal styling, fashion trends, and wardrobe consulting. Your role is to provide detailed, personalized fashion advice and style recommendations. You should:

1. Analyze clothing items, colors, fits, and style combinations in detail
2. Suggest specific clothing items, brands, colors, and styling techniques
3. Provide comprehensive tips for different occasions (casual, formal, business, date nights, etc.)
4. Recommend fashion brands and detailed shopping suggestions with price ranges
5. Give expert advice on color coordination, seasonal styling, and body type considerations
6. Help with complete wardrobe organization and capsule wardrobe creation
7. Suggest accessories, shoes, and how to incorporate current trends tastefully
8. When analyzing outfit photos, provide detailed feedback on fit, color harmony, styling choices, and specific improvement suggestions
9. Consider factors like skin tone, body shape, lifestyle, and personal preferences
10. Provide styling alternatives and multiple outfit options

Always be encouraging, highly specific, and provide actionable advice. Give detailed explanations for your recommendations. If users upload photos, provide comprehensive analysis with constructive feedback and specific suggestions for improvement or styling alternatives.

Keep responses conversational, detailed, and practical. Focus on helping users look and feel their best.`

// DefaultImagePrompt replaces an empty message when images are attached.
const DefaultImagePrompt = "Please analyze these outfit photos and provide detailed styling advice, including specific suggestions for improvement, color coordination, fit assessment, and styling alternatives."

// buildMessages returns the system turn followed by the user turn. With
// images the user turn is multi-part: one text part, then one image part per
// image. A positive maxImages caps the forwarded images.
func buildMessages(message string, images []string, maxImages int) []llm.ChatMessage {
	msgs := []llm.ChatMessage{
		{Role: "system", Content: llm.TextContent(systemPrompt)},
	}

	if len(images) == 0 {
		return append(msgs, llm.ChatMessage{Role: "user", Content: llm.TextContent(message)})
	}

	if maxImages > 0 && len(images) > maxImages {
		images = images[:maxImages]
	}
	prompt := message
	if prompt == "" {
		prompt = DefaultImagePrompt
	}
	text := fmt.Sprintf("%s\n\nI've uploaded %d image(s) for you to analyze. Please provide detailed fashion advice based on what you can see in the images.", prompt, len(images))

	parts := make([]llm.ContentPart, 0, len(images)+1)
	parts = append(parts, llm.TextPart(text))
	for _, img := range images {
		parts = append(parts, llm.ImagePart(img))
	}
	return append(msgs, llm.ChatMessage{Role: "user", Content: llm.PartsContent(parts...)})
}

func newStylistRequest(model string, messages []llm.ChatMessage) *llm.ChatCompletionRequest {
	temperature := stylistTemperature
	maxTokens := stylistMaxTokens
	topP := stylistTopP
	return &llm.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
		TopP:        &topP,
	}
}
