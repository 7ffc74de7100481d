// Package prompts holds the fixed natural-language templates for every text
// operation and the substitution helpers that render them. Rendering is pure
// string substitution; no control flow.
package prompts

import (
	"fmt"
	"strings"
)

// SystemPrompt establishes the assistant persona used by all one-shot text
// operations.
const SystemPrompt = `You are BrandCraft AI, an expert enterprise branding and business analytics consultant with 20+ years of experience helping startups, creators, and small businesses build powerful brand identities.

Your expertise includes:
- Brand strategy and positioning
- Market analysis and competitive insights
- Marketing psychology and consumer behavior
- Visual identity principles
- Startup growth strategies

Communication style:
- Professional yet approachable
- Data-driven and strategic
- Action-oriented recommendations
- Clear, structured responses
- Business-focused language

Always provide actionable, practical advice that can be immediately implemented.`

// ChatSystemPrompt is the persona for the conversational consultant.
const ChatSystemPrompt = `You are BrandCraft AI, an expert branding and business analytics consultant. You're having a conversation with a business owner seeking branding guidance.

Your role is to:
1. Understand their business goals and challenges
2. Provide strategic branding advice
3. Offer actionable recommendations
4. Help with brand positioning and identity decisions
5. Analyze market opportunities

Conversation guidelines:
- Ask clarifying questions when needed
- Provide specific, actionable advice
- Reference industry best practices
- Be encouraging but honest
- Keep responses focused and valuable

Remember previous context in the conversation to provide coherent, personalized advice.`

const brandNameTemplate = `Generate creative, memorable brand name suggestions based on the following criteria:

Industry/Niche: %s
Keywords/Themes: %s
Style Preference: %s
Target Audience: %s
Additional Context: %s

Requirements:
1. Generate exactly 5 unique brand name suggestions
2. Each name should be memorable, easy to pronounce, and domain-friendly
3. Consider trademark availability (avoid common words)
4. Mix different naming strategies (invented words, compounds, metaphors)

For each suggestion, provide:
- The brand name
- Pronunciation guide (if needed)
- Brief meaning/rationale (1-2 sentences)
- Suggested domain extensions

Format your response as a structured list.`

// BrandNames renders the brand-name generation prompt.
func BrandNames(industry string, keywords []string, style, targetAudience, context string) string {
	return fmt.Sprintf(brandNameTemplate,
		industry,
		strings.Join(keywords, ", "),
		style,
		targetAudience,
		orDefault(context, "None specified"),
	)
}

const marketingContentTemplate = `Create compelling marketing content based on the following brief:

Brand Name: %s
Brand Description: %s
Content Type: %s
Target Audience: %s
Tone: %s
Key Message: %s
Call to Action: %s

Requirements:
1. Create content that resonates with the target audience
2. Incorporate the brand voice consistently
3. Include emotional triggers and persuasive elements
4. Optimize for the specified content type
5. Make the call to action clear and compelling

Provide the final content with any relevant variations or A/B test alternatives.`

// MarketingContent renders the marketing content prompt.
func MarketingContent(brandName, brandDescription, contentType, targetAudience, tone, keyMessage, cta string) string {
	return fmt.Sprintf(marketingContentTemplate,
		brandName,
		brandDescription,
		contentType,
		targetAudience,
		tone,
		orDefault(keyMessage, "Not specified"),
		orDefault(cta, "Not specified"),
	)
}

const sentimentTemplate = `Analyze the sentiment and emotional tone of the following text for brand/business insights:

Text to Analyze:
"%s"

Context: %s

Provide a comprehensive analysis including:

1. **Overall Sentiment**: (Positive/Negative/Neutral/Mixed) with confidence score (0-100%%)

2. **Emotional Breakdown**:
   - Primary emotions detected
   - Intensity levels (Low/Medium/High)

3. **Brand Implications**:
   - How this sentiment affects brand perception
   - Potential opportunities or risks

4. **Key Phrases**:
   - Highlight significant phrases and their emotional weight

5. **Recommendations**:
   - Actionable steps based on the sentiment analysis

Format the response in a clear, structured manner suitable for business decision-making.`

// Sentiment renders the sentiment-analysis prompt.
func Sentiment(text, context string) string {
	return fmt.Sprintf(sentimentTemplate, text, context)
}

const designPaletteTemplate = `Create a professional color palette and design system recommendations for:

Brand Name: %s
Industry: %s
Brand Personality: %s
Target Audience: %s
Mood/Feeling: %s
Existing Colors (if any): %s

Provide a complete design recommendation including:

1. **Primary Color Palette** (3-5 colors):
   - HEX codes
   - RGB values
   - Color names
   - Usage guidelines (when to use each color)

2. **Secondary/Accent Colors** (2-3 colors):
   - Supporting colors for highlights and CTAs

3. **Neutral Colors**:
   - Background, text, and border colors

4. **Color Psychology**:
   - Why these colors work for the brand
   - Emotional associations

5. **Typography Recommendations**:
   - Suggested font pairings (heading + body)
   - Font characteristics that match the brand

6. **Usage Examples**:
   - Website header
   - Call-to-action buttons
   - Social media templates

Ensure colors are WCAG accessible and work well together.`

// DesignPalette renders the color-palette prompt.
func DesignPalette(brandName, industry, brandPersonality, targetAudience, mood, existingColors string) string {
	return fmt.Sprintf(designPaletteTemplate,
		brandName,
		industry,
		brandPersonality,
		targetAudience,
		mood,
		orDefault(existingColors, "None specified"),
	)
}

const logoConceptsTemplate = `Generate detailed text-to-image prompts for logo design based on:

Brand Name: %s
Industry: %s
Brand Values: %s
Style Preference: %s
Icon Preferences: %s
Colors to Incorporate: %s

Generate 3 different logo concept prompts, each with:

1. **Concept Name**: Brief title for the concept

2. **Detailed Prompt**: A comprehensive text-to-image prompt (50-100 words) that includes:
   - Logo style (minimalist, vintage, modern, geometric, etc.)
   - Key visual elements
   - Color specifications
   - Typography style
   - Composition and layout
   - Technical specifications (vector, clean lines, etc.)

3. **Rationale**: Why this concept works for the brand (2-3 sentences)

4. **Negative Prompt**: What to avoid in the generation

Format each concept clearly for easy use with AI image generators.`

// LogoConcepts renders the logo concept-prompt generation prompt.
func LogoConcepts(brandName, industry, brandValues, style, iconPreferences, colors string) string {
	return fmt.Sprintf(logoConceptsTemplate,
		brandName,
		industry,
		brandValues,
		style,
		orDefault(iconPreferences, "Open to suggestions"),
		orDefault(colors, "Open to suggestions"),
	)
}

// LogoImage renders the fixed text-to-image prompt for direct logo generation.
func LogoImage(style, brandName, industry string) string {
	return fmt.Sprintf("%s logo for %s, %s, vector art, minimal, clean white background, high quality, professional design, centered",
		style, brandName, industry)
}

// LogoEdit wraps an edit instruction with the fixed quality framing sent to
// the image-to-image provider.
func LogoEdit(instruction string) string {
	return fmt.Sprintf("professional logo, %s, vector art, clean design, high quality", instruction)
}

// NegativeImagePrompt is the weight:-1 prompt sent with every image request.
const NegativeImagePrompt = "blurry, low quality, distorted, text"

// NegativeEditPrompt is the weight:-1 prompt sent with every edit request.
const NegativeEditPrompt = "blurry, low quality, distorted, ugly, bad art"

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
