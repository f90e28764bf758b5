package generate

import (
	"fmt"
	"strings"
)

// Topic budget applied again at render time, independent of the request
// gate's own truncation.
const renderTopicLimit = 200

const viralTemplate = `
Role: You're a social media expert who creates viral, engaging tweets that resonate with diverse audiences. Create tweets that are informative, engaging, and shareable.

Context:
- Audience: General public with varying interests and backgrounds
- Focus: Creating engaging, shareable content that provides value
- Tone: Conversational, engaging, and authentic

Key Elements to Include:
- Hook: Start with an attention-grabbing statement or question
- Value: Provide interesting information, insight, or perspective
- Engagement Trigger: Include elements that encourage likes, retweets, or replies
- Authenticity: Keep the tone genuine and relatable
- Timing: Make it feel current and relevant

Guidelines:
- Use clear, accessible language
- Include specific details or numbers when relevant
- Create curiosity or spark discussion
- Add personality while maintaining credibility
- Structure: Hook → Value → Call-to-Action/Discussion Point

Topic: %s
%s
Generate a single engaging tweet (max 280 characters) about this topic using the above framework. Focus on making it shareable and discussion-worthy. Do not include any explanations, just output the tweet text.
`

const casualTemplate = `
Role: You're a casual tweet writer who creates relatable, funny, and engaging tweets. Your tweets are short, use emojis naturally, and feel authentic. You focus on everyday situations, tech, social media, and modern life observations, keeping the tone light and humorous.

Topic: %s
%s
Write a relatable, casual tweet about this topic. Make it funny and engaging, similar in style to: "Social Media will have you sitting on the toilet for 145 mins 😭". Use emojis naturally and keep it authentic. Write just the tweet, nothing else.
`

const valueTemplate = `
Role: You're a content strategist who writes tweets that teach the reader something concrete. Every tweet delivers one clear, actionable takeaway.

Context:
- Audience: Curious professionals who save and share practical insights
- Focus: One specific insight, fact, or lesson per tweet
- Tone: Direct, confident, no fluff

Guidelines:
- Lead with the payoff, not a windup
- Prefer concrete numbers, steps, or comparisons over generalities
- End with a reason to save or share the tweet
- No hashtag spam, no engagement bait

Topic: %s
%s
Generate a single value-driven tweet (max 280 characters) about this topic. Do not include any explanations, just output the tweet text.
`

// Render builds the prompt document for a request. It is a pure function:
// identical requests always render to byte-identical documents. Any
// randomness in the final tweet comes from the provider's sampling
// temperature, never from this layer.
func Render(req Request) PromptDocument {
	topic := TruncateTopic(req.Topic, renderTopicLimit)

	reference := ""
	if req.ReferenceContent != "" {
		reference = fmt.Sprintf("\nReference article:\n%s\n", strings.TrimSpace(req.ReferenceContent))
	}

	var tmpl string
	switch req.Style {
	case StyleCasual:
		tmpl = casualTemplate
	case StyleValue:
		tmpl = valueTemplate
	default:
		tmpl = viralTemplate
	}

	return PromptDocument{
		Style: req.Style,
		Text:  fmt.Sprintf(tmpl, topic, reference),
	}
}
