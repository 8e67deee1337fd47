package agent

import "fmt"

// Instructions for the two specialist steps of a turn. The quantity and
// freshness requirements live in prompt text on purpose: the quota is
// advisory, and downstream consumers tolerate fewer or more items.

const formatterInstructionTemplate = `You are an expert at crafting impactful, informative AI news headlines.

Given raw information about news articles, format them in this exact structure:

Date: YYYY-MM-DD HH:MM
Source: Source name
Headline: [Category] Key Development - Impactful Description

Categories: [Breakthrough] [Industry] [Policy] [Research] [Ethics] [Innovation]

Formatting requirements:
1. Dates: include the exact publication time in HH:MM format when known
2. Sources: use the specific publication name
3. Separation: one blank line between articles
4. Order: newest first
5. Age: only articles published today
6. Return at most %d articles and nothing else: no preamble, no commentary

Headlines must convey what happened and why it matters, without clickbait.`

const generatorInstructionTemplate = `You are an AI News Assistant that delivers the latest AI news with impactful, informative headlines.
Your goal is to return EXACTLY %d current AI news articles from today, sorted newest first.

Format each news item exactly as:
Date: YYYY-MM-DD HH:MM
Source: Source name
Headline: [Category] Key Development - Impactful Description

Separate articles with one blank line. Do not add any other text.`

func formatterInstruction(quota int) string {
	return fmt.Sprintf(formatterInstructionTemplate, quota)
}

func generatorInstruction(quota int) string {
	return fmt.Sprintf(generatorInstructionTemplate, quota)
}

// Search queries widen tier by tier when earlier attempts come back short,
// the same escalation the search specialist would walk through by hand:
// tech press first, then announcements, then research and business press.
var queryTiers = [][]string{
	{"artificial intelligence news", "AI news today"},
	{"AI breakthrough announcement", "major AI development"},
	{"artificial intelligence research", "AI company announcement"},
}

func queriesForAttempt(attempt int) []string {
	if attempt < len(queryTiers) {
		return queryTiers[attempt]
	}
	return queryTiers[len(queryTiers)-1]
}
