package model

import "time"

// Sentiment tags an analysis insight for display.
type Sentiment string

// Insight sentiments.
const (
	SentimentPositive Sentiment = "positive"
	SentimentWarning  Sentiment = "warning"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// AnalysisInsight is a static, read-only annotation shown alongside the
// data. Insights have no relationship to individual budget records.
type AnalysisInsight struct {
	Title       string
	Description string
	Sentiment   Sentiment
	Source      string
}

// FiscalSnapshot holds the hand-curated headline figures for the 2026
// budget strategy. Amounts are whole kina, ratios are percentages.
type FiscalSnapshot struct {
	DeficitGDP           float64
	DeficitGDP2024       float64
	DebtGDP              float64
	DebtGDP2025          float64
	InternalFundingRatio float64
	NationalPerCapita    float64
	OperationalExp       int64
	CapitalExp           int64
	DomesticRevenue      int64
	TotalExpenditure     int64
	TotalRevenue         int64
}

// ChatRole identifies the author of a chat message.
type ChatRole string

// Chat transcript roles.
const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one entry in a conversation transcript. Messages are
// append-only and never mutated after creation.
type ChatMessage struct {
	ID        string
	Role      ChatRole
	Text      string
	Timestamp time.Time
}
