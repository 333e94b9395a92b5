package views

import (
	"context"
	"strings"
	"time"

	"github.com/bobmcallan/kabu/internal/interfaces"
	"github.com/bobmcallan/kabu/internal/models"
)

// ScriptedAssistant is a keyword-matching responder over compile-time
// fixtures. Replies are canned; no completion backend is involved. It sits
// behind the Assistant interface so a real collaborator could be swapped in.
type ScriptedAssistant struct{}

// NewScriptedAssistant creates the fixture-backed assistant.
func NewScriptedAssistant() *ScriptedAssistant {
	return &ScriptedAssistant{}
}

// Greeting returns the opening assistant message shown before any input.
func (a *ScriptedAssistant) Greeting() *models.ChatMessage {
	return &models.ChatMessage{
		Role: models.RoleAssistant,
		Content: "Hello! I'm your personal investment assistant. Ask me about " +
			"market conditions, portfolio allocation, or risk — I'll do my best to help.",
		Suggestions: []string{
			"Give me today's market summary",
			"How is my portfolio allocated?",
			"Run a risk check on my holdings",
			"What's the impact of US rates?",
		},
		Timestamp: time.Now(),
	}
}

type scriptedReply struct {
	keywords    []string
	content     string
	suggestions []string
}

var scriptedReplies = []scriptedReply{
	{
		keywords: []string{"market", "summary", "analysis"},
		content: "Here's today's market picture.\n\n" +
			"Nikkei 225: 33,750 (+756, +2.3%) — yen weakness supporting exporters.\n" +
			"S&P 500: 4,890 (-39, -0.8%) — rate caution weighing on sentiment.\n\n" +
			"Exporters look best placed while the currency tailwind holds; US names " +
			"remain hostage to the rates path.",
		suggestions: []string{"How is my portfolio allocated?", "What's the impact of US rates?"},
	},
	{
		keywords: []string{"portfolio", "allocation", "diversif"},
		content: "Your portfolio is concentrated in large-cap technology (around 46% of " +
			"value). Diversification is limited: four holdings drive nearly all of the " +
			"risk. Consider whether the single-sector weighting matches your stated " +
			"risk tolerance.",
		suggestions: []string{"Run a risk check on my holdings", "Give me today's market summary"},
	},
	{
		keywords: []string{"risk", "volatility", "drawdown"},
		content: "Risk check: portfolio beta sits near 1.2 versus the S&P 500, with an " +
			"estimated Sharpe ratio of 0.9 over the trailing year. The largest single " +
			"position accounts for over a third of total value — position sizing is " +
			"the main lever if you want to reduce drawdown exposure.",
		suggestions: []string{"How is my portfolio allocated?"},
	},
	{
		keywords: []string{"rate", "fed", "interest", "inflation"},
		content: "US rates remain the dominant macro driver. Sticky services inflation " +
			"has pushed expected cuts later into the year; long-duration growth names " +
			"are most sensitive to that repricing, while financials and cash-rich " +
			"balance sheets are relative beneficiaries.",
		suggestions: []string{"Give me today's market summary", "Run a risk check on my holdings"},
	},
}

var fallbackReply = scriptedReply{
	content: "I can help with market summaries, portfolio allocation, risk checks, " +
		"and the rates outlook. Try one of the suggestions below.",
	suggestions: []string{
		"Give me today's market summary",
		"How is my portfolio allocated?",
		"Run a risk check on my holdings",
	},
}

// Reply matches the prompt against keyword fixtures and returns the canned
// response. The context is accepted for interface compatibility only; no
// I/O happens here.
func (a *ScriptedAssistant) Reply(ctx context.Context, prompt string) (*models.ChatMessage, error) {
	lower := strings.ToLower(prompt)

	reply := fallbackReply
	for _, candidate := range scriptedReplies {
		if matchesAny(lower, candidate.keywords) {
			reply = candidate
			break
		}
	}

	return &models.ChatMessage{
		Role:        models.RoleAssistant,
		Content:     reply.content,
		Suggestions: reply.suggestions,
		Timestamp:   time.Now(),
	}, nil
}

func matchesAny(prompt string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(prompt, kw) {
			return true
		}
	}
	return false
}

var _ interfaces.Assistant = (*ScriptedAssistant)(nil)
