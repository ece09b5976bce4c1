// Package agent is the conversational front-end: it routes each user
// turn to one of the advisory tools and phrases the result. Tool
// selection is LLM-driven and deliberately thin; the deterministic
// behavior lives in the services the tools call.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	taxrecordRepo "taxline/database/repository/taxrecord"
	"taxline/models"
	"taxline/services/identity"
	"taxline/services/scheduling"
	"taxline/services/search"
)

// AgentService handles one conversational turn.
type AgentService interface {
	ProcessUserInput(ctx context.Context, sess *models.Session, text string) (*models.ChatResponse, error)
}

// DefaultAgentService implements AgentService.
type DefaultAgentService struct {
	Gemini    Summarizer
	Identity  identity.IdentityService
	Records   taxrecordRepo.TaxRecordRepository
	Scheduler scheduling.SchedulingService
	Search    search.SearchService
	Sessions  SessionStore
	Location  *time.Location
}

// toolCall is the structured tool selection the router model emits.
type toolCall struct {
	Tool string            `json:"tool"`
	Args map[string]string `json:"args"`
}

const routingPromptTemplate = `You are a cheerful, helpful assistant for a Canadian tax advisory office.
Today's date is %s.

Rules:
- The caller must verify with their full name and customer id before anything else.
- You only help with Canadian taxes, Canadian attractions, the caller's own tax record, and consultation bookings. Politely refuse everything else.
- Use only standard ASCII characters.

Pick exactly one tool for the latest message and reply with a single JSON object, nothing else:
{"tool": "<name>", "args": {...}}

Tools:
- verify_user: args name, customer_id
- query_personal_tax_info: args question
- search: args query (Canadian taxes and attractions only)
- create_booking: args date_time ("YYYY-MM-DD HH:MM", 24-hour clock), meeting_topic
- update_booking: args original_datetime, new_datetime. For "list my bookings" leave both empty. To cancel, set new_datetime to "cancel". To reschedule, set both.
- reply: args text (small talk, refusals, asking for missing details)

Caller verified: %t

Conversation so far:
%s

Latest message: %s`

// ProcessUserInput routes one turn through the tool layer and saves
// the updated session.
func (s *DefaultAgentService) ProcessUserInput(ctx context.Context, sess *models.Session, text string) (*models.ChatResponse, error) {
	prompt := fmt.Sprintf(routingPromptTemplate,
		time.Now().In(s.Location).Format("Monday, 02 January 2006"),
		sess.Verified != nil,
		renderHistory(sess.History),
		text,
	)

	out, err := s.Gemini.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("agent routing failed: %w", err)
	}

	call := parseToolCall(out)
	reply := s.dispatch(ctx, sess, call, out)

	now := time.Now()
	sess.History = append(sess.History,
		models.ChatMessage{Role: "user", Content: text, At: now},
		models.ChatMessage{Role: "assistant", Content: reply, At: now},
	)
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &models.ChatResponse{SessionID: sess.ID, Reply: reply}, nil
}

func (s *DefaultAgentService) dispatch(ctx context.Context, sess *models.Session, call toolCall, raw string) string {
	switch call.Tool {
	case "verify_user":
		return s.runVerify(ctx, sess, call.Args["name"], call.Args["customer_id"])
	case "query_personal_tax_info":
		return s.runTaxInfo(ctx, sess, call.Args["question"])
	case "search":
		return s.runSearch(ctx, sess, call.Args["query"])
	case "create_booking":
		return s.runCreateBooking(ctx, sess, call.Args["date_time"], call.Args["meeting_topic"])
	case "update_booking":
		return s.runUpdateBooking(ctx, sess, call.Args["original_datetime"], call.Args["new_datetime"])
	case "reply":
		if text := call.Args["text"]; text != "" {
			return text
		}
		return strings.TrimSpace(raw)
	default:
		return strings.TrimSpace(raw)
	}
}

// parseToolCall extracts the first JSON object from model output,
// tolerating code fences and surrounding prose. Anything unreadable
// falls back to a plain reply.
func parseToolCall(out string) toolCall {
	start := strings.Index(out, "{")
	end := strings.LastIndex(out, "}")
	if start < 0 || end <= start {
		return toolCall{Tool: "reply", Args: map[string]string{"text": strings.TrimSpace(out)}}
	}
	var call toolCall
	if err := json.Unmarshal([]byte(out[start:end+1]), &call); err != nil || call.Tool == "" {
		return toolCall{Tool: "reply", Args: map[string]string{"text": strings.TrimSpace(out)}}
	}
	if call.Args == nil {
		call.Args = map[string]string{}
	}
	return call
}

func renderHistory(history []models.ChatMessage) string {
	if len(history) == 0 {
		return "(none)"
	}
	var sb strings.Builder
	for _, msg := range history {
		sb.WriteString(msg.Role)
		sb.WriteString(": ")
		sb.WriteString(msg.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}
