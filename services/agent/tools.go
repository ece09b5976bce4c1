package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"taxline/models"
	"taxline/services/identity"
	"taxline/services/scheduling"
	"taxline/services/search"
	"taxline/utils"

	"go.uber.org/zap"
)

const verifyFirstMessage = "Please verify first using your full name and customer id."

// schedulingMessage recovers a scheduling refusal into its user-facing
// message. Unexpected errors get logged and a generic apology; nothing
// propagates as a crash.
func schedulingMessage(err error) string {
	var se *scheduling.Error
	if errors.As(err, &se) {
		return se.Message
	}
	utils.GetLogger().Error("scheduling operation failed", zap.Error(err))
	return "Sorry, something went wrong handling your booking. Please try again."
}

func (s *DefaultAgentService) runVerify(ctx context.Context, sess *models.Session, name, customerID string) string {
	if name == "" || customerID == "" {
		return "I need your full name and customer id to verify you."
	}
	ident, err := s.Identity.Verify(ctx, name, customerID)
	if errors.Is(err, identity.ErrNotRecognized) {
		return "I'm sorry, we could not verify your credentials."
	}
	if err != nil {
		utils.GetLogger().Error("identity verification failed", zap.Error(err))
		return "Sorry, verification is unavailable right now. Please try again."
	}

	sess.Verified = ident
	return fmt.Sprintf("Hello %s, you are verified! You can now ask about your tax record, general queries, or book a meeting.", ident.Name)
}

func (s *DefaultAgentService) runTaxInfo(ctx context.Context, sess *models.Session, question string) string {
	if sess.Verified == nil {
		return verifyFirstMessage
	}
	record, err := s.Records.GetByCustomerID(ctx, sess.Verified.CustomerID)
	if err != nil {
		utils.GetLogger().Error("tax record lookup failed", zap.Error(err))
		return "Sorry, I could not reach your tax record right now."
	}
	if record == nil {
		return "Could not find your record. Please verify again."
	}

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return "Sorry, I could not read your tax record."
	}
	prompt := fmt.Sprintf(
		"You are a helpful tax assistant. Answer based on the user's tax record. Be cheerful, positive, and humorous regardless of unpaid taxes.\n\nUser asked: %s\n\nHere is their tax record:\n%s",
		question, recordJSON,
	)
	answer, err := s.Gemini.GenerateContent(ctx, prompt)
	if err != nil {
		utils.GetLogger().Error("tax info summarization failed", zap.Error(err))
		return "Sorry, I could not answer that right now. Please try again."
	}
	return answer
}

func (s *DefaultAgentService) runSearch(ctx context.Context, sess *models.Session, query string) string {
	if sess.Verified == nil {
		return verifyFirstMessage
	}
	results, err := s.Search.Search(ctx, query)
	if err != nil {
		utils.GetLogger().Error("web search failed", zap.Error(err))
		return "Sorry, search is unavailable right now. Please try again."
	}
	if len(results) == 0 {
		return "I could not find anything on that. Try rephrasing your question."
	}

	prompt := fmt.Sprintf(
		"Pleasantly summarize the following search results into one concise paragraph. Always preserve the original URLs as clickable markdown links so the user can read more.\n\n%s",
		search.FormatSnippets(results),
	)
	summary, err := s.Gemini.GenerateContent(ctx, prompt)
	if err != nil {
		// Raw snippets still carry the links; better than nothing.
		return search.FormatSnippets(results)
	}
	return summary
}

func (s *DefaultAgentService) runCreateBooking(ctx context.Context, sess *models.Session, dateTime, topic string) string {
	conf, err := s.Scheduler.CreateBooking(ctx, sess, dateTime, topic)
	if err != nil {
		return schedulingMessage(err)
	}
	return fmt.Sprintf("%s\n\n[Download .ics file](%s)\n\nClick that link to pull this meeting into your calendar.",
		conf.Message, conf.InviteDataURI)
}

// runUpdateBooking owns the list / cancel / reschedule dispatch the
// callers express through optional datetime arguments: no original
// datetime lists, a "cancel" (or empty) new datetime cancels, and two
// datetimes reschedule.
func (s *DefaultAgentService) runUpdateBooking(ctx context.Context, sess *models.Session, originalDateTime, newDateTime string) string {
	originalDateTime = strings.TrimSpace(originalDateTime)
	newDateTime = strings.TrimSpace(newDateTime)

	if originalDateTime == "" {
		bookings, err := s.Scheduler.ListBookings(ctx, sess)
		if err != nil {
			return schedulingMessage(err)
		}
		if len(bookings) == 0 {
			return "You have no upcoming bookings."
		}
		var lines []string
		for _, b := range bookings {
			topic := b.Topic
			if topic == "" {
				topic = "No description provided"
			}
			lines = append(lines, fmt.Sprintf("- %s - Topic: %s", b.Start.Format("2006-01-02 15:04"), topic))
		}
		return "Your upcoming bookings:\n" + strings.Join(lines, "\n")
	}

	if newDateTime == "" || strings.EqualFold(newDateTime, "cancel") {
		if _, err := s.Scheduler.CancelBooking(ctx, sess, originalDateTime); err != nil {
			return schedulingMessage(err)
		}
		return fmt.Sprintf("Your booking on %s has been cancelled.", originalDateTime)
	}

	booking, err := s.Scheduler.RescheduleBooking(ctx, sess, originalDateTime, newDateTime)
	if err != nil {
		return schedulingMessage(err)
	}
	return fmt.Sprintf("Your booking has been moved to %s.", booking.Start.Format("2006-01-02 15:04"))
}
