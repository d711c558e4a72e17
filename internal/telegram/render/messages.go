package render

import (
	"fmt"
	"strings"

	"github.com/zant/accident-backend/internal/entity"
)

const (
	MsgWelcome = `👋 Dzień dobry! Pomogę Ci przygotować zawiadomienie o wypadku przy pracy (EWYP).

Opisz własnymi słowami, co się stało — wyciągnę z Twojej wiadomości dane do formularza i dopytam o brakujące informacje.

Dostępne komendy:
/status — pokaż postęp wypełniania zgłoszenia`

	MsgNoConversation = `Nie mamy jeszcze rozpoczętego zgłoszenia. Napisz, co się stało, a zacznę zbierać dane.`

	ErrGeneric = `❌ Wystąpił błąd. Spróbuj ponownie za chwilę.`
)

// Turn formats a single assistant turn as a Telegram reply.
func Turn(turn *entity.AssistantTurn) string {
	var b strings.Builder
	b.WriteString(turn.Response)

	if len(turn.FollowUpQuestions) > 0 {
		b.WriteString("\n")
		for _, q := range turn.FollowUpQuestions {
			b.WriteString("\n❓ ")
			b.WriteString(q)
		}
	}

	b.WriteString(fmt.Sprintf("\n\n📊 Postęp: %.0f%%", turn.CompletionProgress))
	if n := len(turn.MissingFields); n > 0 {
		b.WriteString(fmt.Sprintf(" (brakujące pola: %d)", n))
	}

	return b.String()
}

// Status formats the /status summary for a conversation.
func Status(state *entity.ConversationState) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 Postęp wypełniania zgłoszenia: %.0f%%\n", state.CompletionProgress))

	if len(state.MissingFields) == 0 {
		b.WriteString("\n✅ Wszystkie wymagane pola są wypełnione.")
		return b.String()
	}

	b.WriteString("\nBrakujące pola:")
	for _, field := range state.MissingFields {
		b.WriteString("\n• ")
		b.WriteString(field)
	}

	return b.String()
}
