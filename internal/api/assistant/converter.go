package assistant

import (
	"github.com/zant/accident-backend/internal/entity"
)

func toConversationStateDTO(state *entity.ConversationState) *entity.ConversationStateDTO {
	return &entity.ConversationStateDTO{
		ConversationID:     state.ConversationID,
		Report:             state.Report,
		History:            state.History,
		MissingFields:      state.MissingFields,
		CompletionProgress: state.CompletionProgress,
	}
}
