package queues

import (
	"foreign-call-resolver/src/utils"
	"foreign-call-resolver/src/utils/timeutil"

	"github.com/google/uuid"
)

const (
	StatusResolved = "resolved"
	StatusFailed   = "failed"
)

// ResolvedCallMessage is the audit record published for every dispatched
// foreign call. Results are small decimal strings, so they travel in full.
type ResolvedCallMessage struct {
	MessageID string           `json:"message_id"`
	SessionID uint64           `json:"session_id"`
	Function  string           `json:"function"`
	Status    string           `json:"status"`
	Result    string           `json:"result,omitempty"`
	Error     string           `json:"error,omitempty"`
	Timestamp timeutil.TimeUTC `json:"timestamp"`
}

func NewResolvedCallMessage(sessionID uint64, function, result string, resolveErr error) ResolvedCallMessage {
	message := ResolvedCallMessage{
		MessageID: uuid.NewString(),
		SessionID: sessionID,
		Function:  function,
		Status:    StatusResolved,
		Result:    result,
		Timestamp: timeutil.NowUTC(),
	}
	if resolveErr != nil {
		message.Status = StatusFailed
		message.Result = ""
		message.Error = resolveErr.Error()
	}

	return message
}

func (m ResolvedCallMessage) Serialize() ([]byte, error) {
	return utils.Serialize[ResolvedCallMessage](m)
}
