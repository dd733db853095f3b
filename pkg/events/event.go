package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "USER_LOGIN").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes emitted by this service.
const (
	TypeDocumentStatusChanged = "DOCUMENT_STATUS_CHANGED"
	TypeResearchCompleted     = "RESEARCH_COMPLETED"
)

// NewDocumentStatusEvent reports a document lifecycle transition.
func NewDocumentStatusEvent(userID, documentID, fileName, status, errorMessage string) BaseEvent {
	data := map[string]interface{}{
		"user_id":     userID,
		"entity_type": "document",
		"entity_id":   documentID,
		"file_name":   fileName,
		"status":      status,
	}
	if errorMessage != "" {
		data["error"] = errorMessage
	}
	return BaseEvent{
		Type:       TypeDocumentStatusChanged,
		Data:       data,
		OccurredAt: time.Now(),
	}
}

// NewResearchCompletedEvent reports a finished pipeline run.
func NewResearchCompletedEvent(userID, sessionID string, sourceCount int, processingTime float64) BaseEvent {
	return BaseEvent{
		Type: TypeResearchCompleted,
		Data: map[string]interface{}{
			"user_id":         userID,
			"entity_type":     "session",
			"entity_id":       sessionID,
			"source_count":    sourceCount,
			"processing_time": processingTime,
		},
		OccurredAt: time.Now(),
	}
}
