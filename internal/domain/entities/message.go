package entities

import "time"

type MessageType string

const MessageTypeText MessageType = "text"

// MessageBodyMaxLength is counted in characters (runes), not bytes.
const MessageBodyMaxLength = 2000

// Message is a chat line scoped to one service request.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (service_request_id-index): service_request_id
type Message struct {
	ID               string      `json:"id"`
	ServiceRequestID string      `json:"service_request_id"`
	SenderID         string      `json:"sender_id"`
	Type             MessageType `json:"type"`
	Body             string      `json:"body"`
	CreatedAt        time.Time   `json:"created_at"`
}

// MessageEvent is what gets published on a service request channel.
// Subscribers drop events whose ExcludeUserID matches their own identity.
type MessageEvent struct {
	Event         string  `json:"event"`
	ExcludeUserID string  `json:"exclude_user_id"`
	Message       Message `json:"message"`
}

const MessageEventSent = "message.sent"
