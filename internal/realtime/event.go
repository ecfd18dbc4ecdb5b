package realtime

// Event types pushed to connected dashboard sessions. Every event carries the
// full record so clients can re-render idempotently from the latest snapshot.
const (
	EventPostCreated    = "post.created"
	EventPostDeleted    = "post.deleted"
	EventChatCreated    = "chat.created"
	EventChatDeleted    = "chat.deleted"
	EventRequestCreated = "request.created"
	EventRequestUpdated = "request.updated"
	EventUserUpdated    = "user.updated"
)

type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Publisher is what services see. A nil Publisher is valid and drops events;
// tests and one-shot tools run without a hub.
type Publisher interface {
	Publish(communityID string, event Event)
}
