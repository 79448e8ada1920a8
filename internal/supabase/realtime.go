package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
)

type RealtimeClient struct {
	client *supabase.Client
}

func NewRealtimeClient(client *supabase.Client) *RealtimeClient {
	return &RealtimeClient{
		client: client,
	}
}

func (r *RealtimeClient) PublishEvent(channel string, event string, payload map[string]interface{}) error {
	// The Go client has no direct Realtime publish; row updates trigger
	// Realtime automatically, so this stays a placeholder for explicit events.
	return nil
}

func (r *RealtimeClient) PublishProjectEvent(projectID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("project:%s", projectID.String())
	return r.PublishEvent(channel, event, payload)
}

// Event payloads
func ProjectSubmittedPayload(projectID uuid.UUID, title string) map[string]interface{} {
	return map[string]interface{}{
		"project_id": projectID.String(),
		"title":      title,
		"status":     "Pending",
	}
}

func StatusChangedPayload(projectID uuid.UUID, status string) map[string]interface{} {
	return map[string]interface{}{
		"project_id": projectID.String(),
		"status":     status,
	}
}

func InterestReceivedPayload(interestID, projectID uuid.UUID) map[string]interface{} {
	return map[string]interface{}{
		"interest_id": interestID.String(),
		"project_id":  projectID.String(),
		"category":    "New",
	}
}
