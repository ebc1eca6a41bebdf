package websocket

import "encoding/json"

// Message defines the structure for websocket messages sent to clients.
type Message struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// Encode marshals an event and its payload into a wire message.
func Encode(event string, payload any) ([]byte, error) {
	return json.Marshal(Message{Event: event, Payload: payload})
}
