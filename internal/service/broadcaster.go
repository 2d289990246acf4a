package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToVeteran(veteranID string, msgType string, payload interface{})
}
