package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	// BroadcastToPatient delivers an event to the patient's own connections.
	BroadcastToPatient(patientID string, msgType string, payload interface{})
	// BroadcastToWatchers delivers an event to doctor dashboards watching
	// the patient.
	BroadcastToWatchers(patientID string, msgType string, payload interface{})
}
