package logging

import (
	"encoding/json"
	"log"
	"time"
)

type Fields struct {
	Service    string `json:"service"`
	RequestID  string `json:"request_id,omitempty"`
	Method     string `json:"method,omitempty"`
	Path       string `json:"path,omitempty"`
	Step       string `json:"step,omitempty"`
	Status     string `json:"status,omitempty"`
	Code       string `json:"code,omitempty"`
	EntityID   string `json:"entity_id,omitempty"`
	DurationMS int64  `json:"duration_ms,omitempty"`
	Message    string `json:"message,omitempty"`
}

// Log writes fields as a single JSON line through the standard logger.
func Log(fields Fields) {
	payload := map[string]any{
		"service":   fields.Service,
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	}
	put(payload, "request_id", fields.RequestID)
	put(payload, "method", fields.Method)
	put(payload, "path", fields.Path)
	put(payload, "step", fields.Step)
	put(payload, "status", fields.Status)
	put(payload, "code", fields.Code)
	put(payload, "entity_id", fields.EntityID)
	put(payload, "message", fields.Message)
	if fields.DurationMS > 0 {
		payload["duration_ms"] = fields.DurationMS
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("{\"service\":%q,\"status\":\"log_error\",\"error\":%q}", fields.Service, err.Error())
		return
	}
	log.Print(string(data))
}

func put(m map[string]any, k, v string) {
	if v != "" {
		m[k] = v
	}
}
