package web

import (
	"time"
)

// GetPort returns the listening port from the config
func (s *WebServer) GetPort() int {
	return s.Config.ListenPort
}

// Uptime returns how long the server has been listening, zero before Start
func (s *WebServer) Uptime() time.Duration {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.StartTime.IsZero() {
		return 0
	}
	return time.Since(s.StartTime)
}
