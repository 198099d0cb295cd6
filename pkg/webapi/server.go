// Package webapi exposes the front-desk agent over HTTP: the chat endpoint,
// lead capture, health, and Prometheus metrics.
package webapi

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"frontdesk/pkg/chat"
	"frontdesk/pkg/convo"
	"frontdesk/pkg/leads"
	"frontdesk/pkg/logx"
)

// Request body limits, mirrored in the 400 responses.
const (
	maxMessageLength = 4000
	minNameLength    = 1
	maxNameLength    = 200
	minEmailLength   = 5
	maxEmailLength   = 320
)

// ChatRequest is the POST /chat body.
type ChatRequest struct {
	Message             string           `json:"message"`
	ConversationHistory convo.Transcript `json:"conversation_history"`
}

// LeadRequest is the POST /lead body.
type LeadRequest struct {
	Name                string `json:"name"`
	Email               string `json:"email"`
	ConversationSummary string `json:"conversation_summary"`
	InquiryType         string `json:"inquiry_type"`
}

// LeadResponse is the POST /lead reply.
type LeadResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	ReferenceID string `json:"reference_id,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Server is the front-desk HTTP server.
type Server struct {
	chatService *chat.Service
	leadService *leads.Service
	registry    *prometheus.Registry
	corsOrigins []string
	logger      *logx.Logger
}

// NewServer creates an HTTP server over the chat and lead services.
// registry may be nil, in which case /metrics is not registered.
func NewServer(chatService *chat.Service, leadService *leads.Service, registry *prometheus.Registry, corsOrigins []string) *Server {
	return &Server{
		chatService: chatService,
		leadService: leadService,
		registry:    registry,
		corsOrigins: corsOrigins,
		logger:      logx.NewLogger("webapi"),
	}
}

// RegisterRoutes sets up HTTP routes for the API.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/chat", s.withCORS(s.handleChat))
	mux.HandleFunc("/lead", s.withCORS(s.handleLead))
	mux.HandleFunc("/health", s.withCORS(s.handleHealth))
	if s.registry != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
}

// Handler returns the fully-routed handler for this server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return mux
}

// withCORS applies the configured CORS policy and answers preflight requests.
func (s *Server) withCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, r)
	}
}

func (s *Server) originAllowed(origin string) bool {
	for _, allowed := range s.corsOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// handleChat implements POST /chat.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var reqBody ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if reqBody.Message == "" {
		http.Error(w, "Message is required", http.StatusBadRequest)
		return
	}
	if len(reqBody.Message) > maxMessageLength {
		http.Error(w, "Message too long", http.StatusBadRequest)
		return
	}

	resp, err := s.chatService.Respond(r.Context(), &chat.Request{
		Message: reqBody.Message,
		History: reqBody.ConversationHistory,
	})
	if err != nil {
		s.logger.Error("Chat turn failed: %v", err)
		http.Error(w, "Agent error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, resp)
}

// handleLead implements POST /lead.
func (s *Server) handleLead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var reqBody LeadRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if len(reqBody.Name) < minNameLength || len(reqBody.Name) > maxNameLength {
		http.Error(w, "Name must be between 1 and 200 characters", http.StatusBadRequest)
		return
	}
	if len(reqBody.Email) < minEmailLength || len(reqBody.Email) > maxEmailLength {
		http.Error(w, "Email must be between 5 and 320 characters", http.StatusBadRequest)
		return
	}

	inquiryType := leads.InquiryType(reqBody.InquiryType)
	if reqBody.InquiryType == "" {
		inquiryType = leads.InquiryFreelanceProject
	}

	result := s.leadService.Capture(reqBody.Name, reqBody.Email, reqBody.ConversationSummary, inquiryType)

	s.writeJSON(w, LeadResponse{
		Success:     result.Success,
		Message:     result.Message,
		ReferenceID: result.ReferenceID,
		Error:       result.Error,
	})
}

// handleHealth implements GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.writeJSON(w, map[string]string{
		"status":  "healthy",
		"service": "frontdesk-agent",
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
