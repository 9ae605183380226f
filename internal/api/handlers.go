package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"sahay.app/support-backend/internal/core"
)

// DefaultWindowDays is the trailing window applied to sentiment
// analysis when the request does not specify one. The plain journal
// list is unwindowed unless the caller passes days explicitly.
const DefaultWindowDays = 7

type APIHandler struct {
	chatService    *core.ChatService
	journalService *core.JournalService
}

func NewAPIHandler(cs *core.ChatService, js *core.JournalService) *APIHandler {
	return &APIHandler{chatService: cs, journalService: js}
}

type ChatRequest struct {
	Message  string `json:"message"`
	Username string `json:"username,omitempty"`
	Mode     string `json:"mode,omitempty"`
}

type ChatResponse struct {
	Answer string `json:"answer"`
}

func (h *APIHandler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, "Message cannot be empty", http.StatusBadRequest)
		return
	}

	answer, err := h.chatService.Respond(r.Context(), req.Username, req.Mode, req.Message)
	if err != nil {
		log.Printf("Error generating chat response for user %q: %v", req.Username, err)
		http.Error(w, "Internal error, please try again", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(ChatResponse{Answer: answer})
}

func (h *APIHandler) ClearHistoryHandler(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")

	if err := h.chatService.ClearHistory(username); err != nil {
		log.Printf("Error clearing history for user %q: %v", username, err)
		http.Error(w, "Internal error, please try again", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type JournalWriteRequest struct {
	Username string `json:"username"`
	Entry    string `json:"entry"`
}

type JournalWriteResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (h *APIHandler) CreateJournalHandler(w http.ResponseWriter, r *http.Request) {
	var req JournalWriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Entry == "" {
		http.Error(w, "Username and entry are required", http.StatusBadRequest)
		return
	}

	id, err := h.journalService.AppendEntry(r.Context(), req.Username, req.Entry)
	if err != nil {
		log.Printf("Error saving journal entry for user %q: %v", req.Username, err)
		http.Error(w, "Internal error, please try again", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(JournalWriteResponse{ID: id, Message: "Journal entry saved."})
}

type JournalEntryResponse struct {
	Text string `json:"text"`
	Date string `json:"date"`
}

// windowDaysParam reads the optional trailing-window parameter; the
// fallback differs per endpoint (0 disables the window).
func windowDaysParam(r *http.Request, fallback int) int {
	if days, err := strconv.Atoi(r.URL.Query().Get("days")); err == nil && days > 0 {
		return days
	}
	return fallback
}

func (h *APIHandler) ListJournalHandler(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		http.Error(w, "Username is required", http.StatusBadRequest)
		return
	}

	entries, err := h.journalService.RecentEntries(username, windowDaysParam(r, 0))
	if err != nil {
		log.Printf("Error listing journal entries for user %q: %v", username, err)
		http.Error(w, "Internal error, please try again", http.StatusInternalServerError)
		return
	}

	resp := make([]JournalEntryResponse, len(entries))
	for i, entry := range entries {
		resp[i] = JournalEntryResponse{Text: entry.Text, Date: entry.Date}
	}
	json.NewEncoder(w).Encode(resp)
}

func (h *APIHandler) JournalSentimentHandler(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		http.Error(w, "Username is required", http.StatusBadRequest)
		return
	}

	summary, err := h.journalService.WindowSentiment(r.Context(), username, windowDaysParam(r, DefaultWindowDays))
	if err != nil {
		log.Printf("Error analyzing sentiment for user %q: %v", username, err)
		http.Error(w, "Internal error, please try again", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(summary)
}
