package splitting

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
)

// corsError writes an error response with CORS headers set
func corsError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	http.Error(w, message, code)
}

// corsErrorJSON writes a JSON error response with CORS headers set
func corsErrorJSON(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// itemView is a line item plus its derived unit price
type itemView struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`
	UnitPrice float64 `json:"unit_price"`
}

// cardView is a unit card plus its current assignee
type cardView struct {
	Key        string `json:"key"`
	Item       int    `json:"item"`
	Name       string `json:"name"`
	AssignedTo string `json:"assigned_to,omitempty"`
}

// sessionView is the session state as rendered to the UI
type sessionView struct {
	ID        string     `json:"id"`
	OrderDate string     `json:"order_date"`
	Items     []itemView `json:"items"`
	Members   []string   `json:"members"`
	Cards     []cardView `json:"cards"`
}

func newSessionView(session *Session) sessionView {
	view := sessionView{
		ID:        session.ID,
		OrderDate: session.OrderDate,
		Items:     make([]itemView, 0, len(session.Items)),
		Members:   session.Members,
		Cards:     make([]cardView, 0),
	}
	for _, item := range session.Items {
		view.Items = append(view.Items, itemView{
			Name:      item.Name,
			Quantity:  item.Quantity,
			Total:     item.Total,
			UnitPrice: item.UnitPrice(),
		})
	}
	for _, card := range session.Cards() {
		view.Cards = append(view.Cards, cardView{
			Key:        card.Key(),
			Item:       card.Item,
			Name:       session.Items[card.Item].Name,
			AssignedTo: session.Assignment[card.Key()],
		})
	}
	return view
}

func writeSessionView(w http.ResponseWriter, session *Session, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(newSessionView(session)); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleIndex serves the HTML interface
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

// handleCreateSession starts a new empty splitting session
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.service.CreateSession()
	if err != nil {
		slog.Error("Error creating session", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeSessionView(w, session, http.StatusCreated)
}

// handleGetSession returns the current state of a session
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Session ID required", http.StatusBadRequest)
		return
	}
	session, err := s.service.GetSession(id)
	if err != nil {
		corsError(w, "Session not found", http.StatusNotFound)
		return
	}
	writeSessionView(w, session, http.StatusOK)
}

// handleDeleteSession discards a session
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Session ID required", http.StatusBadRequest)
		return
	}
	if err := s.service.DeleteSession(id); err != nil {
		corsError(w, "Error deleting session", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleUploadReceipt handles receipt upload and parsing
func (s *Server) handleUploadReceipt(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Session ID required", http.StatusBadRequest)
		return
	}

	maxFormSize := int64(50 << 20) // 50MB
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		corsErrorJSON(w, "Error parsing form", http.StatusBadRequest)
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		slog.Error("Error getting file from form", "error", err)
		corsErrorJSON(w, "No file provided", http.StatusBadRequest)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", header.Filename)
		corsErrorJSON(w, "Error reading file", http.StatusInternalServerError)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/pdf"
	}

	session, err := s.service.UploadReceipt(id, header.Filename, data, contentType)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			corsError(w, "Session not found", http.StatusNotFound)
			return
		}
		slog.Error("Error processing receipt", "filename", header.Filename, "error", err)
		if errors.Is(err, ErrNoItems) {
			corsErrorJSON(w, "No items found. Please check receipt format.", http.StatusUnprocessableEntity)
			return
		}
		corsErrorJSON(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeSessionView(w, session, http.StatusCreated)
}

// handleAddMember adds a member to a session
func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		corsError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session, err := s.service.AddMember(id, req.Name)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			corsError(w, "Session not found", http.StatusNotFound)
			return
		}
		corsErrorJSON(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeSessionView(w, session, http.StatusOK)
}

// handleAddExtraItem appends a manually entered item to a session
func (s *Server) handleAddExtraItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req struct {
		Name     string  `json:"name"`
		Quantity int     `json:"quantity"`
		Total    float64 `json:"total"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		corsError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session, err := s.service.AddExtraItem(id, req.Name, req.Quantity, req.Total)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			corsError(w, "Session not found", http.StatusNotFound)
			return
		}
		corsErrorJSON(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeSessionView(w, session, http.StatusOK)
}

// handleUpdateAssignment moves a unit card between members
func (s *Server) handleUpdateAssignment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req struct {
		Card   string `json:"card"`
		Person string `json:"person"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		corsError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session, err := s.service.UpdateAssignment(id, req.Card, req.Person)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			corsError(w, "Session not found", http.StatusNotFound)
			return
		}
		corsErrorJSON(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeSessionView(w, session, http.StatusOK)
}

// handleGetSummary renders the summary as a downloadable text file
func (s *Server) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	summary, err := s.service.ComputeSummary(id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			corsError(w, "Session not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrNoMembers) {
			corsErrorJSON(w, "Please add at least one member first", http.StatusBadRequest)
			return
		}
		slog.Error("Error computing summary", "session", id, "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="receipt_summary.txt"`)
	w.Write([]byte(summary))
}

// handleStaticCSS serves the CSS file
func (s *Server) handleStaticCSS(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "text/css")
	w.Write(appCSS)
}

// handleStaticJS serves the JavaScript file
func (s *Server) handleStaticJS(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Write(appJS)
}
