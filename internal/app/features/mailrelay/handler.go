// internal/app/features/mailrelay/handler.go
package mailrelay

import (
	"net/http"

	"github.com/acadiahub/acadiahub/internal/app/system/httpjson"
	"github.com/acadiahub/acadiahub/internal/app/system/mailer"
	"go.uber.org/zap"
)

// Handler exposes the confirmation-email relay over HTTP.
type Handler struct {
	Mailer mailer.Sender
	Log    *zap.Logger
}

// NewHandler constructs a mailrelay Handler.
func NewHandler(mail mailer.Sender, logger *zap.Logger) *Handler {
	return &Handler{Mailer: mail, Log: logger}
}

type sendEmailRequest struct {
	To               string `json:"to"`
	EventTitle       string `json:"eventTitle"`
	EventDate        string `json:"eventDate"`
	EventLocation    string `json:"eventLocation"`
	EventDescription string `json:"eventDescription"`
	UserName         string `json:"userName"`
}

// ServeSendEmail handles POST /api/send-email.
//
// Body: { "to", "eventTitle", "eventDate", "eventLocation",
// "eventDescription", "userName" }; to and eventTitle are required.
// Success returns { "success": true, "messageId": "..." }.
func (h *Handler) ServeSendEmail(w http.ResponseWriter, r *http.Request) {
	var req sendEmailRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.To == "" || req.EventTitle == "" {
		httpjson.Error(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	email := mailer.BuildConfirmationEmail(mailer.ConfirmationEmailData{
		UserName:         req.UserName,
		EventTitle:       req.EventTitle,
		EventDate:        req.EventDate,
		EventLocation:    req.EventLocation,
		EventDescription: req.EventDescription,
	})
	email.To = req.To

	messageID, err := h.Mailer.Send(email)
	if err != nil {
		h.Log.Error("send-email relay failed",
			zap.String("to", req.To),
			zap.Error(err))
		httpjson.Write(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "Failed to send email",
		})
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{
		"success":   true,
		"messageId": messageID,
		"message":   "Email sent successfully",
	})
}
