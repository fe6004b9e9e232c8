package server

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/HendryAvila/anota/internal/twilio"
)

// handleWebhook is the Twilio inbound message callback. The sender
// address is the owner identity; the reply always goes back as TwiML
// with a 200 status, whatever happened inside the handler; silence
// is never an acceptable outcome on this channel.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		twilio.Reply(w, "Recibí tu mensaje, pero no pude leerlo. Inténtalo de nuevo.")
		return
	}

	body := r.FormValue("Body")
	owner := r.FormValue("From")

	reply := s.router.Handle(r.Context(), owner, body)
	twilio.Reply(w, reply)
}

// handleWebhookGet answers browser checks of the webhook URL.
func (s *Server) handleWebhookGet(w http.ResponseWriter, _ *http.Request) {
	twilio.Reply(w, "Webhook OK ✅")
}

// handleHealth is the hosting platform's liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleDispatch runs one reminder sweep on behalf of the external
// scheduler and reports how many reminders went out.
func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	processed, err := s.dispatcher.Run(r.Context(), time.Now().UTC())
	if err != nil {
		s.log.Error("dispatch trigger failed", zap.Error(err))
		http.Error(w, "dispatch failed", http.StatusInternalServerError)
		return
	}
	fmt.Fprintf(w, "processed: %d\n", processed)
}
