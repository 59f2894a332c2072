package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultContactLimit = 50

type contactHandler struct {
	responder   Responder
	logger      zerolog.Logger
	contactRepo contactStore
	notifier    contactNotifier
}

func newContactHandler(contactRepo contactStore, notifier contactNotifier) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		contactRepo: contactRepo,
		notifier:    notifier,
	}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type contactCreatedResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	ContactID uuid.UUID `json:"contactId"`
}

type contactListResponse struct {
	Success    bool              `json:"success"`
	Contacts   []*models.Contact `json:"contacts"`
	Pagination models.Pagination `json:"pagination"`
}

// submitContact stores a contact form submission and notifies the owner.
// Notification failures are logged and never change the response.
func (h contactHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req contactRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		contact := models.NewContact(req.Name, req.Email, req.Subject, req.Message)
		if !contact.Complete() {
			h.responder.WriteError(w, errs.NewBadRequestError("All fields are required"))
			return
		}

		if err := models.Validate(contact); err != nil {
			h.responder.WriteError(w, validationError("Validation failed", err))
			return
		}

		if err := h.contactRepo.Add(r.Context(), contact); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "contact", err))
			return
		}

		if h.notifier != nil {
			result := h.notifier.NotifyContact(r.Context(), *contact)
			h.logger.Info().
				Str("contactId", contact.ID.String()).
				Bool("notificationSent", result.Notification.Err == nil).
				Bool("confirmationSent", result.Confirmation.Err == nil).
				Msg("contact submitted")
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, contactCreatedResponse{
			Success:   true,
			Message:   "Contact form submitted successfully",
			ContactID: contact.ID,
		})
	}
}

// getContacts lists submissions, newest first
func (h contactHandler) getContacts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := queryPage(r, defaultContactLimit)
		filter := models.ContactFilter{Status: r.URL.Query().Get("status")}

		contacts, total, err := h.contactRepo.FindPage(r.Context(), filter, page)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "contacts", err))
			return
		}

		h.responder.WriteJSON(w, contactListResponse{
			Success:    true,
			Contacts:   contacts,
			Pagination: page.Paginate(total),
		})
	}
}
