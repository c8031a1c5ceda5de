package handler

import (
	"io"
	"net/http"

	"github.com/strand-dev/strand/internal/identity"
	"github.com/strand-dev/strand/internal/logger"
	"github.com/strand-dev/strand/internal/utils"
)

const maxWebhookPayload = 1 << 20 // 1 MB

// IdentityWebhook ingests identity-provider events. The signature is checked
// before anything else touches the payload; a request that fails verification
// is rejected with no state change.
func (h *Handler) IdentityWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookPayload))
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if err := h.webhook.Verify(payload, r.Header); err != nil {
		logger.Log.Warn("Webhook signature verification failed", "error", err.Error())
		http.Error(w, "Invalid webhook signature", http.StatusBadRequest)
		return
	}

	evt, err := identity.Parse(payload)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	switch evt.Type {
	case identity.OrganizationCreated:
		org := evt.Organization
		err = h.community.Create(ctx, org.Id, org.Name, org.Slug, org.Image(), "", org.CreatedBy)
	case identity.OrganizationUpdated:
		org := evt.Organization
		err = h.community.UpdateInfo(ctx, org.Id, org.Name, org.Slug, org.Image())
	case identity.OrganizationDeleted:
		err = h.community.Delete(ctx, evt.Organization.Id)
	case identity.MembershipCreated:
		m := evt.Membership
		err = h.community.AddMember(ctx, m.Organization.Id, m.PublicUserData.UserId)
	case identity.MembershipDeleted:
		m := evt.Membership
		err = h.community.RemoveMember(ctx, m.PublicUserData.UserId, m.Organization.Id)
	case identity.InvitationCreated:
		logger.Log.Info("Ignoring invitation event", "type", string(evt.Type))
	default:
		// Unknown event kinds are acknowledged so the provider stops retrying.
		logger.Log.Info("Ignoring unknown webhook event", "type", string(evt.Type))
	}
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
