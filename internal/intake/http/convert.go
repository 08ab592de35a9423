package http

import (
	"github.com/aussiebroadwan/intake/internal/intake/domain"
	"github.com/aussiebroadwan/intake/internal/intake/service"
	"github.com/aussiebroadwan/intake/pkg/intakesdk"
)

func toClient(c domain.Client) intakesdk.Client {
	return intakesdk.Client{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		BusinessName: c.BusinessName,
		CreatedAt:    c.CreatedAt,
	}
}

func toClients(list []domain.Client) []intakesdk.Client {
	out := make([]intakesdk.Client, len(list))
	for i, c := range list {
		out[i] = toClient(c)
	}
	return out
}

func toDraft(d intakesdk.ClientDraft) domain.Draft {
	return domain.Draft{Name: d.Name, Email: d.Email, BusinessName: d.BusinessName}
}

func toFormState(f service.FormState) intakesdk.FormState {
	errs := make(map[string]string, len(f.Errors))
	for field, msg := range f.Errors {
		errs[string(field)] = msg
	}

	return intakesdk.FormState{
		Draft: intakesdk.ClientDraft{
			Name:         f.Draft.Name,
			Email:        f.Draft.Email,
			BusinessName: f.Draft.BusinessName,
		},
		Errors:        errs,
		State:         f.State.String(),
		Submitting:    f.Submitting,
		BannerVisible: f.BannerVisible,
		Clients:       toClients(f.Clients),
		Notice:        f.Notice,
		Notification:  f.Notify.String(),
	}
}
