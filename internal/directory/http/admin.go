package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/service"
	"github.com/aussiebroadwan/directory/internal/directory/views"
	"github.com/aussiebroadwan/directory/pkg/directorysdk"
	"github.com/aussiebroadwan/directory/pkg/httpx"
	"github.com/aussiebroadwan/directory/pkg/slogx"
)

// AdminHandler serves the console pages and mutations. Mutations answer
// with a JSON ack when the client asks for JSON and a 303 otherwise.
type AdminHandler struct {
	Admin *service.AdminService
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Admin.Counts(r.Context())
	if err != nil {
		adminFailed(w, r, err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.WriteJSON(w, http.StatusOK, counts)
		return
	}
	views.Render(w, http.StatusOK, views.DashboardPage(username(r), counts))
}

func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.Admin.ListUsers(r.Context())
	if err != nil {
		adminFailed(w, r, err)
		return
	}
	views.Render(w, http.StatusOK, views.UsersPage(username(r), users))
}

func (h *AdminHandler) User(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Admin.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		adminFailed(w, r, err)
		return
	}
	views.Render(w, http.StatusOK, views.UserDetailPage(username(r), detail))
}

func (h *AdminHandler) NewUser(w http.ResponseWriter, r *http.Request) {
	h.renderUserForm(w, r, http.StatusOK, views.UserForm{Active: true}, "")
}

func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	form := userForm(r)
	in, err := userInput(r, form)
	if err == nil {
		var created domain.User
		if created, err = h.Admin.CreateUser(r.Context(), actor(r), in); err == nil {
			adminDone(w, r, "/directory/users/"+created.ID, "User created")
			return
		}
	}
	h.userFormFailed(w, r, form, err)
}

func (h *AdminHandler) EditUser(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Admin.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		adminFailed(w, r, err)
		return
	}

	u := detail.User
	form := views.UserForm{
		ID:          u.ID,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		DisplayName: u.DisplayName,
		DomainID:    u.DomainID,
		Active:      u.IsActive,
	}
	emails := make([]string, 0, len(detail.Emails))
	for _, e := range detail.Emails {
		emails = append(emails, e.Email)
	}
	props := make([]string, 0, len(detail.Properties))
	for _, p := range detail.Properties {
		props = append(props, p.Key+"="+p.Value)
	}
	form.Emails = strings.Join(emails, "\n")
	form.Properties = strings.Join(props, "\n")

	h.renderUserForm(w, r, http.StatusOK, form, "")
}

func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	form := userForm(r)
	form.ID = chi.URLParam(r, "id")
	in, err := userInput(r, form)
	if err == nil {
		if _, err = h.Admin.UpdateUser(r.Context(), actor(r), form.ID, in); err == nil {
			adminDone(w, r, "/directory/users/"+form.ID, "User updated")
			return
		}
	}
	h.userFormFailed(w, r, form, err)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.Admin.DeleteUser(r.Context(), actor(r), chi.URLParam(r, "id")); err != nil {
		adminFailed(w, r, err)
		return
	}
	adminDone(w, r, "/directory/users", "User deleted")
}

// UserRoles handles POST /directory/users/{id}/roles/{action}.
func (h *AdminHandler) UserRoles(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	h.assignment(w, r, "/directory/users/"+userID, func(add bool) (string, error) {
		roleID := formValue(r, "role_id")
		if add {
			return "Role assigned", h.Admin.AssignRole(r.Context(), actor(r), userID, roleID)
		}
		return "Role removed", h.Admin.RevokeRole(r.Context(), actor(r), userID, roleID)
	})
}

// UserGroups handles POST /directory/users/{id}/groups/{action}.
func (h *AdminHandler) UserGroups(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	h.assignment(w, r, "/directory/users/"+userID, func(add bool) (string, error) {
		groupID := formValue(r, "group_id")
		if add {
			return "Added to group", h.Admin.AssignGroup(r.Context(), actor(r), userID, groupID)
		}
		return "Removed from group", h.Admin.RevokeGroup(r.Context(), actor(r), userID, groupID)
	})
}

func (h *AdminHandler) Roles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Admin.ListRoles(r.Context())
	if err != nil {
		adminFailed(w, r, err)
		return
	}
	views.Render(w, http.StatusOK, views.RolesPage(username(r), roles))
}

func (h *AdminHandler) NewRole(w http.ResponseWriter, r *http.Request) {
	views.Render(w, http.StatusOK, views.RoleFormPage(username(r), domain.Role{}, ""))
}

func (h *AdminHandler) CreateRole(w http.ResponseWriter, r *http.Request) {
	name, description := formValue(r, "name"), formValue(r, "description")

	role, err := h.Admin.CreateRole(r.Context(), actor(r), name, description)
	if err != nil {
		h.roleFormFailed(w, r, domain.Role{Name: name, Description: description}, err)
		return
	}
	adminDone(w, r, "/directory/roles/"+role.ID, "Role created")
}

func (h *AdminHandler) Role(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Admin.GetRole(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		adminFailed(w, r, err)
		return
	}
	views.Render(w, http.StatusOK, views.RoleDetailPage(username(r), detail))
}

func (h *AdminHandler) EditRole(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Admin.GetRole(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		adminFailed(w, r, err)
		return
	}
	views.Render(w, http.StatusOK, views.RoleFormPage(username(r), detail.Role, ""))
}

func (h *AdminHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	name, description := formValue(r, "name"), formValue(r, "description")

	if _, err := h.Admin.UpdateRole(r.Context(), actor(r), id, name, description); err != nil {
		h.roleFormFailed(w, r, domain.Role{ID: id, Name: name, Description: description}, err)
		return
	}
	adminDone(w, r, "/directory/roles/"+id, "Role updated")
}

func (h *AdminHandler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	if err := h.Admin.DeleteRole(r.Context(), actor(r), chi.URLParam(r, "id")); err != nil {
		adminFailed(w, r, err)
		return
	}
	adminDone(w, r, "/directory/roles", "Role deleted")
}

// RoleUsers handles POST /directory/roles/{id}/users/{action}.
func (h *AdminHandler) RoleUsers(w http.ResponseWriter, r *http.Request) {
	roleID := chi.URLParam(r, "id")
	h.assignment(w, r, "/directory/roles/"+roleID, func(add bool) (string, error) {
		userID := formValue(r, "user_id")
		if add {
			return "Role assigned", h.Admin.AssignRole(r.Context(), actor(r), userID, roleID)
		}
		return "Role removed", h.Admin.RevokeRole(r.Context(), actor(r), userID, roleID)
	})
}

func (h *AdminHandler) Groups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Admin.ListGroups(r.Context())
	if err != nil {
		adminFailed(w, r, err)
		return
	}
	views.Render(w, http.StatusOK, views.GroupsPage(username(r), groups))
}

func (h *AdminHandler) NewGroup(w http.ResponseWriter, r *http.Request) {
	h.renderGroupForm(w, r, http.StatusOK, domain.Group{}, "")
}

func (h *AdminHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	g := domain.Group{
		Name:        formValue(r, "name"),
		DomainID:    formValue(r, "domain_id"),
		Description: formValue(r, "description"),
	}

	created, err := h.Admin.CreateGroup(r.Context(), actor(r), g.Name, g.DomainID, g.Description)
	if err != nil {
		h.groupFormFailed(w, r, g, err)
		return
	}
	adminDone(w, r, "/directory/groups/"+created.ID, "Group created")
}

func (h *AdminHandler) Group(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Admin.GetGroup(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		adminFailed(w, r, err)
		return
	}
	views.Render(w, http.StatusOK, views.GroupDetailPage(username(r), detail))
}

func (h *AdminHandler) EditGroup(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Admin.GetGroup(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		adminFailed(w, r, err)
		return
	}
	h.renderGroupForm(w, r, http.StatusOK, detail.Group, "")
}

func (h *AdminHandler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	g := domain.Group{
		ID:          chi.URLParam(r, "id"),
		Name:        formValue(r, "name"),
		DomainID:    formValue(r, "domain_id"),
		Description: formValue(r, "description"),
	}

	if _, err := h.Admin.UpdateGroup(r.Context(), actor(r), g.ID, g.Name, g.DomainID, g.Description); err != nil {
		h.groupFormFailed(w, r, g, err)
		return
	}
	adminDone(w, r, "/directory/groups/"+g.ID, "Group updated")
}

func (h *AdminHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.Admin.DeleteGroup(r.Context(), actor(r), chi.URLParam(r, "id")); err != nil {
		adminFailed(w, r, err)
		return
	}
	adminDone(w, r, "/directory/groups", "Group deleted")
}

// GroupUsers handles POST /directory/groups/{id}/users/{action}.
func (h *AdminHandler) GroupUsers(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	h.assignment(w, r, "/directory/groups/"+groupID, func(add bool) (string, error) {
		userID := formValue(r, "user_id")
		if add {
			return "Added to group", h.Admin.AssignGroup(r.Context(), actor(r), userID, groupID)
		}
		return "Removed from group", h.Admin.RevokeGroup(r.Context(), actor(r), userID, groupID)
	})
}

func (h *AdminHandler) Domains(w http.ResponseWriter, r *http.Request) {
	domains, err := h.Admin.ListDomains(r.Context())
	if err != nil {
		adminFailed(w, r, err)
		return
	}
	views.Render(w, http.StatusOK, views.DomainsPage(username(r), domains, ""))
}

func (h *AdminHandler) CreateDomain(w http.ResponseWriter, r *http.Request) {
	_, err := h.Admin.CreateDomain(r.Context(), actor(r), formValue(r, "name"), formValue(r, "description"))
	if err != nil {
		status, msg := statusFor(err)
		if status == http.StatusInternalServerError || httpx.WantsJSON(r) {
			adminFailed(w, r, err)
			return
		}
		domains, listErr := h.Admin.ListDomains(r.Context())
		if listErr != nil {
			adminFailed(w, r, listErr)
			return
		}
		views.Render(w, status, views.DomainsPage(username(r), domains, msg))
		return
	}
	adminDone(w, r, "/directory/domains", "Domain created")
}

func (h *AdminHandler) DeleteDomain(w http.ResponseWriter, r *http.Request) {
	if err := h.Admin.DeleteDomain(r.Context(), actor(r), chi.URLParam(r, "id")); err != nil {
		adminFailed(w, r, err)
		return
	}
	adminDone(w, r, "/directory/domains", "Domain deleted")
}

func (h *AdminHandler) Audit(w http.ResponseWriter, r *http.Request) {
	logs, err := h.Admin.Audit.List(r.Context(), service.DefaultAuditLimit)
	if err != nil {
		adminFailed(w, r, err)
		return
	}
	views.Render(w, http.StatusOK, views.AuditPage(username(r), logs))
}

// assignment dispatches on the {action} URL parameter, which the router
// restricts to add or remove.
func (h *AdminHandler) assignment(w http.ResponseWriter, r *http.Request, back string, apply func(add bool) (string, error)) {
	msg, err := apply(chi.URLParam(r, "action") == "add")
	if err != nil {
		adminFailed(w, r, err)
		return
	}
	adminDone(w, r, back, msg)
}

func (h *AdminHandler) roleFormFailed(w http.ResponseWriter, r *http.Request, role domain.Role, err error) {
	status, msg := statusFor(err)
	if status == http.StatusNotFound || status == http.StatusInternalServerError || httpx.WantsJSON(r) {
		adminFailed(w, r, err)
		return
	}
	views.Render(w, status, views.RoleFormPage(username(r), role, msg))
}

func (h *AdminHandler) groupFormFailed(w http.ResponseWriter, r *http.Request, g domain.Group, err error) {
	status, msg := statusFor(err)
	if status == http.StatusNotFound || status == http.StatusInternalServerError || httpx.WantsJSON(r) {
		adminFailed(w, r, err)
		return
	}
	h.renderGroupForm(w, r, status, g, msg)
}

func (h *AdminHandler) userFormFailed(w http.ResponseWriter, r *http.Request, form views.UserForm, err error) {
	status, msg := statusFor(err)
	if status == http.StatusNotFound || status == http.StatusInternalServerError || httpx.WantsJSON(r) {
		adminFailed(w, r, err)
		return
	}
	h.renderUserForm(w, r, status, form, msg)
}

func (h *AdminHandler) renderUserForm(w http.ResponseWriter, r *http.Request, status int, form views.UserForm, msg string) {
	domains, err := h.Admin.ListDomains(r.Context())
	if err != nil {
		adminFailed(w, r, err)
		return
	}
	views.Render(w, status, views.UserFormPage(username(r), form, domains, msg))
}

func (h *AdminHandler) renderGroupForm(w http.ResponseWriter, r *http.Request, status int, g domain.Group, msg string) {
	domains, err := h.Admin.ListDomains(r.Context())
	if err != nil {
		adminFailed(w, r, err)
		return
	}
	views.Render(w, status, views.GroupFormPage(username(r), g, domains, msg))
}

func adminDone(w http.ResponseWriter, r *http.Request, location, message string) {
	if httpx.WantsJSON(r) {
		httpx.WriteJSON(w, http.StatusOK, directorysdk.AckResponse{Success: true, Message: message})
		return
	}
	httpx.SeeOther(w, r, location)
}

func adminFailed(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		slogx.FromContext(r.Context()).Error("admin request failed", slog.Any("error", err))
	}

	if httpx.WantsJSON(r) {
		httpx.WriteJSON(w, status, directorysdk.ErrorResponse{Error: msg})
		return
	}
	views.Render(w, status, views.ErrorPage(views.ErrorData{
		Error:       http.StatusText(status),
		Description: msg,
	}))
}

func username(r *http.Request) string {
	return httpx.SubjectFromContext(r.Context())
}

func actor(r *http.Request) service.Actor {
	return service.Actor{
		Username:  username(r),
		IPAddress: httpx.IPKeyExtractor(r),
		UserAgent: r.UserAgent(),
	}
}

func formValue(r *http.Request, key string) string {
	return r.PostFormValue(key)
}

func userForm(r *http.Request) views.UserForm {
	return views.UserForm{
		Username:    formValue(r, "username"),
		FirstName:   formValue(r, "first_name"),
		LastName:    formValue(r, "last_name"),
		DisplayName: formValue(r, "display_name"),
		DomainID:    formValue(r, "domain_id"),
		Active:      formValue(r, "active") != "",
		Emails:      formValue(r, "emails"),
		Properties:  formValue(r, "properties"),
	}
}

// userInput splits the textarea fields. Emails are one per line (commas
// also separate); properties are key=value lines.
func userInput(r *http.Request, form views.UserForm) (service.UserInput, error) {
	in := service.UserInput{
		Username:    form.Username,
		Password:    formValue(r, "password"),
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		DisplayName: form.DisplayName,
		DomainID:    form.DomainID,
		Active:      form.Active,
		Emails: strings.FieldsFunc(form.Emails, func(c rune) bool {
			return c == '\n' || c == '\r' || c == ','
		}),
		Properties: map[string]string{},
	}

	for _, line := range strings.Split(form.Properties, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return service.UserInput{}, domain.ErrValidation("property %q must be key=value", line)
		}
		in.Properties[key] = value
	}
	return in, nil
}
