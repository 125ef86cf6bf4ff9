package views

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/service"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
)

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, n.Render(&b))
	return b.String()
}

func TestLoginPage_EscapesInput(t *testing.T) {
	out := render(t, LoginPage(LoginData{
		UID:   "abc",
		Email: `"><script>alert(1)</script>`,
		Error: "Invalid email or password.",
	}))

	require.True(t, strings.HasPrefix(out, "<!doctype html>"))
	require.Contains(t, out, `action="/interaction/abc/login"`)
	require.Contains(t, out, "Invalid email or password.")
	require.NotContains(t, out, "<script>alert(1)</script>")
}

func TestConsentPage(t *testing.T) {
	out := render(t, ConsentPage(ConsentData{
		UID:       "abc",
		ClientID:  "demo-app",
		AccountID: "alice@example.com",
		Scopes:    []string{"openid", "email"},
		Resources: map[string][]string{"https://api.example.com": {"read"}},
	}))

	require.Contains(t, out, "Authorize demo-app")
	require.Contains(t, out, "<code>email</code>")
	require.Contains(t, out, "https://api.example.com")
	require.Contains(t, out, `action="/interaction/abc/confirm"`)
	require.NotContains(t, out, "Claims")
}

func TestErrorPage(t *testing.T) {
	out := render(t, ErrorPage(ErrorData{Error: "access_denied", Description: "End-User aborted interaction", State: "xyz"}))
	require.Contains(t, out, "access_denied")
	require.Contains(t, out, "End-User aborted interaction")
	require.Contains(t, out, "xyz")

	out = render(t, ErrorPage(ErrorData{}))
	require.Contains(t, out, "Something went wrong")
}

func TestUserDetailPage_ResolvesMembershipIDs(t *testing.T) {
	out := render(t, UserDetailPage("admin@localhost", service.UserDetail{
		User:   domain.User{ID: "u1", Username: "alice", DomainID: "d1"},
		Roles:  []string{"admin"},
		Groups: []string{"staff"},
		AllRoles: []domain.RoleSummary{
			{Role: domain.Role{ID: "r1", Name: "admin"}},
		},
		AllGroups: []domain.GroupSummary{
			{Group: domain.Group{ID: "g2", Name: "staff", DomainID: "d2"}},
			{Group: domain.Group{ID: "g1", Name: "staff", DomainID: "d1"}},
		},
	}))

	require.Contains(t, out, `action="/directory/users/u1/roles/remove"`)
	require.Contains(t, out, `name="role_id" value="r1"`)
	require.Contains(t, out, `name="group_id" value="g1"`)
}

func TestGroupFormPage_SelectsDomain(t *testing.T) {
	out := render(t, GroupFormPage("admin@localhost",
		domain.Group{ID: "g1", Name: "staff", DomainID: "d2"},
		[]domain.Domain{{ID: "d1", Name: "localhost"}, {ID: "d2", Name: "corp"}},
		"",
	))
	require.Contains(t, out, `action="/directory/groups/g1"`)
	require.Contains(t, out, `<option value="d2" selected>corp</option>`)
}

func TestRender(t *testing.T) {
	rec := httptest.NewRecorder()
	Render(rec, http.StatusBadRequest, DashboardPage("admin@localhost", domain.Counts{Users: 3}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), "Signed in as admin@localhost")
}
