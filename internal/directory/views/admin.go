package views

import (
	"strconv"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/service"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// AdminLoginPage is the console sign-in form.
func AdminLoginPage(email, errMsg string) Node {
	return standalone("Admin sign in",
		H1(Text("Directory admin")),
		errorBox(errMsg),
		Form(Method("post"), Action("/directory/login"),
			Label(For("email"), Text("Email")),
			Input(ID("email"), Type("email"), Name("email"), Value(email), Required(), AutoFocus()),
			Label(For("password"), Text("Password")),
			Input(ID("password"), Type("password"), Name("password"), Required()),
			P(Button(Type("submit"), Class("btn btn-primary"), Text("Sign in"))),
		),
	)
}

func DashboardPage(username string, c domain.Counts) Node {
	stat := func(label string, n int, href string) Node {
		return A(Href(href), Class("card"),
			Div(Class("stat"), Text(strconv.Itoa(n))),
			Div(Class("muted"), Text(label)),
		)
	}
	return adminPage("Dashboard", "dashboard", username,
		Div(Class("cards"),
			stat("Users", c.Users, "/directory/users"),
			stat("Roles", c.Roles, "/directory/roles"),
			stat("Groups", c.Groups, "/directory/groups"),
			stat("Domains", c.Domains, "/directory/domains"),
		),
	)
}

func UsersPage(username string, users []domain.UserSummary) Node {
	return adminPage("Users", "users", username,
		P(A(Class("btn btn-primary"), Href("/directory/users/new"), Text("New user"))),
		Table(
			THead(Tr(Th(Text("Username")), Th(Text("Email")), Th(Text("Domain")), Th(Text("Roles")), Th(Text("Groups")), Th(Text("Active")))),
			TBody(Map(users, func(u domain.UserSummary) Node {
				return Tr(
					Td(A(Href("/directory/users/"+u.ID), Text(u.Username))),
					Td(Text(u.PrimaryEmail)),
					Td(Text(u.DomainName)),
					Td(tags(u.Roles)),
					Td(tags(u.Groups)),
					Td(Text(yesNo(u.IsActive))),
				)
			})),
		),
	)
}

func UserDetailPage(username string, d service.UserDetail) Node {
	u := d.User
	base := "/directory/users/" + u.ID

	return adminPage(u.Username, "users", username,
		Div(Class("card"),
			Dl(
				Dt(Text("Display name")), Dd(Text(u.DisplayName)),
				Dt(Text("Name")), Dd(Text(u.FirstName+" "+u.LastName)),
				Dt(Text("Domain")), Dd(Text(d.Domain.Name)),
				Dt(Text("Active")), Dd(Text(yesNo(u.IsActive))),
				Dt(Text("Created")), Dd(timestamp(u.CreatedAt)),
			),
			A(Class("btn"), Href(base+"/edit"), Text("Edit")),
			Text(" "),
			postButton(base+"/delete", "Delete", "btn-danger"),
		),
		Div(Class("card"),
			H2(Text("Emails")),
			Table(
				THead(Tr(Th(Text("Address")), Th(Text("Primary")), Th(Text("Verified")))),
				TBody(Map(d.Emails, func(e domain.Email) Node {
					return Tr(Td(Text(e.Email)), Td(Text(yesNo(e.IsPrimary))), Td(Text(yesNo(e.IsVerified))))
				})),
			),
		),
		Div(Class("card"),
			H2(Text("Properties")),
			Table(
				THead(Tr(Th(Text("Key")), Th(Text("Value")))),
				TBody(Map(d.Properties, func(p domain.Property) Node {
					return Tr(Td(Code(Text(p.Key))), Td(Pre(Text(p.Value))))
				})),
			),
		),
		Div(Class("card"),
			H2(Text("Roles")),
			P(Map(d.Roles, func(name string) Node {
				id := roleID(d.AllRoles, name)
				return Span(Class("tag"), Text(name+" "),
					postButton(base+"/roles/remove", "×", "", hiddenInput("role_id", id)))
			})),
			Form(Method("post"), Action(base+"/roles/add"),
				Select(Name("role_id"), Map(d.AllRoles, func(r domain.RoleSummary) Node {
					return Option(Value(r.ID), Text(r.Name))
				})),
				P(Button(Type("submit"), Class("btn"), Text("Add role"))),
			),
		),
		Div(Class("card"),
			H2(Text("Groups")),
			P(Map(d.Groups, func(name string) Node {
				id := groupID(d.AllGroups, name, u.DomainID)
				return Span(Class("tag"), Text(name+" "),
					postButton(base+"/groups/remove", "×", "", hiddenInput("group_id", id)))
			})),
			Form(Method("post"), Action(base+"/groups/add"),
				Select(Name("group_id"), Map(d.AllGroups, func(g domain.GroupSummary) Node {
					return Option(Value(g.ID), Text(g.Name+" ("+g.DomainName+")"))
				})),
				P(Button(Type("submit"), Class("btn"), Text("Add to group"))),
			),
		),
	)
}

// DomainsPage lists the domains with an inline create form. The default
// domain has no delete button.
func DomainsPage(username string, domains []domain.Domain, errMsg string) Node {
	return adminPage("Domains", "domains", username,
		errorBox(errMsg),
		Table(
			THead(Tr(Th(Text("Name")), Th(Text("Description")), Th(Text("Default")), Th(Text("Created")), Th())),
			TBody(Map(domains, func(d domain.Domain) Node {
				return Tr(
					Td(Text(d.Name)),
					Td(Text(d.Description)),
					Td(Text(yesNo(d.IsDefault))),
					Td(timestamp(d.CreatedAt)),
					Td(If(!d.IsDefault, postButton("/directory/domains/"+d.ID+"/delete", "Delete", "btn-danger"))),
				)
			})),
		),
		Div(Class("card"),
			H2(Text("New domain")),
			Form(Method("post"), Action("/directory/domains"),
				Label(For("name"), Text("Name")),
				Input(ID("name"), Name("name"), Required()),
				Label(For("description"), Text("Description")),
				Input(ID("description"), Name("description")),
				P(Button(Type("submit"), Class("btn btn-primary"), Text("Create domain"))),
			),
		),
	)
}

func AuditPage(username string, logs []domain.AuditLog) Node {
	return adminPage("Audit log", "audit", username,
		Table(
			THead(Tr(Th(Text("When")), Th(Text("Who")), Th(Text("Action")), Th(Text("Entity")), Th(Text("Changes")), Th(Text("From")))),
			TBody(Map(logs, func(l domain.AuditLog) Node {
				return Tr(
					Td(timestamp(l.CreatedAt)),
					Td(Text(l.PerformedBy)),
					Td(Text(l.Action)),
					Td(Text(l.EntityType+" "), Code(Text(l.EntityID))),
					Td(Pre(Text(l.Changes))),
					Td(Span(Title(l.UserAgent), Text(l.IPAddress))),
				)
			})),
		),
	)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func roleID(roles []domain.RoleSummary, name string) string {
	for _, r := range roles {
		if r.Name == name {
			return r.ID
		}
	}
	return ""
}

// groupID resolves a membership name, preferring the user's own domain
// since group names are only unique per domain.
func groupID(groups []domain.GroupSummary, name, domainID string) string {
	fallback := ""
	for _, g := range groups {
		if g.Name != name {
			continue
		}
		if g.DomainID == domainID {
			return g.ID
		}
		if fallback == "" {
			fallback = g.ID
		}
	}
	return fallback
}
