package views

import (
	"strconv"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/service"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func RolesPage(username string, roles []domain.RoleSummary) Node {
	return adminPage("Roles", "roles", username,
		P(A(Class("btn btn-primary"), Href("/directory/roles/new"), Text("New role"))),
		Table(
			THead(Tr(Th(Text("Name")), Th(Text("Description")), Th(Text("Users")), Th())),
			TBody(Map(roles, func(r domain.RoleSummary) Node {
				return Tr(
					Td(A(Href("/directory/roles/"+r.ID), Text(r.Name))),
					Td(Text(r.Description)),
					Td(Text(strconv.Itoa(r.UserCount))),
					Td(
						A(Class("btn"), Href("/directory/roles/"+r.ID+"/edit"), Text("Edit")),
						Text(" "),
						postButton("/directory/roles/"+r.ID+"/delete", "Delete", "btn-danger"),
					),
				)
			})),
		),
	)
}

// RoleFormPage renders the create form when role.ID is empty and the edit
// form otherwise.
func RoleFormPage(username string, role domain.Role, errMsg string) Node {
	title, action := "New role", "/directory/roles"
	if role.ID != "" {
		title, action = "Edit "+role.Name, "/directory/roles/"+role.ID
	}

	return adminPage(title, "roles", username,
		errorBox(errMsg),
		Div(Class("card"),
			Form(Method("post"), Action(action),
				Label(For("name"), Text("Name")),
				Input(ID("name"), Name("name"), Value(role.Name), Required()),
				Label(For("description"), Text("Description")),
				Textarea(ID("description"), Name("description"), Text(role.Description)),
				P(
					Button(Type("submit"), Class("btn btn-primary"), Text("Save")),
					Text(" "),
					A(Class("btn"), Href("/directory/roles"), Text("Cancel")),
				),
			),
		),
	)
}

func RoleDetailPage(username string, d service.RoleDetail) Node {
	base := "/directory/roles/" + d.Role.ID

	return adminPage("Role "+d.Role.Name, "roles", username,
		Div(Class("card"),
			P(Text(d.Role.Description)),
			A(Class("btn"), Href(base+"/edit"), Text("Edit")),
			Text(" "),
			postButton(base+"/delete", "Delete", "btn-danger"),
		),
		memberCard(base+"/users", d.Members, d.Users),
	)
}

// memberCard lists members with remove buttons and an add form posting
// user_id to base/add and base/remove.
func memberCard(base string, members []domain.Member, users []domain.UserSummary) Node {
	return Div(Class("card"),
		H2(Text("Members")),
		Table(
			THead(Tr(Th(Text("Username")), Th(Text("Email")), Th())),
			TBody(Map(members, func(m domain.Member) Node {
				return Tr(
					Td(A(Href("/directory/users/"+m.UserID), Text(m.Username))),
					Td(Text(m.Email)),
					Td(postButton(base+"/remove", "Remove", "", hiddenInput("user_id", m.UserID))),
				)
			})),
		),
		Form(Method("post"), Action(base+"/add"),
			Label(For("user_id"), Text("Add user")),
			Select(ID("user_id"), Name("user_id"), Map(users, func(u domain.UserSummary) Node {
				return Option(Value(u.ID), Text(u.Username))
			})),
			P(Button(Type("submit"), Class("btn"), Text("Add"))),
		),
	)
}
