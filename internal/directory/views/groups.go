package views

import (
	"strconv"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/service"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func GroupsPage(username string, groups []domain.GroupSummary) Node {
	return adminPage("Groups", "groups", username,
		P(A(Class("btn btn-primary"), Href("/directory/groups/new"), Text("New group"))),
		Table(
			THead(Tr(Th(Text("Name")), Th(Text("Domain")), Th(Text("Description")), Th(Text("Users")), Th())),
			TBody(Map(groups, func(g domain.GroupSummary) Node {
				return Tr(
					Td(A(Href("/directory/groups/"+g.ID), Text(g.Name))),
					Td(Text(g.DomainName)),
					Td(Text(g.Description)),
					Td(Text(strconv.Itoa(g.UserCount))),
					Td(
						A(Class("btn"), Href("/directory/groups/"+g.ID+"/edit"), Text("Edit")),
						Text(" "),
						postButton("/directory/groups/"+g.ID+"/delete", "Delete", "btn-danger"),
					),
				)
			})),
		),
	)
}

// GroupFormPage renders the create form when group.ID is empty and the
// edit form otherwise.
func GroupFormPage(username string, group domain.Group, domains []domain.Domain, errMsg string) Node {
	title, action := "New group", "/directory/groups"
	if group.ID != "" {
		title, action = "Edit "+group.Name, "/directory/groups/"+group.ID
	}

	return adminPage(title, "groups", username,
		errorBox(errMsg),
		Div(Class("card"),
			Form(Method("post"), Action(action),
				Label(For("name"), Text("Name")),
				Input(ID("name"), Name("name"), Value(group.Name), Required()),
				Label(For("domain_id"), Text("Domain")),
				Select(ID("domain_id"), Name("domain_id"), Required(),
					Map(domains, func(d domain.Domain) Node {
						return Option(Value(d.ID), If(d.ID == group.DomainID, Selected()), Text(d.Name))
					}),
				),
				Label(For("description"), Text("Description")),
				Textarea(ID("description"), Name("description"), Text(group.Description)),
				P(
					Button(Type("submit"), Class("btn btn-primary"), Text("Save")),
					Text(" "),
					A(Class("btn"), Href("/directory/groups"), Text("Cancel")),
				),
			),
		),
	)
}

func GroupDetailPage(username string, d service.GroupDetail) Node {
	base := "/directory/groups/" + d.Group.ID

	return adminPage("Group "+d.Group.Name, "groups", username,
		Div(Class("card"),
			P(Class("muted"), Text("Domain "+d.Domain.Name)),
			P(Text(d.Group.Description)),
			A(Class("btn"), Href(base+"/edit"), Text("Edit")),
			Text(" "),
			postButton(base+"/delete", "Delete", "btn-danger"),
		),
		memberCard(base+"/users", d.Members, d.Users),
	)
}
