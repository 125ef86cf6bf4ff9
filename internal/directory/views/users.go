package views

import (
	"github.com/aussiebroadwan/directory/internal/directory/domain"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// UserForm is the text the user form round-trips. Emails holds one address
// per line, the first being primary; Properties holds key=value lines.
type UserForm struct {
	ID          string
	Username    string
	FirstName   string
	LastName    string
	DisplayName string
	DomainID    string
	Active      bool
	Emails      string
	Properties  string
}

// UserFormPage renders the create form when form.ID is empty and the edit
// form otherwise. The password field is only required on create.
func UserFormPage(username string, form UserForm, domains []domain.Domain, errMsg string) Node {
	title, action, cancel := "New user", "/directory/users", "/directory/users"
	if form.ID != "" {
		title, action, cancel = "Edit "+form.Username, "/directory/users/"+form.ID, "/directory/users/"+form.ID
	}

	return adminPage(title, "users", username,
		errorBox(errMsg),
		Div(Class("card"),
			Form(Method("post"), Action(action),
				Label(For("username"), Text("Username")),
				Input(ID("username"), Name("username"), Value(form.Username), Required()),
				Label(For("password"), Text("Password")),
				Input(ID("password"), Type("password"), Name("password"), AutoComplete("new-password"), If(form.ID == "", Required())),
				If(form.ID != "", P(Class("muted"), Text("Leave blank to keep the current password."))),
				Label(For("first_name"), Text("First name")),
				Input(ID("first_name"), Name("first_name"), Value(form.FirstName)),
				Label(For("last_name"), Text("Last name")),
				Input(ID("last_name"), Name("last_name"), Value(form.LastName)),
				Label(For("display_name"), Text("Display name")),
				Input(ID("display_name"), Name("display_name"), Value(form.DisplayName)),
				Label(For("domain_id"), Text("Domain")),
				Select(ID("domain_id"), Name("domain_id"), Required(),
					Map(domains, func(d domain.Domain) Node {
						return Option(Value(d.ID), If(d.ID == form.DomainID, Selected()), Text(d.Name))
					}),
				),
				Label(For("emails"), Text("Emails (one per line, primary first)")),
				Textarea(ID("emails"), Name("emails"), Required(), Text(form.Emails)),
				Label(For("properties"), Text("Properties (key=value per line)")),
				Textarea(ID("properties"), Name("properties"), Text(form.Properties)),
				Label(
					Input(Type("checkbox"), Name("active"), Value("on"), If(form.Active, Checked())),
					Text(" Active"),
				),
				P(
					Button(Type("submit"), Class("btn btn-primary"), Text("Save")),
					Text(" "),
					A(Class("btn"), Href(cancel), Text("Cancel")),
				),
			),
		),
	)
}
