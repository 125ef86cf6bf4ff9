package views

import (
	"sort"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type LoginData struct {
	UID      string
	ClientID string
	Email    string
	Error    string
}

// LoginPage is the interaction sign-in form.
func LoginPage(d LoginData) Node {
	return standalone("Sign in",
		H1(Text("Sign in")),
		If(d.ClientID != "", P(Class("muted"), Text("to continue to "+d.ClientID))),
		errorBox(d.Error),
		Form(Method("post"), Action("/interaction/"+d.UID+"/login"), AutoComplete("off"),
			Label(For("email"), Text("Email")),
			Input(ID("email"), Type("email"), Name("email"), Value(d.Email), Required(), AutoFocus()),
			Label(For("password"), Text("Password")),
			Input(ID("password"), Type("password"), Name("password"), Required()),
			P(Button(Type("submit"), Class("btn btn-primary"), Text("Sign in"))),
		),
		P(A(Href("/interaction/"+d.UID+"/abort"), Text("Cancel"))),
	)
}

type ConsentData struct {
	UID       string
	ClientID  string
	AccountID string
	Scopes    []string
	Claims    []string
	Resources map[string][]string
}

// ConsentPage asks the signed-in account to authorize the client.
func ConsentPage(d ConsentData) Node {
	indicators := make([]string, 0, len(d.Resources))
	for k := range d.Resources {
		indicators = append(indicators, k)
	}
	sort.Strings(indicators)

	return standalone("Authorize",
		H1(Text("Authorize "+d.ClientID)),
		P(Class("muted"), Text("Signed in as "+d.AccountID)),
		If(len(d.Scopes) > 0, Group{
			H2(Text("Scopes")),
			Ul(Map(d.Scopes, func(s string) Node { return Li(Code(Text(s))) })),
		}),
		If(len(d.Claims) > 0, Group{
			H2(Text("Claims")),
			Ul(Map(d.Claims, func(c string) Node { return Li(Code(Text(c))) })),
		}),
		Map(indicators, func(ind string) Node {
			return Group{
				H2(Text("Resource "), Code(Text(ind))),
				Ul(Map(d.Resources[ind], func(s string) Node { return Li(Code(Text(s))) })),
			}
		}),
		Form(Method("post"), Action("/interaction/"+d.UID+"/confirm"),
			Button(Type("submit"), Class("btn btn-primary"), Text("Continue")),
		),
		P(A(Href("/interaction/"+d.UID+"/abort"), Text("Cancel"))),
	)
}

type ErrorData struct {
	Error       string
	Description string
	State       string
}

// ErrorPage is the terminal page for failed or expired interactions.
func ErrorPage(d ErrorData) Node {
	title := d.Error
	if title == "" {
		title = "Something went wrong"
	}
	return standalone("Error",
		H1(Text(title)),
		If(d.Description != "", P(Text(d.Description))),
		If(d.State != "", P(Class("muted"), Text("state: "), Code(Text(d.State)))),
	)
}
