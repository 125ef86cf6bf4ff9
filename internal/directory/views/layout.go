// Package views renders the interaction and admin console pages.
package views

import (
	"net/http"
	"time"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const stylesheet = `
body{font-family:system-ui,-apple-system,"Segoe UI",sans-serif;margin:0;background:#f6f7f9;color:#1f2328}
a{color:#0969da;text-decoration:none}
.shell{display:flex;min-height:100vh}
.sidebar{width:200px;background:#24292f;padding:1rem}
.sidebar a{display:block;color:#d0d7de;padding:.4rem .6rem;border-radius:4px}
.sidebar a.active,.sidebar a:hover{background:#32383f;color:#fff}
.main{flex:1;padding:1.5rem 2rem}
.topbar{display:flex;justify-content:space-between;align-items:center}
.card{background:#fff;border:1px solid #d0d7de;border-radius:6px;padding:1rem;margin-bottom:1rem}
.cards{display:grid;grid-template-columns:repeat(auto-fill,minmax(160px,1fr));gap:1rem}
.stat{font-size:2rem;font-weight:600}
table{width:100%;border-collapse:collapse;background:#fff}
th,td{text-align:left;padding:.5rem;border-bottom:1px solid #d0d7de;vertical-align:top}
.narrow{max-width:420px;margin:4rem auto}
label{display:block;margin:.6rem 0 .2rem}
input,select,textarea{width:100%;padding:.45rem;box-sizing:border-box}
.btn{display:inline-block;padding:.45rem .9rem;border:1px solid #d0d7de;border-radius:6px;background:#fff;cursor:pointer}
.btn-primary{background:#1f883d;border-color:#1f883d;color:#fff}
.btn-danger{background:#cf222e;border-color:#cf222e;color:#fff}
.inline{display:inline}
.error{background:#ffebe9;border:1px solid #ff8182;padding:.6rem;border-radius:6px}
.muted{color:#656d76;font-size:.9rem}
.tag{display:inline-block;background:#ddf4ff;border-radius:10px;padding:0 .5rem;margin:0 .2rem .2rem 0;font-size:.85rem}
pre{white-space:pre-wrap;word-break:break-all;margin:0}
`

type navItem struct {
	Label string
	Href  string
	Key   string
}

var navItems = []navItem{
	{Label: "Dashboard", Href: "/directory", Key: "dashboard"},
	{Label: "Users", Href: "/directory/users", Key: "users"},
	{Label: "Roles", Href: "/directory/roles", Key: "roles"},
	{Label: "Groups", Href: "/directory/groups", Key: "groups"},
	{Label: "Domains", Href: "/directory/domains", Key: "domains"},
	{Label: "Audit log", Href: "/directory/audit", Key: "audit"},
}

// Render writes node as an HTML document with the given status.
func Render(w http.ResponseWriter, status int, node Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}

func document(title string, body ...Node) Node {
	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				TitleEl(Text(title+" | Directory")),
				StyleEl(Raw(stylesheet)),
			),
			Body(Group(body)),
		),
	)
}

// standalone is the centred single-card layout used outside the console.
func standalone(title string, body ...Node) Node {
	return document(title, Main(Class("narrow"), Div(Class("card"), Group(body))))
}

func adminPage(title, active, username string, body ...Node) Node {
	nav := make([]Node, 0, len(navItems))
	for _, item := range navItems {
		cls := ""
		if item.Key == active {
			cls = "active"
		}
		nav = append(nav, A(Href(item.Href), Class(cls), Text(item.Label)))
	}

	return document(title,
		Div(Class("shell"),
			Nav(Class("sidebar"),
				P(Strong(Style("color:#fff"), Text("Directory"))),
				Group(nav),
			),
			Main(Class("main"),
				Div(Class("topbar"),
					H1(Text(title)),
					Div(
						Span(Class("muted"), Text("Signed in as "+username+" ")),
						A(Class("btn"), Href("/directory/logout"), Text("Sign out")),
					),
				),
				Group(body),
			),
		),
	)
}

func errorBox(msg string) Node {
	return If(msg != "", Div(Class("error"), Attr("role", "alert"), Text(msg)))
}

func tags(values []string) Node {
	if len(values) == 0 {
		return Span(Class("muted"), Text("none"))
	}
	return Map(values, func(v string) Node {
		return Span(Class("tag"), Text(v))
	})
}

func timestamp(t time.Time) Node {
	if t.IsZero() {
		return Text("")
	}
	return Span(Title(t.UTC().Format(time.RFC3339)), Text(t.UTC().Format("2006-01-02 15:04")))
}

// postButton renders a single-button form, used for deletes and removals.
func postButton(action, label, class string, hidden ...Node) Node {
	return Form(Class("inline"), Method("post"), Action(action),
		Group(hidden),
		Button(Type("submit"), Class("btn "+class), Text(label)),
	)
}

func hiddenInput(name, value string) Node {
	return Input(Type("hidden"), Name(name), Value(value))
}
