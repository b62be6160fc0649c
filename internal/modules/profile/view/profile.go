package view

import (
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

const (
	// PanelID is the DOM id the issues panel is swapped into.
	PanelID = "issued-items"
	// IndicatorID is shown while a return and its re-fetch are in flight.
	IndicatorID = "issued-items-loading"
)

// Profile renders the whole profile page body.
func Profile(data Data) g.Node {
	return h.Div(
		h.Class("container mx-auto px-4 py-8"),
		header(data),
		h.Div(
			h.Class("grid md:grid-cols-3 gap-8"),
			detailsCard(data),
			g.If(data.ShowMemberDetails, IssuesPanel(data.Panel)),
		),
	)
}

func header(data Data) g.Node {
	return h.Div(
		h.Class("flex justify-between items-center mb-8"),
		h.A(
			h.Class("btn-outline flex items-center"),
			h.Href(data.InventoryURL),
			g.Text("Back to Inventory"),
		),
		h.Button(
			h.Class("btn-danger flex items-center"),
			h.Type("button"),
			hx.Post(data.LogoutURL),
			g.If(data.ViewID != "", g.Attr("hx-vals", `{"view":"`+data.ViewID+`"}`)),
			g.Text("Logout"),
		),
	)
}

func detailsCard(data Data) g.Node {
	return h.Div(
		h.Class("card p-6"),
		h.Div(
			h.Class("flex items-center gap-4 mb-6"),
			h.Div(
				h.H2(h.Class("text-xl font-bold text-gray-800"), g.Text(data.Name)),
				h.P(h.Class("text-gray-500"), g.Text(data.Subtitle)),
			),
		),
		h.Div(
			h.Class("space-y-4"),
			g.If(data.ShowMemberDetails, detailRow("Email", data.Email)),
			detailRow("Department", data.Department),
			g.If(data.ShowMemberDetails, detailRow("Program", data.Program)),
			detailRow("Last Login", data.LastLogin),
		),
	)
}

func detailRow(label, value string) g.Node {
	return h.Div(
		h.Class("flex items-start gap-3"),
		h.Div(
			h.P(h.Class("text-sm font-medium text-gray-600"), g.Text(label)),
			h.P(h.Class("text-gray-800"), g.Text(value)),
		),
	)
}

// IssuesPanel renders the "Issued Items" section. Return buttons swap the
// whole panel with the server's re-fetched list.
func IssuesPanel(panel Panel) g.Node {
	return h.Div(
		h.ID(PanelID),
		h.Class("md:col-span-2"),
		g.Attr("data-view-id", panel.ViewID),
		h.Div(
			h.Class("flex items-center justify-between mb-4"),
			h.H3(h.Class("text-lg font-semibold"), g.Text("Issued Items")),
			h.Span(h.ID(IndicatorID), h.Class("htmx-indicator text-sm text-gray-500"), g.Text("Updating...")),
		),
		g.If(len(panel.Items) == 0,
			h.Div(h.Class("card p-6 text-center text-gray-500"), g.Text("No items currently issued")),
		),
		g.If(len(panel.Items) > 0,
			h.Div(h.Class("space-y-4"), g.Map(panel.Items, issueEntry)),
		),
	)
}

func issueEntry(item Item) g.Node {
	return h.Div(
		h.Class("card p-4 flex flex-col md:flex-row justify-between md:items-center gap-4"),
		g.Attr("data-issue-id", item.ID),
		h.Div(
			h.Class("flex-grow"),
			h.Div(
				h.Class("flex items-start justify-between mb-2"),
				h.H4(h.Class("font-medium text-gray-800"), g.Text(item.Name)),
				statusBadge(item.Returned),
			),
			h.Div(
				h.Class("flex flex-wrap gap-4 text-sm text-gray-500"),
				h.Div(h.Class("flex items-center"), g.Text("Quantity: "+item.Quantity)),
				h.Div(h.Class("flex items-center"), g.Text("Issued: "+item.IssuedOn)),
				g.If(item.Deadline != "", h.Div(h.Class("text-yellow-600"), g.Text(item.Deadline))),
			),
		),
		g.If(item.ReturnURL != "",
			h.Button(
				h.Class("btn-primary"),
				h.Type("button"),
				hx.Post(item.ReturnURL),
				hx.Target("#"+PanelID),
				hx.Swap("outerHTML"),
				g.Attr("hx-disabled-elt", "this"),
				g.Attr("hx-indicator", "#"+IndicatorID),
				g.Text("Return"),
			),
		),
	)
}

func statusBadge(returned bool) g.Node {
	if returned {
		return h.Span(h.Class("px-2 py-1 rounded-full text-xs flex items-center gap-1 bg-green-100 text-green-800"), g.Text("Returned"))
	}
	return h.Span(h.Class("px-2 py-1 rounded-full text-xs flex items-center gap-1 bg-yellow-100 text-yellow-800"), g.Text("Pending"))
}
