package profile

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/nfrund/issuedesk/internal/domain"
	"github.com/nfrund/issuedesk/internal/modules/profile/view"
)

// Paths are the URLs the rendered page links to.
type Paths struct {
	Base      string // mount point of the profile routes
	Inventory string
	Landing   string
	Login     string
}

func (p Paths) logoutURL() string {
	return p.Base + "/logout"
}

func (p Paths) returnURL(viewID string, issueID domain.IssueID) string {
	return fmt.Sprintf("%s/%s/issues/%s/return", p.Base, url.PathEscape(viewID), url.PathEscape(issueID.String()))
}

// presenter turns a Snapshot into the view DTO.
type presenter struct {
	paths       Paths
	emailDomain string
	locale      Locale
}

func (p presenter) page(snap Snapshot) view.Data {
	data := view.Data{
		ViewID:       snap.ID,
		Name:         "User",
		Subtitle:     "No Roll Number",
		Department:   notAvailable,
		LastLogin:    notAvailable,
		InventoryURL: p.paths.Inventory,
		LogoutURL:    p.paths.logoutURL(),
	}
	if snap.Identity == nil {
		return data
	}

	details := snap.Identity.Details()
	if details.DisplayName != "" {
		data.Name = details.DisplayName
	}
	if details.Department != "" {
		data.Department = details.Department
	}
	data.LastLogin = p.locale.DateTime(details.LastLogin)

	switch id := snap.Identity.(type) {
	case domain.Guest:
		data.Subtitle = "Guest User"
	case domain.Member:
		data.Subtitle = orDefault(id.RollNumber, "No Roll Number")
		data.ShowMemberDetails = true
		data.Email = id.Email(p.emailDomain)
		data.Program = orDefault(id.Degree, notAvailable)
		data.Panel = p.panel(snap)
	case domain.Admin:
		data.Subtitle = orDefault(id.RollNumber, "No Roll Number")
	}
	return data
}

func (p presenter) panel(snap Snapshot) view.Panel {
	panel := view.Panel{
		ViewID: snap.ID,
		Items:  make([]view.Item, 0, len(snap.Issues)),
	}
	for _, rec := range snap.Issues {
		item := view.Item{
			ID:       rec.ID.String(),
			Name:     rec.ItemName,
			Returned: rec.Returned,
			Quantity: strconv.Itoa(rec.Quantity),
			IssuedOn: p.locale.Date(rec.IssueDate),
		}
		if rec.HasDeadline() {
			item.Deadline = fmt.Sprintf("Return within %d days", rec.DaysToReturn)
		}
		if !rec.Returned && snap.State == StateReady && !rec.ID.IsZero() {
			item.ReturnURL = p.paths.returnURL(snap.ID, rec.ID)
		}
		panel.Items = append(panel.Items, item)
	}
	return panel
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
