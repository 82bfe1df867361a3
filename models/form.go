// File: models/form.go
package models

import "net/url"

// FormMode distinguishes the create and edit forms.
type FormMode string

const (
	FormModeCreate FormMode = "create"
	FormModeEdit   FormMode = "edit"
)

// FormState is the submission lifecycle of one form instance:
// Idle -> Submitting -> redirect on success, back to Idle on failure.
type FormState int

const (
	FormIdle FormState = iota
	FormSubmitting
)

func (s FormState) String() string {
	if s == FormSubmitting {
		return "submitting"
	}
	return "idle"
}

// FormField describes one text input or textarea of a gig form.
type FormField struct {
	Name        string
	Label       string
	Placeholder string
	Rows        int // zero renders an <input>
	Value       string
}

// GigForm is the view model shared by the create and edit pages.
type GigForm struct {
	Mode       FormMode
	GigID      string
	Token      string
	Draft      GigDraft
	Categories []Category
	State      FormState
	Error      string
}

// Action is the URL the form posts to.
func (f GigForm) Action() string {
	if f.Mode == FormModeEdit {
		return "/edit/" + url.PathEscape(f.GigID)
	}
	return "/add"
}

// Submitting reports whether the submit control must be disabled.
func (f GigForm) Submitting() bool {
	return f.State == FormSubmitting
}

// SubmitLabel is the submit button text for the current state.
func (f GigForm) SubmitLabel() string {
	if f.Submitting() {
		return f.BusyLabel()
	}
	if f.Mode == FormModeEdit {
		return "Update Gig"
	}
	return "Create"
}

// BusyLabel is shown while the submission is in flight.
func (f GigForm) BusyLabel() string {
	if f.Mode == FormModeEdit {
		return "Updating..."
	}
	return "Uploading..."
}

// Title is the page heading.
func (f GigForm) Title() string {
	if f.Mode == FormModeEdit {
		return "Edit Gig"
	}
	return "Add New Gig"
}

// CoverRequired is true on the create form only.
func (f GigForm) CoverRequired() bool {
	return f.Mode == FormModeCreate
}

// Fields lists the text inputs in display order, carrying the draft values.
func (f GigForm) Fields() []FormField {
	if f.Mode == FormModeEdit {
		return []FormField{
			{Name: "title", Label: "Title", Value: f.Draft.Title},
			{Name: "description", Label: "Description", Rows: 4, Value: f.Draft.Description},
			{Name: "shortTitle", Label: "Service Title", Value: f.Draft.ShortTitle},
			{Name: "shortDesc", Label: "Short Description", Rows: 2, Value: f.Draft.ShortDesc},
		}
	}
	return []FormField{
		{Name: "title", Label: "Title", Placeholder: "Enter title", Value: f.Draft.Title},
		{Name: "description", Label: "Description", Placeholder: "Enter description", Rows: 4, Value: f.Draft.Description},
		{Name: "shortTitle", Label: "Short Title", Placeholder: "Enter short Title", Value: f.Draft.ShortTitle},
		{Name: "shortDesc", Label: "Short Desc", Placeholder: "Enter short Desc", Rows: 2, Value: f.Draft.ShortDesc},
	}
}
