// File: models/gig.go
package models

import "mime/multipart"

// ----------------------- gig model -----------------------

// Category is one entry of the externally supplied category list.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Gig is the remote gig record as returned by the API.
type Gig struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ShortTitle  string   `json:"shortTitle"`
	ShortDesc   string   `json:"shortDesc"`
	Category    string   `json:"category"`
	CoverImage  string   `json:"coverImage,omitempty"`
	Images      []string `json:"images,omitempty"`
}

// Draft hydrates an editable draft. Fields absent from the record stay "".
func (g Gig) Draft() GigDraft {
	return GigDraft{
		Title:       g.Title,
		Description: g.Description,
		ShortTitle:  g.ShortTitle,
		ShortDesc:   g.ShortDesc,
		Category:    g.Category,
	}
}

// GigDraft is the not-yet-submitted text state shared by the create and edit forms.
// The form tags match the input names rendered by the templates.
type GigDraft struct {
	Title       string `form:"title" binding:"required,notblank"`
	Description string `form:"description" binding:"required,notblank"`
	ShortTitle  string `form:"shortTitle" binding:"required,notblank"`
	ShortDesc   string `form:"shortDesc" binding:"required,notblank"`
	Category    string `form:"category" binding:"required,notblank"`
}

// FileSlots holds the selected uploads. Both slots are replaced wholesale on
// every submission; nothing is appended.
type FileSlots struct {
	Cover  *multipart.FileHeader
	Images []*multipart.FileHeader
}

// Empty reports whether no file was selected at all.
func (f FileSlots) Empty() bool {
	return f.Cover == nil && len(f.Images) == 0
}
