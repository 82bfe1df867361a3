// File: services/payload.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"gig-web/config"
	"gig-web/models"
)

// PayloadKeys names the multipart parts sent to the API.
type PayloadKeys struct {
	Title       string
	Description string
	ShortTitle  string
	ShortDesc   string
	Category    string
	Cover       string
	Images      string
}

// CreateKeys are the part names for creating a gig.
var CreateKeys = PayloadKeys{
	Title:       "Title",
	Description: "Desc",
	ShortTitle:  "ShortTitle",
	ShortDesc:   "ShortDesc",
	Category:    "CategoryId",
	Cover:       "CoverImage",
	Images:      "Images",
}

// LegacyUpdateKeys are the lowercase part names the edit form has always sent.
// They differ from CreateKeys; which casing the API expects for updates is
// unconfirmed, so the style stays selectable.
var LegacyUpdateKeys = PayloadKeys{
	Title:       "title",
	Description: "description",
	ShortTitle:  "shortTitle",
	ShortDesc:   "shortDesc",
	Category:    "category",
	Cover:       "coverImage",
	Images:      "images",
}

// UpdateKeys returns the update part names for a GIG_UPDATE_KEY_STYLE value.
func UpdateKeys(style string) PayloadKeys {
	if style == config.KeyStyleCreate {
		return CreateKeys
	}
	return LegacyUpdateKeys
}

// Payload is a fully built multipart body.
type Payload struct {
	ContentType string
	Keys        []string // part names in write order
	body        []byte
}

// Reader returns a fresh reader over the body.
func (p *Payload) Reader() io.Reader {
	return bytes.NewReader(p.body)
}

// Len is the body size in bytes.
func (p *Payload) Len() int {
	return len(p.body)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// BuildPayload serializes a draft and its files. The cover part is only
// written when a cover is selected; one images part is written per gallery file.
func BuildPayload(keys PayloadKeys, draft models.GigDraft, files models.FileSlots) (*Payload, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	p := &Payload{ContentType: w.FormDataContentType()}

	fields := []struct{ key, value string }{
		{keys.Title, draft.Title},
		{keys.Description, draft.Description},
		{keys.ShortTitle, draft.ShortTitle},
		{keys.ShortDesc, draft.ShortDesc},
		{keys.Category, draft.Category},
	}
	for _, f := range fields {
		if err := w.WriteField(f.key, f.value); err != nil {
			return nil, fmt.Errorf("write field %s: %w", f.key, err)
		}
		p.Keys = append(p.Keys, f.key)
	}

	if files.Cover != nil {
		if err := writeFile(w, keys.Cover, files.Cover); err != nil {
			return nil, err
		}
		p.Keys = append(p.Keys, keys.Cover)
	}
	for _, fh := range files.Images {
		if fh == nil {
			continue
		}
		if err := writeFile(w, keys.Images, fh); err != nil {
			return nil, err
		}
		p.Keys = append(p.Keys, keys.Images)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}
	p.body = buf.Bytes()
	return p, nil
}

func writeFile(w *multipart.Writer, key string, fh *multipart.FileHeader) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(key), quoteEscaper.Replace(fh.Filename)))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create part %s: %w", key, err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("copy upload %s: %w", fh.Filename, err)
	}
	return nil
}
