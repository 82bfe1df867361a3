// Package controllers file: controllers/gig_controller.go
package controllers

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"gig-web/logger"
	"gig-web/middleware"
	"gig-web/models"
	"gig-web/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const (
	formTokenField  = "formToken"
	coverField      = "coverImage"
	imagesField     = "uploadImages"
	multipartMemory = 8 << 20
	qrCodeSize      = 256
)

// GigController serves the create, edit and listing pages for gigs.
type GigController struct {
	API            services.GigAPI
	Tracker        *services.SubmissionTracker
	Metrics        services.Metrics
	UpdateKeys     services.PayloadKeys
	ApplicationURL string
	MaxUploadBytes int64

	newToken  func() string
	qrEncoder services.QRCodeEncoder
}

// NewGigController creates an instance of GigController with the legacy
// update keys and a 32 MB upload limit.
func NewGigController(api services.GigAPI, tracker *services.SubmissionTracker, metrics services.Metrics) *GigController {
	logger.Debug.Println("NewGigController: Initializing GigController")
	if metrics == nil {
		metrics = services.NoopMetrics{}
	}
	return &GigController{
		API:            api,
		Tracker:        tracker,
		Metrics:        metrics,
		UpdateKeys:     services.LegacyUpdateKeys,
		ApplicationURL: "http://localhost:8080",
		MaxUploadBytes: 32 << 20,
		newToken:       uuid.NewString,
		qrEncoder:      services.QRCodeEncoder(qrcode.Encode),
	}
}

// apiContext carries the visitor's bearer token to the gig API.
func apiContext(c *gin.Context) context.Context {
	return services.WithToken(c.Request.Context(), middleware.ReadSession(c).Token)
}

func (gc *GigController) renderForm(c *gin.Context, status int, form models.GigForm) {
	page := "add.html"
	if form.Mode == models.FormModeEdit {
		page = "edit.html"
	}
	render(c, status, page, form.Title(), gin.H{"Form": form, "Error": form.Error})
}

// ------- create -------

// ShowAdd renders an empty create form with a fresh form token.
func (gc *GigController) ShowAdd(c *gin.Context) {
	form := models.GigForm{Mode: models.FormModeCreate, Token: gc.newToken()}

	categories, err := gc.API.GetCategories(apiContext(c))
	if err != nil {
		logger.Error.Printf("ShowAdd: failed to fetch categories: %v", err)
		form.Error = services.UserMessage(err)
	}
	form.Categories = categories

	gc.renderForm(c, http.StatusOK, form)
}

// CreateGig submits the create form to the gig API.
func (gc *GigController) CreateGig(c *gin.Context) {
	form := models.GigForm{Mode: models.FormModeCreate}
	gc.submit(c, "CreateGig", form, services.CreateKeys, func(ctx context.Context, p *services.Payload) error {
		return gc.API.CreateGig(ctx, p)
	})
}

// ------- edit -------

// ShowEdit loads the gig and the category list concurrently and renders the
// edit form once both have settled.
func (gc *GigController) ShowEdit(c *gin.Context) {
	id := c.Param("id")
	ctx := apiContext(c)

	var (
		wg         sync.WaitGroup
		gig        models.Gig
		categories []models.Category
		gigErr     error
		catErr     error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		gig, gigErr = gc.API.GetGig(ctx, id)
	}()
	go func() {
		defer wg.Done()
		categories, catErr = gc.API.GetCategories(ctx)
	}()
	wg.Wait()

	form := models.GigForm{Mode: models.FormModeEdit, GigID: id, Token: gc.newToken(), Categories: categories}
	status := http.StatusOK

	if gigErr != nil {
		logger.Error.Printf("ShowEdit: failed to fetch gig %s: %v", id, gigErr)
		form.Error = services.UserMessage(gigErr)
		status = services.HTTPStatus(gigErr)
	} else {
		form.Draft = gig.Draft()
	}
	if catErr != nil {
		logger.Error.Printf("ShowEdit: failed to fetch categories: %v", catErr)
		if form.Error == "" {
			form.Error = services.UserMessage(catErr)
		}
	}

	gc.renderForm(c, status, form)
}

// UpdateGig submits the edit form to the gig API.
func (gc *GigController) UpdateGig(c *gin.Context) {
	id := c.Param("id")
	form := models.GigForm{Mode: models.FormModeEdit, GigID: id}
	gc.submit(c, "UpdateGig", form, gc.UpdateKeys, func(ctx context.Context, p *services.Payload) error {
		return gc.API.UpdateGig(ctx, id, p)
	})
}

// ------- submission pipeline -------

// submit runs one form submission: claim the form token, validate, build the
// multipart payload, call the API, then redirect or re-render with the error.
func (gc *GigController) submit(c *gin.Context, op string, form models.GigForm, keys services.PayloadKeys, send func(context.Context, *services.Payload) error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, gc.MaxUploadBytes)
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		message := "the form could not be read"
		if errors.As(err, &tooLarge) {
			message = "the selected files are too large"
		}
		form.Token = gc.newToken()
		gc.fail(c, op, form, &services.ValidationError{Op: op, Message: message, Err: err})
		return
	}

	form.Token = c.PostForm(formTokenField)
	if err := gc.Tracker.Begin(form.Token); err != nil {
		if errors.Is(err, services.ErrSubmissionInFlight) {
			logger.Warn.Printf("%s: form %s is already being submitted, ignoring", op, form.Token)
			_ = c.ShouldBind(&form.Draft)
			form.State = models.FormSubmitting
			form.Error = services.UserMessage(err)
			gc.renderForm(c, services.HTTPStatus(err), form)
			return
		}
		form.Token = gc.newToken()
		_ = c.ShouldBind(&form.Draft)
		gc.fail(c, op, form, err)
		return
	}
	defer gc.Tracker.End(form.Token)

	if err := c.ShouldBind(&form.Draft); err != nil {
		logger.Warn.Printf("%s: validation failed: %v", op, err)
		gc.fail(c, op, form, &services.ValidationError{Op: op, Message: "all fields are required", Err: err})
		return
	}

	payload, err := services.BuildPayload(keys, form.Draft, uploadedFiles(c))
	if err != nil {
		gc.fail(c, op, form, err)
		return
	}

	if err := send(apiContext(c), payload); err != nil {
		gc.Metrics.RecordSubmission(form.Mode, false)
		gc.fail(c, op, form, err)
		return
	}
	gc.Metrics.RecordSubmission(form.Mode, true)

	logger.Info.Printf("%s: gig %q saved, redirecting to /my-gigs", op, form.Draft.Title)
	c.Redirect(http.StatusFound, "/my-gigs")
}

// fail logs err and re-renders the form, idle again, with the entered values.
func (gc *GigController) fail(c *gin.Context, op string, form models.GigForm, err error) {
	logger.Error.Printf("%s: submission failed: %v", op, err)

	categories, catErr := gc.API.GetCategories(apiContext(c))
	if catErr != nil {
		logger.Warn.Printf("%s: failed to refetch categories: %v", op, catErr)
	}
	form.Categories = categories
	form.State = models.FormIdle
	form.Error = services.UserMessage(err)

	gc.renderForm(c, services.HTTPStatus(err), form)
}

// uploadedFiles collects the file slots. Both slots are taken as a whole from
// this request.
func uploadedFiles(c *gin.Context) models.FileSlots {
	var files models.FileSlots
	mf := c.Request.MultipartForm
	if mf == nil {
		return files
	}
	if covers := mf.File[coverField]; len(covers) > 0 {
		files.Cover = covers[0]
	}
	files.Images = mf.File[imagesField]
	return files
}

// ------- listing -------

// MyGigs lists the signed-in user's gigs. Both forms redirect here.
func (gc *GigController) MyGigs(c *gin.Context) {
	gigs, err := gc.API.ListMyGigs(apiContext(c))
	status := http.StatusOK
	message := ""
	if err != nil {
		logger.Error.Printf("MyGigs: failed to list gigs: %v", err)
		status = services.HTTPStatus(err)
		message = services.UserMessage(err)
	}
	render(c, status, "my_gigs.html", "My Gigs", gin.H{"Gigs": gigs, "Error": message})
}

// GigQRCode serves a PNG QR code linking to the gig's public page.
func (gc *GigController) GigQRCode(c *gin.Context) {
	id := c.Param("id")
	logger.Info.Printf("GigQRCode: Generating QR code for gig %s", id)

	png, err := services.GenerateGigQRCode(gc.ApplicationURL, id, qrCodeSize, gc.qrEncoder)
	if err != nil {
		logger.Error.Printf("GigQRCode: Error generating QR code: %v", err)
		c.String(http.StatusInternalServerError, "QR generation failed")
		return
	}

	c.Header("Content-Disposition", "inline; filename=\"gig-qrcode.png\"")
	c.Data(http.StatusOK, "image/png", png)
}
