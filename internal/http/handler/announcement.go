package handler

import (
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"contentapi/internal/model"
	"contentapi/internal/service"
)

// announcementResponse decorates the stored record with resolved image
// URLs: a just-committed image is not served by its site-relative path
// until the site redeploys, so the console renders from the fallback.
type announcementResponse struct {
	model.Announcement
	ImageURLs []string `json:"imageUrls"`
}

func announcementView(a model.Announcement, publicBase string) announcementResponse {
	urls := make([]string, len(a.Images))
	for i, img := range a.Images {
		urls[i] = model.ResolveAssetURL(img, publicBase)
	}
	return announcementResponse{Announcement: a, ImageURLs: urls}
}

// GetAnnouncement returns the currently committed announcement.
func GetAnnouncement(svc service.AnnouncementService, publicBase string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, err := svc.Load(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(announcementView(*a, publicBase))
	}
}

// PublishAnnouncement accepts a multipart edit session: text fields, the
// surviving image paths under repeated "keep" fields, and new images under
// repeated "images" file fields.
func PublishAnnouncement(svc service.AnnouncementService, publicBase string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FORM", "multipart form data is required")
		}

		edit := service.AnnouncementEdit{
			Active:      formBool(form, "active", true),
			Title:       formBilingual(form, "title"),
			Subtitle:    formBilingual(form, "subtitle"),
			Description: formBilingual(form, "description"),
			KeepImages:  form.Value["keep"],
		}

		for _, fh := range form.File["images"] {
			up, err := readUpload(fh)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot read uploaded image")
			}
			edit.NewImages = append(edit.NewImages, up)
		}

		published, err := svc.Publish(c.UserContext(), edit)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(announcementView(*published, publicBase))
	}
}

func formValue(form *multipart.Form, key string) string {
	if vs := form.Value[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

func formBool(form *multipart.Form, key string, def bool) bool {
	v := formValue(form, key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// formBilingual reads the "<key>_en"/"<key>_ka" field pair.
func formBilingual(form *multipart.Form, key string) model.Bilingual {
	return model.Bilingual{
		EN: formValue(form, key+"_en"),
		KA: formValue(form, key+"_ka"),
	}
}

func readUpload(fh *multipart.FileHeader) (model.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return model.Upload{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return model.Upload{}, err
	}
	return model.Upload{Filename: fh.Filename, Data: data}, nil
}
