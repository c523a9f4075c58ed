package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"contentapi/internal/model"
	"contentapi/internal/service"
)

type newsItemResponse struct {
	model.News
	ImageURL string `json:"imageUrl"`
}

type newsListResponse struct {
	Items []newsItemResponse `json:"data"`
	Total int                `json:"total"`
}

func newsView(n model.News, publicBase string) newsItemResponse {
	return newsItemResponse{News: n, ImageURL: model.ResolveAssetURL(n.Image, publicBase)}
}

// ListNews returns the stored list, newest first.
func ListNews(svc service.NewsService, publicBase string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}

		res := newsListResponse{Items: make([]newsItemResponse, len(items)), Total: len(items)}
		for i, n := range items {
			res.Items[i] = newsView(n, publicBase)
		}
		return c.JSON(res)
	}
}

// CreateNews publishes a new article from a multipart form: bilingual
// title/description fields plus an "image" file.
func CreateNews(svc service.NewsService, publicBase string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FORM", "multipart form data is required")
		}

		draft := service.NewsDraft{
			Title:       formBilingual(form, "title"),
			Description: formBilingual(form, "description"),
		}
		if fhs := form.File["image"]; len(fhs) > 0 {
			up, err := readUpload(fhs[0])
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot read uploaded image")
			}
			draft.Image = up
		}

		record, err := svc.Create(c.UserContext(), draft)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(newsView(*record, publicBase))
	}
}

// DeleteNews removes one article by id.
func DeleteNews(svc service.NewsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
