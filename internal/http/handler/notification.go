package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"contentapi/internal/model"
	"contentapi/internal/service"
)

type notificationResponse struct {
	model.Notification
	ResolvedFileURL string `json:"resolvedFileUrl,omitempty"`
}

type notificationListResponse struct {
	Items []notificationResponse `json:"data"`
	Total int                    `json:"total"`
}

func notificationView(n model.Notification, publicBase string) notificationResponse {
	return notificationResponse{
		Notification:    n,
		ResolvedFileURL: model.ResolveAssetURL(n.FileURL, publicBase),
	}
}

// ListNotifications returns the stored notices, newest first.
func ListNotifications(svc service.NotificationService, publicBase string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}

		res := notificationListResponse{Items: make([]notificationResponse, len(items)), Total: len(items)}
		for i, n := range items {
			res.Items[i] = notificationView(n, publicBase)
		}
		return c.JSON(res)
	}
}

// CreateNotification publishes a new notice from a multipart form:
// bilingual title, a "date" field, and an optional "file" attachment.
func CreateNotification(svc service.NotificationService, publicBase string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FORM", "multipart form data is required")
		}

		draft := service.NotificationDraft{
			Title: formBilingual(form, "title"),
			Date:  formValue(form, "date"),
		}
		if fhs := form.File["file"]; len(fhs) > 0 {
			up, err := readUpload(fhs[0])
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot read uploaded file")
			}
			draft.File = &up
		}

		record, err := svc.Create(c.UserContext(), draft)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(notificationView(*record, publicBase))
	}
}

// DeleteNotification removes one notice by id.
func DeleteNotification(svc service.NotificationService) fiber.Handler {
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
