package persona

import (
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wichananm65/personas-web/internal/apiclient"
	"github.com/wichananm65/personas-web/internal/web"
)

const (
	msgLoadFailed      = "Error cargando personas. Verifica que el backend esté encendido."
	msgCreateFailed    = "Hubo un error al conectar con el servidor."
	msgUpdateFailed    = "Error al actualizar"
	msgDeleteForbidden = "No tienes permisos para eliminar personas. Solo administradores pueden eliminar."
)

// fieldFotoActual carries the current photo URL through an edit submit so a
// failed update can show it again.
const fieldFotoActual = "fotoActual"

var notices = map[string]string{
	"creada":      "Persona creada exitosamente",
	"actualizada": "Actualizado correctamente",
}

type Handler struct {
	service *Service
	logger  *zap.Logger
}

func NewHandler(service *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes mounts the record pages. /personas/crear is registered
// before /personas/:id so it is not taken for an id.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/personas", h.list)
	app.Get("/personas/crear", h.newForm)
	app.Post("/personas/crear", h.create)
	app.Get("/personas/:id", h.editForm)
	app.Post("/personas/:id", h.update)
	app.Post("/personas/:id/eliminar", h.delete)
}

func (h *Handler) list(c *fiber.Ctx) error {
	personas, err := h.service.List(c.UserContext())
	if errors.Is(err, apiclient.ErrSessionExpired) {
		return err
	}

	data := fiber.Map{
		"Personas": personas,
		"Notice":   notices[c.Query("ok")],
	}
	if err != nil {
		h.logger.Warn("list personas", zap.Error(err), zap.String("request_id", web.RequestID(c)))
		data["LoadError"] = msgLoadFailed
		c.Status(fiber.StatusBadGateway)
	}
	return web.Render(c, "personas/list", "Listado de Personas", data)
}

func (h *Handler) newForm(c *fiber.Ctx) error {
	return h.renderForm(c, formPage{mode: ModeCreate}, Form{}, nil, "")
}

func (h *Handler) create(c *fiber.Ctx) error {
	form, err := readForm(c)
	if err != nil {
		return err
	}
	if _, err := h.service.Create(c.UserContext(), form); err != nil {
		return h.submitFailed(c, formPage{mode: ModeCreate}, form, err)
	}
	return c.Redirect("/personas?ok=creada", fiber.StatusSeeOther)
}

func (h *Handler) editForm(c *fiber.Ctx) error {
	id := c.Params("id")
	form, p, err := h.service.Load(c.UserContext(), id)
	if err != nil {
		return err
	}
	return h.renderForm(c, formPage{mode: ModeEdit, id: id, photoURL: p.PhotoURL}, form, nil, "")
}

func (h *Handler) update(c *fiber.Ctx) error {
	id := c.Params("id")
	form, err := readForm(c)
	if err != nil {
		return err
	}
	if _, err := h.service.Update(c.UserContext(), id, form); err != nil {
		page := formPage{mode: ModeEdit, id: id, photoURL: c.FormValue(fieldFotoActual)}
		return h.submitFailed(c, page, form, err)
	}
	return c.Redirect("/personas?ok=actualizada", fiber.StatusSeeOther)
}

// delete answers the list page script. The page drops the row itself on
// success, so nothing is re-read here.
func (h *Handler) delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, apiclient.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": msgDeleteForbidden})
		}
		return err
	}
	h.logger.Info("persona deleted", zap.String("id", id), zap.String("request_id", web.RequestID(c)))
	return c.JSON(fiber.Map{"deleted": id})
}

type formPage struct {
	mode     Mode
	id       string
	photoURL string
}

func (h *Handler) submitFailed(c *fiber.Ctx, page formPage, form Form, err error) error {
	if ve, ok := AsValidationError(err); ok {
		c.Status(fiber.StatusUnprocessableEntity)
		return h.renderForm(c, page, form, ve, "")
	}
	if errors.Is(err, apiclient.ErrSessionExpired) {
		return err
	}

	h.logger.Warn("submit persona", zap.Error(err), zap.String("request_id", web.RequestID(c)))
	msg := msgCreateFailed
	if page.mode == ModeEdit {
		msg = apiclient.Message(err, msgUpdateFailed)
	}
	c.Status(statusOf(err))
	return h.renderForm(c, page, form, nil, msg)
}

func (h *Handler) renderForm(c *fiber.Ctx, page formPage, form Form, errs ValidationError, serverError string) error {
	if errs == nil {
		errs = ValidationError{}
	}
	data := fiber.Map{
		"Form":          form,
		"Errors":        errs,
		"ServerError":   serverError,
		"DocumentTypes": DocumentTypes,
		"Genders":       Genders,
		"Editing":       page.mode == ModeEdit,
		"PhotoURL":      page.photoURL,

		"MaxPhotoSize":     MaxPhotoSize,
		"PhotoTypes":       strings.Join(AcceptedImageTypes, ","),
		"PhotoSizeMessage": msgPhotoSize,
		"PhotoTypeMessage": msgPhotoType,
	}
	if page.mode == ModeEdit {
		data["Action"] = "/personas/" + page.id
		data["Heading"] = "Editar Persona"
		data["Submit"] = "Actualizar Datos"
		return web.Render(c, "personas/form", "Editar Persona", data)
	}
	data["Action"] = "/personas/crear"
	data["Heading"] = "Registrar Persona"
	data["Submit"] = "Guardar Persona"
	return web.Render(c, "personas/form", "Registrar Persona", data)
}

// readForm collects the text fields and the optional photo of a submitted
// form. A missing file part is not an error.
func readForm(c *fiber.Ctx) (Form, error) {
	form := FormFromValues(func(name string) string { return c.FormValue(name) })

	fh, err := c.FormFile(FieldFoto)
	if err != nil || fh.Size == 0 {
		return form, nil
	}
	photo, err := readPhoto(fh)
	if err != nil {
		return form, fiber.NewError(fiber.StatusBadRequest, "No se pudo leer la foto")
	}
	form.Foto = photo
	return form, nil
}

// readPhoto loads the file into memory. Oversized files keep their size
// but no data, since validation rejects them anyway.
func readPhoto(fh *multipart.FileHeader) (*Photo, error) {
	photo := &Photo{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
	}
	if fh.Size > MaxPhotoSize {
		return photo, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	photo.Data, err = io.ReadAll(io.LimitReader(f, MaxPhotoSize))
	if err != nil {
		return nil, err
	}
	return photo, nil
}

func statusOf(err error) int {
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		return apiErr.Status
	}
	return fiber.StatusBadGateway
}
