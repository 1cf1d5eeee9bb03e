package files

import (
	"errors"
	"fmt"

	"file-gateway/core/logger"
	"file-gateway/core/middleware/errhandler"
	"file-gateway/core/reconcile"
	"file-gateway/core/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var errMissingFile = errors.New("missing multipart field file")

const (
	msgUploadStorage = "The file cannot be upload on the internal storage. Please retry later"
	msgUploadRead    = "The file cannot be read"
)

// Handler handles HTTP requests for files.
type Handler struct {
	service     *Service
	serviceCode string
}

// NewHandler creates a new HTTP handler. serviceCode prefixes error envelope
// codes; an invalid one falls back to errhandler.DefaultServiceCode.
func NewHandler(service *Service, serviceCode string) *Handler {
	return &Handler{service: service, serviceCode: errhandler.ServiceCode(serviceCode)}
}

// RegisterRoutes registers the file routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/files", h.HandleListFiles)
	app.Get("/files/:object", h.HandleDownloadFile)
	app.Post("/upload", h.HandleUpload)

	group := app.Group("/objects")
	group.Get("/", h.HandleListObjects)
	group.Post("/", h.HandleUploadObject)
	group.Get("/events", h.HandleListEvents)
	group.Get("/reconcile", h.HandleReconcile)
	group.Post("/reconcile", h.HandleApplyReconcile)
	group.Get("/:object/exists", h.HandleObjectExists)
	group.Get("/:object/download", h.HandleDownloadObject)
	group.Delete("/:object", h.HandleDeleteObject)

	app.Get("/codes", h.HandleListCodes)
	app.Get("/health", h.HandleHealth)
}

// HandleListFiles lists every object of the bucket.
// @Summary List Files
// @Description Lists every object stored in the configured bucket.
// @Tags files
// @Produce json
// @Success 200 {array} files.ObjectDescriptor "Objects"
// @Failure 500 {object} map[string]interface{} "Error Envelope"
// @Router /files [get]
func (h *Handler) HandleListFiles(c *fiber.Ctx) error {
	objects, err := h.service.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(objects)
}

// HandleDownloadFile streams an object as an attachment.
// @Summary Download File
// @Description Streams the object with a Content-Disposition attachment header.
// @Tags files
// @Produce octet-stream
// @Param object path string true "Object name"
// @Success 200 {file} file "Object content"
// @Failure 404 {object} map[string]interface{} "Error Envelope"
// @Router /files/{object} [get]
func (h *Handler) HandleDownloadFile(c *fiber.Ctx) error {
	name := c.Params("object")

	obj, err := h.service.Get(c.Context(), name)
	if err != nil {
		return err
	}
	return h.stream(c, name, obj)
}

// HandleUpload uploads the multipart field "file".
// @Summary Upload File
// @Description Uploads a file under its original name (whitespace replaced by '_').
// @Tags files
// @Accept multipart/form-data
// @Param file formData file true "File to upload"
// @Success 200 "Uploaded"
// @Failure 400 {object} map[string]interface{} "Error Envelope"
// @Failure 500 {object} map[string]interface{} "Error Envelope"
// @Router /upload [post]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	fh, err := c.FormFile("file")
	if err != nil {
		return errhandler.Write(c, fiber.StatusBadRequest, h.serviceCode, response.BadRequest(), errMissingFile.Error())
	}

	f, err := fh.Open()
	if err != nil {
		l.Error("Failed to open upload", zap.Error(err))
		return errhandler.Write(c, fiber.StatusInternalServerError, h.serviceCode, response.UnknownError(),
			fmt.Sprintf("%s: %v", msgUploadRead, err))
	}
	defer f.Close()

	_, err = h.service.Upload(c.Context(), UploadInput{
		OriginalName: fh.Filename,
		ContentType:  fh.Header.Get(fiber.HeaderContentType),
		Size:         fh.Size,
		Reader:       f,
	})
	if err != nil {
		l.Error("Upload failed", zap.String("file", fh.Filename), zap.Error(err))
		return errhandler.Write(c, fiber.StatusInternalServerError, h.serviceCode, response.UnknownError(),
			fmt.Sprintf("%s: %v", msgUploadStorage, err))
	}

	return c.SendStatus(fiber.StatusOK)
}

// HandleListObjects returns a page of objects in the envelope.
// @Summary List Objects
// @Description Paged listing sorted by name; meta.count is the total before paging.
// @Tags objects
// @Produce json
// @Param prefix query string false "Key prefix"
// @Param offset query int false "Offset"
// @Param limit query int false "Page size (0 = all)"
// @Success 200 {object} map[string]interface{} "Envelope with Result"
// @Router /objects [get]
func (h *Handler) HandleListObjects(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	objects, meta, err := h.service.ListPage(c.Context(), c.Query("prefix"), c.QueryInt("offset", 0), c.QueryInt("limit", 0))
	if err != nil {
		l.Error("List failed", zap.Error(err))
		return c.JSON(response.SuccessWithInfo(failure("list failed", err)))
	}
	return c.JSON(response.SuccessWithMeta(objects, meta))
}

// HandleUploadObject uploads a file, optionally under another name or bucket.
// @Summary Upload Object
// @Description Uploads the multipart field "file". Failures are reported in info with HTTP 200.
// @Tags objects
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Param name formData string false "Target object name"
// @Param bucket formData string false "Target bucket"
// @Success 200 {object} map[string]interface{} "Envelope with UploadResult"
// @Router /objects [post]
func (h *Handler) HandleUploadObject(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(response.SuccessWithInfo(failure("upload failed", errMissingFile)))
	}

	f, err := fh.Open()
	if err != nil {
		return c.JSON(response.SuccessWithInfo(failure("upload failed", err)))
	}
	defer f.Close()

	res, err := h.service.Upload(c.Context(), UploadInput{
		Bucket:       c.FormValue("bucket"),
		Name:         c.FormValue("name"),
		OriginalName: fh.Filename,
		ContentType:  fh.Header.Get(fiber.HeaderContentType),
		Size:         fh.Size,
		Reader:       f,
	})
	if err != nil {
		l.Warn("Upload failed", zap.String("file", fh.Filename), zap.Error(err))
		return c.JSON(response.SuccessWithInfo(failure("upload failed", err)))
	}
	return c.JSON(response.SuccessWithInfo(*res))
}

// HandleListEvents returns recent audit events.
// @Summary List File Events
// @Description Returns the latest upload/delete events. Empty when no database is configured.
// @Tags objects
// @Produce json
// @Param limit query int false "Maximum events (default 50)"
// @Success 200 {object} map[string]interface{} "Envelope with Result"
// @Router /objects/events [get]
func (h *Handler) HandleListEvents(c *fiber.Ctx) error {
	events, err := h.service.Events(c.Context(), c.QueryInt("limit", 50))
	if err != nil {
		return c.JSON(response.SuccessWithInfo(failure("events failed", err)))
	}
	return c.JSON(response.SuccessWithResult(events, len(events)))
}

// HandleReconcile reports drift between the audit trail and the bucket.
// @Summary Reconcile Audit Trail
// @Description Lists objects without upload events and events pointing at missing objects.
// @Tags objects
// @Produce json
// @Param prefix query string false "Key prefix"
// @Param bucket query string false "Bucket"
// @Success 200 {object} map[string]interface{} "Envelope with Plan"
// @Router /objects/reconcile [get]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	plan, err := h.service.Reconcile(c.Context(), c.Query("bucket"), c.Query("prefix"))
	if err != nil {
		return c.JSON(response.SuccessWithInfo(failure("reconcile failed", err)))
	}
	return c.JSON(response.SuccessWithInfo(*plan))
}

// HandleApplyReconcile repairs the audit trail.
// @Summary Apply Reconcile
// @Description Records the missing events. dryRun=true only plans.
// @Tags objects
// @Produce json
// @Param prefix query string false "Key prefix"
// @Param bucket query string false "Bucket"
// @Param dryRun query bool false "Plan without executing"
// @Success 200 {object} map[string]interface{} "Envelope with executed count"
// @Router /objects/reconcile [post]
func (h *Handler) HandleApplyReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	opts := reconcile.Options{Confirmed: true, DryRun: c.QueryBool("dryRun", false)}
	_, executed, err := h.service.ApplyReconcile(c.Context(), c.Query("bucket"), c.Query("prefix"), opts)
	if err != nil {
		l.Warn("Reconcile failed", zap.Int("executed", executed), zap.Error(err))
		return c.JSON(response.SuccessWithInfo(failure("reconcile failed", err)))
	}
	l.Info("Reconciled audit trail", zap.Int("executed", executed))
	return c.JSON(response.SuccessWithInfo(executed))
}

// HandleObjectExists reports whether an object exists.
// @Summary Object Exists
// @Tags objects
// @Produce json
// @Param object path string true "Object name"
// @Param bucket query string false "Bucket"
// @Success 200 {object} map[string]interface{} "Envelope with bool"
// @Router /objects/{object}/exists [get]
func (h *Handler) HandleObjectExists(c *fiber.Ctx) error {
	exists := h.service.Exists(c.Context(), c.Query("bucket"), c.Params("object"))
	return c.JSON(response.SuccessWithInfo(exists))
}

// HandleDownloadObject streams an object; failures are reported in the envelope.
// @Summary Download Object
// @Tags objects
// @Produce octet-stream
// @Param object path string true "Object name"
// @Param bucket query string false "Bucket"
// @Success 200 {file} file "Object content"
// @Router /objects/{object}/download [get]
func (h *Handler) HandleDownloadObject(c *fiber.Ctx) error {
	name := c.Params("object")

	obj, err := h.service.GetFrom(c.Context(), c.Query("bucket"), name)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Warn("Download failed", zap.String("object", name), zap.Error(err))
		return c.JSON(response.SuccessWithInfo(failure("download failed", err)))
	}
	return h.stream(c, name, obj)
}

// HandleDeleteObject deletes an object.
// @Summary Delete Object
// @Tags objects
// @Produce json
// @Param object path string true "Object name"
// @Param bucket query string false "Bucket"
// @Success 200 {object} map[string]interface{} "Envelope with bool"
// @Router /objects/{object} [delete]
func (h *Handler) HandleDeleteObject(c *fiber.Ctx) error {
	deleted := h.service.Delete(c.Context(), c.Query("bucket"), c.Params("object"))
	return c.JSON(response.SuccessWithInfo(deleted))
}

// HandleListCodes lists the error code registry.
// @Summary List Error Codes
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{} "Envelope with Result"
// @Router /codes [get]
func (h *Handler) HandleListCodes(c *fiber.Ctx) error {
	codes := response.Codes()
	return c.JSON(response.SuccessWithResult(codes, len(codes)))
}

// HandleHealth answers liveness probes.
// @Summary Health
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{} "Success Envelope"
// @Router /health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(response.SuccessEmpty())
}

// stream writes obj as an attachment. The body is closed by fasthttp once
// sent; on the error path before that it is closed here.
func (h *Handler) stream(c *fiber.Ctx, name string, obj *Object) error {
	contentType, body := guessContentType(name, obj.Body)

	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+name)
	c.Set(fiber.HeaderContentType, contentType)

	if obj.Info.Size > 0 {
		return c.SendStream(body, int(obj.Info.Size))
	}
	return c.SendStream(body)
}

func failure(prefix string, err error) string {
	return fmt.Sprintf("%s: [%v]", prefix, err)
}
