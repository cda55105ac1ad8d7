package controller

import (
	"errors"
	"io"
	"mime/multipart"

	"doc-chat-be/internal/dto"
	"doc-chat-be/internal/pkg/serverutils"
	"doc-chat-be/internal/service"
	ws "doc-chat-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	UploadDocuments(ctx *fiber.Ctx) error
	ListDocuments(ctx *fiber.Ctx) error
	ToggleDocument(ctx *fiber.Ctx) error
	GetChatHistory(ctx *fiber.Ctx) error
	Ask(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
	hub         *ws.Hub
}

func NewChatController(chatService service.IChatService, hub *ws.Hub) IChatController {
	return &chatController{
		chatService: chatService,
		hub:         hub,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("session", c.CreateSession)
	h.Delete("session/:id", c.DeleteSession)
	h.Post("session/:id/documents", c.UploadDocuments)
	h.Get("session/:id/documents", c.ListDocuments)
	h.Patch("session/:id/documents/:docId", c.ToggleDocument)
	h.Get("session/:id/history", c.GetChatHistory)
	h.Post("session/:id/ask", c.Ask)

	h.Use("session/:id/ws", func(ctx *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	h.Get("session/:id/ws", websocket.New(func(conn *websocket.Conn) {
		ws.ServeWs(c.hub, conn, conn.Params("id"))
	}))
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.chatService.CreateSession(ctx.Context())
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *chatController) DeleteSession(ctx *fiber.Ctx) error {
	if err := c.chatService.DeleteSession(ctx.Context(), ctx.Params("id")); err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete session", nil))
}

func (c *chatController) UploadDocuments(ctx *fiber.Ctx) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "expected multipart form upload")
	}

	headers := form.File["documents"]
	if len(headers) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no files in 'documents' field")
	}

	files := make([]dto.UploadedFile, 0, len(headers))
	for _, header := range headers {
		data, err := readUpload(header)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not read uploaded file "+header.Filename)
		}
		files = append(files, dto.UploadedFile{
			Name:     header.Filename,
			MimeType: header.Header.Get("Content-Type"),
			Data:     data,
		})
	}

	res, err := c.chatService.UploadDocuments(ctx.Context(), ctx.Params("id"), files)
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success upload documents", res))
}

func (c *chatController) ListDocuments(ctx *fiber.Ctx) error {
	res, err := c.chatService.ListDocuments(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list documents", res))
}

func (c *chatController) ToggleDocument(ctx *fiber.Ctx) error {
	var req dto.ToggleDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	err := c.chatService.ToggleDocument(ctx.Context(), ctx.Params("id"), ctx.Params("docId"), *req.Included)
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success toggle document", nil))
}

func (c *chatController) GetChatHistory(ctx *fiber.Ctx) error {
	res, err := c.chatService.GetChatHistory(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

func (c *chatController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.Ask(ctx.Context(), ctx.Params("id"), &req)
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success ask", res))
}

// httpError maps domain errors to HTTP statuses
func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrDocumentNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrBusy):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNoDocuments):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	default:
		return err
	}
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
