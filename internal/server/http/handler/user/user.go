package user

import (
	"fmt"
	"strconv"

	"go-userapi/internal/validation"
	"go-userapi/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct{ d Dependencies }

func NewHandler(d Dependencies) *Handler { return &Handler{d: d} }

func (h *Handler) Create(c *gin.Context) {
	var req validation.UserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, fmt.Errorf("invalid request body: %v", err))
		return
	}
	res, err := h.d.Users.Create(c.Request.Context(), req)
	if err != nil {
		response.Err(c, err)
		return
	}
	response.Created(c, res)
}

func (h *Handler) List(c *gin.Context) {
	res, err := h.d.Users.List(c.Request.Context())
	if err != nil {
		response.Err(c, err)
		return
	}
	response.OK(c, res)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Err(c, err)
		return
	}
	res, err := h.d.Users.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Err(c, err)
		return
	}
	response.OK(c, res)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Err(c, err)
		return
	}
	var req validation.UserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, fmt.Errorf("invalid request body: %v", err))
		return
	}
	res, err := h.d.Users.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Err(c, err)
		return
	}
	response.OK(c, res)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Err(c, err)
		return
	}
	if err := h.d.Users.Delete(c.Request.Context(), id); err != nil {
		response.Err(c, err)
		return
	}
	response.NoContent(c)
}

func pathID(c *gin.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user id: %s", raw)
	}
	return id, nil
}
