package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/productflow-backend/internal/data/repos"
	domainagg "github.com/yungbote/productflow-backend/internal/domain/aggregates"
	"github.com/yungbote/productflow-backend/internal/http/response"
	"github.com/yungbote/productflow-backend/internal/pkg/ctxutil"
	"github.com/yungbote/productflow-backend/internal/pkg/dbctx"
	"github.com/yungbote/productflow-backend/internal/pkg/logger"
)

type ProductHandler struct {
	log      *logger.Logger
	products domainagg.ProductAggregate
	read     repos.ProductReadRepo
}

func NewProductHandler(log *logger.Logger, products domainagg.ProductAggregate, read repos.ProductReadRepo) *ProductHandler {
	return &ProductHandler{
		log:      log.With("handler", "ProductHandler"),
		products: products,
		read:     read,
	}
}

// POST /api/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req domainagg.CreateProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		h.logFailure(c, "Create product failed", err)
		response.RespondFromError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"product": out})
}

// PATCH /api/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	var req domainagg.UpdateProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := h.products.Update(c.Request.Context(), id, req)
	if err != nil {
		h.logFailure(c, "Update product failed", err, "product_id", id)
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"product": out})
}

// GET /api/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	out, err := h.read.GetAssembled(dbctx.Context{Ctx: c.Request.Context()}, id)
	if err != nil {
		h.log.Error("Load product failed", "product_id", id, "error", err)
		response.RespondError(c, http.StatusInternalServerError, "internal", errors.New("internal error"))
		return
	}
	if out == nil {
		response.RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("product %s not found", id))
		return
	}
	response.RespondOK(c, gin.H{"product": out})
}

func (h *ProductHandler) logFailure(c *gin.Context, msg string, err error, kv ...any) {
	kv = append(kv,
		"code", domainagg.CodeOf(err),
		"request_id", ctxutil.RequestID(c.Request.Context()),
		"error", err,
	)
	if domainagg.IsCode(err, domainagg.CodeInternal) {
		h.log.Error(msg, kv...)
		return
	}
	h.log.Warn(msg, kv...)
}

func productID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return uuid.Nil, false
	}
	return id, true
}
