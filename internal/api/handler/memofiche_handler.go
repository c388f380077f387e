package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/riadhbennourdine/pharmia/internal/dto"
	"github.com/riadhbennourdine/pharmia/internal/model"
	"github.com/riadhbennourdine/pharmia/internal/service"
	"github.com/riadhbennourdine/pharmia/pkg/response"
)

// MemoFicheHandler serves the content catalog and the mutation endpoints.
type MemoFicheHandler struct {
	ficheSvc service.MemoFicheService
}

// NewMemoFicheHandler creates the MemoFicheHandler.
func NewMemoFicheHandler(ficheSvc service.MemoFicheService) *MemoFicheHandler {
	return &MemoFicheHandler{ficheSvc: ficheSvc}
}

// GetCatalog returns the full public catalog.
// GET /api/data
func (h *MemoFicheHandler) GetCatalog(c *gin.Context) {
	catalog, err := h.ficheSvc.GetCatalog(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, catalog)
}

// GetBadgeCatalog returns the static badge definitions.
// GET /api/badges
func (h *MemoFicheHandler) GetBadgeCatalog(c *gin.Context) {
	response.OK(c, model.BadgeCatalog)
}

// GetMemoFiche returns one fiche.
// GET /api/memofiches/:id
func (h *MemoFicheHandler) GetMemoFiche(c *gin.Context) {
	fiche, err := h.ficheSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrFicheNotFound) {
			response.NotFound(c, 13001, "mémofiche introuvable")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, dto.NewMemoFicheResponse(fiche))
}

// CreateMemoFiche creates a fiche.
// POST /api/memofiches
func (h *MemoFicheHandler) CreateMemoFiche(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.MemoFicheRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "paramètres invalides")
		return
	}

	fiche, err := h.ficheSvc.Create(c.Request.Context(), role, &req)
	if err != nil {
		h.handleMutationError(c, err)
		return
	}
	response.Created(c, dto.NewMemoFicheResponse(fiche))
}

// UpdateMemoFiche patches a fiche.
// PUT /api/memofiches/:id
func (h *MemoFicheHandler) UpdateMemoFiche(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var patch dto.MemoFichePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, 10001, "paramètres invalides")
		return
	}

	fiche, err := h.ficheSvc.Update(c.Request.Context(), role, c.Param("id"), &patch)
	if err != nil {
		h.handleMutationError(c, err)
		return
	}
	response.OK(c, dto.NewMemoFicheResponse(fiche))
}

// DeleteMemoFiche removes a fiche.
// DELETE /api/memofiches/:id
func (h *MemoFicheHandler) DeleteMemoFiche(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	if err := h.ficheSvc.Delete(c.Request.Context(), role, c.Param("id")); err != nil {
		h.handleMutationError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *MemoFicheHandler) handleMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "accès refusé")
	case errors.Is(err, service.ErrFicheNotFound):
		response.NotFound(c, 13001, "mémofiche introuvable")
	case errors.Is(err, service.ErrThemeRequired):
		response.BadRequest(c, 13002, "le thème de la mémofiche est requis")
	default:
		response.InternalError(c)
	}
}
