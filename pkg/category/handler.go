package category

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klokku/clarity/internal/apperr"
	"github.com/klokku/clarity/internal/rest"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type CategoryDTO struct {
	Id           int             `json:"Id"`
	Name         string          `json:"name"`
	Color        string          `json:"color"`
	Icon         string          `json:"icon"`
	MonthlyLimit decimal.Decimal `json:"monthlyLimit"`
}

type PatchDTO struct {
	Name         *string          `json:"name,omitempty"`
	Color        *string          `json:"color,omitempty"`
	Icon         *string          `json:"icon,omitempty"`
	MonthlyLimit *decimal.Decimal `json:"monthlyLimit,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// ListCategories godoc
// @Summary List categories
// @Tags Category
// @Produce json
// @Success 200 {array} CategoryDTO
// @Router /api/category [get]
func (handler *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing categories")
	categories, err := handler.service.ListCategories(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	dtos := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, ToDTO(c))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// GetCategory godoc
// @Summary Get a category
// @Tags Category
// @Produce json
// @Param categoryId path int true "Category ID"
// @Success 200 {object} CategoryDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/category/{categoryId} [get]
func (handler *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := rest.ParseId("categoryId", mux.Vars(r)["categoryId"])
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	c, err := handler.service.GetCategory(r.Context(), id)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ToDTO(c))
}

// UpdateCategory godoc
// @Summary Update category metadata or its monthly limit
// @Tags Category
// @Accept json
// @Produce json
// @Param categoryId path int true "Category ID"
// @Param patch body PatchDTO true "Fields to change"
// @Success 200 {object} CategoryDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/category/{categoryId} [patch]
func (handler *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating category")
	id, err := rest.ParseId("categoryId", mux.Vars(r)["categoryId"])
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	var patchDTO PatchDTO
	if err := json.NewDecoder(r.Body).Decode(&patchDTO); err != nil {
		rest.WriteError(w, apperr.Invalid("body", err.Error()))
		return
	}
	updated, err := handler.service.UpdateCategory(r.Context(), id, Patch(patchDTO))
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ToDTO(updated))
}

func ToDTO(c Category) CategoryDTO {
	return CategoryDTO{
		Id:           c.Id,
		Name:         c.Name,
		Color:        c.Color,
		Icon:         c.Icon,
		MonthlyLimit: c.MonthlyLimit,
	}
}
