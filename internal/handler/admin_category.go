package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/eventhub/internal/model"
	"github.com/gatherly/eventhub/internal/repository"
)

// AdminHandler bundles repositories for admin-only write operations.
type AdminHandler struct {
	CategoryRepo *repository.CategoryRepo
}

func NewAdminHandler(cats *repository.CategoryRepo) *AdminHandler {
	if cats == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{CategoryRepo: cats}
}

type categoryReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateCategory adds a new category. Names must be unique and non-empty.
func (h *AdminHandler) CreateCategory(c echo.Context) error {
	var req categoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	cat := &model.Category{Name: name, Description: req.Description}
	if err := h.CategoryRepo.Create(c.Request().Context(), cat); err != nil {
		if errors.Is(err, repository.ErrCategoryExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "category name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create category failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": cat.ID, "name": cat.Name, "description": cat.Description})
}

// UpdateCategory renames a category or changes its description.
func (h *AdminHandler) UpdateCategory(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req categoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	cat := &model.Category{ID: id, Name: name, Description: req.Description}
	err = h.CategoryRepo.Update(c.Request().Context(), cat)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"id": cat.ID, "name": cat.Name, "description": cat.Description})
	case errors.Is(err, repository.ErrCategoryNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
	case errors.Is(err, repository.ErrCategoryExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": "category name already exists"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update category failed"})
	}
}

// DeleteCategory removes a category. Its events survive with a NULL
// category and fall into the "none" bucket of dashboard distributions.
func (h *AdminHandler) DeleteCategory(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	err = h.CategoryRepo.Delete(c.Request().Context(), id)
	switch {
	case err == nil:
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, repository.ErrCategoryNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete category failed"})
	}
}
