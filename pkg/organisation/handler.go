package organisation

import (
	"context"
	"net/http"

	"github.com/eventforge/eventforge/internal/handler"
	"github.com/eventforge/eventforge/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewHandler(organisationService organisationService) Handler {
	return Handler{organisationService}
}

type Handler struct {
	organisationService organisationService
}

type organisationService interface {
	FindById(ctx context.Context, id uint) (*model.Organisation, error)
	FindAll(ctx context.Context) ([]model.Organisation, error)
	FindByUserId(ctx context.Context, userId uint) (*model.Organisation, error)
	Update(ctx context.Context, user *model.User, request UpdateOrganisationRequest) (*model.Organisation, error)
}

// FindAll organisations
func (h Handler) FindAll(c *gin.Context) {
	// swagger:route GET /organisations findAllOrganisations
	//
	// Find organisations
	//
	// Find all organisations whose account is approved and not locked
	//
	// responses:
	//   200: OrganisationsResponse
	organisations, err := h.organisationService.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, organisations)
}

// FindById organisation
func (h Handler) FindById(c *gin.Context) {
	// swagger:route GET /organisations/{id} findOrganisationById
	//
	// Find organisation
	//
	// Find an organisation by its id
	//
	// responses:
	//   200: Organisation
	//   400: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	organisation, err := h.organisationService.FindById(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, organisation)
}

// Mine returns the organisation of the current user
func (h Handler) Mine(c *gin.Context) {
	// swagger:route GET /me/organisation myOrganisation
	//
	// My organisation
	//
	// Organisation owned by the current user
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Organisation
	//   401: Error
	//   403: Error
	//   404: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	organisation, err := h.organisationService.FindByUserId(c.Request.Context(), user.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, organisation)
}

// Update the organisation of the current user
func (h Handler) Update(c *gin.Context) {
	// swagger:route PUT /me/organisation updateOrganisation
	//
	// Update organisation
	//
	// Update the organisation owned by the current user
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Organisation
	//   400: Error
	//   401: Error
	//   403: Error
	//   409: Error
	//   415: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var request UpdateOrganisationRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	organisation, err := h.organisationService.Update(c.Request.Context(), user, request)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, organisation)
}
