// Package organisation exposes the public profile of the organisations publishing events.
package organisation

import (
	"context"

	"github.com/gosimple/slug"

	"github.com/eventforge/eventforge/pkg/model"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewService(repository organisationRepository) *Service {
	return &Service{repository: repository}
}

type organisationRepository interface {
	findById(ctx context.Context, id uint) (*model.Organisation, error)
	findAll(ctx context.Context) ([]model.Organisation, error)
	findByUserId(ctx context.Context, userId uint) (*model.Organisation, error)
	save(ctx context.Context, organisation *model.Organisation) error
}

type Service struct {
	repository organisationRepository
}

// UpdateOrganisationRequest holds the editable organisation details.
type UpdateOrganisationRequest struct {
	Name          string `json:"name" binding:"required"`
	Bulstat       string `json:"bulstat"`
	Address       string `json:"address"`
	Website       string `json:"website"`
	Facebook      string `json:"facebook"`
	CharityOption string `json:"charityOption"`
	Purpose       string `json:"purpose"`
	LogoURL       string `json:"logoUrl"`
	BackgroundURL string `json:"backgroundUrl"`
}

// FindById returns the organisation if it is publicly visible.
func (s Service) FindById(ctx context.Context, id uint) (*model.Organisation, error) {
	return s.repository.findById(ctx, id)
}

// FindAll returns every publicly visible organisation.
func (s Service) FindAll(ctx context.Context) ([]model.Organisation, error) {
	return s.repository.findAll(ctx)
}

func (s Service) FindByUserId(ctx context.Context, userId uint) (*model.Organisation, error) {
	return s.repository.findByUserId(ctx, userId)
}

// Update replaces the details of the organisation owned by user. The slug follows the name.
func (s Service) Update(ctx context.Context, user *model.User, request UpdateOrganisationRequest) (*model.Organisation, error) {
	organisation, err := s.repository.findByUserId(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	organisation.Name = request.Name
	organisation.Slug = slug.Make(request.Name)
	organisation.Bulstat = request.Bulstat
	organisation.Address = request.Address
	organisation.Website = request.Website
	organisation.Facebook = request.Facebook
	organisation.CharityOption = request.CharityOption
	organisation.Purpose = request.Purpose
	organisation.LogoURL = request.LogoURL
	organisation.BackgroundURL = request.BackgroundURL

	if err := s.repository.save(ctx, organisation); err != nil {
		return nil, err
	}

	return organisation, nil
}
