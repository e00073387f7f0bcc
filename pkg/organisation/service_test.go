package organisation

import (
	"context"
	"testing"

	"github.com/eventforge/eventforge/internal/errdef"
	"github.com/eventforge/eventforge/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestService_Update(t *testing.T) {
	repository := &mockRepository{}
	organisation := &model.Organisation{ID: 1, Name: "Old Name", Slug: "old-name", UserID: 7}
	repository.On("findByUserId", uint(7)).Return(organisation, nil)
	repository.On("save", organisation).Return(nil)
	service := NewService(repository)

	updated, err := service.Update(context.Background(), &model.User{ID: 7}, UpdateOrganisationRequest{
		Name:    "Helping Hands",
		Purpose: "food bank",
		Website: "https://helping.example.org",
	})

	require.NoError(t, err)
	assert.Equal(t, "Helping Hands", updated.Name)
	assert.Equal(t, "helping-hands", updated.Slug)
	assert.Equal(t, "food bank", updated.Purpose)
	assert.Equal(t, "https://helping.example.org", updated.Website)
	assert.Equal(t, uint(7), updated.UserID)
	repository.AssertExpectations(t)
}

func TestService_Update_NoOrganisation(t *testing.T) {
	repository := &mockRepository{}
	repository.On("findByUserId", uint(7)).Return(nil, errdef.NewNotFound("not found"))
	service := NewService(repository)

	_, err := service.Update(context.Background(), &model.User{ID: 7}, UpdateOrganisationRequest{Name: "Name"})

	require.Error(t, err)
	assert.True(t, errdef.IsNotFound(err))
	repository.AssertNotCalled(t, "save", mock.Anything)
}

func TestService_Update_NameTaken(t *testing.T) {
	repository := &mockRepository{}
	organisation := &model.Organisation{ID: 1, Name: "Old Name", UserID: 7}
	repository.On("findByUserId", uint(7)).Return(organisation, nil)
	repository.On("save", organisation).Return(errdef.NewDuplicated("taken"))
	service := NewService(repository)

	_, err := service.Update(context.Background(), &model.User{ID: 7}, UpdateOrganisationRequest{Name: "Taken"})

	require.Error(t, err)
	assert.True(t, errdef.IsDuplicated(err))
}

type mockRepository struct{ mock.Mock }

func (m *mockRepository) findById(_ context.Context, id uint) (*model.Organisation, error) {
	called := m.Called(id)
	organisation, _ := called.Get(0).(*model.Organisation)
	return organisation, called.Error(1)
}

func (m *mockRepository) findAll(_ context.Context) ([]model.Organisation, error) {
	called := m.Called()
	organisations, _ := called.Get(0).([]model.Organisation)
	return organisations, called.Error(1)
}

func (m *mockRepository) findByUserId(_ context.Context, userId uint) (*model.Organisation, error) {
	called := m.Called(userId)
	organisation, _ := called.Get(0).(*model.Organisation)
	return organisation, called.Error(1)
}

func (m *mockRepository) save(_ context.Context, organisation *model.Organisation) error {
	return m.Called(organisation).Error(0)
}
