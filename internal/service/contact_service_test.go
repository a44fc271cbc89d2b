package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "agenda/internal/errors"
	"agenda/internal/model"
)

// MockContactRepository is a mock implementation of repository.ContactRepository.
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, contact *model.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) FindByID(ctx context.Context, id uint) (*model.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contact), args.Error(1)
}

func (m *MockContactRepository) ListByOwner(ctx context.Context, ownerID uint, search string, offset, limit int) ([]model.Contact, error) {
	args := m.Called(ctx, ownerID, search, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Contact), args.Error(1)
}

func (m *MockContactRepository) CountByOwner(ctx context.Context, ownerID uint, search string) (int64, error) {
	args := m.Called(ctx, ownerID, search)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockContactRepository) Update(ctx context.Context, contact *model.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) Delete(ctx context.Context, contact *model.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func TestContactService_Create(t *testing.T) {
	mockRepo := new(MockContactRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Contact")).Return(nil)

	service := NewContactService(mockRepo, 6, 2)
	contact, err := service.Create(context.Background(), 1, ContactInput{
		FirstName: "Bob",
		Email:     "bob@example.com",
		Number:    5551234,
	})

	assert.NoError(t, err)
	assert.NotNil(t, contact)
	assert.Equal(t, uint(1), contact.UserID)
	assert.Equal(t, "Bob", contact.FirstName)
	assert.Equal(t, int64(5551234), contact.Number)
	mockRepo.AssertExpectations(t)
}

func TestContactService_Get_Ownership(t *testing.T) {
	owner := &model.User{ID: 1}
	stranger := &model.User{ID: 2}

	tests := []struct {
		name          string
		user          *model.User
		contactID     uint
		setupMock     func(*MockContactRepository)
		expectedError error
	}{
		{
			name:      "owner can read",
			user:      owner,
			contactID: 10,
			setupMock: func(m *MockContactRepository) {
				m.On("FindByID", mock.Anything, uint(10)).Return(&model.Contact{ID: 10, UserID: 1}, nil)
			},
			expectedError: nil,
		},
		{
			name:      "non-owner is forbidden",
			user:      stranger,
			contactID: 10,
			setupMock: func(m *MockContactRepository) {
				m.On("FindByID", mock.Anything, uint(10)).Return(&model.Contact{ID: 10, UserID: 1}, nil)
			},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:      "missing contact is not found",
			user:      owner,
			contactID: 99,
			setupMock: func(m *MockContactRepository) {
				m.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrContactNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockContactRepository)
			tt.setupMock(mockRepo)

			service := NewContactService(mockRepo, 6, 2)
			contact, err := service.Get(context.Background(), tt.user, tt.contactID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, contact)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, contact)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestContactService_Update_Ownership(t *testing.T) {
	stranger := &model.User{ID: 2}
	mockRepo := new(MockContactRepository)
	mockRepo.On("FindByID", mock.Anything, uint(10)).Return(&model.Contact{ID: 10, UserID: 1}, nil)

	service := NewContactService(mockRepo, 6, 2)
	_, err := service.Update(context.Background(), stranger, 10, ContactInput{FirstName: "X", Email: "x@example.com", Number: 1})

	assert.Equal(t, apperrors.ErrForbidden, err)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestContactService_Update_OwnerNeverChanges(t *testing.T) {
	owner := &model.User{ID: 1}
	mockRepo := new(MockContactRepository)
	mockRepo.On("FindByID", mock.Anything, uint(10)).Return(&model.Contact{ID: 10, UserID: 1, FirstName: "Old"}, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Contact")).Return(nil)

	service := NewContactService(mockRepo, 6, 2)
	contact, err := service.Update(context.Background(), owner, 10, ContactInput{
		FirstName: "New",
		LastName:  "Name",
		Email:     "new@example.com",
		Number:    5559999,
	})

	assert.NoError(t, err)
	assert.Equal(t, "New", contact.FirstName)
	assert.Equal(t, uint(1), contact.UserID)
	mockRepo.AssertExpectations(t)
}

func TestContactService_Delete_Ownership(t *testing.T) {
	stranger := &model.User{ID: 2}
	mockRepo := new(MockContactRepository)
	mockRepo.On("FindByID", mock.Anything, uint(10)).Return(&model.Contact{ID: 10, UserID: 1}, nil)

	service := NewContactService(mockRepo, 6, 2)
	err := service.Delete(context.Background(), stranger, 10)

	assert.Equal(t, apperrors.ErrForbidden, err)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestContactService_List_PageSizes(t *testing.T) {
	tests := []struct {
		name            string
		search          string
		page            int
		total           int64
		expectedPerPage int
		expectedOffset  int
		expectedPages   int
	}{
		{name: "unfiltered uses the default page size", search: "", page: 1, total: 13, expectedPerPage: 6, expectedOffset: 0, expectedPages: 3},
		{name: "search uses the smaller page size", search: "Bob", page: 1, total: 5, expectedPerPage: 2, expectedOffset: 0, expectedPages: 3},
		{name: "later pages offset by page size", search: "", page: 2, total: 13, expectedPerPage: 6, expectedOffset: 6, expectedPages: 3},
		{name: "page clamps to last", search: "", page: 99, total: 13, expectedPerPage: 6, expectedOffset: 12, expectedPages: 3},
		{name: "empty list still has one page", search: "", page: 1, total: 0, expectedPerPage: 6, expectedOffset: 0, expectedPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockContactRepository)
			mockRepo.On("CountByOwner", mock.Anything, uint(1), tt.search).Return(tt.total, nil)
			mockRepo.On("ListByOwner", mock.Anything, uint(1), tt.search, tt.expectedOffset, tt.expectedPerPage).
				Return([]model.Contact{}, nil)

			service := NewContactService(mockRepo, 6, 2)
			page, err := service.List(context.Background(), 1, tt.search, tt.page)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedPerPage, page.PerPage)
			assert.Equal(t, tt.expectedPages, page.TotalPages)
			assert.Equal(t, tt.search, page.Search)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestContactService_List_ZeroPageSizeIsClamped(t *testing.T) {
	// Misconfigured page sizes fall back to one item per page instead of
	// dividing by zero.
	mockRepo := new(MockContactRepository)
	mockRepo.On("CountByOwner", mock.Anything, uint(1), "").Return(int64(3), nil)
	mockRepo.On("ListByOwner", mock.Anything, uint(1), "", 0, 1).Return([]model.Contact{}, nil)

	service := NewContactService(mockRepo, 0, 0)
	page, err := service.List(context.Background(), 1, "", 1)

	assert.NoError(t, err)
	assert.Equal(t, 1, page.PerPage)
	assert.Equal(t, 3, page.TotalPages)
	mockRepo.AssertExpectations(t)
}
