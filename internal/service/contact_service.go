package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"agenda/internal/auth"
	apperrors "agenda/internal/errors"
	"agenda/internal/model"
	"agenda/internal/repository"
)

// ContactInput carries the mutable contact fields from a submitted form.
type ContactInput struct {
	FirstName string
	LastName  string
	Email     string
	Number    int64
}

// ContactPage is one page of a user's contact list.
type ContactPage struct {
	Contacts   []model.Contact
	Page       int
	PerPage    int
	Total      int64
	TotalPages int
	Search     string
}

// HasPrev reports whether an earlier page exists.
func (p *ContactPage) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a later page exists.
func (p *ContactPage) HasNext() bool { return p.Page < p.TotalPages }

// ContactService exposes contact operations. List and Create are scoped to
// an owner id; Get, Update and Delete take the acting user and enforce
// ownership after the contact is found.
type ContactService interface {
	List(ctx context.Context, ownerID uint, search string, page int) (*ContactPage, error)
	Create(ctx context.Context, ownerID uint, input ContactInput) (*model.Contact, error)
	Get(ctx context.Context, user *model.User, id uint) (*model.Contact, error)
	Update(ctx context.Context, user *model.User, id uint, input ContactInput) (*model.Contact, error)
	Delete(ctx context.Context, user *model.User, id uint) error
}

type contactService struct {
	contacts repository.ContactRepository

	pageSize       int
	searchPageSize int
}

// NewContactService builds a ContactService. The two page sizes preserve the
// legacy asymmetry between filtered and unfiltered listings; both are clamped
// to at least one so a misconfigured zero cannot break pagination arithmetic.
func NewContactService(contacts repository.ContactRepository, pageSize, searchPageSize int) ContactService {
	if pageSize < 1 {
		pageSize = 1
	}
	if searchPageSize < 1 {
		searchPageSize = 1
	}
	return &contactService{
		contacts:       contacts,
		pageSize:       pageSize,
		searchPageSize: searchPageSize,
	}
}

// List returns one page of the owner's contacts, oldest first. A non-empty
// search term narrows to case-sensitive substring matches on first name,
// last name, or email.
func (s *contactService) List(ctx context.Context, ownerID uint, search string, page int) (*ContactPage, error) {
	perPage := s.pageSize
	if search != "" {
		perPage = s.searchPageSize
	}
	if page < 1 {
		page = 1
	}

	total, err := s.contacts.CountByOwner(ctx, ownerID, search)
	if err != nil {
		return nil, fmt.Errorf("count contacts: %w", err)
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	offset := (page - 1) * perPage
	contacts, err := s.contacts.ListByOwner(ctx, ownerID, search, offset, perPage)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	return &ContactPage{
		Contacts:   contacts,
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		Search:     search,
	}, nil
}

func (s *contactService) Create(ctx context.Context, ownerID uint, input ContactInput) (*model.Contact, error) {
	contact := &model.Contact{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Number:    input.Number,
		UserID:    ownerID,
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return contact, nil
}

// Get loads a contact for the acting user. Missing contacts are NotFound;
// existing contacts owned by someone else are Forbidden, in that order.
func (s *contactService) Get(ctx context.Context, user *model.User, id uint) (*model.Contact, error) {
	contact, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrContactNotFound
		}
		return nil, fmt.Errorf("find contact: %w", err)
	}

	if err := auth.RequireOwnership(user, contact.UserID); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *contactService) Update(ctx context.Context, user *model.User, id uint, input ContactInput) (*model.Contact, error) {
	contact, err := s.Get(ctx, user, id)
	if err != nil {
		return nil, err
	}

	contact.FirstName = input.FirstName
	contact.LastName = input.LastName
	contact.Email = input.Email
	contact.Number = input.Number

	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return contact, nil
}

func (s *contactService) Delete(ctx context.Context, user *model.User, id uint) error {
	contact, err := s.Get(ctx, user, id)
	if err != nil {
		return err
	}

	if err := s.contacts.Delete(ctx, contact); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}
