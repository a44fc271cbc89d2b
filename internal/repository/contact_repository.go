package repository

import (
	"context"

	"gorm.io/gorm"

	"agenda/internal/model"
)

// ContactRepository defines contact persistence operations. Every list and
// count is scoped to an owner; cross-owner reads go through FindByID and are
// authorized at the service layer.
type ContactRepository interface {
	Create(ctx context.Context, contact *model.Contact) error
	FindByID(ctx context.Context, id uint) (*model.Contact, error)
	ListByOwner(ctx context.Context, ownerID uint, search string, offset, limit int) ([]model.Contact, error)
	CountByOwner(ctx context.Context, ownerID uint, search string) (int64, error)
	Update(ctx context.Context, contact *model.Contact) error
	Delete(ctx context.Context, contact *model.Contact) error
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, contact *model.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *contactRepository) FindByID(ctx context.Context, id uint) (*model.Contact, error) {
	var contact model.Contact
	if err := r.db.WithContext(ctx).First(&contact, id).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

// searchScope narrows a query to the owner's contacts whose first name, last
// name, or email contains the term. Matching is case-sensitive.
func searchScope(db *gorm.DB, ownerID uint, search string) *gorm.DB {
	q := db.Where("user_id = ?", ownerID)
	if search != "" {
		like := "%" + search + "%"
		q = q.Where(
			"first_name LIKE BINARY ? OR last_name LIKE BINARY ? OR email LIKE BINARY ?",
			like, like, like,
		)
	}
	return q
}

func (r *contactRepository) ListByOwner(ctx context.Context, ownerID uint, search string, offset, limit int) ([]model.Contact, error) {
	var contacts []model.Contact
	q := searchScope(r.db.WithContext(ctx), ownerID, search)
	if err := q.Order("created_at ASC, id ASC").Offset(offset).Limit(limit).Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *contactRepository) CountByOwner(ctx context.Context, ownerID uint, search string) (int64, error) {
	var count int64
	q := searchScope(r.db.WithContext(ctx), ownerID, search)
	if err := q.Model(&model.Contact{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Update persists all mutable fields. UserID, ID and CreatedAt are excluded
// so ownership and creation time can never change through this path.
func (r *contactRepository) Update(ctx context.Context, contact *model.Contact) error {
	return r.db.WithContext(ctx).Model(contact).
		Select("first_name", "last_name", "email", "number").
		Updates(map[string]interface{}{
			"first_name": contact.FirstName,
			"last_name":  contact.LastName,
			"email":      contact.Email,
			"number":     contact.Number,
		}).Error
}

func (r *contactRepository) Delete(ctx context.Context, contact *model.Contact) error {
	return r.db.WithContext(ctx).Delete(contact).Error
}
