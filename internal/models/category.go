package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category represents a category for transactions and budgets.
//
// A category with no owner is a system category that is available
// to all users, but can be changed by none of them.
type Category struct {
	DefaultModel
	Name    string          `json:"name" gorm:"uniqueIndex:category_owner_name"`
	Type    TransactionType `json:"type"` // Categories only accept transactions of their own type
	OwnerID *uuid.UUID      `json:"-" gorm:"uniqueIndex:category_owner_name"` // nil for system categories
}

// IsSystem reports whether the category is a system category.
func (c Category) IsSystem() bool {
	return c.OwnerID == nil
}

// BeforeSave trims whitespace from the name and verifies the type.
func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)

	if !c.Type.Valid() {
		return ErrTypeInvalid
	}

	return nil
}

// systemCategories is the set of categories every user starts out with.
var systemCategories = []Category{
	{Name: "Salary", Type: TransactionTypeIncome},
	{Name: "Freelance", Type: TransactionTypeIncome},
	{Name: "Investments", Type: TransactionTypeIncome},
	{Name: "Other Income", Type: TransactionTypeIncome},
	{Name: "Food", Type: TransactionTypeExpense},
	{Name: "Transportation", Type: TransactionTypeExpense},
	{Name: "Housing", Type: TransactionTypeExpense},
	{Name: "Utilities", Type: TransactionTypeExpense},
	{Name: "Entertainment", Type: TransactionTypeExpense},
	{Name: "Healthcare", Type: TransactionTypeExpense},
	{Name: "Shopping", Type: TransactionTypeExpense},
	{Name: "Other Expenses", Type: TransactionTypeExpense},
}

// seedSystemCategories creates the system categories on first startup.
func seedSystemCategories(db *gorm.DB) error {
	var count int64
	err := db.Model(&Category{}).Where("owner_id IS NULL").Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	// Create a copy so that gorm does not write generated IDs back
	// into the package level slice
	categories := make([]Category, len(systemCategories))
	copy(categories, systemCategories)

	return db.Create(&categories).Error
}

// Categories returns all categories available to the user, system
// categories first.
func Categories(db *gorm.DB, ownerID uuid.UUID, categoryType *TransactionType) ([]Category, error) {
	q := db.
		Where("owner_id IS NULL OR owner_id = ?", ownerID).
		Order("owner_id IS NULL DESC").
		Order("name ASC")

	if categoryType != nil {
		q = q.Where("type = ?", *categoryType)
	}

	var categories []Category
	err := q.Find(&categories).Error
	return categories, err
}

// CategoryByID returns the category if it is a system category or
// owned by the user.
func CategoryByID(db *gorm.DB, id uuid.UUID, ownerID uuid.UUID) (Category, error) {
	var category Category
	err := db.
		Where("id = ? AND (owner_id IS NULL OR owner_id = ?)", id, ownerID).
		First(&category).Error

	return category, err
}

// categoryNameInUse reports whether a category with this name is already
// visible to the user. The check is case insensitive, matching the
// uniqueness the database enforces.
func categoryNameInUse(db *gorm.DB, name string, ownerID uuid.UUID, exclude uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&Category{}).
		Where("LOWER(name) = LOWER(?) AND (owner_id IS NULL OR owner_id = ?) AND id != ?", strings.TrimSpace(name), ownerID, exclude).
		Count(&count).Error

	return count > 0, err
}

// CreateCategory creates a custom category for the user.
func CreateCategory(db *gorm.DB, ownerID uuid.UUID, name string, categoryType TransactionType) (Category, error) {
	if !categoryType.Valid() {
		return Category{}, ErrTypeInvalid
	}

	inUse, err := categoryNameInUse(db, name, ownerID, uuid.Nil)
	if err != nil {
		return Category{}, err
	}
	if inUse {
		return Category{}, ErrCategoryNameInUse
	}

	category := Category{
		Name:    name,
		Type:    categoryType,
		OwnerID: &ownerID,
	}

	err = db.Create(&category).Error
	return category, err
}

// ownedCategory returns the category only if the user owns it. A system
// category returns ErrCategoryNotOwned, anything else is not found.
func ownedCategory(db *gorm.DB, id uuid.UUID, ownerID uuid.UUID) (Category, error) {
	category, err := CategoryByID(db, id, ownerID)
	if err != nil {
		return Category{}, err
	}

	if category.IsSystem() {
		return Category{}, ErrCategoryNotOwned
	}

	return category, nil
}

// categoryTransactionCount counts the non-deleted transactions
// referencing the category.
func categoryTransactionCount(db *gorm.DB, id uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&Transaction{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}

// UpdateCategory renames a custom category. The type can only change while
// no transactions reference the category.
func UpdateCategory(db *gorm.DB, id uuid.UUID, ownerID uuid.UUID, name string, categoryType TransactionType) (Category, error) {
	category, err := ownedCategory(db, id, ownerID)
	if err != nil {
		return Category{}, err
	}

	if !categoryType.Valid() {
		return Category{}, ErrTypeInvalid
	}

	inUse, err := categoryNameInUse(db, name, ownerID, category.ID)
	if err != nil {
		return Category{}, err
	}
	if inUse {
		return Category{}, ErrCategoryNameInUse
	}

	if category.Type != categoryType {
		count, err := categoryTransactionCount(db, category.ID)
		if err != nil {
			return Category{}, err
		}
		if count > 0 {
			return Category{}, ErrCategoryHasTransactions
		}
	}

	category.Name = name
	category.Type = categoryType

	err = db.Save(&category).Error
	return category, err
}

// DeleteCategory deletes a custom category without transactions.
func DeleteCategory(db *gorm.DB, id uuid.UUID, ownerID uuid.UUID) error {
	category, err := ownedCategory(db, id, ownerID)
	if err != nil {
		return err
	}

	count, err := categoryTransactionCount(db, category.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryHasTransactions
	}

	return db.Delete(&category).Error
}
