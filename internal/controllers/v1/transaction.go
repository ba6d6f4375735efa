package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/report"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetTransactions)
		r.POST("", CreateTransaction)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

// TransactionEditable represents all user configurable parameters
type TransactionEditable struct {
	CategoryID    uuid.UUID              `json:"categoryId" binding:"required" example:"7e95a4f2-7cbd-4b42-a7c2-9a24bcc4bf17"`
	Type          models.TransactionType `json:"type" binding:"required" example:"EXPENSE"`
	Amount        decimal.Decimal        `json:"amount" example:"14.37"`
	Date          time.Time              `json:"date" example:"2026-03-20T00:00:00Z"` // Defaults to the current day
	Note          string                 `json:"note" example:"Groceries for the week"`
	PaymentMethod string                 `json:"paymentMethod" example:"CARD"`
}

func (editable TransactionEditable) model(ownerID uuid.UUID) models.Transaction {
	return models.Transaction{
		OwnerID:       ownerID,
		CategoryID:    editable.CategoryID,
		Type:          editable.Type,
		Amount:        editable.Amount,
		Date:          editable.Date,
		Note:          editable.Note,
		PaymentMethod: editable.PaymentMethod,
	}
}

type TransactionResponse struct {
	Data  *models.Transaction `json:"data"`  // Data for the Transaction
	Error *string             `json:"error"` // The error, if any occurred
}

type TransactionListResponse struct {
	Data       []models.Transaction `json:"data"`  // List of Transactions
	Error      *string              `json:"error"` // The error, if any occurred
	Pagination *Pagination          `json:"pagination"`
}

// TransactionQueryFilter contains the query parameters for the
// transaction list.
type TransactionQueryFilter struct {
	Type      string `form:"type"`      // By transaction type
	Category  string `form:"category"`  // By ID of the category
	From      string `form:"from"`      // Earliest date, YYYY-MM-DD
	To        string `form:"to"`        // Latest date, YYYY-MM-DD
	MinAmount string `form:"minAmount"` // Minimum amount
	MaxAmount string `form:"maxAmount"` // Maximum amount
	Sort      string `form:"sort"`      // date, amount or createdAt. Defaults to date.
	Order     string `form:"order"`     // asc or desc. Defaults to desc.
	Offset    uint   `form:"offset"`    // The offset of the first Transaction returned. Defaults to 0.
	Limit     int    `form:"limit"`     // Maximum number of Transactions to return. Defaults to 20, capped at 100.
}

var sortColumns = map[string]string{
	"":          "date",
	"date":      "date",
	"amount":    "amount",
	"createdAt": "created_at",
}

// query builds the gorm query for the filter, scoped to the owner.
func (f TransactionQueryFilter) query(db *gorm.DB, ownerID uuid.UUID) (*gorm.DB, error) {
	q := db.Model(&models.Transaction{}).Where("owner_id = ?", ownerID)

	if f.Type != "" {
		t := models.TransactionType(f.Type)
		if !t.Valid() {
			return nil, models.ErrTypeInvalid
		}
		q = q.Where("type = ?", t)
	}

	if f.Category != "" {
		id, err := httputil.UUIDFromString(f.Category)
		if err != nil {
			return nil, err
		}
		q = q.Where("category_id = ?", id)
	}

	if f.From != "" {
		from, err := time.Parse("2006-01-02", f.From)
		if err != nil {
			return nil, httputil.ErrInvalidQuery
		}
		q = q.Where("date >= ?", from)
	}

	if f.To != "" {
		to, err := time.Parse("2006-01-02", f.To)
		if err != nil {
			return nil, httputil.ErrInvalidQuery
		}
		q = q.Where("date <= ?", to)
	}

	if f.MinAmount != "" {
		min, err := decimal.NewFromString(f.MinAmount)
		if err != nil {
			return nil, httputil.ErrInvalidQuery
		}
		q = q.Where("amount >= ?", min)
	}

	if f.MaxAmount != "" {
		max, err := decimal.NewFromString(f.MaxAmount)
		if err != nil {
			return nil, httputil.ErrInvalidQuery
		}
		q = q.Where("amount <= ?", max)
	}

	column, ok := sortColumns[f.Sort]
	if !ok {
		return nil, errSortFieldInvalid
	}

	order := "DESC"
	switch f.Order {
	case "", "desc":
	case "asc":
		order = "ASC"
	default:
		return nil, errSortOrderInvalid
	}

	return q.Order(column + " " + order), nil
}

// limit returns the page size, applying the default and the cap.
func (f TransactionQueryFilter) limit() int {
	if f.Limit < 1 {
		return 20
	}

	if f.Limit > 100 {
		return 100
	}

	return f.Limit
}

func OptionsTransactionDetail(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	_, err = models.TransactionByID(models.DB, id, currentUser(c).ID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// GetTransactions returns the user's transactions matching the filter,
// newest first unless requested otherwise.
func GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	q, err := filter.query(models.DB, currentUser(c).ID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &s})
		return
	}

	limit := filter.limit()

	var transactions []models.Transaction
	err = q.Offset(int(filter.Offset)).Limit(limit).Find(&transactions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &s})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: transactions,
		Pagination: &Pagination{
			Count:  len(transactions),
			Total:  count,
			Offset: int(filter.Offset),
			Limit:  limit,
		},
	})
}

// CreateTransaction records a new transaction for the user.
func CreateTransaction(c *gin.Context) {
	var editable TransactionEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	owner := currentUser(c).ID

	transaction, err := models.CreateTransaction(models.DB, editable.model(owner))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	report.InvalidateOwner(owner)
	c.JSON(http.StatusCreated, TransactionResponse{Data: &transaction})
}

// GetTransaction returns a specific transaction.
func GetTransaction(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	transaction, err := models.TransactionByID(models.DB, id, currentUser(c).ID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: &transaction})
}

// UpdateTransaction updates a transaction. Only values to be updated
// need to be specified, omitted values keep their current state.
func UpdateTransaction(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	owner := currentUser(c).ID

	existing, err := models.TransactionByID(models.DB, id, owner)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	// Prefill with the current state so that omitted fields stay unchanged
	editable := TransactionEditable{
		CategoryID:    existing.CategoryID,
		Type:          existing.Type,
		Amount:        existing.Amount,
		Date:          existing.Date,
		Note:          existing.Note,
		PaymentMethod: existing.PaymentMethod,
	}

	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	updated := editable.model(owner)
	updated.DefaultModel = existing.DefaultModel

	transaction, err := models.UpdateTransaction(models.DB, updated)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	report.InvalidateOwner(owner)
	c.JSON(http.StatusOK, TransactionResponse{Data: &transaction})
}

// DeleteTransaction soft deletes a transaction. It disappears from all
// lists and aggregations, but stays in storage.
func DeleteTransaction(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	owner := currentUser(c).ID

	transaction, err := models.TransactionByID(models.DB, id, owner)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	err = models.DB.Delete(&transaction).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	report.InvalidateOwner(owner)
	c.Status(http.StatusNoContent)
}
