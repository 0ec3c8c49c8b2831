package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"ventas/internal/domain"
	apperrors "ventas/internal/errors"
	"ventas/internal/infrastructure/mysql"

	"github.com/DATA-DOG/go-sqlmock"
	driver "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestNewMySQLRepository_BuildsQueries(t *testing.T) {
	repo := NewMySQLRepository[domain.Article](nil, Articles)

	assert.Equal(t, "SELECT `id`, `name`, `value`, `companyId` FROM `Articles`", repo.selectQuery)
	assert.Equal(t, "INSERT INTO `Articles` (`name`, `value`, `companyId`) VALUES (?, ?, ?)", repo.insertQuery)
	assert.Equal(t, "UPDATE `Articles` SET `name` = ?, `value` = ?, `companyId` = ? WHERE `id` = ?", repo.updateQuery)
	assert.Equal(t, "DELETE FROM `Articles` WHERE `id` = ?", repo.deleteQuery)
}

func TestRepository_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLRepository[domain.Article](db, Articles)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT `id`, `name`, `value`, `companyId` FROM `Articles` ORDER BY `id`")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "value", "companyId"}).
			AddRow(1, "Widget", "10.5000", 1).
			AddRow(2, "Gadget", "20.0000", 2))

	articles, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "Widget", articles[0].Name)
	assert.True(t, decimal.RequireFromString("10.5").Equal(articles[0].Value))
	assert.Equal(t, int64(2), articles[1].CompanyID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_Empty(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLRepository[domain.Company](db, Companies)

	mock.ExpectQuery("SELECT .* FROM `Companies`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "phoneNumber"}))

	companies, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, companies)
	assert.Empty(t, companies)
}

func TestRepository_FindByID_Success(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLRepository[domain.Company](db, Companies)

	mock.ExpectQuery(regexp.QuoteMeta("FROM `Companies` WHERE `id` = ?")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "phoneNumber"}).
			AddRow(7, "Acme", "Main St 1", nil))

	company, err := repo.FindByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), company.ID)
	assert.Equal(t, "Acme", company.Name)
	require.NotNil(t, company.Address)
	assert.Equal(t, "Main St 1", *company.Address)
	assert.Nil(t, company.PhoneNumber)
}

func TestRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLRepository[domain.Employee](db, Employees)

	mock.ExpectQuery("FROM `Employees` WHERE `id` = ?").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	employee, err := repo.FindByID(context.Background(), 99)
	assert.Nil(t, employee)

	nfe, ok := apperrors.IsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, "employee with id 99 not found", nfe.Message)
}

func TestRepository_FindByID_QueryError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLRepository[domain.Employee](db, Employees)

	mock.ExpectQuery("FROM `Employees`").WillReturnError(errors.New("connection reset"))

	_, err := repo.FindByID(context.Background(), 1)
	require.Error(t, err)

	_, ok := apperrors.IsNotFoundError(err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestRepository_FindBy(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLRepository[domain.Invoice](db, Invoices)

	delivery := time.Date(2026, 1, 8, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM `Invoices` WHERE `orderId` = ? ORDER BY `id`")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "deliveryDate", "orderId"}).
			AddRow(1, "Pending", delivery, 3))

	invoices, err := repo.FindBy(context.Background(), "orderId", int64(3))
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, delivery, invoices[0].DeliveryDate)
	assert.Equal(t, int64(3), invoices[0].OrderID)
}

func TestRepository_FindBy_UnknownColumn(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLRepository[domain.Invoice](db, Invoices)

	_, err := repo.FindBy(context.Background(), "orderId; DROP TABLE Invoices", 1)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_SetsID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLRepository[domain.Employee](db, Employees)

	salary := decimal.RequireFromString("1500")
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `Employees` (`name`, `position`, `salary`, `companyId`) VALUES (?, ?, ?, ?)")).
		WithArgs("Ana", nil, salary, int64(1)).
		WillReturnResult(sqlmock.NewResult(12, 1))

	employee := &domain.Employee{Name: "Ana", Salary: salary, CompanyID: 1}
	err := repo.Create(context.Background(), employee)
	require.NoError(t, err)
	assert.Equal(t, int64(12), employee.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLRepository[domain.OrderDetail](db, OrderDetails)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE `OrderDetails` SET `articleId` = ?, `orderId` = ? WHERE `id` = ?")).
		WithArgs(int64(10), int64(4), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &domain.OrderDetail{ID: 2, ArticleID: 10, OrderID: 4})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLRepository[domain.OrderDetail](db, OrderDetails)

	mock.ExpectExec("UPDATE `OrderDetails`").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &domain.OrderDetail{ID: 404})
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestRepository_Delete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLRepository[domain.Order](db, Orders)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `Orders` WHERE `id` = ?")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLRepository[domain.Order](db, Orders)

	mock.ExpectExec("DELETE FROM `Orders`").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 5)
	nfe, ok := apperrors.IsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, "order with id 5 not found", nfe.Message)
}

func TestRepository_Create_DuplicateEntryIsConflict(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLRepository[domain.Invoice](db, Invoices)

	mock.ExpectExec("INSERT INTO `Invoices`").
		WillReturnError(&driver.MySQLError{Number: 1062, Message: "Duplicate entry '3' for key 'uq_invoices_order'"})

	err := repo.Create(context.Background(), &domain.Invoice{Status: "Pending", OrderID: 3})
	ce, ok := apperrors.IsConflictError(err)
	require.True(t, ok)
	assert.Equal(t, "invoice already exists", ce.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_MissingReferenceIsValidation(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLRepository[domain.OrderDetail](db, OrderDetails)

	mock.ExpectExec("INSERT INTO `OrderDetails`").
		WillReturnError(&driver.MySQLError{Number: 1452, Message: "Cannot add or update a child row"})

	err := repo.Create(context.Background(), &domain.OrderDetail{OrderID: 99, ArticleID: 1})
	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "referenced entity does not exist", ve.Message)
}

func TestRepository_Update_MissingReferenceIsValidation(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLRepository[domain.Order](db, Orders)

	mock.ExpectExec("UPDATE `Orders`").
		WillReturnError(&driver.MySQLError{Number: 1452, Message: "Cannot add or update a child row"})

	err := repo.Update(context.Background(), &domain.Order{ID: 1, Name: "O1", EmployeeID: 404})
	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestRepository_Update_DuplicateEntryIsConflict(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLRepository[domain.Invoice](db, Invoices)

	mock.ExpectExec("UPDATE `Invoices`").
		WillReturnError(&driver.MySQLError{Number: 1062})

	err := repo.Update(context.Background(), &domain.Invoice{ID: 2, OrderID: 3})
	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
}

func TestRepository_Delete_ReferencedIsConflict(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLRepository[domain.Company](db, Companies)

	mock.ExpectExec("DELETE FROM `Companies`").
		WillReturnError(&driver.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row"})

	err := repo.Delete(context.Background(), 1)
	ce, ok := apperrors.IsConflictError(err)
	require.True(t, ok)
	assert.Equal(t, "company is still referenced by other records", ce.Message)
}

func TestRepository_Create_OtherErrorsStayInternal(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLRepository[domain.Company](db, Companies)

	mock.ExpectExec("INSERT INTO `Companies`").WillReturnError(errors.New("connection reset"))

	err := repo.Create(context.Background(), &domain.Company{Name: "Acme"})
	require.Error(t, err)
	_, isConflict := apperrors.IsConflictError(err)
	_, isValidation := apperrors.IsValidationError(err)
	assert.False(t, isConflict)
	assert.False(t, isValidation)
	assert.Contains(t, err.Error(), "inserting company")
}

func TestRepository_UsesTransactionFromContext(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLRepository[domain.Order](db, Orders)
	tm := mysql.NewTransactionManager(db, time.Second)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `Orders`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `Orders`").WillReturnError(errors.New("duplicate"))
	mock.ExpectRollback()

	err := tm.WithinTx(context.Background(), func(ctx context.Context) error {
		if err := repo.Create(ctx, &domain.Order{Name: "a", Status: domain.OrderStatusPending}); err != nil {
			return err
		}
		return repo.Create(ctx, &domain.Order{Name: "b", Status: domain.OrderStatusPending})
	})

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
