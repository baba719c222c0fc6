package contact

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/gruppopolinex/polinex-backend/pkg/db/models"
	pkgerrors "github.com/gruppopolinex/polinex-backend/pkg/errors"
	"github.com/gruppopolinex/polinex-backend/pkg/logger"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.ContactMessage{}))

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(conn, logg)
	require.NoError(t, err)
	return svc, conn
}

func TestSubmitStoresMessage(t *testing.T) {
	svc, conn := newTestService(t)

	id, err := svc.Submit(context.Background(), Submission{
		Name:    "  Maria Rossi  ",
		Email:   "maria.rossi@example.it",
		Phone:   "+39 0971 123456",
		Message: "Vorrei informazioni sul coworking di Potenza.",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	var row models.ContactMessage
	require.NoError(t, conn.First(&row, "id = ?", id).Error)
	assert.Equal(t, "Maria Rossi", row.Name)
	assert.Equal(t, "maria.rossi@example.it", row.Email)
	require.NotNil(t, row.Phone)
	assert.Equal(t, "+39 0971 123456", *row.Phone)
	assert.Nil(t, row.Company)
}

func TestSubmitValidatesRequiredFields(t *testing.T) {
	svc, _ := newTestService(t)

	cases := []Submission{
		{Email: "a@b.it", Message: "manca il nome, dieci caratteri"},
		{Name: "Maria", Message: "manca la mail, dieci caratteri"},
		{Name: "Maria", Email: "a@b.it", Message: "   "},
	}
	for _, sub := range cases {
		_, err := svc.Submit(context.Background(), sub)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed, "submission %+v", sub)
		assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	}
}

func TestNewServiceRequiresConnection(t *testing.T) {
	_, err := NewService(nil, nil)
	require.Error(t, err)
}
