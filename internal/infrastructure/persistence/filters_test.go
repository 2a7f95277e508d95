package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"allowed field passes through", "name", "name"},
		{"empty input falls back", "", "created_at"},
		{"unknown field falls back", "secret_column", "created_at"},
		{"injection payload falls back", "name; DROP TABLE products; --", "created_at"},
		{"whitespace is trimmed", "  quantity  ", "quantity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, ProductSortFields, "created_at"))
		})
	}
}

func TestValidateSortOrder(t *testing.T) {
	assert.Equal(t, "ASC", ValidateSortOrder("asc"))
	assert.Equal(t, "ASC", ValidateSortOrder(" ASC "))
	assert.Equal(t, "DESC", ValidateSortOrder("desc"))
	assert.Equal(t, "DESC", ValidateSortOrder(""))
	assert.Equal(t, "DESC", ValidateSortOrder("desc; DELETE FROM sales"))
}

func TestFindAllOrderingIsWhitelisted(t *testing.T) {
	ctx := context.Background()

	t.Run("hostile order_by never reaches the SQL text", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "version", "name"})
		mock.ExpectQuery(`SELECT \* FROM "products" ORDER BY created_at DESC LIMIT \$1`).
			WithArgs(20).
			WillReturnRows(rows)

		_, err := repo.FindAll(ctx, shared.Filter{
			Page:     1,
			PageSize: 20,
			OrderBy:  "name; DROP TABLE products; --",
			OrderDir: "DESC",
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("whitelisted order_by is honored", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "version", "name"})
		mock.ExpectQuery(`SELECT \* FROM "products" ORDER BY name ASC LIMIT \$1`).
			WithArgs(20).
			WillReturnRows(rows)

		_, err := repo.FindAll(ctx, shared.Filter{
			Page:     1,
			PageSize: 20,
			OrderBy:  "name",
			OrderDir: "asc",
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
