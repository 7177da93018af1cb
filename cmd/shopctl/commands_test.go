package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Lixing-Zhang/shop-admin/backend/internal/repository/fake"
	"github.com/Lixing-Zhang/shop-admin/backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson"
)

func findCommand(t *testing.T, name string) *command {
	t.Helper()
	for _, c := range commands() {
		if c.name() == name {
			return c
		}
	}
	t.Fatalf("command %q not registered", name)
	return nil
}

func TestImportCommand(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.csv")
	second := filepath.Join(dir, "b.csv")
	require.NoError(t, os.WriteFile(first, []byte("name,price\nApple,1.2\nPear,0.8\n"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("name,price\nApple,1.5\n,3\n"), 0o644))

	repo := fake.NewProductRepository()
	var out bytes.Buffer

	err := findCommand(t, "import").run(context.Background(), service.NewProductService(repo), &out, []string{first, second})
	require.NoError(t, err)

	assert.Len(t, repo.Inserted, 2)
	assert.Contains(t, out.String(), first+": inserted 2, skipped 0")
	assert.Contains(t, out.String(), second+": inserted 0, skipped 2")
	assert.Contains(t, out.String(), "row 3: name: required")
}

func TestImportCommand_MissingFile(t *testing.T) {
	repo := fake.NewProductRepository()

	err := findCommand(t, "import").run(context.Background(), service.NewProductService(repo), &bytes.Buffer{},
		[]string{filepath.Join(t.TempDir(), "missing.csv")})

	require.Error(t, err)
	assert.Empty(t, repo.Inserted)
}

func TestReportCommand(t *testing.T) {
	repo := fake.NewProductRepository(
		bson.M{"name": "Apple", "price": 1.5, "amount": 4.0, "unit": "kg", "total": 6.0},
	)
	path := filepath.Join(t.TempDir(), "report.xlsx")
	var out bytes.Buffer

	err := findCommand(t, "report").run(context.Background(), service.NewProductService(repo), &out, []string{"-o", path})
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Report")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Apple", rows[1][1])
	assert.True(t, strings.HasPrefix(out.String(), "wrote 1 products"))
}

func TestPurgeCommand(t *testing.T) {
	t.Run("requires confirmation", func(t *testing.T) {
		repo := fake.NewProductRepository(bson.M{"name": "Apple"})

		err := purgeCmd().run(context.Background(), service.NewProductService(repo), &bytes.Buffer{}, nil)

		assert.True(t, errors.Is(err, errPurgeNotConfirmed))
		assert.Len(t, repo.Docs, 1)
	})

	t.Run("deletes with --yes", func(t *testing.T) {
		repo := fake.NewProductRepository(bson.M{"name": "Apple"}, bson.M{"name": "Pear"})
		var out bytes.Buffer

		err := purgeCmd().run(context.Background(), service.NewProductService(repo), &out, []string{"--yes"})

		require.NoError(t, err)
		assert.Empty(t, repo.Docs)
		assert.Equal(t, "deleted 2 products\n", out.String())
	})
}
