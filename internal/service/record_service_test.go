package service

import (
	"context"
	"testing"

	"github.com/Lixing-Zhang/shop-admin/backend/internal/models"
	"github.com/Lixing-Zhang/shop-admin/backend/internal/repository"
	"github.com/Lixing-Zhang/shop-admin/backend/internal/repository/fake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRecordService(t *testing.T) {
	existing := models.Record{ID: primitive.NewObjectID(), Name: "Ada", Position: "Engineer", Level: "Senior"}
	svc := NewRecordService(fake.NewRecordRepository(existing))
	ctx := context.Background()

	t.Run("list", func(t *testing.T) {
		records, err := svc.ListRecords(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.Record{existing}, records)
	})

	t.Run("create requires name", func(t *testing.T) {
		_, err := svc.CreateRecord(ctx, models.RecordInput{Position: "Intern"})
		var fe FieldErrors
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "is required", fe["name"])
	})

	t.Run("create and fetch", func(t *testing.T) {
		res, err := svc.CreateRecord(ctx, models.RecordInput{Name: "Grace", Position: "Admiral", Level: "Lead"})
		require.NoError(t, err)

		rec, err := svc.GetRecord(ctx, res.InsertedID)
		require.NoError(t, err)
		assert.Equal(t, "Grace", rec.Name)
	})

	t.Run("update", func(t *testing.T) {
		res, err := svc.UpdateRecord(ctx, existing.ID.Hex(), models.RecordInput{Name: "Ada", Position: "Architect", Level: "Principal"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.ModifiedCount)
	})

	t.Run("delete missing", func(t *testing.T) {
		_, err := svc.DeleteRecord(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(t, err, repository.ErrRecordNotFound)
	})

	t.Run("get with bad id", func(t *testing.T) {
		_, err := svc.GetRecord(ctx, "nope")
		assert.ErrorIs(t, err, repository.ErrInvalidID)
	})
}
