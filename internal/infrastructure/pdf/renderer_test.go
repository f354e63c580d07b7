package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kingflex/internal/domain"
)

func sampleOrder(itemCount int) *domain.Order {
	order := &domain.Order{
		OrderNumber:     "PO260901-001",
		CompanyName:     "BuildRight Construction",
		ContactName:     "Jordan Smith",
		Phone:           "0400000000",
		Email:           "jordan@buildright.test",
		DeliveryAddress: "1 Site Road",
		DeliveryDate:    time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		DeliveryTime:    "Morning",
		CraneTruck:      domain.CraneTruckNo,
		Status:          domain.OrderStatusPending,
	}
	for i := 0; i < itemCount; i++ {
		order.Items = append(order.Items, domain.OrderItem{
			Name:     fmt.Sprintf("Item %d", i+1),
			Quantity: float64(i + 1),
			UOM:      "pcs",
		})
	}
	return order
}

func TestRender_WritesDocument(t *testing.T) {
	renderer, err := NewRenderer(t.TempDir())
	require.NoError(t, err)

	path, err := renderer.Render(sampleOrder(3))
	require.NoError(t, err)

	assert.Equal(t, "PO260901-001.pdf", filepath.Base(path))
	assert.True(t, renderer.Exists(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRender_ManyItemsSpanMultiplePages(t *testing.T) {
	renderer, err := NewRenderer(t.TempDir())
	require.NoError(t, err)

	order := sampleOrder(60)
	order.Note = "Leave at the site office if unattended."

	doc := renderer.build(order, time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC))
	require.False(t, doc.Err(), "build error: %v", doc.Error())

	assert.Greater(t, doc.PageCount(), 1)
}

func TestRender_FewItemsFitOnOnePage(t *testing.T) {
	renderer, err := NewRenderer(t.TempDir())
	require.NoError(t, err)

	doc := renderer.build(sampleOrder(5), time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC))
	require.False(t, doc.Err())

	assert.Equal(t, 1, doc.PageCount())
}

func TestCleanup_RemovesDocument(t *testing.T) {
	renderer, err := NewRenderer(t.TempDir())
	require.NoError(t, err)

	path, err := renderer.Render(sampleOrder(1))
	require.NoError(t, err)

	require.NoError(t, renderer.Cleanup(path))
	assert.False(t, renderer.Exists(path))

	// Removing an already-deleted document is not an error.
	assert.NoError(t, renderer.Cleanup(path))
}
