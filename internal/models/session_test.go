package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariantStatusTransitions(t *testing.T) {
	assert.True(t, VariantIdle.CanTransitionTo(VariantGenerating))
	assert.False(t, VariantIdle.CanTransitionTo(VariantReady))
	assert.False(t, VariantIdle.CanTransitionTo(VariantError))

	assert.True(t, VariantGenerating.CanTransitionTo(VariantReady))
	assert.True(t, VariantGenerating.CanTransitionTo(VariantError))
	assert.False(t, VariantGenerating.CanTransitionTo(VariantIdle))

	// Terminal states accept nothing, including re-entry
	assert.False(t, VariantReady.CanTransitionTo(VariantError))
	assert.False(t, VariantReady.CanTransitionTo(VariantReady))
	assert.False(t, VariantError.CanTransitionTo(VariantReady))
	assert.False(t, VariantError.CanTransitionTo(VariantGenerating))
}

func TestVariantStatusTerminal(t *testing.T) {
	assert.False(t, VariantIdle.Terminal())
	assert.False(t, VariantGenerating.Terminal())
	assert.True(t, VariantReady.Terminal())
	assert.True(t, VariantError.Terminal())
}

func TestNewSessionStartsGenerating(t *testing.T) {
	sess := NewSession("abc")

	require.Len(t, sess.Variants, VariantCount)
	for slot := FirstVariantSlot; slot < FirstVariantSlot+VariantCount; slot++ {
		v := sess.Variants[slot]
		require.NotNil(t, v)
		assert.Equal(t, slot, v.Slot)
		assert.Equal(t, VariantGenerating, v.Status)
	}
	assert.False(t, sess.AllReady())
}

func TestAllReadyCountsErrorsAsFinished(t *testing.T) {
	sess := NewSession("abc")
	sess.Variants[1].Status = VariantReady
	sess.Variants[2].Status = VariantError
	assert.False(t, sess.AllReady())

	sess.Variants[3].Status = VariantError
	assert.True(t, sess.AllReady())
}

func TestSnapshotDeepCopiesItems(t *testing.T) {
	sess := NewSession("abc")
	sess.Variants[1].Status = VariantReady
	sess.Variants[1].RestaurantName = "Trattoria"
	sess.Variants[1].Items = []MenuItem{{Name: "Pasta", Price: 12}}
	sess.Variants[1].ImageURL = "/assets/x.png"

	snap := sess.Snapshot()
	require.Len(t, snap.Variant1.Items, 1)

	// Mutating the session after the snapshot must not leak through
	sess.Variants[1].Items[0].Name = "Changed"
	assert.Equal(t, "Pasta", snap.Variant1.Items[0].Name)
}

func TestValidateVariant(t *testing.T) {
	ready := Variant{
		Slot:           1,
		Status:         VariantReady,
		RestaurantName: "Trattoria",
		Items:          []MenuItem{{Name: "Pasta", Price: 12}},
		ImageURL:       "/assets/x.png",
	}
	assert.NoError(t, ValidateVariant(&ready))

	missingImage := ready
	missingImage.ImageURL = ""
	assert.Error(t, ValidateVariant(&missingImage))

	missingItems := ready
	missingItems.Items = nil
	assert.Error(t, ValidateVariant(&missingItems))

	failed := Variant{Slot: 2, Status: VariantError, Error: "generation failed"}
	assert.NoError(t, ValidateVariant(&failed))

	noDetail := Variant{Slot: 2, Status: VariantError}
	assert.Error(t, ValidateVariant(&noDetail))

	errorWithImage := Variant{Slot: 2, Status: VariantError, Error: "x", ImageURL: "/assets/y.png"}
	assert.Error(t, ValidateVariant(&errorWithImage))
}

func TestMenuItemValid(t *testing.T) {
	valid := MenuItem{Name: "Soup", Price: 0}
	assert.True(t, valid.Valid())

	noName := MenuItem{Price: 5}
	assert.False(t, noName.Valid())

	negativePrice := MenuItem{Name: "Soup", Price: -1}
	assert.False(t, negativePrice.Valid())
}

func TestFallbackMenu(t *testing.T) {
	menu := FallbackMenu()
	require.NotNil(t, menu)
	assert.Equal(t, "The Restaurant", menu.RestaurantName)
	require.Len(t, menu.Items, 3)
	for i := range menu.Items {
		assert.True(t, menu.Items[i].Valid())
	}
}
