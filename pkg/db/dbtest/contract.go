// Package dbtest holds the behaviour every db.PatientStore implementation must share.
package dbtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/ward-allocator/pkg/db"
)

// NewStoreFunc returns an empty store for one subtest
type NewStoreFunc func(t *testing.T) db.PatientStore

// RunPatientStoreContract runs the shared store behaviour against fresh stores from newStore
func RunPatientStoreContract(t *testing.T, newStore NewStoreFunc) {
	ctx := context.Background()

	alice := db.Patient{ID: "p-1", Name: "Alice", Severity: 9, Beds: 2, Vents: 1, Survival: 0.8, NeedsDoctor: true}
	bob := db.Patient{ID: "p-2", Name: "Bob", Severity: 5, Beds: 3, Vents: 0, Survival: 0.5}
	carol := db.Patient{ID: "p-3", Name: "Carol", Severity: 2, Beds: 0, Vents: 0, Survival: 1}

	t.Run("empty store lists nothing", func(t *testing.T) {
		store := newStore(t)

		patients, err := store.GetPatients(ctx)
		require.NoError(t, err)
		assert.Empty(t, patients)
	})

	t.Run("insertion order is kept across inserts", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, store.InsertPatients(ctx, []db.Patient{carol, alice}))
		require.NoError(t, store.InsertPatients(ctx, []db.Patient{bob}))

		patients, err := store.GetPatients(ctx)
		require.NoError(t, err)
		assert.Equal(t, []db.Patient{carol, alice, bob}, patients)
	})

	t.Run("get by id", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.InsertPatients(ctx, []db.Patient{alice, bob}))

		got, err := store.GetPatient(ctx, "p-2")
		require.NoError(t, err)
		assert.Equal(t, bob, *got)

		_, err = store.GetPatient(ctx, "missing")
		assert.ErrorIs(t, err, db.ErrPatientNotFound)
	})

	t.Run("duplicate id is rejected", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.InsertPatients(ctx, []db.Patient{alice}))

		assert.Error(t, store.InsertPatients(ctx, []db.Patient{alice}))

		patients, err := store.GetPatients(ctx)
		require.NoError(t, err)
		assert.Len(t, patients, 1)
	})

	t.Run("update keeps position", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.InsertPatients(ctx, []db.Patient{alice, bob, carol}))

		edited := alice
		edited.Severity = 1
		edited.NeedsDoctor = false
		require.NoError(t, store.UpdatePatient(ctx, &edited))

		patients, err := store.GetPatients(ctx)
		require.NoError(t, err)
		assert.Equal(t, []db.Patient{edited, bob, carol}, patients)

		missing := carol
		missing.ID = "missing"
		assert.ErrorIs(t, store.UpdatePatient(ctx, &missing), db.ErrPatientNotFound)
		assert.ErrorIs(t, store.UpdatePatient(ctx, nil), db.ErrNilPatient)
	})

	t.Run("delete removes one patient", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.InsertPatients(ctx, []db.Patient{alice, bob, carol}))

		require.NoError(t, store.DeletePatient(ctx, "p-2"))
		assert.ErrorIs(t, store.DeletePatient(ctx, "p-2"), db.ErrPatientNotFound)

		patients, err := store.GetPatients(ctx)
		require.NoError(t, err)
		assert.Equal(t, []db.Patient{alice, carol}, patients)
	})

	t.Run("clear removes everything", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.InsertPatients(ctx, []db.Patient{alice, bob}))

		require.NoError(t, store.ClearPatients(ctx))
		require.NoError(t, store.ClearPatients(ctx))

		patients, err := store.GetPatients(ctx)
		require.NoError(t, err)
		assert.Empty(t, patients)

		require.NoError(t, store.InsertPatients(ctx, []db.Patient{carol}))
		patients, err = store.GetPatients(ctx)
		require.NoError(t, err)
		assert.Equal(t, []db.Patient{carol}, patients)
	})
}
