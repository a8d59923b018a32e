package localstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	return map[string]Store{
		"memory": NewMemory(),
		"sqlite": sqlite,
	}
}

func TestStoreGetSetDelete(t *testing.T) {
	ctx := context.Background()

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, KeyAccessToken)
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Set(ctx, KeyAccessToken, "a1"))
			require.NoError(t, s.Set(ctx, KeyAccessToken, "a2"))

			v, err := s.Get(ctx, KeyAccessToken)
			require.NoError(t, err)
			assert.Equal(t, "a2", v)

			require.NoError(t, s.SetMany(ctx, map[string]string{
				KeyRefreshToken:       "r1",
				KeyVerificationStatus: StatusPending,
			}))

			require.NoError(t, s.Delete(ctx, SessionKeys...))
			for _, k := range SessionKeys {
				_, err := s.Get(ctx, k)
				assert.ErrorIs(t, err, ErrNotFound, k)
			}
		})
	}
}

func TestStoreJSON(t *testing.T) {
	ctx := context.Background()

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			rec := OnboardingRecord{
				Email:    "a@b.co",
				FullName: "Asha Rao",
				Services: []string{"Bridal Makeup", "HD Makeup"},
				City:     "Pune",
				Location: "Pune, MH - 411001",
			}
			require.NoError(t, PutJSON(ctx, s, KeyOnboarding, rec))

			raw, err := s.Get(ctx, KeyOnboarding)
			require.NoError(t, err)
			assert.Contains(t, raw, `"fullName":"Asha Rao"`)
			assert.Contains(t, raw, `"is_verified":false`)

			var got OnboardingRecord
			require.NoError(t, GetJSON(ctx, s, KeyOnboarding, &got))
			assert.Equal(t, rec, got)

			var missing OnboardingRecord
			assert.ErrorIs(t, GetJSON(ctx, s, "nope", &missing), ErrNotFound)
		})
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/store.db"

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, KeyVerificationStatus, StatusApproved))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	v, err := s.Get(ctx, KeyVerificationStatus)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, v)
}
