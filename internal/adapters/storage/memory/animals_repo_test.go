package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"livestock-api/internal/domain/animals"
	"livestock-api/internal/domain/breeds"
	"livestock-api/internal/query"
	"livestock-api/internal/storage"
)

func seedBreed(t *testing.T, s *Store) breeds.Breed {
	t.Helper()
	ctx := context.Background()

	sp, err := NewSpeciesRepo(s).Create(ctx, breeds.Species{Name: "Bovino"})
	require.NoError(t, err)

	b, err := NewBreedsRepo(s).Create(ctx, breeds.Breed{Name: "Holstein", SpeciesID: sp.ID})
	require.NoError(t, err)
	return b
}

func newAnimal(record string, breedID int) animals.Animal {
	return animals.Animal{
		Sex:       animals.SexHembra,
		BirthDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Weight:    320,
		Record:    record,
		Status:    animals.StatusVivo,
		BreedID:   breedID,
	}
}

func TestAnimalsRepo_CreateAndGet(t *testing.T) {
	s := NewStore()
	b := seedBreed(t, s)
	repo := NewAnimalsRepo(s)
	ctx := context.Background()

	a, err := repo.Create(ctx, newAnimal("BOV-001", b.ID))
	require.NoError(t, err)
	require.Equal(t, 1, a.ID)

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, "BOV-001", got.Record)
}

func TestAnimalsRepo_DuplicateRecord(t *testing.T) {
	s := NewStore()
	b := seedBreed(t, s)
	repo := NewAnimalsRepo(s)
	ctx := context.Background()

	_, err := repo.Create(ctx, newAnimal("BOV-001", b.ID))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newAnimal("BOV-001", b.ID))
	require.ErrorIs(t, err, storage.ErrDuplicate)
}

func TestAnimalsRepo_UnknownBreed(t *testing.T) {
	s := NewStore()
	repo := NewAnimalsRepo(s)

	_, err := repo.Create(context.Background(), newAnimal("BOV-001", 99))
	require.ErrorIs(t, err, storage.ErrForeignKey)
}

func TestAnimalsRepo_DeleteRestrictedByChild(t *testing.T) {
	s := NewStore()
	b := seedBreed(t, s)
	repo := NewAnimalsRepo(s)
	ctx := context.Background()

	mother, err := repo.Create(ctx, newAnimal("BOV-001", b.ID))
	require.NoError(t, err)

	child := newAnimal("BOV-002", b.ID)
	child.IDMother = &mother.ID
	_, err = repo.Create(ctx, child)
	require.NoError(t, err)

	require.ErrorIs(t, repo.Delete(ctx, mother.ID), storage.ErrRestricted)
}

func TestAnimalsRepo_ListFilters(t *testing.T) {
	s := NewStore()
	b := seedBreed(t, s)
	repo := NewAnimalsRepo(s)
	ctx := context.Background()

	hembra := newAnimal("BOV-001", b.ID)
	macho := newAnimal("BOV-002", b.ID)
	macho.Sex = animals.SexMacho
	macho.Weight = 500

	_, err := repo.Create(ctx, hembra)
	require.NoError(t, err)
	_, err = repo.Create(ctx, macho)
	require.NoError(t, err)

	p := query.Params{Page: 1, PerPage: 50, SortBy: "id", SortOrder: "asc",
		Filters: map[string]string{"sex": "Macho"}}
	got, total, err := repo.List(ctx, p)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, "BOV-002", got[0].Record)

	p.Filters = map[string]string{"min_weight": "400"}
	got, total, err = repo.List(ctx, p)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, 500, got[0].Weight)
}

func TestAnimalsRepo_ListPagination(t *testing.T) {
	s := NewStore()
	b := seedBreed(t, s)
	repo := NewAnimalsRepo(s)
	ctx := context.Background()

	for _, record := range []string{"BOV-001", "BOV-002", "BOV-003"} {
		_, err := repo.Create(ctx, newAnimal(record, b.ID))
		require.NoError(t, err)
	}

	p := query.Params{Page: 2, PerPage: 2, SortBy: "id", SortOrder: "asc",
		Filters: map[string]string{}}
	got, total, err := repo.List(ctx, p)
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, got, 1)
	require.Equal(t, "BOV-003", got[0].Record)
}

func TestAnimalsRepo_Statistics(t *testing.T) {
	s := NewStore()
	b := seedBreed(t, s)
	repo := NewAnimalsRepo(s)
	ctx := context.Background()

	a := newAnimal("BOV-001", b.ID)
	a.Weight = 300
	m := newAnimal("BOV-002", b.ID)
	m.Sex = animals.SexMacho
	m.Weight = 500

	_, err := repo.Create(ctx, a)
	require.NoError(t, err)
	_, err = repo.Create(ctx, m)
	require.NoError(t, err)

	st, err := repo.Statistics(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, st.Total)
	require.Equal(t, 1, st.BySex["Hembra"])
	require.Equal(t, 1, st.BySex["Macho"])
	require.InDelta(t, 400.0, st.AvgWeight, 0.01)
}

func TestStore_LastModifiedAdvancesOnWrite(t *testing.T) {
	s := NewStore()
	b := seedBreed(t, s)
	repo := NewAnimalsRepo(s)
	ctx := context.Background()

	before, err := s.LastModified(ctx, "animals")
	require.NoError(t, err)

	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	_, err = repo.Create(ctx, newAnimal("BOV-001", b.ID))
	require.NoError(t, err)

	after, err := s.LastModified(ctx, "animals")
	require.NoError(t, err)
	require.True(t, after.After(before) || before.IsZero())
	require.Equal(t, base, after)
}
