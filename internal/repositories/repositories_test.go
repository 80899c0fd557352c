package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"notes/internal/database"
	"notes/internal/models"
	"notes/internal/repositories"

	randomdata "github.com/Pallinder/go-randomdata"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// openTestDB opens a private in-memory SQLite database for a single test.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := database.Open(database.DriverSQLite, dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { database.Close(db) })
	return db
}

type repoSet struct {
	users repositories.UserRepository
	notes repositories.NoteRepository
}

func implementations() map[string]func(t *testing.T) repoSet {
	return map[string]func(t *testing.T) repoSet{
		"gorm": func(t *testing.T) repoSet {
			db := openTestDB(t)
			return repoSet{
				users: repositories.NewGORMUserRepository(db),
				notes: repositories.NewGORMNoteRepository(db),
			}
		},
		"memory": func(t *testing.T) repoSet {
			return repoSet{
				users: repositories.NewInMemoryUserRepository(),
				notes: repositories.NewInMemoryNoteRepository(),
			}
		},
	}
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	for name, newRepos := range implementations() {
		t.Run(name, func(t *testing.T) {
			repo := newRepos(t).users

			fullName := randomdata.FullName(randomdata.RandomGender)
			email := randomdata.Email()
			user := &models.User{FullName: fullName, Email: email, Password: "hash"}
			require.NoError(t, repo.Create(ctx, user))
			assert.NotEmpty(t, user.ID)

			byEmail, err := repo.GetByEmail(ctx, email)
			require.NoError(t, err)
			assert.Equal(t, user.ID, byEmail.ID)
			assert.Equal(t, fullName, byEmail.FullName)
			assert.False(t, byEmail.CreatedOn.IsZero())

			byID, err := repo.GetByID(ctx, user.ID)
			require.NoError(t, err)
			assert.Equal(t, email, byID.Email)

			_, err = repo.GetByEmail(ctx, "nobody@"+randomdata.SillyName()+".invalid")
			assert.ErrorIs(t, err, repositories.ErrNotFound)
			_, err = repo.GetByID(ctx, uuid.New().String())
			assert.ErrorIs(t, err, repositories.ErrNotFound)

			dup := &models.User{FullName: randomdata.SillyName(), Email: email, Password: "hash"}
			assert.ErrorIs(t, repo.Create(ctx, dup), repositories.ErrAlreadyExists)
		})
	}
}

func TestNoteRepository_Ownership(t *testing.T) {
	ctx := context.Background()
	for name, newRepos := range implementations() {
		t.Run(name, func(t *testing.T) {
			repo := newRepos(t).notes

			a1 := &models.Note{Title: "first", Content: "a", UserID: "user-a"}
			a2 := &models.Note{Title: "second", Content: "b", UserID: "user-a"}
			b1 := &models.Note{Title: "other", Content: "c", UserID: "user-b"}
			for _, n := range []*models.Note{a1, a2, b1} {
				require.NoError(t, repo.Create(ctx, n))
			}

			listA, err := repo.ListByUser(ctx, "user-a")
			require.NoError(t, err)
			require.Len(t, listA, 2)
			assert.Equal(t, a1.ID, listA[0].ID)
			assert.Equal(t, a2.ID, listA[1].ID)
			for _, n := range listA {
				assert.Equal(t, "user-a", n.UserID)
				assert.False(t, n.IsPinned)
			}

			listC, err := repo.ListByUser(ctx, "user-c")
			require.NoError(t, err)
			assert.NotNil(t, listC)
			assert.Empty(t, listC)

			_, err = repo.GetByID(ctx, b1.ID, "user-a")
			assert.ErrorIs(t, err, repositories.ErrNotFound)

			err = repo.Delete(ctx, b1.ID, "user-a")
			assert.ErrorIs(t, err, repositories.ErrNotFound)
			_, err = repo.GetByID(ctx, b1.ID, "user-b")
			assert.NoError(t, err)

			require.NoError(t, repo.Delete(ctx, a1.ID, "user-a"))
			_, err = repo.GetByID(ctx, a1.ID, "user-a")
			assert.ErrorIs(t, err, repositories.ErrNotFound)
		})
	}
}

func TestNoteRepository_SameTimestampKeepsCreationOrder(t *testing.T) {
	ctx := context.Background()
	createdOn := time.Now().Truncate(time.Second)
	for name, newRepos := range implementations() {
		t.Run(name, func(t *testing.T) {
			repo := newRepos(t).notes

			var want []string
			for i := 0; i < 10; i++ {
				note := &models.Note{
					ID:        uuid.New().String(),
					Title:     fmt.Sprintf("note %d", i),
					Content:   "same instant",
					UserID:    "user-a",
					CreatedOn: createdOn,
				}
				require.NoError(t, repo.Create(ctx, note))
				want = append(want, note.ID)
			}

			listed, err := repo.ListByUser(ctx, "user-a")
			require.NoError(t, err)
			got := make([]string, 0, len(listed))
			for _, n := range listed {
				got = append(got, n.ID)
			}
			assert.Equal(t, want, got)

			found, err := repo.Search(ctx, "user-a", "INSTANT")
			require.NoError(t, err)
			got = got[:0]
			for _, n := range found {
				got = append(got, n.ID)
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestNoteRepository_Update(t *testing.T) {
	ctx := context.Background()
	for name, newRepos := range implementations() {
		t.Run(name, func(t *testing.T) {
			repo := newRepos(t).notes

			note := &models.Note{Title: "T", Content: "C", UserID: "user-a"}
			require.NoError(t, repo.Create(ctx, note))

			note.IsPinned = true
			note.Title = "T2"
			require.NoError(t, repo.Update(ctx, note))

			got, err := repo.GetByID(ctx, note.ID, "user-a")
			require.NoError(t, err)
			assert.Equal(t, "T2", got.Title)
			assert.Equal(t, "C", got.Content)
			assert.True(t, got.IsPinned)

			got.IsPinned = false
			require.NoError(t, repo.Update(ctx, got))

			got, err = repo.GetByID(ctx, note.ID, "user-a")
			require.NoError(t, err)
			assert.False(t, got.IsPinned)
		})
	}
}

func TestNoteRepository_Search(t *testing.T) {
	ctx := context.Background()
	for name, newRepos := range implementations() {
		t.Run(name, func(t *testing.T) {
			repo := newRepos(t).notes

			titleHit := &models.Note{Title: "Shopping LIST", Content: "milk", UserID: "user-a"}
			contentHit := &models.Note{Title: "Monday", Content: "write the weekly list", UserID: "user-a"}
			miss := &models.Note{Title: "Ideas", Content: "nothing here", UserID: "user-a"}
			foreign := &models.Note{Title: "list", Content: "list", UserID: "user-b"}
			percent := &models.Note{Title: "100% done", Content: "x", UserID: "user-a"}
			umlaut := &models.Note{Title: "Ärger im Büro", Content: "ÜBERSTUNDEN", UserID: "user-a"}
			for _, n := range []*models.Note{titleHit, contentHit, miss, foreign, percent, umlaut} {
				require.NoError(t, repo.Create(ctx, n))
			}

			found, err := repo.Search(ctx, "user-a", "List")
			require.NoError(t, err)
			ids := make([]string, 0, len(found))
			for _, n := range found {
				ids = append(ids, n.ID)
			}
			assert.ElementsMatch(t, []string{titleHit.ID, contentHit.ID}, ids)

			// Wildcards in the query are matched literally.
			found, err = repo.Search(ctx, "user-a", "0%")
			require.NoError(t, err)
			require.Len(t, found, 1)
			assert.Equal(t, percent.ID, found[0].ID)

			found, err = repo.Search(ctx, "user-a", "_")
			require.NoError(t, err)
			assert.Empty(t, found)

			// Case folding is not limited to ASCII.
			for _, query := range []string{"ärger", "ÄRGER", "büro", "überstunden"} {
				found, err = repo.Search(ctx, "user-a", query)
				require.NoError(t, err)
				require.Len(t, found, 1, query)
				assert.Equal(t, umlaut.ID, found[0].ID)
			}
		})
	}
}
